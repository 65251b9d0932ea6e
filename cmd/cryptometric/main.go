package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/subcommands"

	"cryptometric/internal/app"
	"cryptometric/internal/saver"
	"cryptometric/internal/server"
	"cryptometric/internal/slogx"
	"cryptometric/internal/store"
)

// App holds application dependencies built by Wire.
type App struct {
	Config *app.Config
	Store  *store.Store
	Server *server.Server
	Logger *slog.Logger
}

func init() {
	slog.SetDefault(slogx.NewDefault(os.Getenv("LOG_LEVEL")))
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&serveCmd{}, "dashboard")
	subcommands.Register(&fetchCmd{}, "data")
	subcommands.Register(&exportCmd{}, "data")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}

// serveCmd starts the dashboard HTTP server.
type serveCmd struct {
	port    int
	dataDir string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the dashboard over local HTTP" }
func (*serveCmd) Usage() string {
	return `serve [-port 8501] [-data-dir offline_data]:
  Load datasets and serve the dashboard.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "listen port (overrides PORT)")
	f.StringVar(&c.dataDir, "data-dir", "", "dataset directory (overrides DATA_DIR)")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// Flags win over the corresponding env vars; config is loaded from env.
	if c.port != 0 {
		os.Setenv("PORT", strconv.Itoa(c.port))
	}
	if c.dataDir != "" {
		os.Setenv("DATA_DIR", c.dataDir)
	}

	a, err := InitializeApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return subcommands.ExitFailure
	}
	slog.SetDefault(a.Logger)

	if err := app.RunServe(ctx, a.Config, a.Server, a.Logger); err != nil {
		a.Logger.Error("server error", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// fetchCmd refreshes the data directory from the configured remote sources.
type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download fresh dataset snapshots" }
func (*fetchCmd) Usage() string {
	return `fetch:
  Download staking/price CSVs from STAKING_URL / PRICE_URL into the data directory.
`
}
func (*fetchCmd) SetFlags(*flag.FlagSet) {}

func (*fetchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := app.LoadAndValidate()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return subcommands.ExitFailure
	}
	p := app.NewSnapshotProvider(cfg)
	defer p.Close()

	slog.Info("using snapshot provider", "provider", p.GetName(), "dir", cfg.DataDir)
	if err := p.Fetch(ctx); err != nil {
		slog.Error("fetch failed", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// exportCmd writes loaded datasets to another tabular format.
type exportCmd struct {
	format string
	outDir string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export datasets to csv, json or parquet" }
func (*exportCmd) Usage() string {
	return `export [-format csv|json|parquet] [-out DIR] [dataset ...]:
  Export named datasets (default: all) from the data directory.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "csv", "output format (csv, json, parquet)")
	f.StringVar(&c.outDir, "out", "export", "output directory")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := app.LoadAndValidate()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return subcommands.ExitFailure
	}
	sv := saver.NewDatasetSaver(c.format)
	if sv == nil {
		slog.Error("unsupported format", "format", c.format, "allowed", "csv, json, parquet")
		return subcommands.ExitFailure
	}

	st := store.New(cfg.DataDir, slog.Default())
	if err := st.Load(); err != nil {
		slog.Error("failed to load datasets", "error", err)
		return subcommands.ExitFailure
	}

	names := f.Args()
	if len(names) == 0 {
		for _, ds := range st.List() {
			names = append(names, ds.Name)
		}
	}

	if err := os.MkdirAll(c.outDir, 0755); err != nil {
		slog.Error("failed to create output dir", "error", err)
		return subcommands.ExitFailure
	}

	for _, name := range names {
		ds, err := st.Get(name)
		if err != nil {
			slog.Error("unknown dataset", "name", name)
			return subcommands.ExitFailure
		}
		path := filepath.Join(c.outDir, fmt.Sprintf("%s.%s", ds.Name, sv.Extension()))
		out, err := os.Create(path)
		if err != nil {
			slog.Error("failed to create output file", "path", path, "error", err)
			return subcommands.ExitFailure
		}
		err = sv.Save(ds, out)
		out.Close()
		if err != nil {
			slog.Error("export failed", "dataset", name, "error", err)
			return subcommands.ExitFailure
		}
		slog.Info("exported", "dataset", name, "path", path, "rows", ds.NumRows())
	}
	return subcommands.ExitSuccess
}
