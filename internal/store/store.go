// Package store owns the in-memory dataset snapshot backed by a directory of
// tabular files. Datasets are loaded once per Load/Reload and never mutated;
// handlers read the snapshot concurrently under a read lock.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"cryptometric/internal/loader"
	"cryptometric/internal/model"
)

// ErrNoDatasets is returned when the data directory exists but holds no
// loadable files. Callers fail startup rather than serve an empty page.
var ErrNoDatasets = errors.New("no datasets found")

// ErrNotFound is returned by Get for unknown dataset names.
var ErrNotFound = errors.New("dataset not found")

type fingerprint struct {
	size    int64
	modTime int64
}

// Store scans a directory and keeps one Dataset per loadable file,
// keyed by file stem.
type Store struct {
	dir    string
	logger *slog.Logger

	mu       sync.RWMutex
	datasets map[string]*model.Dataset
	prints   map[string]fingerprint
}

// New creates a Store for dir. Call Load before serving.
func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:      dir,
		logger:   logger,
		datasets: make(map[string]*model.Dataset),
		prints:   make(map[string]fingerprint),
	}
}

// Dir returns the directory this store scans.
func (s *Store) Dir() string { return s.dir }

// Load scans the directory and loads every supported file. A missing
// directory, an unreadable file, a malformed table or two files sharing a
// stem fails the whole load.
func (s *Store) Load() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read data dir %s: %w", s.dir, err)
	}

	datasets := make(map[string]*model.Dataset)
	prints := make(map[string]fingerprint)

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		l := loader.ForPath(path)
		if l == nil {
			s.logger.Debug("skip unsupported file", "file", e.Name())
			continue
		}
		ds, err := l.Load(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", e.Name(), err)
		}
		if prev, ok := datasets[ds.Name]; ok {
			return fmt.Errorf("dataset %q: %s collides with %s", ds.Name, e.Name(), filepath.Base(prev.Path))
		}
		info, err := e.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		datasets[ds.Name] = ds
		prints[path] = fingerprint{size: info.Size(), modTime: info.ModTime().UnixNano()}
		s.logger.Info("dataset loaded", "name", ds.Name, "rows", ds.NumRows(), "columns", ds.NumCols())
	}

	if len(datasets) == 0 {
		return fmt.Errorf("%w in %s", ErrNoDatasets, s.dir)
	}

	s.mu.Lock()
	s.datasets = datasets
	s.prints = prints
	s.mu.Unlock()
	return nil
}

// Reload re-scans the directory. Files whose size and mtime are unchanged
// keep their already-parsed table, so reloading an untouched directory is
// idempotent and cheap. Changed or new files are parsed; removed files drop
// out of the snapshot.
func (s *Store) Reload() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read data dir %s: %w", s.dir, err)
	}

	s.mu.RLock()
	old := s.datasets
	oldPrints := s.prints
	s.mu.RUnlock()

	datasets := make(map[string]*model.Dataset)
	prints := make(map[string]fingerprint)
	changed := 0

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		l := loader.ForPath(path)
		if l == nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		fp := fingerprint{size: info.Size(), modTime: info.ModTime().UnixNano()}
		name := loader.DatasetName(path)
		if prev, ok := datasets[name]; ok {
			return fmt.Errorf("dataset %q: %s collides with %s", name, e.Name(), filepath.Base(prev.Path))
		}
		if prev, ok := oldPrints[path]; ok && prev == fp {
			if ds, ok := old[name]; ok {
				datasets[name] = ds
				prints[path] = fp
				continue
			}
		}
		ds, err := l.Load(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", e.Name(), err)
		}
		datasets[name] = ds
		prints[path] = fp
		changed++
	}

	if len(datasets) == 0 {
		return fmt.Errorf("%w in %s", ErrNoDatasets, s.dir)
	}

	s.mu.Lock()
	s.datasets = datasets
	s.prints = prints
	s.mu.Unlock()

	if changed > 0 {
		s.logger.Info("reload", "datasets", len(datasets), "reparsed", changed)
	}
	return nil
}

// Get returns the dataset with the given name.
func (s *Store) Get(name string) (*model.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return ds, nil
}

// List returns all loaded datasets sorted by name.
func (s *Store) List() []*model.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Dataset, 0, len(s.datasets))
	for _, ds := range s.datasets {
		out = append(out, ds)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of loaded datasets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}
