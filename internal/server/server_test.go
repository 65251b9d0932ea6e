package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"cryptometric/internal/analytics"
	"cryptometric/internal/store"
)

const stakingCSV = "assets,staking_marketcap,net_issuance,inflation_rate,reward_rate\n" +
	"ETH,112500000000,2600000000,0.0051,0.0345\n" +
	"SOL,54300000000,3900000000,0.0512,0.0702\n"

const priceCSV = "assets,price,circulating_supply,reward_rate,Earnings,earnings_per_share,price_to_earnings\n" +
	"ETH,3421.5,120250000,0.0345,2711000000,22.54,151.8\n" +
	"SOL,162.3,467800000,0.0702,1240000000,2.65,61.2\n"

func newTestServerWithFiles(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(dir, logger)
	if err := st.Load(); err != nil {
		t.Fatal(err)
	}
	s := New(st, analytics.DefaultParams(), prometheus.NewRegistry(), logger)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerWithFiles(t, map[string]string{
		"staking_data.csv": stakingCSV,
		"price_data.csv":   priceCSV,
	})
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]string
	resp := getJSON(t, ts.URL+"/healthz", &body)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("status=%d body=%v", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestListDatasets(t *testing.T) {
	ts := newTestServer(t)
	var body struct {
		Datasets []struct {
			Name    string `json:"name"`
			Rows    int    `json:"rows"`
			Columns int    `json:"columns"`
		} `json:"datasets"`
	}
	resp := getJSON(t, ts.URL+"/api/datasets", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(body.Datasets) != 2 {
		t.Fatalf("datasets = %d, want 2", len(body.Datasets))
	}
	if body.Datasets[1].Name != "staking_data" || body.Datasets[1].Rows != 2 {
		t.Errorf("unexpected dataset summary: %+v", body.Datasets[1])
	}
}

func TestGetDataset(t *testing.T) {
	ts := newTestServer(t)
	var body struct {
		Name string  `json:"name"`
		Rows [][]any `json:"rows"`
	}
	resp := getJSON(t, ts.URL+"/api/datasets/price_data", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body.Name != "price_data" || len(body.Rows) != 2 {
		t.Errorf("name=%q rows=%d", body.Name, len(body.Rows))
	}
	if body.Rows[0][0] != "ETH" {
		t.Errorf("rows[0][0] = %v, want ETH", body.Rows[0][0])
	}
	if body.Rows[0][1] != 3421.5 {
		t.Errorf("rows[0][1] = %v, want 3421.5", body.Rows[0][1])
	}
}

func TestGetDatasetNotFound(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]string
	resp := getJSON(t, ts.URL+"/api/datasets/nope", &body)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body["error"] == "" {
		t.Error("404 must carry an error body, not an empty render")
	}
}

func TestStakingView(t *testing.T) {
	ts := newTestServer(t)
	var view analytics.StakingView
	resp := getJSON(t, ts.URL+"/api/views/staking", &view)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(view.Table.Rows) != 2 || len(view.Charts) != 4 {
		t.Errorf("rows=%d charts=%d", len(view.Table.Rows), len(view.Charts))
	}
	if view.Table.Rows[0][1] != "$112.5B" {
		t.Errorf("marketcap cell = %q", view.Table.Rows[0][1])
	}
}

func TestPriceView(t *testing.T) {
	ts := newTestServer(t)
	var view analytics.PriceView
	resp := getJSON(t, ts.URL+"/api/views/price", &view)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(view.Charts) != 12 {
		t.Errorf("charts = %d, want 12", len(view.Charts))
	}
}

func TestPriceViewZeroEarningsFailsLoudly(t *testing.T) {
	zeroEarnings := "assets,price,circulating_supply,reward_rate,Earnings,earnings_per_share,price_to_earnings\n" +
		"ETH,3421.5,120250000,0.0345,0,0,0\n"
	ts := newTestServerWithFiles(t, map[string]string{
		"staking_data.csv": stakingCSV,
		"price_data.csv":   zeroEarnings,
	})

	var body map[string]string
	resp := getJSON(t, ts.URL+"/api/views/price", &body)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if body["error"] == "" {
		t.Error("500 must carry an error body, not an empty render")
	}
	if !strings.Contains(body["error"], "ETH") {
		t.Errorf("error should name the offending asset: %q", body["error"])
	}
}

func TestExportCSV(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/datasets/staking_data/export?format=csv")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("lines = %d, want header + 2 rows", len(lines))
	}
}

func TestExportBadFormat(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]string
	resp := getJSON(t, ts.URL+"/api/datasets/staking_data/export?format=xlsx", &body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExportParquetUntypedDataset(t *testing.T) {
	ts := newTestServerWithFiles(t, map[string]string{
		"staking_data.csv": stakingCSV,
		"price_data.csv":   priceCSV,
		"notes.csv":        "a,b\n1,2\n",
	})

	var body map[string]string
	resp := getJSON(t, ts.URL+"/api/datasets/notes/export?format=parquet", &body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want the json error body, not attachment headers", ct)
	}
	if body["error"] == "" {
		t.Error("rejection must carry an error body, not an empty download")
	}
}

func TestReload(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/reload", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["datasets"] != 2 {
		t.Errorf("datasets = %d, want 2", body["datasets"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	// generate a request first so counters exist
	getJSON(t, ts.URL+"/healthz", nil)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "cryptometric_datasets_loaded 2") {
		t.Error("datasets_loaded gauge not exported")
	}
}

func TestIndexPage(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "Cryptocurrency Asset Metrics") {
		t.Error("index page missing title")
	}
}
