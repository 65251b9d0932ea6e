package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"cryptometric/internal/analytics"
	"cryptometric/internal/model"
	"cryptometric/internal/saver"
	"cryptometric/internal/store"
)

// Datasets the built-in views are bound to, by file stem.
const (
	stakingDataset = "staking_data"
	priceDataset   = "price_data"
)

// writeJSON marshals before touching the connection, so an encoding failure
// still becomes an error status instead of a truncated 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(map[string]string{"error": err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

// writeError surfaces the failure message as-is in the response body.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func errStatus(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type datasetSummary struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	list := s.store.List()
	out := make([]datasetSummary, 0, len(list))
	for _, ds := range list {
		out = append(out, datasetSummary{Name: ds.Name, Rows: ds.NumRows(), Columns: ds.NumCols()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"datasets": out})
}

type datasetPayload struct {
	Name    string         `json:"name"`
	Columns []model.Column `json:"columns"`
	Rows    [][]any        `json:"rows"`
}

func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Get(r.PathValue("name"))
	if err != nil {
		writeError(w, errStatus(err), err)
		return
	}
	payload := datasetPayload{Name: ds.Name, Columns: ds.Columns}
	payload.Rows = make([][]any, len(ds.Rows))
	for i, row := range ds.Rows {
		out := make([]any, len(row))
		for j, v := range row {
			if v.Numeric {
				out[j] = v.Num
			} else {
				out[j] = v.Raw
			}
		}
		payload.Rows[i] = out
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Get(r.PathValue("name"))
	if err != nil {
		writeError(w, errStatus(err), err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	sv := saver.NewDatasetSaver(format)
	if sv == nil {
		writeError(w, http.StatusBadRequest,
			fmt.Errorf("unsupported format %q (use: csv, json, parquet)", format))
		return
	}
	// Serialize into memory first: a dataset the format cannot represent
	// must answer with an error status, not attachment headers and no body.
	var buf bytes.Buffer
	if err := sv.Save(ds, &buf); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, saver.ErrUnsupportedDataset) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	w.Header().Set("Content-Type", sv.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.%s", ds.Name, sv.Extension()))
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("export write failed", "dataset", ds.Name, "format", format, "error", err)
	}
}

func (s *Server) handleStakingView(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Get(stakingDataset)
	if err != nil {
		s.metrics.RenderFailures.Inc()
		writeError(w, errStatus(err), err)
		return
	}
	view, err := analytics.StakingViewFromDataset(ds)
	if err != nil {
		s.metrics.RenderFailures.Inc()
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handlePriceView(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Get(priceDataset)
	if err != nil {
		s.metrics.RenderFailures.Inc()
		writeError(w, errStatus(err), err)
		return
	}
	view, err := analytics.PriceViewFromDataset(ds, s.params)
	if err != nil {
		s.metrics.RenderFailures.Inc()
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reload(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.ReloadsTotal.Inc()
	s.metrics.ObserveStore(s.store)
	writeJSON(w, http.StatusOK, map[string]any{"datasets": len(s.store.List())})
}
