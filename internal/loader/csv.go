package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cryptometric/internal/model"
)

// CSVLoader loads a comma-separated file with a header row.
type CSVLoader struct{}

func (CSVLoader) Extension() string { return "csv" }

// Load parses the file into a Dataset. A missing file or malformed CSV is a
// hard error; there is no retry or partial recovery.
func (CSVLoader) Load(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %s: no header row", filepath.Base(path))
	}

	headers := records[0]
	rows := records[1:]

	ds := &model.Dataset{
		Name: DatasetName(path),
		Path: path,
	}
	ds.Columns = make([]model.Column, len(headers))
	for i, h := range headers {
		ds.Columns[i] = model.Column{
			Key:   ToSnakeCase(strings.TrimSpace(h)),
			Label: strings.TrimSpace(h),
		}
	}

	ds.Rows = make([][]model.Value, len(rows))
	for i, raw := range rows {
		if len(raw) != len(headers) {
			return nil, fmt.Errorf("csv %s: row %d has %d fields, header has %d",
				filepath.Base(path), i+1, len(raw), len(headers))
		}
		row := make([]model.Value, len(raw))
		for j, cell := range raw {
			row[j] = parseCell(strings.TrimSpace(cell))
		}
		ds.Rows[i] = row
	}

	inferKinds(ds)
	return ds, nil
}

// DatasetName returns the file stem used as the dataset key
// ("offline_data/price_data.csv" → "price_data").
func DatasetName(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

// ToSnakeCase converts "Column Name" → "column_name".
func ToSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
