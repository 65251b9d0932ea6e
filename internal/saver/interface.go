// Package saver exports loaded datasets back to tabular formats.
// The HTTP export endpoint and the export subcommand both go through
// DatasetSaver; neither knows which format it is writing.
package saver

import (
	"io"
	"strings"

	"cryptometric/internal/model"
)

// DatasetSaver serializes one dataset to a writer.
type DatasetSaver interface {
	Save(ds *model.Dataset, w io.Writer) error
	Extension() string
	ContentType() string
}

// NewDatasetSaver creates the implementation for a format (csv, json, parquet).
// Returns nil if the format is not supported.
func NewDatasetSaver(format string) DatasetSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "json":
		return JSONSaver{}
	case "parquet":
		return ParquetSaver{}
	default:
		return nil
	}
}
