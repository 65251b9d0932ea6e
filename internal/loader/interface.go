// Package loader reads tabular dataset files into model.Dataset.
//
// A RecordLoader owns one on-disk format. The store picks the loader by file
// extension; unsupported files are skipped during directory scans.
package loader

import (
	"strings"

	"cryptometric/internal/model"
)

// RecordLoader is the abstraction for loading one dataset file.
// Implementations must preserve row and column counts exactly: the loader is
// the only place data enters the dashboard, and a lossy load renders wrong.
type RecordLoader interface {
	Load(path string) (*model.Dataset, error)
	Extension() string
}

// ForFormat creates the implementation for a format (csv, json).
// Returns nil if the format is not supported.
func ForFormat(format string) RecordLoader {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVLoader{}
	case "json":
		return JSONLoader{}
	default:
		return nil
	}
}

// ForPath picks a loader from a file name extension, or nil.
func ForPath(path string) RecordLoader {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return nil
	}
	return ForFormat(path[i+1:])
}
