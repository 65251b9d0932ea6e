package model

import "fmt"

// ColumnKind classifies a dataset column by the values observed in it.
type ColumnKind string

const (
	KindText   ColumnKind = "text"
	KindNumber ColumnKind = "number"
)

// Column describes one column of a Dataset.
// Key is the snake_case identifier used by the API and analytics;
// Label keeps the original CSV header for display.
type Column struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Kind  ColumnKind `json:"kind"`
}

// Value is one parsed cell. Raw always holds the original text; Num is
// populated when the cell parsed as a number (decimal commas normalized).
type Value struct {
	Raw     string  `json:"raw"`
	Num     float64 `json:"num,omitempty"`
	Numeric bool    `json:"numeric"`
}

// Dataset is one loaded tabular file. Read-only after load: renders are
// stateless functions of the snapshot, so nothing ever mutates rows.
type Dataset struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Columns []Column  `json:"columns"`
	Rows    [][]Value `json:"rows"`
}

// NumRows returns the number of data rows (header excluded).
func (d *Dataset) NumRows() int { return len(d.Rows) }

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int { return len(d.Columns) }

// ColumnIndex returns the index of the column with the given key, or -1.
func (d *Dataset) ColumnIndex(key string) int {
	for i, c := range d.Columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Float returns the numeric value at (row, key).
// Errors when the column is missing or the cell did not parse as a number.
func (d *Dataset) Float(row int, key string) (float64, error) {
	i := d.ColumnIndex(key)
	if i < 0 {
		return 0, fmt.Errorf("dataset %s: no column %q", d.Name, key)
	}
	if row < 0 || row >= len(d.Rows) {
		return 0, fmt.Errorf("dataset %s: row %d out of range", d.Name, row)
	}
	v := d.Rows[row][i]
	if !v.Numeric {
		return 0, fmt.Errorf("dataset %s: %s[%d] = %q is not numeric", d.Name, key, row, v.Raw)
	}
	return v.Num, nil
}

// String returns the raw text at (row, key); empty when the column is missing.
func (d *Dataset) String(row int, key string) string {
	i := d.ColumnIndex(key)
	if i < 0 || row < 0 || row >= len(d.Rows) {
		return ""
	}
	return d.Rows[row][i].Raw
}

// UniqueStrings returns the distinct raw values of a column in first-seen order.
func (d *Dataset) UniqueStrings(key string) []string {
	i := d.ColumnIndex(key)
	if i < 0 {
		return nil
	}
	seen := make(map[string]bool, len(d.Rows))
	var out []string
	for _, row := range d.Rows {
		v := row[i].Raw
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
