package saver

import (
	"encoding/csv"
	"io"
	"strconv"

	"cryptometric/internal/model"
)

// CSVSaver writes a dataset as CSV using the original header labels, so a
// CSV export of an untouched CSV dataset is loadable back to the same table.
type CSVSaver struct{}

func (CSVSaver) Extension() string   { return "csv" }
func (CSVSaver) ContentType() string { return "text/csv" }

func (CSVSaver) Save(ds *model.Dataset, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c.Label
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i, v := range row {
			if v.Numeric {
				record[i] = strconv.FormatFloat(v.Num, 'f', -1, 64)
			} else {
				record[i] = v.Raw
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
