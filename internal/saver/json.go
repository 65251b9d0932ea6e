package saver

import (
	"encoding/json"
	"io"

	"cryptometric/internal/model"
)

// JSONSaver writes a dataset as an indented array of flat objects, the shape
// the JSON loader reads back.
type JSONSaver struct{}

func (JSONSaver) Extension() string   { return "json" }
func (JSONSaver) ContentType() string { return "application/json" }

func (JSONSaver) Save(ds *model.Dataset, w io.Writer) error {
	objs := make([]map[string]any, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		obj := make(map[string]any, len(ds.Columns))
		for i, c := range ds.Columns {
			v := row[i]
			if v.Numeric {
				obj[c.Key] = v.Num
			} else {
				obj[c.Key] = v.Raw
			}
		}
		objs = append(objs, obj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(objs)
}
