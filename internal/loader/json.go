package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"cryptometric/internal/model"
)

// JSONLoader loads a JSON array of flat objects, the shape the JSON exporter
// writes, so exported datasets can be loaded back.
type JSONLoader struct{}

func (JSONLoader) Extension() string { return "json" }

func (JSONLoader) Load(path string) (*model.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	var objs []map[string]any
	if err := json.Unmarshal(data, &objs); err != nil {
		return nil, fmt.Errorf("parse json %s: %w", filepath.Base(path), err)
	}
	if len(objs) == 0 {
		return nil, fmt.Errorf("json %s: no records", filepath.Base(path))
	}

	// Column order: keys of the first object, sorted for determinism since
	// JSON objects carry no order.
	keys := make([]string, 0, len(objs[0]))
	for k := range objs[0] {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ds := &model.Dataset{
		Name: DatasetName(path),
		Path: path,
	}
	ds.Columns = make([]model.Column, len(keys))
	for i, k := range keys {
		ds.Columns[i] = model.Column{Key: ToSnakeCase(k), Label: k}
	}

	ds.Rows = make([][]model.Value, len(objs))
	for i, obj := range objs {
		row := make([]model.Value, len(keys))
		for j, k := range keys {
			row[j] = jsonValue(obj[k])
		}
		ds.Rows[i] = row
	}

	inferKinds(ds)
	return ds, nil
}

func jsonValue(v any) model.Value {
	switch t := v.(type) {
	case nil:
		return model.Value{}
	case float64:
		return model.Value{Raw: strconv.FormatFloat(t, 'f', -1, 64), Num: t, Numeric: true}
	case bool:
		return model.Value{Raw: strconv.FormatBool(t)}
	case string:
		return parseCell(strings.TrimSpace(t))
	default:
		b, _ := json.Marshal(t)
		return model.Value{Raw: string(b)}
	}
}
