package loader

import (
	"strconv"
	"strings"

	"cryptometric/internal/model"
)

// Column classification: sample the parsed cells and mark a column numeric
// when every non-empty cell parsed as a number. Cardinality and role
// heuristics beyond that are left to the views, which know their datasets.

// inferSampleSize caps how many rows are inspected per column.
const inferSampleSize = 1000

func inferKinds(ds *model.Dataset) {
	limit := len(ds.Rows)
	if limit > inferSampleSize {
		limit = inferSampleSize
	}
	for j := range ds.Columns {
		kind := model.KindText
		numeric := 0
		nonEmpty := 0
		for i := 0; i < limit; i++ {
			v := ds.Rows[i][j]
			if v.Raw == "" {
				continue
			}
			nonEmpty++
			if v.Numeric {
				numeric++
			}
		}
		if nonEmpty > 0 && numeric == nonEmpty {
			kind = model.KindNumber
		}
		ds.Columns[j].Kind = kind
	}
}

// parseCell parses one trimmed cell. Values written with a decimal comma
// ("1,5") are normalized to a period before parsing, matching the source
// files this dashboard was built for.
func parseCell(s string) model.Value {
	v := model.Value{Raw: s}
	if s == "" {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		v.Num = f
		v.Numeric = true
		return v
	}
	if strings.Contains(s, ",") {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
			v.Num = f
			v.Numeric = true
		}
	}
	return v
}
