package saver

import (
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"cryptometric/internal/model"
)

// ErrUnsupportedDataset is returned when a format cannot represent the
// dataset at all. Callers can tell this apart from a write failure and
// reject the request up front.
var ErrUnsupportedDataset = errors.New("unsupported dataset for format")

// ParquetSaver writes a dataset as Parquet. Parquet needs a fixed schema, so
// only the typed datasets are supported; arbitrary tables export as csv/json.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string   { return "parquet" }
func (ParquetSaver) ContentType() string { return "application/vnd.apache.parquet" }

func (ParquetSaver) Save(ds *model.Dataset, w io.Writer) error {
	switch ds.Name {
	case "staking_data":
		recs, err := model.StakingRecords(ds)
		if err != nil {
			return err
		}
		return writeParquet(w, recs)
	case "price_data":
		recs, err := model.PriceRecords(ds)
		if err != nil {
			return err
		}
		return writeParquet(w, recs)
	default:
		return fmt.Errorf("%w: parquet export supports typed datasets only, not %q (use csv or json)",
			ErrUnsupportedDataset, ds.Name)
	}
}

func writeParquet[T any](w io.Writer, rows []T) error {
	pw := parquet.NewGenericWriter[T](w)
	if _, err := pw.Write(rows); err != nil {
		return err
	}
	return pw.Close()
}
