// Package export writes summary views in columnar and delimited formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"vgsales/internal/models"
)

var salesColumns = []string{"NA_Sales", "EU_Sales", "JP_Sales", "Other_Sales", "Global_Sales"}

// Schema returns the Arrow schema of a view keyed by keyName.
func Schema(keyName string) *arrow.Schema {
	fields := []arrow.Field{{Name: keyName, Type: arrow.BinaryTypes.String}}
	for _, c := range salesColumns {
		fields = append(fields, arrow.Field{Name: c, Type: arrow.PrimitiveTypes.Float64})
	}
	return arrow.NewSchema(fields, nil)
}

// Record builds an Arrow record from rows. The caller must Release it.
func Record(mem memory.Allocator, keyName string, rows []models.AggregatedRow) arrow.Record {
	rb := array.NewRecordBuilder(mem, Schema(keyName))
	defer rb.Release()

	keyBuilder := rb.Field(0).(*array.StringBuilder)
	naBuilder := rb.Field(1).(*array.Float64Builder)
	euBuilder := rb.Field(2).(*array.Float64Builder)
	jpBuilder := rb.Field(3).(*array.Float64Builder)
	otherBuilder := rb.Field(4).(*array.Float64Builder)
	globalBuilder := rb.Field(5).(*array.Float64Builder)

	for _, r := range rows {
		keyBuilder.Append(r.Key)
		naBuilder.Append(r.NA)
		euBuilder.Append(r.EU)
		jpBuilder.Append(r.JP)
		otherBuilder.Append(r.Other)
		globalBuilder.Append(r.Global)
	}
	return rb.NewRecord()
}

// WriteArrow writes rows to w as a single-batch Arrow IPC stream.
func WriteArrow(w io.Writer, keyName string, rows []models.AggregatedRow) error {
	rec := Record(memory.DefaultAllocator, keyName, rows)
	defer rec.Release()

	iw := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()))
	if err := iw.Write(rec); err != nil {
		iw.Close()
		return fmt.Errorf("write arrow batch: %w", err)
	}
	return iw.Close()
}

// WriteCSV writes rows to w with a header row.
func WriteCSV(w io.Writer, keyName string, rows []models.AggregatedRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{keyName}, salesColumns...)); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Key,
			formatSales(r.NA),
			formatSales(r.EU),
			formatSales(r.JP),
			formatSales(r.Other),
			formatSales(r.Global),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatSales(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
