package vartable

import (
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/carbocation/pfx"
)

func arrowType(c ColumnType) arrow.DataType {
	switch c {
	case ColumnInteger:
		return arrow.PrimitiveTypes.Int64
	case ColumnFloat:
		return arrow.PrimitiveTypes.Float64
	case ColumnBool:
		return arrow.FixedWidthTypes.Boolean
	}
	return arrow.BinaryTypes.String
}

// ArrowSchema describes the table as nullable Arrow fields.
func (t *Table) ArrowSchema() *arrow.Schema {
	fields := make([]arrow.Field, len(t.columns))
	for i, c := range t.columns {
		fields[i] = arrow.Field{Name: c.Name, Type: arrowType(c.Type), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

// ToArrow copies the table into a single Arrow record. The caller owns the
// record and must Release it.
func (t *Table) ToArrow(mem memory.Allocator) arrow.Record {
	b := array.NewRecordBuilder(mem, t.ArrowSchema())
	defer b.Release()

	for i, c := range t.columns {
		fb := b.Field(i)
		fb.Reserve(len(c.Values))

		for _, v := range c.Values {
			if v == nil {
				fb.AppendNull()
				continue
			}

			switch fb := fb.(type) {
			case *array.StringBuilder:
				fb.Append(v.(string))
			case *array.Int64Builder:
				fb.Append(v.(int64))
			case *array.Float64Builder:
				fb.Append(v.(float64))
			case *array.BooleanBuilder:
				fb.Append(v.(bool))
			}
		}
	}

	return b.NewRecord()
}

// WriteArrowIPC writes the table to w in the Arrow IPC file format.
func (t *Table) WriteArrowIPC(w io.Writer, mem memory.Allocator) error {
	rec := t.ToArrow(mem)
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err != nil {
		return pfx.Err(err)
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return pfx.Err(err)
	}
	if err := fw.Close(); err != nil {
		return pfx.Err(err)
	}
	return nil
}
