package arrow

import (
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/magpierre/gridaccess/datatable"
)

// FromDataSource copies ds into a new Arrow table. Integer, float and
// boolean columns keep their type; every other column is written as text.
// The caller must release the table.
func FromDataSource(ds datatable.DataSource, mem memory.Allocator) (arrow.Table, error) {
	if ds == nil {
		return nil, datatable.ErrNoDataSource
	}
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	fields := make([]arrow.Field, ds.ColumnCount())
	types := make([]datatable.DataType, ds.ColumnCount())
	for col := range fields {
		name, err := ds.ColumnName(col)
		if err != nil {
			return nil, err
		}
		typ, err := ds.ColumnType(col)
		if err != nil {
			return nil, err
		}
		types[col] = typ
		fields[col] = arrow.Field{Name: name, Type: arrowType(typ), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for row := 0; row < ds.RowCount(); row++ {
		values, err := ds.Row(row)
		if err != nil {
			return nil, err
		}
		for col, fb := range b.Fields() {
			var v datatable.Value
			if col < len(values) {
				v = values[col]
			} else {
				v = datatable.NewNullValue(types[col])
			}
			if err := appendValue(fb, v); err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", row, fields[col].Name, err)
			}
		}
	}

	rec := b.NewRecord()
	defer rec.Release()
	return array.NewTableFromRecords(schema, []arrow.Record{rec}), nil
}

func arrowType(typ datatable.DataType) arrow.DataType {
	switch typ {
	case datatable.TypeInt:
		return arrow.PrimitiveTypes.Int64
	case datatable.TypeFloat:
		return arrow.PrimitiveTypes.Float64
	case datatable.TypeBool:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

func appendValue(b array.Builder, v datatable.Value) error {
	if v.IsNull {
		b.AppendNull()
		return nil
	}

	switch fb := b.(type) {
	case *array.Int64Builder:
		n, err := strconv.ParseInt(v.Formatted, 10, 64)
		if err != nil {
			return err
		}
		fb.Append(n)
	case *array.Float64Builder:
		f, err := strconv.ParseFloat(v.Formatted, 64)
		if err != nil {
			return err
		}
		fb.Append(f)
	case *array.BooleanBuilder:
		fb.Append(v.Truthy())
	case *array.StringBuilder:
		fb.Append(v.Formatted)
	default:
		return fmt.Errorf("unsupported builder %T", b)
	}
	return nil
}
