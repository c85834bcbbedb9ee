// Package arrow provides a DataSource over Apache Arrow tables, with
// helpers to read and write Parquet files.
package arrow

import (
	"fmt"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/magpierre/gridaccess/datatable"
)

// Source is a read-only DataSource backed by an arrow.Table.
// The table is retained until Release is called.
type Source struct {
	table  arrow.Table
	names  []string
	types  []datatable.DataType
	chunks [][]arrow.Array
	starts [][]int // first row of each chunk, per column
	rows   int
}

// NewFromArrowTable wraps table. The caller keeps its own reference.
func NewFromArrowTable(table arrow.Table) (*Source, error) {
	if table == nil {
		return nil, datatable.ErrNoDataSource
	}

	schema := table.Schema()
	s := &Source{
		table: table,
		rows:  int(table.NumRows()),
	}
	for i := 0; i < int(table.NumCols()); i++ {
		field := schema.Field(i)
		s.names = append(s.names, field.Name)
		s.types = append(s.types, MapType(field.Type))

		var chunks []arrow.Array
		var starts []int
		offset := 0
		for _, chunk := range table.Column(i).Data().Chunks() {
			chunks = append(chunks, chunk)
			starts = append(starts, offset)
			offset += chunk.Len()
		}
		s.chunks = append(s.chunks, chunks)
		s.starts = append(s.starts, starts)
	}

	table.Retain()
	return s, nil
}

// Release drops the reference to the underlying table.
func (s *Source) Release() {
	if s.table != nil {
		s.table.Release()
		s.table = nil
	}
}

// Table returns the underlying table.
func (s *Source) Table() arrow.Table {
	return s.table
}

// RowCount implements datatable.DataSource.
func (s *Source) RowCount() int {
	return s.rows
}

// ColumnCount implements datatable.DataSource.
func (s *Source) ColumnCount() int {
	return len(s.names)
}

// ColumnName implements datatable.DataSource.
func (s *Source) ColumnName(col int) (string, error) {
	if col < 0 || col >= len(s.names) {
		return "", fmt.Errorf("%w: %d", datatable.ErrInvalidColumn, col)
	}
	return s.names[col], nil
}

// ColumnType implements datatable.DataSource.
func (s *Source) ColumnType(col int) (datatable.DataType, error) {
	if col < 0 || col >= len(s.types) {
		return datatable.TypeString, fmt.Errorf("%w: %d", datatable.ErrInvalidColumn, col)
	}
	return s.types[col], nil
}

// Cell implements datatable.DataSource.
func (s *Source) Cell(row, col int) (datatable.Value, error) {
	if row < 0 || row >= s.rows {
		return datatable.Value{}, fmt.Errorf("%w: %d", datatable.ErrInvalidRow, row)
	}
	if col < 0 || col >= len(s.names) {
		return datatable.Value{}, fmt.Errorf("%w: %d", datatable.ErrInvalidColumn, col)
	}

	starts := s.starts[col]
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > row }) - 1
	return valueAt(s.chunks[col][i], row-starts[i], s.types[col]), nil
}

// Row implements datatable.DataSource.
func (s *Source) Row(row int) ([]datatable.Value, error) {
	if row < 0 || row >= s.rows {
		return nil, fmt.Errorf("%w: %d", datatable.ErrInvalidRow, row)
	}
	values := make([]datatable.Value, len(s.names))
	for col := range s.names {
		v, err := s.Cell(row, col)
		if err != nil {
			return nil, err
		}
		values[col] = v
	}
	return values, nil
}

// Metadata implements datatable.DataSource.
func (s *Source) Metadata() datatable.Metadata {
	md := datatable.Metadata{"source": "arrow"}
	if meta := s.table.Schema().Metadata(); meta.Len() > 0 {
		for i, key := range meta.Keys() {
			md[key] = meta.Values()[i]
		}
	}
	return md
}

// MapType converts an Arrow type to the closest DataType.
func MapType(dt arrow.DataType) datatable.DataType {
	switch dt.ID() {
	case arrow.BOOL:
		return datatable.TypeBool
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return datatable.TypeInt
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return datatable.TypeFloat
	case arrow.DATE32, arrow.DATE64:
		return datatable.TypeDate
	case arrow.TIMESTAMP:
		return datatable.TypeTimestamp
	case arrow.DECIMAL128, arrow.DECIMAL256:
		return datatable.TypeDecimal
	case arrow.BINARY, arrow.LARGE_BINARY, arrow.FIXED_SIZE_BINARY:
		return datatable.TypeBinary
	case arrow.STRUCT:
		return datatable.TypeStruct
	case arrow.LIST, arrow.LARGE_LIST, arrow.FIXED_SIZE_LIST:
		return datatable.TypeList
	default:
		return datatable.TypeString
	}
}

// valueAt reads one element of an Arrow array as a Value.
func valueAt(col arrow.Array, pos int, typ datatable.DataType) datatable.Value {
	if col.IsNull(pos) {
		return datatable.NewNullValue(typ)
	}

	switch c := col.(type) {
	case *array.String:
		return datatable.NewValue(c.Value(pos), typ)
	case *array.LargeString:
		return datatable.NewValue(c.Value(pos), typ)
	case *array.Binary:
		return datatable.NewValue(c.Value(pos), typ)
	case *array.Boolean:
		return datatable.NewValue(c.Value(pos), typ)
	case *array.Int8:
		return datatable.NewValue(int64(c.Value(pos)), typ)
	case *array.Int16:
		return datatable.NewValue(int64(c.Value(pos)), typ)
	case *array.Int32:
		return datatable.NewValue(int64(c.Value(pos)), typ)
	case *array.Int64:
		return datatable.NewValue(c.Value(pos), typ)
	case *array.Uint8:
		return datatable.NewValue(uint64(c.Value(pos)), typ)
	case *array.Uint16:
		return datatable.NewValue(uint64(c.Value(pos)), typ)
	case *array.Uint32:
		return datatable.NewValue(uint64(c.Value(pos)), typ)
	case *array.Uint64:
		return datatable.NewValue(c.Value(pos), typ)
	case *array.Float16:
		return datatable.NewValue(float64(c.Value(pos).Float32()), typ)
	case *array.Float32:
		return datatable.NewValue(c.Value(pos), typ)
	case *array.Float64:
		return datatable.NewValue(c.Value(pos), typ)
	case *array.Date32:
		return datatable.NewValue(c.Value(pos).ToTime().UTC(), typ)
	case *array.Date64:
		return datatable.NewValue(c.Value(pos).ToTime().UTC(), typ)
	case *array.Timestamp:
		unit := c.DataType().(*arrow.TimestampType).Unit
		return datatable.NewValue(c.Value(pos).ToTime(unit).UTC(), typ)
	case *array.Decimal128:
		return datatable.NewValue(c.ValueStr(pos), typ)
	}

	// Nested and less common types keep Arrow's own rendering.
	return datatable.Value{
		Raw:       col.GetOneForMarshal(pos),
		Type:      typ,
		Formatted: col.ValueStr(pos),
	}
}
