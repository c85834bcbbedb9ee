// Package slice provides in-memory DataSources built from Go values, maps
// and JSON documents.
package slice

import (
	"fmt"
	"sort"
	"time"

	"github.com/goccy/go-json"

	"github.com/magpierre/gridaccess/datatable"
)

// Source is a read-only in-memory DataSource.
type Source struct {
	names    []string
	types    []datatable.DataType
	rows     [][]datatable.Value
	metadata datatable.Metadata
}

// NewFromValues creates a Source from typed values. Every row must have
// one value per column.
func NewFromValues(names []string, types []datatable.DataType, rows [][]datatable.Value) (*Source, error) {
	if len(names) != len(types) {
		return nil, fmt.Errorf("%w: %d names for %d types", datatable.ErrInvalidColumn, len(names), len(types))
	}
	for i, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", datatable.ErrInvalidRow, i, len(row), len(names))
		}
	}
	return &Source{
		names:    names,
		types:    types,
		rows:     rows,
		metadata: datatable.Metadata{"source": "slice"},
	}, nil
}

// NewFromRows creates a Source from raw Go values. Column types are taken
// from the first non-nil value of each column.
func NewFromRows(names []string, rows [][]interface{}) (*Source, error) {
	types := make([]datatable.DataType, len(names))
	for col := range names {
		types[col] = datatable.TypeString
		for _, row := range rows {
			if col < len(row) && row[col] != nil {
				types[col] = InferType(row[col])
				break
			}
		}
	}

	values := make([][]datatable.Value, len(rows))
	for i, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", datatable.ErrInvalidRow, i, len(row), len(names))
		}
		values[i] = make([]datatable.Value, len(names))
		for col, raw := range row {
			values[i][col] = toValue(raw, types[col])
		}
	}
	return NewFromValues(names, types, values)
}

// NewFromMaps creates a Source from records. The columns are the union of
// all keys, sorted by name.
func NewFromMaps(records []map[string]interface{}) (*Source, error) {
	if len(records) == 0 {
		return nil, datatable.ErrEmptyData
	}

	seen := make(map[string]bool)
	var names []string
	for _, rec := range records {
		for key := range rec {
			if !seen[key] {
				seen[key] = true
				names = append(names, key)
			}
		}
	}
	sort.Strings(names)

	rows := make([][]interface{}, len(records))
	for i, rec := range records {
		rows[i] = make([]interface{}, len(names))
		for col, name := range names {
			rows[i][col] = rec[name]
		}
	}
	return NewFromRows(names, rows)
}

// InferType returns the DataType of a raw Go value.
func InferType(raw interface{}) datatable.DataType {
	switch raw.(type) {
	case bool:
		return datatable.TypeBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return datatable.TypeInt
	case float32, float64, json.Number:
		return datatable.TypeFloat
	case time.Time:
		return datatable.TypeTimestamp
	case []byte:
		return datatable.TypeBinary
	case map[string]interface{}:
		return datatable.TypeStruct
	case []interface{}:
		return datatable.TypeList
	default:
		return datatable.TypeString
	}
}

func toValue(raw interface{}, typ datatable.DataType) datatable.Value {
	switch v := raw.(type) {
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return datatable.NewValue(raw, typ)
		}
		return datatable.Value{Raw: raw, Type: typ, Formatted: string(b)}
	case json.Number:
		return datatable.Value{Raw: raw, Type: typ, Formatted: v.String()}
	}
	return datatable.NewValue(raw, typ)
}

// RowCount implements datatable.DataSource.
func (s *Source) RowCount() int {
	return len(s.rows)
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
	if row < 0 || row >= len(s.rows) {
		return datatable.Value{}, fmt.Errorf("%w: %d", datatable.ErrInvalidRow, row)
	}
	if col < 0 || col >= len(s.names) {
		return datatable.Value{}, fmt.Errorf("%w: %d", datatable.ErrInvalidColumn, col)
	}
	return s.rows[row][col], nil
}

// Row implements datatable.DataSource.
func (s *Source) Row(row int) ([]datatable.Value, error) {
	if row < 0 || row >= len(s.rows) {
		return nil, fmt.Errorf("%w: %d", datatable.ErrInvalidRow, row)
	}
	return append([]datatable.Value(nil), s.rows[row]...), nil
}

// Metadata implements datatable.DataSource.
func (s *Source) Metadata() datatable.Metadata {
	return s.metadata
}

// SetMetadata replaces the metadata of the source.
func (s *Source) SetMetadata(md datatable.Metadata) {
	s.metadata = md
}
