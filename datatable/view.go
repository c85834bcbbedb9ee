package datatable

import "fmt"

// gridView is a read-only snapshot of the visible part of a Grid.
type gridView struct {
	names []string
	types []DataType
	rows  [][]Value
}

// View returns a DataSource snapshot of the grid as currently displayed:
// visible columns in display order and the filtered, sorted rows.
func (g *Grid) View() DataSource {
	g.mu.RLock()
	defer g.mu.RUnlock()

	v := &gridView{}
	var visible []*gridColumn
	for _, c := range g.columns {
		if !c.hidden {
			visible = append(visible, c)
			v.names = append(v.names, c.header)
			v.types = append(v.types, c.typ)
		}
	}
	for _, r := range g.view {
		row := make([]Value, len(visible))
		for i, c := range visible {
			if c.index < len(r.values) {
				row[i] = r.values[c.index]
			} else {
				row[i] = NewNullValue(c.typ)
			}
		}
		v.rows = append(v.rows, row)
	}
	return v
}

func (v *gridView) RowCount() int    { return len(v.rows) }
func (v *gridView) ColumnCount() int { return len(v.names) }
func (v *gridView) Metadata() Metadata {
	return Metadata{"source": "grid"}
}

func (v *gridView) ColumnName(col int) (string, error) {
	if col < 0 || col >= len(v.names) {
		return "", fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}
	return v.names[col], nil
}

func (v *gridView) ColumnType(col int) (DataType, error) {
	if col < 0 || col >= len(v.types) {
		return TypeString, fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}
	return v.types[col], nil
}

func (v *gridView) Cell(row, col int) (Value, error) {
	if row < 0 || row >= len(v.rows) {
		return Value{}, fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	if col < 0 || col >= len(v.names) {
		return Value{}, fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}
	return v.rows[row][col], nil
}

func (v *gridView) Row(row int) ([]Value, error) {
	if row < 0 || row >= len(v.rows) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	return append([]Value(nil), v.rows[row]...), nil
}
