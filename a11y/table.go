// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package a11y

import (
	"fmt"

	"github.com/magpierre/gridaccess/datatable"
)

// TableAdapter is the table facade of a grid. It holds no cache: every
// answer comes from the live data source and the rows already materialized
// by its RowProvider.
//
// Selection is row granular. A cell is selected when its row is; columns are
// never selected.
type TableAdapter struct {
	source datatable.GridDataSource
	rows   RowProvider
}

// NewTableAdapter creates a facade over source whose rows come from rows.
func NewTableAdapter(source datatable.GridDataSource, rows RowProvider) *TableAdapter {
	return &TableAdapter{source: source, rows: rows}
}

// Role implements Accessible.
func (t *TableAdapter) Role() Role {
	return RoleTable
}

// Name implements Accessible. Grids carry no caption.
func (t *TableAdapter) Name() (string, error) {
	return "", nil
}

// State implements Accessible.
func (t *TableAdapter) State() (State, error) {
	return StateFocusable, nil
}

// ColumnCount returns the number of visible columns.
func (t *TableAdapter) ColumnCount() int {
	return len(t.source.VisibleColumns())
}

// RowCount returns the number of rows.
func (t *TableAdapter) RowCount() int {
	return t.source.RowCount()
}

// CellAt returns the cell at a row and visible column index. The row must
// have been materialized.
func (t *TableAdapter) CellAt(row, col int) (*Cell, error) {
	if row < 0 || row >= t.source.RowCount() {
		return nil, fmt.Errorf("%w: row %d", ErrOutOfRange, row)
	}
	cols := t.source.VisibleColumns()
	if col < 0 || col >= len(cols) {
		return nil, fmt.Errorf("%w: column %d", ErrOutOfRange, col)
	}
	r, ok := t.rows.Row(row)
	if !ok {
		return nil, fmt.Errorf("%w: row %d", ErrNotFound, row)
	}
	return r.Cell(cols[col])
}

// ColDescription returns the header text of a visible column.
func (t *TableAdapter) ColDescription(col int) (string, error) {
	cols := t.source.VisibleColumns()
	if col < 0 || col >= len(cols) {
		return "", fmt.Errorf("%w: column %d", ErrOutOfRange, col)
	}
	return t.source.ColumnHeaderText(cols[col]), nil
}

// Caption is always empty; grids have no caption element.
func (t *TableAdapter) Caption() string { return "" }

// Summary is always empty.
func (t *TableAdapter) Summary() string { return "" }

// CellIndexAt returns the flat, row-major index of a cell.
func (t *TableAdapter) CellIndexAt(row, col int) (int, error) {
	cols := t.ColumnCount()
	if row < 0 || row >= t.RowCount() || col < 0 || col >= cols {
		return -1, fmt.Errorf("%w: (%d, %d)", ErrOutOfRange, row, col)
	}
	return row*cols + col, nil
}

// RowIndexAt returns the row of a flat cell index.
func (t *TableAdapter) RowIndexAt(cellIndex int) (int, error) {
	cols := t.ColumnCount()
	if cols == 0 || cellIndex < 0 || cellIndex >= cols*t.RowCount() {
		return -1, fmt.Errorf("%w: cell %d", ErrOutOfRange, cellIndex)
	}
	return cellIndex / cols, nil
}

// ColumnIndexAt returns the column of a flat cell index.
func (t *TableAdapter) ColumnIndexAt(cellIndex int) (int, error) {
	cols := t.ColumnCount()
	if cols == 0 || cellIndex < 0 || cellIndex >= cols*t.RowCount() {
		return -1, fmt.Errorf("%w: cell %d", ErrOutOfRange, cellIndex)
	}
	return cellIndex % cols, nil
}

// IsColSelected is always false.
func (t *TableAdapter) IsColSelected(int) bool {
	return false
}

// IsRowSelected reports whether the row is selected.
func (t *TableAdapter) IsRowSelected(row int) bool {
	return t.source.IsRowSelected(row)
}

// IsCellSelected reports whether the cell's row is selected and the column
// is visible.
func (t *TableAdapter) IsCellSelected(row, col int) bool {
	if col < 0 || col >= t.ColumnCount() {
		return false
	}
	return t.source.IsRowSelected(row)
}

// SelectedColCount is always 0.
func (t *TableAdapter) SelectedColCount() int {
	return 0
}

// SelectedRowCount returns the number of selected rows.
func (t *TableAdapter) SelectedRowCount() int {
	return len(t.source.SelectedRows())
}

// SelectedCellCount counts every cell of every selected row.
func (t *TableAdapter) SelectedCellCount() int {
	return t.SelectedRowCount() * t.ColumnCount()
}

// SelectedColIndices is always empty.
func (t *TableAdapter) SelectedColIndices() []int {
	return []int{}
}

// SelectedRowIndices returns the selected rows in ascending order.
func (t *TableAdapter) SelectedRowIndices() []int {
	rows := t.source.SelectedRows()
	if rows == nil {
		return []int{}
	}
	return rows
}

// SelectedCellIndices returns the flat indices of the selected cells in
// row-major order.
func (t *TableAdapter) SelectedCellIndices() []int {
	cols := t.ColumnCount()
	rows := t.source.SelectedRows()
	indices := make([]int, 0, len(rows)*cols)
	for _, row := range rows {
		for col := 0; col < cols; col++ {
			indices = append(indices, row*cols+col)
		}
	}
	return indices
}

// SelectedCells returns the cells of every selected row in row-major order.
// Rows that have no accessible yet are materialized.
func (t *TableAdapter) SelectedCells() ([]*Cell, error) {
	cols := t.source.VisibleColumns()
	rows := t.source.SelectedRows()
	cells := make([]*Cell, 0, len(rows)*len(cols))
	for _, row := range rows {
		r, err := t.rows.EnsureRow(row)
		if err != nil {
			return nil, err
		}
		for _, col := range cols {
			c, err := r.Cell(col)
			if err != nil {
				return nil, err
			}
			cells = append(cells, c)
		}
	}
	return cells, nil
}

// SelectRow selects a row. Out of range rows and rows that are already
// selected are ignored.
func (t *TableAdapter) SelectRow(row int) {
	t.setRowSelected(row, true)
}

// UnselectRow unselects a row. Out of range rows and rows that are not
// selected are ignored.
func (t *TableAdapter) UnselectRow(row int) {
	t.setRowSelected(row, false)
}

func (t *TableAdapter) setRowSelected(row int, selected bool) {
	if row < 0 || row >= t.source.RowCount() {
		return
	}
	if t.source.IsRowSelected(row) == selected {
		return
	}
	t.source.SetRowSelected(row, selected)
}
