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
	"strconv"

	"github.com/magpierre/gridaccess/datatable"
)

// Cell is the accessible of one (row, column) pair. Its content is always
// read from the data source; the cached text and state only serve change
// detection.
type Cell struct {
	row         *Row
	column      *datatable.Column
	cachedText  string
	cachedState State
	defunct     bool
}

func newCell(row *Row, col *datatable.Column) *Cell {
	c := &Cell{row: row, column: col}
	c.cachedText = c.currentText()
	c.cachedState = c.computeState()
	return c
}

func (c *Cell) check(op string) error {
	if c.defunct {
		return c.row.tree.staleError(op, "row", c.row.index, "column", c.column.ID())
	}
	return nil
}

func (c *Cell) source() datatable.GridDataSource {
	return c.row.tree.source
}

func (c *Cell) currentText() string {
	return c.source().CellText(c.row.index, c.column)
}

// Defunct reports whether the owning row has shut the cell down.
func (c *Cell) Defunct() bool {
	return c.defunct
}

// Column returns the column handle the cell is bound to.
func (c *Cell) Column() *datatable.Column {
	return c.column
}

// Row returns the owning row.
func (c *Cell) Row() *Row {
	return c.row
}

// Role implements Accessible.
func (c *Cell) Role() Role {
	return RoleGridCell
}

// Text returns the current text of the cell as reported by the host.
func (c *Cell) Text() (string, error) {
	if err := c.check("Text"); err != nil {
		return "", err
	}
	return c.currentText(), nil
}

// Name implements Accessible.
func (c *Cell) Name() (string, error) {
	if err := c.check("Name"); err != nil {
		return "", err
	}
	text := c.currentText()
	if f := c.row.tree.cfg.NameFormatter; f != nil {
		return f.FormatName(c.source().ColumnHeaderText(c.column), text), nil
	}
	return text, nil
}

// Revalidate compares the current text with the cached text and updates the
// cache. It returns true iff the text changed. A defunct cell reports no
// change.
func (c *Cell) Revalidate() bool {
	if err := c.check("Revalidate"); err != nil {
		return false
	}
	text := c.currentText()
	if text == c.cachedText {
		return false
	}
	c.cachedText = text
	return true
}

// revalidateState updates the cached state and reports whether it changed.
func (c *Cell) revalidateState() bool {
	if c.defunct {
		return false
	}
	state := c.computeState()
	if state == c.cachedState {
		return false
	}
	c.cachedState = state
	return true
}

func (c *Cell) isCheckbox() bool {
	cb, ok := c.source().(datatable.CheckboxColumns)
	return ok && cb.IsColumnCheckbox(c.column)
}

func (c *Cell) isChecked() bool {
	b, err := strconv.ParseBool(c.currentText())
	return err == nil && b
}

func (c *Cell) isEditable() bool {
	src := c.source()
	if !src.IsColumnEditable(c.column) {
		return false
	}
	if e, ok := src.(datatable.CellEditability); ok {
		return e.IsCellEditable(c.row.index, c.column)
	}
	return true
}

func (c *Cell) computeState() State {
	state := StateFocusable | StateSelectable
	if c.source().IsRowSelected(c.row.index) {
		state |= StateSelected
	}
	if c.isCheckbox() {
		state |= StateCheckable
		if c.isChecked() {
			state |= StateChecked
		}
	}
	if c.isEditable() {
		state |= StateEditable
	}
	return state
}

// State implements Accessible.
func (c *Cell) State() (State, error) {
	if err := c.check("State"); err != nil {
		return StateDefunct, err
	}
	return c.computeState(), nil
}

// Selected reports whether the owning row is selected.
func (c *Cell) Selected() (bool, error) {
	if err := c.check("Selected"); err != nil {
		return false, err
	}
	return c.source().IsRowSelected(c.row.index), nil
}

// IsEditable reports whether the host lets the cell be edited.
func (c *Cell) IsEditable() (bool, error) {
	if err := c.check("IsEditable"); err != nil {
		return false, err
	}
	return c.isEditable(), nil
}

// Table returns the table the cell belongs to.
func (c *Cell) Table() *TableAdapter {
	return c.row.tree.table
}

// RowIdx returns the current row index.
func (c *Cell) RowIdx() (int, error) {
	if err := c.check("RowIdx"); err != nil {
		return -1, err
	}
	return c.row.index, nil
}

// ColIdx returns the visible index of the column. A hidden column yields
// ErrOutOfRange.
func (c *Cell) ColIdx() (int, error) {
	if err := c.check("ColIdx"); err != nil {
		return -1, err
	}
	idx := datatable.IndexOf(c.source().VisibleColumns(), c.column)
	if idx < 0 {
		return -1, fmt.Errorf("%w: column %s is not visible", ErrOutOfRange, c.column.ID())
	}
	return idx, nil
}

// IndexInParent is the position of the cell among the row's children.
func (c *Cell) IndexInParent() (int, error) {
	return c.ColIdx()
}

// ColHeaderCells returns the header of the cell's column.
func (c *Cell) ColHeaderCells() ([]*ColumnHeader, error) {
	if err := c.check("ColHeaderCells"); err != nil {
		return nil, err
	}
	h, err := c.row.tree.ColumnHeader(c.column)
	if err != nil {
		return nil, err
	}
	return []*ColumnHeader{h}, nil
}

// RowHeaderCells is always empty: the grid has no row headers.
func (c *Cell) RowHeaderCells() ([]*ColumnHeader, error) {
	if err := c.check("RowHeaderCells"); err != nil {
		return nil, err
	}
	return nil, nil
}

// Attributes returns the object attributes of the cell.
func (c *Cell) Attributes() (map[string]string, error) {
	col, err := c.ColIdx()
	if err != nil {
		return nil, err
	}
	attrs := map[string]string{
		"table-cell-index": strconv.Itoa(c.row.index*len(c.source().VisibleColumns()) + col),
	}
	if c.isCheckbox() {
		attrs["checkable"] = "true"
	}
	return attrs, nil
}

// Sibling returns the cell offset visible columns away in the same row.
func (c *Cell) Sibling(offset int) (*Cell, error) {
	idx, err := c.ColIdx()
	if err != nil {
		return nil, err
	}
	return c.row.ChildAt(idx + offset)
}

// ActionCount returns 1 for editable cells and 0 otherwise.
func (c *Cell) ActionCount() (int, error) {
	if err := c.check("ActionCount"); err != nil {
		return 0, err
	}
	if c.isEditable() {
		return 1, nil
	}
	return 0, nil
}

// ActionNameAt returns the name of the action at index.
func (c *Cell) ActionNameAt(index int) (string, error) {
	if err := c.check("ActionNameAt"); err != nil {
		return "", err
	}
	if index != 0 || !c.isEditable() {
		return "", fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if c.isCheckbox() {
		if c.isChecked() {
			return "uncheck", nil
		}
		return "check", nil
	}
	return c.row.tree.cfg.EditActionName, nil
}

// DoAction asks the host to start editing the cell.
func (c *Cell) DoAction(index int) error {
	if err := c.check("DoAction"); err != nil {
		return err
	}
	if index != 0 || !c.isEditable() {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	editor, ok := c.source().(datatable.CellEditor)
	if !ok {
		return ErrNoEditor
	}
	editor.StartEditing(c.row.index, c.column)
	return nil
}
