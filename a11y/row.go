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
	"strings"

	"github.com/magpierre/gridaccess/datatable"
)

// AllColumns as a column bound of an invalidation means the whole row
// (as start) or "to the last column" (as end).
const AllColumns = -1

// Invalidation is the outcome of revalidating cached cells.
type Invalidation struct {
	NameChanged  []*Cell // cells whose text changed
	StateChanged []*Cell // cells whose state flags changed
}

// Row is the accessible of one grid row. It owns one Cell per column
// handle; cells are created on first use and live until the row shuts down.
type Row struct {
	tree    *Tree
	index   int // kept current by the tree when the host shifts rows
	cells   map[*datatable.Column]*Cell
	defunct bool
}

func newRow(tree *Tree, index int) *Row {
	return &Row{
		tree:  tree,
		index: index,
		cells: make(map[*datatable.Column]*Cell),
	}
}

func (r *Row) check(op string) error {
	if r.defunct {
		return r.tree.staleError(op, "row", r.index)
	}
	return nil
}

// Defunct reports whether the row has been shut down.
func (r *Row) Defunct() bool {
	return r.defunct
}

// Table returns the table the row belongs to.
func (r *Row) Table() *TableAdapter {
	return r.tree.table
}

// Index returns the current row index.
func (r *Row) Index() (int, error) {
	if err := r.check("Index"); err != nil {
		return -1, err
	}
	return r.index, nil
}

// Role implements Accessible.
func (r *Row) Role() Role {
	return RoleRow
}

// Name implements Accessible. It is the text of every visible cell, in
// display order, joined by single spaces. Empty cells keep their place.
func (r *Row) Name() (string, error) {
	if err := r.check("Name"); err != nil {
		return "", err
	}
	cols := r.tree.source.VisibleColumns()
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = r.tree.source.CellText(r.index, col)
	}
	return strings.Join(parts, " "), nil
}

// State implements Accessible.
func (r *Row) State() (State, error) {
	if err := r.check("State"); err != nil {
		return StateDefunct, err
	}
	state := StateFocusable | StateSelectable
	if r.tree.source.IsRowSelected(r.index) {
		state |= StateSelected
	}
	return state, nil
}

// Cell returns the cell for col, creating it on first use. The same object
// is returned for a column for the lifetime of the row.
func (r *Row) Cell(col *datatable.Column) (*Cell, error) {
	if err := r.check("Cell"); err != nil {
		return nil, err
	}
	if col == nil {
		return nil, fmt.Errorf("%w: nil column", ErrOutOfRange)
	}
	if c, ok := r.cells[col]; ok {
		return c, nil
	}
	c := newCell(r, col)
	r.cells[col] = c
	return c, nil
}

// CachedCell returns the cell for col only if it already exists.
func (r *Row) CachedCell(col *datatable.Column) (*Cell, bool) {
	c, ok := r.cells[col]
	return c, ok
}

// ChildCount returns the number of visible columns. A defunct row has no
// children.
func (r *Row) ChildCount() int {
	if r.defunct {
		return 0
	}
	return len(r.tree.source.VisibleColumns())
}

// ChildAt returns the cell of the visible column at index.
func (r *Row) ChildAt(index int) (*Cell, error) {
	if err := r.check("ChildAt"); err != nil {
		return nil, err
	}
	cols := r.tree.source.VisibleColumns()
	if index < 0 || index >= len(cols) {
		return nil, fmt.Errorf("%w: child %d of %d", ErrOutOfRange, index, len(cols))
	}
	return r.Cell(cols[index])
}

// ColumnsInvalidated revalidates the cached cells whose column currently
// sits in the inclusive visible range [start, end]. Cells that were never
// created are skipped. Name and state changes are reported independently.
func (r *Row) ColumnsInvalidated(start, end int) Invalidation {
	var inv Invalidation
	if r.defunct {
		return inv
	}

	cols := r.tree.source.VisibleColumns()
	if start == AllColumns {
		start, end = 0, AllColumns
	}
	if end == AllColumns || end >= len(cols) {
		end = len(cols) - 1
	}
	if start < 0 {
		start = 0
	}

	defer r.tree.beginBatch()()
	for i := start; i <= end; i++ {
		c, ok := r.cells[cols[i]]
		if !ok {
			continue
		}
		if c.Revalidate() {
			inv.NameChanged = append(inv.NameChanged, c)
			r.tree.emit(EventNameChange, c, r.index, c.column)
		}
		if c.revalidateState() {
			inv.StateChanged = append(inv.StateChanged, c)
			r.tree.emit(EventStateChange, c, r.index, c.column)
		}
	}

	if len(inv.NameChanged) > 0 {
		r.tree.emit(EventNameChange, r, r.index, nil)
	}
	return inv
}

// Shutdown tears the row down. Every cached cell becomes defunct before the
// row itself does.
func (r *Row) Shutdown() {
	if r.defunct {
		return
	}
	for col, c := range r.cells {
		c.defunct = true
		delete(r.cells, col)
	}
	r.defunct = true
}
