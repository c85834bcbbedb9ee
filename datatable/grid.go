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

package datatable

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ColumnSpec describes a column when building a Grid.
type ColumnSpec struct {
	Name     string
	Type     DataType
	Editable bool
}

type gridColumn struct {
	handle   *Column
	index    int // position in gridRow.values
	header   string
	typ      DataType
	editable bool
	hidden   bool
}

type gridRow struct {
	values   []Value
	selected bool
}

// Grid is a mutable in-memory grid model. It implements GridDataSource and
// the optional host capabilities, and reports every change to its listeners.
//
// Row indices refer to the current view: rows hidden by a filter are not
// addressable, and sorting reorders the view without touching the backing
// rows. Selection belongs to the backing row, so it survives filtering.
type Grid struct {
	mu      sync.RWMutex
	columns []*gridColumn // display order, hidden columns included
	rows    []*gridRow
	view    []*gridRow
	filter  Filter
	sort    SortState
	pending *EditRequest

	listeners []GridListener

	// OnEditRequested is called after StartEditing records a request.
	OnEditRequested func(EditRequest)
}

// EditRequest is an edit started through StartEditing.
type EditRequest struct {
	Row    int
	Column *Column
}

// NewGrid creates an empty grid with the given columns. Column handles use
// the column name as their identifier.
func NewGrid(specs ...ColumnSpec) *Grid {
	g := &Grid{}
	for i, spec := range specs {
		g.columns = append(g.columns, &gridColumn{
			handle:   NewColumn(spec.Name),
			index:    i,
			header:   spec.Name,
			typ:      spec.Type,
			editable: spec.Editable,
		})
	}
	return g
}

// NewGridFromSource copies the rows of a read-only DataSource into a new Grid.
func NewGridFromSource(ds DataSource) (*Grid, error) {
	if ds == nil {
		return nil, ErrNoDataSource
	}

	specs := make([]ColumnSpec, ds.ColumnCount())
	for i := range specs {
		name, err := ds.ColumnName(i)
		if err != nil {
			return nil, err
		}
		typ, err := ds.ColumnType(i)
		if err != nil {
			return nil, err
		}
		specs[i] = ColumnSpec{Name: name, Type: typ}
	}

	g := NewGrid(specs...)
	for r := 0; r < ds.RowCount(); r++ {
		values, err := ds.Row(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", r, err)
		}
		row := &gridRow{values: append([]Value(nil), values...)}
		g.rows = append(g.rows, row)
		g.view = append(g.view, row)
	}
	return g, nil
}

// AddListener registers a listener for change notifications.
func (g *Grid) AddListener(l GridListener) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, l)
}

// RemoveListener unregisters a listener.
func (g *Grid) RemoveListener(l GridListener) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, existing := range g.listeners {
		if existing == l {
			g.listeners = append(g.listeners[:i], g.listeners[i+1:]...)
			return
		}
	}
}

// notify must be called without holding mu.
func (g *Grid) notify(fn func(GridListener)) {
	g.mu.RLock()
	listeners := append([]GridListener(nil), g.listeners...)
	g.mu.RUnlock()

	for _, l := range listeners {
		fn(l)
	}
}

// Columns returns every column handle in display order, hidden ones included.
func (g *Grid) Columns() []*Column {
	g.mu.RLock()
	defer g.mu.RUnlock()

	cols := make([]*Column, len(g.columns))
	for i, c := range g.columns {
		cols[i] = c.handle
	}
	return cols
}

// Column returns the handle of the column with the given name.
func (g *Grid) Column(name string) (*Column, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, c := range g.columns {
		if c.handle.ID() == name {
			return c.handle, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// lookup must be called with mu held.
func (g *Grid) lookup(col *Column) *gridColumn {
	for _, c := range g.columns {
		if c.handle == col {
			return c
		}
	}
	return nil
}

// visibleIndex must be called with mu held.
func (g *Grid) visibleIndex(col *Column) int {
	idx := 0
	for _, c := range g.columns {
		if c.hidden {
			continue
		}
		if c.handle == col {
			return idx
		}
		idx++
	}
	return -1
}

// RowCount implements GridDataSource.
func (g *Grid) RowCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.view)
}

// VisibleColumns implements GridDataSource.
func (g *Grid) VisibleColumns() []*Column {
	g.mu.RLock()
	defer g.mu.RUnlock()

	cols := make([]*Column, 0, len(g.columns))
	for _, c := range g.columns {
		if !c.hidden {
			cols = append(cols, c.handle)
		}
	}
	return cols
}

// CellValue returns the typed value of a cell.
func (g *Grid) CellValue(row int, col *Column) (Value, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if row < 0 || row >= len(g.view) {
		return Value{}, fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	c := g.lookup(col)
	if c == nil {
		return Value{}, fmt.Errorf("%w: %s", ErrColumnNotFound, col)
	}
	values := g.view[row].values
	if c.index >= len(values) {
		return NewNullValue(c.typ), nil
	}
	return values[c.index], nil
}

// CellText implements GridDataSource.
func (g *Grid) CellText(row int, col *Column) string {
	v, err := g.CellValue(row, col)
	if err != nil {
		return ""
	}
	return v.Formatted
}

// IsRowSelected implements GridDataSource.
func (g *Grid) IsRowSelected(row int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if row < 0 || row >= len(g.view) {
		return false
	}
	return g.view[row].selected
}

// SelectedRows implements GridDataSource.
func (g *Grid) SelectedRows() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var rows []int
	for i, r := range g.view {
		if r.selected {
			rows = append(rows, i)
		}
	}
	return rows
}

// SetRowSelected implements GridDataSource.
func (g *Grid) SetRowSelected(row int, selected bool) {
	g.mu.Lock()
	if row < 0 || row >= len(g.view) || g.view[row].selected == selected {
		g.mu.Unlock()
		return
	}
	g.view[row].selected = selected
	g.mu.Unlock()

	g.notify(func(l GridListener) { l.SelectionChanged(row) })
}

// SelectOnly selects row and unselects every other row.
func (g *Grid) SelectOnly(row int) {
	g.mu.Lock()
	if row < 0 || row >= len(g.view) {
		g.mu.Unlock()
		return
	}
	var changed []int
	for i, r := range g.view {
		want := i == row
		if r.selected != want {
			r.selected = want
			changed = append(changed, i)
		}
	}
	g.mu.Unlock()

	for _, i := range changed {
		g.notify(func(l GridListener) { l.SelectionChanged(i) })
	}
}

// ClearSelection unselects every row.
func (g *Grid) ClearSelection() {
	for _, row := range g.SelectedRows() {
		g.SetRowSelected(row, false)
	}
}

// ColumnHeaderText implements GridDataSource.
func (g *Grid) ColumnHeaderText(col *Column) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if c := g.lookup(col); c != nil {
		return c.header
	}
	return ""
}

// SetColumnHeader changes the header label of a column.
func (g *Grid) SetColumnHeader(col *Column, header string) error {
	g.mu.Lock()
	c := g.lookup(col)
	if c == nil {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrColumnNotFound, col)
	}
	c.header = header
	g.mu.Unlock()

	g.notify(func(l GridListener) { l.ColumnsChanged() })
	return nil
}

// ColumnType returns the data type of a column.
func (g *Grid) ColumnType(col *Column) (DataType, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c := g.lookup(col)
	if c == nil {
		return TypeString, fmt.Errorf("%w: %s", ErrColumnNotFound, col)
	}
	return c.typ, nil
}

// IsColumnEditable implements GridDataSource.
func (g *Grid) IsColumnEditable(col *Column) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c := g.lookup(col)
	return c != nil && c.editable
}

// SetColumnEditable marks a column as editable or read-only.
func (g *Grid) SetColumnEditable(col *Column, editable bool) error {
	g.mu.Lock()
	c := g.lookup(col)
	if c == nil {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrColumnNotFound, col)
	}
	changed := c.editable != editable
	c.editable = editable
	idx := g.visibleIndex(col)
	g.mu.Unlock()

	if changed && idx >= 0 {
		g.notify(func(l GridListener) { l.CellsInvalidated(0, -1, idx, idx) })
	}
	return nil
}

// IsColumnCheckbox implements CheckboxColumns: boolean columns render as
// check boxes.
func (g *Grid) IsColumnCheckbox(col *Column) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c := g.lookup(col)
	return c != nil && c.typ == TypeBool
}

// IsCellEditable implements CellEditability. Nested and binary values can
// not be edited as text.
func (g *Grid) IsCellEditable(row int, col *Column) bool {
	v, err := g.CellValue(row, col)
	if err != nil {
		return false
	}
	return v.Type.Scalar()
}

// StartEditing implements CellEditor. The request is recorded and handed to
// OnEditRequested; the grid itself has no editor UI.
func (g *Grid) StartEditing(row int, col *Column) {
	g.mu.Lock()
	if row < 0 || row >= len(g.view) || g.lookup(col) == nil {
		g.mu.Unlock()
		return
	}
	req := EditRequest{Row: row, Column: col}
	g.pending = &req
	cb := g.OnEditRequested
	g.mu.Unlock()

	if cb != nil {
		cb(req)
	}
}

// PendingEdit returns the last edit request, if any.
func (g *Grid) PendingEdit() (EditRequest, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.pending == nil {
		return EditRequest{}, false
	}
	return *g.pending, true
}

// SetCell replaces the value of a cell.
func (g *Grid) SetCell(row int, col *Column, value Value) error {
	g.mu.Lock()
	if row < 0 || row >= len(g.view) {
		g.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	c := g.lookup(col)
	if c == nil {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrColumnNotFound, col)
	}
	r := g.view[row]
	for len(r.values) <= c.index {
		r.values = append(r.values, NewNullValue(TypeString))
	}
	r.values[c.index] = value
	if g.pending != nil && g.pending.Row == row && g.pending.Column == col {
		g.pending = nil
	}
	idx := g.visibleIndex(col)
	g.mu.Unlock()

	if idx >= 0 {
		g.notify(func(l GridListener) { l.CellsInvalidated(row, row, idx, idx) })
	}
	return nil
}

// SetCellText replaces a cell with a string value.
func (g *Grid) SetCellText(row int, col *Column, text string) error {
	typ, err := g.ColumnType(col)
	if err != nil {
		return err
	}
	v := NewTextValue(text)
	v.Type = typ
	return g.SetCell(row, col, v)
}

// InsertRow inserts a row at index. Values are in column creation order.
func (g *Grid) InsertRow(index int, values ...Value) error {
	g.mu.Lock()
	if index < 0 || index > len(g.view) {
		g.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrInvalidRow, index)
	}
	row := &gridRow{values: append([]Value(nil), values...)}
	pos := len(g.rows)
	if index < len(g.view) {
		pos = g.rowPosition(g.view[index])
	}
	g.rows = append(g.rows, nil)
	copy(g.rows[pos+1:], g.rows[pos:])
	g.rows[pos] = row
	g.view = append(g.view, nil)
	copy(g.view[index+1:], g.view[index:])
	g.view[index] = row
	g.mu.Unlock()

	g.notify(func(l GridListener) { l.RowCountChanged(index, 1) })
	return nil
}

// rowPosition returns the position of r in insertion order. mu must be held.
func (g *Grid) rowPosition(r *gridRow) int {
	for i, existing := range g.rows {
		if existing == r {
			return i
		}
	}
	return len(g.rows)
}

// AppendRow adds a row after the last one.
func (g *Grid) AppendRow(values ...Value) error {
	return g.InsertRow(g.RowCount(), values...)
}

// RemoveRows removes count rows starting at index.
func (g *Grid) RemoveRows(index, count int) error {
	g.mu.Lock()
	if count <= 0 || index < 0 || index+count > len(g.view) {
		g.mu.Unlock()
		return fmt.Errorf("%w: %d+%d", ErrInvalidRow, index, count)
	}
	removed := make(map[*gridRow]bool, count)
	for _, r := range g.view[index : index+count] {
		removed[r] = true
	}
	g.view = append(g.view[:index], g.view[index+count:]...)
	kept := g.rows[:0]
	for _, r := range g.rows {
		if !removed[r] {
			kept = append(kept, r)
		}
	}
	g.rows = kept
	g.mu.Unlock()

	g.notify(func(l GridListener) { l.RowCountChanged(index, -count) })
	return nil
}

// SetColumnHidden shows or hides a column.
func (g *Grid) SetColumnHidden(col *Column, hidden bool) error {
	g.mu.Lock()
	c := g.lookup(col)
	if c == nil {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrColumnNotFound, col)
	}
	if c.hidden == hidden {
		g.mu.Unlock()
		return nil
	}
	c.hidden = hidden
	g.mu.Unlock()

	g.notify(func(l GridListener) { l.ColumnsChanged() })
	return nil
}

// MoveColumn moves a column to a new display position.
func (g *Grid) MoveColumn(col *Column, to int) error {
	g.mu.Lock()
	from := -1
	for i, c := range g.columns {
		if c.handle == col {
			from = i
			break
		}
	}
	if from < 0 {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrColumnNotFound, col)
	}
	if to < 0 || to >= len(g.columns) {
		g.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrInvalidColumn, to)
	}
	c := g.columns[from]
	g.columns = append(g.columns[:from], g.columns[from+1:]...)
	g.columns = append(g.columns[:to], append([]*gridColumn{c}, g.columns[to:]...)...)
	g.mu.Unlock()

	g.notify(func(l GridListener) { l.ColumnsChanged() })
	return nil
}

// ApplyFilter hides the rows that do not pass f. A nil filter shows all rows.
func (g *Grid) ApplyFilter(f Filter) error {
	g.mu.Lock()
	names := make([]string, len(g.columns))
	for _, c := range g.columns {
		names[c.index] = c.handle.ID()
	}

	view := make([]*gridRow, 0, len(g.rows))
	for _, r := range g.rows {
		if f != nil {
			ok, err := f.Evaluate(r.values, names)
			if err != nil {
				g.mu.Unlock()
				return fmt.Errorf("%w: %s: %v", ErrInvalidFilter, f.Description(), err)
			}
			if !ok {
				continue
			}
		}
		view = append(view, r)
	}
	g.filter = f
	g.view = view
	g.sortView()
	g.mu.Unlock()

	g.notify(func(l GridListener) { l.Reset() })
	return nil
}

// Filter returns the active filter, or nil.
func (g *Grid) Filter() Filter {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.filter
}

// Sort orders the view by a column.
func (g *Grid) Sort(col *Column, dir SortDirection) error {
	g.mu.Lock()
	if col != nil && g.lookup(col) == nil {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInvalidSortColumn, col)
	}
	g.sort = SortState{Column: col, Direction: dir}
	g.sortView()
	g.mu.Unlock()

	g.notify(func(l GridListener) { l.Reset() })
	return nil
}

// SortState returns the active sort.
func (g *Grid) SortState() SortState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.sort
}

// sortView must be called with mu held. An unsorted view keeps insertion order.
func (g *Grid) sortView() {
	if !g.sort.IsSorted() {
		order := make(map[*gridRow]int, len(g.rows))
		for i, r := range g.rows {
			order[r] = i
		}
		sort.SliceStable(g.view, func(i, j int) bool { return order[g.view[i]] < order[g.view[j]] })
		return
	}

	c := g.lookup(g.sort.Column)
	key := func(r *gridRow) string {
		if c.index < len(r.values) {
			return r.values[c.index].Formatted
		}
		return ""
	}
	sort.SliceStable(g.view, func(i, j int) bool {
		cmp := compareText(key(g.view[i]), key(g.view[j]), c.typ)
		if g.sort.Direction == SortDescending {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareText(a, b string, typ DataType) int {
	switch typ {
	case TypeInt, TypeFloat, TypeDecimal:
		var fa, fb float64
		_, errA := fmt.Sscan(a, &fa)
		_, errB := fmt.Sscan(b, &fb)
		if errA == nil && errB == nil {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(a, b)
}
