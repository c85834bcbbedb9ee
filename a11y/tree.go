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
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/magpierre/gridaccess/datatable"
)

// listenable is implemented by hosts that push change notifications.
type listenable interface {
	AddListener(datatable.GridListener)
	RemoveListener(datatable.GridListener)
}

// Tree is the tree-level layer over a grid. It owns the materialized rows,
// the column header objects and the observers, and it turns host change
// notifications into row invalidation and events.
type Tree struct {
	source    datatable.GridDataSource
	cfg       Config
	logger    *slog.Logger
	table     *TableAdapter
	rows      map[int]*Row
	headers   map[*datatable.Column]*ColumnHeader
	observers []Observer
	batchID   string
	shutdown  bool
}

// NewTree creates a tree over source. When the source can push change
// notifications, the tree registers itself as a listener until Shutdown.
func NewTree(source datatable.GridDataSource, cfg Config) (*Tree, error) {
	if source == nil {
		return nil, datatable.ErrNoDataSource
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.EditActionName == "" {
		cfg.EditActionName = DefaultConfig().EditActionName
	}

	t := &Tree{
		source:  source,
		cfg:     cfg,
		logger:  cfg.Logger.With("component", "a11y.tree"),
		rows:    make(map[int]*Row),
		headers: make(map[*datatable.Column]*ColumnHeader),
	}
	t.table = NewTableAdapter(source, t)

	if l, ok := source.(listenable); ok {
		l.AddListener(t)
	}
	return t, nil
}

// Table returns the table facade of the tree.
func (t *Tree) Table() *TableAdapter {
	return t.table
}

// Source returns the data source the tree adapts.
func (t *Tree) Source() datatable.GridDataSource {
	return t.source
}

// AddObserver registers an observer for events.
func (t *Tree) AddObserver(o Observer) {
	t.observers = append(t.observers, o)
}

// RemoveObserver unregisters an observer. Observers are compared with ==,
// so an ObserverFunc can not be removed.
func (t *Tree) RemoveObserver(o Observer) {
	for i, existing := range t.observers {
		if existing == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// beginBatch starts a new event batch unless one is already running. The
// returned function ends it.
func (t *Tree) beginBatch() func() {
	if t.batchID != "" {
		return func() {}
	}
	t.batchID = uuid.NewString()
	return func() { t.batchID = "" }
}

func (t *Tree) emit(typ EventType, target Accessible, row int, col *datatable.Column) {
	if len(t.observers) == 0 {
		return
	}
	ev := Event{
		Type:      typ,
		BatchID:   t.batchID,
		Timestamp: time.Now(),
		Target:    target,
		Row:       row,
		Column:    col,
	}
	for _, o := range t.observers {
		o.OnEvent(ev)
	}
}

// staleError reports access to a defunct object. Debug builds panic.
func (t *Tree) staleError(op string, attrs ...any) error {
	if debugStale {
		panic(fmt.Sprintf("a11y: %s on defunct accessible %v", op, attrs))
	}
	t.logger.Warn("access to defunct accessible", append([]any{"op", op}, attrs...)...)
	return fmt.Errorf("%w: %s", ErrStale, op)
}

// RowCount returns the host row count.
func (t *Tree) RowCount() int {
	return t.source.RowCount()
}

// Row implements RowProvider.
func (t *Tree) Row(index int) (*Row, bool) {
	r, ok := t.rows[index]
	return r, ok
}

// EnsureRow implements RowProvider.
func (t *Tree) EnsureRow(index int) (*Row, error) {
	if t.shutdown {
		return nil, t.staleError("EnsureRow", "row", index)
	}
	if r, ok := t.rows[index]; ok {
		return r, nil
	}
	if index < 0 || index >= t.source.RowCount() {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, index, t.source.RowCount())
	}

	defer t.beginBatch()()
	r := newRow(t, index)
	t.rows[index] = r
	t.logger.Debug("row materialized", "row", index)
	t.emit(EventShow, r, index, nil)
	return r, nil
}

// MaterializedRows returns the indices of the live rows in ascending order.
func (t *Tree) MaterializedRows() []int {
	indices := make([]int, 0, len(t.rows))
	for i := range t.rows {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// ColumnHeader returns the header object of a column. The same object is
// returned for a column until the tree shuts down.
func (t *Tree) ColumnHeader(col *datatable.Column) (*ColumnHeader, error) {
	if t.shutdown {
		return nil, t.staleError("ColumnHeader", "column", col.ID())
	}
	if h, ok := t.headers[col]; ok {
		return h, nil
	}
	h := &ColumnHeader{tree: t, column: col}
	t.headers[col] = h
	return h, nil
}

// destroyRow shuts a row down and removes it from the cache.
func (t *Tree) destroyRow(index int) {
	r, ok := t.rows[index]
	if !ok {
		return
	}
	delete(t.rows, index)
	t.emit(EventHide, r, index, nil)
	r.Shutdown()
	t.logger.Debug("row destroyed", "row", index)
}

// RowCountChanged implements datatable.GridListener. Rows at or after index
// shift by count; removed rows are shut down.
func (t *Tree) RowCountChanged(index, count int) {
	if t.shutdown || count == 0 {
		return
	}
	defer t.beginBatch()()

	if count < 0 {
		for i := index; i < index-count; i++ {
			t.destroyRow(i)
		}
	}

	shifted := make(map[int]*Row, len(t.rows))
	for i, r := range t.rows {
		if i >= index {
			i += count
			r.index = i
		}
		shifted[i] = r
	}
	t.rows = shifted
	t.emit(EventReorder, t.table, -1, nil)
}

// CellsInvalidated implements datatable.GridListener.
func (t *Tree) CellsInvalidated(startRow, endRow, startCol, endCol int) {
	t.Invalidate(startRow, endRow, startCol, endCol)
}

// Invalidate revalidates the cached cells in the inclusive row and column
// ranges of every materialized row. An end of AllColumns (-1) means "to the
// last". It returns the combined result of the affected rows.
func (t *Tree) Invalidate(startRow, endRow, startCol, endCol int) Invalidation {
	var total Invalidation
	if t.shutdown {
		return total
	}
	defer t.beginBatch()()

	if startRow < 0 {
		startRow = 0
	}
	for _, i := range t.MaterializedRows() {
		if i < startRow || (endRow >= 0 && i > endRow) {
			continue
		}
		inv := t.rows[i].ColumnsInvalidated(startCol, endCol)
		total.NameChanged = append(total.NameChanged, inv.NameChanged...)
		total.StateChanged = append(total.StateChanged, inv.StateChanged...)
	}
	return total
}

// SelectionChanged implements datatable.GridListener.
func (t *Tree) SelectionChanged(row int) {
	if t.shutdown {
		return
	}
	r, ok := t.rows[row]
	if !ok {
		return
	}
	defer t.beginBatch()()

	if t.source.IsRowSelected(row) {
		t.emit(EventSelectionAdd, r, row, nil)
	} else {
		t.emit(EventSelectionRemove, r, row, nil)
	}
	r.ColumnsInvalidated(AllColumns, AllColumns)
}

// ColumnsChanged implements datatable.GridListener. Rows derive their
// children from the host on every call. Cached cells are revalidated
// because a column that comes back into view may have been edited while
// hidden, and hidden columns receive no invalidations.
func (t *Tree) ColumnsChanged() {
	if t.shutdown {
		return
	}
	defer t.beginBatch()()
	t.emit(EventReorder, t.table, -1, nil)
	t.Invalidate(0, AllColumns, AllColumns, AllColumns)
}

// Reset implements datatable.GridListener. Every materialized row is shut
// down.
func (t *Tree) Reset() {
	if t.shutdown {
		return
	}
	defer t.beginBatch()()

	for _, i := range t.MaterializedRows() {
		t.destroyRow(i)
	}
	t.emit(EventReorder, t.table, -1, nil)
}

// Shutdown tears down every row and header and detaches from the source.
// The tree can not be used afterwards.
func (t *Tree) Shutdown() {
	if t.shutdown {
		return
	}
	defer t.beginBatch()()

	for _, i := range t.MaterializedRows() {
		t.destroyRow(i)
	}
	for col, h := range t.headers {
		h.defunct = true
		delete(t.headers, col)
	}
	if l, ok := t.source.(listenable); ok {
		l.RemoveListener(t)
	}
	t.shutdown = true
}
