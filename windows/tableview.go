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

package windows

import (
	"errors"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/gridaccess/a11y"
	"github.com/magpierre/gridaccess/datatable"
)

// TableView shows a Grid in a widget.Table and keeps an accessibility tree
// over the same grid. Row selection in the widget is forwarded to the grid,
// and grid changes refresh the widget.
type TableView struct {
	grid     *datatable.Grid
	tree     *a11y.Tree
	table    *widget.Table
	win      fyne.Window
	logger   *slog.Logger
	selected widget.TableCellID
	closed   bool

	// OnStatus receives short descriptions of what changed.
	OnStatus func(string)
}

// NewTableView creates a view over grid. Edit dialogs are shown on win,
// which may be nil when text editing is not needed.
func NewTableView(grid *datatable.Grid, cfg a11y.Config, win fyne.Window) (*TableView, error) {
	tree, err := a11y.NewTree(grid, cfg)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tv := &TableView{
		grid:     grid,
		tree:     tree,
		win:      win,
		logger:   logger.With("component", "tableview"),
		selected: widget.TableCellID{Row: -1, Col: -1},
	}
	tv.table = tv.newTable()
	grid.OnEditRequested = tv.handleEdit
	grid.AddListener(tv)
	return tv, nil
}

func (tv *TableView) newTable() *widget.Table {
	t := widget.NewTableWithHeaders(
		func() (int, int) {
			return tv.grid.RowCount(), len(tv.grid.VisibleColumns())
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			cols := tv.grid.VisibleColumns()
			if id.Col < 0 || id.Col >= len(cols) {
				o.(*widget.Label).SetText("")
				return
			}
			o.(*widget.Label).SetText(tv.grid.CellText(id.Row, cols[id.Col]))
		},
	)
	t.ShowHeaderColumn = false
	t.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		label := o.(*widget.Label)
		cols := tv.grid.VisibleColumns()
		if id.Row >= 0 || id.Col < 0 || id.Col >= len(cols) {
			label.SetText("")
			return
		}
		label.TextStyle = fyne.TextStyle{Bold: true}
		label.SetText(tv.grid.ColumnHeaderText(cols[id.Col]))
	}
	t.OnSelected = func(id widget.TableCellID) {
		tv.Select(id)
	}
	return t
}

// Select moves the selection to id. The row is exposed to the
// accessibility tree first so that the selection is announced.
func (tv *TableView) Select(id widget.TableCellID) {
	if _, err := tv.tree.EnsureRow(id.Row); err != nil {
		tv.logger.Debug("select outside grid", "row", id.Row, "error", err)
		return
	}
	tv.selected = id
	tv.grid.SelectOnly(id.Row)
}

// Widget returns the canvas object to place in a layout.
func (tv *TableView) Widget() fyne.CanvasObject {
	return tv.table
}

// Grid returns the host model.
func (tv *TableView) Grid() *datatable.Grid {
	return tv.grid
}

// Tree returns the accessibility tree of the view.
func (tv *TableView) Tree() *a11y.Tree {
	return tv.tree
}

// Selected returns the last cell selected in the widget.
func (tv *TableView) Selected() (widget.TableCellID, bool) {
	return tv.selected, tv.selected.Row >= 0 && tv.selected.Col >= 0
}

// Activate runs the default action of the cell at a row and visible column,
// the same way an assistive technology would.
func (tv *TableView) Activate(row, col int) error {
	if _, err := tv.tree.EnsureRow(row); err != nil {
		return err
	}
	cell, err := tv.tree.Table().CellAt(row, col)
	if err != nil {
		return err
	}
	return cell.DoAction(0)
}

// ActivateSelected activates the selected cell.
func (tv *TableView) ActivateSelected() error {
	id, ok := tv.Selected()
	if !ok {
		return errors.New("no cell selected")
	}
	return tv.Activate(id.Row, id.Col)
}

// Summary describes the size and selection of the grid.
func (tv *TableView) Summary() string {
	table := tv.tree.Table()
	s := fmt.Sprintf("%d columns x %d rows", table.ColumnCount(), table.RowCount())
	if n := table.SelectedRowCount(); n > 0 {
		s += fmt.Sprintf(", %d selected", n)
	}
	if f := tv.grid.Filter(); f != nil {
		s += " | Filter: " + f.Description()
	}
	if st := tv.grid.SortState(); st.IsSorted() {
		s += fmt.Sprintf(" | Sorted: %s %s", tv.grid.ColumnHeaderText(st.Column), st.Direction)
	}
	return s
}

// Close detaches the view from the grid and shuts the tree down.
func (tv *TableView) Close() {
	if tv.closed {
		return
	}
	tv.closed = true
	tv.grid.RemoveListener(tv)
	tv.grid.OnEditRequested = nil
	tv.tree.Shutdown()
}

// handleEdit toggles check boxes in place and asks for new text otherwise.
func (tv *TableView) handleEdit(req datatable.EditRequest) {
	if tv.grid.IsColumnCheckbox(req.Column) {
		v, err := tv.grid.CellValue(req.Row, req.Column)
		if err != nil {
			tv.logger.Warn("edit of missing cell", "row", req.Row, "column", req.Column.ID(), "error", err)
			return
		}
		next := datatable.NewValue(!v.Truthy(), datatable.TypeBool)
		if err := tv.grid.SetCell(req.Row, req.Column, next); err != nil {
			tv.logger.Warn("toggle failed", "error", err)
		}
		return
	}
	if tv.win == nil {
		return
	}

	entry := widget.NewEntry()
	entry.SetText(tv.grid.CellText(req.Row, req.Column))
	items := []*widget.FormItem{widget.NewFormItem(tv.grid.ColumnHeaderText(req.Column), entry)}
	dialog.ShowForm("Edit cell", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		if err := tv.grid.SetCellText(req.Row, req.Column, entry.Text); err != nil {
			dialog.ShowError(err, tv.win)
		}
	}, tv.win)
}

// refresh redraws the table. Structural changes also report the new
// summary; cell and selection changes leave the status to the
// accessibility announcements.
func (tv *TableView) refresh(structural bool) {
	fyne.Do(func() {
		tv.table.Refresh()
		if structural && tv.OnStatus != nil {
			tv.OnStatus(tv.Summary())
		}
	})
}

// RowCountChanged implements datatable.GridListener.
func (tv *TableView) RowCountChanged(int, int) { tv.refresh(true) }

// CellsInvalidated implements datatable.GridListener.
func (tv *TableView) CellsInvalidated(int, int, int, int) { tv.refresh(false) }

// SelectionChanged implements datatable.GridListener.
func (tv *TableView) SelectionChanged(int) { tv.refresh(false) }

// ColumnsChanged implements datatable.GridListener.
func (tv *TableView) ColumnsChanged() { tv.refresh(true) }

// Reset implements datatable.GridListener.
func (tv *TableView) Reset() {
	tv.selected = widget.TableCellID{Row: -1, Col: -1}
	tv.refresh(true)
}
