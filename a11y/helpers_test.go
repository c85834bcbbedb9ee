package a11y

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magpierre/gridaccess/datatable"
)

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg
}

// fakeSource is a bare GridDataSource: no listeners, no optional capabilities.
// Mutations made through it are never pushed to the tree.
type fakeSource struct {
	rows     int
	cols     []*datatable.Column
	text     map[int]map[*datatable.Column]string
	selected map[int]bool
	editable map[*datatable.Column]bool
	setCalls int
}

func newFakeSource(rows int, names ...string) *fakeSource {
	f := &fakeSource{
		rows:     rows,
		text:     make(map[int]map[*datatable.Column]string),
		selected: make(map[int]bool),
		editable: make(map[*datatable.Column]bool),
	}
	for _, name := range names {
		f.cols = append(f.cols, datatable.NewColumn(name))
	}
	return f
}

func (f *fakeSource) col(name string) *datatable.Column {
	for _, c := range f.cols {
		if c.ID() == name {
			return c
		}
	}
	return nil
}

func (f *fakeSource) set(row int, name, text string) {
	if f.text[row] == nil {
		f.text[row] = make(map[*datatable.Column]string)
	}
	f.text[row][f.col(name)] = text
}

func (f *fakeSource) RowCount() int                                { return f.rows }
func (f *fakeSource) VisibleColumns() []*datatable.Column          { return append([]*datatable.Column(nil), f.cols...) }
func (f *fakeSource) CellText(row int, c *datatable.Column) string { return f.text[row][c] }
func (f *fakeSource) IsRowSelected(row int) bool                   { return f.selected[row] }
func (f *fakeSource) ColumnHeaderText(c *datatable.Column) string  { return "Header " + c.ID() }
func (f *fakeSource) IsColumnEditable(c *datatable.Column) bool    { return f.editable[c] }

func (f *fakeSource) SelectedRows() []int {
	var rows []int
	for i := 0; i < f.rows; i++ {
		if f.selected[i] {
			rows = append(rows, i)
		}
	}
	return rows
}

func (f *fakeSource) SetRowSelected(row int, selected bool) {
	f.setCalls++
	if row >= 0 && row < f.rows {
		f.selected[row] = selected
	}
}

// newGrid builds the grid used by most tests: three rows and the columns
// A (editable text), B (read-only text) and C (editable bool).
func newGrid(t *testing.T) (*datatable.Grid, *datatable.Column, *datatable.Column, *datatable.Column) {
	t.Helper()
	g := datatable.NewGrid(
		datatable.ColumnSpec{Name: "A", Type: datatable.TypeString, Editable: true},
		datatable.ColumnSpec{Name: "B", Type: datatable.TypeString},
		datatable.ColumnSpec{Name: "C", Type: datatable.TypeBool, Editable: true},
	)
	for _, row := range [][]string{{"foo", "x0", "true"}, {"one", "x1", "false"}, {"two", "x2", "false"}} {
		require.NoError(t, g.AppendRow(
			datatable.NewTextValue(row[0]),
			datatable.NewTextValue(row[1]),
			datatable.NewValue(row[2] == "true", datatable.TypeBool),
		))
	}
	cols := g.Columns()
	return g, cols[0], cols[1], cols[2]
}

func newTree(t *testing.T, src datatable.GridDataSource) *Tree {
	t.Helper()
	tree, err := NewTree(src, quietConfig())
	require.NoError(t, err)
	t.Cleanup(tree.Shutdown)
	return tree
}

type eventLog struct {
	events []Event
}

func (l *eventLog) OnEvent(ev Event) { l.events = append(l.events, ev) }

func (l *eventLog) ofType(typ EventType) []Event {
	var out []Event
	for _, ev := range l.events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}
