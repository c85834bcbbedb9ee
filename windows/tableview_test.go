package windows

import (
	"io"
	"log/slog"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/gridaccess/a11y"
	"github.com/magpierre/gridaccess/datatable"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testGrid has the columns name (editable text), city (read-only text) and
// active (editable bool).
func testGrid(t *testing.T) *datatable.Grid {
	t.Helper()
	g := datatable.NewGrid(
		datatable.ColumnSpec{Name: "name", Type: datatable.TypeString, Editable: true},
		datatable.ColumnSpec{Name: "city", Type: datatable.TypeString},
		datatable.ColumnSpec{Name: "active", Type: datatable.TypeBool, Editable: true},
	)
	for _, row := range []struct {
		name, city string
		active     bool
	}{{"ann", "Oslo", true}, {"bob", "Bergen", false}, {"cid", "Tromso", false}} {
		require.NoError(t, g.AppendRow(
			datatable.NewTextValue(row.name),
			datatable.NewTextValue(row.city),
			datatable.NewValue(row.active, datatable.TypeBool),
		))
	}
	return g
}

func newTestView(t *testing.T) *TableView {
	t.Helper()
	test.NewTempApp(t)
	cfg := a11y.DefaultConfig()
	cfg.Logger = quietLogger()
	tv, err := NewTableView(testGrid(t), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(tv.Close)
	return tv
}

func TestTableView_SelectExposesRow(t *testing.T) {
	tv := newTestView(t)
	var log []a11y.Event
	tv.Tree().AddObserver(a11y.ObserverFunc(func(ev a11y.Event) { log = append(log, ev) }))

	tv.Select(widget.TableCellID{Row: 1, Col: 0})

	assert.Equal(t, []int{1}, tv.Grid().SelectedRows())
	_, ok := tv.Tree().Row(1)
	assert.True(t, ok)
	id, ok := tv.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, id.Row)

	var types []a11y.EventType
	for _, ev := range log {
		types = append(types, ev.Type)
	}
	assert.Contains(t, types, a11y.EventShow)
	assert.Contains(t, types, a11y.EventSelectionAdd)
}

func TestTableView_SelectOutsideGrid(t *testing.T) {
	tv := newTestView(t)
	tv.Select(widget.TableCellID{Row: 7, Col: 0})
	assert.Empty(t, tv.Grid().SelectedRows())
	_, ok := tv.Selected()
	assert.False(t, ok)
}

func TestTableView_ActivateTogglesCheckbox(t *testing.T) {
	tv := newTestView(t)
	active := tv.Grid().Columns()[2]

	require.NoError(t, tv.Activate(1, 2))
	v, err := tv.Grid().CellValue(1, active)
	require.NoError(t, err)
	assert.True(t, v.Truthy())

	require.NoError(t, tv.Activate(1, 2))
	v, err = tv.Grid().CellValue(1, active)
	require.NoError(t, err)
	assert.False(t, v.Truthy())
}

func TestTableView_ActivateReadOnly(t *testing.T) {
	tv := newTestView(t)
	err := tv.Activate(0, 1)
	assert.ErrorIs(t, err, a11y.ErrIndexOutOfRange)
}

func TestTableView_ActivateSelected(t *testing.T) {
	tv := newTestView(t)
	assert.Error(t, tv.ActivateSelected())

	tv.Select(widget.TableCellID{Row: 0, Col: 2})
	require.NoError(t, tv.ActivateSelected())
	v, err := tv.Grid().CellValue(0, tv.Grid().Columns()[2])
	require.NoError(t, err)
	assert.False(t, v.Truthy())
}

func TestTableView_TextEditWithoutWindow(t *testing.T) {
	tv := newTestView(t)
	require.NoError(t, tv.Activate(0, 0))

	req, ok := tv.Grid().PendingEdit()
	require.True(t, ok)
	assert.Equal(t, 0, req.Row)
	assert.Equal(t, "ann", tv.Grid().CellText(0, req.Column))
}

func TestTableView_Summary(t *testing.T) {
	tv := newTestView(t)
	assert.Equal(t, "3 columns x 3 rows", tv.Summary())

	tv.Select(widget.TableCellID{Row: 2, Col: 0})
	assert.Equal(t, "3 columns x 3 rows, 1 selected", tv.Summary())
}

func TestTableView_StatusOnStructuralChange(t *testing.T) {
	tv := newTestView(t)
	var status []string
	tv.OnStatus = func(s string) { status = append(status, s) }

	tv.Select(widget.TableCellID{Row: 0, Col: 0})
	assert.Empty(t, status)

	require.NoError(t, tv.Grid().AppendRow(
		datatable.NewTextValue("dan"),
		datatable.NewTextValue("Bodo"),
		datatable.NewValue(true, datatable.TypeBool),
	))
	require.NotEmpty(t, status)
	assert.Equal(t, "3 columns x 4 rows, 1 selected", status[len(status)-1])
}

func TestTableView_Close(t *testing.T) {
	tv := newTestView(t)
	row, err := tv.Tree().EnsureRow(0)
	require.NoError(t, err)

	tv.Close()
	assert.True(t, row.Defunct())
	assert.Nil(t, tv.Grid().OnEditRequested)

	// A second close is a no-op.
	tv.Close()
}
