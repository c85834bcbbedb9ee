package a11y

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/gridaccess/datatable"
)

// prefixFilter keeps rows whose first column starts with prefix.
type prefixFilter struct{ prefix string }

func (f prefixFilter) Evaluate(row []datatable.Value, _ []string) (bool, error) {
	return len(row) > 0 && strings.HasPrefix(row[0].Formatted, f.prefix), nil
}

func (f prefixFilter) Description() string { return "prefix " + f.prefix }

func TestNewTree_NilSource(t *testing.T) {
	_, err := NewTree(nil, DefaultConfig())
	assert.ErrorIs(t, err, datatable.ErrNoDataSource)
}

func TestTree_EnsureRow(t *testing.T) {
	g, _, _, _ := newGrid(t)
	tree := newTree(t, g)
	log := &eventLog{}
	tree.AddObserver(log)

	first, err := tree.EnsureRow(1)
	require.NoError(t, err)
	again, err := tree.EnsureRow(1)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Len(t, log.ofType(EventShow), 1)

	_, err = tree.EnsureRow(3)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, []int{1}, tree.MaterializedRows())
}

func TestTree_ForeignInvalidation(t *testing.T) {
	g, a, b, _ := newGrid(t)
	tree := newTree(t, g)
	cellA := cellOf(t, tree, 0, a)
	cellB := cellOf(t, tree, 0, b)
	row, _ := tree.Row(0)

	log := &eventLog{}
	tree.AddObserver(log)
	require.NoError(t, g.SetCellText(0, a, "bar"))

	names := log.ofType(EventNameChange)
	require.Len(t, names, 2)
	assert.Same(t, cellA, names[0].Target)
	assert.Same(t, row, names[1].Target)
	assert.NotEmpty(t, names[0].BatchID)
	assert.Equal(t, names[0].BatchID, names[1].BatchID)
	assert.Equal(t, "x0", cellB.cachedText)

	text, err := cellA.Text()
	require.NoError(t, err)
	assert.Equal(t, "bar", text)
	assert.False(t, cellA.Revalidate())
}

func TestTree_InvalidateRanges(t *testing.T) {
	src := newFakeSource(3, "A", "B")
	tree := newTree(t, src)
	var cells []*Cell
	for row := 0; row < 3; row++ {
		src.set(row, "A", "a")
		src.set(row, "B", "b")
		cells = append(cells, cellOf(t, tree, row, src.col("A")), cellOf(t, tree, row, src.col("B")))
	}
	for row := 0; row < 3; row++ {
		src.set(row, "A", "a'")
		src.set(row, "B", "b'")
	}

	inv := tree.Invalidate(1, 1, 1, 1)
	assert.Equal(t, []*Cell{cells[3]}, inv.NameChanged)

	inv = tree.Invalidate(1, -1, 0, AllColumns)
	assert.Equal(t, []*Cell{cells[2], cells[4], cells[5]}, inv.NameChanged)

	inv = tree.Invalidate(0, -1, AllColumns, AllColumns)
	assert.Equal(t, []*Cell{cells[0], cells[1]}, inv.NameChanged)
}

func TestTree_RowShiftOnInsert(t *testing.T) {
	g, a, _, _ := newGrid(t)
	tree := newTree(t, g)
	row, err := tree.EnsureRow(1)
	require.NoError(t, err)
	cell, err := row.Cell(a)
	require.NoError(t, err)

	require.NoError(t, g.InsertRow(0, datatable.NewTextValue("new")))

	idx, err := row.Index()
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	moved, ok := tree.Row(2)
	require.True(t, ok)
	assert.Same(t, row, moved)
	_, ok = tree.Row(1)
	assert.False(t, ok)

	got, err := tree.Table().CellAt(2, 0)
	require.NoError(t, err)
	assert.Same(t, cell, got)
	text, err := cell.Text()
	require.NoError(t, err)
	assert.Equal(t, "one", text)
}

func TestTree_RowRemovalShiftsFollowingRows(t *testing.T) {
	g, _, _, _ := newGrid(t)
	tree := newTree(t, g)
	first, _ := tree.EnsureRow(0)
	last, _ := tree.EnsureRow(2)

	log := &eventLog{}
	tree.AddObserver(log)
	require.NoError(t, g.RemoveRows(0, 1))

	assert.True(t, first.Defunct())
	assert.False(t, last.Defunct())
	idx, err := last.Index()
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []int{1}, tree.MaterializedRows())

	hides := log.ofType(EventHide)
	require.Len(t, hides, 1)
	assert.Same(t, first, hides[0].Target)
	assert.Len(t, log.ofType(EventReorder), 1)
}

func TestTree_SelectionEvents(t *testing.T) {
	g, a, _, c := newGrid(t)
	tree := newTree(t, g)
	cellA := cellOf(t, tree, 1, a)
	cellC := cellOf(t, tree, 1, c)

	log := &eventLog{}
	tree.AddObserver(log)
	tree.Table().SelectRow(1)

	adds := log.ofType(EventSelectionAdd)
	require.Len(t, adds, 1)
	assert.Equal(t, 1, adds[0].Row)

	states := log.ofType(EventStateChange)
	require.Len(t, states, 2)
	assert.Same(t, cellA, states[0].Target)
	assert.Same(t, cellC, states[1].Target)
	assert.Equal(t, adds[0].BatchID, states[0].BatchID)
	assert.Empty(t, log.ofType(EventNameChange))

	tree.Table().UnselectRow(1)
	removes := log.ofType(EventSelectionRemove)
	require.Len(t, removes, 1)
	assert.NotEqual(t, adds[0].BatchID, removes[0].BatchID)
}

func TestTree_SelectionOfUnmaterializedRowIsQuiet(t *testing.T) {
	g, _, _, _ := newGrid(t)
	tree := newTree(t, g)
	log := &eventLog{}
	tree.AddObserver(log)

	g.SelectOnly(2)
	assert.Empty(t, log.events)
	assert.Empty(t, tree.MaterializedRows())
	assert.Equal(t, []int{2}, tree.Table().SelectedRowIndices())
}

func TestTree_EditabilityChangeUpdatesState(t *testing.T) {
	g, a, _, _ := newGrid(t)
	tree := newTree(t, g)
	cell := cellOf(t, tree, 0, a)
	log := &eventLog{}
	tree.AddObserver(log)

	require.NoError(t, g.SetColumnEditable(a, false))

	states := log.ofType(EventStateChange)
	require.Len(t, states, 1)
	assert.Same(t, cell, states[0].Target)
	count, err := cell.ActionCount()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTree_ColumnsChanged(t *testing.T) {
	g, _, b, _ := newGrid(t)
	tree := newTree(t, g)
	row, _ := tree.EnsureRow(0)
	log := &eventLog{}
	tree.AddObserver(log)

	require.NoError(t, g.SetColumnHidden(b, true))

	assert.Len(t, log.ofType(EventReorder), 1)
	assert.Equal(t, 2, row.ChildCount())
	assert.False(t, row.Defunct(), "column changes keep rows alive")
}

func TestTree_EditWhileColumnHidden(t *testing.T) {
	g, _, b, _ := newGrid(t)
	tree := newTree(t, g)
	cell := cellOf(t, tree, 0, b)

	require.NoError(t, g.SetColumnHidden(b, true))
	require.NoError(t, g.SetCellText(0, b, "changed"))

	log := &eventLog{}
	tree.AddObserver(log)
	require.NoError(t, g.SetColumnHidden(b, false))

	names := log.ofType(EventNameChange)
	require.Len(t, names, 1)
	assert.Same(t, cell, names[0].Target)
	assert.Equal(t, log.ofType(EventReorder)[0].BatchID, names[0].BatchID)
	assert.False(t, cell.Revalidate(), "the change is reported once")
}

func TestTree_ResetOnFilter(t *testing.T) {
	g, _, _, _ := newGrid(t)
	tree := newTree(t, g)
	row0, _ := tree.EnsureRow(0)
	row1, _ := tree.EnsureRow(1)
	log := &eventLog{}
	tree.AddObserver(log)

	require.NoError(t, g.ApplyFilter(prefixFilter{prefix: "t"}))

	assert.True(t, row0.Defunct())
	assert.True(t, row1.Defunct())
	assert.Empty(t, tree.MaterializedRows())
	assert.Len(t, log.ofType(EventHide), 2)
	assert.Equal(t, 1, tree.RowCount())

	row, err := tree.EnsureRow(0)
	require.NoError(t, err)
	name, err := row.Name()
	require.NoError(t, err)
	assert.Equal(t, "two x2 false", name)
}

func TestTree_Shutdown(t *testing.T) {
	g, a, _, _ := newGrid(t)
	tree, err := NewTree(g, quietConfig())
	require.NoError(t, err)
	row, _ := tree.EnsureRow(0)
	cell, _ := row.Cell(a)
	log := &eventLog{}
	tree.AddObserver(log)

	tree.Shutdown()
	tree.Shutdown()

	assert.True(t, row.Defunct())
	assert.True(t, cell.Defunct())
	assert.Empty(t, tree.MaterializedRows())
	assert.Len(t, log.ofType(EventHide), 1)

	before := len(log.events)
	require.NoError(t, g.SetCellText(0, a, "after"))
	require.NoError(t, g.AppendRow(datatable.NewTextValue("late")))
	assert.Len(t, log.events, before, "a detached tree hears nothing")
}
