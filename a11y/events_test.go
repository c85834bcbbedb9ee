package a11y

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	g, a, _, _ := newGrid(t)
	tree := newTree(t, g)
	cellOf(t, tree, 0, a)
	tree.AddObserver(NewLoggingObserver(logger))

	require.NoError(t, g.SetCellText(0, a, "logged"))

	out := buf.String()
	assert.Contains(t, out, "msg=a11y_event")
	assert.Contains(t, out, "event=name_change")
	assert.Contains(t, out, "role=gridcell")
	assert.Contains(t, out, "column=A")
}

func TestObserverFunc(t *testing.T) {
	g, _, _, _ := newGrid(t)
	tree := newTree(t, g)

	var types []EventType
	tree.AddObserver(ObserverFunc(func(ev Event) { types = append(types, ev.Type) }))
	_, err := tree.EnsureRow(0)
	require.NoError(t, err)

	assert.Equal(t, []EventType{EventShow}, types)
}

func TestRemoveObserver(t *testing.T) {
	g, _, _, _ := newGrid(t)
	tree := newTree(t, g)
	kept, removed := &eventLog{}, &eventLog{}
	tree.AddObserver(kept)
	tree.AddObserver(removed)
	tree.RemoveObserver(removed)

	_, err := tree.EnsureRow(0)
	require.NoError(t, err)
	assert.Len(t, kept.events, 1)
	assert.Empty(t, removed.events)
}

func TestBatchIDs(t *testing.T) {
	g, a, b, _ := newGrid(t)
	tree := newTree(t, g)
	cellOf(t, tree, 0, a)
	cellOf(t, tree, 0, b)
	log := &eventLog{}
	tree.AddObserver(log)

	require.NoError(t, g.SetCellText(0, a, "1"))
	require.NoError(t, g.SetCellText(0, b, "2"))

	require.Len(t, log.events, 4)
	assert.Equal(t, log.events[0].BatchID, log.events[1].BatchID)
	assert.Equal(t, log.events[2].BatchID, log.events[3].BatchID)
	assert.NotEqual(t, log.events[0].BatchID, log.events[2].BatchID)
	assert.Empty(t, tree.batchID, "no batch is left open")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "none", State(0).String())
	s := StateFocusable | StateSelected
	assert.True(t, s.Has(StateSelected))
	assert.False(t, s.Has(StateEditable))
	assert.Equal(t, "focusable|selected", s.String())
	assert.Equal(t, "gridcell", RoleGridCell.String())
}
