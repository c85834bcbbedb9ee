//go:build a11ydebug

package a11y

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_StaleAccessPanics(t *testing.T) {
	g, a, _, _ := newGrid(t)
	tree := newTree(t, g)
	row, err := tree.EnsureRow(0)
	require.NoError(t, err)
	cell, err := row.Cell(a)
	require.NoError(t, err)

	require.NoError(t, g.RemoveRows(0, 1))

	assert.Panics(t, func() { _, _ = cell.Text() })
	assert.Panics(t, func() { _, _ = row.Name() })
}
