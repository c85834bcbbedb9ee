package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/gridaccess/datatable"
)

func TestDetectSeparator(t *testing.T) {
	tests := []struct {
		line string
		want rune
	}{
		{"a,b,c", ','},
		{"a;b;c", ';'},
		{"a\tb\tc", '\t'},
		{"a|b|c", '|'},
		{"a;b,c", ','},
		{"", ','},
		{"single", ','},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectSeparator(tt.line), "line %q", tt.line)
	}
}

func TestSeparatorName(t *testing.T) {
	assert.Equal(t, "semicolon", SeparatorName(';'))
	assert.Equal(t, "tab", SeparatorName('\t'))
	assert.Equal(t, "#", SeparatorName('#'))
}

func TestNewFromReader(t *testing.T) {
	input := "name, age, score, active\nada, 36, 1.5, true\nbob, , 2, false\n"
	src, err := NewFromReader(strings.NewReader(input), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, src.RowCount())
	assert.Equal(t, 4, src.ColumnCount())

	want := []datatable.DataType{datatable.TypeString, datatable.TypeInt, datatable.TypeFloat, datatable.TypeBool}
	for col, typ := range want {
		got, err := src.ColumnType(col)
		require.NoError(t, err)
		assert.Equal(t, typ, got, "column %d", col)
	}

	name, err := src.ColumnName(1)
	require.NoError(t, err)
	assert.Equal(t, "age", name)

	v, err := src.Cell(1, 1)
	require.NoError(t, err)
	assert.True(t, v.IsNull)

	v, err = src.Cell(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v.Raw)
	assert.Equal(t, "1.5", v.Formatted)
}

func TestNewFromReader_DetectsDelimiter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Delimiter = 0

	src, err := NewFromReader(strings.NewReader("a;b\n1;2\n"), cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, src.ColumnCount())
	assert.Equal(t, "semicolon", src.Metadata()["delimiter"])
}

func TestNewFromReader_NoHeaders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HasHeaders = false
	cfg.InferTypes = false

	src, err := NewFromReader(strings.NewReader("x,1\ny,2,extra\n"), cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, src.RowCount())
	assert.Equal(t, 3, src.ColumnCount())
	name, err := src.ColumnName(2)
	require.NoError(t, err)
	assert.Equal(t, "Column 3", name)

	typ, err := src.ColumnType(1)
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeString, typ)

	v, err := src.Cell(0, 2)
	require.NoError(t, err)
	assert.Equal(t, "", v.Formatted)
}

func TestNewFromReader_Empty(t *testing.T) {
	_, err := NewFromReader(strings.NewReader(""), DefaultConfig())
	assert.ErrorIs(t, err, datatable.ErrEmptyData)
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")
	require.NoError(t, os.WriteFile(path, []byte("id\tdone\n1\tfalse\n2\ttrue\n"), 0o600))

	sep, err := DetectFileSeparator(path)
	require.NoError(t, err)
	assert.Equal(t, '\t', sep)

	cfg := DefaultConfig()
	cfg.Delimiter = sep
	src, err := NewFromFile(path, cfg)
	require.NoError(t, err)
	assert.Equal(t, path, src.Metadata()["path"])

	g, err := datatable.NewGridFromSource(src)
	require.NoError(t, err)
	done, err := g.Column("done")
	require.NoError(t, err)
	assert.True(t, g.IsColumnCheckbox(done))
	assert.Equal(t, "true", g.CellText(1, done))
}

func TestNewFromFile_Missing(t *testing.T) {
	_, err := NewFromFile(filepath.Join(t.TempDir(), "missing.csv"), DefaultConfig())
	assert.Error(t, err)
}
