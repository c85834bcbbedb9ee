package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arrowadapter "github.com/magpierre/gridaccess/adapters/arrow"
	"github.com/magpierre/gridaccess/datatable"
)

const profile = `{"shareCredentialsVersion": 1, "endpoint": "https://example.com/", "bearerToken": "secret"}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		path    string
		content string
		want    FileType
	}{
		{"data.csv", "", FileTypeCSV},
		{"DATA.TSV", "", FileTypeCSV},
		{"data.parquet", "", FileTypeParquet},
		{"data.json", `[{"a": 1}]`, FileTypeJSON},
		{"config.share", profile, FileTypeDeltaSharingProfile},
		{"notes.md", "", FileTypeUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectFileType(tt.path, []byte(tt.content)), tt.path)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	src, ft, err := Open(ctx, writeFile(t, "a.csv", "x;y\n1;2\n"))
	require.NoError(t, err)
	assert.Equal(t, FileTypeCSV, ft)
	assert.Equal(t, 2, src.ColumnCount())

	src, ft, err = Open(ctx, writeFile(t, "a.json", `{"x": "y"}`))
	require.NoError(t, err)
	assert.Equal(t, FileTypeJSON, ft)
	assert.Equal(t, 1, src.RowCount())

	_, ft, err = Open(ctx, writeFile(t, "p.share", profile))
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, FileTypeDeltaSharingProfile, ft)

	_, _, err = Open(ctx, writeFile(t, "x.bin", "??"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestOpenGrid_Parquet(t *testing.T) {
	g := datatable.NewGrid(
		datatable.ColumnSpec{Name: "id", Type: datatable.TypeInt},
		datatable.ColumnSpec{Name: "label", Type: datatable.TypeString},
	)
	require.NoError(t, g.AppendRow(datatable.NewValue(int64(7), datatable.TypeInt), datatable.NewTextValue("seven")))

	table, err := arrowadapter.FromDataSource(g.View(), memory.NewGoAllocator())
	require.NoError(t, err)
	defer table.Release()
	path := filepath.Join(t.TempDir(), "grid.parquet")
	require.NoError(t, arrowadapter.WriteParquetFile(table, path))

	loaded, ft, err := OpenGrid(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, FileTypeParquet, ft)

	label, err := loaded.Column("label")
	require.NoError(t, err)
	assert.Equal(t, "seven", loaded.CellText(0, label))
	assert.Equal(t, "Parquet", ft.String())
}
