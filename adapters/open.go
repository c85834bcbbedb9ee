// Package adapters opens data files as DataSources, choosing the adapter
// from the file type.
package adapters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	arrowadapter "github.com/magpierre/gridaccess/adapters/arrow"
	csvadapter "github.com/magpierre/gridaccess/adapters/csv"
	sliceadapter "github.com/magpierre/gridaccess/adapters/slice"
	"github.com/magpierre/gridaccess/datatable"
	"github.com/magpierre/gridaccess/internal/sharing"
)

// FileType represents the type of data file.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeParquet
	FileTypeJSON
	FileTypeDeltaSharingProfile
)

// ErrUnsupported is returned by Open for files it can not load.
var ErrUnsupported = errors.New("unsupported file type")

// String returns the string representation of a FileType.
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "CSV"
	case FileTypeParquet:
		return "Parquet"
	case FileTypeJSON:
		return "JSON"
	case FileTypeDeltaSharingProfile:
		return "Delta Sharing profile"
	default:
		return "unknown"
	}
}

// DetectFileType determines the type of a file from its extension and, for
// JSON-like files, its content.
func DetectFileType(path string, content []byte) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	case ".json", ".share", ".txt":
		if sharing.IsProfile(content) {
			return FileTypeDeltaSharingProfile
		}
		return FileTypeJSON
	default:
		return FileTypeUnknown
	}
}

// Open loads a CSV, Parquet or JSON file. Delta Sharing profiles are
// reported as ErrUnsupported together with their type so the caller can
// hand them to the sharing client.
func Open(ctx context.Context, path string) (datatable.DataSource, FileType, error) {
	var content []byte
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".json" || ext == ".share" || ext == ".txt" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, FileTypeUnknown, fmt.Errorf("failed to read %s: %w", path, err)
		}
		content = b
	}

	ft := DetectFileType(path, content)
	switch ft {
	case FileTypeCSV:
		cfg := csvadapter.DefaultConfig()
		sep, err := csvadapter.DetectFileSeparator(path)
		if err != nil {
			return nil, ft, err
		}
		cfg.Delimiter = sep
		src, err := csvadapter.NewFromFile(path, cfg)
		return src, ft, err

	case FileTypeParquet:
		table, err := arrowadapter.ReadParquetFile(ctx, path)
		if err != nil {
			return nil, ft, err
		}
		defer table.Release()
		src, err := arrowadapter.NewFromArrowTable(table)
		return src, ft, err

	case FileTypeJSON:
		src, err := sliceadapter.LoadJSON(bytes.NewReader(content))
		return src, ft, err

	default:
		return nil, ft, fmt.Errorf("%w: %s (%s)", ErrUnsupported, filepath.Base(path), ft)
	}
}

// OpenGrid loads a file with Open and copies it into a new Grid. Arrow
// backed sources are released once copied.
func OpenGrid(ctx context.Context, path string) (*datatable.Grid, FileType, error) {
	src, ft, err := Open(ctx, path)
	if err != nil {
		return nil, ft, err
	}
	if r, ok := src.(interface{ Release() }); ok {
		defer r.Release()
	}
	g, err := datatable.NewGridFromSource(src)
	return g, ft, err
}
