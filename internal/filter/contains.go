package filter

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/magpierre/gridaccess/datatable"
)

// Contains passes rows where a column, or any column when Column is empty,
// contains Text. Matching is case-insensitive using Unicode case folding.
type Contains struct {
	Column string
	Text   string
}

// Evaluate implements datatable.Filter.
func (f Contains) Evaluate(row []datatable.Value, columnNames []string) (bool, error) {
	fold := cases.Fold()
	needle := fold.String(f.Text)

	if f.Column == "" {
		for _, v := range row {
			if !v.IsNull && strings.Contains(fold.String(v.Formatted), needle) {
				return true, nil
			}
		}
		return false, nil
	}

	idx := columnIndex(columnNames, f.Column)
	if idx < 0 {
		return false, fmt.Errorf("%w: %s", datatable.ErrColumnNotFound, f.Column)
	}
	if idx >= len(row) || row[idx].IsNull {
		return false, nil
	}
	return strings.Contains(fold.String(row[idx].Formatted), needle), nil
}

// Description implements datatable.Filter.
func (f Contains) Description() string {
	if f.Column == "" {
		return fmt.Sprintf("any contains %q", f.Text)
	}
	return fmt.Sprintf("%s contains %q", f.Column, f.Text)
}

// Equals passes rows whose column text equals Text exactly.
type Equals struct {
	Column string
	Text   string
}

// Evaluate implements datatable.Filter.
func (f Equals) Evaluate(row []datatable.Value, columnNames []string) (bool, error) {
	idx := columnIndex(columnNames, f.Column)
	if idx < 0 {
		return false, fmt.Errorf("%w: %s", datatable.ErrColumnNotFound, f.Column)
	}
	if idx >= len(row) {
		return f.Text == "", nil
	}
	return row[idx].Formatted == f.Text, nil
}

// Description implements datatable.Filter.
func (f Equals) Description() string {
	return fmt.Sprintf("%s = %q", f.Column, f.Text)
}

func columnIndex(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
