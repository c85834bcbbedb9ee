// Package filter provides row filters for datatable.Grid.
package filter

import (
	"fmt"
	"strings"

	"github.com/magpierre/gridaccess/datatable"
)

// LogicOp represents a logical operator for combining filters.
type LogicOp int

const (
	// LogicAND requires all filters to pass.
	LogicAND LogicOp = iota
	// LogicOR requires at least one filter to pass.
	LogicOR
)

// String returns the string representation of a LogicOp.
func (op LogicOp) String() string {
	switch op {
	case LogicAND:
		return "AND"
	case LogicOR:
		return "OR"
	default:
		return fmt.Sprintf("unknown(%d)", op)
	}
}

// Composite combines filters with AND or OR logic. An empty composite
// passes every row.
type Composite struct {
	Filters []datatable.Filter
	Logic   LogicOp
}

// And passes rows that pass every filter.
func And(filters ...datatable.Filter) *Composite {
	return &Composite{Filters: filters, Logic: LogicAND}
}

// Or passes rows that pass at least one filter.
func Or(filters ...datatable.Filter) *Composite {
	return &Composite{Filters: filters, Logic: LogicOR}
}

// Evaluate implements datatable.Filter. Evaluation stops at the first
// result that decides the outcome.
func (f *Composite) Evaluate(row []datatable.Value, columnNames []string) (bool, error) {
	if len(f.Filters) == 0 {
		return true, nil
	}

	var decisive bool
	switch f.Logic {
	case LogicAND:
		decisive = false
	case LogicOR:
		decisive = true
	default:
		return false, fmt.Errorf("%w: unknown logic operator %d", datatable.ErrInvalidFilter, f.Logic)
	}

	for _, sub := range f.Filters {
		ok, err := sub.Evaluate(row, columnNames)
		if err != nil {
			return false, err
		}
		if ok == decisive {
			return decisive, nil
		}
	}
	return !decisive, nil
}

// Description implements datatable.Filter.
func (f *Composite) Description() string {
	if len(f.Filters) == 0 {
		return "empty filter"
	}

	parts := make([]string, len(f.Filters))
	for i, sub := range f.Filters {
		parts[i] = sub.Description()
	}
	return "(" + strings.Join(parts, " "+f.Logic.String()+" ") + ")"
}

// Not inverts a filter.
type Not struct {
	Filter datatable.Filter
}

// Evaluate implements datatable.Filter.
func (f Not) Evaluate(row []datatable.Value, columnNames []string) (bool, error) {
	ok, err := f.Filter.Evaluate(row, columnNames)
	return !ok, err
}

// Description implements datatable.Filter.
func (f Not) Description() string {
	return "NOT " + f.Filter.Description()
}
