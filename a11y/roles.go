package a11y

import (
	"fmt"
	"strings"
)

// Role identifies what kind of accessible an object is.
type Role int

const (
	// RoleTable is the grid itself.
	RoleTable Role = iota
	// RoleRow is one grid row.
	RoleRow
	// RoleGridCell is one cell of a row.
	RoleGridCell
	// RoleColumnHeader is the header of one column.
	RoleColumnHeader
)

// String returns the string representation of a Role.
func (r Role) String() string {
	switch r {
	case RoleTable:
		return "table"
	case RoleRow:
		return "row"
	case RoleGridCell:
		return "gridcell"
	case RoleColumnHeader:
		return "columnheader"
	default:
		return fmt.Sprintf("unknown(%d)", r)
	}
}

// State is a set of accessible state flags.
type State uint32

const (
	StateFocusable State = 1 << iota
	StateSelectable
	StateSelected
	StateCheckable
	StateChecked
	StateEditable
	StateDefunct
)

var stateNames = []struct {
	flag State
	name string
}{
	{StateFocusable, "focusable"},
	{StateSelectable, "selectable"},
	{StateSelected, "selected"},
	{StateCheckable, "checkable"},
	{StateChecked, "checked"},
	{StateEditable, "editable"},
	{StateDefunct, "defunct"},
}

// Has reports whether every flag in f is set.
func (s State) Has(f State) bool {
	return s&f == f
}

// String lists the set flags separated by "|".
func (s State) String() string {
	var names []string
	for _, sn := range stateNames {
		if s.Has(sn.flag) {
			names = append(names, sn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
