package a11y

import "github.com/magpierre/gridaccess/datatable"

// ColumnHeader is the accessible of a column header.
type ColumnHeader struct {
	tree    *Tree
	column  *datatable.Column
	defunct bool
}

func (h *ColumnHeader) check(op string) error {
	if h.defunct {
		return h.tree.staleError(op, "column", h.column.ID())
	}
	return nil
}

// Column returns the column handle of the header.
func (h *ColumnHeader) Column() *datatable.Column {
	return h.column
}

// Role implements Accessible.
func (h *ColumnHeader) Role() Role {
	return RoleColumnHeader
}

// Name implements Accessible.
func (h *ColumnHeader) Name() (string, error) {
	if err := h.check("Name"); err != nil {
		return "", err
	}
	return h.tree.source.ColumnHeaderText(h.column), nil
}

// State implements Accessible.
func (h *ColumnHeader) State() (State, error) {
	if err := h.check("State"); err != nil {
		return StateDefunct, err
	}
	return 0, nil
}

// Index returns the visible index of the column, or -1 if it is hidden.
func (h *ColumnHeader) Index() int {
	return datatable.IndexOf(h.tree.source.VisibleColumns(), h.column)
}
