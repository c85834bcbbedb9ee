package a11y

// Accessible is implemented by every object in the tree.
type Accessible interface {
	Role() Role
	Name() (string, error)
	State() (State, error)
}

// TableQuery answers structural questions about a table.
type TableQuery interface {
	RowCount() int
	ColumnCount() int
	CellAt(row, col int) (*Cell, error)
	ColDescription(col int) (string, error)
}

// TableSelection answers and changes the selection of a table.
type TableSelection interface {
	IsRowSelected(row int) bool
	IsColSelected(col int) bool
	IsCellSelected(row, col int) bool
	SelectedCellCount() int
	SelectedColCount() int
	SelectedRowCount() int
	SelectedCells() ([]*Cell, error)
	SelectedCellIndices() []int
	SelectedColIndices() []int
	SelectedRowIndices() []int
	SelectRow(row int)
	UnselectRow(row int)
}

// ActionTarget exposes invocable actions.
type ActionTarget interface {
	ActionCount() (int, error)
	ActionNameAt(index int) (string, error)
	DoAction(index int) error
}

// TableCell relates a cell to its table.
type TableCell interface {
	Table() *TableAdapter
	RowIdx() (int, error)
	ColIdx() (int, error)
	ColHeaderCells() ([]*ColumnHeader, error)
	RowHeaderCells() ([]*ColumnHeader, error)
	Selected() (bool, error)
}

// RowProvider gives the table access to materialized rows.
type RowProvider interface {
	// Row returns the live row at index, if it has been materialized.
	Row(index int) (*Row, bool)
	// EnsureRow returns the row at index, materializing it if needed.
	EnsureRow(index int) (*Row, error)
}

var (
	_ Accessible     = (*TableAdapter)(nil)
	_ TableQuery     = (*TableAdapter)(nil)
	_ TableSelection = (*TableAdapter)(nil)
	_ Accessible     = (*Row)(nil)
	_ Accessible     = (*Cell)(nil)
	_ ActionTarget   = (*Cell)(nil)
	_ TableCell      = (*Cell)(nil)
	_ Accessible     = (*ColumnHeader)(nil)
	_ RowProvider    = (*Tree)(nil)
)
