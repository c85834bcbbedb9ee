package datatable

// DataSource provides read-only access to tabular data.
// Implementations must be thread-safe for concurrent reads.
// All methods should return errors rather than panic.
type DataSource interface {
	// RowCount returns the total number of rows in the data source.
	RowCount() int

	// ColumnCount returns the total number of columns in the data source.
	ColumnCount() int

	// ColumnName returns the name of the column at the given index.
	// Returns ErrInvalidColumn if col is out of range.
	ColumnName(col int) (string, error)

	// ColumnType returns the data type of the column at the given index.
	// Returns ErrInvalidColumn if col is out of range.
	ColumnType(col int) (DataType, error)

	// Cell returns the value at the specified row and column.
	// Returns ErrInvalidRow if row is out of range.
	// Returns ErrInvalidColumn if col is out of range.
	Cell(row, col int) (Value, error)

	// Row returns all values for the specified row.
	// Returns ErrInvalidRow if row is out of range.
	Row(row int) ([]Value, error)

	// Metadata returns optional metadata about the data source.
	// Returns an empty Metadata map if no metadata is available.
	Metadata() Metadata
}

// GridDataSource is the live, host-owned view of a grid as seen by the
// accessibility layer. Row indices are dense and zero based; they shift when
// the host inserts or removes rows. Every call reflects the state at the time
// it is made.
type GridDataSource interface {
	// RowCount returns the current number of rows.
	RowCount() int

	// VisibleColumns returns the visible columns in display order.
	VisibleColumns() []*Column

	// CellText returns the display text of a cell. Unknown coordinates yield "".
	CellText(row int, col *Column) string

	// IsRowSelected reports whether the row is selected.
	IsRowSelected(row int) bool

	// SelectedRows returns the selected row indices in ascending order.
	SelectedRows() []int

	// SetRowSelected selects or unselects a row. Invalid rows are ignored.
	SetRowSelected(row int, selected bool)

	// ColumnHeaderText returns the header label of a column.
	ColumnHeaderText(col *Column) string

	// IsColumnEditable reports whether the host allows editing the column.
	IsColumnEditable(col *Column) bool
}

// CellEditor is implemented by hosts that can start an in-place edit.
type CellEditor interface {
	StartEditing(row int, col *Column)
}

// CellEditability is implemented by hosts with per-cell edit rules on top of
// column editability.
type CellEditability interface {
	IsCellEditable(row int, col *Column) bool
}

// CheckboxColumns is implemented by hosts that render boolean columns as
// check boxes.
type CheckboxColumns interface {
	IsColumnCheckbox(col *Column) bool
}

// GridListener receives change notifications from a Grid. Notifications are
// delivered synchronously, in order, on the goroutine that mutated the grid.
type GridListener interface {
	// RowCountChanged reports count rows inserted (count > 0) or removed
	// (count < 0) at index.
	RowCountChanged(index, count int)

	// CellsInvalidated reports that content in the inclusive row and column
	// ranges may have changed. An end of -1 means "to the last".
	CellsInvalidated(startRow, endRow, startCol, endCol int)

	// SelectionChanged reports that the selection state of row changed.
	SelectionChanged(row int)

	// ColumnsChanged reports that column visibility or order changed.
	ColumnsChanged()

	// Reset reports that every row may have been replaced.
	Reset()
}
