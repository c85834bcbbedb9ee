package datatable

// Filter decides whether a row stays visible in a Grid.
type Filter interface {
	// Evaluate reports whether the row passes. Values are in column creation
	// order, matching columnNames.
	Evaluate(row []Value, columnNames []string) (bool, error)

	// Description returns a human-readable form of the filter.
	Description() string
}
