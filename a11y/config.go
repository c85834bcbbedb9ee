package a11y

import "log/slog"

// NameFormatter rewrites the accessible name of a cell from its column
// header and current text.
type NameFormatter interface {
	FormatName(header, text string) string
}

// NameFormatterFunc adapts a function to NameFormatter.
type NameFormatterFunc func(header, text string) string

// FormatName implements NameFormatter.
func (f NameFormatterFunc) FormatName(header, text string) string {
	return f(header, text)
}

// Config holds options for a Tree.
type Config struct {
	// Logger receives debug output about row lifecycle and warnings about
	// stale access. Defaults to slog.Default().
	Logger *slog.Logger

	// NameFormatter, when set, produces cell names. Otherwise the cell name
	// is its text.
	NameFormatter NameFormatter

	// EditActionName is the name of the single action of editable text cells.
	EditActionName string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Logger:         slog.Default(),
		EditActionName: "edit",
	}
}
