//go:build a11ydebug

package a11y

// Debug builds panic on stale access so the caller bug surfaces at once.
const debugStale = true
