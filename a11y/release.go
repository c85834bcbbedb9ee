//go:build !a11ydebug

package a11y

const debugStale = false
