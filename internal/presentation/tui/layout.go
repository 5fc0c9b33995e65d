package tui

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is assumed when the output is not a terminal.
const DefaultWidth = 80

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of f, or DefaultWidth.
func Width(f *os.File) int {
	if !IsTerminal(f) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// Columns returns how many recipe cards fit side by side in width.
// A positive override wins.
func Columns(width, override int) int {
	if override > 0 {
		return override
	}
	switch {
	case width >= 150:
		return 4
	case width >= 110:
		return 3
	case width >= 70:
		return 2
	default:
		return 1
	}
}
