package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner, coloured when w is a colour terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"  ____        _    _                                ", "#fbbf24"},
		{" | __ )  __ _| | _(_)_ __   __ _    __ _ _ __  _ __  ", "#f59e0b"},
		{" |  _ \\ / _` | |/ / | '_ \\ / _` |  / _` | '_ \\| '_ \\ ", "#f97316"},
		{" | |_) | (_| |   <| | | | | (_| | | (_| | |_) | |_) |", "#ef4444"},
		{" |____/ \\__,_|_|\\_\\_|_| |_|\\__, |  \\__,_| .__/| .__/ ", "#e11d48"},
		{"                           |___/        |_|   |_|    ", "#be123c"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
