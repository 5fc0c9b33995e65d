package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Glamour style names accepted by NewRenderer besides the built-in themes.
const (
	StyleAuto  = "auto"
	StylePlain = "notty"
)

// Renderer turns markdown into terminal output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a glamour markdown renderer.
// style is "auto" (detect light/dark background), "notty", or a glamour theme name.
func NewRenderer(style string, wordWrap int) (Renderer, error) {
	opts := []glamour.TermRendererOption{}
	switch style {
	case "", StyleAuto:
		opts = append(opts, glamour.WithAutoStyle())
	default:
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	if wordWrap > 0 {
		opts = append(opts, glamour.WithWordWrap(wordWrap))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// PlainRenderer returns text unchanged.
func PlainRenderer(markdown string) (string, error) {
	return markdown, nil
}
