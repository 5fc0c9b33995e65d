package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/messages"
	"github.com/aretw0/bakingapp/pkg/navigator"
	"github.com/muesli/termenv"
)

var _ navigator.Controls = (*StepView)(nil)

// StepView prints one step at a time and tracks the previous/next controls.
type StepView struct {
	out     *termenv.Output
	w       io.Writer
	render  Renderer
	catalog *messages.Catalog
	title   string

	prevEnabled bool
	nextEnabled bool
}

// NewStepView creates a step view titled with the recipe name.
func NewStepView(w io.Writer, render Renderer, catalog *messages.Catalog, title string) *StepView {
	if render == nil {
		render = PlainRenderer
	}
	return &StepView{
		out:         termenv.NewOutput(w),
		w:           w,
		render:      render,
		catalog:     catalog,
		title:       title,
		prevEnabled: true,
		nextEnabled: true,
	}
}

// RenderStep implements navigator.Controls.
func (v *StepView) RenderStep(index, total int, step domain.Step) {
	header := v.catalog.Sprintf(messages.KeyStepHeader, index+1, total)
	if v.title != "" {
		header = v.title + " · " + header
	}
	fmt.Fprintln(v.w)
	fmt.Fprintln(v.w, v.out.String(header).Bold())
	fmt.Fprintln(v.w, v.out.String(step.Title()).Underline())

	if step.Description != "" {
		body, err := v.render(step.Description)
		if err != nil {
			body = step.Description
		}
		fmt.Fprintln(v.w, strings.TrimRight(body, "\n"))
	}
	if step.HasVideo() {
		fmt.Fprintf(v.w, "%s: %s\n", v.catalog.Text(messages.KeyVideo), step.VideoURL)
	}
	if step.HasThumbnail() {
		fmt.Fprintf(v.w, "%s: %s\n", v.catalog.Text(messages.KeyThumbnail), step.ThumbnailURL)
	}
}

// SetPreviousEnabled implements navigator.Controls.
func (v *StepView) SetPreviousEnabled(enabled bool) {
	v.prevEnabled = enabled
}

// SetNextEnabled implements navigator.Controls.
func (v *StepView) SetNextEnabled(enabled bool) {
	v.nextEnabled = enabled
}

// PreviousEnabled reports the state of the previous control.
func (v *StepView) PreviousEnabled() bool {
	return v.prevEnabled
}

// NextEnabled reports the state of the next control.
func (v *StepView) NextEnabled() bool {
	return v.nextEnabled
}

// ControlsLine describes the available keys; disabled controls show an empty key.
func (v *StepView) ControlsLine() string {
	return strings.Join([]string{
		v.control("p", messages.KeyPrevious, v.prevEnabled),
		v.control("n", messages.KeyNext, v.nextEnabled),
		v.control("q", messages.KeyBack, true),
	}, "  ")
}

// PrintControls writes ControlsLine.
func (v *StepView) PrintControls() {
	fmt.Fprintln(v.w, v.ControlsLine())
}

func (v *StepView) control(key, label string, enabled bool) string {
	text := v.catalog.Text(label)
	if !enabled {
		return v.out.String("[ ] " + text).Faint().String()
	}
	return fmt.Sprintf("[%s] %s", key, text)
}
