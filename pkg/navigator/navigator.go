// Package navigator walks a recipe's steps one at a time.
//
// A Navigator owns an ordered step sequence and the current position. It
// drives a Controls display: every move re-renders the current step and
// updates the enablement of the previous/next controls.
package navigator

import (
	"context"
	"time"

	"github.com/aretw0/bakingapp/pkg/domain"
)

// Controls is the display side of a navigator.
type Controls interface {
	RenderStep(index, total int, step domain.Step)
	SetPreviousEnabled(enabled bool)
	SetNextEnabled(enabled bool)
}

// Navigator holds a step sequence and the position within it.
// It is not safe for concurrent use; callers serialise access (see session.Manager).
type Navigator struct {
	state    domain.NavigationState
	controls Controls
	hooks    domain.LifecycleHooks
	ctx      context.Context

	prevEnabled bool
	nextEnabled bool
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithControls attaches the display the navigator drives.
func WithControls(c Controls) Option {
	return func(n *Navigator) {
		n.controls = c
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(n *Navigator) {
		n.hooks = hooks
	}
}

// WithContext sets the context passed to hooks.
func WithContext(ctx context.Context) Option {
	return func(n *Navigator) {
		n.ctx = ctx
	}
}

// New creates a navigator positioned at startIndex.
// It returns domain.ErrNoSteps for an empty sequence and domain.ErrInvalidStepIndex
// for the domain.NoStepIndex sentinel or any out-of-range index.
func New(steps []domain.Step, startIndex int, opts ...Option) (*Navigator, error) {
	return Restore(domain.NavigationState{Steps: steps, CurrentIndex: startIndex}, opts...)
}

// Restore rebuilds a navigator from a saved state, without re-fetching anything.
func Restore(state domain.NavigationState, opts ...Option) (*Navigator, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}

	n := &Navigator{
		state:       *state.Snapshot(),
		ctx:         context.Background(),
		prevEnabled: true,
		nextEnabled: true,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.controls == nil {
		n.controls = nopControls{}
	}

	n.render()

	// Both boundaries are checked independently so a single step disables both controls.
	if n.state.CurrentIndex == 0 {
		n.setPrevious(false)
	}
	if n.state.CurrentIndex == len(n.state.Steps)-1 {
		n.setNext(false)
	}
	return n, nil
}

// Previous moves one step back.
func (n *Navigator) Previous() error {
	if !n.CanPrevious() {
		return domain.ErrAtFirstStep
	}
	from := n.state.CurrentIndex
	n.state.CurrentIndex--
	n.render()

	if n.state.CurrentIndex == 0 {
		n.setPrevious(false)
	}
	if !n.nextEnabled {
		n.setNext(true)
	}
	n.emitStepChange(from, "previous")
	return nil
}

// Next moves one step forward.
func (n *Navigator) Next() error {
	if !n.CanNext() {
		return domain.ErrAtLastStep
	}
	from := n.state.CurrentIndex
	n.state.CurrentIndex++
	n.render()

	if n.state.CurrentIndex == len(n.state.Steps)-1 {
		n.setNext(false)
	}
	if !n.prevEnabled {
		n.setPrevious(true)
	}
	n.emitStepChange(from, "next")
	return nil
}

// CanPrevious reports whether the previous control is enabled.
func (n *Navigator) CanPrevious() bool {
	return n.prevEnabled
}

// CanNext reports whether the next control is enabled.
func (n *Navigator) CanNext() bool {
	return n.nextEnabled
}

// Current returns the displayed step.
func (n *Navigator) Current() domain.Step {
	return n.state.Steps[n.state.CurrentIndex]
}

// Index returns the current position.
func (n *Navigator) Index() int {
	return n.state.CurrentIndex
}

// Len returns the number of steps.
func (n *Navigator) Len() int {
	return len(n.state.Steps)
}

// State returns a copy of the navigation state, suitable for persistence.
func (n *Navigator) State() *domain.NavigationState {
	return n.state.Snapshot()
}

func (n *Navigator) render() {
	n.controls.RenderStep(n.state.CurrentIndex, len(n.state.Steps), n.Current())
}

func (n *Navigator) setPrevious(enabled bool) {
	n.prevEnabled = enabled
	n.controls.SetPreviousEnabled(enabled)
}

func (n *Navigator) setNext(enabled bool) {
	n.nextEnabled = enabled
	n.controls.SetNextEnabled(enabled)
}

func (n *Navigator) emitStepChange(from int, direction string) {
	if n.hooks.OnStepChange == nil {
		return
	}
	n.hooks.OnStepChange(n.ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepChange},
		From:      from,
		To:        n.state.CurrentIndex,
		Total:     len(n.state.Steps),
		Direction: direction,
	})
}

type nopControls struct{}

func (nopControls) RenderStep(int, int, domain.Step) {}
func (nopControls) SetPreviousEnabled(bool)          {}
func (nopControls) SetNextEnabled(bool)              {}
