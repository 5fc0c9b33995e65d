package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventFetchStart  EventType = "fetch_start"
	EventFetchFinish EventType = "fetch_finish"
	EventStepChange  EventType = "step_change"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// FetchEvent describes one recipe list request.
type FetchEvent struct {
	EventBase
	Attempt  int           `json:"attempt"`
	Count    int           `json:"count,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Failure  FailureKind   `json:"failure,omitempty"`
	Err      error         `json:"-"`
}

// StepEvent describes a move of the step navigator.
type StepEvent struct {
	EventBase
	From      int    `json:"from"`
	To        int    `json:"to"`
	Total     int    `json:"total"`
	Direction string `json:"direction"`
}

// LifecycleHooks defines callbacks for observability.
type LifecycleHooks struct {
	OnFetchStart  func(context.Context, *FetchEvent)
	OnFetchFinish func(context.Context, *FetchEvent)
	OnStepChange  func(context.Context, *StepEvent)
}
