package domain

import "errors"

// ErrNoSteps is returned when navigation is requested over an empty step sequence.
var ErrNoSteps = errors.New("no steps to navigate")

// ErrInvalidStepIndex is returned when the start index is the sentinel or out of range.
var ErrInvalidStepIndex = errors.New("invalid step index")

// ErrAtFirstStep is returned by Previous when the first step is displayed.
var ErrAtFirstStep = errors.New("already at the first step")

// ErrAtLastStep is returned by Next when the last step is displayed.
var ErrAtLastStep = errors.New("already at the last step")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrRecipeNotFound is returned when a recipe ID is not part of the fetched collection.
var ErrRecipeNotFound = errors.New("recipe not found")

// ErrNoConnection marks fetch failures caused by missing connectivity.
var ErrNoConnection = errors.New("no connection")

// ErrNetwork marks fetch failures caused by a broken transport.
var ErrNetwork = errors.New("network problem")

// ErrLoaderClosed is returned when a loader is used after teardown.
var ErrLoaderClosed = errors.New("loader closed")
