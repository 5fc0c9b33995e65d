package domain

import "errors"

// FailureKind is the user-facing category of a failed recipe fetch.
type FailureKind string

const (
	FailureNone           FailureKind = ""
	FailureNoConnectivity FailureKind = "no_connectivity"
	FailureNetwork        FailureKind = "network"
	FailureGeneral        FailureKind = "general"
)

// ClassifyFailure maps an error to its FailureKind.
// Only errors wrapped with ErrNoConnection or ErrNetwork get a specific category.
func ClassifyFailure(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrNoConnection):
		return FailureNoConnectivity
	case errors.Is(err, ErrNetwork):
		return FailureNetwork
	default:
		return FailureGeneral
	}
}

// LoadStatus describes the recipe list loader.
type LoadStatus string

const (
	StatusIdle    LoadStatus = "idle"
	StatusLoading LoadStatus = "loading"
	StatusLoaded  LoadStatus = "loaded"
	StatusErrored LoadStatus = "errored"
)
