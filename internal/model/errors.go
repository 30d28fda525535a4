package model

import "errors"

// Core error taxonomy. Callers match with errors.Is; wrapping adds context.
var (
	// ErrInvalidArgument marks a caller-supplied value outside the accepted set
	// (payback label, lookback label, project parameters).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnresolved marks a postal code that could not be mapped to a market region.
	ErrUnresolved = errors.New("location unresolved")

	// ErrDataUnavailable marks missing upstream or historical data: a benchmark
	// yield that could not be fetched, or an empty/insufficient price window.
	ErrDataUnavailable = errors.New("data unavailable")
)
