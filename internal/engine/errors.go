package engine

import "errors"

// Engine lifecycle errors.
var (
	// ErrAlreadyStarted indicates Start was called twice.
	ErrAlreadyStarted = errors.New("engine already started")

	// ErrShutdown indicates the engine was shut down and cannot be
	// re-entered.
	ErrShutdown = errors.New("engine shut down")
)
