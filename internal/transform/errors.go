package transform

import "errors"

// Controller construction errors.
var (
	// ErrNilSurface indicates a controller was requested for no surface.
	ErrNilSurface = errors.New("nil surface")

	// ErrDetachedSurface indicates the surface is not connected to its
	// document.
	ErrDetachedSurface = errors.New("surface detached from document")

	// ErrInvalidOptions indicates unusable controller options.
	ErrInvalidOptions = errors.New("invalid controller options")
)
