package domain

import "errors"

var (
	// ErrNotFound is returned when a seed title cannot be resolved to any
	// known movie, neither by exact nor by approximate match.
	ErrNotFound = errors.New("movie not found")

	// ErrInvalidConfig is returned for structurally invalid requests: an
	// empty corpus, a non-positive top-k, or negative preference weights.
	// Wrap it with the offending field and value.
	ErrInvalidConfig = errors.New("invalid configuration")
)
