// Package apperr defines the sentinel errors shared across layers.
package apperr

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrNotReady = errors.New("catalog not ready")
)
