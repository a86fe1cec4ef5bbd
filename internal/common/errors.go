// Package common defines shared constants and sentinel errors used across
// the kinotv client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Gateway-level errors.
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("service unavailable")

	// Validation errors raised before any remote call is made.
	ErrValidation = errors.New("validation error")

	// Session lifecycle errors.
	ErrSessionExpired = errors.New("session expired")
)
