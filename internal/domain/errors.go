package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgNotFound     = "not found"
	ErrMsgUnauthorized = "unauthorized"
	ErrMsgForbidden    = "forbidden"
	ErrMsgConflict     = "conflict"
	ErrMsgValidation   = "validation error"

	// Transaction errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrNotFound covers unknown campaigns, players, inventories and items.
	ErrNotFound = errors.New(ErrMsgNotFound)

	// ErrUnauthorized is returned for a wrong join password.
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)

	// ErrForbidden is a permission guard rejection.
	ErrForbidden = errors.New(ErrMsgForbidden)

	// ErrConflict means the source state was stale at write time (item already moved).
	ErrConflict = errors.New(ErrMsgConflict)

	// ErrValidation marks malformed input: negative weight or quantity, unknown category or rarity.
	ErrValidation = errors.New(ErrMsgValidation)
)
