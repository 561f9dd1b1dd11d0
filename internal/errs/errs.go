// Package errs contains sentinel errors shared across layers so handlers
// can map failures to responses without string matching.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates rejected input (empty field, self-add, bad status).
	ErrValidation = errors.New("validation failed")

	// ErrAuth indicates failed authentication (bad credentials or token).
	ErrAuth = errors.New("authentication failed")

	// ErrAlreadyExists indicates a unique constraint violation (email or username taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrPremiumRequired indicates a feature gated behind the premium flag.
	ErrPremiumRequired = errors.New("premium required")

	// ErrTransient indicates a store or network failure worth retrying.
	ErrTransient = errors.New("transient failure")
)
