// Package common defines sentinel errors and small helpers shared by the
// credential store, its collaborators and the terminal front end. Callers
// should use errors.Is to match these values; wrapped errors keep them.
package common

import "errors"

var (
	// Registration errors, one per validation step.
	ErrDuplicateUsername    = errors.New("username already exists")
	ErrInvalidCharacter     = errors.New("input contains a reserved character")
	ErrWeakOrBannedPassword = errors.New("password is weak or banned")

	// Storage errors.
	ErrPersistenceFailure = errors.New("persistence failure")
	ErrorNotFound         = errors.New("not found")

	// Hashing errors (unknown algorithm, entropy or KDF failure).
	ErrHashingUnavailable = errors.New("hashing unavailable")

	// Optional collaborators that were not configured.
	ErrNotConfigured = errors.New("not configured")
)
