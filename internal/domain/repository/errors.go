package repository

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already used")
	ErrDuplicateCIN   = errors.New("cin already used")

	// ErrConflict means a conditional update lost: the row is no longer in the
	// state the write required (e.g. the application left pending).
	ErrConflict = errors.New("conflicting state transition")
)
