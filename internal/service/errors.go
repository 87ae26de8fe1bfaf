package service

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a user acts on a resource they do not own.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyExists is returned when a uniqueness rule would be violated,
	// such as liking or reviewing the same destination twice.
	ErrAlreadyExists = errors.New("already exists")
)
