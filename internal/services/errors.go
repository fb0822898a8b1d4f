package services

import "errors"

// Sentinel errors returned by the comment and reaction services.
// Handlers map them onto HTTP status codes.
var (
	// ErrEmptyText — comment text is blank after trimming. 400.
	ErrEmptyText = errors.New("comment text cannot be empty")

	// ErrNotFound — no comment with that id. 404.
	ErrNotFound = errors.New("comment not found")

	// ErrForbidden — requester is not the comment's author. 403.
	ErrForbidden = errors.New("not the comment owner")

	// ErrAlreadyReacted — the caller is already in the requested
	// reaction state. 400, counters unchanged.
	ErrAlreadyReacted = errors.New("already reacted")
)
