package trivia

import "errors"

// Sentinel errors returned by the service layer. Handlers map them to HTTP
// statuses; anything else is treated as an internal failure.
var (
	// ErrNotFound means a referenced entity (question, category, page) is absent.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest means required input is missing or empty.
	ErrBadRequest = errors.New("bad request")
	// ErrUnprocessable means the input parsed but is semantically invalid,
	// e.g. an unknown category reference or an out-of-range difficulty.
	ErrUnprocessable = errors.New("unprocessable entity")
)
