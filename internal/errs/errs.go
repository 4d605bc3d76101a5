package errs

import "errors"

var (
	// ErrTicketNotFound means no ticket maps the replied-to admin message id.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrNoActiveSession means the user has no fresh durable session.
	ErrNoActiveSession = errors.New("no active session")
)
