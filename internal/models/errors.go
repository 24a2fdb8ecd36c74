package models

import "errors"

// Sentinel errors raised by services and stores. The HTTP layer maps these
// to status codes with errors.Is instead of matching message strings.
var (
	ErrNotFound      = errors.New("not found")
	ErrAccessDenied  = errors.New("access denied")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
)

// Entity-specific not-found variants, all matching ErrNotFound.
var (
	ErrUserNotFound       = wrap("user", ErrNotFound)
	ErrProjectNotFound    = wrap("project", ErrNotFound)
	ErrTaskNotFound       = wrap("task", ErrNotFound)
	ErrTimeEntryNotFound  = wrap("time entry", ErrNotFound)
	ErrMemberNotFound     = wrap("project member", ErrNotFound)
	ErrAttachmentNotFound = wrap("attachment", ErrNotFound)
)

type wrappedErr struct {
	prefix string
	err    error
}

func wrap(prefix string, err error) error { return &wrappedErr{prefix: prefix, err: err} }

func (w *wrappedErr) Error() string { return w.prefix + " " + w.err.Error() }
func (w *wrappedErr) Unwrap() error { return w.err }
