package apperr

import "errors"

// Kind is a stable, machine-readable error category. Clients branch on the
// kind; the detail string is for humans only.
type Kind string

const (
	Validation      Kind = "validation_error"
	Conflict        Kind = "conflict"
	NotFound        Kind = "not_found"
	NoActiveSession Kind = "no_active_session"
	Storage         Kind = "storage_error"
)

// Error carries a Kind plus a free-text detail.
type Error struct {
	Kind   Kind
	Detail string
	Err    error // optional underlying cause
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return string(e.Kind) + ": " + e.Detail
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given kind and detail.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap creates an Error that keeps the underlying cause for logging.
func Wrap(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// KindOf extracts the Kind from err. Anything that is not an *Error is
// treated as a storage failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Storage
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// DetailOf returns the human-readable detail for err.
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
