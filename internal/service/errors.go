package service

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUpstream           = errors.New("upstream failure")
)

// Error carries a client-facing message. Kind is one of the sentinels above,
// so callers match with errors.Is and read Msg with errors.As.
type Error struct {
	Kind   error
	Msg    string
	Detail string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// NewError builds a client-facing error of the given kind.
func NewError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func invalid(msg string) *Error   { return NewError(ErrValidation, msg) }
func conflict(msg string) *Error  { return NewError(ErrConflict, msg) }
func notFound(msg string) *Error  { return NewError(ErrNotFound, msg) }
func forbidden(msg string) *Error { return NewError(ErrForbidden, msg) }
func upstream(msg string) *Error  { return NewError(ErrUpstream, msg) }
func badCreds(msg string) *Error  { return NewError(ErrInvalidCredentials, msg) }

func withDetail(e *Error, d string) *Error {
	e.Detail = d
	return e
}
