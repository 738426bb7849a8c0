package domain

import "errors"

// Kind classifies an error for callers at the transport boundary.
type Kind string

const (
	KindUnauthenticated  Kind = "unauthenticated"
	KindForbidden        Kind = "forbidden"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindValidationFailed Kind = "validation_failed"
	KindInternal         Kind = "internal"
)

// Error is a classified failure with a message that is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Unauthenticated(msg string) *Error  { return newError(KindUnauthenticated, msg) }
func Forbidden(msg string) *Error        { return newError(KindForbidden, msg) }
func NotFound(msg string) *Error         { return newError(KindNotFound, msg) }
func Conflict(msg string) *Error         { return newError(KindConflict, msg) }
func ValidationFailed(msg string) *Error { return newError(KindValidationFailed, msg) }

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Something bad happened!", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Guard and session failures.
var (
	ErrTokenNotFound    = Unauthenticated("Token not found")
	ErrTokenExpired     = Unauthenticated("Token expired")
	ErrTokenNotValid    = Unauthenticated("Not valid token")
	ErrUserNotFound     = NotFound("User not found")
	ErrUserInactive     = Forbidden("User is not active")
	ErrNoPrivileges     = Forbidden("You need privileges to perform this action")
	ErrWrongCredentials = Unauthenticated("Wrong credentials")
	ErrAccountInactive  = Unauthenticated("Your account is not active")
)

// ErrDuplicateEmail is returned by credential stores when the email is already taken.
// Services translate it into a Conflict naming the email.
var ErrDuplicateEmail = errors.New("email already exists")
