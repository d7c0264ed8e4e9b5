// Package apperr defines the error taxonomy shared by services and the HTTP
// layer. Services return *Error values tagged with a Kind; the handler layer
// maps each kind to an HTTP status in exactly one place.
package apperr

import "fmt"

// Kind classifies an application error.
type Kind int

const (
	// KindServer covers email dispatch and any unexpected failure.
	KindServer Kind = iota
	// KindValidation covers schema constraint violations.
	KindValidation
	// KindDuplicate covers unique-index violations.
	KindDuplicate
	// KindBadID covers malformed identifiers.
	KindBadID
	// KindAuth covers bad credentials or bad session tokens.
	KindAuth
	// KindInvalidToken covers a bad or expired password-reset token, which
	// is a 400 (a malformed request) rather than a 401.
	KindInvalidToken
	// KindNotFound covers missing resources.
	KindNotFound
)

// Error is a tagged application error. Message is safe to return to clients;
// Err, when set, carries the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a tagged error with a client-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a tagged error with a formatted client-safe message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a tagged error that keeps the underlying cause for logging
// while exposing only message to clients.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Internal wraps an unexpected failure as a server error with a generic
// client-facing message.
func Internal(err error) *Error {
	return &Error{Kind: KindServer, Message: "Server Error", Err: err}
}
