package client

import "errors"

// ErrorKind classifies the failures surfaced to the rendering layer. No raw
// transport error escapes Login or Submit undressed.
type ErrorKind string

const (
	// KindInvalidCredentials: the server rejected the email/password pair.
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	// KindUnauthorized: a classify call was rejected for lack of a valid
	// session. Not retried automatically.
	KindUnauthorized ErrorKind = "unauthorized"
	// KindServiceError: the server answered with an error detail message.
	KindServiceError ErrorKind = "service_error"
	// KindUnreachable: no response at all (network failure, server down).
	KindUnreachable ErrorKind = "unreachable"
	// KindUnexpected: anything else, including malformed success bodies.
	KindUnexpected ErrorKind = "unexpected"
)

// Error carries a failure kind plus the short human-readable message shown
// next to the login form or chat input. Server-supplied detail messages are
// propagated verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// AsError extracts a client *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Fallback messages for failures that carry no server-supplied detail.
const (
	msgUnexpected = "An unexpected error occurred."
	msgChatFailed = "Failed to get response from chatbot"
	msgMustLogIn  = "Please log in to use the chatbot"
)
