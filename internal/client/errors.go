package client

import "errors"

// Sentinel errors for the failure cases callers branch on. They match
// the corresponding *Error values under errors.Is.
var (
	// ErrNotFound is returned when the requested item, message, or user
	// does not exist on the server.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when the server rejects a
	// lifecycle change, for example claiming an already-claimed item.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
)

// Error kinds.
const (
	KindTransport         = "transport"
	KindRemote            = "remote"
	KindNotFound          = "not_found"
	KindInvalidTransition = "invalid_transition"
)

// Error is the error type returned by all Client methods. Kind
// classifies the failure; Status carries the HTTP status code for
// remote errors and is zero for transport failures.
type Error struct {
	Kind    string
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Kind + ": " + e.Message
	}
	if e.cause != nil {
		return e.Kind + ": " + e.cause.Error()
	}
	return e.Kind
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is match the sentinel for the error's kind, so callers
// can write errors.Is(err, client.ErrNotFound) without inspecting Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrInvalidTransition:
		return e.Kind == KindInvalidTransition
	}
	return false
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
}

func remoteError(status int, message string) *Error {
	kind := KindRemote
	switch status {
	case 404:
		kind = KindNotFound
	case 409:
		kind = KindInvalidTransition
	}
	return &Error{Kind: kind, Status: status, Message: message}
}
