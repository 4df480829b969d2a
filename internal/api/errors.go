package api

import (
	"errors"
	"fmt"
)

// Classification sentinels. Callers match with errors.Is and, when they need
// the HTTP status, unwrap the *Error with errors.As.
var (
	ErrInvalidURL     = errors.New("invalid request URL")
	ErrRequestFailed  = errors.New("request failed")
	ErrDecodingFailed = errors.New("failed to decode response")
	ErrUnknown        = errors.New("network request failed")
)

// Error is the classified failure of a single request.
type Error struct {
	Kind   error // one of the sentinels above
	Status int   // HTTP status, set only for ErrRequestFailed
	Err    error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Kind == ErrRequestFailed {
		return fmt.Sprintf("%s: status %d", e.Kind, e.Status)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	}

	return e.Kind.Error()
}

func (e *Error) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidURLError(err error) *Error {
	return &Error{Kind: ErrInvalidURL, Err: err}
}

func requestFailedError(status int) *Error {
	return &Error{Kind: ErrRequestFailed, Status: status}
}

func decodingFailedError(err error) *Error {
	return &Error{Kind: ErrDecodingFailed, Err: err}
}

func unknownError(err error) *Error {
	return &Error{Kind: ErrUnknown, Err: err}
}
