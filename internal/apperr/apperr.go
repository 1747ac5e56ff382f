// Package apperr tags errors with the category the HTTP boundary needs to pick
// a status code and a retry policy. The core returns these; it never logs.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or missing client input. Not retryable.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a slug or code that does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an ownership mismatch. Carries no detail about why.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict marks exhausted identifier minting. Transient; the caller
	// may retry.
	ErrConflict = errors.New("conflict")
	// ErrProcessing marks a server-side failure (resize, asset write).
	ErrProcessing = errors.New("processing failed")
)

type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

func Forbidden(msg string) error {
	return &Error{Kind: ErrForbidden, Msg: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Msg: msg}
}

func Processing(msg string, err error) error {
	return &Error{Kind: ErrProcessing, Msg: msg, Err: err}
}
