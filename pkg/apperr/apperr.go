// Package apperr carries the error taxonomy used across the core:
// callers branch on the Kind, transports map it to a status code.
package apperr

import (
	"github.com/pkg/errors"
)

type Kind int

const (
	// Internal is the fallback for unclassified failures.
	Internal Kind = iota
	// Validation flags malformed input (bad zip, missing field).
	Validation
	// NotFound flags unknown pincodes, missing rate slabs and address ids.
	NotFound
	// Precondition flags client-correctable rejections: mandatory insurance
	// not selected, value over the hard ceiling, insufficient balance.
	Precondition
	// Conflict flags addresses already awaiting approval.
	Conflict
	// External flags collaborator failures such as storage uploads.
	External
)

type Error struct {
	kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

// New creates a classified error.
func New(kind Kind, message string) error {
	return &Error{kind: kind, err: errors.New(message)}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, err: errors.Errorf(format, args...)}
}

// Wrap classifies an existing error, keeping its chain intact.
func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, err: errors.Wrap(err, message)}
}

// KindOf reports the classification of err, walking the wrap chain.
// Unclassified errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
