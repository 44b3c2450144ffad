// Package xlerr defines the tagged error taxonomy shared by the path
// resolver, the excel engine adapter, and the tool dispatch layer. Kinds
// survive until the outermost protocol edge, where the registry flattens them
// into the string contract callers parse ("Error: ..." prefix).
package xlerr

import (
	"errors"
	"fmt"
)

// Kind classifies a recognized failure.
type Kind string

const (
	// Path resolution
	InvalidPath  Kind = "INVALID_PATH"
	FileNotFound Kind = "FILE_NOT_FOUND"

	// Inputs
	Validation Kind = "VALIDATION"

	// Domain failures surfaced by the engine adapter
	Workbook    Kind = "WORKBOOK"
	Sheet       Kind = "SHEET"
	Data        Kind = "DATA"
	Formatting  Kind = "FORMATTING"
	Calculation Kind = "CALCULATION"
	Pivot       Kind = "PIVOT"
	Chart       Kind = "CHART"
)

// Error carries a kind plus a human-readable message. The message is what
// callers ultimately see after flattening, so it is written for humans (and
// LLMs), not for programmatic matching.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs a tagged error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from err when it is (or wraps) a tagged error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// MessageOf returns the tagged message when present, else err.Error().
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
