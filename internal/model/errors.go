package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed generation for clients.
type ErrorKind string

const (
	KindNone             ErrorKind = ""
	KindInvalidParameter ErrorKind = "invalid_parameter"
	KindUnavailable      ErrorKind = "unavailable"
	KindGeneration       ErrorKind = "generation"
)

// invalidParamsError signals a parameter the runtime cannot accept.
type invalidParamsError struct{ msg string }

func (e invalidParamsError) Error() string { return e.msg }

// ErrInvalidParams constructs an invalidParamsError.
func ErrInvalidParams(format string, args ...any) error {
	return invalidParamsError{msg: fmt.Sprintf(format, args...)}
}

// IsInvalidParams reports whether err was caused by an unacceptable parameter.
func IsInvalidParams(err error) bool {
	var e invalidParamsError
	return errors.As(err, &e)
}

// dependencyUnavailableError signals a missing external dependency (e.g., llama.cpp)
// or a handle that has already been released.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var e dependencyUnavailableError
	return errors.As(err, &e)
}

// GenerationError wraps a runtime failure with the stage it happened in.
type GenerationError struct {
	Op  string // encode, generate or decode
	Err error
}

func (e *GenerationError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *GenerationError) Unwrap() error { return e.Err }

// KindOf maps an error to the class reported to clients.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case IsInvalidParams(err):
		return KindInvalidParameter
	case IsDependencyUnavailable(err):
		return KindUnavailable
	default:
		return KindGeneration
	}
}
