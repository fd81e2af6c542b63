// Package faults maps errors from the filesystem and from argument handling
// onto a small set of kinds, each with a user-facing label and exit code.
package faults

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Kind classifies a failure for reporting.
type Kind int

const (
	KindUnknown Kind = iota
	KindUsage
	KindNotFound
	KindPermission
	KindNoSpace
)

// ExitCode returns the process exit code for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindUsage:
		return 2
	case KindNotFound:
		return 3
	case KindPermission:
		return 4
	case KindNoSpace:
		return 5
	default:
		return 1
	}
}

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "invalid usage"
	case KindNotFound:
		return "input missing"
	case KindPermission:
		return "permission denied"
	case KindNoSpace:
		return "disk full"
	default:
		return "unexpected error"
	}
}

// UsageError marks an error caused by bad arguments or configuration.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Usage wraps err as a UsageError. A nil err stays nil.
func Usage(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{Err: err}
}

// Usagef is fmt.Errorf wrapped in a UsageError.
func Usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// Classify returns the kind of err. Usage errors win over the filesystem
// cause they may wrap.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var usage *UsageError
	switch {
	case errors.As(err, &usage):
		return KindUsage
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EROFS):
		return KindPermission
	case errors.Is(err, syscall.ENOSPC):
		return KindNoSpace
	default:
		return KindUnknown
	}
}

// Message formats err for the error stream, prefixed with its kind.
func Message(err error) string {
	return fmt.Sprintf("%s: %v", Classify(err), err)
}
