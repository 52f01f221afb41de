package logdom

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Registration and backend-lifecycle failures
// wrap one of these so callers can errors.Is/errors.As them; log()
// itself is infallible by contract (spec §7) and never returns or
// surfaces any of these to its caller.
var (
	ErrInvalid               = errors.New("logdom: invalid argument")
	ErrDuplicateName         = errors.New("logdom: duplicate backend name")
	ErrDuplicateTarget       = errors.New("logdom: duplicate backend target")
	ErrAmbiguousRedefinition = errors.New("logdom: ambiguous domain redefinition")
	ErrAlreadyOpen           = errors.New("logdom: backend already open")
	ErrAlreadyClosed         = errors.New("logdom: backend already closed")
)

// IoError wraps a failure from a backend's underlying sink, carrying
// the target path (if any) and the cause, following the spec's
// IoError(path, cause) kind.
type IoError struct {
	Path  string
	Cause error
}

func (e *IoError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("logdom: i/o error: %s", e.Cause)
	}
	return fmt.Sprintf("logdom: i/o error on %q: %s", e.Path, e.Cause)
}

func (e *IoError) Unwrap() error { return e.Cause }

func newIoError(path string, cause error) *IoError {
	return &IoError{Path: path, Cause: cause}
}
