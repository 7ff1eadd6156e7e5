package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindTransport     ErrorKind = "transport"
	KindMalformed     ErrorKind = "malformed_response"
	KindInvalidConfig ErrorKind = "invalid_config"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	URL  string // Optional: the request URL involved
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.URL != "" {
		base += fmt.Sprintf(" (url=%s)", e.URL)
	}
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// NotFoundError reports that no data file exists for an instrument/run pair
// after every filename convention was tried.
type NotFoundError struct {
	Instrument string
	Run        int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("failed to find data for %s %d", e.Instrument, e.Run)
}

// Is lets errors.Is(err, ErrNotFound) match exhausted-convention failures.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
