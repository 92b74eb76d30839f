package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedSnapshot covers every way a server snapshot can fail to
	// parse: a required field missing, a field of the wrong shape, or an
	// unrecognized role. A connection is never half-built past this error.
	ErrMalformedSnapshot = errors.New("malformed session snapshot")

	ErrConnectionNotFound = errors.New("connection not found")
	ErrStreamNotFound     = errors.New("stream not found")

	// ErrStaleSubscriber means a subscribed stream id no longer resolves to
	// any live publisher. Staleness is tolerated by the model; this error is
	// only surfaced to callers that explicitly resolve.
	ErrStaleSubscriber = errors.New("subscriber references no live publisher")
)

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedSnapshot, fmt.Sprintf(format, args...))
}
