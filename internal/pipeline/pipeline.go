// Package pipeline classifies stage failures for the consumer runner.
//
// A stage handler returns nil on success, ErrSkipped (possibly wrapped) when a
// precondition is missing, a Permanent error when the input can never be
// processed, and any other error for transient failures that deserve a retry.
package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrSkipped = errors.New("stage skipped")

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return "permanent: " + e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	var p *permanentError
	if errors.As(err, &p) {
		return err
	}
	return &permanentError{err: err}
}

func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Skip reports a missing precondition; the trigger is acknowledged.
func Skip(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSkipped, fmt.Sprintf(format, args...))
}

func IsSkipped(err error) bool {
	return errors.Is(err, ErrSkipped)
}

// Decode unmarshals a message payload. Malformed payloads are permanent.
func Decode[T any](payload []byte) (T, error) {
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, Permanent(fmt.Errorf("decode payload: %w", err))
	}
	return v, nil
}
