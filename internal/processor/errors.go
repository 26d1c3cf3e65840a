// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package processor

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse means a model response contained no parseable JSON
// span. It is recovered locally by moving to the next attempt and only
// reaches the caller wrapped inside an InsufficientDataError.
var ErrMalformedResponse = errors.New("no parseable JSON object in model response")

// InsufficientDataError is returned when every structuring attempt has been
// exhausted without producing a meaningful record.
type InsufficientDataError struct {
	Attempts  int
	LastCause error
}

func (e *InsufficientDataError) Error() string {
	if e.LastCause != nil {
		return fmt.Sprintf("could not extract sufficient resume data after %d attempts: %v", e.Attempts, e.LastCause)
	}
	return fmt.Sprintf("could not extract sufficient resume data after %d attempts", e.Attempts)
}

func (e *InsufficientDataError) Unwrap() error { return e.LastCause }

// ServiceUnavailableError is returned when the completion service failed
// terminally (auth, rate limit, or a non-retryable transport error).
type ServiceUnavailableError struct {
	Cause error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("completion service unavailable: %v", e.Cause)
}

func (e *ServiceUnavailableError) Unwrap() error { return e.Cause }
