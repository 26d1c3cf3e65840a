// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// CompletionClient is the external generative service as seen by the
// pipeline. Implementations live in internal/ai; tests inject a scripted
// fake. The output is treated as untrusted: it may be malformed, partial,
// or not JSON at all.
type CompletionClient interface {
	// Complete sends a text prompt and returns the raw model output
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithImage sends a prompt plus a page image (vision flow)
	CompleteWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

const (
	defaultMaxAttempts      = 3
	defaultTransportRetries = 2
	defaultBackoffBase      = 1 * time.Second
)

// Structurer drives raw text through the model and the validator until a
// meaningful record comes out or the attempts run out. One Structurer is
// safe for concurrent use; all per-request state lives on the stack.
type Structurer struct {
	client           CompletionClient
	maxAttempts      int
	transportRetries int
	backoffBase      time.Duration
}

// NewStructurer creates a structurer around the given completion client
func NewStructurer(client CompletionClient) *Structurer {
	return &Structurer{
		client:           client,
		maxAttempts:      defaultMaxAttempts,
		transportRetries: defaultTransportRetries,
		backoffBase:      defaultBackoffBase,
	}
}

// SetMaxAttempts overrides the number of escalating prompt attempts.
// Values below 1 are ignored.
func (s *Structurer) SetMaxAttempts(n int) {
	if n >= 1 {
		s.maxAttempts = n
	}
}

// attemptOutcome tags the result of one structuring attempt so the retry
// policy is explicit instead of being encoded in catch-and-continue flow
type attemptOutcome int

const (
	attemptSuccess attemptOutcome = iota // meaningful record produced
	attemptRetry                         // recoverable, escalate to next attempt
	attemptFatal                         // terminal, surface to caller
)

type attemptResult struct {
	outcome attemptOutcome
	record  *ProfileRecord
	err     error
}

// StructureText runs the full attempt loop over cleaned resume text.
// Returns the first meaningful record, or InsufficientDataError once the
// attempts are exhausted, or ServiceUnavailableError on a terminal
// transport failure.
func (s *Structurer) StructureText(ctx context.Context, cleanedText string) (*ProfileRecord, error) {
	return s.structure(ctx, func(ctx context.Context, attempt int) (string, error) {
		return s.client.Complete(ctx, buildStructuringPrompt(cleanedText, attempt))
	})
}

// StructurePage runs the attempt loop for a single page image
func (s *Structurer) StructurePage(ctx context.Context, image []byte, mimeType string, pageNum, totalPages int) (*ProfileRecord, error) {
	prompt := buildPagePrompt(pageNum, totalPages)
	return s.structure(ctx, func(ctx context.Context, attempt int) (string, error) {
		return s.client.CompleteWithImage(ctx, prompt, image, mimeType)
	})
}

// structure is the shared attempt state machine. call performs the actual
// model invocation for a given attempt number.
func (s *Structurer) structure(ctx context.Context, call func(ctx context.Context, attempt int) (string, error)) (*ProfileRecord, error) {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		result := s.runAttempt(ctx, attempt, call)

		switch result.outcome {
		case attemptSuccess:
			return result.record, nil
		case attemptFatal:
			return nil, &ServiceUnavailableError{Cause: result.err}
		case attemptRetry:
			lastErr = result.err
			log.Printf("structure: attempt %d/%d did not produce a meaningful record: %v", attempt, s.maxAttempts, result.err)
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return nil, &InsufficientDataError{Attempts: s.maxAttempts, LastCause: lastErr}
}

// runAttempt performs one prompt-build -> completion-call -> validate cycle
func (s *Structurer) runAttempt(ctx context.Context, attempt int, call func(ctx context.Context, attempt int) (string, error)) attemptResult {
	response, err := s.callWithRetry(ctx, func(ctx context.Context) (string, error) {
		return call(ctx, attempt)
	})
	if err != nil {
		// A terminal transport error on the very first attempt means the
		// service itself is down (bad key, rate limit); escalating the
		// prompt will not help, so surface it. Later attempts fold the
		// error into the exhaustion result instead.
		if attempt == 1 && isTerminalTransport(err) {
			return attemptResult{outcome: attemptFatal, err: err}
		}
		return attemptResult{outcome: attemptRetry, err: err}
	}

	candidate, err := decodeCandidate(response)
	if err != nil {
		return attemptResult{outcome: attemptRetry, err: err}
	}

	record := ValidateCandidate(candidate)
	if !record.IsMeaningful() {
		return attemptResult{outcome: attemptRetry, err: fmt.Errorf("attempt %d: validated record has no meaningful data", attempt)}
	}

	return attemptResult{outcome: attemptSuccess, record: record}
}

// callWithRetry wraps a model call with transport-level retries on
// transient failures (502/503, timeouts) using exponential backoff.
// These retries are nested inside a single attempt and do not consume
// the attempt counter.
func (s *Structurer) callWithRetry(ctx context.Context, call func(ctx context.Context) (string, error)) (string, error) {
	delay := s.backoffBase
	var lastErr error

	for try := 0; try <= s.transportRetries; try++ {
		if try > 0 {
			log.Printf("structure: transient transport error, retrying in %s: %v", delay, lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			delay *= 2
		}

		response, err := call(ctx)
		if err == nil {
			return response, nil
		}
		lastErr = err

		if !isTransientTransport(err) {
			return "", err
		}
	}

	return "", lastErr
}

// isTransientTransport reports whether the error is worth an in-attempt
// retry: 502/503 from the API, or a timeout
func isTransientTransport(err error) bool {
	var transient interface{ Transient() bool }
	if errors.As(err, &transient) {
		return transient.Transient()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) {
		return timeout.Timeout()
	}
	return false
}

// isTerminalTransport reports whether the error is a non-recoverable API
// failure (auth, rate limit, bad request)
func isTerminalTransport(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var transient interface{ Transient() bool }
	if errors.As(err, &transient) {
		return !transient.Transient()
	}
	return false
}

// decodeCandidate pulls the first balanced JSON object span out of the raw
// model output and decodes it. Models routinely wrap the JSON in markdown
// fences or prose, so anything outside first-'{' .. last-'}' is ignored.
func decodeCandidate(response string) (map[string]any, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("%w: %q", ErrMalformedResponse, truncate(response, 120))
	}

	var candidate map[string]any
	if err := json.Unmarshal([]byte(response[start:end+1]), &candidate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return candidate, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
