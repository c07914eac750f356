package models

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy. Callers distinguish the four classes with errors.Is /
// errors.As; none of them is ever downgraded to an UNCERTAIN verdict.
var (
	ErrEmptyContext       = errors.New("context is empty")
	ErrEmptyResponse      = errors.New("response is empty")
	ErrInvalidThreshold   = errors.New("similarity threshold out of range")
	ErrMissingCredentials = errors.New("missing credentials")
)

// UpstreamError wraps a failure of the embedding provider or the remote
// judge service.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure in %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// SchemaError wraps a remote judge response that failed schema
// validation. Kept distinct from UpstreamError so callers can tell a
// broken service from a misbehaving one.
type SchemaError struct {
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid upstream response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid upstream response: %s", e.Reason)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Validate rejects thresholds outside [0.1, 0.95]. The check runs on
// every evaluation so a bad snapshot fails before any work is done.
func (c DetectionConfig) Validate() error {
	if c.SimilarityThreshold < MinSimilarityThreshold || c.SimilarityThreshold > MaxSimilarityThreshold {
		return fmt.Errorf("%w: %.2f not in [%.2f, %.2f]",
			ErrInvalidThreshold, c.SimilarityThreshold, MinSimilarityThreshold, MaxSimilarityThreshold)
	}
	return nil
}

// Validate rejects blank context or response before any computation,
// local or remote.
func (in EvaluationInput) Validate() error {
	if strings.TrimSpace(in.Context) == "" {
		return ErrEmptyContext
	}
	if strings.TrimSpace(in.Response) == "" {
		return ErrEmptyResponse
	}
	return nil
}
