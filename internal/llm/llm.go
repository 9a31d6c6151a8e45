// Package llm abstracts the generative text backend behind a single
// completion call. The backend's output is untyped, untrusted text; parsing
// lives with the callers.
package llm

import (
	"context"

	"github.com/reserveapp/reserve-server/internal/errors"
)

// Request is a single completion request.
type Request struct {
	// System is an optional persona preamble.
	System string
	// Prompt is the user-turn content.
	Prompt string
	// MaxTokens bounds the output size.
	MaxTokens int
	// Temperature is the sampling temperature.
	Temperature float64
}

// Client is the generative backend interface. Implementations make at most
// one attempt per call; any transport, credential, or status failure is
// reported as ErrBackendUnavailable and never retried here.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	// Configured reports whether a credential is present. Callers use it
	// to skip the backend entirely and go straight to fallbacks.
	Configured() bool
}

// ErrUnavailable is the uniform failure for missing credentials, network
// errors, and non-success responses.
var ErrUnavailable = errors.ErrBackendUnavailable
