// Package ai holds the model-call boundary: the injected call function,
// the tolerant response parser with its one-shot repair, the prompt
// builders, and an Ollama-backed default call implementation.
//
// The engine never inspects endpoints, authentication, or model identity;
// it sees only CallFunc.
package ai

import (
	"context"
	"fmt"
)

// CallFunc sends one prompt to a language model and returns the raw
// response text. Implementations own timeouts and transport concerns.
type CallFunc func(ctx context.Context, prompt string) (string, error)

// CallError wraps a failure of the injected call itself (network, quota).
// Components that call out treat it the same as a malformed response:
// they fall back, never fail the pipeline.
type CallError struct {
	Err error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("model call failed: %v", e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }
