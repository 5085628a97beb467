// Package perception is the boundary to the external reasoning service.
// Everything above it sees a prompt-in, text-out LLMClient with an explicit
// error; replies are unstructured and callers parse them defensively.
package perception

import (
	"context"
	"fmt"
)

// LLMClient defines the interface for LLM providers.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Provider names an LLM backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
)

// ConfigurationError means the oracle cannot be configured at all. It is
// fatal at startup rather than deferred into per-call failures.
type ConfigurationError struct {
	Provider Provider
	Reason   string
	Err      error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("%s oracle misconfigured: %s", e.Provider, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// OracleError wraps a failed oracle call (network, auth, quota, timeout or
// an unusable response).
type OracleError struct {
	Op     string
	CallID string
	Err    error
}

// Error implements the error interface.
func (e *OracleError) Error() string {
	if e.CallID != "" {
		return fmt.Sprintf("oracle %s [%s]: %v", e.Op, e.CallID, e.Err)
	}
	return fmt.Sprintf("oracle %s: %v", e.Op, e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }
