package perception

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"privacypal/internal/logging"
)

// CallStats summarizes the oracle traffic seen by a TracingClient.
type CallStats struct {
	Calls        int
	Failures     int
	TotalLatency time.Duration
}

// TracingClient wraps any LLMClient, tags every call with an id, logs its
// outcome and keeps in-memory counters. Calls are not serialized: the lock
// only guards the counters.
type TracingClient struct {
	underlying LLMClient
	label      string

	mu    sync.Mutex
	stats CallStats
}

// NewTracingClient creates a tracing wrapper around an existing LLM client.
func NewTracingClient(underlying LLMClient, label string) *TracingClient {
	return &TracingClient{underlying: underlying, label: label}
}

// Complete implements LLMClient.Complete with tracing.
func (tc *TracingClient) Complete(ctx context.Context, prompt string) (string, error) {
	return tc.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem implements LLMClient.CompleteWithSystem with tracing.
// Failures come back as *OracleError carrying the call id.
func (tc *TracingClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	callID := uuid.New().String()
	logger := logging.Get(logging.CategoryOracle).With(
		zap.String("call_id", callID),
		zap.String("client", tc.label),
	)

	start := time.Now()
	logger.Debug("LLM call started", zap.Int("prompt_len", len(userPrompt)))

	response, err := tc.underlying.CompleteWithSystem(ctx, systemPrompt, userPrompt)
	duration := time.Since(start)

	tc.mu.Lock()
	tc.stats.Calls++
	tc.stats.TotalLatency += duration
	if err != nil {
		tc.stats.Failures++
	}
	tc.mu.Unlock()

	if err != nil {
		logger.Warn("LLM call failed", zap.Duration("duration", duration), zap.Error(err))
		return "", &OracleError{Op: tc.label, CallID: callID, Err: err}
	}

	logger.Debug("LLM call completed",
		zap.Duration("duration", duration),
		zap.Int("response_len", len(response)))
	return response, nil
}

// Stats returns a snapshot of the call counters.
func (tc *TracingClient) Stats() CallStats {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.stats
}
