package perception

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"privacypal/internal/logging"
)

type stubClient struct {
	response string
	err      error
	system   string
}

func (s *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	return s.CompleteWithSystem(ctx, "", prompt)
}

func (s *stubClient) CompleteWithSystem(_ context.Context, system, _ string) (string, error) {
	s.system = system
	return s.response, s.err
}

func TestTracingClient_Success(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logging.SetRoot(zap.New(core))
	t.Cleanup(func() { logging.SetRoot(nil) })

	stub := &stubClient{response: "REAL"}
	tc := NewTracingClient(stub, "sentinel")

	got, err := tc.CompleteWithSystem(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "REAL", got)
	assert.Equal(t, "sys", stub.system)

	stats := tc.Stats()
	assert.Equal(t, 1, stats.Calls)
	assert.Equal(t, 0, stats.Failures)

	entries := logs.FilterMessage("LLM call completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "sentinel", fields["client"])
	assert.NotEmpty(t, fields["call_id"])
}

func TestTracingClient_FailureWrapsOracleError(t *testing.T) {
	boom := errors.New("connection reset")
	tc := NewTracingClient(&stubClient{err: boom}, "coach")

	_, err := tc.Complete(context.Background(), "user")
	require.Error(t, err)

	var oerr *OracleError
	require.True(t, errors.As(err, &oerr))
	assert.Equal(t, "coach", oerr.Op)
	assert.NotEmpty(t, oerr.CallID)
	assert.True(t, errors.Is(err, boom))

	stats := tc.Stats()
	assert.Equal(t, 1, stats.Calls)
	assert.Equal(t, 1, stats.Failures)
}

func TestTracingClient_PreservesDeadline(t *testing.T) {
	tc := NewTracingClient(&stubClient{err: context.DeadlineExceeded}, "sentinel")

	_, err := tc.Complete(context.Background(), "user")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

var (
	_ LLMClient = (*GeminiClient)(nil)
	_ LLMClient = (*TracingClient)(nil)
)
