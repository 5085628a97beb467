// Package coach drafts private remediation messages for users whose message
// was confirmed as a real leak. Drafts are returned to the caller, not sent.
package coach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"privacypal/internal/logging"
	"privacypal/internal/types"
)

// Persona is the name the coach signs with.
const Persona = "PrivacyPal"

// LLMClient is the oracle capability the coach needs.
type LLMClient interface {
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config tunes coaching calls.
type Config struct {
	PerCallTimeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{PerCallTimeout: 30 * time.Second}
}

// Coach drafts remediation messages.
type Coach struct {
	llm    LLMClient
	config Config
}

// New creates a coach. With a nil client every draft is empty.
func New(llm LLMClient, config Config) *Coach {
	return &Coach{llm: llm, config: config}
}

// Draft writes a remediation message for user. It returns an empty draft,
// never an error, when the verdict is not a real risk or the oracle fails.
func (c *Coach) Draft(ctx context.Context, user string, finding types.Finding, verdict types.Verdict) types.CoachingDraft {
	if strings.TrimSpace(user) == "" {
		user = types.UnknownID
	}
	empty := types.CoachingDraft{RecipientUser: user}

	logger := logging.Get(logging.CategoryCoach).With(
		zap.String("user", user),
		zap.String("message_id", finding.MessageID),
	)

	if !verdict.IsRealRisk {
		logger.Debug("verdict is not a real risk, nothing to draft")
		return empty
	}
	if c.llm == nil {
		logger.Warn("no oracle configured, no draft produced")
		return empty
	}

	callCtx := ctx
	if c.config.PerCallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.config.PerCallTimeout)
		defer cancel()
	}

	reply, err := c.llm.CompleteWithSystem(callCtx, buildSystemPrompt(), buildUserPrompt(user, finding, verdict))
	if err != nil {
		logger.Warn("coaching call failed", zap.Error(err))
		return empty
	}

	draft, err := types.NewCoachingDraft(user, reply)
	if err != nil {
		logger.Warn("invalid coaching draft", zap.Error(err))
		return empty
	}
	if draft.Empty() {
		logger.Warn("oracle returned an empty coaching draft")
	} else {
		logger.Info("coaching draft produced", zap.Int("length", len(draft.MessageBody)))
	}
	return draft
}

func buildSystemPrompt() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are %s, a friendly security coach.\n", Persona))
	sb.WriteString("Your job is to write a private direct message to a user who may have leaked sensitive data.\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Start with 'Hi <user>'.\n")
	sb.WriteString("- Do not shame or blame them.\n")
	sb.WriteString("- Explain the risk simply.\n")
	sb.WriteString("- Tell them exactly what to do, e.g. 'Please delete the message and rotate the credential'.\n")
	sb.WriteString(fmt.Sprintf("- Sign off with 'Thanks, %s'.\n", Persona))
	sb.WriteString("Reply with the message text only.\n")
	return sb.String()
}

func buildUserPrompt(user string, f types.Finding, v types.Verdict) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("The user '%s' posted the following message:\n", user))
	sb.WriteString(fmt.Sprintf("%q\n\n", f.FullText))
	sb.WriteString(fmt.Sprintf("This was flagged as a REAL risk (severity %s) because it appears to contain a %q.\n", v.RiskLevel, f.PatternType))
	if v.Reasoning != "" {
		sb.WriteString(fmt.Sprintf("Analyst notes: %s\n", v.Reasoning))
	}
	sb.WriteString(fmt.Sprintf("\nDraft a brief, empathetic and clear message to send privately to '%s'.", user))
	return sb.String()
}
