// Package sentinel adjudicates scanner findings. It asks the oracle whether a
// flagged string is a live secret or test/documentation data and turns the
// free-text reply into a Verdict.
//
// The parse is narrow: only a reply that is exactly REAL
// (ignoring case and surrounding whitespace) is a real risk. Anything else,
// including a failed call, produces a not-real verdict whose reasoning says
// what happened.
package sentinel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"privacypal/internal/logging"
	"privacypal/internal/types"
)

const (
	tokenReal = "REAL"
	tokenTest = "TEST"

	maxReplyEcho = 80
)

var (
	// ErrMalformedReply means the oracle answered with something other than
	// an unambiguous classification.
	ErrMalformedReply = errors.New("malformed oracle reply")

	// ErrEmptyReply means the oracle answered with no text at all.
	ErrEmptyReply = errors.New("empty oracle reply")
)

// LLMClient is the oracle capability the sentinel needs.
type LLMClient interface {
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config tunes adjudication calls.
type Config struct {
	// PerCallTimeout bounds one oracle call; zero disables the bound.
	PerCallTimeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{PerCallTimeout: 30 * time.Second}
}

// Sentinel turns Findings into Verdicts.
type Sentinel struct {
	llm    LLMClient
	config Config
}

// New creates a sentinel. A nil client is allowed; every verdict is then the
// degraded "oracle not configured" outcome.
func New(llm LLMClient, config Config) *Sentinel {
	return &Sentinel{llm: llm, config: config}
}

// Verify adjudicates one finding. It never returns an error: oracle failures
// and unparseable replies become a not-real verdict.
func (s *Sentinel) Verify(ctx context.Context, finding types.Finding) types.Verdict {
	logger := logging.Get(logging.CategorySentinel).With(
		zap.String("message_id", finding.MessageID),
		zap.String("pattern", string(finding.PatternType)),
	)

	if s.llm == nil {
		logger.Warn("no oracle configured, finding not adjudicated")
		return types.SafeVerdict("oracle not configured; finding was not adjudicated")
	}

	callCtx := ctx
	if s.config.PerCallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.config.PerCallTimeout)
		defer cancel()
	}

	reply, err := s.llm.CompleteWithSystem(callCtx, buildSystemPrompt(), buildUserPrompt(finding))
	if err != nil {
		logger.Warn("adjudication call failed", zap.Error(err))
		return types.SafeVerdict(fmt.Sprintf("oracle call failed: %v", err))
	}

	verdict := interpret(reply)
	logger.Info("finding adjudicated",
		zap.Bool("real_risk", verdict.IsRealRisk),
		zap.String("risk_level", string(verdict.RiskLevel)))
	return verdict
}

// ParseClassification reports whether reply is the REAL token. A TEST token
// returns false with no error; anything else returns ErrEmptyReply or
// ErrMalformedReply.
func ParseClassification(reply string) (bool, error) {
	normalized := strings.TrimSpace(reply)
	switch {
	case normalized == "":
		return false, ErrEmptyReply
	case strings.EqualFold(normalized, tokenReal):
		return true, nil
	case strings.EqualFold(normalized, tokenTest):
		return false, nil
	default:
		return false, ErrMalformedReply
	}
}

func interpret(reply string) types.Verdict {
	isReal, err := ParseClassification(reply)
	switch {
	case errors.Is(err, ErrEmptyReply):
		return types.SafeVerdict("oracle returned an empty reply; treating as not a real risk")
	case err != nil:
		return types.SafeVerdict(fmt.Sprintf("oracle reply %q is not an unambiguous classification; treating as not a real risk",
			truncate(strings.TrimSpace(reply), maxReplyEcho)))
	}

	decision := strings.ToUpper(strings.TrimSpace(reply))
	level := types.RiskNone
	if isReal {
		level = types.RiskHigh
	}
	verdict, verr := types.NewVerdict(isReal, level, fmt.Sprintf("oracle classified the finding as %q", decision))
	if verr != nil {
		return types.SafeVerdict(verr.Error())
	}
	return verdict
}

func buildSystemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are a Senior Security Analyst reviewing text flagged by a basic pattern scanner.\n")
	sb.WriteString("Distinguish REAL credentials or personal data (a risk) from TEST data, examples and documentation (safe).\n")
	sb.WriteString("Respond with exactly one word: REAL or TEST.\n")
	return sb.String()
}

func buildUserPrompt(f types.Finding) string {
	var sb strings.Builder
	sb.WriteString("Context: the following message was found in an internal communication channel.\n")
	sb.WriteString(fmt.Sprintf("Message: %q\n\n", f.FullText))
	sb.WriteString(fmt.Sprintf("The scanner flagged it for: %s\n", f.PatternType))
	sb.WriteString(fmt.Sprintf("The matched string was: %q\n\n", f.MatchedString))
	sb.WriteString("Is this a real, sensitive credential or PII?\n")
	sb.WriteString(`Answer with only "REAL" or "TEST".`)
	return sb.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
