// Package types holds the records passed between the PrivacyPal pipeline
// stages: the inbound chat Message, the scanner's Finding, the sentinel's
// Verdict and the coach's CoachingDraft.
//
// Records are plain values. Every stage builds a new record from its inputs
// through a validating constructor and never mutates one it received.
package types

import (
	"fmt"
	"strings"
)

// UnknownID is substituted for a message that arrives without an id or user.
const UnknownID = "unknown"

// =============================================================================
// ENUMERATIONS
// =============================================================================

// PatternType identifies the scanner rule that produced a Finding.
type PatternType string

const (
	PatternAWSAccessKey  PatternType = "AWS_ACCESS_KEY"
	PatternAWSSecretKey  PatternType = "AWS_SECRET_KEY"
	PatternCreditCard    PatternType = "CREDIT_CARD"
	PatternStripeTestKey PatternType = "STRIPE_TEST_KEY"
)

// PatternTypes lists every rule in scan order.
var PatternTypes = []PatternType{
	PatternAWSAccessKey,
	PatternAWSSecretKey,
	PatternCreditCard,
	PatternStripeTestKey,
}

// IsValid returns true if the pattern type is a recognized rule.
func (p PatternType) IsValid() bool {
	switch p {
	case PatternAWSAccessKey, PatternAWSSecretKey, PatternCreditCard, PatternStripeTestKey:
		return true
	default:
		return false
	}
}

// RiskLevel is the severity attached to a Verdict.
type RiskLevel string

const (
	RiskNone   RiskLevel = "NONE"
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// IsValid returns true if the level is one of the four known levels.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskNone, RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// ParseRiskLevel parses a level case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, error) {
	level := RiskLevel(strings.ToUpper(strings.TrimSpace(s)))
	if !level.IsValid() {
		return RiskNone, &ValidationError{Field: "risk_level", Message: fmt.Sprintf("unknown level %q", s)}
	}
	return level, nil
}

// ValidationError reports a record that failed construction.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Message
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message is one entry of the chat feed.
type Message struct {
	ID   string `json:"id" yaml:"id"`
	User string `json:"user" yaml:"user"`
	Text string `json:"text" yaml:"text"`
}

// Normalize fills a missing id or user with UnknownID. Text is left as-is;
// an empty text simply yields no findings.
func (m Message) Normalize() Message {
	if strings.TrimSpace(m.ID) == "" {
		m.ID = UnknownID
	}
	if strings.TrimSpace(m.User) == "" {
		m.User = UnknownID
	}
	return m
}

// =============================================================================
// FINDING
// =============================================================================

// Finding is one rule match inside one message.
type Finding struct {
	PatternType   PatternType `json:"pattern_type"`
	MatchedString string      `json:"matched_string"`
	FullText      string      `json:"full_text"`
	MessageID     string      `json:"message_id"`
}

// NewFinding builds a Finding. The matched string must occur verbatim in the
// full text.
func NewFinding(pattern PatternType, matched, fullText, messageID string) (Finding, error) {
	if !pattern.IsValid() {
		return Finding{}, &ValidationError{Field: "pattern_type", Message: fmt.Sprintf("unknown pattern %q", pattern)}
	}
	if matched == "" {
		return Finding{}, &ValidationError{Field: "matched_string", Message: "must not be empty"}
	}
	if !strings.Contains(fullText, matched) {
		return Finding{}, &ValidationError{Field: "matched_string", Message: "is not a substring of full_text"}
	}
	if messageID == "" {
		return Finding{}, &ValidationError{Field: "message_id", Message: "must not be empty"}
	}
	return Finding{
		PatternType:   pattern,
		MatchedString: matched,
		FullText:      fullText,
		MessageID:     messageID,
	}, nil
}

// RedactedMatch returns the matched string safe for logs and consoles.
func (f Finding) RedactedMatch() string {
	return Redact(f.MatchedString)
}

// Redact keeps the first four characters of a secret and masks the rest.
func Redact(s string) string {
	const keep = 4
	r := []rune(s)
	if len(r) <= keep {
		return strings.Repeat("*", len(r))
	}
	return string(r[:keep]) + strings.Repeat("*", len(r)-keep)
}

// =============================================================================
// VERDICT
// =============================================================================

// Verdict is the adjudication outcome for one Finding.
type Verdict struct {
	IsRealRisk bool      `json:"is_real_risk"`
	RiskLevel  RiskLevel `json:"risk_level"`
	Reasoning  string    `json:"reasoning"`
}

// NewVerdict builds a Verdict. A verdict that is not a real risk always
// carries RiskNone, whatever level was passed in.
func NewVerdict(isRealRisk bool, level RiskLevel, reasoning string) (Verdict, error) {
	if !level.IsValid() {
		return Verdict{}, &ValidationError{Field: "risk_level", Message: fmt.Sprintf("unknown level %q", level)}
	}
	if strings.TrimSpace(reasoning) == "" {
		return Verdict{}, &ValidationError{Field: "reasoning", Message: "must not be empty"}
	}
	if !isRealRisk {
		level = RiskNone
	}
	return Verdict{IsRealRisk: isRealRisk, RiskLevel: level, Reasoning: reasoning}, nil
}

// SafeVerdict is the fail-safe outcome: not a real risk, with the reason
// recorded for the caller.
func SafeVerdict(reasoning string) Verdict {
	if strings.TrimSpace(reasoning) == "" {
		reasoning = "no reason provided"
	}
	return Verdict{IsRealRisk: false, RiskLevel: RiskNone, Reasoning: reasoning}
}

// Actionable reports whether the verdict should trigger remediation.
func (v Verdict) Actionable() bool {
	return v.IsRealRisk && v.RiskLevel != RiskNone
}

// =============================================================================
// COACHING DRAFT
// =============================================================================

// CoachingDraft is a private remediation message for one user. It is returned
// to the caller, never delivered.
type CoachingDraft struct {
	RecipientUser string `json:"recipient_user"`
	MessageBody   string `json:"message_body,omitempty"`
}

// NewCoachingDraft builds a draft. An empty body is allowed and means no
// notification was produced.
func NewCoachingDraft(recipient, body string) (CoachingDraft, error) {
	if strings.TrimSpace(recipient) == "" {
		return CoachingDraft{}, &ValidationError{Field: "recipient_user", Message: "must not be empty"}
	}
	return CoachingDraft{RecipientUser: recipient, MessageBody: strings.TrimSpace(body)}, nil
}

// Empty reports whether the draft carries no message.
func (d CoachingDraft) Empty() bool {
	return d.MessageBody == ""
}
