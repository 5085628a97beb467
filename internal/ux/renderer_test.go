package ux

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"privacypal/internal/perception"
	"privacypal/internal/pipeline"
	"privacypal/internal/types"
)

func cardFinding() types.Finding {
	return types.Finding{
		PatternType:   types.PatternCreditCard,
		MatchedString: "4111111111111111",
		FullText:      "prod secret 4111111111111111",
		MessageID:     "m2",
	}
}

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("PRIVACYPAL_DARK_MODE", "1")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme when PRIVACYPAL_DARK_MODE=1")
	}

	t.Setenv("PRIVACYPAL_DARK_MODE", "")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme when PRIVACYPAL_DARK_MODE is unset")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for a black background")
	}
}

func TestMessage_Clean(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, LightTheme()).Message(pipeline.MessageResult{Message: types.Message{ID: "m3", User: "carol"}})

	out := buf.String()
	assert.Contains(t, out, "Reading message from carol")
	assert.Contains(t, out, "Clean.")
}

func TestMessage_FalsePositive(t *testing.T) {
	var buf bytes.Buffer
	mr := pipeline.MessageResult{
		Message: types.Message{ID: "m2", User: "alice"},
		Findings: []pipeline.FindingResult{{
			Finding: cardFinding(),
			Verdict: types.SafeVerdict(`oracle classified the finding as "TEST"`),
		}},
	}
	NewRenderer(&buf, LightTheme()).Message(mr)

	out := buf.String()
	assert.Contains(t, out, "TRAP TRIGGERED! Pattern: CREDIT_CARD")
	assert.Contains(t, out, "Match: 4111************")
	assert.NotContains(t, out, "4111111111111111")
	assert.Contains(t, out, "FALSE POSITIVE")
	assert.NotContains(t, out, "REAL RISK")
}

func TestMessage_RealRiskWithDraft(t *testing.T) {
	var buf bytes.Buffer
	v, _ := types.NewVerdict(true, types.RiskHigh, `oracle classified the finding as "REAL"`)
	mr := pipeline.MessageResult{
		Message: types.Message{ID: "m2", User: "bob"},
		Findings: []pipeline.FindingResult{{
			Finding: cardFinding(),
			Verdict: v,
			Draft:   &types.CoachingDraft{RecipientUser: "bob", MessageBody: "Hi bob, please delete it.\nThanks, PrivacyPal"},
		}},
	}
	NewRenderer(&buf, DarkTheme()).ShowSecrets(true).Message(mr)

	out := buf.String()
	assert.Contains(t, out, "Match: 4111111111111111")
	assert.Contains(t, out, "REAL RISK CONFIRMED! Severity: HIGH")
	assert.Contains(t, out, "[PRIVATE DM DRAFT FOR BOB]")
	assert.Contains(t, out, "Hi bob, please delete it.")
	assert.Contains(t, out, "Thanks, PrivacyPal")
}

func TestMessage_RealRiskWithoutDraft(t *testing.T) {
	var buf bytes.Buffer
	v, _ := types.NewVerdict(true, types.RiskHigh, "real")
	mr := pipeline.MessageResult{
		Message: types.Message{ID: "m2", User: "bob"},
		Findings: []pipeline.FindingResult{{
			Finding: cardFinding(),
			Verdict: v,
			Draft:   &types.CoachingDraft{RecipientUser: "bob"},
		}},
	}
	NewRenderer(&buf, LightTheme()).Message(mr)

	out := buf.String()
	assert.Contains(t, out, "No message produced.")
	assert.NotContains(t, out, "PRIVATE DM")
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	report := &pipeline.Report{Messages: []pipeline.MessageResult{{Message: types.Message{ID: "a"}}}}
	NewRenderer(&buf, LightTheme()).Summary(report)

	out := buf.String()
	assert.Contains(t, out, "SCAN COMPLETE.")
	assert.Contains(t, out, "messages: 1  clean: 1  findings: 0")
}

func TestTriageAndModels(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, LightTheme())
	r.Triage(types.Message{ID: "arg-1", User: "unknown"}, []types.Finding{cardFinding()})
	r.Models([]perception.ModelInfo{{Name: "models/gemini-2.0-flash", DisplayName: "Gemini 2.0 Flash"}})
	r.Models(nil)

	out := buf.String()
	assert.Contains(t, out, "Message arg-1 from unknown")
	assert.Contains(t, out, "Pattern: CREDIT_CARD")
	assert.Contains(t, out, "AVAILABLE: models/gemini-2.0-flash")
	assert.Contains(t, out, "No text generation models found")
	assert.Equal(t, 0, strings.Count(out, "4111111111111111"))
}
