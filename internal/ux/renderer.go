package ux

import (
	"fmt"
	"io"
	"strings"

	"privacypal/internal/perception"
	"privacypal/internal/pipeline"
	"privacypal/internal/types"
)

const divider = "---------------------------------------------"

// Renderer writes a linear, human-readable log of a run.
type Renderer struct {
	w           io.Writer
	styles      Styles
	showSecrets bool
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, theme Theme) *Renderer {
	return &Renderer{w: w, styles: NewStyles(w, theme)}
}

// ShowSecrets prints matched strings in full instead of redacted.
func (r *Renderer) ShowSecrets(show bool) *Renderer {
	r.showSecrets = show
	return r
}

func (r *Renderer) line(indent int, style func(...string) string, format string, args ...any) {
	fmt.Fprintf(r.w, "%s%s\n", strings.Repeat(" ", indent), style(fmt.Sprintf(format, args...)))
}

func (r *Renderer) match(f types.Finding) string {
	if r.showSecrets {
		return f.MatchedString
	}
	return f.RedactedMatch()
}

// Start prints the run banner.
func (r *Renderer) Start(messages int) {
	r.line(0, r.styles.Header.Render, "STARTING PRIVACYPAL SECURITY AGENT...")
	r.line(0, r.styles.Divider.Render, divider)
	r.line(0, r.styles.Info.Render, "Loaded %d messages from feed.", messages)
	fmt.Fprintln(r.w)
}

// Message prints the outcome of one processed message.
func (r *Renderer) Message(mr pipeline.MessageResult) {
	r.line(0, r.styles.Body.Render, "Reading message from %s...", r.styles.Bold.Render(mr.Message.User))
	if mr.Clean() {
		r.line(3, r.styles.Success.Render, "Clean.")
		return
	}
	for _, f := range mr.Findings {
		r.finding(mr.Message.User, f)
	}
}

func (r *Renderer) finding(user string, f pipeline.FindingResult) {
	r.trap(f.Finding)
	r.line(6, r.styles.Agent.Render, "Sentinel analyzing context...")

	if !f.Verdict.IsRealRisk {
		r.line(6, r.styles.Success.Render, "FALSE POSITIVE. Sentinel says: %s", f.Verdict.Reasoning)
		return
	}

	r.line(6, r.styles.Danger.Render, "REAL RISK CONFIRMED! Severity: %s", f.Verdict.RiskLevel)
	r.line(9, r.styles.Danger.Render, "Reason: %s", f.Verdict.Reasoning)
	r.line(6, r.styles.Agent.Render, "Coach drafting alert...")

	if !f.Coached() {
		r.line(6, r.styles.Warning.Render, "No message produced.")
		return
	}
	fmt.Fprintln(r.w)
	r.line(6, r.styles.DMTitle.Render, "[PRIVATE DM DRAFT FOR %s]", strings.ToUpper(user))
	fmt.Fprintln(r.w, r.styles.DMBody.Render(f.Draft.MessageBody))
	fmt.Fprintln(r.w)
}

func (r *Renderer) trap(f types.Finding) {
	r.line(3, r.styles.Warning.Render, "TRAP TRIGGERED! Pattern: %s", f.PatternType)
	r.line(6, r.styles.Warning.Render, "Match: %s", r.match(f))
}

// Triage prints scanner-only results for one message.
func (r *Renderer) Triage(msg types.Message, findings []types.Finding) {
	r.line(0, r.styles.Body.Render, "Message %s from %s", msg.ID, r.styles.Bold.Render(msg.User))
	if len(findings) == 0 {
		r.line(3, r.styles.Success.Render, "Clean.")
		return
	}
	for _, f := range findings {
		r.trap(f)
	}
}

// Summary prints the closing counters of a run.
func (r *Renderer) Summary(report *pipeline.Report) {
	s := report.Summary()
	r.line(0, r.styles.Divider.Render, divider)
	r.line(0, r.styles.Header.Render, "SCAN COMPLETE.")
	r.line(0, r.styles.Muted.Render, "run %s", report.RunID)
	r.line(0, r.styles.Body.Render, "messages: %d  clean: %d  findings: %d", s.Messages, s.Clean, s.Findings)
	r.line(0, r.styles.Body.Render, "real risks: %d  drafts: %d  failed drafts: %d", s.RealRisks, s.Drafts, s.FailedDrafts)
}

// Models prints the model listing.
func (r *Renderer) Models(models []perception.ModelInfo) {
	if len(models) == 0 {
		r.line(0, r.styles.Danger.Render, "No text generation models found. Check your API key permissions.")
		return
	}
	for _, m := range models {
		if m.DisplayName != "" {
			r.line(0, r.styles.Body.Render, "AVAILABLE: %s %s", m.Name, r.styles.Muted.Render("("+m.DisplayName+")"))
		} else {
			r.line(0, r.styles.Body.Render, "AVAILABLE: %s", m.Name)
		}
	}
}
