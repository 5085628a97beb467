package pipeline

import (
	"time"

	"github.com/google/uuid"

	"privacypal/internal/types"
)

// Stage is a step in the per-finding state machine.
type Stage string

const (
	StageScanned     Stage = "SCANNED"
	StageAdjudicated Stage = "ADJUDICATED"
	StageCoached     Stage = "COACHED"
	StageDone        Stage = "DONE"
)

// FindingResult is the full outcome for one finding.
type FindingResult struct {
	Finding types.Finding        `json:"finding"`
	Verdict types.Verdict        `json:"verdict"`
	Draft   *types.CoachingDraft `json:"draft,omitempty"` // set only for real risks
	Stages  []Stage              `json:"stages"`
}

// Coached reports whether a non-empty draft was produced.
func (r FindingResult) Coached() bool {
	return r.Draft != nil && !r.Draft.Empty()
}

// MessageResult groups the finding outcomes of one message, in scan order.
type MessageResult struct {
	Message  types.Message   `json:"message"`
	Findings []FindingResult `json:"findings,omitempty"`
}

// Clean reports whether the message produced no findings.
func (m MessageResult) Clean() bool {
	return len(m.Findings) == 0
}

// Report is the outcome of one Run.
type Report struct {
	RunID      uuid.UUID       `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Messages   []MessageResult `json:"messages"`
}

// Summary aggregates counters over a report.
type Summary struct {
	Messages     int `json:"messages"`
	Clean        int `json:"clean"`
	Findings     int `json:"findings"`
	RealRisks    int `json:"real_risks"`
	Drafts       int `json:"drafts"`
	FailedDrafts int `json:"failed_drafts"`
}

// Summary computes the run counters.
func (r *Report) Summary() Summary {
	var s Summary
	for _, m := range r.Messages {
		s.Messages++
		if m.Clean() {
			s.Clean++
		}
		for _, f := range m.Findings {
			s.Findings++
			if !f.Verdict.IsRealRisk {
				continue
			}
			s.RealRisks++
			if f.Coached() {
				s.Drafts++
			} else {
				s.FailedDrafts++
			}
		}
	}
	return s
}

// Drafts returns every non-empty draft in report order.
func (r *Report) Drafts() []types.CoachingDraft {
	var out []types.CoachingDraft
	for _, m := range r.Messages {
		for _, f := range m.Findings {
			if f.Coached() {
				out = append(out, *f.Draft)
			}
		}
	}
	return out
}
