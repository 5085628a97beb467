// Package pipeline drives messages through scan, adjudication and coaching.
//
// Per message: SCANNED, then for each finding ADJUDICATED, then COACHED only
// when the verdict is a real risk, then DONE. Findings never influence each
// other, so with Options.Parallel > 1 they are processed concurrently; results
// are always reported in scan order.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"privacypal/internal/coach"
	"privacypal/internal/logging"
	"privacypal/internal/scanner"
	"privacypal/internal/sentinel"
	"privacypal/internal/types"
)

// Scanner finds candidate leaks in a message.
type Scanner interface {
	Scan(msg types.Message) []types.Finding
}

// Adjudicator classifies a finding. It must not fail; failures are folded
// into a not-real verdict.
type Adjudicator interface {
	Verify(ctx context.Context, finding types.Finding) types.Verdict
}

// Drafter writes a remediation message. It must not fail; failures yield an
// empty draft.
type Drafter interface {
	Draft(ctx context.Context, user string, finding types.Finding, verdict types.Verdict) types.CoachingDraft
}

// Options tunes a pipeline run.
type Options struct {
	// Parallel bounds concurrent findings within one message. Values below 2
	// process findings one at a time.
	Parallel int
	// Pace is waited between consecutive messages in Run.
	Pace time.Duration
}

// DefaultOptions returns sequential processing with no pacing.
func DefaultOptions() Options {
	return Options{Parallel: 1}
}

// Pipeline wires the three stages together.
type Pipeline struct {
	scanner     Scanner
	adjudicator Adjudicator
	drafter     Drafter
	opts        Options
}

// New creates a pipeline from its stages.
func New(s Scanner, a Adjudicator, d Drafter, opts Options) *Pipeline {
	if opts.Parallel < 1 {
		opts.Parallel = 1
	}
	return &Pipeline{scanner: s, adjudicator: a, drafter: d, opts: opts}
}

// NewWithOracle builds the standard pipeline: the default rule set, a
// sentinel and a coach sharing one oracle client.
func NewWithOracle(llm sentinel.LLMClient, perCallTimeout time.Duration, opts Options) *Pipeline {
	adj := sentinel.New(llm, sentinel.Config{PerCallTimeout: perCallTimeout})
	dr := coach.New(llm, coach.Config{PerCallTimeout: perCallTimeout})
	return New(scanner.Default(), adj, dr, opts)
}

// Scan returns the findings of one message.
func (p *Pipeline) Scan(msg types.Message) []types.Finding {
	return p.scanner.Scan(msg)
}

// Adjudicate returns the verdict for one finding.
func (p *Pipeline) Adjudicate(ctx context.Context, finding types.Finding) types.Verdict {
	return p.adjudicator.Verify(ctx, finding)
}

// DraftCoaching returns a remediation draft. Verdicts that are not real risks
// get an empty draft without consulting the drafter.
func (p *Pipeline) DraftCoaching(ctx context.Context, user string, finding types.Finding, verdict types.Verdict) types.CoachingDraft {
	if !verdict.IsRealRisk {
		return types.CoachingDraft{RecipientUser: user}
	}
	return p.drafter.Draft(ctx, user, finding, verdict)
}

// ProcessMessage runs one message through every stage.
func (p *Pipeline) ProcessMessage(ctx context.Context, msg types.Message) MessageResult {
	msg = msg.Normalize()
	logger := logging.Get(logging.CategoryPipeline).With(zap.String("message_id", msg.ID))

	findings := p.Scan(msg)
	result := MessageResult{Message: msg}
	if len(findings) == 0 {
		logger.Debug("message clean")
		return result
	}

	result.Findings = make([]FindingResult, len(findings))
	if p.opts.Parallel < 2 || len(findings) == 1 {
		for i, f := range findings {
			result.Findings[i] = p.processFinding(ctx, msg.User, f)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(p.opts.Parallel)
		for i, f := range findings {
			g.Go(func() error {
				result.Findings[i] = p.processFinding(ctx, msg.User, f)
				return nil
			})
		}
		_ = g.Wait() // workers never return errors
	}

	logger.Debug("message processed", zap.Int("findings", len(findings)))
	return result
}

// processFinding adjudicates and, when warranted, coaches one finding. The
// coaching call for a finding always starts after its adjudication ends.
func (p *Pipeline) processFinding(ctx context.Context, user string, f types.Finding) FindingResult {
	res := FindingResult{Finding: f, Stages: []Stage{StageScanned}}

	res.Verdict = p.Adjudicate(ctx, f)
	res.Stages = append(res.Stages, StageAdjudicated)

	if res.Verdict.IsRealRisk {
		draft := p.DraftCoaching(ctx, user, f, res.Verdict)
		res.Draft = &draft
		res.Stages = append(res.Stages, StageCoached)
	}

	res.Stages = append(res.Stages, StageDone)
	return res
}

// Run processes msgs in order, calling fn after each one. It stops early only
// when ctx is cancelled, returning the partial report with ctx's error.
func (p *Pipeline) Run(ctx context.Context, msgs []types.Message, fn func(MessageResult)) (*Report, error) {
	report := &Report{RunID: uuid.New(), StartedAt: time.Now()}
	logger := logging.Get(logging.CategoryPipeline).With(zap.String("run_id", report.RunID.String()))
	logger.Info("run started", zap.Int("messages", len(msgs)), zap.Int("parallel", p.opts.Parallel))

	for i, msg := range msgs {
		if err := ctx.Err(); err != nil {
			logger.Warn("run cancelled", zap.Int("processed", i), zap.Error(err))
			report.FinishedAt = time.Now()
			return report, err
		}
		if i > 0 && p.opts.Pace > 0 {
			if err := sleep(ctx, p.opts.Pace); err != nil {
				logger.Warn("run cancelled", zap.Int("processed", i), zap.Error(err))
				report.FinishedAt = time.Now()
				return report, err
			}
		}

		mr := p.ProcessMessage(ctx, msg)
		report.Messages = append(report.Messages, mr)
		if fn != nil {
			fn(mr)
		}
	}

	report.FinishedAt = time.Now()
	s := report.Summary()
	logger.Info("run finished",
		zap.Int("findings", s.Findings),
		zap.Int("real_risks", s.RealRisks),
		zap.Int("drafts", s.Drafts),
		zap.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)))
	return report, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
