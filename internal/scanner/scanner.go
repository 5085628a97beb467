// Package scanner implements the pattern triage stage: a fixed set of rules
// that flag secret- and PII-shaped strings in chat messages.
package scanner

import (
	"go.uber.org/zap"

	"privacypal/internal/logging"
	"privacypal/internal/types"
)

// Scanner applies its rules to messages. It holds no mutable state, so a
// single Scanner is safe for concurrent use.
type Scanner struct {
	rules []Rule
}

// New creates a scanner over the given rules.
func New(rules ...Rule) *Scanner {
	return &Scanner{rules: rules}
}

// Default creates a scanner with DefaultRules.
func Default() *Scanner {
	return New(DefaultRules()...)
}

// Rules returns the pattern types in scan order.
func (s *Scanner) Rules() []types.PatternType {
	names := make([]types.PatternType, len(s.rules))
	for i, r := range s.rules {
		names[i] = r.Name()
	}
	return names
}

// Scan returns one Finding per rule match, ordered by rule and then by
// position. Messages without text yield no findings. The same message
// always yields the same sequence.
func (s *Scanner) Scan(msg types.Message) []types.Finding {
	msg = msg.Normalize()
	if msg.Text == "" {
		return nil
	}

	logger := logging.Get(logging.CategoryScanner)

	var findings []types.Finding
	for _, r := range s.rules {
		for _, m := range r.Match(msg.Text) {
			f, err := types.NewFinding(r.Name(), m, msg.Text, msg.ID)
			if err != nil {
				logger.Warn("discarding invalid finding",
					zap.String("rule", string(r.Name())),
					zap.String("message_id", msg.ID),
					zap.Error(err))
				continue
			}
			findings = append(findings, f)
		}
	}

	logger.Debug("message scanned",
		zap.String("message_id", msg.ID),
		zap.Int("findings", len(findings)))

	return findings
}
