package scanner

import (
	"regexp"
	"strings"

	"privacypal/internal/types"
)

// Rule finds every match of one pattern in a text, in position order.
type Rule interface {
	Name() types.PatternType
	Match(text string) []string
}

// RunRule matches maximal runs of a character class that have exactly the
// configured length. A longer run never yields a partial match.
type RunRule struct {
	pattern types.PatternType
	class   *regexp.Regexp
	length  int
}

// NewRunRule builds a RunRule from a character class such as `[A-Z0-9]`.
func NewRunRule(pattern types.PatternType, class string, length int) *RunRule {
	return &RunRule{
		pattern: pattern,
		class:   regexp.MustCompile(class + "+"),
		length:  length,
	}
}

func (r *RunRule) Name() types.PatternType { return r.pattern }

func (r *RunRule) Match(text string) []string {
	var matches []string
	for _, loc := range r.class.FindAllStringIndex(text, -1) {
		if loc[1]-loc[0] == r.length {
			matches = append(matches, text[loc[0]:loc[1]])
		}
	}
	return matches
}

// RegexRule matches a regular expression and optionally filters each match.
type RegexRule struct {
	pattern types.PatternType
	re      *regexp.Regexp
	accept  func(string) bool
}

// NewRegexRule builds a RegexRule. accept may be nil.
func NewRegexRule(pattern types.PatternType, expr string, accept func(string) bool) *RegexRule {
	return &RegexRule{
		pattern: pattern,
		re:      regexp.MustCompile(expr),
		accept:  accept,
	}
}

func (r *RegexRule) Name() types.PatternType { return r.pattern }

func (r *RegexRule) Match(text string) []string {
	var matches []string
	for _, m := range r.re.FindAllString(text, -1) {
		if r.accept != nil && !r.accept(m) {
			continue
		}
		matches = append(matches, m)
	}
	return matches
}

const minCardDigits = 13

// StripCardSeparators removes the spaces and hyphens allowed between card digits.
func StripCardSeparators(s string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(s)
}

func acceptCardNumber(m string) bool {
	return len(StripCardSeparators(m)) >= minCardDigits
}

// DefaultRules returns the fixed rule set in scan order.
func DefaultRules() []Rule {
	return []Rule{
		NewRunRule(types.PatternAWSAccessKey, `[A-Z0-9]`, 20),
		NewRunRule(types.PatternAWSSecretKey, `[A-Za-z0-9/+=]`, 40),
		// 13-16 digits, at most one space or hyphen between digits
		NewRegexRule(types.PatternCreditCard, `\b(?:\d[ -]??){13,16}\b`, acceptCardNumber),
		NewRegexRule(types.PatternStripeTestKey, `sk_test_[0-9a-zA-Z]{24}`, nil),
	}
}
