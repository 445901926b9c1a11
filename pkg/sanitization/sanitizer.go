package sanitization

import (
	"regexp"
	"strings"
)

type (
	// Sanitizer rewrites a raw name into one legal for a given Azure naming
	// rule set by applying its rules in order and truncating to the
	// service's maximum length.
	Sanitizer struct {
		rules     []Rule
		maxLength int
	}

	Rule struct {
		Pattern     *regexp.Regexp
		Replacement string
	}
)

// NewSanitizer creates a sanitizer from an ordered rule list. A maxLength of
// zero disables truncation.
func NewSanitizer(rules []Rule, maxLength int) *Sanitizer {
	return &Sanitizer{rules: rules, maxLength: maxLength}
}

// Apply runs the rules in order, truncates to the maximum length, and strips
// a separator left trailing by the truncation.
func (s *Sanitizer) Apply(input string) string {
	output := input
	for _, rule := range s.rules {
		output = rule.Pattern.ReplaceAllString(output, rule.Replacement)
	}
	if s.maxLength > 0 && len(output) > s.maxLength {
		output = output[:s.maxLength]
		output = strings.TrimRight(output, "-_.")
	}
	return output
}

// MaxLength returns the length limit the sanitizer truncates to.
func (s *Sanitizer) MaxLength() int {
	return s.maxLength
}
