package azure

import (
	"regexp"

	"github.com/Digitalminion/atakora-sub000/pkg/sanitization"
)

// GeneratedNameSanitizer normalizes names derived from construct ids when a
// caller supplies none: anything outside lowercase alphanumerics and hyphens
// becomes a hyphen, runs collapse, and leading hyphens are stripped.
// Truncation to the per-service maximum is applied by the caller, since the
// limit varies by resource kind.
var GeneratedNameSanitizer = sanitization.NewSanitizer(
	[]sanitization.Rule{
		{
			Pattern:     regexp.MustCompile(`[^a-z0-9-]`),
			Replacement: "-",
		},
		{
			Pattern:     regexp.MustCompile(`--+`),
			Replacement: "-",
		},
		{
			Pattern:     regexp.MustCompile(`^-+`),
			Replacement: "",
		},
	}, 0)
