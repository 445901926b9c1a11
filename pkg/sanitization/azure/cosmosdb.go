package azure

import (
	"regexp"

	"github.com/Digitalminion/atakora-sub000/pkg/sanitization"
)

// CosmosAccountSanitizer returns a sanitized Cosmos DB account name when
// applied. Account names are lowercase alphanumerics and hyphens, 3-44
// characters, and must start with a letter or digit.
var CosmosAccountSanitizer = sanitization.NewSanitizer(
	[]sanitization.Rule{
		{
			Pattern:     regexp.MustCompile(`[^a-z0-9-]`),
			Replacement: "-",
		},
		// must not start with a hyphen
		{
			Pattern:     regexp.MustCompile(`^-+`),
			Replacement: "",
		},
		// no consecutive hyphens
		{
			Pattern:     regexp.MustCompile(`--+`),
			Replacement: "-",
		},
	}, 44)
