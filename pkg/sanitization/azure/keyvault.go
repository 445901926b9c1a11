package azure

import (
	"regexp"

	"github.com/Digitalminion/atakora-sub000/pkg/sanitization"
)

// KeyVaultSanitizer returns a sanitized vault name when applied. Vault names
// are alphanumerics and hyphens, 3-24 characters, must start with a letter
// and must not contain consecutive hyphens.
var KeyVaultSanitizer = sanitization.NewSanitizer(
	[]sanitization.Rule{
		{
			Pattern:     regexp.MustCompile(`[^a-zA-Z0-9-]`),
			Replacement: "-",
		},
		// must start with a letter
		{
			Pattern:     regexp.MustCompile(`^[^a-zA-Z]+`),
			Replacement: "",
		},
		{
			Pattern:     regexp.MustCompile(`--+`),
			Replacement: "-",
		},
	}, 24)

// KeyVaultSecretSanitizer returns a sanitized secret name when applied.
// Secret names are alphanumerics and hyphens up to 127 characters.
var KeyVaultSecretSanitizer = sanitization.NewSanitizer(
	[]sanitization.Rule{
		{
			Pattern:     regexp.MustCompile(`[^a-zA-Z0-9-]`),
			Replacement: "-",
		},
	}, 127)
