package resources

import (
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/Digitalminion/atakora-sub000/pkg/sanitization/azure"
)

// generateName derives a resource name from a construct id and a short
// purpose string when the caller supplies none: kebab-case, lowercased,
// stripped to the allowed charset, truncated to the service maximum with any
// separator left dangling by truncation removed.
func generateName(constructID, purpose string, maxLength int) string {
	name := strcase.ToKebab(constructID)
	if purpose != "" {
		name += "-" + purpose
	}
	name = azure.GeneratedNameSanitizer.Apply(strings.ToLower(name))
	if maxLength > 0 && len(name) > maxLength {
		name = strings.TrimRight(name[:maxLength], "-")
	}
	return name
}
