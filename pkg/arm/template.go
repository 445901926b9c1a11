package arm

type (
	// Template is a single deployable ARM JSON document. One template is
	// produced per stack; the schema is selected from the deployment scope
	// table in scopes.go.
	Template struct {
		Schema         string                `json:"$schema"`
		ContentVersion string                `json:"contentVersion"`
		Parameters     map[string]*Parameter `json:"parameters,omitempty"`
		Variables      map[string]any        `json:"variables,omitempty"`
		Resources      []*Resource           `json:"resources"`
		Outputs        map[string]*Output    `json:"outputs,omitempty"`
	}

	Parameter struct {
		Type          string         `json:"type"`
		DefaultValue  any            `json:"defaultValue,omitempty"`
		AllowedValues []any          `json:"allowedValues,omitempty"`
		Metadata      map[string]any `json:"metadata,omitempty"`
	}

	Output struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	}

	// Resource is one element of a template's resources array. Optional
	// fields are omitted from the JSON entirely when unset, never emitted as
	// null placeholders.
	Resource struct {
		Type       string `json:"type"`
		APIVersion string `json:"apiVersion"`
		Name       string `json:"name"`
		// Scope targets extension resources (role assignments) at another
		// resource within the same deployment.
		Scope      string            `json:"scope,omitempty"`
		Location   string            `json:"location,omitempty"`
		Kind       string            `json:"kind,omitempty"`
		Sku        *Sku              `json:"sku,omitempty"`
		Identity   *Identity         `json:"identity,omitempty"`
		Tags       map[string]string `json:"tags,omitempty"`
		Properties map[string]any    `json:"properties,omitempty"`
		DependsOn  []string          `json:"dependsOn,omitempty"`
	}

	Sku struct {
		Name     string `json:"name"`
		Family   string `json:"family,omitempty"`
		Tier     string `json:"tier,omitempty"`
		Capacity int    `json:"capacity,omitempty"`
	}

	Identity struct {
		Type                   string         `json:"type"`
		UserAssignedIdentities map[string]any `json:"userAssignedIdentities,omitempty"`
	}
)

const ContentVersion = "1.0.0.0"

// NewTemplate returns an empty template for the given deployment scope.
func NewTemplate(scope DeploymentScope) *Template {
	return &Template{
		Schema:         SchemaFor(scope),
		ContentVersion: ContentVersion,
		Resources:      []*Resource{},
	}
}
