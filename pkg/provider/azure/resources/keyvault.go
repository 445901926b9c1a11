package resources

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
	"github.com/Digitalminion/atakora-sub000/pkg/sanitization/azure"
)

type (
	// KeyVault models a Microsoft.KeyVault vault with RBAC authorization.
	KeyVault struct {
		construct.ResourceNode
		tenantID string
		skuName  string
	}

	KeyVaultProps struct {
		Name     string
		Location string
		Tags     map[string]string
		// TenantID is the Azure AD tenant the vault authenticates against.
		// Required, must be a GUID.
		TenantID string
		// SkuName is "standard" or "premium". Defaults to "standard".
		SkuName string
	}

	// KeyVaultSecret models a secret inside a vault.
	KeyVaultSecret struct {
		construct.ResourceNode
		vault       *KeyVault
		value       string
		contentType string
	}

	KeyVaultSecretProps struct {
		Name string
		// Value is the secret material placed in the template. Callers
		// supplying literal secrets should prefer a parameter expression.
		Value       string
		ContentType string
	}
)

var keyVaultNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]{1,22}[a-zA-Z0-9]$`)

func NewKeyVault(scope construct.Construct, id string, props KeyVaultProps) (*KeyVault, error) {
	if props.TenantID == "" {
		return nil, &arm.ValidationError{
			Field:      "tenantId",
			Message:    "key vault requires a tenant id",
			Suggestion: "Pass the Azure AD tenant GUID the vault authenticates against",
		}
	}
	if _, err := uuid.Parse(props.TenantID); err != nil {
		return nil, &arm.ValidationError{
			Field:      "tenantId",
			Message:    "tenant id must be a GUID",
			Details:    "got " + props.TenantID,
			Suggestion: "Use the directory id shown in the tenant's Azure AD overview",
		}
	}
	sku := props.SkuName
	if sku == "" {
		sku = "standard"
	}
	if sku != "standard" && sku != "premium" {
		return nil, &arm.ValidationError{
			Field:      "skuName",
			Message:    "unknown key vault sku",
			Details:    "got " + sku,
			Suggestion: "Use standard or premium",
		}
	}

	name := props.Name
	if name == "" {
		name = azure.KeyVaultSanitizer.Apply(generateName(id, "kv", 24))
	} else if !keyVaultNamePattern.MatchString(name) {
		return nil, &arm.ValidationError{
			Field:      "name",
			Message:    "key vault names must be 3-24 alphanumerics or hyphens and start with a letter",
			Details:    "got " + name,
			Suggestion: "Shorten the name and strip illegal characters, or omit it to derive one from the construct id",
		}
	}

	vault := &KeyVault{tenantID: props.TenantID, skuName: sku}
	base, err := construct.NewResourceNode(scope, id, vault, construct.ResourceParams{
		Type:     KeyVaultType,
		ID:       arm.ResourceIDExpr(KeyVaultType, name),
		Name:     name,
		Location: props.Location,
		Tags:     props.Tags,
	})
	if err != nil {
		return nil, err
	}
	vault.ResourceNode = *base
	return vault, nil
}

func (v *KeyVault) TenantID() string { return v.tenantID }

func (v *KeyVault) ToArmTemplate() *arm.Resource {
	fragment := v.BaseTemplate(apiVersions["keyvault"])
	fragment.Properties = map[string]any{
		"tenantId": v.tenantID,
		"sku": map[string]any{
			"family": "A",
			"name":   v.skuName,
		},
		"enableRbacAuthorization": true,
	}
	return fragment
}

// GrantSecretsRead grants the principal read access to the vault's secrets.
func (v *KeyVault) GrantSecretsRead(principalID string) (*RoleAssignment, error) {
	return grant(v, RoleKeyVaultSecretsUser, principalID)
}

func NewKeyVaultSecret(vault *KeyVault, id string, props KeyVaultSecretProps) (*KeyVaultSecret, error) {
	if vault == nil {
		return nil, &arm.ValidationError{
			Field:      "vault",
			Message:    "secret requires a parent key vault",
			Suggestion: "Create the secret with the vault construct as its parent",
		}
	}
	if props.Value == "" {
		return nil, &arm.ValidationError{
			Field:      "value",
			Message:    "secret requires a value",
			Suggestion: "Pass the secret material or a template parameter expression",
		}
	}
	name := props.Name
	if name == "" {
		name = azure.KeyVaultSecretSanitizer.Apply(generateName(id, "secret", 127))
	}

	secret := &KeyVaultSecret{vault: vault, value: props.Value, contentType: props.ContentType}
	base, err := construct.NewResourceNode(vault, id, secret, construct.ResourceParams{
		Type: KeyVaultSecretType,
		ID:   arm.ResourceIDExpr(KeyVaultSecretType, vault.ResourceName(), name),
		Name: vault.ResourceName() + "/" + name,
	})
	if err != nil {
		return nil, err
	}
	secret.ResourceNode = *base
	secret.AddDependency(vault.ResourceID())
	return secret, nil
}

func (s *KeyVaultSecret) ToArmTemplate() *arm.Resource {
	fragment := s.BaseTemplate(apiVersions["keyvault"])
	fragment.Location = ""
	properties := map[string]any{"value": s.value}
	if s.contentType != "" {
		properties["contentType"] = s.contentType
	}
	fragment.Properties = properties
	return fragment
}
