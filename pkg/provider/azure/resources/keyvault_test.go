package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
)

const testTenantID = "f2d8b6a0-9f1e-4c6d-8e3a-0b1c2d3e4f50"

func Test_KeyVaultCreate(t *testing.T) {
	assert := assert.New(t)

	s := testStack(t)
	vault, err := NewKeyVault(s, "Secrets", KeyVaultProps{Name: "app-secrets", TenantID: testTenantID})
	require.NoError(t, err)

	assert.Equal(KeyVaultType, vault.ResourceType())
	assert.Equal("app-secrets", vault.ResourceName())
	assert.Equal(testTenantID, vault.TenantID())

	fragment := vault.ToArmTemplate()
	assert.Equal(testTenantID, fragment.Properties["tenantId"])
	sku := fragment.Properties["sku"].(map[string]any)
	assert.Equal("standard", sku["name"])
	assert.Equal(true, fragment.Properties["enableRbacAuthorization"])
}

func Test_KeyVaultValidation(t *testing.T) {
	cases := []struct {
		name  string
		props KeyVaultProps
	}{
		{name: "missing tenant", props: KeyVaultProps{Name: "ok-vault"}},
		{name: "malformed tenant", props: KeyVaultProps{Name: "ok-vault", TenantID: "not-a-guid"}},
		{name: "bad sku", props: KeyVaultProps{Name: "ok-vault", TenantID: testTenantID, SkuName: "free"}},
		{name: "name starts with digit", props: KeyVaultProps{Name: "1vault", TenantID: testTenantID}},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			s := testStack(t)
			_, err := NewKeyVault(s, "Secrets", tt.props)
			assert.Error(err)
			var verr *arm.ValidationError
			assert.ErrorAs(err, &verr)
		})
	}
}

func Test_KeyVaultSecret(t *testing.T) {
	assert := assert.New(t)

	s := testStack(t)
	vault, err := NewKeyVault(s, "Secrets", KeyVaultProps{Name: "app-secrets", TenantID: testTenantID})
	require.NoError(t, err)

	_, err = NewKeyVaultSecret(vault, "Conn", KeyVaultSecretProps{Name: "conn"})
	assert.Error(err) // value required

	secret, err := NewKeyVaultSecret(vault, "Conn", KeyVaultSecretProps{
		Name:        "conn",
		Value:       "[parameters('connectionString')]",
		ContentType: "text/plain",
	})
	require.NoError(t, err)
	assert.Equal("app-secrets/conn", secret.ResourceName())

	fragment := secret.ToArmTemplate()
	assert.Empty(fragment.Location)
	assert.Equal("[parameters('connectionString')]", fragment.Properties["value"])
	assert.Equal("text/plain", fragment.Properties["contentType"])
	assert.Contains(fragment.DependsOn, vault.ResourceID())
}

func Test_KeyVaultGrantSecretsRead(t *testing.T) {
	assert := assert.New(t)

	s := testStack(t)
	vault, err := NewKeyVault(s, "Secrets", KeyVaultProps{Name: "app-secrets", TenantID: testTenantID})
	require.NoError(t, err)

	ra, err := vault.GrantSecretsRead("principal-guid")
	require.NoError(t, err)
	assert.Equal(vault.ResourceID(), ra.Scope())
	assert.Equal(RoleKeyVaultSecretsUser, ra.Role())
}
