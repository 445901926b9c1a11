package resources

// ARM resource type strings for every construct in this package.
const (
	ResourceGroupType         = "Microsoft.Resources/resourceGroups"
	CosmosAccountType         = "Microsoft.DocumentDB/databaseAccounts"
	CosmosSQLDatabaseType     = "Microsoft.DocumentDB/databaseAccounts/sqlDatabases"
	CosmosSQLContainerType    = "Microsoft.DocumentDB/databaseAccounts/sqlDatabases/containers"
	KeyVaultType              = "Microsoft.KeyVault/vaults"
	KeyVaultSecretType        = "Microsoft.KeyVault/vaults/secrets"
	LogAnalyticsWorkspaceType = "Microsoft.OperationalInsights/workspaces"
	UserAssignedIdentityType  = "Microsoft.ManagedIdentity/userAssignedIdentities"
	ApiManagementServiceType  = "Microsoft.ApiManagement/service"
	RoleAssignmentType        = "Microsoft.Authorization/roleAssignments"
	RoleDefinitionType        = "Microsoft.Authorization/roleDefinitions"
)

// apiVersions is keyed by resource provider, one version per provider across
// the library so fragments of the same service stay consistent.
var apiVersions = map[string]string{
	"apimanagement":       "2023-05-01-preview",
	"authorization":       "2022-04-01",
	"documentdb":          "2024-05-15",
	"keyvault":            "2023-07-01",
	"msi":                 "2023-01-31",
	"operationalinsights": "2022-10-01",
	"resources":           "2021-04-01",
}
