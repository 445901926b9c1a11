package arm

// DeploymentScope is the level of the Azure management hierarchy a template
// is deployed at. The scope constrains which resource types are legal in the
// template and which schema the template declares.
type DeploymentScope string

const (
	ScopeTenant          DeploymentScope = "tenant"
	ScopeManagementGroup DeploymentScope = "managementGroup"
	ScopeSubscription    DeploymentScope = "subscription"
	ScopeResourceGroup   DeploymentScope = "resourceGroup"
)

var scopeSchemas = map[DeploymentScope]string{
	ScopeTenant:          "https://schema.management.azure.com/schemas/2019-08-01/tenantDeploymentTemplate.json#",
	ScopeManagementGroup: "https://schema.management.azure.com/schemas/2019-08-01/managementGroupDeploymentTemplate.json#",
	ScopeSubscription:    "https://schema.management.azure.com/schemas/2018-05-01/subscriptionDeploymentTemplate.json#",
	ScopeResourceGroup:   "https://schema.management.azure.com/schemas/2019-04-01/deploymentTemplate.json#",
}

// scopeNesting records which scopes a deployment at a given scope may
// contain. Containment follows the management hierarchy downward.
var scopeNesting = map[DeploymentScope][]DeploymentScope{
	ScopeTenant:          {ScopeManagementGroup, ScopeSubscription, ScopeResourceGroup},
	ScopeManagementGroup: {ScopeManagementGroup, ScopeSubscription, ScopeResourceGroup},
	ScopeSubscription:    {ScopeResourceGroup},
	ScopeResourceGroup:   {},
}

// subscriptionScopedTypes lists ARM resource types that deploy at
// subscription level or above. Placing any of these inside a resource-group
// stack is a scope violation.
var subscriptionScopedTypes = map[string]struct{}{
	"Microsoft.Resources/resourceGroups":           {},
	"Microsoft.Authorization/policyDefinitions":    {},
	"Microsoft.Authorization/policyAssignments":    {},
	"Microsoft.Authorization/policySetDefinitions": {},
	"Microsoft.Management/managementGroups":        {},
}

// representativeTypes gives examples of resource types legal at each scope.
// Consumed by diagnostics only; the validator uses subscriptionScopedTypes.
var representativeTypes = map[DeploymentScope][]string{
	ScopeTenant:          {"Microsoft.Management/managementGroups"},
	ScopeManagementGroup: {"Microsoft.Authorization/policyDefinitions", "Microsoft.Authorization/policyAssignments"},
	ScopeSubscription:    {"Microsoft.Resources/resourceGroups", "Microsoft.Authorization/policyAssignments"},
	ScopeResourceGroup:   {"Microsoft.DocumentDB/databaseAccounts", "Microsoft.KeyVault/vaults", "Microsoft.ManagedIdentity/userAssignedIdentities"},
}

// SchemaFor returns the template schema URL for a deployment scope. Unknown
// scopes fall back to the resource-group schema, mirroring the collector's
// default scope resolution.
func SchemaFor(scope DeploymentScope) string {
	if s, ok := scopeSchemas[scope]; ok {
		return s
	}
	return scopeSchemas[ScopeResourceGroup]
}

// CanContain reports whether a deployment at outer may nest a deployment at
// inner.
func CanContain(outer, inner DeploymentScope) bool {
	for _, s := range scopeNesting[outer] {
		if s == inner {
			return true
		}
	}
	return false
}

// IsSubscriptionScoped reports whether resourceType must deploy at
// subscription level or above.
func IsSubscriptionScoped(resourceType string) bool {
	_, ok := subscriptionScopedTypes[resourceType]
	return ok
}

// RepresentativeTypes returns examples of resource types legal at the given
// scope.
func RepresentativeTypes(scope DeploymentScope) []string {
	types := representativeTypes[scope]
	out := make([]string, len(types))
	copy(out, types)
	return out
}
