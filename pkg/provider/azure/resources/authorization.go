package resources

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
)

type (
	// RoleDefinition names an Azure built-in role and its well-known
	// definition GUID.
	RoleDefinition struct {
		Name string
		ID   string
	}

	// RoleAssignment links a principal to a role at a scope. Assignments are
	// immutable once constructed; the name is a deterministic guid()
	// expression over (scope, role, principal) so repeated synthesis runs
	// produce identical identifiers.
	RoleAssignment struct {
		construct.ResourceNode
		role          RoleDefinition
		principalID   string
		principalType string
		scopeID       string
		description   string
	}

	RoleAssignmentProps struct {
		Role        RoleDefinition
		PrincipalID string
		// PrincipalType is optional: "User", "Group" or "ServicePrincipal".
		PrincipalType string
		// Scope is the resource id expression the assignment applies to.
		Scope       string
		Description string
	}
)

// Built-in roles used by the grant helpers.
var (
	RoleReader                = RoleDefinition{Name: "Reader", ID: "acdd72a7-3385-48ef-bd42-f606fba81ae7"}
	RoleContributor           = RoleDefinition{Name: "Contributor", ID: "b24988ac-6180-42a0-ab88-20f7382dd24c"}
	RoleCosmosDBAccountReader = RoleDefinition{Name: "CosmosDBAccountReaderRole", ID: "fbdf93bf-df7d-467e-a4d2-9458aa1360c8"}
	RoleKeyVaultSecretsUser   = RoleDefinition{Name: "KeyVaultSecretsUser", ID: "4633458b-17de-408a-b874-0445c86b69e6"}
	RoleLogAnalyticsReader    = RoleDefinition{Name: "LogAnalyticsReader", ID: "73c42c96-874c-492b-b04d-ab87d138a893"}
)

func NewRoleAssignment(scope construct.Construct, id string, props RoleAssignmentProps) (*RoleAssignment, error) {
	if props.Role.ID == "" {
		return nil, &arm.ValidationError{
			Field:      "role",
			Message:    "role assignment requires a role definition",
			Suggestion: "Pass one of the built-in RoleDefinition values or a custom definition GUID",
		}
	}
	if props.PrincipalID == "" {
		return nil, &arm.ValidationError{
			Field:      "principalId",
			Message:    "role assignment requires a principal",
			Suggestion: "Pass the object id of the user, group or service principal being granted access",
		}
	}
	if props.Scope == "" {
		return nil, &arm.ValidationError{
			Field:      "scope",
			Message:    "role assignment requires a scope",
			Suggestion: "Pass the resource id the assignment applies to, typically the granting resource's ResourceID()",
		}
	}

	name := arm.GUIDExpr(props.Scope, props.Role.ID, props.PrincipalID)
	ra := &RoleAssignment{
		role:          props.Role,
		principalID:   props.PrincipalID,
		principalType: props.PrincipalType,
		scopeID:       props.Scope,
		description:   props.Description,
	}
	base, err := construct.NewResourceNode(scope, id, ra, construct.ResourceParams{
		Type: RoleAssignmentType,
		ID:   arm.ResourceIDExpr(RoleAssignmentType, name),
		Name: name,
	})
	if err != nil {
		return nil, err
	}
	ra.ResourceNode = *base
	ra.AddDependency(props.Scope)
	return ra, nil
}

// Scope returns the resource id the assignment applies to.
func (ra *RoleAssignment) Scope() string { return ra.scopeID }

func (ra *RoleAssignment) Role() RoleDefinition { return ra.role }

func (ra *RoleAssignment) PrincipalID() string { return ra.principalID }

// SetDescription always fails: assignments are configured once at
// construction.
func (ra *RoleAssignment) SetDescription(string) error {
	return &arm.ImmutableError{Resource: "role assignment", Operation: "description"}
}

// SetCondition always fails: assignments are configured once at
// construction.
func (ra *RoleAssignment) SetCondition(string) error {
	return &arm.ImmutableError{Resource: "role assignment", Operation: "condition"}
}

func (ra *RoleAssignment) ToArmTemplate() *arm.Resource {
	properties := map[string]any{
		"roleDefinitionId": arm.SubscriptionResourceIDExpr(RoleDefinitionType, ra.role.ID),
		"principalId":      ra.principalID,
	}
	if ra.principalType != "" {
		properties["principalType"] = ra.principalType
	}
	if ra.description != "" {
		properties["description"] = ra.description
	}
	// Extension resource: no location or tags, scoped to the granting
	// resource.
	return &arm.Resource{
		Type:       RoleAssignmentType,
		APIVersion: apiVersions["authorization"],
		Name:       ra.ResourceName(),
		Scope:      ra.scopeID,
		Properties: properties,
		DependsOn:  ra.Dependencies(),
	}
}

// grantable is satisfied by resources that mint child role assignments.
type grantable interface {
	construct.Resource
	NextSequence() int
}

// grant creates a role-assignment child under owner, scoped to the owner's
// resource id. The child id embeds an instance-owned sequence number so
// repeated grants on one resource stay unique.
func grant(owner grantable, role RoleDefinition, principalID string) (*RoleAssignment, error) {
	id := fmt.Sprintf("Grant%s%d", strcase.ToCamel(role.Name), owner.NextSequence())
	return NewRoleAssignment(owner, id, RoleAssignmentProps{
		Role:        role,
		PrincipalID: principalID,
		Scope:       owner.ResourceID(),
	})
}
