package resources

import (
	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
)

// UserAssignedIdentity models a standalone managed identity whose principal
// can be granted roles on other resources.
type UserAssignedIdentity struct {
	construct.ResourceNode
}

type UserAssignedIdentityProps struct {
	Name     string
	Location string
	Tags     map[string]string
}

func NewUserAssignedIdentity(scope construct.Construct, id string, props UserAssignedIdentityProps) (*UserAssignedIdentity, error) {
	name := props.Name
	if name == "" {
		name = generateName(id, "identity", 128)
	}

	identity := &UserAssignedIdentity{}
	base, err := construct.NewResourceNode(scope, id, identity, construct.ResourceParams{
		Type:     UserAssignedIdentityType,
		ID:       arm.ResourceIDExpr(UserAssignedIdentityType, name),
		Name:     name,
		Location: props.Location,
		Tags:     props.Tags,
	})
	if err != nil {
		return nil, err
	}
	identity.ResourceNode = *base
	return identity, nil
}

// PrincipalID returns a reference expression resolving the identity's
// service principal object id at deployment time. Pass it as the principal
// of a grant.
func (i *UserAssignedIdentity) PrincipalID() string {
	return arm.ReferenceExpr(i.ResourceID(), apiVersions["msi"], "principalId")
}

func (i *UserAssignedIdentity) ToArmTemplate() *arm.Resource {
	return i.BaseTemplate(apiVersions["msi"])
}
