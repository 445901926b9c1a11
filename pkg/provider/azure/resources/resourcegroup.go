package resources

import (
	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
)

// ResourceGroup models a Microsoft.Resources resource group. Resource groups
// deploy at subscription scope, so the construct is only legal inside a
// subscription stack.
type ResourceGroup struct {
	construct.ResourceNode
}

type ResourceGroupProps struct {
	Name string
	// Location is required: a group must pin the region its metadata lives
	// in, and there is no sensible cross-subscription default.
	Location string
	Tags     map[string]string
}

func NewResourceGroup(scope construct.Construct, id string, props ResourceGroupProps) (*ResourceGroup, error) {
	name := props.Name
	if name == "" {
		name = generateName(id, "rg", 90)
	}
	location := props.Location
	if location == "" {
		location = construct.ResolveContext(scope).Location
	}
	if location == "" {
		return nil, &arm.ValidationError{
			Field:      "location",
			Message:    "resource group requires a location",
			Suggestion: "Set Location on the props or provide a default location on the app or stack context",
		}
	}

	rg := &ResourceGroup{}
	base, err := construct.NewResourceNode(scope, id, rg, construct.ResourceParams{
		Type:     ResourceGroupType,
		ID:       arm.ResourceIDExpr(ResourceGroupType, name),
		Name:     name,
		Location: location,
		Tags:     props.Tags,
	})
	if err != nil {
		return nil, err
	}
	rg.ResourceNode = *base
	return rg, nil
}

func (g *ResourceGroup) ToArmTemplate() *arm.Resource {
	fragment := g.BaseTemplate(apiVersions["resources"])
	fragment.Properties = map[string]any{}
	return fragment
}
