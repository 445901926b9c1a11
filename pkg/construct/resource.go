package construct

import (
	"github.com/Digitalminion/atakora-sub000/pkg/arm"
)

type (
	// Resource is a construct that maps to exactly one ARM resource and
	// produces one fragment of the owning stack's template.
	Resource interface {
		Construct
		// ResourceType is the ARM type string, fixed at construction.
		ResourceType() string
		// ResourceID is the deterministic ARM expression identifying this
		// resource, composed from its own name and its parents' names.
		ResourceID() string
		ResourceName() string
		// Dependencies lists the resource ids this resource must be deployed
		// after. Only ids landing in the same template become dependsOn
		// entries.
		Dependencies() []string
		ToArmTemplate() *arm.Resource
	}

	// ResourceNode is the embeddable base for concrete resources. The ARM
	// type, id and name are set once here and never mutated afterwards.
	ResourceNode struct {
		node         *Node
		resourceType string
		resourceID   string
		name         string
		location     string
		tags         map[string]string
		dependsOn    []string
		seq          int
	}

	// ResourceParams is filled by concrete constructors after their own
	// validation has passed.
	ResourceParams struct {
		Type     string
		ID       string
		Name     string
		Location string
		Tags     map[string]string
	}
)

// NewResourceNode attaches a resource base under scope. Location and tags
// fall back to the nearest ancestor context; explicit resource tags win over
// inherited ones key by key.
func NewResourceNode(scope Construct, id string, self Construct, params ResourceParams) (*ResourceNode, error) {
	if params.Type == "" || params.ID == "" || params.Name == "" {
		return nil, &arm.InternalError{Err: &arm.ValidationError{
			Field:   "params",
			Message: "resource type, id and name must be set before attaching to the tree",
			Details: "construct " + id,
		}}
	}
	node, err := NewNode(scope, id, self)
	if err != nil {
		return nil, err
	}

	ctx := ResolveContext(scope)
	location := params.Location
	if location == "" {
		location = ctx.Location
	}
	tags := make(map[string]string, len(ctx.Tags)+len(params.Tags))
	for k, v := range ctx.Tags {
		tags[k] = v
	}
	for k, v := range params.Tags {
		tags[k] = v
	}

	return &ResourceNode{
		node:         node,
		resourceType: params.Type,
		resourceID:   params.ID,
		name:         params.Name,
		location:     location,
		tags:         tags,
	}, nil
}

func (r *ResourceNode) Node() *Node { return r.node }

func (r *ResourceNode) ResourceType() string { return r.resourceType }

func (r *ResourceNode) ResourceID() string { return r.resourceID }

func (r *ResourceNode) ResourceName() string { return r.name }

func (r *ResourceNode) Location() string { return r.location }

// Tags returns a copy of the resolved tag set.
func (r *ResourceNode) Tags() map[string]string {
	if len(r.tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(r.tags))
	for k, v := range r.tags {
		out[k] = v
	}
	return out
}

// AddDependency records a deployment ordering hint. Duplicate ids are
// ignored.
func (r *ResourceNode) AddDependency(resourceID string) {
	for _, d := range r.dependsOn {
		if d == resourceID {
			return
		}
	}
	r.dependsOn = append(r.dependsOn, resourceID)
}

func (r *ResourceNode) Dependencies() []string {
	out := make([]string, len(r.dependsOn))
	copy(out, r.dependsOn)
	return out
}

// NextSequence returns 1, 2, 3... per resource instance. Used to mint unique
// child construct ids for grants without any process-wide counter.
func (r *ResourceNode) NextSequence() int {
	r.seq++
	return r.seq
}

// BaseTemplate builds the fragment fields every resource shares. Concrete
// resources fill in kind, sku and properties.
func (r *ResourceNode) BaseTemplate(apiVersion string) *arm.Resource {
	return &arm.Resource{
		Type:       r.resourceType,
		APIVersion: apiVersion,
		Name:       r.name,
		Location:   r.location,
		Tags:       r.Tags(),
		DependsOn:  r.Dependencies(),
	}
}
