// Package stack defines the deployment boundaries of a construct tree. A
// stack corresponds to exactly one ARM template and one deployment scope;
// the synthesis pipeline recognizes stacks by the metadata marker set at
// construction.
package stack

import (
	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
)

type (
	// Stack is the common base of the concrete stack kinds. It is a plain
	// grouping construct: resources created beneath it are collected into
	// its template during synthesis.
	Stack struct {
		node *construct.Node
		name string
		ctx  construct.Context
	}

	StackProps struct {
		// Location supplied to resources in this stack that set none.
		Location string
		// Tags merged into every resource in this stack.
		Tags map[string]string
	}
)

func newStack(scope construct.Construct, name string, self construct.Construct, props StackProps) (Stack, error) {
	node, err := construct.NewNode(scope, name, self)
	if err != nil {
		return Stack{}, err
	}
	node.AddMetadata(construct.StackMarkerKey, name)

	ctx := construct.ResolveContext(scope)
	if props.Location != "" {
		ctx.Location = props.Location
	}
	if len(props.Tags) > 0 {
		tags := make(map[string]string, len(ctx.Tags)+len(props.Tags))
		for k, v := range ctx.Tags {
			tags[k] = v
		}
		for k, v := range props.Tags {
			tags[k] = v
		}
		ctx.Tags = tags
	}
	return Stack{node: node, name: name, ctx: ctx}, nil
}

func (s *Stack) Node() *construct.Node { return s.node }

func (s *Stack) Name() string { return s.name }

func (s *Stack) Context() construct.Context { return s.ctx }

// SubscriptionStack deploys at subscription scope. It is the only stack kind
// that may contain subscription-scoped resource types such as resource
// groups and policy definitions.
type SubscriptionStack struct {
	Stack
}

func NewSubscriptionStack(scope construct.Construct, name string, props StackProps) (*SubscriptionStack, error) {
	s := &SubscriptionStack{}
	base, err := newStack(scope, name, s, props)
	if err != nil {
		return nil, err
	}
	s.Stack = base
	return s, nil
}

func (s *SubscriptionStack) DeploymentScope() arm.DeploymentScope {
	return arm.ScopeSubscription
}

// ResourceGroupStack deploys into an existing resource group.
type ResourceGroupStack struct {
	Stack
	resourceGroup string
}

type ResourceGroupStackProps struct {
	StackProps
	// ResourceGroup is the name of the target resource group.
	ResourceGroup string
}

func NewResourceGroupStack(scope construct.Construct, name string, props ResourceGroupStackProps) (*ResourceGroupStack, error) {
	if props.ResourceGroup == "" {
		return nil, &arm.ValidationError{
			Field:      "resourceGroup",
			Message:    "resource group stack requires a target resource group name",
			Details:    "stack " + name,
			Suggestion: "Set ResourceGroupStackProps.ResourceGroup to the group the template deploys into",
		}
	}
	s := &ResourceGroupStack{resourceGroup: props.ResourceGroup}
	base, err := newStack(scope, name, s, props.StackProps)
	if err != nil {
		return nil, err
	}
	s.Stack = base
	return s, nil
}

func (s *ResourceGroupStack) DeploymentScope() arm.DeploymentScope {
	return arm.ScopeResourceGroup
}

func (s *ResourceGroupStack) ResourceGroup() string { return s.resourceGroup }
