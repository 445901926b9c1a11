package prepare

import (
	"go.uber.org/zap"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
	"github.com/Digitalminion/atakora-sub000/pkg/stack"
)

type (
	// ResourceCollector buckets the traversal's resources under their
	// nearest enclosing stacks and resolves each stack's deployment scope.
	ResourceCollector struct{}

	// StackInfo groups one stack's identity, its resolved scope and the
	// resources assigned to it, in depth-first order. Built fresh on every
	// synthesis run.
	StackInfo struct {
		Name      string
		Path      string
		Stack     construct.Construct
		Scope     arm.DeploymentScope
		Resources []construct.Resource
	}
)

// Collect assigns every resource construct in the traversal to its owning
// stack. A resource with no stack ancestor aborts collection.
func (rc *ResourceCollector) Collect(result *TraversalResult) (map[string]*StackInfo, error) {
	stacks := make(map[string]*StackInfo, len(result.Stacks))
	for path, s := range result.Stacks {
		stacks[path] = &StackInfo{
			Name:  s.Node().ID(),
			Path:  path,
			Stack: s,
			Scope: resolveScope(s),
		}
	}

	for _, c := range result.Constructs {
		res, ok := c.(construct.Resource)
		if !ok {
			continue
		}
		owner, found := FindStack(c)
		if !found {
			return nil, &arm.OrphanResourceError{Path: c.Node().Path()}
		}
		info := stacks[owner.Node().Path()]
		info.Resources = append(info.Resources, res)
	}

	for _, info := range stacks {
		zap.S().Debugf("stack '%s' (%s scope): %d resources", info.Name, info.Scope, len(info.Resources))
	}
	return stacks, nil
}

// ValidateResources enforces the scope containment rules: a resource whose
// ARM type deploys at subscription level may not sit inside a resource-group
// stack. The first violation aborts the run.
func (rc *ResourceCollector) ValidateResources(stacks map[string]*StackInfo) error {
	for _, info := range stacks {
		if info.Scope != arm.ScopeResourceGroup {
			continue
		}
		for _, res := range info.Resources {
			if arm.IsSubscriptionScoped(res.ResourceType()) {
				return &arm.ScopeViolationError{
					ResourceType: res.ResourceType(),
					ResourcePath: res.Node().Path(),
					StackName:    info.Name,
					StackScope:   info.Scope,
				}
			}
		}
	}
	return nil
}

// resolveScope inspects the stack's concrete type. Anything unrecognized
// deploys at resource-group scope.
func resolveScope(c construct.Construct) arm.DeploymentScope {
	switch c.(type) {
	case *stack.SubscriptionStack:
		return arm.ScopeSubscription
	case *stack.ResourceGroupStack:
		return arm.ScopeResourceGroup
	default:
		return arm.ScopeResourceGroup
	}
}
