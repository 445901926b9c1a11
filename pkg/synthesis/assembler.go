package synthesis

import (
	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
	"github.com/Digitalminion/atakora-sub000/pkg/synthesis/prepare"
)

// AssembleTemplate merges one stack's resources into a single ARM template.
// Resources are emitted in a stable topological order of their same-template
// dependency graph; independent resources keep their depth-first collection
// order. dependsOn arrays are filtered to ids that land in this template,
// since cross-template references cannot be ordering hints.
func AssembleTemplate(info *prepare.StackInfo) (*arm.Template, error) {
	byID := make(map[string]construct.Resource, len(info.Resources))
	position := make(map[string]int, len(info.Resources))

	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	for i, res := range info.Resources {
		id := res.ResourceID()
		byID[id] = res
		position[id] = i
		if err := g.AddVertex(id); err != nil {
			return nil, &arm.InternalError{Err: errors.Wrapf(err, "adding resource '%s' to dependency graph", id)}
		}
	}
	for _, res := range info.Resources {
		for _, dep := range res.Dependencies() {
			if _, same := byID[dep]; !same {
				continue
			}
			err := g.AddEdge(dep, res.ResourceID())
			switch {
			case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
			case errors.Is(err, graph.ErrEdgeCreatesCycle):
				return nil, &arm.InternalError{Err: errors.Wrapf(err,
					"dependency cycle between '%s' and '%s' in stack '%s'", dep, res.ResourceID(), info.Name)}
			default:
				return nil, &arm.InternalError{Err: err}
			}
		}
	}

	order, err := graph.StableTopologicalSort(g, func(a, b string) bool {
		return position[a] < position[b]
	})
	if err != nil {
		return nil, &arm.InternalError{Err: errors.Wrapf(err, "ordering resources for stack '%s'", info.Name)}
	}

	tmpl := arm.NewTemplate(info.Scope)
	for _, id := range order {
		res := byID[id]
		fragment := res.ToArmTemplate()
		fragment.DependsOn = sameTemplateDeps(fragment.DependsOn, byID)
		tmpl.Resources = append(tmpl.Resources, fragment)
	}
	return tmpl, nil
}

func sameTemplateDeps(deps []string, byID map[string]construct.Resource) []string {
	var out []string
	for _, dep := range deps {
		if _, ok := byID[dep]; ok {
			out = append(out, dep)
		}
	}
	return out
}
