package prepare

import (
	"go.uber.org/zap"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
)

type (
	// TreeTraverser walks a construct tree depth-first and produces the flat
	// construct list the rest of the pipeline consumes. Every call starts
	// from a fresh visited set, so repeated traversals of the same tree are
	// independent and yield identical results.
	TreeTraverser struct{}

	// TraversalResult is built fresh per synthesis invocation and never
	// persisted.
	TraversalResult struct {
		// Constructs holds every node of the tree exactly once, in
		// depth-first pre-order following child insertion order.
		Constructs []construct.Construct
		// Stacks maps construct path to each node tagged as a deployment
		// boundary.
		Stacks map[string]construct.Construct
		// ByPath looks any construct up by its full path.
		ByPath map[string]construct.Construct
	}
)

// Traverse walks the tree rooted at root. Construction keeps sibling ids
// unique, so a path encountered twice means the walk has looped back onto
// an ancestor; it aborts immediately with a circular reference error naming
// that path.
func (t *TreeTraverser) Traverse(root construct.Construct) (*TraversalResult, error) {
	result := &TraversalResult{
		Stacks: make(map[string]construct.Construct),
		ByPath: make(map[string]construct.Construct),
	}
	visited := make(map[string]struct{})

	var walk func(c construct.Construct) error
	walk = func(c construct.Construct) error {
		node := c.Node()
		path := node.Path()
		if _, seen := visited[path]; seen {
			return &arm.CircularReferenceError{Path: path}
		}
		visited[path] = struct{}{}

		result.Constructs = append(result.Constructs, c)
		result.ByPath[path] = c
		if node.IsStack() {
			result.Stacks[path] = c
		}
		for _, child := range node.Children() {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	zap.S().Debugf("traversed %d constructs (%d stacks) from '%s'",
		len(result.Constructs), len(result.Stacks), root.Node().Path())
	return result, nil
}

// FindStack walks upward from c through parent links until a stack-tagged
// construct is found. Returns false when no ancestor is a stack.
func FindStack(c construct.Construct) (construct.Construct, bool) {
	for cur := c; cur != nil; cur = cur.Node().Parent() {
		if cur.Node().IsStack() {
			return cur, true
		}
	}
	return nil, false
}

// Descendants collects every construct strictly below c, depth-first in
// child insertion order. c itself is excluded.
func Descendants(c construct.Construct) []construct.Construct {
	var out []construct.Construct
	var walk func(cur construct.Construct)
	walk = func(cur construct.Construct) {
		for _, child := range cur.Node().Children() {
			out = append(out, child)
			walk(child)
		}
	}
	walk(c)
	return out
}
