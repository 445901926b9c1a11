package construct

import (
	"strings"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
)

type (
	// Construct is a node in the application tree: either a logical grouping
	// (app, stack) or a concrete ARM resource.
	Construct interface {
		Node() *Node
	}

	// Node carries the tree identity of a construct: its id, its parent, its
	// children in insertion order, and a metadata multimap. A construct is
	// owned by exactly one parent for the lifetime of the tree and is never
	// re-parented.
	Node struct {
		id       string
		parent   Construct
		self     Construct
		children []Construct
		metadata []MetadataEntry
	}

	MetadataEntry struct {
		Key   string
		Value string
	}

	// Context carries default configuration passed down the tree at
	// construction time. Resources that omit a location or tags inherit them
	// from the nearest ancestor that provides a context.
	Context struct {
		Location string
		Tags     map[string]string
	}

	// ContextProvider is implemented by constructs (the app root and stacks)
	// that supply defaults to the resources beneath them.
	ContextProvider interface {
		Context() Context
	}
)

// Metadata keys recognized as deployment-stack markers. A construct carrying
// any of these is a template boundary during synthesis.
const (
	StackMarkerKey       = "atakora:stack"
	LegacyStackMarkerKey = "arm:deployment-stack"
)

var stackMarkerKeys = []string{StackMarkerKey, LegacyStackMarkerKey}

// NewNode attaches a new node for self under scope. A nil scope makes self a
// root. The id becomes one segment of the construct path: it must not
// contain the path separator and must be unique among the parent's
// children.
func NewNode(scope Construct, id string, self Construct) (*Node, error) {
	if id == "" {
		return nil, &arm.ValidationError{
			Field:      "id",
			Message:    "construct id must not be empty",
			Suggestion: "Give every construct a non-empty identifier unique among its siblings",
		}
	}
	if strings.Contains(id, "/") {
		return nil, &arm.ValidationError{
			Field:      "id",
			Message:    "construct id must not contain '/'",
			Details:    "got " + id,
			Suggestion: "The slash is reserved as the construct path separator",
		}
	}
	n := &Node{id: id, parent: scope, self: self}
	if scope != nil {
		p := scope.Node()
		for _, sibling := range p.children {
			if sibling.Node().id == id {
				return nil, &arm.ValidationError{
					Field:      "id",
					Message:    "construct id must be unique among its siblings",
					Details:    "duplicate id '" + id + "' under '" + p.Path() + "'",
					Suggestion: "Give each child of a construct a distinct identifier",
				}
			}
		}
		p.children = append(p.children, self)
	}
	return n, nil
}

func (n *Node) ID() string { return n.id }

func (n *Node) Parent() Construct { return n.parent }

func (n *Node) Root() bool { return n.parent == nil }

// Children returns the node's children in insertion order.
func (n *Node) Children() []Construct {
	out := make([]Construct, len(n.children))
	copy(out, n.children)
	return out
}

// Path is the construct's identity within the tree: the ids from the root
// down to this node joined by '/'.
func (n *Node) Path() string {
	if n.parent == nil {
		return n.id
	}
	return n.parent.Node().Path() + "/" + n.id
}

func (n *Node) AddMetadata(key, value string) {
	n.metadata = append(n.metadata, MetadataEntry{Key: key, Value: value})
}

// Metadata returns all entries in insertion order. Multiple entries may
// share a key.
func (n *Node) Metadata() []MetadataEntry {
	out := make([]MetadataEntry, len(n.metadata))
	copy(out, n.metadata)
	return out
}

func (n *Node) MetadataValues(key string) []string {
	var out []string
	for _, e := range n.metadata {
		if e.Key == key {
			out = append(out, e.Value)
		}
	}
	return out
}

func (n *Node) HasMetadataKey(key string) bool {
	for _, e := range n.metadata {
		if e.Key == key {
			return true
		}
	}
	return false
}

// IsStack reports whether the node carries any recognized stack marker.
func (n *Node) IsStack() bool {
	for _, key := range stackMarkerKeys {
		if n.HasMetadataKey(key) {
			return true
		}
	}
	return false
}

// ResolveContext walks upward from scope to the nearest construct providing
// a configuration context. Returns the zero context when no ancestor
// provides one.
func ResolveContext(scope Construct) Context {
	for c := scope; c != nil; c = c.Node().Parent() {
		if p, ok := c.(ContextProvider); ok {
			return p.Context()
		}
	}
	return Context{}
}
