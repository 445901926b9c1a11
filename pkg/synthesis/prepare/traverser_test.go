package prepare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
	"github.com/Digitalminion/atakora-sub000/pkg/provider/azure/resources"
	"github.com/Digitalminion/atakora-sub000/pkg/stack"
)

type group struct {
	node *construct.Node
}

func (g *group) Node() *construct.Node { return g.node }

func newTestApp(t *testing.T, ctx construct.Context) *construct.App {
	t.Helper()
	app, err := construct.NewApp("App", ctx)
	require.NoError(t, err)
	return app
}

func newGroup(t *testing.T, scope construct.Construct, id string) *group {
	t.Helper()
	g := &group{}
	node, err := construct.NewNode(scope, id, g)
	require.NoError(t, err)
	g.node = node
	return g
}

func buildTree(t *testing.T) (*construct.App, []string) {
	t.Helper()
	app := newTestApp(t, construct.Context{Location: "eastus2"})

	platform, err := stack.NewSubscriptionStack(app, "Platform", stack.StackProps{})
	require.NoError(t, err)
	_, err = resources.NewResourceGroup(platform, "DataRG", resources.ResourceGroupProps{Name: "rg-data"})
	require.NoError(t, err)

	data, err := stack.NewResourceGroupStack(app, "Data", stack.ResourceGroupStackProps{ResourceGroup: "rg-data"})
	require.NoError(t, err)
	grouping := newGroup(t, data, "Storage")
	_, err = resources.NewCosmosAccount(grouping, "Orders", resources.CosmosAccountProps{Name: "orders-cosmos"})
	require.NoError(t, err)
	_, err = resources.NewKeyVault(data, "Secrets", resources.KeyVaultProps{TenantID: "f2d8b6a0-9f1e-4c6d-8e3a-0b1c2d3e4f50"})
	require.NoError(t, err)

	wantOrder := []string{
		"App",
		"App/Platform",
		"App/Platform/DataRG",
		"App/Data",
		"App/Data/Storage",
		"App/Data/Storage/Orders",
		"App/Data/Secrets",
	}
	return app, wantOrder
}

func paths(constructs []construct.Construct) []string {
	out := make([]string, len(constructs))
	for i, c := range constructs {
		out[i] = c.Node().Path()
	}
	return out
}

func Test_TraverseDepthFirstOrder(t *testing.T) {
	assert := assert.New(t)

	app, wantOrder := buildTree(t)
	var tr TreeTraverser
	result, err := tr.Traverse(app)
	require.NoError(t, err)

	assert.Equal(wantOrder, paths(result.Constructs))
	for _, p := range wantOrder {
		assert.Contains(result.ByPath, p)
	}
	assert.Len(result.Stacks, 2)
	assert.Contains(result.Stacks, "App/Platform")
	assert.Contains(result.Stacks, "App/Data")
	// the grouping construct is not a stack
	assert.NotContains(result.Stacks, "App/Data/Storage")
}

func Test_TraverseIdempotent(t *testing.T) {
	assert := assert.New(t)

	app, _ := buildTree(t)
	var tr TreeTraverser
	first, err := tr.Traverse(app)
	require.NoError(t, err)
	second, err := tr.Traverse(app)
	require.NoError(t, err)

	assert.Equal(paths(first.Constructs), paths(second.Constructs))
}

// loopback reports an ancestor's node instead of its own, so walking its
// children leads back up the tree.
type loopback struct {
	node *construct.Node
}

func (l *loopback) Node() *construct.Node { return l.node }

func Test_TraverseDetectsCycle(t *testing.T) {
	assert := assert.New(t)

	app := newTestApp(t, construct.Context{})
	newGroup(t, app, "A")

	cyc := &loopback{node: app.Node()}
	_, err := construct.NewNode(app, "B", cyc)
	require.NoError(t, err)

	var tr TreeTraverser
	_, err = tr.Traverse(app)
	assert.Error(err)
	var cerr *arm.CircularReferenceError
	assert.ErrorAs(err, &cerr)
	assert.Equal("App", cerr.Path)
}

func Test_FindStack(t *testing.T) {
	assert := assert.New(t)

	app := newTestApp(t, construct.Context{})
	s, err := stack.NewResourceGroupStack(app, "S", stack.ResourceGroupStackProps{ResourceGroup: "rg"})
	require.NoError(t, err)
	grouping := newGroup(t, s, "G")
	leaf := newGroup(t, grouping, "Leaf")

	owner, found := FindStack(leaf)
	assert.True(found)
	assert.Equal(s.Node().Path(), owner.Node().Path())

	outside := newGroup(t, app, "Outside")
	_, found = FindStack(outside)
	assert.False(found)
}

func Test_Descendants(t *testing.T) {
	assert := assert.New(t)

	app := newTestApp(t, construct.Context{})
	a := newGroup(t, app, "A")
	b := newGroup(t, a, "B")
	newGroup(t, b, "C")
	newGroup(t, a, "D")

	got := paths(Descendants(a))
	assert.Equal([]string{"App/A/B", "App/A/B/C", "App/A/D"}, got)
	assert.NotContains(got, "App/A")
}
