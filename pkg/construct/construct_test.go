package construct

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
)

type testConstruct struct {
	node *Node
}

func (c *testConstruct) Node() *Node { return c.node }

func newTestApp(t *testing.T, name string, ctx Context) *App {
	t.Helper()
	app, err := NewApp(name, ctx)
	require.NoError(t, err)
	return app
}

func newTestConstruct(t *testing.T, scope Construct, id string) *testConstruct {
	t.Helper()
	c := &testConstruct{}
	node, err := NewNode(scope, id, c)
	require.NoError(t, err)
	c.node = node
	return c
}

func Test_NodePaths(t *testing.T) {
	assert := assert.New(t)

	app := newTestApp(t, "App", Context{})
	child := newTestConstruct(t, app, "Child")
	grandchild := newTestConstruct(t, child, "Grandchild")

	assert.Equal("App", app.Node().Path())
	assert.Equal("App/Child", child.Node().Path())
	assert.Equal("App/Child/Grandchild", grandchild.Node().Path())
	assert.True(app.Node().Root())
	assert.False(child.Node().Root())
	assert.Equal(app, child.Node().Parent())
}

func Test_NodeChildrenOrder(t *testing.T) {
	assert := assert.New(t)

	app := newTestApp(t, "App", Context{})
	var want []string
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("c%d", i)
		newTestConstruct(t, app, id)
		want = append(want, id)
	}

	var got []string
	for _, c := range app.Node().Children() {
		got = append(got, c.Node().ID())
	}
	assert.Equal(want, got)
}

func Test_NewNodeValidation(t *testing.T) {
	cases := []struct {
		name string
		id   string
	}{
		{name: "empty id", id: ""},
		{name: "id with separator", id: "a/b"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			c := &testConstruct{}
			_, err := NewNode(nil, tt.id, c)
			assert.Error(err)
			var verr *arm.ValidationError
			assert.ErrorAs(err, &verr)
			assert.Equal(arm.ValidationErrCode, verr.ErrorCode())
		})
	}
}

func Test_NewAppValidatesName(t *testing.T) {
	assert := assert.New(t)

	_, err := NewApp("my/app", Context{})
	assert.Error(err)
	var verr *arm.ValidationError
	assert.ErrorAs(err, &verr)
	assert.Equal("id", verr.Field)

	app, err := NewApp("", Context{})
	require.NoError(t, err)
	assert.Equal("App", app.Node().ID())
}

func Test_NewNodeRejectsDuplicateSiblingIds(t *testing.T) {
	assert := assert.New(t)

	app := newTestApp(t, "App", Context{})
	newTestConstruct(t, app, "Dup")

	c := &testConstruct{}
	_, err := NewNode(app, "Dup", c)
	assert.Error(err)
	var verr *arm.ValidationError
	assert.ErrorAs(err, &verr)
	assert.Contains(verr.Error(), "duplicate id 'Dup' under 'App'")

	// the failed attach leaves the children untouched
	assert.Len(app.Node().Children(), 1)

	// the same id under a different parent is fine
	other := newTestConstruct(t, app, "Other")
	newTestConstruct(t, other, "Dup")
}

func Test_MetadataMultimap(t *testing.T) {
	assert := assert.New(t)

	app := newTestApp(t, "App", Context{})
	c := newTestConstruct(t, app, "C")
	n := c.Node()
	n.AddMetadata("k", "v1")
	n.AddMetadata("k", "v2")
	n.AddMetadata("other", "x")

	assert.True(n.HasMetadataKey("k"))
	assert.False(n.HasMetadataKey("missing"))
	assert.Equal([]string{"v1", "v2"}, n.MetadataValues("k"))
	assert.Len(n.Metadata(), 3)
}

func Test_IsStackMarkers(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		stack bool
	}{
		{name: "primary marker", key: StackMarkerKey, stack: true},
		{name: "legacy marker", key: LegacyStackMarkerKey, stack: true},
		{name: "unrelated metadata", key: "some:other", stack: false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			app := newTestApp(t, "App", Context{})
			c := newTestConstruct(t, app, "C")
			c.Node().AddMetadata(tt.key, "value")
			assert.Equal(tt.stack, c.Node().IsStack())
		})
	}
}

func Test_ResolveContext(t *testing.T) {
	assert := assert.New(t)

	ctx := Context{Location: "eastus2", Tags: map[string]string{"env": "dev"}}
	app := newTestApp(t, "App", ctx)
	child := newTestConstruct(t, app, "Child")
	grandchild := newTestConstruct(t, child, "Grandchild")

	resolved := ResolveContext(grandchild)
	assert.Equal("eastus2", resolved.Location)
	assert.Equal("dev", resolved.Tags["env"])

	orphan := newTestConstruct(t, nil, "Orphan")
	assert.Equal(Context{}, ResolveContext(orphan))
}
