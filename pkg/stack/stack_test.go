package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
)

func newTestApp(t *testing.T, ctx construct.Context) *construct.App {
	t.Helper()
	app, err := construct.NewApp("App", ctx)
	require.NoError(t, err)
	return app
}

func Test_StackMarker(t *testing.T) {
	assert := assert.New(t)

	app := newTestApp(t, construct.Context{})
	sub, err := NewSubscriptionStack(app, "Platform", StackProps{})
	require.NoError(t, err)

	assert.True(sub.Node().IsStack())
	assert.Equal("App/Platform", sub.Node().Path())
	assert.Equal(arm.ScopeSubscription, sub.DeploymentScope())
}

func Test_ResourceGroupStackRequiresGroup(t *testing.T) {
	assert := assert.New(t)

	app := newTestApp(t, construct.Context{})
	_, err := NewResourceGroupStack(app, "Data", ResourceGroupStackProps{})
	require.Error(t, err)
	var verr *arm.ValidationError
	assert.ErrorAs(err, &verr)
	assert.Equal("resourceGroup", verr.Field)

	s, err := NewResourceGroupStack(app, "Data", ResourceGroupStackProps{ResourceGroup: "rg-data"})
	require.NoError(t, err)
	assert.Equal("rg-data", s.ResourceGroup())
	assert.Equal(arm.ScopeResourceGroup, s.DeploymentScope())
}

func Test_StackContextMerging(t *testing.T) {
	assert := assert.New(t)

	app := newTestApp(t, construct.Context{
		Location: "eastus2",
		Tags:     map[string]string{"env": "prod", "team": "core"},
	})
	s, err := NewResourceGroupStack(app, "Data", ResourceGroupStackProps{
		StackProps: StackProps{
			Location: "westus3",
			Tags:     map[string]string{"team": "data"},
		},
		ResourceGroup: "rg-data",
	})
	require.NoError(t, err)

	ctx := s.Context()
	assert.Equal("westus3", ctx.Location)
	assert.Equal(map[string]string{"env": "prod", "team": "data"}, ctx.Tags)

	// The app's own context is untouched by the stack's overrides.
	assert.Equal("eastus2", construct.ResolveContext(app).Location)
}

func Test_StackInheritsWhenUnset(t *testing.T) {
	assert := assert.New(t)

	app := newTestApp(t, construct.Context{Location: "eastus2"})
	s, err := NewSubscriptionStack(app, "Platform", StackProps{})
	require.NoError(t, err)
	assert.Equal("eastus2", s.Context().Location)
}
