package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/synthesis"
)

const sampleManifest = `app: Ordering
location: eastus2
tags:
  env: test
stacks:
  - name: Platform
    scope: subscription
    resources:
      - kind: resourceGroup
        name: rg-ordering
  - name: Data
    resourceGroup: rg-ordering
    resources:
      - kind: cosmosAccount
        name: ordering-cosmos
        consistency: Session
        resources:
          - kind: database
            name: orders
            throughput: 400
            resources:
              - kind: container
                name: by-customer
                partitionKey: /customerId
        grants:
          - role: dataRead
            principal: app-principal
      - kind: logWorkspace
        name: ordering-logs
        retentionDays: 90
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func Test_LoadAndBuild(t *testing.T) {
	assert := assert.New(t)

	m, err := Load(writeManifest(t, sampleManifest))
	require.NoError(t, err)
	assert.Equal("Ordering", m.App)
	assert.Len(m.Stacks, 2)

	app, err := m.Build()
	require.NoError(t, err)

	artifacts, err := synthesis.NewSynthesizer().Synth(app)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	byName := map[string]arm.DeploymentScope{}
	for _, a := range artifacts {
		byName[a.Name] = a.Scope
	}
	assert.Equal(arm.ScopeResourceGroup, byName["Data"])
	assert.Equal(arm.ScopeSubscription, byName["Platform"])

	data := artifacts[0]
	if data.Name != "Data" {
		data = artifacts[1]
	}
	// account + database + container + workspace + role assignment
	assert.Len(data.Template.Resources, 5)
}

func Test_LoadRejectsUnknownFields(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(writeManifest(t, "app: X\nstakcs: []\n"))
	assert.Error(err)
}

func Test_LoadDefaultsAppName(t *testing.T) {
	assert := assert.New(t)

	m, err := Load(writeManifest(t, "location: eastus2\n"))
	require.NoError(t, err)
	assert.Equal("App", m.App)
}

func Test_BuildRejectsAppNameWithSeparator(t *testing.T) {
	assert := assert.New(t)

	m, err := Load(writeManifest(t, "app: my/app\nstacks: []\n"))
	require.NoError(t, err)

	_, err = m.Build()
	require.Error(t, err)
	var verr *arm.ValidationError
	assert.ErrorAs(err, &verr)
	assert.Contains(err.Error(), "must not contain '/'")
}

func Test_BuildErrors(t *testing.T) {
	cases := []struct {
		name     string
		manifest string
		contains string
	}{
		{
			name:     "nameless stack",
			manifest: "stacks:\n  - scope: subscription\n",
			contains: "requires a name",
		},
		{
			name:     "unknown scope",
			manifest: "stacks:\n  - name: X\n    scope: tenant\n",
			contains: "unknown scope",
		},
		{
			name: "unknown resource kind",
			manifest: `stacks:
  - name: Data
    resourceGroup: rg
    resources:
      - kind: storageAccount
        name: x
`,
			contains: "unknown resource kind",
		},
		{
			name: "unexpected cosmos child",
			manifest: `stacks:
  - name: Data
    resourceGroup: rg
    resources:
      - kind: cosmosAccount
        name: orders-cosmos
        resources:
          - kind: container
            name: x
            partitionKey: /id
`,
			contains: "unexpected child kind",
		},
		{
			name: "grant without principal",
			manifest: `stacks:
  - name: Data
    resourceGroup: rg
    resources:
      - kind: logWorkspace
        name: logs-x
        grants:
          - role: logsRead
`,
			contains: "requires a principal",
		},
		{
			name: "unknown grant role",
			manifest: `stacks:
  - name: Data
    resourceGroup: rg
    resources:
      - kind: logWorkspace
        name: logs-x
        grants:
          - role: write
            principal: p
`,
			contains: "unknown role",
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			m, err := Load(writeManifest(t, tt.manifest))
			require.NoError(t, err)
			_, err = m.Build()
			require.Error(t, err)
			assert.Contains(err.Error(), tt.contains)
		})
	}
}
