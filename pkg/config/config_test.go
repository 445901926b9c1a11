package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func Test_ReadConfig(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
		format  string
	}{
		{
			name:    "yaml",
			file:    "app.yaml",
			content: "app: Ordering\nlocation: eastus2\ntags:\n  env: prod\nout_dir: templates\n",
			format:  "yaml",
		},
		{
			name:    "json",
			file:    "app.json",
			content: `{"app": "Ordering", "location": "eastus2", "tags": {"env": "prod"}, "out_dir": "templates"}`,
			format:  "json",
		},
		{
			name:    "toml",
			file:    "app.toml",
			content: "app = \"Ordering\"\nlocation = \"eastus2\"\nout_dir = \"templates\"\n\n[tags]\nenv = \"prod\"\n",
			format:  "toml",
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			cfg, err := ReadConfig(writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal("Ordering", cfg.AppName)
			assert.Equal("eastus2", cfg.Location)
			assert.Equal(map[string]string{"env": "prod"}, cfg.Tags)
			assert.Equal("templates", cfg.OutDir)
			assert.Equal(tt.format, cfg.Format)
		})
	}
}

func Test_ReadConfigUnsupportedFormat(t *testing.T) {
	assert := assert.New(t)
	_, err := ReadConfig(writeConfig(t, "app.ini", "app=Ordering\n"))
	assert.ErrorContains(err, "unsupported config format")
}

func Test_Context(t *testing.T) {
	assert := assert.New(t)
	cfg := Application{Location: "eastus2", Tags: map[string]string{"env": "prod"}}
	ctx := cfg.Context()
	assert.Equal("eastus2", ctx.Location)
	assert.Equal(map[string]string{"env": "prod"}, ctx.Tags)
}
