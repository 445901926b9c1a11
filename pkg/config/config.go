package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Digitalminion/atakora-sub000/pkg/construct"
)

type Application struct {
	AppName  string            `json:"app" yaml:"app" toml:"app"`
	Location string            `json:"location" yaml:"location" toml:"location"`
	Tags     map[string]string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	OutDir   string            `json:"out_dir" yaml:"out_dir" toml:"out_dir"`

	// Format is what format the file was originally in, kept so tooling that
	// rewrites the config preserves it.
	Format string `json:"-" yaml:"-" toml:"-"`
}

// ReadConfig loads an application config from json, yaml or toml based on
// the file extension.
func ReadConfig(fpath string) (Application, error) {
	var appCfg Application

	f, err := os.Open(fpath)
	if err != nil {
		return appCfg, err
	}
	defer f.Close() // nolint:errcheck

	switch filepath.Ext(fpath) {
	case ".json":
		err = json.NewDecoder(f).Decode(&appCfg)
		appCfg.Format = "json"

	case ".yaml", ".yml":
		err = yaml.NewDecoder(f).Decode(&appCfg)
		appCfg.Format = "yaml"

	case ".toml":
		err = toml.NewDecoder(f).Decode(&appCfg)
		appCfg.Format = "toml"

	default:
		return appCfg, errors.Errorf("unsupported config format '%s'", filepath.Ext(fpath))
	}
	return appCfg, err
}

// Context converts the config's defaults into the typed context handed to
// the construct tree at construction time.
func (cfg Application) Context() construct.Context {
	return construct.Context{
		Location: cfg.Location,
		Tags:     cfg.Tags,
	}
}
