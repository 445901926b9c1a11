// Package cli wires the synthesis pipeline to a cobra command tree.
package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Digitalminion/atakora-sub000/pkg/config"
	"github.com/Digitalminion/atakora-sub000/pkg/manifest"
	"github.com/Digitalminion/atakora-sub000/pkg/synthesis"
)

type SynthMain struct {
	synthesizer *synthesis.Synthesizer
}

var synthCfg struct {
	manifestPath string
	configPath   string
	outDir       string
	verbose      bool
}

func setupLogger() (*zap.Logger, error) {
	if synthCfg.verbose {
		return zap.NewDevelopmentConfig().Build()
	}
	return zap.NewProductionConfig().Build()
}

func (sm *SynthMain) AddSynthCli(root *cobra.Command) {
	synthCmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize ARM templates from an application manifest",
		RunE:  sm.RunSynth,
	}
	flags := synthCmd.Flags()
	flags.StringVarP(&synthCfg.manifestPath, "manifest", "f", "app.yaml", "Application manifest file")
	flags.StringVarP(&synthCfg.configPath, "config", "c", "", "Optional application config file (json, yaml or toml)")
	flags.StringVarP(&synthCfg.outDir, "output-dir", "o", "", "Directory the stack templates are written to (defaults to the config's out_dir, then 'templates')")
	flags.BoolVarP(&synthCfg.verbose, "verbose", "v", false, "Verbose logging")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the synthesis pipeline without writing templates",
		RunE:  sm.RunValidate,
	}
	flags = validateCmd.Flags()
	flags.StringVarP(&synthCfg.manifestPath, "manifest", "f", "app.yaml", "Application manifest file")
	flags.StringVarP(&synthCfg.configPath, "config", "c", "", "Optional application config file (json, yaml or toml)")
	flags.BoolVarP(&synthCfg.verbose, "verbose", "v", false, "Verbose logging")

	root.AddCommand(synthCmd)
	root.AddCommand(validateCmd)
}

func (sm *SynthMain) synthesize() ([]*synthesis.StackArtifact, error) {
	logger, err := setupLogger()
	if err != nil {
		return nil, err
	}
	defer logger.Sync() // nolint:errcheck
	zap.ReplaceGlobals(logger)

	m, err := manifest.Load(synthCfg.manifestPath)
	if err != nil {
		return nil, err
	}
	if synthCfg.configPath != "" {
		appCfg, err := config.ReadConfig(synthCfg.configPath)
		if err != nil {
			return nil, errors.Wrapf(err, "reading config '%s'", synthCfg.configPath)
		}
		// Manifest settings win over config file defaults.
		if m.Location == "" {
			m.Location = appCfg.Location
		}
		if m.App == "App" && appCfg.AppName != "" {
			m.App = appCfg.AppName
		}
		if len(m.Tags) == 0 {
			m.Tags = appCfg.Tags
		}
		if synthCfg.outDir == "" {
			synthCfg.outDir = appCfg.OutDir
		}
	}

	app, err := m.Build()
	if err != nil {
		return nil, err
	}
	if sm.synthesizer == nil {
		sm.synthesizer = synthesis.NewSynthesizer()
	}
	return sm.synthesizer.Synth(app)
}

func (sm *SynthMain) RunSynth(cmd *cobra.Command, args []string) error {
	artifacts, err := sm.synthesize()
	if err != nil {
		return err
	}
	dir := synthCfg.outDir
	if dir == "" {
		dir = "templates"
	}
	return synthesis.WriteArtifacts(dir, artifacts)
}

func (sm *SynthMain) RunValidate(cmd *cobra.Command, args []string) error {
	artifacts, err := sm.synthesize()
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		fmt.Printf("%s: %s scope, %d resources\n", a.Name, a.Scope, len(a.Template.Resources))
	}
	return nil
}
