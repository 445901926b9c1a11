// Package synthesis turns a construct tree into deployable ARM templates,
// one per stack. The pass is a pure in-memory transformation: traverse,
// collect, validate, assemble. Any failed step aborts the run and no
// templates are produced.
package synthesis

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
	"github.com/Digitalminion/atakora-sub000/pkg/construct"
	"github.com/Digitalminion/atakora-sub000/pkg/synthesis/prepare"
)

type (
	Synthesizer struct {
		traverser prepare.TreeTraverser
		collector prepare.ResourceCollector
	}

	// StackArtifact is one synthesized template plus the stack identity it
	// belongs to.
	StackArtifact struct {
		Name     string
		Path     string
		Scope    arm.DeploymentScope
		Template *arm.Template
	}
)

func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synth runs the full pipeline from root and returns one artifact per
// stack, ordered by stack path for reproducible output.
func (s *Synthesizer) Synth(root construct.Construct) ([]*StackArtifact, error) {
	runID := uuid.New()
	log := zap.S().With("synthesis_run", runID.String())

	result, err := s.traverser.Traverse(root)
	if err != nil {
		return nil, err
	}
	stacks, err := s.collector.Collect(result)
	if err != nil {
		return nil, err
	}
	if err := s.collector.ValidateResources(stacks); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(stacks))
	for path := range stacks {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	artifacts := make([]*StackArtifact, 0, len(stacks))
	for _, path := range paths {
		info := stacks[path]
		tmpl, err := AssembleTemplate(info)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, &StackArtifact{
			Name:     info.Name,
			Path:     info.Path,
			Scope:    info.Scope,
			Template: tmpl,
		})
		log.Debugf("assembled template for stack '%s' with %d resources", info.Name, len(tmpl.Resources))
	}
	log.Infof("synthesized %d stack template(s)", len(artifacts))
	return artifacts, nil
}
