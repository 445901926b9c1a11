package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Digitalminion/atakora-sub000/pkg/cli"
)

func main() {
	root := &cobra.Command{
		Use:   "atakora",
		Short: "Synthesize Azure Resource Manager templates from typed constructs",
	}
	sm := &cli.SynthMain{}
	sm.AddSynthCli(root)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
