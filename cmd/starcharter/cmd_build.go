package main

import (
	"github.com/spf13/cobra"

	"github.com/starcharter/starcharter/internal/catalogue"
)

var cmdBuild = &cobra.Command{
	Use:   "build-catalogue [flags]",
	Short: "Rebuild the binary star catalogue from its text source",
	Long: `
The "build-catalogue" command converts the text star catalogue into the
tiled binary index used at render time. Rendering rebuilds a missing or
stale index automatically; this command forces a rebuild, for example
after replacing the text catalogue with the same version tag.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return catalogue.Build(buildOptions.Source, buildOptions.Output, catalogue.DefaultScheme)
	},
}

// BuildOptions bundles all options for the build-catalogue command.
type BuildOptions struct {
	Source string
	Output string
}

var buildOptions BuildOptions

func init() {
	cmdRoot.AddCommand(cmdBuild)

	f := cmdBuild.Flags()
	f.StringVar(&buildOptions.Source, "source", "", "text star catalogue, optionally gzipped")
	f.StringVar(&buildOptions.Output, "output", "", "binary catalogue to write")
	_ = cmdBuild.MarkFlagRequired("source")
	_ = cmdBuild.MarkFlagRequired("output")
}
