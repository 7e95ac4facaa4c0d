package commands

import (
	"github.com/spf13/cobra"

	"github.com/sliceops/slicectl/cmd/slicectl/handlers"
)

// Init returns the command for interactively creating a deployment
// configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "slicectl.yaml")
//	--non-interactive: Write the default configuration without prompting
func Init() *cobra.Command {
	var (
		outputPath     string
		nonInteractive bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a deployment configuration",
		Long: `Interactively create a deployment configuration file.

This command guides you through configuring a KubeSlice deployment
step by step. It will ask about:

  - Project name and controller region
  - Controller cluster node pool sizing
  - Worker clusters (region, workload and gateway pools)
  - Which workers run the sample application frontend and backend
  - KubeSlice edition (community or enterprise)

When stdin is not a terminal, a configuration with defaults is
written for manual editing instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, nonInteractive)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "slicectl.yaml", "Output file path")
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Write the default configuration without prompting")

	return cmd
}
