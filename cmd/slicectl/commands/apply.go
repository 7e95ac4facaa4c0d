package commands

import (
	"github.com/spf13/cobra"

	"github.com/sliceops/slicectl/cmd/slicectl/handlers"
)

// Apply returns the command for provisioning the KubeSlice deployment.
//
// This command handles the complete lifecycle: creating the controller and
// worker LKE clusters, installing the KubeSlice control plane and Istio,
// registering the workers, creating the slice, and deploying the sample
// application.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML file (default: auto-detect slicectl.yaml)
//
// Environment variables:
//
//	LINODE_TOKEN: Linode API token (required)
func Apply() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the KubeSlice deployment",
		Long: `Create or update your KubeSlice deployment.

This command provisions the controller and worker clusters on Linode
Kubernetes Engine, installs the KubeSlice control plane and Istio,
registers the workers, and connects them with a slice.

If no config file is specified, it looks for slicectl.yaml in the current
directory. Use 'slicectl init' to create a configuration file.

Examples:
  # Apply using slicectl.yaml in current directory
  slicectl apply

  # Apply using a specific config file
  slicectl apply -c production.yaml

  # Re-apply after configuration changes
  slicectl apply`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: slicectl.yaml)")

	return cmd
}
