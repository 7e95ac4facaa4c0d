package commands

import (
	"github.com/spf13/cobra"

	"github.com/sliceops/slicectl/cmd/slicectl/handlers"
)

// Status returns the status command.
//
// The status command lists the deployment's LKE clusters as the Linode API
// reports them, without touching the clusters themselves.
func Status() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the deployment's clusters and their state",
		Long: `Show the deployment's LKE clusters.

Clusters are discovered by the deployment's tags and listed with their
region and provisioning status.

Example:
  slicectl status`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: slicectl.yaml)")

	return cmd
}
