package commands

import (
	"github.com/spf13/cobra"

	"github.com/sliceops/slicectl/cmd/slicectl/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command removes every cluster of the deployment from Linode.
// Worker clusters are deleted before the controller cluster.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy the KubeSlice deployment and all its clusters",
		Long: `Destroy removes the deployment's clusters from Linode.

This command deletes every LKE cluster carrying the deployment's tags:
  - Worker clusters (including their gateway node pools)
  - The controller cluster

Clusters are discovered by tag, so no local state is required.

Example:
  slicectl destroy -c slicectl.yaml

WARNING: This operation is irreversible. All cluster data will be lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: slicectl.yaml)")

	return cmd
}
