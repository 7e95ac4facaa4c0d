// Package destroy tears down all clusters of a deployment. Clusters are
// found by their tags, so teardown works without any local state.
package destroy

import (
	"fmt"

	"github.com/sliceops/slicectl/internal/kubeslice"
	"github.com/sliceops/slicectl/internal/provisioning"
)

// Destroyer deletes worker clusters, then the controller cluster.
type Destroyer struct{}

// New creates a destroyer.
func New() *Destroyer {
	return &Destroyer{}
}

// Name implements provisioning.Phase.
func (d *Destroyer) Name() string {
	return "destroy"
}

// Provision deletes every cluster tagged as a worker, then every cluster
// tagged as the controller. Missing clusters are skipped.
func (d *Destroyer) Provision(ctx *provisioning.Context) error {
	for _, tag := range []string{kubeslice.WorkerTag, kubeslice.ControllerTag} {
		if err := d.deleteByTag(ctx, tag); err != nil {
			return err
		}
	}
	return nil
}

func (d *Destroyer) deleteByTag(ctx *provisioning.Context, tag string) error {
	clusters, err := ctx.Clusters.ListClustersByTag(ctx, tag)
	if err != nil {
		return fmt.Errorf("failed to list clusters tagged %s: %w", tag, err)
	}

	if len(clusters) == 0 {
		ctx.Logger.Printf("no clusters tagged %s", tag)
		return nil
	}

	for _, cluster := range clusters {
		ctx.Logger.Printf("deleting cluster %s (id %d)", cluster.Label, cluster.ID)
		if err := ctx.Clusters.DeleteCluster(ctx, cluster.ID); err != nil {
			return fmt.Errorf("failed to delete cluster %s: %w", cluster.Label, err)
		}
	}
	return nil
}
