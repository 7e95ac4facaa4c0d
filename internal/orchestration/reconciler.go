// Package orchestration coordinates the provisioning workflow. It defines
// the phase order and delegates the actual work to the provisioning
// subpackages.
package orchestration

import (
	"context"

	"github.com/sliceops/slicectl/internal/config"
	"github.com/sliceops/slicectl/internal/platform/linode"
	"github.com/sliceops/slicectl/internal/provisioning"
	"github.com/sliceops/slicectl/internal/provisioning/application"
	"github.com/sliceops/slicectl/internal/provisioning/controller"
	"github.com/sliceops/slicectl/internal/provisioning/destroy"
	"github.com/sliceops/slicectl/internal/provisioning/registration"
	"github.com/sliceops/slicectl/internal/provisioning/workers"
)

// Reconciler drives a deployment to its configured state.
type Reconciler struct {
	config   *config.Config
	clusters linode.ClusterManager

	// newContext builds the provisioning context; a variable so tests can
	// swap in fake client factories.
	newContext func(ctx context.Context) *provisioning.Context
}

// NewReconciler creates a reconciler for the given configuration.
func NewReconciler(cfg *config.Config, clusters linode.ClusterManager) *Reconciler {
	return &Reconciler{
		config:   cfg,
		clusters: clusters,
		newContext: func(ctx context.Context) *provisioning.Context {
			return provisioning.NewContext(ctx, cfg, clusters)
		},
	}
}

// Apply provisions the full topology: controller, workers, registration,
// and the sample application.
func (r *Reconciler) Apply(ctx context.Context) error {
	return provisioning.RunPhases(r.newContext(ctx), []provisioning.Phase{
		controller.New(),
		workers.New(),
		registration.New(),
		application.New(),
	})
}

// Destroy tears down every cluster of the deployment.
func (r *Reconciler) Destroy(ctx context.Context) error {
	return provisioning.RunPhases(r.newContext(ctx), []provisioning.Phase{
		destroy.New(),
	})
}
