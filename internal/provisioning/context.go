package provisioning

import (
	"context"
	"log"

	"github.com/sliceops/slicectl/internal/config"
	"github.com/sliceops/slicectl/internal/helm"
	"github.com/sliceops/slicectl/internal/kube"
	"github.com/sliceops/slicectl/internal/platform/linode"
)

// FieldManager identifies this tool in server-side apply field ownership.
const FieldManager = "slicectl"

// Context wraps all dependencies and state needed by provisioning phases.
// The client factories are variables so tests can substitute fakes without
// a live cluster.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Clusters linode.ClusterManager
	Logger   Logger

	// NewKubeClient builds a Kubernetes client from kubeconfig bytes.
	NewKubeClient func(kubeconfig []byte) (kube.Client, error)

	// NewHelmClient builds a chart installer scoped to a namespace.
	NewHelmClient func(kubeconfig []byte, namespace string) (ChartInstaller, error)
}

// NewContext creates a provisioning context with real client factories.
func NewContext(ctx context.Context, cfg *config.Config, clusters linode.ClusterManager) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Clusters: clusters,
		Logger:   log.Default(),
		NewKubeClient: func(kubeconfig []byte) (kube.Client, error) {
			return kube.NewFromKubeconfig(kubeconfig)
		},
		NewHelmClient: func(kubeconfig []byte, namespace string) (ChartInstaller, error) {
			return helm.NewClient(kubeconfig, namespace)
		},
	}
}
