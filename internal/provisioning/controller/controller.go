// Package controller provisions the KubeSlice controller: the LKE cluster,
// the control plane charts, and the project that worker clusters register
// into.
package controller

import (
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/sliceops/slicectl/internal/helm"
	"github.com/sliceops/slicectl/internal/kube"
	"github.com/sliceops/slicectl/internal/kubeslice"
	"github.com/sliceops/slicectl/internal/platform/linode"
	"github.com/sliceops/slicectl/internal/provisioning"
)

const (
	clusterReadyTimeout     = 20 * time.Minute
	projectNamespaceTimeout = 5 * time.Minute
)

var namespacesResource = schema.GroupVersionResource{Version: "v1", Resource: "namespaces"}

// Provisioner provisions the controller cluster and its control plane.
type Provisioner struct{}

// New creates a controller provisioner.
func New() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return "controller"
}

// Provision creates the controller cluster, installs the KubeSlice
// controller chart (and UI for the enterprise edition), and creates the
// project. It blocks until the project namespace is active so registration
// can proceed immediately.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config

	cluster, err := ctx.Clusters.EnsureCluster(ctx, linode.ClusterCreateOpts{
		Label:      kubeslice.ControllerClusterLabel,
		Region:     cfg.Region,
		K8sVersion: cfg.KubernetesVersion,
		Tags:       []string{kubeslice.ControllerTag},
		Pools: []linode.PoolOpts{
			{Type: cfg.Controller.NodeType, Count: cfg.Controller.NodeCount},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to ensure controller cluster: %w", err)
	}

	ctx.Logger.Printf("controller cluster %s (id %d): waiting for ready", cluster.Label, cluster.ID)
	if err := ctx.Clusters.WaitClusterReady(ctx, cluster.ID, clusterReadyTimeout); err != nil {
		return fmt.Errorf("controller cluster not ready: %w", err)
	}

	kubeconfig, err := ctx.Clusters.GetKubeconfig(ctx, cluster.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch controller kubeconfig: %w", err)
	}

	access, err := kube.ExtractClusterAccess(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to parse controller kubeconfig: %w", err)
	}

	ctx.State.Controller = &provisioning.ClusterState{
		ID:         cluster.ID,
		Kubeconfig: kubeconfig,
		Access:     access,
	}

	kubeClient, err := ctx.NewKubeClient(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create controller kube client: %w", err)
	}

	if err := kubeClient.EnsureNamespace(ctx, helm.ControllerNamespace, nil); err != nil {
		return err
	}

	if err := p.installCharts(ctx, kubeconfig, access.Endpoint); err != nil {
		return err
	}

	return p.createProject(ctx, kubeClient)
}

// installCharts installs kubeslice-controller and, for the enterprise
// edition, kubeslice-ui.
func (p *Provisioner) installCharts(ctx *provisioning.Context, kubeconfig []byte, endpoint string) error {
	cfg := ctx.Config

	installer, err := ctx.NewHelmClient(kubeconfig, helm.ControllerNamespace)
	if err != nil {
		return fmt.Errorf("failed to create helm client: %w", err)
	}

	spec := helm.ControllerChart(cfg.Enterprise.Enabled)
	ctx.Logger.Printf("installing %s %s", spec.Name, spec.Version)
	values := kubeslice.ControllerValues(endpoint, cfg.Enterprise)
	if _, err := installer.InstallOrUpgrade(ctx, spec, values); err != nil {
		return fmt.Errorf("failed to install %s: %w", spec.Name, err)
	}

	if !cfg.Enterprise.Enabled {
		return nil
	}

	uiSpec := helm.UIChart()
	ctx.Logger.Printf("installing %s %s", uiSpec.Name, uiSpec.Version)
	if _, err := installer.InstallOrUpgrade(ctx, uiSpec, kubeslice.UIValues(cfg.Enterprise)); err != nil {
		return fmt.Errorf("failed to install %s: %w", uiSpec.Name, err)
	}
	return nil
}

// createProject applies the Project resource once its CRD is served and
// waits for the controller to create the project namespace.
func (p *Provisioner) createProject(ctx *provisioning.Context, kubeClient kube.Client) error {
	cfg := ctx.Config

	if err := kubeClient.WaitForAPIResource(ctx, kubeslice.ControllerGroupVersion, "Project"); err != nil {
		return err
	}

	manifest, err := kubeslice.Project(cfg.Project, kubeslice.DefaultReadOnlyUsers, kubeslice.DefaultReadWriteUsers)
	if err != nil {
		return err
	}

	ctx.Logger.Printf("creating project %s", cfg.Project)
	if err := kubeClient.ApplyManifests(ctx, manifest, provisioning.FieldManager); err != nil {
		return fmt.Errorf("failed to apply project: %w", err)
	}

	// The controller materializes the project as a namespace; registration
	// objects live there.
	return kubeClient.WaitForFieldValue(ctx, kube.FieldWaitOptions{
		Resource:  namespacesResource,
		Name:      cfg.ProjectNamespace(),
		FieldPath: "status.phase",
		Expected:  "Active",
		Timeout:   projectNamespaceTimeout,
	})
}
