// Package registration registers worker clusters with the controller and
// creates the slice connecting them.
package registration

import (
	"fmt"
	"time"

	"github.com/sliceops/slicectl/internal/kube"
	"github.com/sliceops/slicectl/internal/kubeslice"
	"github.com/sliceops/slicectl/internal/provisioning"
)

// clusterHealthTimeout bounds the wait for a registered worker to report
// healthy. The worker operator has to connect back to the controller and
// start its gateway pods first.
const clusterHealthTimeout = 15 * time.Minute

// Provisioner registers workers and creates the slice.
type Provisioner struct{}

// New creates a registration provisioner.
func New() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return "registration"
}

// Provision applies a Cluster registration for every worker, waits for each
// to report healthy, then applies the SliceConfig spanning all of them.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.Controller == nil {
		return fmt.Errorf("controller state missing; run the controller phase first")
	}

	kubeClient, err := ctx.NewKubeClient(ctx.State.Controller.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create controller kube client: %w", err)
	}

	if err := kubeClient.WaitForAPIResource(ctx, kubeslice.ControllerGroupVersion, "Cluster"); err != nil {
		return err
	}

	projectNamespace := ctx.Config.ProjectNamespace()

	for _, name := range ctx.Config.WorkerNames() {
		if err := p.registerWorker(ctx, kubeClient, name, projectNamespace); err != nil {
			return fmt.Errorf("failed to register worker %s: %w", name, err)
		}
	}

	return p.createSlice(ctx, kubeClient, projectNamespace)
}

// registerWorker applies the Cluster resource and waits until the
// controller reports the worker's health as Normal.
func (p *Provisioner) registerWorker(ctx *provisioning.Context, kubeClient kube.Client, name, projectNamespace string) error {
	clusterName := kubeslice.WorkerClusterName(name)
	region := ctx.Config.Workers[name].Region

	manifest, err := kubeslice.ClusterRegistration(clusterName, projectNamespace, region)
	if err != nil {
		return err
	}

	ctx.Logger.Printf("registering cluster %s", clusterName)
	if err := kubeClient.ApplyManifests(ctx, manifest, provisioning.FieldManager); err != nil {
		return err
	}

	ctx.Logger.Printf("waiting for cluster %s to report healthy", clusterName)
	return kubeClient.WaitForFieldValue(ctx, kube.FieldWaitOptions{
		Resource:  kubeslice.ClustersResource,
		Namespace: projectNamespace,
		Name:      clusterName,
		FieldPath: "status.clusterHealth.clusterHealthStatus",
		Expected:  "Normal",
		Timeout:   clusterHealthTimeout,
	})
}

// createSlice applies the SliceConfig covering all registered workers.
func (p *Provisioner) createSlice(ctx *provisioning.Context, kubeClient kube.Client, projectNamespace string) error {
	cfg := ctx.Config

	if err := kubeClient.WaitForAPIResource(ctx, kubeslice.ControllerGroupVersion, "SliceConfig"); err != nil {
		return err
	}

	clusters := make([]string, 0, len(cfg.Workers))
	for _, name := range cfg.WorkerNames() {
		clusters = append(clusters, kubeslice.WorkerClusterName(name))
	}

	manifest, err := kubeslice.SliceConfig(kubeslice.SliceSpec{
		Name:                 cfg.SliceName(),
		ProjectNamespace:     projectNamespace,
		Subnet:               cfg.Slice.Subnet,
		MaxClusters:          cfg.Slice.MaxClusters,
		Clusters:             clusters,
		ApplicationNamespace: cfg.Application.Namespace,
	})
	if err != nil {
		return err
	}

	ctx.Logger.Printf("creating slice %s across %d clusters", cfg.SliceName(), len(clusters))
	return kubeClient.ApplyManifests(ctx, manifest, provisioning.FieldManager)
}
