// Package workers provisions the worker clusters: LKE clusters with worker
// and gateway node pools, the Istio mesh, and the KubeSlice worker
// operator connected back to the controller.
package workers

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sliceops/slicectl/internal/config"
	"github.com/sliceops/slicectl/internal/helm"
	"github.com/sliceops/slicectl/internal/kube"
	"github.com/sliceops/slicectl/internal/kubeslice"
	"github.com/sliceops/slicectl/internal/platform/linode"
	"github.com/sliceops/slicectl/internal/provisioning"
)

const clusterReadyTimeout = 20 * time.Minute

// Provisioner provisions all worker clusters in parallel.
type Provisioner struct{}

// New creates a workers provisioner.
func New() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return "workers"
}

// Provision brings up every configured worker cluster concurrently. Each
// worker is independent; the first failure cancels the rest.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.Controller == nil {
		return fmt.Errorf("controller state missing; run the controller phase first")
	}

	group, groupCtx := errgroup.WithContext(ctx)

	for _, name := range ctx.Config.WorkerNames() {
		workerCfg := ctx.Config.Workers[name]
		group.Go(func() error {
			if err := p.provisionWorker(ctx, groupCtx, name, workerCfg); err != nil {
				return fmt.Errorf("worker %s: %w", name, err)
			}
			return nil
		})
	}

	return group.Wait()
}

// provisionWorker creates one worker cluster and installs its charts.
// groupCtx carries the errgroup's cancellation; pctx carries config, state,
// and client factories.
func (p *Provisioner) provisionWorker(pctx *provisioning.Context, groupCtx context.Context, name string, workerCfg config.WorkerConfig) error {
	cfg := pctx.Config
	clusterName := kubeslice.WorkerClusterName(name)

	cluster, err := pctx.Clusters.EnsureCluster(groupCtx, linode.ClusterCreateOpts{
		Label:            clusterName,
		Region:           workerCfg.Region,
		K8sVersion:       cfg.KubernetesVersion,
		Tags:             []string{kubeslice.WorkerTag},
		HighAvailability: true,
		Pools: []linode.PoolOpts{
			{
				Type:  workerCfg.WorkerNodeType,
				Count: workerCfg.WorkerNodeCount,
			},
			{
				Type:  workerCfg.GatewayNodeType,
				Count: workerCfg.GatewayNodeCount,
				Labels: map[string]string{
					kubeslice.GatewayNodeLabelKey: kubeslice.GatewayNodeLabelValue,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to ensure cluster: %w", err)
	}

	pctx.Logger.Printf("worker cluster %s (id %d): waiting for ready", cluster.Label, cluster.ID)
	if err := pctx.Clusters.WaitClusterReady(groupCtx, cluster.ID, clusterReadyTimeout); err != nil {
		return fmt.Errorf("cluster not ready: %w", err)
	}

	kubeconfig, err := pctx.Clusters.GetKubeconfig(groupCtx, cluster.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch kubeconfig: %w", err)
	}

	access, err := kube.ExtractClusterAccess(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to parse kubeconfig: %w", err)
	}

	pctx.State.SetWorker(name, &provisioning.ClusterState{
		ID:         cluster.ID,
		Kubeconfig: kubeconfig,
		Access:     access,
	})

	if err := p.installIstio(pctx, groupCtx, name, kubeconfig); err != nil {
		return err
	}

	if cfg.Enterprise.Enabled {
		if err := p.installPrometheus(pctx, groupCtx, name, kubeconfig); err != nil {
			return err
		}
	}

	return p.installWorkerChart(pctx, groupCtx, name, clusterName, kubeconfig, access.Endpoint)
}

// installIstio installs istio-base then istio-discovery; the discovery
// chart needs the CRDs the base chart ships.
func (p *Provisioner) installIstio(pctx *provisioning.Context, groupCtx context.Context, name string, kubeconfig []byte) error {
	installer, err := pctx.NewHelmClient(kubeconfig, helm.IstioNamespace)
	if err != nil {
		return fmt.Errorf("failed to create helm client: %w", err)
	}

	enterprise := pctx.Config.Enterprise.Enabled
	for _, spec := range []helm.ChartSpec{
		helm.IstioBaseChart(enterprise),
		helm.IstioDiscoveryChart(enterprise),
	} {
		pctx.Logger.Printf("worker %s: installing %s", name, spec.Name)
		if _, err := installer.InstallOrUpgrade(groupCtx, spec, nil); err != nil {
			return fmt.Errorf("failed to install %s: %w", spec.Name, err)
		}
	}
	return nil
}

func (p *Provisioner) installPrometheus(pctx *provisioning.Context, groupCtx context.Context, name string, kubeconfig []byte) error {
	installer, err := pctx.NewHelmClient(kubeconfig, helm.MonitoringNamespace)
	if err != nil {
		return fmt.Errorf("failed to create helm client: %w", err)
	}

	spec := helm.PrometheusChart()
	pctx.Logger.Printf("worker %s: installing %s", name, spec.Name)
	if _, err := installer.InstallOrUpgrade(groupCtx, spec, nil); err != nil {
		return fmt.Errorf("failed to install %s: %w", spec.Name, err)
	}
	return nil
}

// installWorkerChart installs kubeslice-worker with the controller's access
// details so the operator can register.
func (p *Provisioner) installWorkerChart(pctx *provisioning.Context, groupCtx context.Context, name, clusterName string, kubeconfig []byte, endpoint string) error {
	cfg := pctx.Config

	installer, err := pctx.NewHelmClient(kubeconfig, helm.WorkerNamespace)
	if err != nil {
		return fmt.Errorf("failed to create helm client: %w", err)
	}

	values := kubeslice.WorkerValues(kubeslice.WorkerValuesParams{
		ProjectNamespace: cfg.ProjectNamespace(),
		Controller:       pctx.State.Controller.Access,
		ClusterName:      clusterName,
		Endpoint:         endpoint,
		Enterprise:       cfg.Enterprise,
	})

	spec := helm.WorkerChart(cfg.Enterprise.Enabled)
	pctx.Logger.Printf("worker %s: installing %s %s", name, spec.Name, spec.Version)
	if _, err := installer.InstallOrUpgrade(groupCtx, spec, values); err != nil {
		return fmt.Errorf("failed to install %s: %w", spec.Name, err)
	}
	return nil
}
