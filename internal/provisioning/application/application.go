// Package application deploys the sample application across the slice:
// the frontend onto clusters flagged frontend, the backend onto clusters
// flagged backend.
package application

import (
	"fmt"

	"github.com/sliceops/slicectl/internal/bookinfo"
	"github.com/sliceops/slicectl/internal/kubeslice"
	"github.com/sliceops/slicectl/internal/provisioning"
)

// Provisioner deploys the sample application.
type Provisioner struct{}

// New creates an application provisioner.
func New() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return "application"
}

// Provision rolls the application out to every worker flagged frontend or
// backend. Skipped entirely when the application is disabled.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config

	if !cfg.Application.Enabled {
		ctx.Logger.Printf("application deployment disabled, skipping")
		return nil
	}

	for _, name := range cfg.WorkerNames() {
		workerCfg := cfg.Workers[name]
		if !workerCfg.Frontend && !workerCfg.Backend {
			continue
		}

		if err := p.deployToWorker(ctx, name, workerCfg.Frontend, workerCfg.Backend); err != nil {
			return fmt.Errorf("failed to deploy application to worker %s: %w", name, err)
		}
	}

	return nil
}

func (p *Provisioner) deployToWorker(ctx *provisioning.Context, name string, frontend, backend bool) error {
	worker := ctx.State.Worker(name)
	if worker == nil {
		return fmt.Errorf("worker state missing; run the workers phase first")
	}

	kubeClient, err := ctx.NewKubeClient(worker.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create kube client: %w", err)
	}

	cfg := ctx.Config
	namespace := cfg.Application.Namespace

	// Sidecar injection must be on before the workloads start, and the
	// slice operator onboards the namespace onto the slice by its label.
	if err := kubeClient.EnsureNamespace(ctx, namespace, map[string]string{
		"istio-injection": "enabled",
	}); err != nil {
		return err
	}

	if backend {
		// The backend manifests include ServiceExport objects; the worker
		// operator has to be serving the CRD before they can be applied.
		if err := kubeClient.WaitForAPIResource(ctx, kubeslice.NetworkingGroupVersion, "ServiceExport"); err != nil {
			return err
		}

		manifests, err := bookinfo.Backend(namespace, cfg.SliceName())
		if err != nil {
			return err
		}
		ctx.Logger.Printf("worker %s: deploying backend services", name)
		if err := kubeClient.ApplyManifests(ctx, manifests, provisioning.FieldManager); err != nil {
			return err
		}
	}

	if frontend {
		manifests, err := bookinfo.Frontend(namespace, cfg.SliceName())
		if err != nil {
			return err
		}
		ctx.Logger.Printf("worker %s: deploying frontend", name)
		if err := kubeClient.ApplyManifests(ctx, manifests, provisioning.FieldManager); err != nil {
			return err
		}
	}

	return nil
}
