// Package provisioning provides the shared types and interfaces of the
// provisioning pipeline.
//
// The pipeline is organized into focused subpackages, run in order:
//   - controller/ - controller LKE cluster, KubeSlice control plane, project
//   - workers/ - worker LKE clusters, Istio, KubeSlice worker operator
//   - registration/ - cluster registration and slice creation
//   - application/ - sample application rollout across the slice
//   - destroy/ - teardown of all clusters by tag
//
// This root package holds the interfaces, state, and context shared across
// subpackages.
package provisioning

import (
	"context"

	"helm.sh/helm/v3/pkg/release"

	"github.com/sliceops/slicectl/internal/helm"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// ChartInstaller installs Helm charts into one namespace of one cluster.
// Implemented by *helm.Client.
type ChartInstaller interface {
	InstallOrUpgrade(ctx context.Context, spec helm.ChartSpec, values helm.Values) (*release.Release, error)
	Uninstall(releaseName string) error
}

// Logger is the minimal logging interface used by phases.
type Logger interface {
	Printf(format string, v ...interface{})
}
