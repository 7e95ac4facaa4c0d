// Package linode wraps the Linode Kubernetes Engine API behind a small
// interface so provisioning code can be tested against a mock.
package linode

import (
	"context"
	"time"

	"github.com/linode/linodego"
)

// PoolOpts describes one LKE node pool.
type PoolOpts struct {
	Type   string
	Count  int
	Labels map[string]string
}

// ClusterCreateOpts holds all parameters for creating an LKE cluster.
type ClusterCreateOpts struct {
	Label            string
	Region           string
	K8sVersion       string
	Tags             []string
	HighAvailability bool
	Pools            []PoolOpts
}

// ClusterManager defines the LKE operations used by provisioning.
type ClusterManager interface {
	// EnsureCluster creates the cluster if no cluster with the same label
	// exists, otherwise returns the existing one. Idempotent on label.
	EnsureCluster(ctx context.Context, opts ClusterCreateOpts) (*linodego.LKECluster, error)

	// GetClusterByLabel returns the cluster with the given label, or nil if
	// no such cluster exists.
	GetClusterByLabel(ctx context.Context, label string) (*linodego.LKECluster, error)

	// ListClustersByTag returns all clusters carrying the given tag.
	ListClustersByTag(ctx context.Context, tag string) ([]linodego.LKECluster, error)

	// WaitClusterReady blocks until the cluster reports ready and all node
	// pool Linodes are up, or the timeout elapses.
	WaitClusterReady(ctx context.Context, clusterID int, timeout time.Duration) error

	// GetKubeconfig returns the cluster's kubeconfig, base64-decoded.
	GetKubeconfig(ctx context.Context, clusterID int) ([]byte, error)

	// DeleteCluster deletes the cluster. Deleting an absent cluster is not
	// an error.
	DeleteCluster(ctx context.Context, clusterID int) error
}
