package linode

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/linode/linodego"

	"github.com/sliceops/slicectl/internal/util/retry"
)

// RealClient implements ClusterManager using the Linode API.
type RealClient struct {
	client       *linodego.Client
	pollInterval time.Duration
	retryOpts    []retry.Option
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithLinodeClient sets a custom linodego client (useful for testing).
func WithLinodeClient(lc *linodego.Client) ClientOption {
	return func(c *RealClient) {
		c.client = lc
	}
}

// WithPollInterval sets the readiness poll interval.
func WithPollInterval(d time.Duration) ClientOption {
	return func(c *RealClient) {
		c.pollInterval = d
	}
}

// WithRetryOptions overrides the backoff used for transient API failures.
func WithRetryOptions(opts ...retry.Option) ClientOption {
	return func(c *RealClient) {
		c.retryOpts = opts
	}
}

// NewRealClient creates a RealClient authenticated with the given token.
func NewRealClient(token string, opts ...ClientOption) *RealClient {
	lc := linodego.NewClient(nil)
	lc.SetToken(token)

	c := &RealClient{
		client:       &lc,
		pollInterval: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnsureCluster creates the cluster if it does not exist yet.
func (c *RealClient) EnsureCluster(ctx context.Context, opts ClusterCreateOpts) (*linodego.LKECluster, error) {
	existing, err := c.GetClusterByLabel(ctx, opts.Label)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	createOpts := linodego.LKEClusterCreateOptions{
		Label:      opts.Label,
		Region:     opts.Region,
		K8sVersion: opts.K8sVersion,
		Tags:       opts.Tags,
	}
	if opts.HighAvailability {
		ha := true
		createOpts.ControlPlane = &linodego.LKEClusterControlPlaneOptions{HighAvailability: &ha}
	}
	for _, pool := range opts.Pools {
		poolOpts := linodego.LKENodePoolCreateOptions{
			Type:  pool.Type,
			Count: pool.Count,
		}
		if len(pool.Labels) > 0 {
			poolOpts.Labels = linodego.LKENodePoolLabels(pool.Labels)
		}
		createOpts.NodePools = append(createOpts.NodePools, poolOpts)
	}

	var cluster *linodego.LKECluster
	err = retry.Do(ctx, func() error {
		var createErr error
		cluster, createErr = c.client.CreateLKECluster(ctx, createOpts)
		return classify(createErr)
	}, c.retryOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LKE cluster %q: %w", opts.Label, err)
	}
	return cluster, nil
}

// GetClusterByLabel returns the cluster with the given label, or nil.
func (c *RealClient) GetClusterByLabel(ctx context.Context, label string) (*linodego.LKECluster, error) {
	clusters, err := c.listClusters(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clusters {
		if clusters[i].Label == label {
			return &clusters[i], nil
		}
	}
	return nil, nil
}

// ListClustersByTag returns all clusters carrying the given tag.
func (c *RealClient) ListClustersByTag(ctx context.Context, tag string) ([]linodego.LKECluster, error) {
	clusters, err := c.listClusters(ctx)
	if err != nil {
		return nil, err
	}

	var matched []linodego.LKECluster
	for _, cluster := range clusters {
		for _, t := range cluster.Tags {
			if t == tag {
				matched = append(matched, cluster)
				break
			}
		}
	}
	return matched, nil
}

// WaitClusterReady polls until the control plane reports ready and every
// node pool Linode is up. LKE clusters take several minutes to come up, so
// the poll interval is deliberately coarse.
func (c *RealClient) WaitClusterReady(ctx context.Context, clusterID int, timeout time.Duration) error {
	return retry.Poll(ctx, c.pollInterval, timeout, func(ctx context.Context) (bool, error) {
		cluster, err := c.client.GetLKECluster(ctx, clusterID)
		if err != nil {
			return false, classify(err)
		}
		if cluster.Status != linodego.LKEClusterReady {
			return false, fmt.Errorf("cluster %d status is %q", clusterID, cluster.Status)
		}

		pools, err := c.client.ListLKENodePools(ctx, clusterID, nil)
		if err != nil {
			return false, classify(err)
		}
		for _, pool := range pools {
			for _, node := range pool.Linodes {
				if node.Status != linodego.LKELinodeReady {
					return false, fmt.Errorf("node %s in pool %d is %q", node.ID, pool.ID, node.Status)
				}
			}
		}

		// The kubeconfig endpoint 404s until the API server is actually
		// reachable, so a successful fetch is part of readiness.
		if _, err := c.client.GetLKEClusterKubeconfig(ctx, clusterID); err != nil {
			return false, fmt.Errorf("kubeconfig not available yet: %w", classify(err))
		}
		return true, nil
	})
}

// GetKubeconfig fetches and decodes the cluster's kubeconfig.
func (c *RealClient) GetKubeconfig(ctx context.Context, clusterID int) ([]byte, error) {
	var kubeconfig *linodego.LKEClusterKubeconfig
	err := retry.Do(ctx, func() error {
		var getErr error
		kubeconfig, getErr = c.client.GetLKEClusterKubeconfig(ctx, clusterID)
		return classify(getErr)
	}, c.retryOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch kubeconfig for cluster %d: %w", clusterID, err)
	}

	decoded, err := base64.StdEncoding.DecodeString(kubeconfig.KubeConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to decode kubeconfig for cluster %d: %w", clusterID, err)
	}
	return decoded, nil
}

// DeleteCluster deletes the cluster, treating 404 as success.
func (c *RealClient) DeleteCluster(ctx context.Context, clusterID int) error {
	err := retry.Do(ctx, func() error {
		return classify(c.client.DeleteLKECluster(ctx, clusterID))
	}, c.retryOpts...)
	if err != nil && !IsNotFound(err) {
		return fmt.Errorf("failed to delete LKE cluster %d: %w", clusterID, err)
	}
	return nil
}

// listClusters pages through all LKE clusters on the account.
func (c *RealClient) listClusters(ctx context.Context) ([]linodego.LKECluster, error) {
	var clusters []linodego.LKECluster
	err := retry.Do(ctx, func() error {
		var listErr error
		clusters, listErr = c.client.ListLKEClusters(ctx, nil)
		return classify(listErr)
	}, c.retryOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to list LKE clusters: %w", err)
	}
	return clusters, nil
}

// classify marks client errors (4xx other than 429) as fatal so the retry
// loop gives up immediately on bad tokens or malformed requests.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if hasStatus(err, http.StatusTooManyRequests) {
		return err
	}
	var apiErr *linodego.Error
	if errors.As(err, &apiErr) && apiErr.Code >= 400 && apiErr.Code < 500 {
		return retry.Fatal(err)
	}
	return err
}
