package linode

import (
	"context"
	"sync"
	"time"

	"github.com/linode/linodego"
)

// MockClient implements ClusterManager with overridable function fields.
// Calls are recorded so tests can assert on ordering and arguments.
type MockClient struct {
	EnsureClusterFunc     func(ctx context.Context, opts ClusterCreateOpts) (*linodego.LKECluster, error)
	GetClusterByLabelFunc func(ctx context.Context, label string) (*linodego.LKECluster, error)
	ListClustersByTagFunc func(ctx context.Context, tag string) ([]linodego.LKECluster, error)
	WaitClusterReadyFunc  func(ctx context.Context, clusterID int, timeout time.Duration) error
	GetKubeconfigFunc     func(ctx context.Context, clusterID int) ([]byte, error)
	DeleteClusterFunc     func(ctx context.Context, clusterID int) error

	mu            sync.Mutex
	EnsuredLabels []string
	DeletedIDs    []int
}

var _ ClusterManager = (*MockClient)(nil)

func (m *MockClient) EnsureCluster(ctx context.Context, opts ClusterCreateOpts) (*linodego.LKECluster, error) {
	m.mu.Lock()
	m.EnsuredLabels = append(m.EnsuredLabels, opts.Label)
	id := len(m.EnsuredLabels)
	m.mu.Unlock()

	if m.EnsureClusterFunc != nil {
		return m.EnsureClusterFunc(ctx, opts)
	}
	return &linodego.LKECluster{ID: id, Label: opts.Label, Region: opts.Region}, nil
}

func (m *MockClient) GetClusterByLabel(ctx context.Context, label string) (*linodego.LKECluster, error) {
	if m.GetClusterByLabelFunc != nil {
		return m.GetClusterByLabelFunc(ctx, label)
	}
	return nil, nil
}

func (m *MockClient) ListClustersByTag(ctx context.Context, tag string) ([]linodego.LKECluster, error) {
	if m.ListClustersByTagFunc != nil {
		return m.ListClustersByTagFunc(ctx, tag)
	}
	return nil, nil
}

func (m *MockClient) WaitClusterReady(ctx context.Context, clusterID int, timeout time.Duration) error {
	if m.WaitClusterReadyFunc != nil {
		return m.WaitClusterReadyFunc(ctx, clusterID, timeout)
	}
	return nil
}

func (m *MockClient) GetKubeconfig(ctx context.Context, clusterID int) ([]byte, error) {
	if m.GetKubeconfigFunc != nil {
		return m.GetKubeconfigFunc(ctx, clusterID)
	}
	return []byte(mockKubeconfig), nil
}

// mockKubeconfig is a complete kubeconfig so callers that parse endpoint
// and credentials work against the mock unmodified.
const mockKubeconfig = `apiVersion: v1
kind: Config
current-context: mock
clusters:
- name: mock-cluster
  cluster:
    server: https://127.0.0.1:6443
    certificate-authority-data: LS0tLS1CRUdJTiBDRVJUSUZJQ0FURS0tLS0t
contexts:
- name: mock
  context:
    cluster: mock-cluster
    user: mock-admin
users:
- name: mock-admin
  user:
    token: mock-token
`

func (m *MockClient) DeleteCluster(ctx context.Context, clusterID int) error {
	m.mu.Lock()
	m.DeletedIDs = append(m.DeletedIDs, clusterID)
	m.mu.Unlock()
	if m.DeleteClusterFunc != nil {
		return m.DeleteClusterFunc(ctx, clusterID)
	}
	return nil
}
