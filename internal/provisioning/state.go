package provisioning

import (
	"sync"

	"github.com/sliceops/slicectl/internal/kube"
)

// ClusterState holds the provisioning results for one cluster.
type ClusterState struct {
	// ID is the LKE cluster ID.
	ID int

	// Kubeconfig is the cluster's kubeconfig, decoded.
	Kubeconfig []byte

	// Access is the endpoint and credentials extracted from the kubeconfig.
	Access *kube.ClusterAccess
}

// State holds the shared results of provisioning phases. It is progressively
// populated as each phase completes and is passed to subsequent phases that
// need earlier results. Worker entries are written concurrently during the
// workers phase.
type State struct {
	// Controller is populated by the controller phase.
	Controller *ClusterState

	mu      sync.Mutex
	workers map[string]*ClusterState
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		workers: make(map[string]*ClusterState),
	}
}

// SetWorker records a worker cluster's state. Safe for concurrent use.
func (s *State) SetWorker(name string, cs *ClusterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers[name] = cs
}

// Worker returns a worker cluster's state, or nil if the workers phase has
// not recorded it.
func (s *State) Worker(name string) *ClusterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workers[name]
}
