package provisioning

import (
	"context"
	"sync"

	"helm.sh/helm/v3/pkg/release"

	"github.com/sliceops/slicectl/internal/helm"
)

// InstalledChart records one InstallOrUpgrade call on a MockInstaller.
type InstalledChart struct {
	Spec   helm.ChartSpec
	Values helm.Values
}

// MockInstaller implements ChartInstaller for tests, recording every
// install in order. Safe for concurrent use.
type MockInstaller struct {
	InstallFunc   func(ctx context.Context, spec helm.ChartSpec, values helm.Values) (*release.Release, error)
	UninstallFunc func(releaseName string) error

	mu          sync.Mutex
	Installed   []InstalledChart
	Uninstalled []string
}

var _ ChartInstaller = (*MockInstaller)(nil)

func (m *MockInstaller) InstallOrUpgrade(ctx context.Context, spec helm.ChartSpec, values helm.Values) (*release.Release, error) {
	m.mu.Lock()
	m.Installed = append(m.Installed, InstalledChart{Spec: spec, Values: values})
	m.mu.Unlock()

	if m.InstallFunc != nil {
		return m.InstallFunc(ctx, spec, values)
	}
	return &release.Release{Name: spec.ReleaseName}, nil
}

func (m *MockInstaller) Uninstall(releaseName string) error {
	m.mu.Lock()
	m.Uninstalled = append(m.Uninstalled, releaseName)
	m.mu.Unlock()

	if m.UninstallFunc != nil {
		return m.UninstallFunc(releaseName)
	}
	return nil
}

// InstalledNames returns the chart names installed, in call order.
func (m *MockInstaller) InstalledNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.Installed))
	for _, c := range m.Installed {
		names = append(names, c.Spec.Name)
	}
	return names
}
