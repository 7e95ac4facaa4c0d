package helm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	base := Values{"cluster": "frontend", "interface": "eth0"}
	override := Values{"interface": "eth1", "extra": true}

	merged := Merge(base, override)

	assert.Equal(t, "frontend", merged["cluster"])
	assert.Equal(t, "eth1", merged["interface"], "later maps win")
	assert.Equal(t, true, merged["extra"])

	// Inputs are not mutated.
	assert.Equal(t, "eth0", base["interface"])
}

func TestMergeEmpty(t *testing.T) {
	merged := Merge()
	assert.Empty(t, merged)

	merged = Merge(Values{"a": 1}, nil)
	assert.Equal(t, Values{"a": 1}, merged)
}

func TestChartRegistryCommunity(t *testing.T) {
	controller := ControllerChart(false)
	assert.Equal(t, CommunityRepoURL, controller.Repository)
	assert.Equal(t, CommunityVersion, controller.Version)
	assert.Equal(t, "kubeslice-controller", controller.Name)
	assert.Equal(t, ControllerNamespace, controller.Namespace)

	worker := WorkerChart(false)
	assert.Equal(t, CommunityRepoURL, worker.Repository)
	assert.Equal(t, WorkerNamespace, worker.Namespace)

	assert.Equal(t, IstioNamespace, IstioBaseChart(false).Namespace)
	assert.Equal(t, IstioNamespace, IstioDiscoveryChart(false).Namespace)
}

func TestChartRegistryEnterprise(t *testing.T) {
	for _, spec := range []ChartSpec{
		ControllerChart(true),
		WorkerChart(true),
		UIChart(),
		PrometheusChart(),
	} {
		assert.Equal(t, EnterpriseRepoURL, spec.Repository, spec.Name)
	}
	assert.Equal(t, EnterpriseVersion, ControllerChart(true).Version)
	assert.Equal(t, EnterpriseVersion, WorkerChart(true).Version)
	assert.Equal(t, EnterpriseVersion, UIChart().Version)
	// istio and prometheus track the repository's current release
	assert.Empty(t, IstioBaseChart(true).Version)
	assert.Empty(t, PrometheusChart().Version)

	assert.Equal(t, ControllerNamespace, UIChart().Namespace)
	assert.Equal(t, MonitoringNamespace, PrometheusChart().Namespace)
}

func TestInMemoryRESTClientGetter(t *testing.T) {
	kubeconfig := []byte(`apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
    insecure-skip-tls-verify: true
  name: test-cluster
contexts:
- context:
    cluster: test-cluster
    user: test-user
  name: test-context
current-context: test-context
users:
- name: test-user
  user:
    token: test-token
`)

	getter := NewInMemoryRESTClientGetter(kubeconfig, "kubeslice-system")
	require.NotNil(t, getter)

	restConfig, err := getter.ToRESTConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://127.0.0.1:6443", restConfig.Host)
	assert.Equal(t, "test-token", restConfig.BearerToken)

	// Config is built once and cached.
	again, err := getter.ToRESTConfig()
	require.NoError(t, err)
	assert.Same(t, restConfig, again)

	rawLoader := getter.ToRawKubeConfigLoader()
	require.NotNil(t, rawLoader)
}
