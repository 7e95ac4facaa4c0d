package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	return cfg
}

func TestValidate_DefaultIsValid(t *testing.T) {
	t.Setenv(EnvLinodeToken, "test-token")

	require.NoError(t, validConfig().Validate())
}

func TestValidate_MissingToken(t *testing.T) {
	t.Setenv(EnvLinodeToken, "")

	err := validConfig().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvLinodeToken)
}

func TestValidate_RejectsEmptyProject(t *testing.T) {
	t.Setenv(EnvLinodeToken, "test-token")

	cfg := validConfig()
	cfg.Project = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project is required")
}

func TestValidate_RejectsInvalidProjectName(t *testing.T) {
	t.Setenv(EnvLinodeToken, "test-token")

	for _, name := range []string{"Bookinfo", "1project", "a--b", "trailing-"} {
		cfg := validConfig()
		cfg.Project = name
		assert.Error(t, cfg.Validate(), "name %q should be rejected", name)
	}
}

func TestValidate_RequiresWorkers(t *testing.T) {
	t.Setenv(EnvLinodeToken, "test-token")

	cfg := validConfig()
	cfg.Workers = nil
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one worker")
}

func TestValidate_WorkerFields(t *testing.T) {
	t.Setenv(EnvLinodeToken, "test-token")

	cfg := validConfig()
	w := cfg.Workers["frontend"]
	w.Region = ""
	w.GatewayNodeCount = 0
	cfg.Workers["frontend"] = w

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `worker "frontend": region is required`)
	assert.Contains(t, err.Error(), "gateway_node_count")
}

func TestValidate_EnterpriseCredentials(t *testing.T) {
	t.Setenv(EnvLinodeToken, "test-token")

	cfg := validConfig()
	cfg.Enterprise.Enabled = true
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enterprise.username")

	cfg.Enterprise.Username = "user"
	cfg.Enterprise.Password = "pass"
	cfg.Enterprise.Email = "user@example.com"
	require.NoError(t, cfg.Validate())
}

func TestValidate_SliceSubnet(t *testing.T) {
	t.Setenv(EnvLinodeToken, "test-token")

	cfg := validConfig()
	cfg.Slice.Subnet = "not-a-cidr"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slice.subnet")
}

func TestValidate_MaxClustersCoversWorkers(t *testing.T) {
	t.Setenv(EnvLinodeToken, "test-token")

	cfg := validConfig()
	cfg.Slice.MaxClusters = 1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_clusters")
}

func TestApplyDefaults_FillsWorkerSizing(t *testing.T) {
	cfg := &Config{
		Project: "demo",
		Region:  "us-east",
		Workers: map[string]WorkerConfig{
			"wdc": {Region: "us-iad", Frontend: true},
		},
	}
	cfg.ApplyDefaults()

	w := cfg.Workers["wdc"]
	assert.Equal(t, DefaultWorkerNodeType, w.WorkerNodeType)
	assert.Equal(t, DefaultWorkerNodeCount, w.WorkerNodeCount)
	assert.Equal(t, DefaultGatewayNodeType, w.GatewayNodeType)
	assert.Equal(t, DefaultGatewayNodeCount, w.GatewayNodeCount)
	assert.Equal(t, DefaultKubernetesVersion, cfg.KubernetesVersion)
	assert.Equal(t, DefaultSliceSubnet, cfg.Slice.Subnet)
}

func TestProjectNamespace(t *testing.T) {
	t.Parallel()

	cfg := &Config{Project: "bookinfo-project"}
	assert.Equal(t, "kubeslice-bookinfo-project", cfg.ProjectNamespace())
}

func TestSliceName(t *testing.T) {
	t.Parallel()

	cfg := &Config{Application: ApplicationConfig{Namespace: "bookinfo"}}
	assert.Equal(t, "slice-bookinfo", cfg.SliceName())
}

func TestWorkerNames_StableOrder(t *testing.T) {
	t.Parallel()

	cfg := &Config{Workers: map[string]WorkerConfig{
		"zrh": {}, "atl": {}, "fra": {},
	}}
	assert.Equal(t, []string{"atl", "fra", "zrh"}, cfg.WorkerNames())
}

func TestLoad_RoundTrip(t *testing.T) {
	t.Setenv(EnvLinodeToken, "test-token")

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFilename)

	require.NoError(t, Save(Default(), path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultProject, cfg.Project)
	assert.Len(t, cfg.Workers, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFromBytes_MinimalConfig(t *testing.T) {
	t.Setenv(EnvLinodeToken, "test-token")

	data := []byte(`
project: demo
region: us-east
workers:
  wdc:
    region: us-iad
    frontend: true
`)
	cfg, err := LoadFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultControllerNodeCount, cfg.Controller.NodeCount)
	assert.True(t, cfg.Workers["wdc"].Frontend)
}

func TestLoadFromBytes_InvalidYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte("project: [unclosed"))
	require.Error(t, err)
}

func TestFindConfigFile_WalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path := filepath.Join(root, DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte("project: demo\n"), 0o644))

	t.Chdir(nested)

	found, err := FindConfigFile()
	require.NoError(t, err)
	// Resolve symlinks: on macOS TempDir may be under /private.
	wantResolved, _ := filepath.EvalSymlinks(path)
	gotResolved, _ := filepath.EvalSymlinks(found)
	assert.Equal(t, wantResolved, gotResolved)
}
