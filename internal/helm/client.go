package helm

import (
	"context"
	"fmt"
	"os"
	"time"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/release"
	"helm.sh/helm/v3/pkg/repo"
)

const (
	installTimeout   = 10 * time.Minute
	uninstallTimeout = 5 * time.Minute
)

// Client installs charts into a single namespace of a single cluster.
// Create one per chart namespace.
type Client struct {
	kubeconfig   []byte
	namespace    string
	actionConfig *action.Configuration
}

// NewClient creates a Helm client from kubeconfig bytes scoped to a
// namespace.
func NewClient(kubeconfig []byte, namespace string) (*Client, error) {
	c := &Client{
		kubeconfig: kubeconfig,
		namespace:  namespace,
	}

	actionConfig := new(action.Configuration)
	restGetter := NewInMemoryRESTClientGetter(kubeconfig, namespace)

	// No-op logger keeps helm's debug chatter out of our output.
	if err := actionConfig.Init(restGetter, namespace, "secret", func(format string, v ...interface{}) {}); err != nil {
		return nil, fmt.Errorf("failed to initialize helm action config: %w", err)
	}

	c.actionConfig = actionConfig
	return c, nil
}

// InstallOrUpgrade installs the chart or upgrades it if a release already
// exists, which makes repeated apply runs idempotent.
func (c *Client) InstallOrUpgrade(ctx context.Context, spec ChartSpec, values Values) (*release.Release, error) {
	exists, err := c.ReleaseExists(spec.ReleaseName)
	if err != nil {
		return nil, err
	}
	if exists {
		return c.upgrade(ctx, spec, values)
	}
	return c.install(ctx, spec, values)
}

func (c *Client) install(ctx context.Context, spec ChartSpec, values Values) (*release.Release, error) {
	installClient := action.NewInstall(c.actionConfig)
	installClient.ReleaseName = spec.ReleaseName
	installClient.Namespace = c.namespace
	installClient.CreateNamespace = true
	installClient.Version = spec.Version
	installClient.Wait = true
	installClient.Timeout = installTimeout

	loaded, err := c.loadChart(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart: %w", err)
	}

	return installClient.RunWithContext(ctx, loaded, values)
}

func (c *Client) upgrade(ctx context.Context, spec ChartSpec, values Values) (*release.Release, error) {
	upgradeClient := action.NewUpgrade(c.actionConfig)
	upgradeClient.Namespace = c.namespace
	upgradeClient.Version = spec.Version
	upgradeClient.Wait = true
	upgradeClient.Timeout = installTimeout
	upgradeClient.ReuseValues = false

	loaded, err := c.loadChart(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart: %w", err)
	}

	return upgradeClient.RunWithContext(ctx, spec.ReleaseName, loaded, values)
}

// loadChart downloads the chart archive from its repository and loads it.
// The archive is removed after loading.
func (c *Client) loadChart(spec ChartSpec) (*chart.Chart, error) {
	settings := cli.New()

	chartPath, err := repo.FindChartInRepoURL(
		spec.Repository,
		spec.Name,
		spec.Version,
		"", "", "",
		getter.All(settings),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find chart %s in repo %s: %w", spec.Name, spec.Repository, err)
	}

	defer func() {
		_ = os.Remove(chartPath)
	}()

	return loader.Load(chartPath)
}

// Uninstall removes a Helm release. Missing releases are not an error.
func (c *Client) Uninstall(releaseName string) error {
	exists, err := c.ReleaseExists(releaseName)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	uninstallClient := action.NewUninstall(c.actionConfig)
	uninstallClient.Wait = true
	uninstallClient.Timeout = uninstallTimeout

	_, err = uninstallClient.Run(releaseName)
	return err
}

// ReleaseExists checks whether a release with the given name exists.
func (c *Client) ReleaseExists(releaseName string) (bool, error) {
	histClient := action.NewHistory(c.actionConfig)
	histClient.Max = 1
	if _, err := histClient.Run(releaseName); err != nil {
		return false, nil
	}
	return true, nil
}
