package wizard

import (
	"context"
	"fmt"
	"regexp"

	"github.com/charmbracelet/huh"

	"github.com/sliceops/slicectl/internal/config"
)

// nameRegex validates project and worker names: 1-32 lowercase alphanumeric
// with hyphens, starting with a letter.
var nameRegex = regexp.MustCompile(`^[a-z](?:[a-z0-9-]{0,30}[a-z0-9])?$`)

// Run walks the user through building a slicectl configuration.
func Run(ctx context.Context) (*config.Config, error) {
	cfg := config.Default()
	cfg.Workers = map[string]config.WorkerConfig{}

	if err := runProjectGroup(ctx, cfg); err != nil {
		return nil, err
	}

	workerCount := 2
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Worker Clusters").
				Description("How many worker clusters should join the slice?").
				Options(WorkerCountOptions...).
				Value(&workerCount),
		).Title("Topology"),
	).RunWithContext(ctx); err != nil {
		return nil, err
	}

	for i := 0; i < workerCount; i++ {
		name, worker, err := runWorkerGroup(ctx, i, workerCount)
		if err != nil {
			return nil, err
		}
		if _, exists := cfg.Workers[name]; exists {
			return nil, fmt.Errorf("duplicate worker cluster name %q", name)
		}
		cfg.Workers[name] = worker
	}

	if err := runEnterpriseGroup(ctx, cfg); err != nil {
		return nil, err
	}

	if err := runApplicationGroup(ctx, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runProjectGroup prompts for the project name and controller placement.
func runProjectGroup(ctx context.Context, cfg *config.Config) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Description("KubeSlice project, 1-32 lowercase alphanumeric or hyphens").
				Placeholder(config.DefaultProject).
				Value(&cfg.Project).
				Validate(validateName),
			huh.NewSelect[string]().
				Title("Controller Region").
				Description("Linode region for the controller cluster").
				Options(RegionsToOptions()...).
				Value(&cfg.Region),
			huh.NewSelect[string]().
				Title("Kubernetes Version").
				Options(VersionsToOptions()...).
				Value(&cfg.KubernetesVersion),
			huh.NewSelect[int]().
				Title("Controller Node Count").
				Options(NodeCountOptions...).
				Value(&cfg.Controller.NodeCount),
		).Title("Controller Cluster"),
	).RunWithContext(ctx)
}

// runWorkerGroup prompts for one worker cluster's configuration.
func runWorkerGroup(ctx context.Context, index, total int) (string, config.WorkerConfig, error) {
	worker := config.WorkerConfig{
		WorkerNodeType:   config.DefaultWorkerNodeType,
		WorkerNodeCount:  config.DefaultWorkerNodeCount,
		GatewayNodeType:  config.DefaultGatewayNodeType,
		GatewayNodeCount: config.DefaultGatewayNodeCount,
	}
	name := ""

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster Name").
				Description("Short name for this worker cluster").
				Placeholder(fmt.Sprintf("worker-%d", index+1)).
				Value(&name).
				Validate(validateName),
			huh.NewSelect[string]().
				Title("Region").
				Options(RegionsToOptions()...).
				Value(&worker.Region),
			huh.NewSelect[string]().
				Title("Worker Node Type").
				Options(NodeTypesToOptions()...).
				Value(&worker.WorkerNodeType),
			huh.NewSelect[int]().
				Title("Worker Node Count").
				Options(NodeCountOptions...).
				Value(&worker.WorkerNodeCount),
			huh.NewConfirm().
				Title("Host the application frontend?").
				Value(&worker.Frontend),
			huh.NewConfirm().
				Title("Host the application backend?").
				Value(&worker.Backend),
		).Title(workerGroupTitle(index, total)),
	).RunWithContext(ctx)

	return name, worker, err
}

// workerGroupTitle labels a worker's form group with its position in the
// chosen worker count.
func workerGroupTitle(index, total int) string {
	return fmt.Sprintf("Worker Cluster %d of %d", index+1, total)
}

// runEnterpriseGroup prompts for the enterprise distribution toggle and
// registry credentials.
func runEnterpriseGroup(ctx context.Context, cfg *config.Config) error {
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use the enterprise KubeSlice distribution?").
				Description("Requires registry credentials; enables the UI and Prometheus").
				Value(&cfg.Enterprise.Enabled),
		).Title("Distribution"),
	).RunWithContext(ctx); err != nil {
		return err
	}

	if !cfg.Enterprise.Enabled {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Registry Username").
				Value(&cfg.Enterprise.Username),
			huh.NewInput().
				Title("Registry Password").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Enterprise.Password),
			huh.NewInput().
				Title("Email").
				Value(&cfg.Enterprise.Email),
		).Title("Enterprise Credentials"),
	).RunWithContext(ctx)
}

// runApplicationGroup prompts for the sample application deployment.
func runApplicationGroup(ctx context.Context, cfg *config.Config) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Deploy the bookinfo sample application?").
				Description("Frontend and backend are split across worker clusters").
				Value(&cfg.Application.Enabled),
		).Title("Sample Application"),
	).RunWithContext(ctx)
}

// validateName validates project and cluster names.
func validateName(s string) error {
	if !nameRegex.MatchString(s) {
		return fmt.Errorf("must be 1-32 lowercase alphanumeric characters or hyphens, starting with a letter")
	}
	return nil
}
