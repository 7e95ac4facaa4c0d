// Package handlers implements the business logic for CLI commands.
//
// Handlers are framework-agnostic and tested independently of cobra. The
// factory variables below are replaced in tests for dependency injection.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sliceops/slicectl/internal/config"
	"github.com/sliceops/slicectl/internal/orchestration"
	"github.com/sliceops/slicectl/internal/platform/linode"
)

// Reconciler interface for testing - matches orchestration.Reconciler.
type Reconciler interface {
	Apply(ctx context.Context) error
	Destroy(ctx context.Context) error
}

// Factory function variables - replaced in tests for dependency injection.
var (
	// newClusterClient creates an LKE client.
	newClusterClient = func(token string) linode.ClusterManager {
		return linode.NewRealClient(token)
	}

	// newReconciler creates a deployment reconciler.
	newReconciler = func(cfg *config.Config, clusters linode.ClusterManager) Reconciler {
		return orchestration.NewReconciler(cfg, clusters)
	}

	// loadConfigFile loads config from a file.
	loadConfigFile = config.Load

	// findConfigFile locates slicectl.yaml in the directory tree.
	findConfigFile = config.FindConfigFile
)

// Apply provisions the full KubeSlice topology: the controller cluster, the
// worker clusters, registration, the slice, and the sample application.
// Re-running it converges an existing deployment toward the configuration.
func Apply(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Applying deployment for project: %s", cfg.Project)

	clusters := newClusterClient(os.Getenv(config.EnvLinodeToken))

	if err := newReconciler(cfg, clusters).Apply(ctx); err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}

	printApplySuccess(cfg)
	return nil
}

// loadConfig loads and validates the deployment configuration. If
// configPath is empty, slicectl.yaml is searched for from the current
// directory upward.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'slicectl init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// printApplySuccess outputs the completion message and next steps.
func printApplySuccess(cfg *config.Config) {
	fmt.Printf("\nDeployment complete!\n\n")
	fmt.Printf("  Project:  %s\n", cfg.Project)
	fmt.Printf("  Slice:    %s\n", cfg.SliceName())
	fmt.Printf("  Clusters: controller + %d workers\n", len(cfg.Workers))
	fmt.Printf("\nFetch kubeconfigs from the Linode Cloud Manager or via linode-cli:\n")
	fmt.Printf("  linode-cli lke clusters-list\n")
	if cfg.Application.Enabled {
		fmt.Printf("\nThe sample application is rolling out in namespace %q on the worker clusters.\n", cfg.Application.Namespace)
	}
}
