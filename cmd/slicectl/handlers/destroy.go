package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sliceops/slicectl/internal/config"
)

// Destroy deletes every cluster of the deployment: workers first, then the
// controller. Clusters are found by tag, so no local state is needed.
func Destroy(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Destroying deployment for project: %s", cfg.Project)

	clusters := newClusterClient(os.Getenv(config.EnvLinodeToken))

	if err := newReconciler(cfg, clusters).Destroy(ctx); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	log.Printf("Deployment for project %s destroyed", cfg.Project)
	return nil
}
