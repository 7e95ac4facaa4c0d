package handlers

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/linode/linodego"

	"github.com/sliceops/slicectl/internal/config"
	"github.com/sliceops/slicectl/internal/kube"
	"github.com/sliceops/slicectl/internal/kubeslice"
	"github.com/sliceops/slicectl/internal/platform/linode"
)

// newKubeClient builds a Kubernetes client from kubeconfig bytes. Replaced
// in tests.
var newKubeClient = kube.NewFromKubeconfig

var (
	statusColorGreen = lipgloss.Color("#22c55e")
	statusColorAmber = lipgloss.Color("#f59e0b")
	statusColorBlue  = lipgloss.Color("#3b82f6")
	statusColorDim   = lipgloss.Color("#6b7280")
	statusColorWhite = lipgloss.Color("#f9fafb")
)

var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(statusColorWhite)

	statusSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(statusColorBlue)

	statusDimStyle = lipgloss.NewStyle().
			Foreground(statusColorDim)

	statusReadyStyle = lipgloss.NewStyle().
				Foreground(statusColorGreen)

	statusPendingStyle = lipgloss.NewStyle().
				Foreground(statusColorAmber)
)

// Status reports the deployment's clusters as the Linode API sees them.
func Status(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	clusters := newClusterClient(os.Getenv(config.EnvLinodeToken))

	controllers, err := clusters.ListClustersByTag(ctx, kubeslice.ControllerTag)
	if err != nil {
		return fmt.Errorf("failed to list controller clusters: %w", err)
	}

	workers, err := clusters.ListClustersByTag(ctx, kubeslice.WorkerTag)
	if err != nil {
		return fmt.Errorf("failed to list worker clusters: %w", err)
	}

	health := registrationHealth(ctx, cfg, clusters, controllers)

	fmt.Print(renderStatus(cfg, controllers, workers, health))
	return nil
}

// registrationHealth reads each worker's registration health from the
// controller cluster. Returns nil when the controller is not reachable;
// status degrades to the cluster listing alone.
func registrationHealth(ctx context.Context, cfg *config.Config, clusters linode.ClusterManager, controllers []linodego.LKECluster) map[string]string {
	if len(controllers) != 1 || controllers[0].Status != linodego.LKEClusterReady {
		return nil
	}

	kubeconfig, err := clusters.GetKubeconfig(ctx, controllers[0].ID)
	if err != nil {
		return nil
	}
	kubeClient, err := newKubeClient(kubeconfig)
	if err != nil {
		return nil
	}

	health := make(map[string]string, len(cfg.Workers))
	for _, name := range cfg.WorkerNames() {
		clusterName := kubeslice.WorkerClusterName(name)
		value, err := kubeClient.GetFieldValue(ctx, kube.FieldWaitOptions{
			Resource:  kubeslice.ClustersResource,
			Namespace: cfg.ProjectNamespace(),
			Name:      clusterName,
			FieldPath: "status.clusterHealth.clusterHealthStatus",
		})
		if err != nil || value == "" {
			value = "Unknown"
		}
		health[clusterName] = value
	}
	return health
}

// renderStatus produces a lipgloss-styled status summary string.
func renderStatus(cfg *config.Config, controllers, workers []linodego.LKECluster, health map[string]string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(statusTitleStyle.Render(fmt.Sprintf("  slicectl status: %s", cfg.Project)))
	b.WriteString("\n")
	b.WriteString(statusDimStyle.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n\n")

	renderClusterSection(&b, "Controller", controllers)
	b.WriteString("\n")
	renderClusterSection(&b, "Workers", workers)

	if len(health) > 0 {
		b.WriteString("\n")
		renderRegistrationSection(&b, health)
	}

	if len(controllers) == 0 && len(workers) == 0 {
		b.WriteString("\n")
		b.WriteString(statusDimStyle.Render("  No clusters found. Run 'slicectl apply' to provision."))
		b.WriteString("\n")
	}

	return b.String()
}

func renderClusterSection(b *strings.Builder, title string, clusters []linodego.LKECluster) {
	b.WriteString(statusSectionStyle.Render("  " + title))
	b.WriteString("\n")
	b.WriteString(statusDimStyle.Render("  " + strings.Repeat("─", 52)))
	b.WriteString("\n")

	if len(clusters) == 0 {
		b.WriteString(statusDimStyle.Render("  (none)"))
		b.WriteString("\n")
		return
	}

	b.WriteString(statusDimStyle.Render(fmt.Sprintf("  %-26s %-12s %-8s %6s", "Cluster", "Region", "Status", "ID")))
	b.WriteString("\n")

	sorted := append([]linodego.LKECluster(nil), clusters...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Label < sorted[j].Label })

	for _, cluster := range sorted {
		status := string(cluster.Status)
		style := statusPendingStyle
		if cluster.Status == linodego.LKEClusterReady {
			style = statusReadyStyle
		}
		b.WriteString(fmt.Sprintf("  %-26s %-12s %s %6d\n",
			cluster.Label, cluster.Region, style.Render(fmt.Sprintf("%-8s", status)), cluster.ID))
	}
}

func renderRegistrationSection(b *strings.Builder, health map[string]string) {
	b.WriteString(statusSectionStyle.Render("  Registrations"))
	b.WriteString("\n")
	b.WriteString(statusDimStyle.Render("  " + strings.Repeat("─", 52)))
	b.WriteString("\n")

	names := make([]string, 0, len(health))
	for name := range health {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		style := statusPendingStyle
		if health[name] == "Normal" {
			style = statusReadyStyle
		}
		b.WriteString(fmt.Sprintf("  %-26s %s\n", name, style.Render(health[name])))
	}
}
