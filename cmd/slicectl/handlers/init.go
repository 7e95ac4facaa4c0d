package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/sliceops/slicectl/internal/config"
	"github.com/sliceops/slicectl/internal/config/wizard"
)

// Factory function variables for init - replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = wizard.Run

	// saveConfig writes the config to a file.
	saveConfig = config.Save

	// stdinIsTerminal reports whether stdin is an interactive terminal.
	stdinIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
)

// Init creates a deployment configuration. On a terminal it runs the
// interactive wizard; otherwise, or when nonInteractive is set, it writes
// the defaults for editing.
func Init(ctx context.Context, outputPath string, nonInteractive bool) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	var cfg *config.Config
	if !nonInteractive && stdinIsTerminal() {
		printWelcome()

		var err error
		cfg, err = runWizard(ctx)
		if err != nil {
			return fmt.Errorf("wizard canceled: %w", err)
		}
	} else {
		cfg = config.Default()
	}

	if err := saveConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println("slicectl - KubeSlice on Linode Kubernetes Engine")
	fmt.Println("================================================")
	fmt.Println()
	fmt.Println("This wizard creates a deployment configuration with sensible defaults.")
	fmt.Println()
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Deployment Summary")
	fmt.Println("------------------")
	fmt.Printf("  Project:    %s\n", cfg.Project)
	fmt.Printf("  Controller: %s, %d x %s\n", cfg.Region, cfg.Controller.NodeCount, cfg.Controller.NodeType)
	for _, name := range cfg.WorkerNames() {
		worker := cfg.Workers[name]
		role := workerRole(worker)
		fmt.Printf("  Worker %-10s %s, %d x %s + %d gateway%s\n",
			name+":", worker.Region, worker.WorkerNodeCount, worker.WorkerNodeType, worker.GatewayNodeCount, role)
	}
	if cfg.Enterprise.Enabled {
		fmt.Println("  Edition:    enterprise")
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Set your Linode API token:")
	fmt.Printf("     export %s=...\n", config.EnvLinodeToken)
	fmt.Println("  2. Provision the deployment:")
	fmt.Println("     slicectl apply")
}

func workerRole(worker config.WorkerConfig) string {
	switch {
	case worker.Frontend && worker.Backend:
		return " (frontend, backend)"
	case worker.Frontend:
		return " (frontend)"
	case worker.Backend:
		return " (backend)"
	}
	return ""
}
