// Package config defines the slicectl configuration schema: one controller
// cluster, a set of named worker clusters, and the KubeSlice project and
// sample application settings that tie them together.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sort"
	"strings"
)

// EnvLinodeToken is the environment variable holding the Linode API token.
const EnvLinodeToken = "LINODE_TOKEN"

// Config is the top-level slicectl configuration document.
type Config struct {
	// Project is the KubeSlice project name. Worker registrations and slice
	// configuration live in the project namespace "kubeslice-<project>".
	Project string `yaml:"project"`

	// Region is the Linode region for the controller cluster.
	Region string `yaml:"region"`

	// KubernetesVersion is the LKE version for all clusters.
	KubernetesVersion string `yaml:"kubernetes_version"`

	// Controller sizes the controller cluster's node pool.
	Controller ControllerConfig `yaml:"controller"`

	// Workers maps worker cluster names to their configuration.
	Workers map[string]WorkerConfig `yaml:"workers"`

	// Enterprise enables the enterprise KubeSlice distribution.
	Enterprise EnterpriseConfig `yaml:"enterprise"`

	// Application configures the bookinfo sample deployment.
	Application ApplicationConfig `yaml:"application"`

	// Slice configures the slice spanning the worker clusters.
	Slice SliceConfig `yaml:"slice"`
}

// ControllerConfig sizes the controller cluster node pool.
type ControllerConfig struct {
	NodeType  string `yaml:"node_type"`
	NodeCount int    `yaml:"node_count"`
}

// WorkerConfig describes one worker cluster. Each worker gets a general
// workload pool and a gateway pool labelled for KubeSlice VPN gateways.
type WorkerConfig struct {
	Region string `yaml:"region"`

	WorkerNodeType  string `yaml:"worker_node_type"`
	WorkerNodeCount int    `yaml:"worker_node_count"`

	GatewayNodeType  string `yaml:"gateway_node_type"`
	GatewayNodeCount int    `yaml:"gateway_node_count"`

	// Frontend places the bookinfo productpage on this cluster.
	Frontend bool `yaml:"frontend"`

	// Backend places the bookinfo backend services (details, ratings,
	// reviews) on this cluster and exports them over the slice.
	Backend bool `yaml:"backend"`
}

// EnterpriseConfig holds the enterprise distribution settings. When enabled,
// charts are pulled from the enterprise repository and the registry
// credentials are injected as image pull secrets.
type EnterpriseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Email    string `yaml:"email,omitempty"`
}

// ApplicationConfig configures the bookinfo sample application.
type ApplicationConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// SliceConfig configures the slice connecting the worker clusters.
type SliceConfig struct {
	// Subnet is the slice overlay CIDR.
	Subnet string `yaml:"subnet"`

	// MaxClusters caps how many clusters can join the slice.
	MaxClusters int `yaml:"max_clusters"`
}

// ProjectNamespace returns the controller namespace holding the project's
// worker registrations and slice configuration.
func (c *Config) ProjectNamespace() string {
	return "kubeslice-" + c.Project
}

// SliceName returns the slice name derived from the application namespace.
func (c *Config) SliceName() string {
	return "slice-" + c.Application.Namespace
}

// WorkerNames returns the worker cluster names in stable order.
func (c *Config) WorkerNames() []string {
	names := make([]string, 0, len(c.Workers))
	for name := range c.Workers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the configuration for structural errors. The Linode token
// is read from the environment, never from the config file.
func (c *Config) Validate() error {
	var errs []error

	if c.Project == "" {
		errs = append(errs, errors.New("project is required"))
	} else if !isValidDNSName(c.Project) {
		errs = append(errs, errors.New("project must be DNS-safe (lowercase alphanumeric and hyphens)"))
	}

	if c.Region == "" {
		errs = append(errs, errors.New("region is required"))
	}
	if c.KubernetesVersion == "" {
		errs = append(errs, errors.New("kubernetes_version is required"))
	}

	if c.Controller.NodeCount < 1 {
		errs = append(errs, errors.New("controller.node_count must be at least 1"))
	}
	if c.Controller.NodeType == "" {
		errs = append(errs, errors.New("controller.node_type is required"))
	}

	if len(c.Workers) == 0 {
		errs = append(errs, errors.New("at least one worker cluster is required"))
	}
	for _, name := range c.WorkerNames() {
		w := c.Workers[name]
		if !isValidDNSName(name) {
			errs = append(errs, fmt.Errorf("worker %q: name must be DNS-safe", name))
		}
		if w.Region == "" {
			errs = append(errs, fmt.Errorf("worker %q: region is required", name))
		}
		if w.WorkerNodeCount < 1 {
			errs = append(errs, fmt.Errorf("worker %q: worker_node_count must be at least 1", name))
		}
		if w.GatewayNodeCount < 1 {
			errs = append(errs, fmt.Errorf("worker %q: gateway_node_count must be at least 1", name))
		}
	}

	if c.Enterprise.Enabled {
		if c.Enterprise.Username == "" || c.Enterprise.Password == "" || c.Enterprise.Email == "" {
			errs = append(errs, errors.New("enterprise.username, enterprise.password, and enterprise.email are required when enterprise is enabled"))
		}
	}

	if c.Application.Enabled && c.Application.Namespace == "" {
		errs = append(errs, errors.New("application.namespace is required when application is enabled"))
	}

	if _, _, err := net.ParseCIDR(c.Slice.Subnet); err != nil {
		errs = append(errs, fmt.Errorf("slice.subnet must be a valid CIDR: %w", err))
	}
	if c.Slice.MaxClusters < len(c.Workers) {
		errs = append(errs, errors.New("slice.max_clusters must cover all configured workers"))
	}

	if os.Getenv(EnvLinodeToken) == "" {
		errs = append(errs, fmt.Errorf("%s environment variable is required", EnvLinodeToken))
	}

	return errors.Join(errs...)
}

// isValidDNSName checks if a string is a valid DNS label: lowercase
// alphanumeric with hyphens, starts with a letter, max 63 chars.
func isValidDNSName(name string) bool {
	if len(name) == 0 || len(name) > 63 {
		return false
	}
	if name[0] < 'a' || name[0] > 'z' {
		return false
	}
	last := name[len(name)-1]
	if (last < 'a' || last > 'z') && (last < '0' || last > '9') {
		return false
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return !strings.Contains(name, "--")
}
