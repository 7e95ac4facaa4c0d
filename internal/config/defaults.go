package config

// Defaults matching the sizing the project has always shipped with.
const (
	DefaultKubernetesVersion = "1.31"

	DefaultControllerNodeType  = "g6-standard-1"
	DefaultControllerNodeCount = 3

	DefaultWorkerNodeType  = "g6-standard-2"
	DefaultWorkerNodeCount = 3

	DefaultGatewayNodeType  = "g6-standard-2"
	DefaultGatewayNodeCount = 1

	DefaultSliceSubnet        = "10.11.0.0/16"
	DefaultSliceMaxClusters   = 10
	DefaultApplicationNS      = "bookinfo"
	DefaultProject            = "bookinfo-project"
	DefaultControllerRegion   = "us-east"
)

// Default returns a configuration with two workers split across regions,
// one hosting the bookinfo frontend and one the backend.
func Default() *Config {
	return &Config{
		Project:           DefaultProject,
		Region:            DefaultControllerRegion,
		KubernetesVersion: DefaultKubernetesVersion,
		Controller: ControllerConfig{
			NodeType:  DefaultControllerNodeType,
			NodeCount: DefaultControllerNodeCount,
		},
		Workers: map[string]WorkerConfig{
			"frontend": {
				Region:           "us-east",
				WorkerNodeType:   DefaultWorkerNodeType,
				WorkerNodeCount:  DefaultWorkerNodeCount,
				GatewayNodeType:  DefaultGatewayNodeType,
				GatewayNodeCount: DefaultGatewayNodeCount,
				Frontend:         true,
			},
			"backend": {
				Region:           "eu-central",
				WorkerNodeType:   DefaultWorkerNodeType,
				WorkerNodeCount:  DefaultWorkerNodeCount,
				GatewayNodeType:  DefaultGatewayNodeType,
				GatewayNodeCount: DefaultGatewayNodeCount,
				Backend:          true,
			},
		},
		Application: ApplicationConfig{
			Enabled:   true,
			Namespace: DefaultApplicationNS,
		},
		Slice: SliceConfig{
			Subnet:      DefaultSliceSubnet,
			MaxClusters: DefaultSliceMaxClusters,
		},
	}
}

// ApplyDefaults fills unset fields in-place so a minimal config document
// (project, region, workers) is enough to get a working topology.
func (c *Config) ApplyDefaults() {
	if c.KubernetesVersion == "" {
		c.KubernetesVersion = DefaultKubernetesVersion
	}
	if c.Controller.NodeType == "" {
		c.Controller.NodeType = DefaultControllerNodeType
	}
	if c.Controller.NodeCount == 0 {
		c.Controller.NodeCount = DefaultControllerNodeCount
	}
	for name, w := range c.Workers {
		if w.WorkerNodeType == "" {
			w.WorkerNodeType = DefaultWorkerNodeType
		}
		if w.WorkerNodeCount == 0 {
			w.WorkerNodeCount = DefaultWorkerNodeCount
		}
		if w.GatewayNodeType == "" {
			w.GatewayNodeType = DefaultGatewayNodeType
		}
		if w.GatewayNodeCount == 0 {
			w.GatewayNodeCount = DefaultGatewayNodeCount
		}
		c.Workers[name] = w
	}
	if c.Application.Namespace == "" {
		c.Application.Namespace = DefaultApplicationNS
	}
	if c.Slice.Subnet == "" {
		c.Slice.Subnet = DefaultSliceSubnet
	}
	if c.Slice.MaxClusters == 0 {
		c.Slice.MaxClusters = DefaultSliceMaxClusters
	}
}
