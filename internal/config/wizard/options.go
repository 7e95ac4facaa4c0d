// Package wizard implements the interactive configuration interview used by
// `slicectl init`.
package wizard

import "github.com/charmbracelet/huh"

// RegionOption represents a Linode region.
type RegionOption struct {
	Value       string
	Label       string
	Description string
}

// NodeTypeOption represents a Linode instance type for LKE node pools.
type NodeTypeOption struct {
	Value       string
	Label       string
	Description string
}

// Regions contains the Linode regions offered by the wizard.
var Regions = []RegionOption{
	{Value: "us-east", Label: "us-east", Description: "Newark, NJ, USA"},
	{Value: "us-iad", Label: "us-iad", Description: "Washington, DC, USA"},
	{Value: "us-ord", Label: "us-ord", Description: "Chicago, IL, USA"},
	{Value: "eu-central", Label: "eu-central", Description: "Frankfurt, Germany"},
	{Value: "fr-par", Label: "fr-par", Description: "Paris, France"},
	{Value: "ap-south", Label: "ap-south", Description: "Singapore"},
	{Value: "ap-west", Label: "ap-west", Description: "Mumbai, India"},
}

// NodeTypes contains the recommended instance types for LKE pools.
var NodeTypes = []NodeTypeOption{
	{Value: "g6-standard-1", Label: "g6-standard-1", Description: "1 vCPU, 2GB RAM"},
	{Value: "g6-standard-2", Label: "g6-standard-2", Description: "2 vCPU, 4GB RAM"},
	{Value: "g6-standard-4", Label: "g6-standard-4", Description: "4 vCPU, 8GB RAM"},
	{Value: "g6-standard-6", Label: "g6-standard-6", Description: "6 vCPU, 16GB RAM"},
}

// KubernetesVersions contains the LKE versions offered by the wizard.
var KubernetesVersions = []string{"1.31", "1.32"}

// NodeCountOptions contains common node pool sizes.
var NodeCountOptions = []huh.Option[int]{
	huh.NewOption("1", 1),
	huh.NewOption("2", 2),
	huh.NewOption("3 (recommended)", 3),
	huh.NewOption("5", 5),
}

// WorkerCountOptions contains how many worker clusters to configure.
var WorkerCountOptions = []huh.Option[int]{
	huh.NewOption("1", 1),
	huh.NewOption("2 (frontend + backend)", 2),
	huh.NewOption("3", 3),
}

// RegionsToOptions converts the region list to huh select options.
func RegionsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(Regions))
	for _, r := range Regions {
		opts = append(opts, huh.NewOption(r.Label+" - "+r.Description, r.Value))
	}
	return opts
}

// NodeTypesToOptions converts the node type list to huh select options.
func NodeTypesToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(NodeTypes))
	for _, nt := range NodeTypes {
		opts = append(opts, huh.NewOption(nt.Label+" - "+nt.Description, nt.Value))
	}
	return opts
}

// VersionsToOptions converts the version list to huh select options.
func VersionsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(KubernetesVersions))
	for _, v := range KubernetesVersions {
		opts = append(opts, huh.NewOption(v, v))
	}
	return opts
}
