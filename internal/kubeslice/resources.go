package kubeslice

import (
	"fmt"
	"sort"

	"sigs.k8s.io/yaml"
)

// Default service accounts created in every project.
var (
	DefaultReadOnlyUsers  = []string{"readonly-user1", "readonly-user2"}
	DefaultReadWriteUsers = []string{"readwrite-user1", "readwrite-user2"}
)

// Project renders a Project custom resource. The controller reconciles it
// into a kubeslice-<name> namespace holding per-worker credentials.
func Project(name string, readOnly, readWrite []string) ([]byte, error) {
	obj := map[string]any{
		"apiVersion": ControllerGroupVersion,
		"kind":       "Project",
		"metadata": map[string]any{
			"name":      name,
			"namespace": "kubeslice-controller",
		},
		"spec": map[string]any{
			"serviceAccount": map[string]any{
				"readOnly":  readOnly,
				"readWrite": readWrite,
			},
		},
	}

	data, err := yaml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to render project %s: %w", name, err)
	}
	return data, nil
}

// ClusterRegistration renders a Cluster custom resource registering a
// worker with the controller. It lives in the project namespace; the
// controller reports the worker's health on its status once the worker
// operator connects.
func ClusterRegistration(clusterName, projectNamespace, region string) ([]byte, error) {
	obj := map[string]any{
		"apiVersion": ControllerGroupVersion,
		"kind":       "Cluster",
		"metadata": map[string]any{
			"name":      clusterName,
			"namespace": projectNamespace,
		},
		"spec": map[string]any{
			"networkInterface": "eth0",
			"clusterProperty": map[string]any{
				"geoLocation": map[string]any{
					"cloudProvider": "linode",
					"cloudRegion":   region,
				},
			},
		},
	}

	data, err := yaml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to render cluster registration %s: %w", clusterName, err)
	}
	return data, nil
}

// SliceSpec describes the slice connecting the registered clusters.
type SliceSpec struct {
	Name             string
	ProjectNamespace string

	// Subnet is the slice overlay CIDR, split across clusters by the IPAM.
	Subnet      string
	MaxClusters int

	// Clusters are the registered cluster names joined to the slice.
	Clusters []string

	// ApplicationNamespace is onboarded onto the slice on every cluster.
	ApplicationNamespace string
}

// SliceConfig renders a SliceConfig custom resource: an OpenVPN-gated
// application slice with local CA and IPAM and an HTB QOS profile.
func SliceConfig(spec SliceSpec) ([]byte, error) {
	clusters := append([]string(nil), spec.Clusters...)
	sort.Strings(clusters)

	obj := map[string]any{
		"apiVersion": ControllerGroupVersion,
		"kind":       "SliceConfig",
		"metadata": map[string]any{
			"name":      spec.Name,
			"namespace": spec.ProjectNamespace,
		},
		"spec": map[string]any{
			"sliceSubnet": spec.Subnet,
			"maxClusters": spec.MaxClusters,
			"sliceType":   "Application",
			"sliceGatewayProvider": map[string]any{
				"sliceGatewayType": "OpenVPN",
				"sliceCaType":      "Local",
			},
			"sliceIpamType": "Local",
			"clusters":      clusters,
			"qosProfileDetails": map[string]any{
				"queueType":               "HTB",
				"priority":                1,
				"tcType":                  "BANDWIDTH_CONTROL",
				"bandwidthCeilingKbps":    5120,
				"bandwidthGuaranteedKbps": 2560,
				"dscpClass":               "AF11",
			},
			"namespaceIsolationProfile": map[string]any{
				"applicationNamespaces": []any{
					map[string]any{
						"namespace": spec.ApplicationNamespace,
						"clusters":  []string{"*"},
					},
				},
				"isolationEnabled": false,
			},
		},
	}

	data, err := yaml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to render slice config %s: %w", spec.Name, err)
	}
	return data, nil
}
