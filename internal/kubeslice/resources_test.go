package kubeslice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func unmarshalResource(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var obj map[string]any
	require.NoError(t, yaml.Unmarshal(data, &obj))
	return obj
}

func TestProject(t *testing.T) {
	data, err := Project("bookinfo-project", DefaultReadOnlyUsers, DefaultReadWriteUsers)
	require.NoError(t, err)

	obj := unmarshalResource(t, data)
	assert.Equal(t, "controller.kubeslice.io/v1alpha1", obj["apiVersion"])
	assert.Equal(t, "Project", obj["kind"])

	metadata := obj["metadata"].(map[string]any)
	assert.Equal(t, "bookinfo-project", metadata["name"])
	assert.Equal(t, "kubeslice-controller", metadata["namespace"])

	sa := obj["spec"].(map[string]any)["serviceAccount"].(map[string]any)
	assert.Equal(t, []any{"readonly-user1", "readonly-user2"}, sa["readOnly"])
	assert.Equal(t, []any{"readwrite-user1", "readwrite-user2"}, sa["readWrite"])
}

func TestClusterRegistration(t *testing.T) {
	data, err := ClusterRegistration("kubeslice-frontend", "kubeslice-bookinfo-project", "us-east")
	require.NoError(t, err)

	obj := unmarshalResource(t, data)
	assert.Equal(t, "Cluster", obj["kind"])

	metadata := obj["metadata"].(map[string]any)
	assert.Equal(t, "kubeslice-frontend", metadata["name"])
	assert.Equal(t, "kubeslice-bookinfo-project", metadata["namespace"])

	spec := obj["spec"].(map[string]any)
	assert.Equal(t, "eth0", spec["networkInterface"])

	geo := spec["clusterProperty"].(map[string]any)["geoLocation"].(map[string]any)
	assert.Equal(t, "linode", geo["cloudProvider"])
	assert.Equal(t, "us-east", geo["cloudRegion"])
}

func TestSliceConfig(t *testing.T) {
	data, err := SliceConfig(SliceSpec{
		Name:                 "slice-bookinfo",
		ProjectNamespace:     "kubeslice-bookinfo-project",
		Subnet:               "10.11.0.0/16",
		MaxClusters:          10,
		Clusters:             []string{"kubeslice-frontend", "kubeslice-backend"},
		ApplicationNamespace: "bookinfo",
	})
	require.NoError(t, err)

	obj := unmarshalResource(t, data)
	assert.Equal(t, "SliceConfig", obj["kind"])

	metadata := obj["metadata"].(map[string]any)
	assert.Equal(t, "slice-bookinfo", metadata["name"])

	spec := obj["spec"].(map[string]any)
	assert.Equal(t, "10.11.0.0/16", spec["sliceSubnet"])
	assert.Equal(t, float64(10), spec["maxClusters"])
	assert.Equal(t, "Application", spec["sliceType"])
	assert.Equal(t, "Local", spec["sliceIpamType"])

	gateway := spec["sliceGatewayProvider"].(map[string]any)
	assert.Equal(t, "OpenVPN", gateway["sliceGatewayType"])
	assert.Equal(t, "Local", gateway["sliceCaType"])

	// Cluster order is deterministic regardless of input order.
	assert.Equal(t, []any{"kubeslice-backend", "kubeslice-frontend"}, spec["clusters"])

	qos := spec["qosProfileDetails"].(map[string]any)
	assert.Equal(t, "HTB", qos["queueType"])
	assert.Equal(t, float64(1), qos["priority"])
	assert.Equal(t, "BANDWIDTH_CONTROL", qos["tcType"])
	assert.Equal(t, float64(5120), qos["bandwidthCeilingKbps"])
	assert.Equal(t, float64(2560), qos["bandwidthGuaranteedKbps"])
	assert.Equal(t, "AF11", qos["dscpClass"])

	isolation := spec["namespaceIsolationProfile"].(map[string]any)
	assert.Equal(t, false, isolation["isolationEnabled"])

	namespaces := isolation["applicationNamespaces"].([]any)
	require.Len(t, namespaces, 1)
	entry := namespaces[0].(map[string]any)
	assert.Equal(t, "bookinfo", entry["namespace"])
	assert.Equal(t, []any{"*"}, entry["clusters"])
}
