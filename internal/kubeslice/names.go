// Package kubeslice builds the Helm values and custom resources the
// KubeSlice control plane needs: controller and worker chart values,
// project and cluster registration objects, and the slice configuration
// that spans the worker fleet.
package kubeslice

import "k8s.io/apimachinery/pkg/runtime/schema"

// ControllerClusterLabel is the LKE label of the controller cluster.
const ControllerClusterLabel = "kubeslice-controller"

// Tags applied to LKE clusters so destroy can find them without state.
const (
	ControllerTag = "app:kubeslice-controller"
	WorkerTag     = "app:kubeslice-worker"
)

// GatewayNodeLabelKey and GatewayNodeLabelValue mark the node pool that
// hosts slice gateway pods.
const (
	GatewayNodeLabelKey   = "kubeslice.io/node-type"
	GatewayNodeLabelValue = "gateway"
)

// API groups served by the KubeSlice controller.
const (
	ControllerGroupVersion = "controller.kubeslice.io/v1alpha1"
	NetworkingGroupVersion = "networking.kubeslice.io/v1beta1"
)

// ClustersResource is the registered-cluster resource on the controller,
// polled for cluster health during registration.
var ClustersResource = schema.GroupVersionResource{
	Group:    "controller.kubeslice.io",
	Version:  "v1alpha1",
	Resource: "clusters",
}

// WorkerClusterName returns the registered name for a worker, shared by the
// LKE cluster label, the worker chart values, and the Cluster registration.
func WorkerClusterName(worker string) string {
	return "kubeslice-" + worker
}
