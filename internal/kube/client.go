// Package kube provides Kubernetes operations for cluster configuration:
// server-side apply of manifests, namespace management, and readiness
// waiting. Clients are built from in-memory kubeconfig bytes so nothing is
// written to disk.
package kube

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"
)

// Client provides the Kubernetes operations needed by provisioning.
type Client interface {
	// ApplyManifests applies multi-document YAML using Server-Side Apply.
	// The fieldManager identifies the actor applying the configuration.
	ApplyManifests(ctx context.Context, manifests []byte, fieldManager string) error

	// EnsureNamespace creates or updates a namespace with the given labels.
	EnsureNamespace(ctx context.Context, name string, labels map[string]string) error

	// HasAPIResource checks whether the API server serves the given
	// group/version kind. Used to wait for CRDs installed by Helm charts.
	HasAPIResource(ctx context.Context, groupVersion, kind string) (bool, error)

	// WaitForAPIResource polls until the group/version kind is served.
	WaitForAPIResource(ctx context.Context, groupVersion, kind string) error

	// WaitForFieldValue polls a namespaced object until the dotted status
	// path equals the expected value.
	WaitForFieldValue(ctx context.Context, opts FieldWaitOptions) error

	// GetFieldValue reads a dotted field path once. Empty string when the
	// field is not set. The Expected and Timeout options are ignored.
	GetFieldValue(ctx context.Context, opts FieldWaitOptions) (string, error)

	// RefreshDiscovery refreshes API discovery to pick up newly installed
	// CRDs. Call after installing a chart that ships CRDs.
	RefreshDiscovery(ctx context.Context) error
}

// client implements Client using k8s.io/client-go.
type client struct {
	clientset     kubernetes.Interface
	dynamicClient dynamic.Interface
	mapper        meta.RESTMapper
	kubeconfig    []byte // retained for discovery refresh
}

// NewFromKubeconfig creates a Client from kubeconfig bytes.
func NewFromKubeconfig(kubeconfig []byte) (Client, error) {
	restConfig, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST config from kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes clientset: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	groupResources, err := restmapper.GetAPIGroupResources(discoveryClient)
	if err != nil {
		return nil, fmt.Errorf("failed to get API group resources: %w", err)
	}

	return &client{
		clientset:     clientset,
		dynamicClient: dynamicClient,
		mapper:        restmapper.NewDiscoveryRESTMapper(groupResources),
		kubeconfig:    kubeconfig,
	}, nil
}

// NewFromClients creates a Client from pre-configured clients. Useful for
// testing with fake clients.
func NewFromClients(clientset kubernetes.Interface, dynamicClient dynamic.Interface, mapper meta.RESTMapper) Client {
	return &client{
		clientset:     clientset,
		dynamicClient: dynamicClient,
		mapper:        mapper,
	}
}

// discoveryClient builds a fresh discovery client from the retained
// kubeconfig.
func (c *client) discoveryClient() (discovery.DiscoveryInterface, error) {
	restConfig, err := clientcmd.RESTConfigFromKubeConfig(c.kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST config: %w", err)
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}
	return discoveryClient, nil
}

// RefreshDiscovery rebuilds the REST mapper from live discovery data.
func (c *client) RefreshDiscovery(ctx context.Context) error {
	if len(c.kubeconfig) == 0 {
		// Test clients have no kubeconfig to rediscover from.
		return nil
	}

	discoveryClient, err := c.discoveryClient()
	if err != nil {
		return err
	}

	groupResources, err := restmapper.GetAPIGroupResources(discoveryClient)
	if err != nil {
		return fmt.Errorf("failed to get API group resources: %w", err)
	}

	c.mapper = restmapper.NewDiscoveryRESTMapper(groupResources)
	return nil
}
