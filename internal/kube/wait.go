package kube

import (
	"context"
	"fmt"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/sliceops/slicectl/internal/util/retry"
)

// Default polling cadence for API resource and field waits. CRDs appear
// within seconds of a chart install; registration health can take minutes
// while slice gateways come up.
const (
	apiResourcePollInterval = 5 * time.Second
	apiResourceWaitTimeout  = 5 * time.Minute

	fieldPollInterval = 10 * time.Second
)

// FieldWaitOptions identifies an object and the status field to watch.
type FieldWaitOptions struct {
	Resource  schema.GroupVersionResource
	Namespace string
	Name      string

	// FieldPath is a dotted path into the object, e.g.
	// "status.clusterHealth.clusterHealthStatus".
	FieldPath string

	// Expected is the value FieldPath must reach.
	Expected string

	Timeout time.Duration
}

// HasAPIResource checks whether the API server currently serves the given
// group/version and kind.
func (c *client) HasAPIResource(ctx context.Context, groupVersion, kind string) (bool, error) {
	if len(c.kubeconfig) == 0 {
		// Fake clients have no discovery endpoint worth querying.
		return true, nil
	}

	discoveryClient, err := c.discoveryClient()
	if err != nil {
		return false, err
	}

	resources, err := discoveryClient.ServerResourcesForGroupVersion(groupVersion)
	if err != nil {
		return false, nil // group not served yet
	}

	for _, r := range resources.APIResources {
		if r.Kind == kind {
			return true, nil
		}
	}
	return false, nil
}

// WaitForAPIResource polls discovery until the group/version kind is
// served. Used after installing charts whose CRDs must be established
// before dependent custom resources can be created.
func (c *client) WaitForAPIResource(ctx context.Context, groupVersion, kind string) error {
	err := retry.Poll(ctx, apiResourcePollInterval, apiResourceWaitTimeout, func(ctx context.Context) (bool, error) {
		return c.HasAPIResource(ctx, groupVersion, kind)
	})
	if err != nil {
		return fmt.Errorf("waiting for %s %s: %w", groupVersion, kind, err)
	}
	// The mapper caches discovery, so newly served kinds need a refresh
	// before they can be applied.
	return c.RefreshDiscovery(ctx)
}

// WaitForFieldValue polls the object until the dotted field path equals the
// expected value. A missing object or missing field is treated as "not
// ready yet".
func (c *client) WaitForFieldValue(ctx context.Context, opts FieldWaitOptions) error {
	err := retry.Poll(ctx, fieldPollInterval, opts.Timeout, func(ctx context.Context) (bool, error) {
		obj, err := c.dynamicClient.Resource(opts.Resource).Namespace(opts.Namespace).Get(ctx, opts.Name, metav1.GetOptions{})
		if err != nil {
			return false, fmt.Errorf("get %s/%s: %w", opts.Namespace, opts.Name, err)
		}

		value, found, err := nestedString(obj, opts.FieldPath)
		if err != nil {
			return false, err
		}
		if !found {
			return false, fmt.Errorf("%s not yet set on %s/%s", opts.FieldPath, opts.Namespace, opts.Name)
		}
		if value != opts.Expected {
			return false, fmt.Errorf("%s is %q, want %q", opts.FieldPath, value, opts.Expected)
		}
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("waiting for %s on %s/%s: %w", opts.FieldPath, opts.Namespace, opts.Name, err)
	}
	return nil
}

// GetFieldValue reads the dotted field path from the object once, without
// polling. Returns the empty string when the field is not set.
func (c *client) GetFieldValue(ctx context.Context, opts FieldWaitOptions) (string, error) {
	obj, err := c.dynamicClient.Resource(opts.Resource).Namespace(opts.Namespace).Get(ctx, opts.Name, metav1.GetOptions{})
	if err != nil {
		return "", fmt.Errorf("get %s/%s: %w", opts.Namespace, opts.Name, err)
	}

	value, _, err := nestedString(obj, opts.FieldPath)
	if err != nil {
		return "", err
	}
	return value, nil
}

// nestedString reads a dotted path from an unstructured object.
func nestedString(obj *unstructured.Unstructured, path string) (string, bool, error) {
	return unstructured.NestedString(obj.Object, strings.Split(path, ".")...)
}
