package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/linode/linodego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sliceops/slicectl/internal/config"
	"github.com/sliceops/slicectl/internal/kube"
	"github.com/sliceops/slicectl/internal/kubeslice"
	"github.com/sliceops/slicectl/internal/platform/linode"
)

func TestStatus_ListsClustersByTag(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(string) (*config.Config, error) {
		return testHandlerConfig(), nil
	}
	newKubeClient = func([]byte) (kube.Client, error) {
		return &kube.MockClient{}, nil
	}

	var tags []string
	newClusterClient = func(string) linode.ClusterManager {
		return &linode.MockClient{
			ListClustersByTagFunc: func(_ context.Context, tag string) ([]linodego.LKECluster, error) {
				tags = append(tags, tag)
				if tag == kubeslice.ControllerTag {
					return []linodego.LKECluster{
						{ID: 10, Label: "kubeslice-controller", Region: "us-east", Status: linodego.LKEClusterReady},
					}, nil
				}
				return []linodego.LKECluster{
					{ID: 11, Label: "kubeslice-alpha", Region: "us-east", Status: linodego.LKEClusterNotReady},
				}, nil
			},
		}
	}

	err := Status(context.Background(), "slicectl.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{kubeslice.ControllerTag, kubeslice.WorkerTag}, tags)
}

func TestStatus_ListError(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(string) (*config.Config, error) {
		return testHandlerConfig(), nil
	}
	newClusterClient = func(string) linode.ClusterManager {
		return &linode.MockClient{
			ListClustersByTagFunc: func(context.Context, string) ([]linodego.LKECluster, error) {
				return nil, errors.New("api unreachable")
			},
		}
	}

	err := Status(context.Background(), "slicectl.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list controller clusters")
}

func TestRegistrationHealth(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testHandlerConfig()
	clusters := &linode.MockClient{}
	controllers := []linodego.LKECluster{
		{ID: 10, Label: "kubeslice-controller", Status: linodego.LKEClusterReady},
	}

	var queried []kube.FieldWaitOptions
	newKubeClient = func([]byte) (kube.Client, error) {
		return &kube.MockClient{
			GetFieldValueFunc: func(_ context.Context, opts kube.FieldWaitOptions) (string, error) {
				queried = append(queried, opts)
				return "Normal", nil
			},
		}, nil
	}

	health := registrationHealth(context.Background(), cfg, clusters, controllers)

	require.Len(t, queried, 1)
	assert.Equal(t, kubeslice.ClustersResource, queried[0].Resource)
	assert.Equal(t, "kubeslice-demo", queried[0].Namespace)
	assert.Equal(t, "kubeslice-alpha", queried[0].Name)
	assert.Equal(t, "status.clusterHealth.clusterHealthStatus", queried[0].FieldPath)
	assert.Equal(t, map[string]string{"kubeslice-alpha": "Normal"}, health)
}

func TestRegistrationHealth_ControllerNotReady(t *testing.T) {
	saveAndRestoreFactories(t)

	newKubeClient = func([]byte) (kube.Client, error) {
		t.Fatal("must not build a client while the controller is provisioning")
		return nil, nil
	}

	controllers := []linodego.LKECluster{
		{ID: 10, Label: "kubeslice-controller", Status: linodego.LKEClusterNotReady},
	}
	health := registrationHealth(context.Background(), testHandlerConfig(), &linode.MockClient{}, controllers)
	assert.Nil(t, health)
}

func TestRegistrationHealth_ReadError(t *testing.T) {
	saveAndRestoreFactories(t)

	newKubeClient = func([]byte) (kube.Client, error) {
		return &kube.MockClient{
			GetFieldValueFunc: func(context.Context, kube.FieldWaitOptions) (string, error) {
				return "", errors.New("connection refused")
			},
		}, nil
	}

	controllers := []linodego.LKECluster{
		{ID: 10, Label: "kubeslice-controller", Status: linodego.LKEClusterReady},
	}
	health := registrationHealth(context.Background(), testHandlerConfig(), &linode.MockClient{}, controllers)
	assert.Equal(t, map[string]string{"kubeslice-alpha": "Unknown"}, health)
}

func TestRenderStatus(t *testing.T) {
	cfg := testHandlerConfig()
	controllers := []linodego.LKECluster{
		{ID: 10, Label: "kubeslice-controller", Region: "us-east", Status: linodego.LKEClusterReady},
	}
	workers := []linodego.LKECluster{
		{ID: 12, Label: "kubeslice-beta", Region: "eu-west", Status: linodego.LKEClusterNotReady},
		{ID: 11, Label: "kubeslice-alpha", Region: "us-east", Status: linodego.LKEClusterReady},
	}
	health := map[string]string{"kubeslice-alpha": "Normal", "kubeslice-beta": "Warning"}

	out := renderStatus(cfg, controllers, workers, health)

	assert.Contains(t, out, "slicectl status: demo")
	assert.Contains(t, out, "kubeslice-controller")
	assert.Contains(t, out, "kubeslice-alpha")
	assert.Contains(t, out, "kubeslice-beta")
	assert.Contains(t, out, "Registrations")
	assert.Contains(t, out, "Normal")
	assert.Contains(t, out, "Warning")
	// Workers render sorted by label.
	assert.Less(t, strings.Index(out, "kubeslice-alpha"), strings.Index(out, "kubeslice-beta"))
	assert.NotContains(t, out, "No clusters found")
}

func TestRenderStatus_Empty(t *testing.T) {
	out := renderStatus(testHandlerConfig(), nil, nil, nil)

	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "No clusters found")
	assert.Contains(t, out, "slicectl apply")
}
