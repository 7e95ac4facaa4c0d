package destroy

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/linode/linodego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sliceops/slicectl/internal/config"
	"github.com/sliceops/slicectl/internal/platform/linode"
	"github.com/sliceops/slicectl/internal/provisioning"
)

func testContext(clusters *linode.MockClient) *provisioning.Context {
	return &provisioning.Context{
		Context:  context.Background(),
		Config:   &config.Config{Project: "bookinfo-project"},
		State:    provisioning.NewState(),
		Clusters: clusters,
		Logger:   log.New(io.Discard, "", 0),
	}
}

func TestProvision(t *testing.T) {
	byTag := map[string][]linodego.LKECluster{
		"app:kubeslice-worker": {
			{ID: 11, Label: "kubeslice-frontend"},
			{ID: 12, Label: "kubeslice-backend"},
		},
		"app:kubeslice-controller": {
			{ID: 10, Label: "kubeslice-controller"},
		},
	}

	clusters := &linode.MockClient{
		ListClustersByTagFunc: func(ctx context.Context, tag string) ([]linodego.LKECluster, error) {
			return byTag[tag], nil
		},
	}

	err := New().Provision(testContext(clusters))
	require.NoError(t, err)

	// Workers go first, the controller last.
	assert.Equal(t, []int{11, 12, 10}, clusters.DeletedIDs)
}

func TestProvisionNothingToDelete(t *testing.T) {
	clusters := &linode.MockClient{}

	err := New().Provision(testContext(clusters))
	require.NoError(t, err)
	assert.Empty(t, clusters.DeletedIDs)
}

func TestProvisionDeleteFailure(t *testing.T) {
	clusters := &linode.MockClient{
		ListClustersByTagFunc: func(ctx context.Context, tag string) ([]linodego.LKECluster, error) {
			return []linodego.LKECluster{{ID: 11, Label: "kubeslice-frontend"}}, nil
		},
		DeleteClusterFunc: func(ctx context.Context, clusterID int) error {
			return errors.New("api unavailable")
		},
	}

	err := New().Provision(testContext(clusters))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kubeslice-frontend")
}
