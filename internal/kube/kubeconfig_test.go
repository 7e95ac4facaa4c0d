package kube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleKubeconfig = `apiVersion: v1
kind: Config
current-context: lke-ctx
clusters:
- name: lke-cluster
  cluster:
    server: https://203.0.113.10:443
    certificate-authority-data: LS0tLS1CRUdJTiBDRVJUSUZJQ0FURS0tLS0t
contexts:
- name: lke-ctx
  context:
    cluster: lke-cluster
    user: lke-admin
users:
- name: lke-admin
  user:
    token: secret-bearer-token
`

func TestExtractClusterAccess(t *testing.T) {
	access, err := ExtractClusterAccess([]byte(sampleKubeconfig))
	require.NoError(t, err)

	assert.Equal(t, "https://203.0.113.10:443", access.Endpoint)
	assert.Equal(t, "secret-bearer-token", access.Token)
	assert.NotEmpty(t, access.CACertificate)
}

func TestExtractClusterAccessNoCurrentContext(t *testing.T) {
	kubeconfig := `apiVersion: v1
kind: Config
clusters:
- name: only-cluster
  cluster:
    server: https://203.0.113.20:443
contexts:
- name: only-ctx
  context:
    cluster: only-cluster
    user: only-user
users:
- name: only-user
  user:
    token: tok
`
	access, err := ExtractClusterAccess([]byte(kubeconfig))
	require.NoError(t, err)
	assert.Equal(t, "https://203.0.113.20:443", access.Endpoint)
}

func TestExtractClusterAccessInvalid(t *testing.T) {
	_, err := ExtractClusterAccess([]byte("not: [valid"))
	require.Error(t, err)
}

func TestExtractClusterAccessMissingCluster(t *testing.T) {
	kubeconfig := `apiVersion: v1
kind: Config
current-context: broken
contexts:
- name: broken
  context:
    cluster: missing
    user: nobody
`
	_, err := ExtractClusterAccess([]byte(kubeconfig))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cluster")
}
