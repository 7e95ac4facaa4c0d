package kube

import (
	"fmt"

	"k8s.io/client-go/tools/clientcmd"
)

// ClusterAccess holds the connection details extracted from a kubeconfig.
// Worker registration needs these to hand the controller's endpoint and
// credentials to each worker chart.
type ClusterAccess struct {
	// Endpoint is the API server URL, e.g. https://1.2.3.4:443.
	Endpoint string

	// CACertificate is the PEM-encoded cluster CA.
	CACertificate []byte

	// Token is the bearer token of the kubeconfig's user, if present.
	Token string
}

// ExtractClusterAccess parses kubeconfig bytes and returns the endpoint,
// CA certificate, and user token of the current context.
func ExtractClusterAccess(kubeconfig []byte) (*ClusterAccess, error) {
	cfg, err := clientcmd.Load(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to parse kubeconfig: %w", err)
	}

	contextName := cfg.CurrentContext
	if contextName == "" {
		for name := range cfg.Contexts {
			contextName = name
			break
		}
	}
	kubeContext, ok := cfg.Contexts[contextName]
	if !ok {
		return nil, fmt.Errorf("kubeconfig has no usable context")
	}

	cluster, ok := cfg.Clusters[kubeContext.Cluster]
	if !ok {
		return nil, fmt.Errorf("kubeconfig context %q references unknown cluster %q", contextName, kubeContext.Cluster)
	}

	access := &ClusterAccess{
		Endpoint:      cluster.Server,
		CACertificate: cluster.CertificateAuthorityData,
	}

	if user, ok := cfg.AuthInfos[kubeContext.AuthInfo]; ok {
		access.Token = user.Token
	}

	return access, nil
}
