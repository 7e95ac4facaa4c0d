package kubeslice

import (
	"encoding/base64"

	"github.com/sliceops/slicectl/internal/config"
	"github.com/sliceops/slicectl/internal/helm"
	"github.com/sliceops/slicectl/internal/kube"
)

// ControllerValues builds the kubeslice-controller chart values. The
// endpoint is the controller cluster's own API server, which workers dial
// to reach the control plane. The enterprise edition adds a trial license
// and registry credentials.
func ControllerValues(endpoint string, ent config.EnterpriseConfig) helm.Values {
	controller := map[string]any{
		"controller": map[string]any{
			"endpoint": endpoint,
		},
	}

	if !ent.Enabled {
		return helm.Values{"kubeslice": controller}
	}

	controller["license"] = map[string]any{
		"type":         "kubeslice-trial-license",
		"mode":         "auto",
		"customerName": ent.Email,
	}

	return helm.Merge(
		helm.Values{"kubeslice": controller},
		helm.Values{"imagePullSecrets": imagePullSecrets(ent)},
	)
}

// UIValues builds the kubeslice-ui chart values (enterprise only).
func UIValues(ent config.EnterpriseConfig) helm.Values {
	return helm.Values{
		"imagePullSecrets": imagePullSecrets(ent),
	}
}

// WorkerValuesParams carries the cross-cluster inputs of the worker chart:
// the controller's access details and the worker's own identity.
type WorkerValuesParams struct {
	// ProjectNamespace is the kubeslice-<project> namespace on the
	// controller where this worker's operator authenticates.
	ProjectNamespace string

	// Controller is the controller cluster's endpoint and credentials.
	Controller *kube.ClusterAccess

	// ClusterName is the worker's registered cluster name.
	ClusterName string

	// Endpoint is the worker cluster's own API server URL.
	Endpoint string

	Enterprise config.EnterpriseConfig
}

// WorkerValues builds the kubeslice-worker chart values. The chart expects
// the controllerSecret fields base64-encoded; the CA certificate is encoded
// from its PEM bytes.
func WorkerValues(p WorkerValuesParams) helm.Values {
	base := helm.Values{
		"controllerSecret": map[string]any{
			"namespace": b64(p.ProjectNamespace),
			"endpoint":  b64(p.Controller.Endpoint),
			"ca.crt":    base64.StdEncoding.EncodeToString(p.Controller.CACertificate),
			"token":     b64(p.Controller.Token),
		},
		"cluster": map[string]any{
			"name":     p.ClusterName,
			"endpoint": p.Endpoint,
		},
		"netop": map[string]any{
			"networkInterface": "eth0",
		},
	}

	if !p.Enterprise.Enabled {
		return base
	}

	return helm.Merge(base, helm.Values{
		"imagePullSecrets":    imagePullSecrets(p.Enterprise),
		"kubesliceNetworking": map[string]any{"enabled": true},
		"metrics":             map[string]any{"insecure": true},
	})
}

func imagePullSecrets(ent config.EnterpriseConfig) map[string]any {
	return map[string]any{
		"username": ent.Username,
		"password": ent.Password,
		"email":    ent.Email,
	}
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}
