package helm

// ChartSpec identifies a chart to install: its repository, name, pinned
// version, and the release name and namespace it is installed under.
type ChartSpec struct {
	Repository  string
	Name        string
	Version     string
	ReleaseName string
	Namespace   string
}

// Chart repositories and pinned versions. The community and enterprise
// editions publish the same chart names from different repositories at
// different version lines.
const (
	CommunityRepoURL  = "https://kubeslice.github.io/kubeslice/"
	EnterpriseRepoURL = "https://kubeslice.aveshalabs.io/repository/kubeslice-helm-ent-prod/"

	CommunityVersion  = "1.3.1"
	EnterpriseVersion = "1.15.0"
)

// Namespaces charts are installed into.
const (
	ControllerNamespace = "kubeslice-controller"
	WorkerNamespace     = "kubeslice-system"
	IstioNamespace      = "istio-system"
	MonitoringNamespace = "monitoring"
)

// repoURL selects the chart repository for the edition.
func repoURL(enterprise bool) string {
	if enterprise {
		return EnterpriseRepoURL
	}
	return CommunityRepoURL
}

// chartVersion selects the pinned chart version for the edition.
func chartVersion(enterprise bool) string {
	if enterprise {
		return EnterpriseVersion
	}
	return CommunityVersion
}

// ControllerChart returns the kubeslice-controller chart spec.
func ControllerChart(enterprise bool) ChartSpec {
	return ChartSpec{
		Repository:  repoURL(enterprise),
		Name:        "kubeslice-controller",
		Version:     chartVersion(enterprise),
		ReleaseName: "kubeslice-controller",
		Namespace:   ControllerNamespace,
	}
}

// UIChart returns the kubeslice-ui chart spec. The UI ships only with the
// enterprise edition.
func UIChart() ChartSpec {
	return ChartSpec{
		Repository:  EnterpriseRepoURL,
		Name:        "kubeslice-ui",
		Version:     EnterpriseVersion,
		ReleaseName: "kubeslice-ui",
		Namespace:   ControllerNamespace,
	}
}

// WorkerChart returns the kubeslice-worker chart spec.
func WorkerChart(enterprise bool) ChartSpec {
	return ChartSpec{
		Repository:  repoURL(enterprise),
		Name:        "kubeslice-worker",
		Version:     chartVersion(enterprise),
		ReleaseName: "kubeslice-worker",
		Namespace:   WorkerNamespace,
	}
}

// IstioBaseChart returns the istio-base chart spec. KubeSlice republishes
// the Istio charts from its own repositories; the version is left unpinned
// so the repository's matching release is used.
func IstioBaseChart(enterprise bool) ChartSpec {
	return ChartSpec{
		Repository:  repoURL(enterprise),
		Name:        "istio-base",
		ReleaseName: "istio-base",
		Namespace:   IstioNamespace,
	}
}

// IstioDiscoveryChart returns the istio-discovery (istiod) chart spec.
func IstioDiscoveryChart(enterprise bool) ChartSpec {
	return ChartSpec{
		Repository:  repoURL(enterprise),
		Name:        "istio-discovery",
		ReleaseName: "istio-discovery",
		Namespace:   IstioNamespace,
	}
}

// PrometheusChart returns the prometheus chart spec used by the enterprise
// worker for slice metrics.
func PrometheusChart() ChartSpec {
	return ChartSpec{
		Repository:  EnterpriseRepoURL,
		Name:        "prometheus",
		ReleaseName: "prometheus",
		Namespace:   MonitoringNamespace,
	}
}
