// Package bookinfo renders the sample application manifests deployed across
// the slice: the productpage frontend on frontend clusters, and the
// details, ratings, and reviews services on backend clusters. The backend
// exports details and reviews over the slice so the frontend can reach them
// through slice DNS.
package bookinfo

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed manifests/*.yaml
var manifestFS embed.FS

var frontendManifests = []string{
	"manifests/productpage.yaml",
}

var backendManifests = []string{
	"manifests/details.yaml",
	"manifests/ratings.yaml",
	"manifests/reviews.yaml",
	"manifests/serviceexport-details.yaml",
	"manifests/serviceexport-reviews.yaml",
}

// templateData fills the namespace and slice placeholders in the embedded
// manifests.
type templateData struct {
	Namespace string
	SliceName string
}

// Frontend renders the productpage manifests for the given namespace.
func Frontend(namespace, sliceName string) ([]byte, error) {
	return render(frontendManifests, templateData{Namespace: namespace, SliceName: sliceName})
}

// Backend renders the details, ratings, and reviews manifests plus the
// ServiceExport objects for the given namespace.
func Backend(namespace, sliceName string) ([]byte, error) {
	return render(backendManifests, templateData{Namespace: namespace, SliceName: sliceName})
}

func render(files []string, data templateData) ([]byte, error) {
	var buf bytes.Buffer

	for i, file := range files {
		content, err := manifestFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest %s: %w", file, err)
		}

		tmpl, err := template.New(file).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", file, err)
		}

		if i > 0 {
			buf.WriteString("---\n")
		}
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("failed to render manifest %s: %w", file, err)
		}
		if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
