package kube

import "context"

// MockClient implements Client with configurable function fields for tests.
// Unset fields are no-ops that succeed.
type MockClient struct {
	ApplyManifestsFunc     func(ctx context.Context, manifests []byte, fieldManager string) error
	EnsureNamespaceFunc    func(ctx context.Context, name string, labels map[string]string) error
	HasAPIResourceFunc     func(ctx context.Context, groupVersion, kind string) (bool, error)
	WaitForAPIResourceFunc func(ctx context.Context, groupVersion, kind string) error
	WaitForFieldValueFunc  func(ctx context.Context, opts FieldWaitOptions) error
	GetFieldValueFunc      func(ctx context.Context, opts FieldWaitOptions) (string, error)
	RefreshDiscoveryFunc   func(ctx context.Context) error

	// Applied records every manifest batch passed to ApplyManifests.
	Applied [][]byte
	// Namespaces records every namespace ensured.
	Namespaces []string
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) ApplyManifests(ctx context.Context, manifests []byte, fieldManager string) error {
	m.Applied = append(m.Applied, manifests)
	if m.ApplyManifestsFunc != nil {
		return m.ApplyManifestsFunc(ctx, manifests, fieldManager)
	}
	return nil
}

func (m *MockClient) EnsureNamespace(ctx context.Context, name string, labels map[string]string) error {
	m.Namespaces = append(m.Namespaces, name)
	if m.EnsureNamespaceFunc != nil {
		return m.EnsureNamespaceFunc(ctx, name, labels)
	}
	return nil
}

func (m *MockClient) HasAPIResource(ctx context.Context, groupVersion, kind string) (bool, error) {
	if m.HasAPIResourceFunc != nil {
		return m.HasAPIResourceFunc(ctx, groupVersion, kind)
	}
	return true, nil
}

func (m *MockClient) WaitForAPIResource(ctx context.Context, groupVersion, kind string) error {
	if m.WaitForAPIResourceFunc != nil {
		return m.WaitForAPIResourceFunc(ctx, groupVersion, kind)
	}
	return nil
}

func (m *MockClient) WaitForFieldValue(ctx context.Context, opts FieldWaitOptions) error {
	if m.WaitForFieldValueFunc != nil {
		return m.WaitForFieldValueFunc(ctx, opts)
	}
	return nil
}

func (m *MockClient) GetFieldValue(ctx context.Context, opts FieldWaitOptions) (string, error) {
	if m.GetFieldValueFunc != nil {
		return m.GetFieldValueFunc(ctx, opts)
	}
	return "", nil
}

func (m *MockClient) RefreshDiscovery(ctx context.Context) error {
	if m.RefreshDiscoveryFunc != nil {
		return m.RefreshDiscoveryFunc(ctx)
	}
	return nil
}
