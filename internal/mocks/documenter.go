package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/schemadoc/internal/documenter"
)

// MockDocumenter implements documenter.Documenter for testing
type MockDocumenter struct {
	GenerateDocumentationFn func(ctx context.Context, req documenter.Request) *documenter.Result

	// Result is returned when GenerateDocumentationFn is nil
	Result *documenter.Result

	Calls struct {
		mu       sync.Mutex
		Count    int
		Requests []documenter.Request
	}
}

var _ documenter.Documenter = (*MockDocumenter)(nil)

// GenerateDocumentation implements the documenter.Documenter interface
func (m *MockDocumenter) GenerateDocumentation(ctx context.Context, req documenter.Request) *documenter.Result {
	m.Calls.mu.Lock()
	m.Calls.Count++
	m.Calls.Requests = append(m.Calls.Requests, req)
	m.Calls.mu.Unlock()

	if m.GenerateDocumentationFn != nil {
		return m.GenerateDocumentationFn(ctx, req)
	}
	return m.Result
}

// CallCount returns how many jobs were requested.
func (m *MockDocumenter) CallCount() int {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	return m.Calls.Count
}
