package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/schemadoc/internal/domain"
	"github.com/phrazzld/schemadoc/internal/introspect"
)

// MockConnector implements introspect.Connector for testing
type MockConnector struct {
	ConnectFn func(ctx context.Context, uri string) (introspect.Conn, error)

	// Default response values
	Conn introspect.Conn
	Err  error

	Log *CallLog

	ConnectCalls struct {
		mu    sync.Mutex
		Count int
		URIs  []string
	}
}

// Connect implements the introspect.Connector interface
func (m *MockConnector) Connect(ctx context.Context, uri string) (introspect.Conn, error) {
	m.ConnectCalls.mu.Lock()
	m.ConnectCalls.Count++
	m.ConnectCalls.URIs = append(m.ConnectCalls.URIs, uri)
	m.ConnectCalls.mu.Unlock()
	m.Log.Record("connect")

	if m.ConnectFn != nil {
		return m.ConnectFn(ctx, uri)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Conn, nil
}

// MockConn implements introspect.Conn for testing
type MockConn struct {
	TablesFn  func(ctx context.Context) ([]string, error)
	ColumnsFn func(ctx context.Context, table string) ([]domain.Column, error)

	// Default response values
	TableNames     []string
	ColumnsByTable map[string][]domain.Column
	TablesErr      error
	ColumnsErr     error
	CloseErr       error

	Log *CallLog

	Calls struct {
		mu            sync.Mutex
		Tables        int
		ColumnsTables []string
		Close         int
	}
}

// Tables implements the introspect.Conn interface
func (m *MockConn) Tables(ctx context.Context) ([]string, error) {
	m.Calls.mu.Lock()
	m.Calls.Tables++
	m.Calls.mu.Unlock()
	m.Log.Record("tables")

	if m.TablesFn != nil {
		return m.TablesFn(ctx)
	}
	if m.TablesErr != nil {
		return nil, m.TablesErr
	}
	return m.TableNames, nil
}

// Columns implements the introspect.Conn interface
func (m *MockConn) Columns(ctx context.Context, table string) ([]domain.Column, error) {
	m.Calls.mu.Lock()
	m.Calls.ColumnsTables = append(m.Calls.ColumnsTables, table)
	m.Calls.mu.Unlock()
	m.Log.Record("columns:" + table)

	if m.ColumnsFn != nil {
		return m.ColumnsFn(ctx, table)
	}
	if m.ColumnsErr != nil {
		return nil, m.ColumnsErr
	}
	return m.ColumnsByTable[table], nil
}

// Close implements the introspect.Conn interface
func (m *MockConn) Close(context.Context) error {
	m.Calls.mu.Lock()
	m.Calls.Close++
	m.Calls.mu.Unlock()
	m.Log.Record("close")

	return m.CloseErr
}

// CloseCount returns how many times Close was called.
func (m *MockConn) CloseCount() int {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	return m.Calls.Close
}
