package mock

import (
	"context"
	"sync"

	"github.com/poiesic/thesaurus/index"
)

// Result is one scripted UpdateByQuery answer.
type Result struct {
	Count int
	Err   error
}

// Call records the arguments of one UpdateByQuery call.
type Call struct {
	Query   index.Query
	Payload *index.Payload
}

// MockConnector is a test double for index.Connector.
// It is safe for concurrent use.
type MockConnector struct {
	// UpdateByQueryFunc is called by UpdateByQuery if set.
	// It takes precedence over scripted results.
	UpdateByQueryFunc func(ctx context.Context, q index.Query, payload *index.Payload) (int, error)

	mu      sync.Mutex
	results []Result
	calls   []Call
}

var _ index.Connector = (*MockConnector)(nil)

// NewMockConnector creates a connector that reports 0 updated documents.
func NewMockConnector() *MockConnector {
	return &MockConnector{}
}

// WithResults queues results that are returned in order, one per call.
// Once the queue is exhausted calls report 0.
func (m *MockConnector) WithResults(results ...Result) *MockConnector {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, results...)
	return m
}

// WithUpdateByQueryFunc sets a custom UpdateByQuery implementation.
func (m *MockConnector) WithUpdateByQueryFunc(fn func(ctx context.Context, q index.Query, payload *index.Payload) (int, error)) *MockConnector {
	m.UpdateByQueryFunc = fn
	return m
}

// UpdateByQuery records the call and returns the next scripted result.
func (m *MockConnector) UpdateByQuery(ctx context.Context, q index.Query, payload *index.Payload) (int, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Query: q, Payload: payload.Clone()})
	fn := m.UpdateByQueryFunc
	var next *Result
	if fn == nil && len(m.results) > 0 {
		next = &m.results[0]
		m.results = m.results[1:]
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, q, payload)
	}
	if next != nil {
		return next.Count, next.Err
	}
	return 0, nil
}

// Calls returns the recorded calls in order.
func (m *MockConnector) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of UpdateByQuery calls.
func (m *MockConnector) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Reset clears recorded calls, scripted results and the custom function.
func (m *MockConnector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.results = nil
	m.UpdateByQueryFunc = nil
}
