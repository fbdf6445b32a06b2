package graph

import (
	"context"
	"maps"
	"sync"
)

// Responder computes the result of a query against the in-memory client.
type Responder func(query ExecutedQuery) (Result, error)

// MemoryClient is an in-memory Client for tests. Queries are recorded, and
// results come from a Responder when one is set, or else from queued canned
// results.
type MemoryClient struct {
	mu           sync.Mutex
	calls        []ExecutedQuery
	onRead       Responder
	onWrite      Responder
	readResults  []Result
	err          error
	connectivity error
	closed       bool
}

// ExecutedQuery captures a cypher statement and parameters executed against the graph.
type ExecutedQuery struct {
	Query  string
	Params map[string]any
	Write  bool
}

// NewMemoryClient instantiates an empty in-memory client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// WithError configures the client to return the provided error for subsequent calls.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return the supplied error.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// OnRead installs a responder for ExecuteRead.
func (m *MemoryClient) OnRead(fn Responder) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRead = fn
	return m
}

// OnWrite installs a responder for ExecuteWrite.
func (m *MemoryClient) OnWrite(fn Responder) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onWrite = fn
	return m
}

// PushReadResult queues a result for the next ExecuteRead without a responder.
func (m *MemoryClient) PushReadResult(res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readResults = append(m.readResults, res)
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(ExecutedQuery{Query: cypher, Params: maps.Clone(params), Write: true})
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(ExecutedQuery{Query: cypher, Params: maps.Clone(params)})
}

func (m *MemoryClient) execute(q ExecutedQuery) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return Result{}, m.err
	}
	m.calls = append(m.calls, q)

	responder := m.onRead
	if q.Write {
		responder = m.onWrite
	}
	if responder != nil {
		return responder(q)
	}

	if q.Write || len(m.readResults) == 0 {
		return Result{}, nil
	}
	res := m.readResults[0]
	m.readResults = m.readResults[1:]
	return res, nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MemoryClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// WriteCalls returns a snapshot of executed write queries.
func (m *MemoryClient) WriteCalls() []ExecutedQuery {
	return m.filter(true)
}

// ReadCalls returns a snapshot of executed read queries.
func (m *MemoryClient) ReadCalls() []ExecutedQuery {
	return m.filter(false)
}

func (m *MemoryClient) filter(write bool) []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ExecutedQuery
	for _, q := range m.calls {
		if q.Write == write {
			out = append(out, q)
		}
	}
	return out
}
