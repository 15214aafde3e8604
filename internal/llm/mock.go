package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one queued reply. A non-nil Err is returned instead of
// the content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays queued replies in order and records every request.
// Once the queue is drained it answers with Fallback, or fails as
// unavailable when Fallback is nil.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse

	// Calls holds every request received, in order.
	Calls []Request

	// Fallback answers requests after the queue is drained.
	Fallback func(Request) (json.RawMessage, error)
}

func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{queue: replies}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)

	reply, ok := m.next()
	if !ok {
		if m.Fallback == nil {
			return nil, &ErrProviderUnavailable{}
		}
		content, err := m.Fallback(req)
		reply = MockResponse{Content: content, Err: err}
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	return finish(req, reply.Content, m.ModelID(), StopEnd, reply.Usage)
}

func (m *MockProvider) next() (MockResponse, bool) {
	if len(m.queue) == 0 {
		return MockResponse{}, false
	}
	r := m.queue[0]
	m.queue = m.queue[1:]
	return r, true
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another reply.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, r)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
