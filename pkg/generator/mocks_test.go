package generator

import (
	"context"
	"sync"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
)

// --- Mocks ---

// mockBackend は Backend のテスト用スタブなのだ。
type mockBackend struct {
	mu           sync.Mutex
	calls        int
	lastRequest  domain.ModelRequest
	completeFunc func(ctx context.Context, req domain.ModelRequest) (string, error)
}

func (m *mockBackend) Name() string { return "mock" }

func (m *mockBackend) Complete(ctx context.Context, req domain.ModelRequest) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastRequest = req
	m.mu.Unlock()

	if m.completeFunc != nil {
		return m.completeFunc(ctx, req)
	}
	return `{"poem": "Wheels of time, now hushed and still,\nBeneath the sun, on a silent hill."}`, nil
}

func (m *mockBackend) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
