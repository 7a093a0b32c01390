package server

import (
	"context"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
	"github.com/shouni/gemini-poem-kit/pkg/generator"
)

// --- Mocks ---

// stubBackend は generator.Backend のテスト用スタブなのだ。
type stubBackend struct {
	calls    int
	requests []domain.ModelRequest
	reply    string
	err      error
}

var _ generator.Backend = (*stubBackend)(nil)

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Complete(ctx context.Context, req domain.ModelRequest) (string, error) {
	s.calls++
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	if s.reply == "" {
		return `{"poem": "Light on the water,\nthe shore remembers."}`, nil
	}
	return s.reply, nil
}
