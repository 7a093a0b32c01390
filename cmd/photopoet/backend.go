package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shouni/gemini-poem-kit/internal/config"
	"github.com/shouni/gemini-poem-kit/pkg/adapters"
	"github.com/shouni/gemini-poem-kit/pkg/generator"
)

// newBackend は設定で選ばれたバックエンドを1つだけ生成します。
func newBackend(ctx context.Context, cfg config.Config) (generator.Backend, error) {
	opts := cfg.BackendOptions()

	switch cfg.Model.Backend {
	case config.BackendGenAI:
		b, err := adapters.NewGeminiAPIBackend(ctx, cfg.Gemini.APIKey, cfg.Model.Name, opts)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.BackendOpenAI:
		b, err := adapters.NewOpenAIBackend(adapters.OpenAIConfig{
			APIKey:     cfg.OpenAI.APIKey,
			Model:      cfg.Model.Name,
			BaseURL:    cfg.OpenAI.BaseURL,
			HTTPClient: &http.Client{},
		}, opts)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Model.Backend)
	}
}
