package adapters

import (
	"context"
	"fmt"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
	"github.com/shouni/gemini-poem-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// GeminiClientBackend は go-gemini-client の GenerativeModel を利用するバックエンドです。
// 既に gemini.GenerativeModel を持っている呼び出し元向けです。
type GeminiClientBackend struct {
	aiClient gemini.GenerativeModel // 通信クライアント
	model    string                 // 使用するモデル名
	opts     Options
}

var _ generator.Backend = (*GeminiClientBackend)(nil)

// NewGeminiClientBackend は依存関係を注入して初期化します。
func NewGeminiClientBackend(aiClient gemini.GenerativeModel, model string, opts Options) (*GeminiClientBackend, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	return &GeminiClientBackend{aiClient: aiClient, model: model, opts: opts}, nil
}

func (b *GeminiClientBackend) Name() string { return "gemini" }

// Complete はドメインのリクエストを Gemini API の形式に変換して実行します。
func (b *GeminiClientBackend) Complete(ctx context.Context, req domain.ModelRequest) (string, error) {
	parts, err := requestParts(req)
	if err != nil {
		return "", err
	}

	opts := gemini.GenerateOptions{
		SystemPrompt: req.SystemPrompt,
		Seed:         b.opts.Seed,
	}

	resp, err := b.aiClient.GenerateWithParts(ctx, b.model, parts, opts)
	if err != nil {
		return "", fmt.Errorf("Gemini詩生成エラー: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("Geminiからの有効な応答がありませんでした")
	}
	return responseText(resp.RawResponse)
}
