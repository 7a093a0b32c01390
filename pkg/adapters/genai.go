package adapters

import (
	"context"
	"fmt"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
	"github.com/shouni/gemini-poem-kit/pkg/generator"
	"google.golang.org/genai"
)

// ContentGenerator は genai.Client.Models のうち利用するメソッドだけを抜き出したものです。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAIBackend は google.golang.org/genai を直接使うバックエンドです。
type GenAIBackend struct {
	models ContentGenerator
	model  string
	opts   Options
}

var _ generator.Backend = (*GenAIBackend)(nil)

// NewGenAIBackend は ContentGenerator を注入して GenAIBackend を初期化します。
func NewGenAIBackend(models ContentGenerator, model string, opts Options) (*GenAIBackend, error) {
	if models == nil {
		return nil, fmt.Errorf("models is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	return &GenAIBackend{models: models, model: model, opts: opts}, nil
}

// NewGeminiAPIBackend は API キーから Gemini API 用の SDK クライアントを生成します。
func NewGeminiAPIBackend(ctx context.Context, apiKey, model string, opts Options) (*GenAIBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}
	return NewGenAIBackend(client.Models, model, opts)
}

func (b *GenAIBackend) Name() string { return "genai" }

// Complete は画像とプロンプトを1回だけ送信し、応答テキストを返します。
func (b *GenAIBackend) Complete(ctx context.Context, req domain.ModelRequest) (string, error) {
	parts, err := requestParts(req)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}
	resp, err := b.models.GenerateContent(ctx, b.model, contents, b.config(req.SystemPrompt))
	if err != nil {
		return "", fmt.Errorf("Gemini詩生成エラー: %w", err)
	}
	return responseText(resp)
}

func (b *GenAIBackend) config(systemPrompt string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:      b.opts.Temperature,
		Seed:             seedToPtrInt32(b.opts.Seed),
		ResponseMIMEType: "application/json",
		ResponseSchema:   poemSchema,
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(systemPrompt)}}
	}
	return cfg
}

// poemSchema は {"poem": string} のみを返させるレスポンススキーマです。
var poemSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"poem": {Type: genai.TypeString, Description: "The full text of the poem."},
	},
	Required: []string{"poem"},
}
