package adapters

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
	"github.com/shouni/gemini-poem-kit/pkg/generator"

	oagc "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const finishReasonContentFilter = "content_filter"

// OpenAIConfig は OpenAI 互換 API への接続設定です。
type OpenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string       // 空なら公式エンドポイント
	HTTPClient *http.Client // nil なら SDK のデフォルト
}

// OpenAIBackend は chat completions API を使うバックエンドです。
// データURIは image_url パートとしてそのまま送信します。
type OpenAIBackend struct {
	oac   *oagc.Client
	model string
	opts  Options
}

var _ generator.Backend = (*OpenAIBackend)(nil)

// NewOpenAIBackend は OpenAI クライアントを初期化します。
// 自動リトライは行わないため WithMaxRetries(0) を指定します。
func NewOpenAIBackend(cfg OpenAIConfig, opts Options) (*OpenAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &OpenAIBackend{
		oac:   oagc.NewClient(reqOpts...),
		model: cfg.Model,
		opts:  opts,
	}, nil
}

func (o *OpenAIBackend) Name() string { return "openai" }

func (o *OpenAIBackend) Complete(ctx context.Context, req domain.ModelRequest) (string, error) {
	var messages []oagc.ChatCompletionMessageParamUnion
	if req.SystemPrompt != "" {
		messages = append(messages, oagc.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, oagc.UserMessageParts(
		oagc.TextPart(req.Prompt),
		oagc.ImagePart(string(req.Image)),
	))

	params := oagc.ChatCompletionNewParams{
		Messages: oagc.F(messages),
		Model:    oagc.F(oagc.ChatModel(o.model)),
		ResponseFormat: oagc.F[oagc.ChatCompletionNewParamsResponseFormatUnion](oagc.ResponseFormatJSONObjectParam{
			Type: oagc.F(oagc.ResponseFormatJSONObjectTypeJSONObject),
		}),
	}
	if o.opts.Temperature != nil {
		params.Temperature = oagc.F(float64(*o.opts.Temperature))
	}
	if o.opts.Seed != nil {
		params.Seed = oagc.F(*o.opts.Seed)
	}

	resp, err := o.oac.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("OpenAI詩生成エラー: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}

	choice := resp.Choices[0]
	if choice.Message.Content == "" && string(choice.FinishReason) == finishReasonContentFilter {
		return "", fmt.Errorf("詩の生成がコンテンツフィルタで停止しました")
	}
	return choice.Message.Content, nil
}
