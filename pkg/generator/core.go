package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
)

// PoemGenerator は画像から詩を生成するサービスです。
// 生成後は状態を持たないため、複数の goroutine から同時に利用できます。
type PoemGenerator struct {
	backend Backend
	timeout time.Duration
}

var _ PoemService = (*PoemGenerator)(nil)

// NewPoemGenerator はバックエンドを注入して PoemGenerator を初期化します。
func NewPoemGenerator(backend Backend, opts ...Option) (*PoemGenerator, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is required")
	}

	g := &PoemGenerator{backend: backend}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Backend は注入されたバックエンドを返します。
func (g *PoemGenerator) Backend() Backend {
	return g.backend
}

// GenerateFromImage は自由記述のスタイルで初回の詩を生成します。
// style が空の場合は ValidationError になります。デフォルトは呼び出し側で
// domain.DefaultStylePreferences を明示的に渡してください。
func (g *PoemGenerator) GenerateFromImage(ctx context.Context, image domain.ImagePayload, style string) domain.Outcome {
	return g.Generate(ctx, image, domain.FreeformStyle{Text: style})
}

// RegenerateWithLength は同じ画像から指定の長さで詩を作り直します。
func (g *PoemGenerator) RegenerateWithLength(ctx context.Context, image domain.ImagePayload, length domain.PoemLength) domain.Outcome {
	return g.Generate(ctx, image, domain.LengthDirective{Length: length})
}

// RegenerateWithTone は同じ画像から指定のトーンで詩を作り直します。
func (g *PoemGenerator) RegenerateWithTone(ctx context.Context, image domain.ImagePayload, tone string) domain.Outcome {
	return g.Generate(ctx, image, domain.ToneDirective{Tone: tone})
}

// Generate は3種類の指示すべてに共通する処理です。
// 検証エラーの場合はバックエンドを一切呼び出しません。
func (g *PoemGenerator) Generate(ctx context.Context, image domain.ImagePayload, directive domain.StyleDirective) domain.Outcome {
	if err := image.Validate(); err != nil {
		return domain.Fail(domain.KindValidation, err)
	}

	prompt, err := BuildPrompt(directive)
	if err != nil {
		return domain.Fail(domain.KindValidation, err)
	}

	text, err := g.execute(ctx, domain.ModelRequest{
		Image:        image,
		SystemPrompt: systemPrompt,
		Prompt:       prompt,
	})
	if err != nil {
		return domain.Fail(domain.KindModel, fmt.Errorf("%s: %w", g.backend.Name(), err))
	}

	poem, err := parsePoem(text)
	if err != nil {
		return domain.Fail(classify(err), err)
	}
	return domain.Success(poem)
}
