package generator

import (
	"context"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
)

// Backend は生成モデルとの1往復を担当するポートです。
// 実装は pkg/adapters にあります。
type Backend interface {
	// Name はログ等で使うバックエンド名を返します。
	Name() string
	// Complete はリクエストを1回だけ送信し、モデルの応答テキストをそのまま返します。
	Complete(ctx context.Context, req domain.ModelRequest) (string, error)
}

// PoemService はビジネスロジック層や HTTP 層が利用する統合窓口です。
// どのメソッドもエラーを返さず、結果は domain.Outcome で表現されます。
type PoemService interface {
	GenerateFromImage(ctx context.Context, image domain.ImagePayload, style string) domain.Outcome
	RegenerateWithLength(ctx context.Context, image domain.ImagePayload, length domain.PoemLength) domain.Outcome
	RegenerateWithTone(ctx context.Context, image domain.ImagePayload, tone string) domain.Outcome
	Generate(ctx context.Context, image domain.ImagePayload, directive domain.StyleDirective) domain.Outcome
}
