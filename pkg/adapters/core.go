package adapters

import (
	"fmt"
	"strings"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
	"google.golang.org/genai"
)

// Options は各バックエンド共通の生成パラメータです。
// nil のフィールドはプロバイダ側のデフォルトに任せます。
type Options struct {
	Temperature *float32
	Seed        *int64
}

// imagePart はデータURIをデコードして genai.Part (InlineData) に変換します。
// MIMEタイプはデータURIのヘッダをそのまま使います。
func imagePart(image domain.ImagePayload) (*genai.Part, error) {
	uri, err := image.Parse()
	if err != nil {
		return nil, err
	}
	return genai.NewPartFromBytes(uri.Data, uri.MIMEType), nil
}

// requestParts はプロンプトと画像を1つの user コンテンツ用のパーツ列にまとめます。
func requestParts(req domain.ModelRequest) ([]*genai.Part, error) {
	img, err := imagePart(req.Image)
	if err != nil {
		return nil, err
	}
	return []*genai.Part{genai.NewPartFromText(req.Prompt), img}, nil
}

// responseText は Gemini のレスポンスからテキストパーツを連結して返します。
// 候補がない場合は空文字を返し、空かどうかの判定は呼び出し元に任せます。
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("Geminiからの有効な応答がありませんでした")
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return "", fmt.Errorf("プロンプトがブロックされました (BlockReason: %s)", fb.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", nil
	}

	// 最初の候補 (Candidate) のみを利用する
	candidate := resp.Candidates[0]

	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
	}
	if text := sb.String(); strings.TrimSpace(text) != "" {
		return text, nil
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return "", fmt.Errorf("詩の生成が異常終了しました (FinishReason: %s)", candidate.FinishReason)
	}
	return "", nil
}

// seedToPtrInt32 は *int64 のシードを Gemini SDK 用の *int32 に変換します。
// int32 の範囲を超える値は上位ビットが切り捨てられます。
func seedToPtrInt32(seed *int64) *int32 {
	if seed == nil {
		return nil
	}
	val := int32(*seed)
	return &val
}
