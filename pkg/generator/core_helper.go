package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
)

// execute はバックエンドを1回だけ呼び出します。リトライは行いません。
// バックエンド内の panic もエラーとして回収し、呼び出し元へ伝播させません。
func (g *PoemGenerator) execute(ctx context.Context, req domain.ModelRequest) (text string, err error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("backend panicked: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.backend.Complete(ctx, req)
}

// parsePoem はモデルの応答から poem フィールドを取り出します。
func parsePoem(text string) (domain.PoemResult, error) {
	body := stripCodeFence(text)
	if body == "" {
		return "", fmt.Errorf("%w: model returned an empty response", domain.ErrEmptyResult)
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", domain.ErrModel, err)
	}

	raw, ok := out[poemField]
	if !ok || string(raw) == "null" {
		return "", fmt.Errorf("%w: response has no %q field", domain.ErrEmptyResult, poemField)
	}

	var poem string
	if err := json.Unmarshal(raw, &poem); err != nil {
		return "", fmt.Errorf("%w: %q field is not a string: %v", domain.ErrModel, poemField, err)
	}
	if strings.TrimSpace(poem) == "" {
		return "", fmt.Errorf("%w: %q field is empty", domain.ErrEmptyResult, poemField)
	}
	return domain.PoemResult(poem), nil
}

// stripCodeFence は ```json ... ``` で囲まれた応答から中身を取り出します。
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// 言語指定 (json 等) の行を読み飛ばす
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func classify(err error) domain.ErrorKind {
	if errors.Is(err, domain.ErrEmptyResult) {
		return domain.KindEmptyResult
	}
	return domain.KindModel
}
