package domain

// PoemResult は生成された詩の本文です。構造上の制約はありません。
type PoemResult string

// ModelRequest はバックエンドへ渡す1回分の生成要求です。
// Image は呼び出し元から受け取った文字列をそのまま保持します。
type ModelRequest struct {
	Image        ImagePayload
	SystemPrompt string
	Prompt       string
}
