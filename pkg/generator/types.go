package generator

import "time"

const (
	// poemField はモデルに返させる JSON オブジェクトの唯一のフィールドです。
	poemField = "poem"

	systemPrompt = "You are a skilled poet who composes original poems inspired by photographs."

	outputInstruction = `Respond only with a JSON object of the form {"poem": "<the poem>"}.
Use \n for line breaks inside the poem. Do not add any other fields or commentary.`
)

// Option は PoemGenerator の設定を変更します。
type Option func(*PoemGenerator)

// WithTimeout はモデル呼び出し1回あたりの上限時間を設定します。
// 0 以下の場合はプロバイダ側のタイムアウトに任せます。
func WithTimeout(d time.Duration) Option {
	return func(g *PoemGenerator) {
		g.timeout = d
	}
}

// SystemPrompt はバックエンドへ渡すシステムプロンプトです。
func SystemPrompt() string {
	return systemPrompt
}
