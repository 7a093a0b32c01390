package generator

import (
	"fmt"
	"strings"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
)

const (
	freeformTemplate = `You are a poet who generates poems based on images.

Analyze the attached image: its subject, theme, tone, and imagery.
Then compose a poem that reflects those visual aspects and follows these style preferences.

Style preferences: %s`

	lengthTemplate = `You are a poet who generates poems based on images.

You will analyze the attached image and compose a poem that reflects its visual aspects, theme, tone, and imagery.

The poem should be of the following length: %s`

	toneTemplate = `You are a skilled poet who can generate poems from images.

Given the attached image and requested tone, write a poem inspired by the image.
The poem should reflect the specified tone.

Tone: %s`
)

// BuildPrompt はスタイル指示の種類ごとに固定テンプレートへ値を1つ埋め込みます。
// 画像そのものは別パートとして送るため、プロンプトには含めません。
func BuildPrompt(directive domain.StyleDirective) (string, error) {
	if directive == nil {
		return "", fmt.Errorf("%w: style directive is required", domain.ErrValidation)
	}
	if err := directive.Validate(); err != nil {
		return "", err
	}

	var body string
	switch d := directive.(type) {
	case domain.FreeformStyle:
		body = fmt.Sprintf(freeformTemplate, strings.TrimSpace(d.Text))
	case domain.LengthDirective:
		body = fmt.Sprintf(lengthTemplate, d.Length)
	case domain.ToneDirective:
		body = fmt.Sprintf(toneTemplate, strings.TrimSpace(d.Tone))
	default:
		return "", fmt.Errorf("%w: unsupported style directive %T", domain.ErrValidation, directive)
	}

	return body + "\n\n" + outputInstruction, nil
}
