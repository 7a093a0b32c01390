package generator

import (
	"testing"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name      string
		directive domain.StyleDirective
		want      string
		wantErr   bool
	}{
		{
			name:      "自由記述",
			directive: domain.FreeformStyle{Text: "  Tone: joyful. Length: short. "},
			want:      "Style preferences: Tone: joyful. Length: short.",
		},
		{
			name:      "長さ",
			directive: domain.LengthDirective{Length: domain.LengthLong},
			want:      "The poem should be of the following length: long",
		},
		{
			name:      "トーン",
			directive: domain.ToneDirective{Tone: "nostalgic"},
			want:      "Tone: nostalgic",
		},
		{name: "nil", directive: nil, wantErr: true},
		{name: "空の自由記述", directive: domain.FreeformStyle{}, wantErr: true},
		{name: "未知の長さ", directive: domain.LengthDirective{Length: "epic"}, wantErr: true},
		{name: "大文字の長さ", directive: domain.LengthDirective{Length: "Short"}, wantErr: true},
		{name: "空白のトーン", directive: domain.ToneDirective{Tone: "  "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildPrompt(tt.directive)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, got, tt.want)
			assert.Contains(t, got, outputInstruction)
		})
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	d := domain.ToneDirective{Tone: "serene"}
	a, err := BuildPrompt(d)
	require.NoError(t, err)
	b, err := BuildPrompt(d)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
