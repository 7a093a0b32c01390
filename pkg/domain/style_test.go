package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoemLength(t *testing.T) {
	for _, l := range PoemLengths {
		got, err := ParsePoemLength(string(l))
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	for _, s := range []string{"", "epic", "Short", " medium", "LONG"} {
		_, err := ParsePoemLength(s)
		assert.ErrorIs(t, err, ErrValidation, "input %q", s)
	}
}

func TestDefaultStylePreferences(t *testing.T) {
	assert.Equal(t, "eloquent and insightful", DefaultTone)
	assert.Equal(t, LengthMedium, DefaultLength)
	assert.Equal(t, "Tone: eloquent and insightful. Length: medium.", DefaultStylePreferences())
	assert.Equal(t, "Tone: joyful. Length: short.", StylePreferences("joyful", LengthShort))
}

func TestStyleDirective_Validate(t *testing.T) {
	tests := []struct {
		name      string
		directive StyleDirective
		wantErr   bool
	}{
		{"自由記述", FreeformStyle{Text: "Tone: joyful. Length: short."}, false},
		{"自由記述が空", FreeformStyle{Text: ""}, true},
		{"自由記述が空白のみ", FreeformStyle{Text: "  \n"}, true},
		{"長さ", LengthDirective{Length: LengthLong}, false},
		{"未知の長さ", LengthDirective{Length: "epic"}, true},
		{"長さ未指定", LengthDirective{}, true},
		{"トーン", ToneDirective{Tone: "melancholic"}, false},
		{"トーンが空", ToneDirective{Tone: ""}, true},
		{"トーンが空白のみ", ToneDirective{Tone: "\t "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.directive.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}
