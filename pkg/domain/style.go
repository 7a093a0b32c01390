package domain

import (
	"fmt"
	"strings"
)

// PoemLength は詩の長さの列挙値です。
type PoemLength string

const (
	LengthShort  PoemLength = "short"
	LengthMedium PoemLength = "medium"
	LengthLong   PoemLength = "long"
)

// 呼び出し側 (UI / サーバー / CLI) が明示的に適用するデフォルト値です。
// プロトコル層はこれらを暗黙に補いません。
const (
	DefaultTone   = "eloquent and insightful"
	DefaultLength = LengthMedium
)

// PoemLengths は受け付ける長さの一覧です。
var PoemLengths = []PoemLength{LengthShort, LengthMedium, LengthLong}

// Valid は列挙値のいずれかであるかを返します。
func (l PoemLength) Valid() bool {
	switch l {
	case LengthShort, LengthMedium, LengthLong:
		return true
	}
	return false
}

// ParsePoemLength は文字列を PoemLength に変換します。
// 大文字小文字の補正や空文字のデフォルト置換は行いません。
func ParsePoemLength(s string) (PoemLength, error) {
	l := PoemLength(s)
	if !l.Valid() {
		return "", validationErrorf("poem length must be one of short, medium, long: got %q", s)
	}
	return l, nil
}

// StylePreferences は初回生成用の自由記述スタイルを組み立てます。
func StylePreferences(tone string, length PoemLength) string {
	return fmt.Sprintf("Tone: %s. Length: %s.", tone, length)
}

// DefaultStylePreferences はデフォルトのトーンと長さから組み立てたスタイルです。
func DefaultStylePreferences() string {
	return StylePreferences(DefaultTone, DefaultLength)
}

// StyleDirective は生成時のスタイル指示を表すタグ付き共用体です。
// 実装は FreeformStyle / LengthDirective / ToneDirective の3種類に限られます。
type StyleDirective interface {
	Validate() error
	isStyleDirective()
}

// FreeformStyle は初回生成で使う自由記述のスタイル指定です。
type FreeformStyle struct {
	Text string
}

// LengthDirective は長さだけを変えて再生成する指示です。
type LengthDirective struct {
	Length PoemLength
}

// ToneDirective はトーンだけを変えて再生成する指示です。
type ToneDirective struct {
	Tone string
}

func (FreeformStyle) isStyleDirective()   {}
func (LengthDirective) isStyleDirective() {}
func (ToneDirective) isStyleDirective()   {}

func (d FreeformStyle) Validate() error {
	if strings.TrimSpace(d.Text) == "" {
		return validationErrorf("style preferences are required")
	}
	return nil
}

func (d LengthDirective) Validate() error {
	_, err := ParsePoemLength(string(d.Length))
	return err
}

func (d ToneDirective) Validate() error {
	if strings.TrimSpace(d.Tone) == "" {
		return validationErrorf("tone is required")
	}
	return nil
}
