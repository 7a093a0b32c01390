package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	dataURIScheme = "data:"
	base64Marker  = ";base64,"
)

// ImagePayload は `data:<mime-type>;base64,<payload>` 形式の自己記述型画像です。
// 一度生成された値は書き換えず、そのままモデルへ渡します。
type ImagePayload string

// DataURI は ImagePayload を分解した結果です。
type DataURI struct {
	MIMEType string
	Data     []byte
}

// Validate はデータURIとしての一般的な形だけを検証します。
// MIMEタイプのホワイトリストやサイズ上限は呼び出し側のポリシーです。
func (p ImagePayload) Validate() error {
	_, err := p.Parse()
	return err
}

// Parse はペイロードを検証し、MIMEタイプとデコード済みバイト列を返します。
func (p ImagePayload) Parse() (DataURI, error) {
	mimeType, encoded, err := p.split()
	if err != nil {
		return DataURI{}, err
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return DataURI{}, validationErrorf("image payload is not valid base64: %v", err)
	}
	return DataURI{MIMEType: mimeType, Data: data}, nil
}

// MIMEType はヘッダ部のMIMEタイプを返します。形式が不正な場合は空文字です。
func (p ImagePayload) MIMEType() string {
	mimeType, _, err := p.split()
	if err != nil {
		return ""
	}
	return mimeType
}

// DecodedLen はデコード後のバイト数をデコードせずに算出します。
func (p ImagePayload) DecodedLen() (int, error) {
	_, encoded, err := p.split()
	if err != nil {
		return 0, err
	}
	return base64.StdEncoding.DecodedLen(len(encoded)) - strings.Count(encoded[max(0, len(encoded)-2):], "="), nil
}

func (p ImagePayload) split() (mimeType, encoded string, err error) {
	s := string(p)
	if s == "" {
		return "", "", validationErrorf("image payload is empty")
	}
	rest, ok := strings.CutPrefix(s, dataURIScheme)
	if !ok {
		return "", "", validationErrorf("image payload must start with %q", dataURIScheme)
	}
	header, encoded, ok := strings.Cut(rest, base64Marker)
	if !ok {
		return "", "", validationErrorf("image payload must be base64 encoded (missing %q)", base64Marker)
	}

	// ;charset=... などのパラメータは許容するが、先頭は type/subtype であること
	mimeType, _, _ = strings.Cut(header, ";")
	if !validMIMEType(mimeType) {
		return "", "", validationErrorf("image payload has an invalid mime type: %q", mimeType)
	}
	if encoded == "" {
		return "", "", validationErrorf("image payload has no data")
	}
	return mimeType, encoded, nil
}

func validMIMEType(s string) bool {
	typ, sub, ok := strings.Cut(s, "/")
	if !ok || typ == "" || sub == "" {
		return false
	}
	return !strings.ContainsAny(s, " \t\r\n,") && !strings.Contains(sub, "/")
}

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
