package imgutil

import (
	"fmt"
	"strings"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
)

// DefaultMaxBytes はアップロード画像のデフォルト上限 (5MB) です。
const DefaultMaxBytes = 5 * 1024 * 1024

// DefaultMIMETypes は受け付ける画像形式のデフォルトです。
var DefaultMIMETypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

var (
	// ErrTooLarge と ErrUnsupportedType は domain.ErrValidation としても判定できます。
	ErrTooLarge        = fmt.Errorf("%w: image is too large", domain.ErrValidation)
	ErrUnsupportedType = fmt.Errorf("%w: unsupported image type", domain.ErrValidation)
)

// UploadPolicy は呼び出し側で適用するサイズと形式の制限です。
// MaxBytes が 0 以下なら無制限、MIMETypes が空なら image/* すべてを許可します。
type UploadPolicy struct {
	MaxBytes  int
	MIMETypes []string
}

func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxBytes:  DefaultMaxBytes,
		MIMETypes: append([]string(nil), DefaultMIMETypes...),
	}
}

// Check はデータURIの形、デコード後のサイズ、MIMEタイプを検証します。
func (p UploadPolicy) Check(image domain.ImagePayload) error {
	n, err := image.DecodedLen()
	if err != nil {
		return err
	}
	if err := p.checkSize(n); err != nil {
		return err
	}
	return p.checkType(image.MIMEType())
}

func (p UploadPolicy) checkSize(n int) error {
	if p.MaxBytes > 0 && n > p.MaxBytes {
		return fmt.Errorf("%w: %d bytes exceeds the limit of %d bytes", ErrTooLarge, n, p.MaxBytes)
	}
	return nil
}

func (p UploadPolicy) checkType(mimeType string) error {
	if len(p.MIMETypes) == 0 {
		if strings.HasPrefix(mimeType, "image/") {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	for _, allowed := range p.MIMETypes {
		if strings.EqualFold(allowed, mimeType) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s (allowed: %s)", ErrUnsupportedType, mimeType, strings.Join(p.MIMETypes, ", "))
}
