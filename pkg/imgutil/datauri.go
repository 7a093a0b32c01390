package imgutil

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
)

// EncodeDataURI はバイト列を `data:<mime>;base64,<payload>` 形式に変換します。
func EncodeDataURI(data []byte, mimeType string) domain.ImagePayload {
	return domain.ImagePayload("data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data))
}

// FromBytes は MIMEタイプを判定し、ポリシーを満たす場合のみデータURIに変換します。
// 画像の再エンコードや圧縮は行いません。
func FromBytes(data []byte, policy UploadPolicy) (domain.ImagePayload, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: image data is empty", domain.ErrValidation)
	}
	if err := policy.checkSize(len(data)); err != nil {
		return "", err
	}

	mimeType := http.DetectContentType(data)
	if err := policy.checkType(mimeType); err != nil {
		return "", err
	}
	return EncodeDataURI(data, mimeType), nil
}
