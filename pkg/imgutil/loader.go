package imgutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// Loader はさまざまな入力元から画像を読み込み、データURIに変換します。
// 対応する入力: データURI, http(s)://, gs://, ローカルファイル。
type Loader struct {
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
	policy     UploadPolicy
}

// NewLoader は依存関係を注入して Loader を初期化します。
// httpClient と reader は nil を許容し、その場合は対応する入力元が使えません。
func NewLoader(httpClient httpkit.ClientInterface, reader remoteio.InputReader, policy UploadPolicy) *Loader {
	return &Loader{
		httpClient: httpClient,
		reader:     reader,
		policy:     policy,
	}
}

// Policy は Loader に設定されたアップロードポリシーを返します。
func (l *Loader) Policy() UploadPolicy {
	return l.policy
}

// Load は src を読み込み、ポリシーを満たすデータURIを返します。
// データURIが渡された場合は検証のみ行い、文字列はそのまま返します。
func (l *Loader) Load(ctx context.Context, src string) (domain.ImagePayload, error) {
	src = strings.TrimSpace(src)
	switch {
	case src == "":
		return "", fmt.Errorf("%w: image source is empty", domain.ErrValidation)
	case strings.HasPrefix(src, "data:"):
		image := domain.ImagePayload(src)
		if err := l.policy.Check(image); err != nil {
			return "", err
		}
		return image, nil
	}

	data, err := l.fetch(ctx, src)
	if err != nil {
		return "", err
	}
	return FromBytes(data, l.policy)
}

func (l *Loader) fetch(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		if l.httpClient == nil {
			return nil, fmt.Errorf("httpClient is required for %s", src)
		}
		if safe, err := IsSafeURL(src); err != nil || !safe {
			slog.WarnContext(ctx, "SSRFの可能性がある、または不正なURLをブロックしました", "url", src, "error", err)
			return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
		}
		data, err := l.httpClient.FetchBytes(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("画像のダウンロードに失敗しました: %w", err)
		}
		return data, nil

	case strings.HasPrefix(src, "gs://"):
		if l.reader == nil {
			return nil, fmt.Errorf("reader is required for %s", src)
		}
		rc, err := l.reader.Open(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("GCSからの読み込みに失敗しました: %w", err)
		}
		defer rc.Close()
		return l.readAll(rc)

	default:
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("画像ファイルを開けませんでした: %w", err)
		}
		defer f.Close()
		return l.readAll(f)
	}
}

// readAll はポリシーの上限 + 1 バイトまでしか読みません。
func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	if l.policy.MaxBytes > 0 {
		r = io.LimitReader(r, int64(l.policy.MaxBytes)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("画像の読み込みに失敗しました: %w", err)
	}
	return data, nil
}
