package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model          string  `json:"model"`
	Temperature    float64 `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"messages"`
}

type contentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	ImageURL struct {
		URL string `json:"url"`
	} `json:"image_url"`
}

func chatCompletion(content, finishReason string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": finishReason,
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	}
}

func newOpenAITestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewOpenAIBackend(t *testing.T) {
	_, err := NewOpenAIBackend(OpenAIConfig{Model: "gpt-4o-mini"}, Options{})
	assert.EqualError(t, err, "apiKey is required")

	_, err = NewOpenAIBackend(OpenAIConfig{APIKey: "k"}, Options{})
	assert.EqualError(t, err, "model is required")
}

func TestOpenAIBackend_Complete(t *testing.T) {
	ctx := context.Background()
	req := domain.ModelRequest{
		Image:        testImage,
		SystemPrompt: "You are a poet.",
		Prompt:       "Tone: wistful",
	}

	t.Run("データURIをimage_urlとしてそのまま送るのだ", func(t *testing.T) {
		var got chatRequest
		srv := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(chatCompletion(`{"poem": "autumn light"}`, "stop"))
		})

		temp := float32(0.5)
		b, err := NewOpenAIBackend(OpenAIConfig{
			APIKey:     "test-key",
			Model:      "gpt-4o-mini",
			BaseURL:    srv.URL + "/v1/",
			HTTPClient: srv.Client(),
		}, Options{Temperature: &temp})
		require.NoError(t, err)

		text, err := b.Complete(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, `{"poem": "autumn light"}`, text)

		assert.Equal(t, "gpt-4o-mini", got.Model)
		assert.InDelta(t, 0.5, got.Temperature, 1e-6)
		assert.Equal(t, "json_object", got.ResponseFormat.Type)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Equal(t, "user", got.Messages[1].Role)

		var parts []contentPart
		require.NoError(t, json.Unmarshal(got.Messages[1].Content, &parts))
		require.Len(t, parts, 2)
		assert.Equal(t, "Tone: wistful", parts[0].Text)
		assert.Equal(t, string(testImage), parts[1].ImageURL.URL)
	})

	t.Run("サーバーエラーはリトライせずに返すのだ", func(t *testing.T) {
		var calls atomic.Int32
		srv := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
		})

		b, err := NewOpenAIBackend(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1/"}, Options{})
		require.NoError(t, err)

		_, err = b.Complete(ctx, req)
		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("コンテンツフィルタで止まった場合はエラーなのだ", func(t *testing.T) {
		srv := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(chatCompletion("", "content_filter"))
		})

		b, err := NewOpenAIBackend(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1/"}, Options{})
		require.NoError(t, err)

		_, err = b.Complete(ctx, req)
		assert.Error(t, err)
	})

	t.Run("choicesが空なら空文字を返すのだ", func(t *testing.T) {
		srv := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": "x", "object": "chat.completion", "created": 1, "model": "gpt-4o-mini", "choices": []}`))
		})

		b, err := NewOpenAIBackend(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1/"}, Options{})
		require.NoError(t, err)

		text, err := b.Complete(ctx, req)
		require.NoError(t, err)
		assert.Empty(t, text)
	})
}
