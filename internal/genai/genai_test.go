// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-workflow/internal/httputil"
	"github.com/pdiddy/content-workflow/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

// pngHeader is enough of a PNG file for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// --- OpenAI ---

func openAIServer(t *testing.T, handler http.HandlerFunc) *OpenAIBackend {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	b, err := NewOpenAIBackend(types.AIConfig{
		Provider: types.ProviderOpenAI,
		Model:    "gpt-test",
		APIKey:   "sk-test",
		BaseURL:  ts.URL + "/",
	}, option.WithMaxRetries(0))
	require.NoError(t, err)
	return b
}

func TestOpenAIBackend_GenerateText(t *testing.T) {
	var gotBody map[string]any
	b := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		data, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(data, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "chatcmpl-1", "object": "chat.completion", "created": 1, "model": "gpt-test",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "# Draft\n\nBody"}}]
		}`)
	})

	out, err := b.GenerateText(context.Background(), Prompt{System: "be brief", User: "write"})
	require.NoError(t, err)
	assert.Equal(t, "# Draft\n\nBody", out)

	assert.Equal(t, "gpt-test", gotBody["model"])
	msgs, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 2)
}

func TestOpenAIBackend_GenerateText_EmptyChoices(t *testing.T) {
	b := openAIServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": "x", "object": "chat.completion", "created": 1, "model": "gpt-test", "choices": []}`)
	})

	_, err := b.GenerateText(context.Background(), Prompt{User: "write"})
	assert.EqualError(t, err, "openai: empty choices")
}

func TestOpenAIBackend_GenerateImage(t *testing.T) {
	var gotBody map[string]any
	b := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/images/generations"), r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(data, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"created": 1,
			"data":    []map[string]any{{"b64_json": base64.StdEncoding.EncodeToString(pngHeader)}},
		})
	})

	img, err := b.GenerateImage(context.Background(), "a lighthouse")
	require.NoError(t, err)
	assert.Equal(t, pngHeader, img.Data)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, "png", img.Extension())

	assert.Equal(t, "a lighthouse", gotBody["prompt"])
	assert.Equal(t, DefaultOpenAIImageModel, gotBody["model"])
	assert.Equal(t, "b64_json", gotBody["response_format"])
}

func TestOpenAIBackend_GenerateImage_URLOnly(t *testing.T) {
	b := openAIServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"created": 1, "data": [{"url": "https://example.com/img.png"}]}`)
	})

	_, err := b.GenerateImage(context.Background(), "a lighthouse")
	assert.ErrorIs(t, err, ErrNoImageData)
}

func TestOpenAIBackend_GenerateImage_APIError(t *testing.T) {
	b := openAIServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error": {"message": "bad prompt", "type": "invalid_request_error"}}`)
	})

	_, err := b.GenerateImage(context.Background(), "a lighthouse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai image generation")
}

func TestNewOpenAIBackend_Validation(t *testing.T) {
	_, err := NewOpenAIBackend(types.AIConfig{Model: "m"})
	assert.ErrorContains(t, err, "api key missing")

	_, err = NewOpenAIBackend(types.AIConfig{APIKey: "k"})
	assert.ErrorContains(t, err, "model is required")
}

// --- Anthropic ---

func withAnthropicServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	old := anthropicAPIURL
	anthropicAPIURL = ts.URL
	t.Cleanup(func() { anthropicAPIURL = old })
}

func TestAnthropicBackend_GenerateText(t *testing.T) {
	var got anthropicRequest
	withAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ak-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"content": [{"type": "text", "text": "Hello "}, {"type": "tool_use"}, {"type": "text", "text": "world"}]}`)
	})

	b, err := NewAnthropicBackend(types.AIConfig{Model: "claude-test", APIKey: "ak-test"})
	require.NoError(t, err)

	out, err := b.GenerateText(context.Background(), Prompt{System: "sys", User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", out)
	assert.Equal(t, "claude-test", got.Model)
	assert.Equal(t, "sys", got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hi", got.Messages[0].Content)
}

func TestAnthropicBackend_RetriesOverload(t *testing.T) {
	var calls int32
	withAnthropicServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(529)
			return
		}
		io.WriteString(w, `{"content": [{"type": "text", "text": "ok"}]}`)
	})

	b := &AnthropicBackend{APIKey: "k", Model: "m"}
	out, err := b.GenerateText(context.Background(), Prompt{User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestAnthropicBackend_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "non-200", status: http.StatusUnauthorized, body: `{"error": "nope"}`, wantErr: "returned 401"},
		{name: "no text blocks", status: http.StatusOK, body: `{"content": []}`, wantErr: "no text content"},
		{name: "bad json", status: http.StatusOK, body: `{`, wantErr: "decoding Anthropic response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withAnthropicServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			b := &AnthropicBackend{APIKey: "k", Model: "m"}
			_, err := b.GenerateText(context.Background(), Prompt{User: "hi"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// --- factory and helpers ---

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       types.AIConfig
		wantText  bool
		wantImage bool
		wantErr   string
	}{
		{name: "template", cfg: types.AIConfig{Provider: types.ProviderTemplate}},
		{name: "empty provider", cfg: types.AIConfig{}},
		{name: "mock", cfg: types.AIConfig{Provider: types.ProviderMock}, wantText: true},
		{name: "openai", cfg: types.AIConfig{Provider: types.ProviderOpenAI, Model: "m", APIKey: "k"}, wantText: true, wantImage: true},
		{name: "deepseek", cfg: types.AIConfig{Provider: types.ProviderDeepSeek, Model: "m", APIKey: "k", BaseURL: "https://api.deepseek.com"}, wantText: true},
		{name: "deepseek without base url", cfg: types.AIConfig{Provider: types.ProviderDeepSeek, Model: "m", APIKey: "k"}, wantErr: "requires base_url"},
		{name: "anthropic", cfg: types.AIConfig{Provider: types.ProviderAnthropic, Model: "m", APIKey: "k"}, wantText: true},
		{name: "anthropic without key", cfg: types.AIConfig{Provider: types.ProviderAnthropic, Model: "m"}, wantErr: "api key missing"},
		{name: "unknown", cfg: types.AIConfig{Provider: "gemini"}, wantErr: "not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, b.Text != nil)
			assert.Equal(t, tt.wantImage, b.Image != nil)
		})
	}
}

func TestImageExtension(t *testing.T) {
	tests := map[string]string{
		"image/png":  "png",
		"image/jpeg": "jpg",
		"image/jpg":  "jpg",
		"image/webp": "webp",
		"IMAGE/WEBP": "webp",
		"":           "png",
	}
	for mime, want := range tests {
		assert.Equal(t, want, Image{MIMEType: mime}.Extension(), mime)
	}
}

func TestMockBackend(t *testing.T) {
	out, err := MockBackend{}.GenerateText(context.Background(), Prompt{User: "Topic: Go\nmore"})
	require.NoError(t, err)
	assert.Equal(t, "Generated offline for: Topic: Go", out)
}
