package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func completionJSON(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gemini-2.5-flash",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]int{
			"prompt_tokens":     12,
			"completion_tokens": 7,
			"total_tokens":      19,
		},
	}
}

func newTestOpenAIClient(t *testing.T, url string) *OpenAIClient {
	t.Helper()
	client, err := NewOpenAIClient(OpenAIConfig{
		Name:    "gemini",
		APIKey:  "test-key",
		BaseURL: url + "/",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewOpenAIClient() error = %v", err)
	}
	return client
}

func TestOpenAIClient_Chat(t *testing.T) {
	t.Run("sends image and schema", func(t *testing.T) {
		var body map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
				t.Errorf("unexpected authorization: %s", auth)
			}
			raw, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(raw, &body); err != nil {
				t.Errorf("request body is not JSON: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(completionJSON(`{"ok":true}`))
		}))
		defer server.Close()

		client := newTestOpenAIClient(t, server.URL)
		result, err := client.Chat(context.Background(), &ChatRequest{
			Messages: []Message{
				{Role: "user", Content: "analyze", Images: [][]byte{pngHeader}},
			},
			Temperature: 0.2,
			ResponseFormat: &ResponseFormat{
				Type:       "json_schema",
				JSONSchema: json.RawMessage(`{"name":"nutriscan_test","strict":false,"schema":{"type":"object"}}`),
			},
		})
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if !result.Success {
			t.Error("Success = false, want true")
		}
		if result.Content != `{"ok":true}` {
			t.Errorf("Content = %q", result.Content)
		}
		if result.TotalTokens != 19 {
			t.Errorf("TotalTokens = %d, want 19", result.TotalTokens)
		}
		if result.Provider != "gemini" {
			t.Errorf("Provider = %q, want gemini", result.Provider)
		}
		if result.RequestID == "" {
			t.Error("RequestID should be generated")
		}

		if body["model"] != GeminiDefaultModel {
			t.Errorf("model = %v, want %s", body["model"], GeminiDefaultModel)
		}
		rf, _ := body["response_format"].(map[string]any)
		if rf["type"] != "json_schema" {
			t.Errorf("response_format.type = %v", rf["type"])
		}
		js, _ := rf["json_schema"].(map[string]any)
		if js["name"] != "nutriscan_test" {
			t.Errorf("json_schema.name = %v", js["name"])
		}

		msgs, _ := body["messages"].([]any)
		if len(msgs) != 1 {
			t.Fatalf("messages = %d, want 1", len(msgs))
		}
		raw, _ := json.Marshal(msgs[0])
		if !strings.Contains(string(raw), "data:image/png;base64,") {
			t.Errorf("image should be sent as a png data URL: %s", raw)
		}
	})

	t.Run("rate limited is a single attempt", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "3")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"quota exceeded","type":"rate_limit"}}`))
		}))
		defer server.Close()

		client := newTestOpenAIClient(t, server.URL)
		_, err := client.Chat(context.Background(), &ChatRequest{
			Messages: []Message{{Role: "user", Content: "hi"}},
		})

		var rle *RateLimitError
		if !errors.As(err, &rle) {
			t.Fatalf("expected RateLimitError, got %T: %v", err, err)
		}
		if rle.RetryAfter != 3*time.Second {
			t.Errorf("RetryAfter = %v, want 3s", rle.RetryAfter)
		}
		if rle.Message != "quota exceeded" {
			t.Errorf("Message = %q", rle.Message)
		}
		if got := hits.Load(); got != 1 {
			t.Errorf("server hit %d times, want 1", got)
		}
	})

	t.Run("rejected key is an auth error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
		}))
		defer server.Close()

		client := newTestOpenAIClient(t, server.URL)
		_, err := client.Chat(context.Background(), &ChatRequest{
			Messages: []Message{{Role: "user", Content: "hi"}},
		})
		if !IsAuthError(err) {
			t.Fatalf("expected auth error, got %v", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":{"message":"boom"}}`))
		}))
		defer server.Close()

		client := newTestOpenAIClient(t, server.URL)
		result, err := client.Chat(context.Background(), &ChatRequest{
			Messages: []Message{{Role: "user", Content: "hi"}},
		})

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %T: %v", err, err)
		}
		if apiErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("StatusCode = %d", apiErr.StatusCode)
		}
		if apiErr.IsAuth() {
			t.Error("500 should not be an auth error")
		}
		if result == nil || result.Success {
			t.Error("result should be returned with Success = false")
		}
	})
}

func TestNewOpenAIClient_MissingKey(t *testing.T) {
	_, err := NewOpenAIClient(OpenAIConfig{})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestImageMediaType(t *testing.T) {
	tests := []struct {
		name string
		img  []byte
		want string
	}{
		{"png", pngHeader, "image/png"},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0}, "image/jpeg"},
		{"unknown falls back to jpeg", []byte("not an image"), "image/jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := imageMediaType(tt.img); got != tt.want {
				t.Errorf("imageMediaType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter(""); got != 0 {
		t.Errorf("empty = %v, want 0", got)
	}
	if got := parseRetryAfter("10"); got != 10*time.Second {
		t.Errorf("10 = %v, want 10s", got)
	}
	if got := parseRetryAfter("soon"); got != 0 {
		t.Errorf("garbage = %v, want 0", got)
	}
}
