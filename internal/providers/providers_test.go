package providers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMockClient(t *testing.T) {
	t.Run("chat", func(t *testing.T) {
		c := NewMockClient()
		c.ResponseText = "hello world"

		result, err := c.Chat(context.Background(), &ChatRequest{
			Model: "test-model",
			Messages: []Message{
				{Role: "user", Content: "test"},
			},
		})

		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if !result.Success {
			t.Errorf("Success = false, want true")
		}
		if result.Content != "hello world" {
			t.Errorf("Content = %q, want %q", result.Content, "hello world")
		}
		if c.RequestCount() != 1 {
			t.Errorf("RequestCount = %d, want 1", c.RequestCount())
		}
		if last := c.LastRequest(); last == nil || last.Model != "test-model" {
			t.Errorf("LastRequest() = %+v", last)
		}
	})

	t.Run("configured failure", func(t *testing.T) {
		c := NewMockClient()
		c.ShouldFail = true

		result, err := c.Chat(context.Background(), &ChatRequest{})
		if err == nil {
			t.Fatal("expected error")
		}
		if result.Success {
			t.Error("Success = true, want false")
		}
	})

	t.Run("custom error", func(t *testing.T) {
		c := NewMockClient()
		c.Err = &APIError{Provider: "mock", StatusCode: 401}

		_, err := c.Chat(context.Background(), &ChatRequest{})
		if !IsAuthError(err) {
			t.Errorf("expected auth error, got %v", err)
		}
	})

	t.Run("context cancelled during latency", func(t *testing.T) {
		c := NewMockClient()
		c.Latency = time.Second

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := c.Chat(ctx, &ChatRequest{})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected deadline exceeded, got %v", err)
		}
	})

	t.Run("concurrent requests", func(t *testing.T) {
		c := NewMockClient()
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Chat(context.Background(), &ChatRequest{})
			}()
		}
		wg.Wait()

		if c.RequestCount() != 20 {
			t.Errorf("RequestCount = %d, want 20", c.RequestCount())
		}
		c.Reset()
		if c.RequestCount() != 0 {
			t.Errorf("RequestCount after Reset = %d, want 0", c.RequestCount())
		}
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		status int
		auth   bool
	}{
		{401, true},
		{403, true},
		{400, false},
		{500, false},
	}
	for _, tt := range tests {
		err := &APIError{Provider: "p", StatusCode: tt.status, Message: "m"}
		if err.IsAuth() != tt.auth {
			t.Errorf("status %d: IsAuth() = %v, want %v", tt.status, err.IsAuth(), tt.auth)
		}
	}

	if _, ok := statusError("p", 429, "slow down", nil).(*RateLimitError); !ok {
		t.Error("429 should map to RateLimitError")
	}
}
