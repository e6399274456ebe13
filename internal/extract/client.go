// Package extract issues one structured-output request to the reasoning
// service and returns its raw text. It never retries and never trusts the
// shape of what comes back; that is the validator's job.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Aayushman-oss/nutriscan-ai/internal/providers"
	"github.com/Aayushman-oss/nutriscan-ai/internal/schema"
)

var (
	// ErrInvalidConfiguration means the client cannot be used at all, e.g.
	// the credential is missing or was rejected.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrServiceUnavailable covers transport failures, timeouts, quota and
	// other non-2xx responses for a single call.
	ErrServiceUnavailable = errors.New("reasoning service unavailable")
	// ErrEmptyInput is returned when the payload has neither image nor text.
	ErrEmptyInput = errors.New("empty input")
)

// Payload is what the instructions are applied to: an image or a text query.
type Payload struct {
	Image []byte
	Text  string
}

// ImagePayload wraps raw image bytes.
func ImagePayload(img []byte) Payload {
	return Payload{Image: img}
}

// TextPayload wraps a text query.
func TextPayload(text string) Payload {
	return Payload{Text: text}
}

// Empty reports whether the payload carries nothing to analyze.
func (p Payload) Empty() bool {
	return len(p.Image) == 0 && strings.TrimSpace(p.Text) == ""
}

// Config configures a Client.
type Config struct {
	LLM         providers.LLMClient
	Model       string        // Overrides the client default when set
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration // Per call, 0 means the caller's context decides
	Logger      *slog.Logger
}

// Client invokes the reasoning service once per call.
type Client struct {
	llm         providers.LLMClient
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	logger      *slog.Logger
}

// New creates a client. A missing LLM is a configuration error.
func New(cfg Config) (*Client, error) {
	if cfg.LLM == nil {
		return nil, fmt.Errorf("%w: no reasoning service configured", ErrInvalidConfiguration)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		llm:         cfg.LLM,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		logger:      cfg.Logger,
	}, nil
}

// FromRegistry builds a client around the named provider. A provider that is
// enabled without a credential yields ErrInvalidConfiguration before any
// network call is made.
func FromRegistry(reg *providers.Registry, name string, cfg Config) (*Client, error) {
	llm, err := reg.GetLLM(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	cfg.LLM = llm
	return New(cfg)
}

// Provider returns the name of the underlying reasoning client.
func (c *Client) Provider() string {
	return c.llm.Name()
}

// Model returns the model requests are sent to.
func (c *Client) Model() string {
	if c.model != "" {
		return c.model
	}
	return c.llm.Model()
}

// Invoke sends instructions and payload in one request that asks for JSON
// matching contract, and returns the raw response text.
func (c *Client) Invoke(ctx context.Context, instructions string, payload Payload, contract schema.Contract) (string, error) {
	if payload.Empty() {
		return "", ErrEmptyInput
	}

	format, err := contract.JSONSchema()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := &providers.ChatRequest{
		Messages:    buildMessages(instructions, payload),
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		ResponseFormat: &providers.ResponseFormat{
			Type:       "json_schema",
			JSONSchema: format,
		},
		RequestID: RequestID(ctx),
	}

	c.logger.Debug("invoking reasoning service",
		"provider", c.llm.Name(),
		"model", c.Model(),
		"contract", contract.Name,
		"request_id", req.RequestID)

	result, err := c.llm.Chat(ctx, req)
	if err != nil {
		c.logger.Warn("reasoning service call failed",
			"provider", c.llm.Name(),
			"contract", contract.Name,
			"request_id", req.RequestID,
			"error", err)
		if providers.IsAuthError(err) || errors.Is(err, providers.ErrMissingAPIKey) {
			return "", fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		return "", fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	c.logger.Debug("reasoning service responded",
		"provider", result.Provider,
		"model", result.ModelUsed,
		"request_id", result.RequestID,
		"finish_reason", result.FinishReason,
		"tokens", result.TotalTokens,
		"elapsed", result.ExecutionTime)

	return result.Content, nil
}

// buildMessages puts an image next to the instructions in one user turn; a
// text query goes in its own user turn after the instructions.
func buildMessages(instructions string, payload Payload) []providers.Message {
	if len(payload.Image) > 0 {
		return []providers.Message{
			{Role: "user", Content: instructions, Images: [][]byte{payload.Image}},
		}
	}
	return []providers.Message{
		{Role: "system", Content: instructions},
		{Role: "user", Content: strings.TrimSpace(payload.Text)},
	}
}
