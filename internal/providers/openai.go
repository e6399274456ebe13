package providers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIName = "openai"

	// GeminiOpenAIBaseURL is Gemini's OpenAI-compatible endpoint.
	GeminiOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	GeminiDefaultModel  = "gemini-2.5-flash"
)

// OpenAIConfig holds configuration for an OpenAI-compatible chat client.
type OpenAIConfig struct {
	Name         string        // Registry name, defaults to "openai"
	APIKey       string
	BaseURL      string        // Defaults to the Gemini compatibility endpoint
	DefaultModel string        // Defaults to gemini-2.5-flash
	Timeout      time.Duration // HTTP timeout, 0 means none
	HTTPClient   *http.Client  // Optional (tests)
	Logger       *slog.Logger
}

// OpenAIClient implements LLMClient using the official OpenAI SDK against
// any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	name         string
	defaultModel string
	client       openai.Client
	logger       *slog.Logger
}

// NewOpenAIClient creates a new client. SDK retries are disabled so each
// Chat call is a single round trip.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Name == "" {
		cfg.Name = OpenAIName
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = GeminiOpenAIBaseURL
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = GeminiDefaultModel
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)

	return &OpenAIClient{
		name:         cfg.Name,
		defaultModel: cfg.DefaultModel,
		client:       client,
		logger:       cfg.Logger,
	}, nil
}

// Name returns the client identifier.
func (c *OpenAIClient) Name() string {
	return c.name
}

// Model returns the default model.
func (c *OpenAIClient) Model() string {
	return c.defaultModel
}

// Chat sends one chat completion request.
func (c *OpenAIClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	result := &ChatResult{
		RequestID: requestID,
		Provider:  c.name,
		ModelUsed: model,
	}

	params, err := c.buildParams(model, req)
	if err != nil {
		result.ErrorType = "request_build"
		result.ErrorMessage = err.Error()
		return result, err
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	result.ExecutionTime = time.Since(start)
	if err != nil {
		mapped := mapOpenAIError(c.name, err)
		result.ErrorType = "http_error"
		result.ErrorMessage = mapped.Error()
		c.logger.Warn("chat completion failed", "provider", c.name, "model", model, "request_id", requestID, "error", mapped)
		return result, mapped
	}

	if len(resp.Choices) == 0 {
		result.ErrorType = "empty_response"
		result.ErrorMessage = "no choices in response"
		return result, fmt.Errorf("%s: no choices in response", c.name)
	}

	result.Success = true
	result.Content = resp.Choices[0].Message.Content
	result.FinishReason = resp.Choices[0].FinishReason
	if resp.Model != "" {
		result.ModelUsed = resp.Model
	}
	result.PromptTokens = int(resp.Usage.PromptTokens)
	result.CompletionTokens = int(resp.Usage.CompletionTokens)
	result.TotalTokens = int(resp.Usage.TotalTokens)

	c.logger.Debug("chat completion finished",
		"provider", c.name,
		"model", result.ModelUsed,
		"request_id", requestID,
		"tokens", result.TotalTokens,
		"elapsed", result.ExecutionTime)

	return result, nil
}

func (c *OpenAIClient) buildParams(model string, req *ChatRequest) (openai.ChatCompletionNewParams, error) {
	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)),
	}

	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case "assistant":
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			if len(m.Images) == 0 {
				params.Messages = append(params.Messages, openai.UserMessage(m.Content))
				continue
			}
			parts := []openai.ChatCompletionContentPartUnionParam{openai.TextContentPart(m.Content)}
			for _, img := range m.Images {
				parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL(img),
				}))
			}
			params.Messages = append(params.Messages, openai.UserMessage(parts))
		}
	}

	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	if req.ResponseFormat != nil && len(req.ResponseFormat.JSONSchema) > 0 {
		var wrapper struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Strict      *bool  `json:"strict"`
			Schema      any    `json:"schema"`
		}
		if err := json.Unmarshal(req.ResponseFormat.JSONSchema, &wrapper); err != nil {
			return params, fmt.Errorf("invalid response format schema: %w", err)
		}
		jsonSchema := openai.ResponseFormatJSONSchemaJSONSchemaParam{
			Name:   wrapper.Name,
			Schema: wrapper.Schema,
		}
		if wrapper.Description != "" {
			jsonSchema.Description = openai.String(wrapper.Description)
		}
		if wrapper.Strict != nil {
			jsonSchema.Strict = openai.Bool(*wrapper.Strict)
		}
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: jsonSchema},
		}
	}

	return params, nil
}

// dataURL encodes an image as a data: URL with its sniffed media type.
func dataURL(img []byte) string {
	return "data:" + imageMediaType(img) + ";base64," + base64.StdEncoding.EncodeToString(img)
}

// imageMediaType sniffs the image type, falling back to JPEG.
func imageMediaType(img []byte) string {
	mt := http.DetectContentType(img)
	switch mt {
	case "image/png", "image/jpeg", "image/webp", "image/gif":
		return mt
	default:
		return "image/jpeg"
	}
}

// Verify interface
var _ LLMClient = (*OpenAIClient)(nil)
