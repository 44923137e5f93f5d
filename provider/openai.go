package provider

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/ZaguanLabs/readlai"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Completer using the go-openai client against any
// OpenAI-compatible endpoint (OpenRouter by default).
type OpenAIProvider struct {
	credentials readlai.CredentialSource
	baseURL     string
	timeout     time.Duration
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	Credentials readlai.CredentialSource // API key source, resolved before every request
	BaseURL     string                   // API root (default: DefaultBaseURL)
	Timeout     time.Duration            // HTTP timeout (default: none)
}

// NewOpenAIProvider creates a new OpenAI-compatible provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &OpenAIProvider{
		credentials: cfg.Credentials,
		baseURL:     baseURL,
		timeout:     cfg.Timeout,
	}
}

// Complete sends one chat completion and returns the first choice's content.
func (p *OpenAIProvider) Complete(ctx context.Context, req ChatRequest) (string, error) {
	client, err := p.client(ctx)
	if err != nil {
		return "", err
	}

	// go-openai drops a zero temperature from the request body
	temperature := req.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", toTransportError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &readlai.TransportError{Message: "no choices"}
	}

	return resp.Choices[0].Message.Content, nil
}

// client builds a client for the current key.
func (p *OpenAIProvider) client(ctx context.Context) (*openai.Client, error) {
	if p.credentials == nil {
		return nil, &readlai.ConfigurationError{Message: "no API key source configured"}
	}
	key, err := p.credentials.APIKey(ctx)
	if err != nil {
		return nil, err
	}

	config := openai.DefaultConfig(key)
	config.BaseURL = p.baseURL
	if p.timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: p.timeout}
	}
	return openai.NewClientWithConfig(config), nil
}

// toTransportError maps go-openai errors to TransportError, keeping the
// HTTP status when the endpoint answered. go-openai consumes the response
// body, so Body carries the decoded error message rather than the raw text;
// use HTTPProvider when the verbatim body is needed.
func toTransportError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &readlai.TransportError{
			Message:    "endpoint returned error",
			StatusCode: apiErr.HTTPStatusCode,
			Body:       apiErr.Message,
			Cause:      err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &readlai.TransportError{
			Message:    "endpoint returned error",
			StatusCode: reqErr.HTTPStatusCode,
			Cause:      err,
		}
	}

	return &readlai.TransportError{Message: "request failed", Cause: err}
}

// Verify OpenAIProvider implements Completer
var _ Completer = (*OpenAIProvider)(nil)
