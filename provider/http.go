package provider

import (
	"context"
	"strings"
	"time"

	"github.com/ZaguanLabs/readlai"
	"github.com/go-resty/resty/v2"
)

// HTTPProvider implements Completer with a raw JSON POST to
// <base>/chat/completions. Non-2xx replies surface the status and body text.
type HTTPProvider struct {
	credentials readlai.CredentialSource
	baseURL     string
	http        *resty.Client
}

// HTTPConfig holds configuration for the HTTP provider.
type HTTPConfig struct {
	Credentials readlai.CredentialSource // API key source, resolved before every request
	BaseURL     string                   // API root (default: DefaultBaseURL)
	Timeout     time.Duration            // Request timeout (default: none)
	Referer     string                   // Optional HTTP-Referer header for OpenRouter attribution
}

// NewHTTPProvider creates a new HTTP provider.
func NewHTTPProvider(cfg HTTPConfig) *HTTPProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", readlai.UserAgent()).
		SetHeader("X-Title", readlai.Name)
	if cfg.Referer != "" {
		c.SetHeader("HTTP-Referer", cfg.Referer)
	}
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}

	return &HTTPProvider{
		credentials: cfg.Credentials,
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        c,
	}
}

// Complete sends one chat completion and returns the first choice's content.
func (p *HTTPProvider) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if p.credentials == nil {
		return "", &readlai.ConfigurationError{Message: "no API key source configured"}
	}
	key, err := p.credentials.APIKey(ctx)
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"model":       req.Model,
		"temperature": req.Temperature,
		"messages": []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
	}

	var resp chatResponse
	r, err := p.http.R().
		SetContext(ctx).
		SetAuthToken(key).
		SetBody(body).
		SetResult(&resp).
		Post(p.baseURL + "/chat/completions")
	if err != nil {
		return "", &readlai.TransportError{Message: "request failed", Cause: err}
	}
	if r.IsError() {
		return "", &readlai.TransportError{
			Message:    "endpoint returned error",
			StatusCode: r.StatusCode(),
			Body:       strings.TrimSpace(r.String()),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &readlai.TransportError{Message: "no choices"}
	}

	return resp.Choices[0].Message.Content, nil
}

// Verify HTTPProvider implements Completer
var _ Completer = (*HTTPProvider)(nil)
