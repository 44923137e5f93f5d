package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZaguanLabs/readlai"
)

type capturedRequest struct {
	Path          string
	Authorization string
	Body          struct {
		Model       string        `json:"model"`
		Temperature float32       `json:"temperature"`
		Messages    []chatMessage `json:"messages"`
	}
}

// newChatServer serves a fixed chat completion reply and records the request.
func newChatServer(t *testing.T, status int, body string, got *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			got.Path = r.URL.Path
			got.Authorization = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&got.Body); err != nil {
				t.Errorf("decoding request body: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func chatReply(content string) string {
	data, _ := json.Marshal(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	})
	return string(data)
}

func TestOpenAIProvider_Complete(t *testing.T) {
	var got capturedRequest
	srv := newChatServer(t, http.StatusOK, chatReply(`[{"sid":"1","translation":"Hola"}]`), &got)

	p := NewOpenAIProvider(OpenAIConfig{
		Credentials: readlai.StaticKey("sk-test"),
		BaseURL:     srv.URL,
	})

	content, err := p.Complete(context.Background(), ChatRequest{
		Model:       "test-model",
		Temperature: 0.3,
		System:      "system prompt",
		User:        "user prompt",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if content != `[{"sid":"1","translation":"Hola"}]` {
		t.Errorf("Unexpected content: %s", content)
	}
	if got.Path != "/chat/completions" {
		t.Errorf("Expected /chat/completions, got %s", got.Path)
	}
	if got.Authorization != "Bearer sk-test" {
		t.Errorf("Expected bearer key, got %q", got.Authorization)
	}
	if got.Body.Model != "test-model" {
		t.Errorf("Expected model test-model, got %s", got.Body.Model)
	}
	if len(got.Body.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(got.Body.Messages))
	}
	if got.Body.Messages[0].Role != "system" || got.Body.Messages[0].Content != "system prompt" {
		t.Errorf("Unexpected system message: %+v", got.Body.Messages[0])
	}
	if got.Body.Messages[1].Role != "user" || got.Body.Messages[1].Content != "user prompt" {
		t.Errorf("Unexpected user message: %+v", got.Body.Messages[1])
	}
}

func TestOpenAIProvider_APIError(t *testing.T) {
	srv := newChatServer(t, http.StatusUnauthorized,
		`{"error":{"message":"invalid api key","type":"auth_error"}}`, nil)

	p := NewOpenAIProvider(OpenAIConfig{
		Credentials: readlai.StaticKey("sk-bad"),
		BaseURL:     srv.URL,
	})

	_, err := p.Complete(context.Background(), ChatRequest{Model: "test-model"})

	var te *readlai.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransportError, got %T: %v", err, err)
	}
	if te.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", te.StatusCode)
	}
	// go-openai decodes the body, so only the message survives
	if te.Body != "invalid api key" {
		t.Errorf("Expected error message in body, got %q", te.Body)
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","choices":[]}`, nil)

	p := NewOpenAIProvider(OpenAIConfig{
		Credentials: readlai.StaticKey("sk-test"),
		BaseURL:     srv.URL,
	})

	_, err := p.Complete(context.Background(), ChatRequest{Model: "test-model"})
	if !readlai.IsTransportError(err) {
		t.Errorf("Expected TransportError, got %v", err)
	}
}

func TestOpenAIProvider_MissingKey(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	p := NewOpenAIProvider(OpenAIConfig{
		Credentials: readlai.StaticKey("  "),
		BaseURL:     srv.URL,
	})

	_, err := p.Complete(context.Background(), ChatRequest{Model: "test-model"})
	if !readlai.IsConfigurationError(err) {
		t.Errorf("Expected ConfigurationError, got %v", err)
	}
	if hits != 0 {
		t.Errorf("Expected no request without a key, got %d", hits)
	}
}

func TestOpenAIProvider_NoCredentialSource(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{})

	_, err := p.Complete(context.Background(), ChatRequest{Model: "test-model"})
	if !readlai.IsConfigurationError(err) {
		t.Errorf("Expected ConfigurationError, got %v", err)
	}
}

func TestNewOpenAIProvider_DefaultBaseURL(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{Credentials: readlai.StaticKey("sk-test")})

	if p.baseURL != DefaultBaseURL {
		t.Errorf("Expected default base URL, got %s", p.baseURL)
	}
}
