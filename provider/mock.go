package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/ZaguanLabs/readlai"
)

// inputMarker precedes the sentence payload in translation prompts.
const inputMarker = "Input JSON: "

// MockProvider is a mock Completer for testing.
//
// Scripted Replies and Errors are consumed in order, one per call. Once the
// script runs out, translation prompts are answered from Translations, with
// unknown text returned in brackets.
type MockProvider struct {
	Replies      []string          // Scripted reply contents, consumed in order
	Errors       []error           // Scripted errors; a non-nil entry wins over the reply at the same index
	Translations map[string]string // Map of source text to translation
	CallCount    int               // Number of times Complete was called
	Requests     []ChatRequest     // Every request received

	mu sync.Mutex
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":       "Hola",
			"World":       "Mundo",
			"Hello World": "Hola Mundo",
			"Good night.": "Buenas noches.",
		},
	}
}

// NewScriptedProvider creates a mock that returns replies in order.
func NewScriptedProvider(replies ...string) *MockProvider {
	return &MockProvider{Replies: replies}
}

// Complete returns the next scripted reply, or an echo translation.
func (m *MockProvider) Complete(ctx context.Context, req ChatRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := m.CallCount
	m.CallCount++
	m.Requests = append(m.Requests, req)

	if err := ctx.Err(); err != nil {
		return "", &readlai.TransportError{Message: "request cancelled", Cause: err}
	}

	if call < len(m.Errors) && m.Errors[call] != nil {
		return "", m.Errors[call]
	}
	if call < len(m.Replies) {
		return m.Replies[call], nil
	}

	return m.echo(req.User)
}

// echo answers a translation prompt from the Translations table.
func (m *MockProvider) echo(prompt string) (string, error) {
	idx := strings.LastIndex(prompt, inputMarker)
	if idx < 0 {
		return "", &readlai.TransportError{Message: "mock has no reply for this prompt"}
	}

	var sentences []readlai.Sentence
	if err := json.Unmarshal([]byte(prompt[idx+len(inputMarker):]), &sentences); err != nil {
		return "", &readlai.TransportError{Message: "mock cannot read prompt payload", Cause: err}
	}

	results := make([]readlai.TranslationResult, len(sentences))
	for i, s := range sentences {
		text, ok := m.Translations[s.Text]
		if !ok {
			// Return bracketed text for unknown translations
			text = fmt.Sprintf("[%s]", s.Text)
		}
		results[i] = readlai.TranslationResult{ID: s.ID, Text: text}
	}

	data, err := json.Marshal(results)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LastRequest returns the most recent request, or nil.
func (m *MockProvider) LastRequest() *ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return nil
	}
	req := m.Requests[len(m.Requests)-1]
	return &req
}

// Calls returns the number of Complete calls so far.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// Reset resets the call count and recorded requests.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount = 0
	m.Requests = nil
}

// Verify MockProvider implements Completer
var _ Completer = (*MockProvider)(nil)
