package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/ZaguanLabs/readlai"
)

func TestMockProvider_Scripted(t *testing.T) {
	boom := errors.New("boom")
	m := &MockProvider{
		Replies: []string{"first", "second"},
		Errors:  []error{nil, boom},
	}
	ctx := context.Background()

	got, err := m.Complete(ctx, ChatRequest{User: "a"})
	if err != nil || got != "first" {
		t.Errorf("Expected first reply, got %q, %v", got, err)
	}

	if _, err := m.Complete(ctx, ChatRequest{User: "b"}); !errors.Is(err, boom) {
		t.Errorf("Expected scripted error, got %v", err)
	}

	if m.Calls() != 2 {
		t.Errorf("Expected 2 calls, got %d", m.Calls())
	}
	if last := m.LastRequest(); last == nil || last.User != "b" {
		t.Errorf("Unexpected last request: %+v", last)
	}
}

func TestMockProvider_EchoesTranslationPrompt(t *testing.T) {
	m := NewMockProvider()
	sentences := []readlai.Sentence{
		{ID: "p1:0", Text: "Hello"},
		{ID: "p1:1", Text: "Unknown"},
	}
	prompt := readlai.BuildTranslatePrompt(readlai.TargetLanguage{Label: "Spanish", Code: "es"}, sentences)

	content, err := m.Complete(context.Background(), ChatRequest{User: prompt})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	results, err := readlai.DecodeTranslations(content)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Text != "Hola" {
		t.Errorf("Expected Hola, got %s", results[0].Text)
	}
	if results[1].Text != "[Unknown]" {
		t.Errorf("Expected bracketed text, got %s", results[1].Text)
	}
}

func TestMockProvider_Reset(t *testing.T) {
	m := NewScriptedProvider("x")
	_, _ = m.Complete(context.Background(), ChatRequest{})

	m.Reset()

	if m.Calls() != 0 || m.LastRequest() != nil {
		t.Error("Reset should clear calls and requests")
	}
}
