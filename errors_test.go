package readlai

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTranslationError(t *testing.T) {
	cause := errors.New("underlying error")
	err := &TranslationError{Message: "translation failed", Cause: cause}

	if err.Error() != "translation failed: underlying error" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}

	// Without cause
	err2 := &TranslationError{Message: "simple error"}
	if err2.Error() != "simple error" {
		t.Errorf("unexpected error message: %s", err2.Error())
	}
}

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Message: "API key is empty"}

	if err.Error() != "configuration error: API key is empty" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestTransportError(t *testing.T) {
	err := &TransportError{Message: "endpoint returned error", StatusCode: 401, Body: "invalid key"}

	if err.Error() != "transport error: endpoint returned error (status 401): invalid key" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	cause := errors.New("connection refused")
	err2 := &TransportError{Message: "request failed", Cause: cause}
	if !errors.Is(err2, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestParseError(t *testing.T) {
	err := &ParseError{Message: "expected a JSON array", Snippet: "oops"}

	if err.Error() != `parse error: expected a JSON array (content: "oops")` {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("permission denied")
	err := &PersistenceError{Op: "save", Path: "/tmp/cache.json", Cause: cause}

	if err.Error() != "cache save /tmp/cache.json: permission denied" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestErrorPredicates(t *testing.T) {
	wrapped := func(err error) error { return fmt.Errorf("outer: %w", err) }

	if !IsParseError(wrapped(&ParseError{})) {
		t.Error("IsParseError should see through wrapping")
	}
	if !IsTransportError(wrapped(&TransportError{})) {
		t.Error("IsTransportError should see through wrapping")
	}
	if !IsConfigurationError(wrapped(&ConfigurationError{})) {
		t.Error("IsConfigurationError should see through wrapping")
	}
	if !IsPersistenceError(wrapped(&PersistenceError{})) {
		t.Error("IsPersistenceError should see through wrapping")
	}
	if IsParseError(&TransportError{}) || IsTransportError(&ParseError{}) {
		t.Error("predicates should not match other kinds")
	}
	if IsParseError(nil) {
		t.Error("nil is not a parse error")
	}
}

func TestSnippet(t *testing.T) {
	short := "short reply"
	if Snippet(short) != short {
		t.Errorf("short text should be unchanged, got %q", Snippet(short))
	}

	long := strings.Repeat("é", SnippetLength+50)
	got := Snippet(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated snippet should end with ..., got %q", got)
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(got, "...")); n != SnippetLength {
		t.Errorf("expected %d runes, got %d", SnippetLength, n)
	}
	if !utf8.ValidString(got) {
		t.Error("snippet should stay valid UTF-8")
	}
}
