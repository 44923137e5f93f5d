package readlai

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// SnippetLength is the maximum number of runes of model output kept in a ParseError.
const SnippetLength = 200

// TranslationError is the base error type for translation failures.
type TranslationError struct {
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// ConfigurationError indicates a missing or invalid precondition, such as an
// absent API key. It is raised before any remote call is attempted.
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// TransportError indicates the remote endpoint could not be reached or
// answered with a non-success status.
type TransportError struct {
	Message    string
	StatusCode int    // HTTP status, 0 when no response was received
	Body       string // Response body text for non-2xx responses; the go-openai transport only has the decoded error message
	Cause      error
}

func (e *TransportError) Error() string {
	msg := "transport error: " + e.Message
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ParseError indicates model output could not be decoded into the expected shape.
type ParseError struct {
	Message string
	Snippet string // Truncated offending text
	Cause   error
}

func (e *ParseError) Error() string {
	msg := "parse error: " + e.Message
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	if e.Snippet != "" {
		msg += fmt.Sprintf(" (content: %q)", e.Snippet)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// PersistenceError indicates the cache snapshot could not be read or written.
type PersistenceError struct {
	Op    string // "load" or "save"
	Path  string // File path, key or DSN of the snapshot
	Cause error
}

func (e *PersistenceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("cache %s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("cache %s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsTransportError reports whether err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsConfigurationError reports whether err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsPersistenceError reports whether err is or wraps a *PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// Snippet truncates s to SnippetLength runes, appending "..." when cut.
func Snippet(s string) string {
	if utf8.RuneCountInString(s) <= SnippetLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:SnippetLength]) + "..."
}
