package readlai

import "strings"

// Shape selects which JSON fragment the extractor looks for.
type Shape int

const (
	// ArrayShape extracts a JSON array ("[ ... ]").
	ArrayShape Shape = iota
	// ObjectShape extracts a JSON object ("{ ... }").
	ObjectShape
)

// Delimiters returns the opening and closing delimiters for the shape.
func (s Shape) Delimiters() (open, close string) {
	if s == ObjectShape {
		return "{", "}"
	}
	return "[", "]"
}

const fence = "```"

// extractStrategy tries to recover a JSON fragment from raw model output.
// Strategies are total: they report false instead of failing.
type extractStrategy func(text string, shape Shape) (string, bool)

// extractStrategies are tried in order; the first match wins.
var extractStrategies = []extractStrategy{
	extractLeading,
	extractTaggedFence,
	extractGenericFence,
	extractDelimitedSpan,
}

// ExtractJSON recovers a JSON array or object from model output that may be
// raw JSON, a fenced code block, or JSON embedded in prose. When no strategy
// matches, the trimmed input is returned unchanged so that decoding reports
// the problem.
func ExtractJSON(text string, shape Shape) string {
	for _, strategy := range extractStrategies {
		if out, ok := strategy(text, shape); ok {
			return out
		}
	}
	return strings.TrimSpace(text)
}

// extractLeading accepts output that already starts with the opening delimiter.
func extractLeading(text string, shape Shape) (string, bool) {
	open, _ := shape.Delimiters()
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, open) {
		return trimmed, true
	}
	return "", false
}

// extractTaggedFence returns the interior of the first ```json block.
// The tag match is case-insensitive and must end the word, so ```jsonc is
// left to the generic fence strategy.
func extractTaggedFence(text string, _ Shape) (string, bool) {
	const tag = "json"
	for offset := 0; ; {
		i := strings.Index(text[offset:], fence)
		if i < 0 {
			return "", false
		}
		start := offset + i + len(fence)
		offset = start
		if len(text)-start < len(tag) || !strings.EqualFold(text[start:start+len(tag)], tag) {
			continue
		}
		rest := text[start+len(tag):]
		if rest != "" && !strings.ContainsAny(rest[:1], " \t\r\n") {
			continue
		}
		end := strings.Index(rest, fence)
		if end < 0 {
			return "", false
		}
		return strings.TrimSpace(rest[:end]), true
	}
}

// extractGenericFence returns the interior of the first fenced block,
// skipping a language tag on the opening line.
func extractGenericFence(text string, shape Shape) (string, bool) {
	start := strings.Index(text, fence)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(fence):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 && isLanguageTag(rest[:nl], shape) {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, fence)
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// isLanguageTag reports whether the opening fence line is a tag such as
// "javascript" rather than content.
func isLanguageTag(line string, shape Shape) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	open, _ := shape.Delimiters()
	if strings.HasPrefix(line, open) {
		return false
	}
	return !strings.ContainsAny(line, " \t{}[]\"")
}

// extractDelimitedSpan returns everything from the first opening delimiter
// to the last closing delimiter.
func extractDelimitedSpan(text string, shape Shape) (string, bool) {
	open, close := shape.Delimiters()
	start := strings.Index(text, open)
	end := strings.LastIndex(text, close)
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+len(close)], true
}
