package readlai

import (
	"encoding/json"
	"strings"
)

// Field spellings models have used for the sentence ID and the translated
// text, in priority order.
var (
	idAliases          = []string{"sid", "id"}
	translationAliases = []string{"translation", "translated_text", "translatedText", "translated", "target"}
)

// resultRecord is one element of a translation reply after alias resolution.
type resultRecord struct {
	ID   string
	Text string
	ok   bool
}

// UnmarshalJSON resolves the alias table into the canonical fields.
// Records that are not objects or lack usable fields are marked !ok instead
// of failing the batch.
func (r *resultRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	r.ID = firstString(fields, idAliases)
	r.Text = firstString(fields, translationAliases)
	r.ok = r.ID != "" && r.Text != ""
	return nil
}

// firstString returns the first non-empty string value found under any of names.
func firstString(fields map[string]json.RawMessage, names []string) string {
	for _, name := range names {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// DecodeTranslations decodes an extracted JSON array of translation records.
// Records missing an ID or translated text are dropped; only a reply that is
// not a JSON array at all is an error.
func DecodeTranslations(extracted string) ([]TranslationResult, error) {
	if !strings.HasPrefix(strings.TrimSpace(extracted), "[") {
		return nil, &ParseError{
			Message: "expected a JSON array of translations",
			Snippet: Snippet(extracted),
		}
	}

	var records []resultRecord
	if err := json.Unmarshal([]byte(extracted), &records); err != nil {
		return nil, &ParseError{
			Message: "expected a JSON array of translations",
			Snippet: Snippet(extracted),
			Cause:   err,
		}
	}

	results := make([]TranslationResult, 0, len(records))
	for _, r := range records {
		if !r.ok {
			continue
		}
		results = append(results, TranslationResult{ID: r.ID, Text: r.Text})
	}
	return results, nil
}

// DecodeWordLookup strictly decodes an extracted JSON object into a WordLookup.
func DecodeWordLookup(extracted string) (*WordLookup, error) {
	if !strings.HasPrefix(strings.TrimSpace(extracted), "{") {
		return nil, &ParseError{
			Message: "expected a JSON word lookup object",
			Snippet: Snippet(extracted),
		}
	}

	var lookup WordLookup
	if err := json.Unmarshal([]byte(extracted), &lookup); err != nil {
		return nil, &ParseError{
			Message: "expected a JSON word lookup object",
			Snippet: Snippet(extracted),
			Cause:   err,
		}
	}
	if lookup.Phonetic != nil && strings.TrimSpace(*lookup.Phonetic) == "" {
		lookup.Phonetic = nil
	}
	if lookup.Definitions == nil {
		lookup.Definitions = []Definition{}
	}
	return &lookup, nil
}
