package readlai

import "strings"

// ScopeSeparator separates the document scope from the rest of a sentence ID.
const ScopeSeparator = ":"

// Sentence is a translatable unit submitted by the reader.
// The ID is unique within a request and carries the document scope as its
// prefix (e.g. "doc42:sent7" belongs to scope "doc42").
type Sentence struct {
	ID   string `json:"sid"`
	Text string `json:"text"`
}

// Scope returns the document scope encoded in the sentence ID.
func (s Sentence) Scope() string {
	return ScopeOf(s.ID)
}

// Fingerprint returns the cache key for this sentence under the given model
// and target language code.
func (s Sentence) Fingerprint(model, langCode string) string {
	return Fingerprint(s.Scope(), s.ID, s.Text, model, langCode)
}

// ScopeOf returns the prefix of id up to the first ScopeSeparator.
// IDs without a separator are their own scope.
func ScopeOf(id string) string {
	scope, _, _ := strings.Cut(id, ScopeSeparator)
	return scope
}

// TranslationResult pairs a translated text with the requesting sentence ID.
type TranslationResult struct {
	ID   string `json:"sid"`
	Text string `json:"translation"`
}

// TargetLanguage identifies the language to translate into.
type TargetLanguage struct {
	Label string `json:"label"` // Human-readable name used in prompts (e.g., "Spanish")
	Code  string `json:"code"`  // Identifier used in prompts and fingerprints (e.g., "es")
}

// String formats the language the way prompts reference it: "Spanish (es)".
func (l TargetLanguage) String() string {
	if l.Label == "" {
		return l.Code
	}
	return l.Label + " (" + l.Code + ")"
}

// WordLookup is a dictionary entry produced by the model. It is never cached.
type WordLookup struct {
	Phonetic    *string      `json:"phonetic,omitempty"`
	Definitions []Definition `json:"definitions"`
}

// Definition is one part-of-speech sense of a looked-up word.
type Definition struct {
	PartOfSpeech string `json:"pos"`
	Meanings     string `json:"meanings"`
}

// Snapshot is the full persisted translation cache: fingerprint -> translated text.
type Snapshot struct {
	Entries map[string]string `json:"entries"`
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{Entries: make(map[string]string)}
}

// Get returns the cached translation for a fingerprint.
func (s *Snapshot) Get(fingerprint string) (string, bool) {
	if s == nil || s.Entries == nil {
		return "", false
	}
	v, ok := s.Entries[fingerprint]
	return v, ok
}

// Set stores a translation under a fingerprint.
func (s *Snapshot) Set(fingerprint, text string) {
	if s.Entries == nil {
		s.Entries = make(map[string]string)
	}
	s.Entries[fingerprint] = text
}

// Len returns the number of cached entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := NewSnapshot()
	if s == nil {
		return out
	}
	for k, v := range s.Entries {
		out.Entries[k] = v
	}
	return out
}
