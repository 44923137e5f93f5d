package readlai

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// LookupTemperature is the sampling temperature used for word lookups.
const LookupTemperature float32 = 0.2

// Translator is the translation and word-lookup engine.
// It keeps no state between calls and is safe for concurrent use.
type Translator struct {
	completer Completer
	store     Store
	logger    *zap.Logger
}

// Completer is the interface for chat-style LLM endpoints.
// Implementations return choices[0].message.content of the reply.
type Completer interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// ChatRequest contains the parameters for a single chat completion.
type ChatRequest struct {
	Model       string
	Temperature float32
	System      string
	User        string
}

// Store is the interface for durable cache snapshots.
// Load returns an empty snapshot when nothing has been saved yet. Save
// replaces the whole snapshot.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// CredentialSource supplies the API key for the remote endpoint.
type CredentialSource interface {
	APIKey(ctx context.Context) (string, error)
}

// StaticKey is a CredentialSource holding a fixed key.
type StaticKey string

// APIKey returns the key, or a ConfigurationError if it is blank.
func (k StaticKey) APIKey(context.Context) (string, error) {
	key := strings.TrimSpace(string(k))
	if key == "" {
		return "", &ConfigurationError{Message: "API key is empty"}
	}
	return key, nil
}

// TranslateRequest contains the parameters for a batch translation.
type TranslateRequest struct {
	Model       string
	Temperature float32
	Target      TargetLanguage
	Sentences   []Sentence
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *zap.Logger) TranslatorOption {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTranslator creates a new Translator backed by the given endpoint and cache store.
func NewTranslator(completer Completer, store Store, opts ...TranslatorOption) *Translator {
	t := &Translator{
		completer: completer,
		store:     store,
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Translate returns translations for req.Sentences in their original order,
// serving cached entries and requesting all misses in a single batch.
// Sentences the model never returned usable output for are omitted.
//
// If the new entries cannot be persisted, the results are still returned
// together with a *PersistenceError.
func (t *Translator) Translate(ctx context.Context, req TranslateRequest) ([]TranslationResult, error) {
	if len(req.Sentences) == 0 {
		return []TranslationResult{}, nil
	}

	snap, err := t.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		snap = NewSnapshot()
	}

	translations := make(map[string]string, len(req.Sentences))
	var misses []Sentence

	// Check cache for each sentence
	for _, s := range req.Sentences {
		if cached, ok := snap.Get(s.Fingerprint(req.Model, req.Target.Code)); ok {
			translations[s.ID] = cached
			continue
		}
		misses = append(misses, s)
	}

	t.logger.Debug("translation cache lookup",
		zap.Int("sentences", len(req.Sentences)),
		zap.Int("hits", len(req.Sentences)-len(misses)),
		zap.Int("misses", len(misses)),
		zap.String("model", req.Model),
		zap.String("lang", req.Target.Code),
	)

	var saveErr error
	if len(misses) > 0 {
		results, err := t.translateMisses(ctx, req, misses)
		if err != nil {
			return nil, err
		}

		byID := make(map[string]Sentence, len(misses))
		for _, s := range misses {
			byID[s.ID] = s
		}

		stored := 0
		for _, r := range results {
			s, ok := byID[r.ID]
			if !ok {
				t.logger.Debug("ignoring translation for unknown sentence", zap.String("sid", r.ID))
				continue
			}
			snap.Set(s.Fingerprint(req.Model, req.Target.Code), r.Text)
			translations[s.ID] = r.Text
			stored++
		}

		if err := t.store.Save(ctx, snap); err != nil {
			t.logger.Warn("translations computed but not persisted", zap.Int("entries", stored), zap.Error(err))
			saveErr = err
		}
	}

	// Assemble in caller order
	output := make([]TranslationResult, 0, len(req.Sentences))
	for _, s := range req.Sentences {
		if text, ok := translations[s.ID]; ok {
			output = append(output, TranslationResult{ID: s.ID, Text: text})
		}
	}

	return output, saveErr
}

// translateMisses requests the missing sentences, retrying exactly once with
// the strict prompt if the first reply cannot be decoded.
func (t *Translator) translateMisses(ctx context.Context, req TranslateRequest, misses []Sentence) ([]TranslationResult, error) {
	chat := ChatRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		System:      SystemPrompt,
		User:        BuildTranslatePrompt(req.Target, misses),
	}

	results, err := t.requestTranslations(ctx, chat)
	if err == nil {
		return results, nil
	}
	if !IsParseError(err) {
		return nil, err
	}

	t.logger.Warn("model reply not decodable, retrying with strict prompt", zap.Error(err))

	chat.User = BuildStrictTranslatePrompt(req.Target, misses)
	return t.requestTranslations(ctx, chat)
}

func (t *Translator) requestTranslations(ctx context.Context, chat ChatRequest) ([]TranslationResult, error) {
	content, err := t.completer.Complete(ctx, chat)
	if err != nil {
		return nil, err
	}
	return DecodeTranslations(ExtractJSON(content, ArrayShape))
}

// Lookup asks the model for a dictionary entry of word, explained in the
// target language. It issues exactly one request and never retries or caches.
func (t *Translator) Lookup(ctx context.Context, model string, target TargetLanguage, word string) (*WordLookup, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, &TranslationError{Message: "word is required"}
	}

	content, err := t.completer.Complete(ctx, ChatRequest{
		Model:       model,
		Temperature: LookupTemperature,
		System:      SystemPrompt,
		User:        BuildLookupPrompt(target, word),
	})
	if err != nil {
		return nil, err
	}

	lookup, err := DecodeWordLookup(ExtractJSON(content, ObjectShape))
	if err != nil {
		t.logger.Debug("word lookup reply not decodable", zap.String("word", word), zap.Error(err))
		return nil, err
	}
	return lookup, nil
}
