package readlai

import (
	"encoding/json"
	"fmt"
)

// SystemPrompt is sent with every request. It does not depend on the payload.
const SystemPrompt = "You are a translation and dictionary engine. " +
	"Follow the user's instructions for the specified target language. " +
	"Output STRICT JSON ONLY. " +
	"No markdown, no explanations, no extra text."

// BuildTranslatePrompt builds the user message for a batch translation.
func BuildTranslatePrompt(target TargetLanguage, sentences []Sentence) string {
	return fmt.Sprintf(`Target language: %s
Translation style: faithful, clear, readable
Return a JSON array with one object per input item: [{"sid": "<sid>", "translation": "<translated text>"}]
Input JSON: %s`, target, encodeSentences(sentences))
}

// BuildStrictTranslatePrompt builds the user message for the single retry
// after a reply could not be decoded.
func BuildStrictTranslatePrompt(target TargetLanguage, sentences []Sentence) string {
	return fmt.Sprintf(`Return ONLY this JSON array format with no extra text: [{"sid": "<sid>", "translation": "<translated text>"}]
Target language: %s
Input JSON: %s`, target, encodeSentences(sentences))
}

// BuildLookupPrompt builds the user message for a dictionary lookup.
func BuildLookupPrompt(target TargetLanguage, word string) string {
	return fmt.Sprintf(`Look up the word %q and explain it in %s.
Return a JSON object: {"phonetic": "<IPA transcription or empty>", "definitions": [{"pos": "<part of speech>", "meanings": "<meanings>"}]}
List definitions from most to least common.`, word, target)
}

func encodeSentences(sentences []Sentence) string {
	if sentences == nil {
		sentences = []Sentence{}
	}
	data, err := json.Marshal(sentences)
	if err != nil {
		return "[]"
	}
	return string(data)
}
