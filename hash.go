package readlai

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// FingerprintSeparator joins the components of a fingerprint.
const FingerprintSeparator = "|"

// HashText computes the SHA-256 hash of the exact text.
// Whitespace is significant: "Hello" and "Hello " hash differently.
func HashText(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// Fingerprint generates the cache key for a sentence translation.
// Changing the text, model or target language yields a different key, so
// stale entries are never served and no explicit eviction is needed.
func Fingerprint(scope, id, text, model, langCode string) string {
	return strings.Join([]string{scope, id, HashText(text), model, langCode}, FingerprintSeparator)
}
