package translate

import (
	"crypto/sha256"
	"encoding/hex"
)

type correctionKey struct {
	Source      string
	Target      string
	ContentHash string
}

// CorrectionTable holds known-good translations keyed by
// (sourceLang, targetLang, contentHash). It is consulted only as a
// last-resort fallback when normal translation produces invalid output,
// keeping hardcoded corrections out of the service code.
type CorrectionTable struct {
	entries map[correctionKey]string
}

// NewCorrectionTable returns an empty table.
func NewCorrectionTable() *CorrectionTable {
	return &CorrectionTable{entries: make(map[correctionKey]string)}
}

// Add registers a known-good translation of content for the given pair.
func (t *CorrectionTable) Add(sourceLang, targetLang, content, corrected string) {
	t.entries[correctionKey{sourceLang, targetLang, ContentHash(content)}] = corrected
}

// Lookup returns the registered correction for content, if any.
func (t *CorrectionTable) Lookup(sourceLang, targetLang, content string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.entries[correctionKey{sourceLang, targetLang, ContentHash(content)}]
	return v, ok
}

// ContentHash returns the hex SHA-256 digest used as correction key.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
