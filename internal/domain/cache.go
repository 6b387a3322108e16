package domain

import "time"

// TranslationCacheEntry memoizes a computed transcript translation.
// Keyed by (JobID, Language) with upsert semantics: at most one entry
// per pair.
type TranslationCacheEntry struct {
	JobID     string
	Language  string
	Text      string
	UpdatedAt time.Time
}
