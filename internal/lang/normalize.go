// Package lang provides locale code normalization and script-based
// language detection for transcript and document translation.
package lang

import (
	"strings"

	"golang.org/x/text/language"
)

// Default is the code returned for empty or unsupported locales.
const Default = "en"

// supported is the fixed whitelist of base language codes the platform
// translates between.
var supported = map[string]struct{}{
	"en": {}, "es": {}, "de": {}, "fr": {}, "it": {}, "pt": {},
	"ru": {}, "hi": {}, "ja": {}, "ko": {}, "zh": {}, "ar": {},
	"id": {}, "nl": {}, "pl": {}, "tr": {}, "uk": {}, "vi": {},
	"th": {}, "bn": {},
}

// Normalize maps an arbitrary locale tag ("en-US", "es_ES", "pt-BR") to
// a canonical base code from the supported set. Unknown or empty input
// normalizes to "en". Always returns a valid code.
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return Default
	}

	base := baseCode(code)
	if _, ok := supported[base]; ok {
		return base
	}
	return Default
}

// Supported reports whether the normalized form of code is a member of
// the whitelist rather than the "en" fallback.
func Supported(code string) bool {
	_, ok := supported[baseCode(strings.TrimSpace(code))]
	return ok
}

func baseCode(code string) string {
	if tag, err := language.Parse(code); err == nil {
		if base, conf := tag.Base(); conf > language.No {
			return base.String()
		}
	}
	// Malformed tags ("es_ES" with underscore, bare garbage): keep the
	// first subtag, lower-cased.
	code = strings.ToLower(code)
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	return code
}
