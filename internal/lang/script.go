package lang

import "unicode"

// Script identifies the writing system a rune belongs to, reduced to the
// families the platform distinguishes between.
type Script int

const (
	ScriptLatin Script = iota
	ScriptDevanagari
	ScriptCyrillic
	ScriptHangul
	ScriptKana
	ScriptHan
	ScriptArabic
	ScriptThai
	ScriptBengali
)

// scriptLanguage maps a detected non-Latin script to the supported
// language most strongly associated with it.
var scriptLanguage = map[Script]string{
	ScriptDevanagari: "hi",
	ScriptCyrillic:   "ru",
	ScriptHangul:     "ko",
	ScriptKana:       "ja",
	ScriptHan:        "zh",
	ScriptArabic:     "ar",
	ScriptThai:       "th",
	ScriptBengali:    "bn",
}

// languageScript maps each supported language to its expected script.
var languageScript = map[string]Script{
	"en": ScriptLatin, "es": ScriptLatin, "de": ScriptLatin,
	"fr": ScriptLatin, "it": ScriptLatin, "pt": ScriptLatin,
	"id": ScriptLatin, "nl": ScriptLatin, "pl": ScriptLatin,
	"tr": ScriptLatin, "vi": ScriptLatin,
	"ru": ScriptCyrillic, "uk": ScriptCyrillic,
	"hi": ScriptDevanagari,
	"ja": ScriptKana,
	"ko": ScriptHangul,
	"zh": ScriptHan,
	"ar": ScriptArabic,
	"th": ScriptThai,
	"bn": ScriptBengali,
}

func runeScript(r rune) (Script, bool) {
	switch {
	case unicode.Is(unicode.Devanagari, r):
		return ScriptDevanagari, true
	case unicode.Is(unicode.Cyrillic, r):
		return ScriptCyrillic, true
	case unicode.Is(unicode.Hangul, r):
		return ScriptHangul, true
	case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
		return ScriptKana, true
	case unicode.Is(unicode.Han, r):
		return ScriptHan, true
	case unicode.Is(unicode.Arabic, r):
		return ScriptArabic, true
	case unicode.Is(unicode.Thai, r):
		return ScriptThai, true
	case unicode.Is(unicode.Bengali, r):
		return ScriptBengali, true
	case unicode.Is(unicode.Latin, r):
		return ScriptLatin, true
	}
	return ScriptLatin, false
}

// DetectScript scans text and returns the dominant non-Latin script, if
// any. Kana presence wins over Han so Japanese text with kanji is not
// mistaken for Chinese.
func DetectScript(text string) (Script, bool) {
	counts := make(map[Script]int)
	for _, r := range text {
		if s, ok := runeScript(r); ok && s != ScriptLatin {
			counts[s]++
		}
	}
	if len(counts) == 0 {
		return ScriptLatin, false
	}
	if counts[ScriptKana] > 0 {
		return ScriptKana, true
	}
	best, bestCount := ScriptLatin, 0
	for s, n := range counts {
		if n > bestCount {
			best, bestCount = s, n
		}
	}
	return best, true
}

// DetectLanguage returns the supported language implied by the dominant
// script of text, when the script is unambiguous enough to name one.
func DetectLanguage(text string) (string, bool) {
	script, ok := DetectScript(text)
	if !ok {
		return "", false
	}
	code, ok := scriptLanguage[script]
	return code, ok
}

// ScriptConsistent reports whether text is plausible output for the
// given target language: a Latin-script target must not contain
// Devanagari (or any other foreign-script) runs, a Cyrillic target must
// not contain Devanagari, and so on. Latin characters are tolerated in
// any target since names and acronyms pass through untranslated.
func ScriptConsistent(targetLang, text string) bool {
	expected, ok := languageScript[Normalize(targetLang)]
	if !ok {
		expected = ScriptLatin
	}
	detected, found := DetectScript(text)
	if !found {
		return true
	}
	if detected == expected {
		return true
	}
	// Japanese mixes kana with Han freely.
	if expected == ScriptKana && detected == ScriptHan {
		return true
	}
	return false
}
