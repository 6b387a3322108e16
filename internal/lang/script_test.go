package lang

import "testing"

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"devanagari", "मैं तेरे कल में हूं।", "hi", true},
		{"devanagari mixed with timestamps", "00:00:00 [संगीत]\n00:00:01 मैं तेरे कल में हूं।", "hi", true},
		{"cyrillic", "привет мир", "ru", true},
		{"hangul", "안녕하세요", "ko", true},
		{"japanese kana with kanji", "今日はいい天気ですね", "ja", true},
		{"han only", "今天天气很好", "zh", true},
		{"arabic", "مرحبا بالعالم", "ar", true},
		{"plain latin", "hello world", "", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DetectLanguage(tc.text)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("DetectLanguage(%q) = (%q, %v), want (%q, %v)", tc.text, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestScriptConsistent(t *testing.T) {
	cases := []struct {
		name   string
		target string
		text   string
		want   bool
	}{
		{"latin for english", "en", "hello world", true},
		{"devanagari for english", "en", "मैं तेरे कल में हूं।", false},
		{"devanagari for hindi", "hi", "मैं तेरे कल में हूं।", true},
		{"latin passthrough for hindi", "hi", "OK", true},
		{"cyrillic for russian", "ru", "привет мир", true},
		{"devanagari for russian", "ru", "नमस्ते", false},
		{"kanji for japanese", "ja", "日本語の字幕", true},
		{"han for chinese", "zh", "你好世界", true},
		{"region tag on target", "en-US", "bonjour", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScriptConsistent(tc.target, tc.text); got != tc.want {
				t.Fatalf("ScriptConsistent(%q, %q) = %v, want %v", tc.target, tc.text, got, tc.want)
			}
		})
	}
}

func TestResolveSourceLanguage(t *testing.T) {
	t.Run("override stored english with detected hindi", func(t *testing.T) {
		res := ResolveSourceLanguage("en", "00:00:00 [संगीत]\n00:00:01 मैं तेरे कल में हूं।")
		if res.Language != "hi" || !res.Corrected {
			t.Fatalf("got %+v, want {hi true}", res)
		}
	})
	t.Run("stored matches content", func(t *testing.T) {
		res := ResolveSourceLanguage("hi", "मैं तेरे कल में हूं।")
		if res.Language != "hi" || res.Corrected {
			t.Fatalf("got %+v, want {hi false}", res)
		}
	})
	t.Run("empty stored defaults to english", func(t *testing.T) {
		res := ResolveSourceLanguage("", "plain latin transcript")
		if res.Language != "en" || res.Corrected {
			t.Fatalf("got %+v, want {en false}", res)
		}
	})
	t.Run("stored region tag normalized", func(t *testing.T) {
		res := ResolveSourceLanguage("hi-IN", "मैं तेरे कल में हूं।")
		if res.Language != "hi" || res.Corrected {
			t.Fatalf("got %+v, want {hi false}", res)
		}
	})
}
