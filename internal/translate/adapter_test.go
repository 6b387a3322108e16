package translate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type fakeProvider struct {
	mu        sync.Mutex
	textCalls int
	lastPair  [2]string

	localizeText func(text, source, target string) (string, error)
	recognize    func(text string) (string, error)
	localizeObj  func(obj map[string]any, source, target string) (map[string]any, error)
}

func (f *fakeProvider) LocalizeText(_ context.Context, text, source, target string) (string, error) {
	f.mu.Lock()
	f.textCalls++
	f.lastPair = [2]string{source, target}
	f.mu.Unlock()
	if f.localizeText != nil {
		return f.localizeText(text, source, target)
	}
	return "[" + target + "] " + text, nil
}

func (f *fakeProvider) RecognizeLocale(_ context.Context, text string) (string, error) {
	if f.recognize != nil {
		return f.recognize(text)
	}
	return "en", nil
}

func (f *fakeProvider) LocalizeObject(_ context.Context, obj map[string]any, source, target string) (map[string]any, error) {
	if f.localizeObj != nil {
		return f.localizeObj(obj, source, target)
	}
	return obj, nil
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.textCalls
}

func TestAdapterTranslateTextNormalizesCodes(t *testing.T) {
	provider := &fakeProvider{}
	adapter := NewAdapter(provider, zerolog.Nop())

	got := adapter.TranslateText(context.Background(), "hello", "en-US", "es_ES")
	if got != "[es] hello" {
		t.Fatalf("unexpected translation: %q", got)
	}
	if provider.lastPair != [2]string{"en", "es"} {
		t.Fatalf("codes not normalized: %v", provider.lastPair)
	}
}

func TestAdapterTranslateTextDefaultsEmptySource(t *testing.T) {
	provider := &fakeProvider{}
	adapter := NewAdapter(provider, zerolog.Nop())

	adapter.TranslateText(context.Background(), "hello", "", "fr")
	if provider.lastPair[0] != "en" {
		t.Fatalf("empty source should default to en, got %q", provider.lastPair[0])
	}
}

func TestAdapterDegradesToPassthrough(t *testing.T) {
	provider := &fakeProvider{
		localizeText: func(string, string, string) (string, error) {
			return "", errors.New("rate limited")
		},
	}
	adapter := NewAdapter(provider, zerolog.Nop())

	got := adapter.TranslateText(context.Background(), "original text", "en", "hi")
	if got != "original text" {
		t.Fatalf("expected passthrough on provider failure, got %q", got)
	}
}

func TestAdapterDetectLanguageFallsBackToEnglish(t *testing.T) {
	provider := &fakeProvider{
		recognize: func(string) (string, error) { return "", errors.New("boom") },
	}
	adapter := NewAdapter(provider, zerolog.Nop())

	if got := adapter.DetectLanguage(context.Background(), "whatever"); got != "en" {
		t.Fatalf("expected en fallback, got %q", got)
	}
}

func TestAdapterLocalizeObjectReturnsOriginalOnFailure(t *testing.T) {
	provider := &fakeProvider{
		localizeObj: func(map[string]any, string, string) (map[string]any, error) {
			return nil, errors.New("boom")
		},
	}
	adapter := NewAdapter(provider, zerolog.Nop())

	in := map[string]any{"role": "assistant", "content": "hello"}
	got := adapter.LocalizeObject(context.Background(), in, "en", "es")
	if got["content"] != "hello" {
		t.Fatalf("expected original object back, got %v", got)
	}
}
