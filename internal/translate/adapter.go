// Package translate contains the translation provider adapter and the
// line-preserving transcript translator built on top of it.
package translate

import (
	"context"

	"translingo/internal/infra"
	"translingo/internal/lang"
)

// Provider is the outbound contract for an external localization
// service. Implemented by providers/lingo and by test fakes.
type Provider interface {
	LocalizeText(ctx context.Context, text, sourceLocale, targetLocale string) (string, error)
	RecognizeLocale(ctx context.Context, text string) (string, error)
	LocalizeObject(ctx context.Context, obj map[string]any, sourceLocale, targetLocale string) (map[string]any, error)
}

// Adapter wraps a Provider with the degrade-to-no-op policy: provider
// failures never propagate to callers. A failed call returns the input
// unchanged, so a single bad segment never blocks assembly of the rest
// of a transcript.
type Adapter struct {
	provider Provider
	logger   infra.Logger
}

// NewAdapter builds an Adapter around the given provider.
func NewAdapter(provider Provider, logger infra.Logger) *Adapter {
	return &Adapter{provider: provider, logger: logger}
}

// TranslateText translates text into targetLang. Both codes are
// normalized first; an empty sourceLang defaults to "en". On any
// provider failure the original text is returned unchanged.
func (a *Adapter) TranslateText(ctx context.Context, text, sourceLang, targetLang string) string {
	source := lang.Normalize(sourceLang)
	target := lang.Normalize(targetLang)

	out, err := a.provider.LocalizeText(ctx, text, source, target)
	if err != nil {
		a.logger.Warn().Err(err).Str("source", source).Str("target", target).Msg("translate: provider failed, passing text through")
		return text
	}
	return out
}

// DetectLanguage asks the provider to recognize the locale of text,
// falling back to "en" on failure.
func (a *Adapter) DetectLanguage(ctx context.Context, text string) string {
	locale, err := a.provider.RecognizeLocale(ctx, text)
	if err != nil {
		a.logger.Warn().Err(err).Msg("translate: locale recognition failed")
		return lang.Default
	}
	return lang.Normalize(locale)
}

// LocalizeObject deep-translates the string leaf values of a structured
// object, used for chat message envelopes. The original object is
// returned on failure.
func (a *Adapter) LocalizeObject(ctx context.Context, obj map[string]any, sourceLang, targetLang string) map[string]any {
	out, err := a.provider.LocalizeObject(ctx, obj, lang.Normalize(sourceLang), lang.Normalize(targetLang))
	if err != nil {
		a.logger.Warn().Err(err).Msg("translate: object localization failed, returning original")
		return obj
	}
	return out
}
