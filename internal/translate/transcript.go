package translate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"translingo/internal/domain"
	"translingo/internal/infra"
	"translingo/internal/lang"
)

// timestampLine matches transcript lines shaped as "HH:MM:SS text".
var timestampLine = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2})\s+(.*)$`)

const defaultLineConcurrency = 8

// TranscriptTranslator translates multi-line, timestamp-prefixed
// transcripts. Lines are translated concurrently and reassembled in
// original order: output line i always corresponds to input line i.
type TranscriptTranslator struct {
	adapter     *Adapter
	logger      infra.Logger
	concurrency int
}

// NewTranscriptTranslator builds a translator over the given adapter.
func NewTranscriptTranslator(adapter *Adapter, logger infra.Logger) *TranscriptTranslator {
	return &TranscriptTranslator{
		adapter:     adapter,
		logger:      logger,
		concurrency: defaultLineConcurrency,
	}
}

// Translate converts rawText from sourceLang to targetLang, preserving
// line count, order and timestamps. Per-line provider failures fall back
// to the original line; a fully blank result or an English target that
// still carries a foreign script is surfaced as an error instead of
// being returned or cached.
func (t *TranscriptTranslator) Translate(ctx context.Context, rawText, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(rawText) == "" {
		return "", domain.ErrEmptyInput
	}

	source := lang.Normalize(sourceLang)
	target := lang.Normalize(targetLang)
	if source == target {
		return rawText, nil
	}

	lines := splitLines(rawText)

	results := make([]string, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			results[i] = t.translateLine(gctx, line, source, target)
			return nil
		})
	}
	// The adapter absorbs provider errors, so the only error here is
	// context cancellation.
	if err := g.Wait(); err != nil {
		return "", err
	}

	joined := strings.Join(results, "\n")
	if strings.TrimSpace(joined) == "" {
		return "", fmt.Errorf("translate %s->%s: %w", source, target, domain.ErrEmptyResult)
	}
	if target == lang.Default && !lang.ScriptConsistent(target, joined) {
		t.logger.Warn().Str("source", source).Msg("translate: english output failed script check")
		return "", fmt.Errorf("translate %s->%s: output script inconsistent: %w", source, target, domain.ErrTranslationFailed)
	}
	return joined, nil
}

// translateLine translates one line, keeping a leading HH:MM:SS prefix
// intact when present.
func (t *TranscriptTranslator) translateLine(ctx context.Context, line, source, target string) string {
	if m := timestampLine.FindStringSubmatch(line); m != nil {
		if strings.TrimSpace(m[2]) == "" {
			return line
		}
		return m[1] + " " + t.adapter.TranslateText(ctx, m[2], source, target)
	}
	return t.adapter.TranslateText(ctx, line, source, target)
}

func splitLines(rawText string) []string {
	var lines []string
	for _, line := range strings.Split(rawText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
