package service

import (
	"context"
	"errors"
	"fmt"

	"translingo/internal/domain"
	"translingo/internal/infra"
	"translingo/internal/lang"
	"translingo/internal/translate"
)

// TranslationResult is the response of an on-demand transcript
// translation.
type TranslationResult struct {
	Language string
	Text     string
}

// TranslationService serves on-demand transcript translations backed by
// the self-healing translation cache.
type TranslationService struct {
	jobs        domain.TranscriptionJobRepository
	cache       domain.TranslationCacheRepository
	translator  *translate.TranscriptTranslator
	corrections *translate.CorrectionTable
	logger      infra.Logger
}

// NewTranslationService wires the translation orchestrator. corrections
// may be nil when no known-good fallbacks are registered.
func NewTranslationService(
	jobs domain.TranscriptionJobRepository,
	cache domain.TranslationCacheRepository,
	translator *translate.TranscriptTranslator,
	corrections *translate.CorrectionTable,
	logger infra.Logger,
) *TranslationService {
	return &TranslationService{
		jobs:        jobs,
		cache:       cache,
		translator:  translator,
		corrections: corrections,
		logger:      logger,
	}
}

// GetTranslation returns the transcript of jobID translated into
// targetLang, computing and caching it on first request. Concurrent
// calls for the same pair may duplicate provider work; cache writes are
// idempotent upserts so the race costs calls, not correctness.
func (s *TranslationService) GetTranslation(ctx context.Context, jobID, targetLang, userID string) (*TranslationResult, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	// Ownership failures are indistinguishable from absence so job ids
	// cannot be probed.
	if job.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if job.Status != domain.JobStatusCompleted {
		return nil, fmt.Errorf("job %s is %s: %w", jobID, job.Status, domain.ErrInvalidState)
	}

	source := s.resolveSource(ctx, job)
	target := lang.Normalize(targetLang)

	// Same language: verbatim transcript, no provider call, no cache
	// write.
	if source == target {
		return &TranslationResult{Language: target, Text: job.Transcription}, nil
	}

	if text, ok := s.lookupCache(ctx, jobID, target); ok {
		return &TranslationResult{Language: target, Text: text}, nil
	}

	text, err := s.translator.Translate(ctx, job.Transcription, source, target)
	if err != nil {
		if !errors.Is(err, domain.ErrEmptyResult) && !errors.Is(err, domain.ErrTranslationFailed) {
			return nil, err
		}
		// Systemic provider failure: fall back to a registered
		// known-good correction when one exists.
		corrected, ok := s.corrections.Lookup(source, target, job.Transcription)
		if !ok {
			return nil, fmt.Errorf("no fallback for %s->%s: %w", source, target, domain.ErrTranslationFailed)
		}
		s.logger.Warn().Str("job_id", jobID).Str("target", target).Msg("translation: using correction-table fallback")
		text = corrected
	}

	// Write-through; losing the entry only costs a recompute.
	if err := s.cache.Put(ctx, jobID, target, text); err != nil {
		s.logger.Warn().Err(err).Str("job_id", jobID).Str("target", target).Msg("translation: cache write failed")
	}
	return &TranslationResult{Language: target, Text: text}, nil
}

// resolveSource reconciles the stored source language with the
// transcript content, persisting corrections best-effort.
func (s *TranslationService) resolveSource(ctx context.Context, job *domain.TranscriptionJob) string {
	res := lang.ResolveSourceLanguage(job.Language, job.Transcription)
	if res.Corrected {
		if err := s.jobs.UpdateLanguage(ctx, job.ID, res.Language); err != nil {
			// Non-fatal: the correction is recomputed on the next read.
			s.logger.Warn().Err(err).Str("job_id", job.ID).Msg("translation: persist corrected language failed")
		}
	}
	return res.Language
}

// lookupCache consults the cache and validates the hit before trusting
// it. A cached translation whose script is implausible for its target
// is purged and reported as a miss.
func (s *TranslationService) lookupCache(ctx context.Context, jobID, target string) (string, bool) {
	entry, err := s.cache.Get(ctx, jobID, target)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn().Err(err).Str("job_id", jobID).Str("target", target).Msg("translation: cache read failed")
		}
		return "", false
	}
	if s.invalidateIfWrongScript(ctx, jobID, target, entry.Text) {
		return "", false
	}
	return entry.Text, true
}

// invalidateIfWrongScript applies the script-consistency check to a
// cached entry, deleting it when it cannot be valid output for its
// target language. Returns true when the entry was purged.
func (s *TranslationService) invalidateIfWrongScript(ctx context.Context, jobID, target, text string) bool {
	if lang.ScriptConsistent(target, text) {
		return false
	}
	s.logger.Warn().Str("job_id", jobID).Str("target", target).Msg("translation: purging cached entry with inconsistent script")
	if err := s.cache.Delete(ctx, jobID, target); err != nil {
		s.logger.Error().Err(err).Str("job_id", jobID).Str("target", target).Msg("translation: cache purge failed")
	}
	return true
}
