// Package service orchestrates transcription, translation and document
// jobs over the repositories and providers.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"translingo/internal/domain"
	"translingo/internal/infra"
	"translingo/internal/lang"
	"translingo/internal/providers/transcript"
)

// TranscriptionService owns the TranscriptionJob lifecycle:
// pending -> processing -> completed | error.
type TranscriptionService struct {
	jobs       domain.TranscriptionJobRepository
	fetcher    transcript.Fetcher
	logger     infra.Logger
	jobTimeout time.Duration
}

// NewTranscriptionService wires the transcription orchestrator.
func NewTranscriptionService(jobs domain.TranscriptionJobRepository, fetcher transcript.Fetcher, logger infra.Logger, jobTimeout time.Duration) *TranscriptionService {
	if jobTimeout <= 0 {
		jobTimeout = 5 * time.Minute
	}
	return &TranscriptionService{jobs: jobs, fetcher: fetcher, logger: logger, jobTimeout: jobTimeout}
}

// StartTranscription creates a pending job and kicks off the caption
// fetch in the background. The job id is returned immediately; callers
// poll GetJob for progress.
func (s *TranscriptionService) StartTranscription(ctx context.Context, url, userID string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("source url required: %w", domain.ErrEmptyInput)
	}

	job := &domain.TranscriptionJob{
		ID:        uuid.NewString(),
		UserID:    userID,
		SourceURL: url,
		Status:    domain.JobStatusPending,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return "", fmt.Errorf("create transcription job: %w", err)
	}

	// Fire-and-forget: the background run is detached from the request
	// context and persists its outcome regardless of the caller.
	go func() {
		runCtx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()
		s.Process(runCtx, job.ID, url)
	}()

	return job.ID, nil
}

// Process runs one caption fetch to a terminal state. It is called by
// the fire-and-forget goroutine and by the recovery worker for stale
// jobs; both paths are safe because status updates never revert a
// terminal state.
func (s *TranscriptionService) Process(ctx context.Context, jobID, url string) {
	if err := s.jobs.UpdateStatus(ctx, jobID, domain.JobStatusProcessing, 10, ""); err != nil {
		s.logger.Error().Err(err).Str("job_id", jobID).Msg("transcription: mark processing failed")
		return
	}

	result, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.fail(ctx, jobID, err)
		return
	}

	text := transcript.FormatLines(result.Segments)
	if strings.TrimSpace(text) == "" {
		s.fail(ctx, jobID, fmt.Errorf("caption track produced no text"))
		return
	}

	// The track's reported language is unreliable for some scripts;
	// trust the content over the metadata.
	res := lang.ResolveSourceLanguage(result.Language, text)
	if res.Corrected {
		s.logger.Info().Str("job_id", jobID).Str("reported", result.Language).Str("detected", res.Language).Msg("transcription: source language corrected from content")
	}

	if err := s.jobs.Complete(ctx, jobID, text, res.Language); err != nil {
		s.logger.Error().Err(err).Str("job_id", jobID).Msg("transcription: persist completion failed")
	}
}

// GetJob returns the current job state for polling clients.
func (s *TranscriptionService) GetJob(ctx context.Context, jobID string) (*domain.TranscriptionJob, error) {
	return s.jobs.GetByID(ctx, jobID)
}

func (s *TranscriptionService) fail(ctx context.Context, jobID string, cause error) {
	s.logger.Warn().Err(cause).Str("job_id", jobID).Msg("transcription: job failed")
	if err := s.jobs.UpdateStatus(ctx, jobID, domain.JobStatusError, 0, cause.Error()); err != nil {
		s.logger.Error().Err(err).Str("job_id", jobID).Msg("transcription: persist error state failed")
	}
}
