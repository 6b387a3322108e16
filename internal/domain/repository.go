package domain

import "context"

// TranscriptionJobRepository defines persistence for transcription jobs.
type TranscriptionJobRepository interface {
	Create(ctx context.Context, job *TranscriptionJob) error
	GetByID(ctx context.Context, jobID string) (*TranscriptionJob, error)
	// UpdateStatus advances lifecycle state. Implementations must not
	// overwrite a terminal status.
	UpdateStatus(ctx context.Context, jobID string, status JobStatus, progress int, errMsg string) error
	// Complete records the fetched transcript and detected language and
	// marks the job completed in one write.
	Complete(ctx context.Context, jobID, transcription, language string) error
	// UpdateLanguage persists a corrected source language.
	UpdateLanguage(ctx context.Context, jobID, language string) error
	// ListStale returns non-terminal jobs last touched before the given
	// cutoff, for the recovery worker.
	ListStale(ctx context.Context, olderThanSeconds int, limit int) ([]TranscriptionJob, error)
}

// TranslationCacheRepository defines the per-(job, language) memoization
// store for transcript translations.
type TranslationCacheRepository interface {
	Get(ctx context.Context, jobID, language string) (*TranslationCacheEntry, error)
	// Put upserts: an existing entry for the key is overwritten.
	Put(ctx context.Context, jobID, language, text string) error
	Delete(ctx context.Context, jobID, language string) error
}

// DocumentJobRepository defines persistence for document translation jobs.
type DocumentJobRepository interface {
	Create(ctx context.Context, job *DocumentTranslationJob) error
	GetByID(ctx context.Context, jobID string) (*DocumentTranslationJob, error)
	UpdateStatus(ctx context.Context, jobID string, status JobStatus, progress int, errMsg string) error
	// SetProgress records a checkpoint without changing status.
	SetProgress(ctx context.Context, jobID string, progress int) error
	// Complete records the artifact URL and page count and marks the job
	// completed.
	Complete(ctx context.Context, jobID, artifactURL string, pageCount int) error
	// ClearArtifact resets the translated-file reference, used when a new
	// processing attempt starts or a checkpoint fails.
	ClearArtifact(ctx context.Context, jobID string) error
	ListStale(ctx context.Context, olderThanSeconds int, limit int) ([]DocumentTranslationJob, error)
}
