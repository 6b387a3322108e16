package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"translingo/internal/domain"
)

// TranscriptionJobRepositoryPG implements domain.TranscriptionJobRepository.
type TranscriptionJobRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewTranscriptionJobRepository creates a transcription job repository
// backed by PostgreSQL.
func NewTranscriptionJobRepository(pool *pgxpool.Pool) *TranscriptionJobRepositoryPG {
	return &TranscriptionJobRepositoryPG{pool: pool}
}

// Create inserts a new job record.
func (r *TranscriptionJobRepositoryPG) Create(ctx context.Context, job *domain.TranscriptionJob) error {
	query := `
INSERT INTO transcription_jobs (id, user_id, source_url, transcription, language, status, progress, error_message)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := r.pool.Exec(ctx, query,
		job.ID,
		job.UserID,
		job.SourceURL,
		job.Transcription,
		job.Language,
		job.Status,
		job.Progress,
		job.ErrorMessage,
	)
	return err
}

// GetByID fetches a job by its identifier.
func (r *TranscriptionJobRepositoryPG) GetByID(ctx context.Context, jobID string) (*domain.TranscriptionJob, error) {
	query := `
SELECT id, user_id, source_url, transcription, language, status, progress, error_message, created_at, updated_at
FROM transcription_jobs
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, jobID)
	var job domain.TranscriptionJob
	if err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.SourceURL,
		&job.Transcription,
		&job.Language,
		&job.Status,
		&job.Progress,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// UpdateStatus advances lifecycle state. Terminal rows are left alone so
// a late write can never revert completed or error.
func (r *TranscriptionJobRepositoryPG) UpdateStatus(ctx context.Context, jobID string, status domain.JobStatus, progress int, errMsg string) error {
	query := `
UPDATE transcription_jobs
SET status = $2,
    progress = $3,
    error_message = $4,
    updated_at = NOW()
WHERE id = $1
  AND status NOT IN ('completed', 'error');
`
	_, err := r.pool.Exec(ctx, query, jobID, status, progress, errMsg)
	return err
}

// Complete records the transcript and detected language and marks the
// job completed in a single write.
func (r *TranscriptionJobRepositoryPG) Complete(ctx context.Context, jobID, transcription, language string) error {
	query := `
UPDATE transcription_jobs
SET status = 'completed',
    progress = 100,
    transcription = $2,
    language = $3,
    error_message = '',
    updated_at = NOW()
WHERE id = $1
  AND status NOT IN ('completed', 'error');
`
	_, err := r.pool.Exec(ctx, query, jobID, transcription, language)
	return err
}

// UpdateLanguage persists a corrected source language.
func (r *TranscriptionJobRepositoryPG) UpdateLanguage(ctx context.Context, jobID, language string) error {
	query := `
UPDATE transcription_jobs
SET language = $2,
    updated_at = NOW()
WHERE id = $1;
`
	_, err := r.pool.Exec(ctx, query, jobID, language)
	return err
}

// ListStale returns non-terminal jobs whose last update is older than
// the given age, oldest first.
func (r *TranscriptionJobRepositoryPG) ListStale(ctx context.Context, olderThanSeconds int, limit int) ([]domain.TranscriptionJob, error) {
	query := `
SELECT id, user_id, source_url, transcription, language, status, progress, error_message, created_at, updated_at
FROM transcription_jobs
WHERE status IN ('pending', 'processing')
  AND updated_at < NOW() - make_interval(secs => $1)
ORDER BY updated_at
LIMIT $2;
`
	rows, err := r.pool.Query(ctx, query, olderThanSeconds, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.TranscriptionJob
	for rows.Next() {
		var job domain.TranscriptionJob
		if err := rows.Scan(
			&job.ID,
			&job.UserID,
			&job.SourceURL,
			&job.Transcription,
			&job.Language,
			&job.Status,
			&job.Progress,
			&job.ErrorMessage,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
