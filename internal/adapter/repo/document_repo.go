package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"translingo/internal/domain"
)

// DocumentJobRepositoryPG implements domain.DocumentJobRepository.
type DocumentJobRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDocumentJobRepository creates a document job repository backed by
// PostgreSQL.
func NewDocumentJobRepository(pool *pgxpool.Pool) *DocumentJobRepositoryPG {
	return &DocumentJobRepositoryPG{pool: pool}
}

// Create inserts a new document translation job.
func (r *DocumentJobRepositoryPG) Create(ctx context.Context, job *domain.DocumentTranslationJob) error {
	query := `
INSERT INTO document_jobs (id, user_id, file_name, file_type, source_language, target_language, status, progress, page_count, translated_file_url, error_message)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`
	_, err := r.pool.Exec(ctx, query,
		job.ID,
		job.UserID,
		job.FileName,
		job.FileType,
		job.SourceLanguage,
		job.TargetLanguage,
		job.Status,
		job.Progress,
		job.PageCount,
		job.TranslatedFileURL,
		job.ErrorMessage,
	)
	return err
}

// GetByID fetches a job by its identifier.
func (r *DocumentJobRepositoryPG) GetByID(ctx context.Context, jobID string) (*domain.DocumentTranslationJob, error) {
	query := `
SELECT id, user_id, file_name, file_type, source_language, target_language, status, progress, page_count, translated_file_url, error_message, created_at, updated_at
FROM document_jobs
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, jobID)
	var job domain.DocumentTranslationJob
	if err := scanDocumentJob(row, &job); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// UpdateStatus advances lifecycle state without reverting terminal rows.
func (r *DocumentJobRepositoryPG) UpdateStatus(ctx context.Context, jobID string, status domain.JobStatus, progress int, errMsg string) error {
	query := `
UPDATE document_jobs
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

// SetProgress records a checkpoint. Progress never moves backwards so
// polling clients observe monotonic values.
func (r *DocumentJobRepositoryPG) SetProgress(ctx context.Context, jobID string, progress int) error {
	query := `
UPDATE document_jobs
SET progress = GREATEST(progress, $2),
    updated_at = NOW()
WHERE id = $1
  AND status NOT IN ('completed', 'error');
`
	_, err := r.pool.Exec(ctx, query, jobID, progress)
	return err
}

// Complete records the artifact reference and page count and marks the
// job completed.
func (r *DocumentJobRepositoryPG) Complete(ctx context.Context, jobID, artifactURL string, pageCount int) error {
	query := `
UPDATE document_jobs
SET status = 'completed',
    progress = 100,
    translated_file_url = $2,
    page_count = $3,
    error_message = '',
    updated_at = NOW()
WHERE id = $1
  AND status NOT IN ('completed', 'error');
`
	_, err := r.pool.Exec(ctx, query, jobID, artifactURL, pageCount)
	return err
}

// ClearArtifact resets the translated-file reference so no stale URL is
// exposed while a new attempt runs.
func (r *DocumentJobRepositoryPG) ClearArtifact(ctx context.Context, jobID string) error {
	query := `
UPDATE document_jobs
SET translated_file_url = '',
    updated_at = NOW()
WHERE id = $1;
`
	_, err := r.pool.Exec(ctx, query, jobID)
	return err
}

// ListStale returns non-terminal jobs whose last update is older than
// the given age, oldest first.
func (r *DocumentJobRepositoryPG) ListStale(ctx context.Context, olderThanSeconds int, limit int) ([]domain.DocumentTranslationJob, error) {
	query := `
SELECT id, user_id, file_name, file_type, source_language, target_language, status, progress, page_count, translated_file_url, error_message, created_at, updated_at
FROM document_jobs
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

	var jobs []domain.DocumentTranslationJob
	for rows.Next() {
		var job domain.DocumentTranslationJob
		if err := scanDocumentJob(rows, &job); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func scanDocumentJob(row pgx.Row, job *domain.DocumentTranslationJob) error {
	return row.Scan(
		&job.ID,
		&job.UserID,
		&job.FileName,
		&job.FileType,
		&job.SourceLanguage,
		&job.TargetLanguage,
		&job.Status,
		&job.Progress,
		&job.PageCount,
		&job.TranslatedFileURL,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
}
