package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"translingo/internal/domain"
)

// TranslationCacheRepositoryPG implements domain.TranslationCacheRepository
// over a table with a unique constraint on (job_id, language).
type TranslationCacheRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewTranslationCacheRepository creates a cache repository backed by
// PostgreSQL.
func NewTranslationCacheRepository(pool *pgxpool.Pool) *TranslationCacheRepositoryPG {
	return &TranslationCacheRepositoryPG{pool: pool}
}

// Get fetches the cached translation for (jobID, language).
func (r *TranslationCacheRepositoryPG) Get(ctx context.Context, jobID, language string) (*domain.TranslationCacheEntry, error) {
	query := `
SELECT job_id, language, translated_text, updated_at
FROM translation_cache
WHERE job_id = $1 AND language = $2;
`
	row := r.pool.QueryRow(ctx, query, jobID, language)
	var entry domain.TranslationCacheEntry
	if err := row.Scan(&entry.JobID, &entry.Language, &entry.Text, &entry.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Put upserts the translation for (jobID, language). Concurrent writers
// for the same key are safe: last write wins, and both carry equivalent
// freshly computed text.
func (r *TranslationCacheRepositoryPG) Put(ctx context.Context, jobID, language, text string) error {
	query := `
INSERT INTO translation_cache (job_id, language, translated_text, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (job_id, language)
DO UPDATE SET translated_text = EXCLUDED.translated_text, updated_at = NOW();
`
	_, err := r.pool.Exec(ctx, query, jobID, language, text)
	return err
}

// Delete removes the entry for (jobID, language). Deleting an absent
// entry is not an error.
func (r *TranslationCacheRepositoryPG) Delete(ctx context.Context, jobID, language string) error {
	query := `DELETE FROM translation_cache WHERE job_id = $1 AND language = $2;`
	_, err := r.pool.Exec(ctx, query, jobID, language)
	return err
}
