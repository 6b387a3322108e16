package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"translingo/internal/domain"
	"translingo/internal/extract"
	"translingo/internal/infra"
	"translingo/internal/lang"
	"translingo/internal/storage"
	"translingo/internal/translate"
)

// DocumentService owns the DocumentTranslationJob lifecycle:
// pending -> processing(extract -> translate -> write) -> completed | error.
type DocumentService struct {
	docs          domain.DocumentJobRepository
	extractors    extract.Registry
	adapter       *translate.Adapter
	store         *storage.FileStore
	publicBaseURL string
	logger        infra.Logger
	jobTimeout    time.Duration
}

// NewDocumentService wires the document translation orchestrator.
func NewDocumentService(
	docs domain.DocumentJobRepository,
	extractors extract.Registry,
	adapter *translate.Adapter,
	store *storage.FileStore,
	publicBaseURL string,
	logger infra.Logger,
	jobTimeout time.Duration,
) *DocumentService {
	if jobTimeout <= 0 {
		jobTimeout = 5 * time.Minute
	}
	return &DocumentService{
		docs:          docs,
		extractors:    extractors,
		adapter:       adapter,
		store:         store,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
		jobTimeout:    jobTimeout,
	}
}

// TranslateDocument creates a pending job for the uploaded document and
// runs extraction, translation and artifact writing in the background.
func (s *DocumentService) TranslateDocument(ctx context.Context, fileBytes []byte, fileName string, fileType domain.FileType, sourceLang, targetLang, userID string) (string, error) {
	if len(fileBytes) == 0 {
		return "", fmt.Errorf("document is empty: %w", domain.ErrEmptyInput)
	}
	if _, err := s.extractors.For(fileType); err != nil {
		return "", err
	}

	job := &domain.DocumentTranslationJob{
		ID:             uuid.NewString(),
		UserID:         userID,
		FileName:       fileName,
		FileType:       fileType,
		SourceLanguage: lang.Normalize(sourceLang),
		TargetLanguage: lang.Normalize(targetLang),
		Status:         domain.JobStatusPending,
	}
	if err := s.docs.Create(ctx, job); err != nil {
		return "", fmt.Errorf("create document job: %w", err)
	}

	go func() {
		runCtx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()
		s.Process(runCtx, job, fileBytes)
	}()

	return job.ID, nil
}

// Process runs one document translation attempt to a terminal state,
// persisting a checkpoint after each step so polling clients observe
// monotonic progress.
func (s *DocumentService) Process(ctx context.Context, job *domain.DocumentTranslationJob, fileBytes []byte) {
	// A new attempt must not expose the artifact of a previous one.
	if err := s.docs.ClearArtifact(ctx, job.ID); err != nil {
		s.logger.Error().Err(err).Str("job_id", job.ID).Msg("document: clear artifact failed")
		return
	}
	if err := s.docs.UpdateStatus(ctx, job.ID, domain.JobStatusProcessing, domain.DocProgressStarted, ""); err != nil {
		s.logger.Error().Err(err).Str("job_id", job.ID).Msg("document: mark processing failed")
		return
	}

	extractor, err := s.extractors.For(job.FileType)
	if err != nil {
		s.fail(ctx, job.ID, domain.DocProgressStarted, err)
		return
	}
	ex, err := extractor.Extract(ctx, fileBytes)
	if err != nil {
		s.fail(ctx, job.ID, domain.DocProgressStarted, fmt.Errorf("extract text: %w", err))
		return
	}
	if strings.TrimSpace(ex.Text) == "" {
		s.fail(ctx, job.ID, domain.DocProgressStarted, fmt.Errorf("document contains no extractable text"))
		return
	}
	if err := s.docs.SetProgress(ctx, job.ID, domain.DocProgressExtracted); err != nil {
		s.logger.Warn().Err(err).Str("job_id", job.ID).Msg("document: checkpoint write failed")
	}

	// Whole-document translation in one call; document text has no
	// timestamp structure to preserve.
	translated := s.adapter.TranslateText(ctx, ex.Text, job.SourceLanguage, job.TargetLanguage)
	if strings.TrimSpace(translated) == "" {
		s.fail(ctx, job.ID, domain.DocProgressExtracted, fmt.Errorf("translation produced no output: %w", domain.ErrEmptyResult))
		return
	}
	if err := s.docs.SetProgress(ctx, job.ID, domain.DocProgressTranslated); err != nil {
		s.logger.Warn().Err(err).Str("job_id", job.ID).Msg("document: checkpoint write failed")
	}

	if _, err := s.store.Write(ctx, ArtifactKey(job.ID), []byte(translated)); err != nil {
		s.fail(ctx, job.ID, domain.DocProgressTranslated, fmt.Errorf("write artifact: %w", err))
		return
	}
	if err := s.docs.SetProgress(ctx, job.ID, domain.DocProgressWritten); err != nil {
		s.logger.Warn().Err(err).Str("job_id", job.ID).Msg("document: checkpoint write failed")
	}

	url := fmt.Sprintf("%s/v1/documents/%s/download", s.publicBaseURL, job.ID)
	if err := s.docs.Complete(ctx, job.ID, url, ex.PageCount); err != nil {
		s.logger.Error().Err(err).Str("job_id", job.ID).Msg("document: persist completion failed")
	}
}

// GetJob returns the current job state for polling clients.
func (s *DocumentService) GetJob(ctx context.Context, jobID string) (*domain.DocumentTranslationJob, error) {
	return s.docs.GetByID(ctx, jobID)
}

// Artifact returns the translated artifact bytes for a completed job.
func (s *DocumentService) Artifact(ctx context.Context, jobID, userID string) ([]byte, *domain.DocumentTranslationJob, error) {
	job, err := s.docs.GetByID(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if job.UserID != userID {
		return nil, nil, domain.ErrNotFound
	}
	if job.Status != domain.JobStatusCompleted || job.TranslatedFileURL == "" {
		return nil, nil, fmt.Errorf("job %s is %s: %w", jobID, job.Status, domain.ErrInvalidState)
	}
	data, err := s.store.Read(ctx, ArtifactKey(jobID))
	if err != nil {
		return nil, nil, err
	}
	return data, job, nil
}

// ArtifactKey is the storage key of a job's translated text artifact.
func ArtifactKey(jobID string) string {
	return "documents/" + jobID + "/translated.txt"
}

func (s *DocumentService) fail(ctx context.Context, jobID string, progress int, cause error) {
	s.logger.Warn().Err(cause).Str("job_id", jobID).Msg("document: job failed")
	// No dangling reference to a partial artifact.
	if err := s.docs.ClearArtifact(ctx, jobID); err != nil {
		s.logger.Error().Err(err).Str("job_id", jobID).Msg("document: clear artifact failed")
	}
	if err := s.docs.UpdateStatus(ctx, jobID, domain.JobStatusError, progress, cause.Error()); err != nil {
		s.logger.Error().Err(err).Str("job_id", jobID).Msg("document: persist error state failed")
	}
}
