package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"translingo/internal/adapter/repo"
	"translingo/internal/domain"
	"translingo/internal/infra"
	"translingo/internal/providers/transcript"
	"translingo/internal/service"
)

const staleBatchSize = 10

// recoveryWorker re-runs transcription jobs abandoned mid-flight, e.g.
// after an API process crash. Document jobs cannot be re-run because the
// uploaded bytes are never persisted; stale ones are failed out so
// clients stop polling.
type recoveryWorker struct {
	jobs           domain.TranscriptionJobRepository
	docs           domain.DocumentJobRepository
	transcriptions *service.TranscriptionService
	logger         infra.Logger
	pollInterval   time.Duration
	staleAfter     time.Duration
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	jobs := repo.NewTranscriptionJobRepository(pool)
	docs := repo.NewDocumentJobRepository(pool)
	fetcher := transcript.NewYouTubeFetcher(&http.Client{Timeout: 30 * time.Second})

	w := &recoveryWorker{
		jobs:           jobs,
		docs:           docs,
		transcriptions: service.NewTranscriptionService(jobs, fetcher, logger, cfg.JobTimeout),
		logger:         logger,
		pollInterval:   cfg.WorkerPollInterval,
		staleAfter:     cfg.WorkerStaleAfter,
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

func (w *recoveryWorker) Run(ctx context.Context) error {
	w.logger.Info().Msg("worker: started")
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *recoveryWorker) sweep(ctx context.Context) {
	w.recoverTranscriptions(ctx)
	w.abandonDocuments(ctx)
}

func (w *recoveryWorker) recoverTranscriptions(ctx context.Context) {
	stale, err := w.jobs.ListStale(ctx, int(w.staleAfter.Seconds()), staleBatchSize)
	if err != nil {
		w.logger.Error().Err(err).Msg("worker: list stale transcription jobs failed")
		return
	}
	for _, job := range stale {
		w.logger.Info().Str("job_id", job.ID).Str("status", string(job.Status)).Msg("worker: re-running stale transcription job")
		w.transcriptions.Process(ctx, job.ID, job.SourceURL)
		if ctx.Err() != nil {
			return
		}
	}
}

func (w *recoveryWorker) abandonDocuments(ctx context.Context) {
	stale, err := w.docs.ListStale(ctx, int(w.staleAfter.Seconds()), staleBatchSize)
	if err != nil {
		w.logger.Error().Err(err).Msg("worker: list stale document jobs failed")
		return
	}
	for _, job := range stale {
		w.logger.Warn().Str("job_id", job.ID).Msg("worker: failing abandoned document job")
		if err := w.docs.UpdateStatus(ctx, job.ID, domain.JobStatusError, job.Progress, "processing abandoned, please re-upload the document"); err != nil {
			w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: mark abandoned failed")
		}
		if ctx.Err() != nil {
			return
		}
	}
}
