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
	"translingo/internal/extract"
	"translingo/internal/http/handlers"
	"translingo/internal/http/httpapi"
	"translingo/internal/infra"
	"translingo/internal/infra/geoip"
	"translingo/internal/middleware"
	"translingo/internal/providers/lingo"
	"translingo/internal/providers/transcript"
	"translingo/internal/service"
	"translingo/internal/storage"
	"translingo/internal/translate"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	jobs := repo.NewTranscriptionJobRepository(dbpool)
	cache := repo.NewTranslationCacheRepository(dbpool)
	docs := repo.NewDocumentJobRepository(dbpool)

	store, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure storage")
	}

	lingoClient, err := lingo.NewClient(lingo.Options{
		APIKey:  cfg.LingoAPIKey,
		BaseURL: cfg.LingoBaseURL,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure localization client")
	}
	adapter := translate.NewAdapter(lingoClient, logger)
	translator := translate.NewTranscriptTranslator(adapter, logger)

	fetcher := transcript.NewYouTubeFetcher(&http.Client{Timeout: 30 * time.Second})

	app := &handlers.App{
		Transcriptions: service.NewTranscriptionService(jobs, fetcher, logger, cfg.JobTimeout),
		Translations:   service.NewTranslationService(jobs, cache, translator, translate.NewCorrectionTable(), logger),
		Documents:      service.NewDocumentService(docs, extract.NewRegistry(), adapter, store, cfg.PublicBaseURL, logger, cfg.JobTimeout),
		Localizer:      adapter,
		Logger:         logger,
	}

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		defer func() {
			if closer, ok := resolver.(interface{ Close() error }); ok {
				_ = closer.Close()
			}
		}()
		lookup = resolver.CountryCode
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   lookup,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
