package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Balaji91221/resume-screening-app/internal/config"
	"github.com/Balaji91221/resume-screening-app/internal/core/ports"
	"github.com/Balaji91221/resume-screening-app/internal/core/usecase"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/extractor"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/model"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/queue/nats"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/repository/postgres"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/resilience"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/storage/localfs"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/wordcloud"
	"github.com/Balaji91221/resume-screening-app/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPServerMetrics

	Model      *model.Bundle
	ClassifyUC *usecase.ClassifyUseCase
	ScreenUC   *usecase.ScreenUseCase

	closeFn func()
}

// Model is the loaded artifact bundle plus the classification flow built on it.
type Model struct {
	Bundle     *model.Bundle
	ClassifyUC *usecase.ClassifyUseCase
}

// LoadModel reads both artifacts from cfg.ModelDir. A missing or malformed
// artifact is fatal: nothing can be served without them.
func LoadModel(ctx context.Context, cfg config.Config) (*Model, error) {
	storage := localfs.New(cfg.ModelDir)
	bundle, err := model.LoadBundle(ctx, storage, cfg.VectorizerPath, cfg.ClassifierPath)
	if err != nil {
		return nil, fmt.Errorf("load model artifacts: %w", err)
	}

	info := bundle.ModelInfo()
	slog.Info("model_loaded",
		"dir", cfg.ModelDir,
		"vectorizer_dim", info.VectorizerDim,
		"classifier_kind", info.ClassifierKind,
		"classes", len(info.Classes),
		"has_accuracy", info.AccuracyPercent != nil,
	)

	return &Model{
		Bundle:     bundle,
		ClassifyUC: usecase.NewClassifyUseCase(bundle.Vectorizer(), bundle.Classifier()),
	}, nil
}

func New(ctx context.Context, cfg config.Config, service string) (*App, error) {
	loaded, err := LoadModel(ctx, cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := newRenderer(cfg)
	if err != nil {
		return nil, err
	}

	registry := metrics.NewRegistry()
	httpMetrics := metrics.NewHTTPServerMetrics(service, registry)
	screeningMetrics := metrics.NewScreeningMetrics(service, registry)

	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var store ports.ScreeningStore
	if cfg.PostgresDSN != "" {
		db, repo, err := openStore(ctx, cfg.PostgresDSN)
		if err != nil {
			closeAll()
			return nil, err
		}
		closers = append(closers, func() { _ = db.Close() })
		store = repo
	} else {
		slog.Info("result_store_disabled", "reason", "POSTGRES_DSN is empty")
	}

	var publisher ports.EventPublisher
	if cfg.NATSURL != "" {
		executor := resilience.NewExecutor(eventsResilienceConfig(cfg), resilience.Hooks{
			OnRetry:       screeningMetrics.RecordRetry,
			OnStateChange: screeningMetrics.RecordBreakerTransition,
		})
		events, err := nats.NewPublisher(cfg.NATSURL, cfg.NATSSubject, nats.Options{ResilienceExecutor: executor})
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("init event publisher: %w", err)
		}
		closers = append(closers, events.Close)
		publisher = events
	} else {
		slog.Info("event_publisher_disabled", "reason", "NATS_URL is empty")
	}

	screenUC := usecase.NewScreenUseCase(
		extractor.NewRouter(cfg.MaxUploadBytes),
		loaded.ClassifyUC,
		renderer,
		loaded.Bundle,
		store,
		publisher,
		screeningMetrics,
	)

	return &App{
		Config:      cfg,
		Registry:    registry,
		HTTPMetrics: httpMetrics,
		Model:       loaded.Bundle,
		ClassifyUC:  loaded.ClassifyUC,
		ScreenUC:    screenUC,
		closeFn:     closeAll,
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func newRenderer(cfg config.Config) (*wordcloud.Renderer, error) {
	opts := wordcloud.Options{
		Width:    cfg.WordCloudWidth,
		Height:   cfg.WordCloudHeight,
		MaxWords: cfg.WordCloudMaxWords,
	}
	if cfg.StopwordsPath != "" {
		stoplist, err := wordcloud.LoadStoplist(cfg.StopwordsPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		opts.ExtraStopWords = stoplist.Terms
	}
	return wordcloud.NewRenderer(opts), nil
}

func openStore(ctx context.Context, dsn string) (*sql.DB, *postgres.ScreeningRepository, error) {
	db, err := postgres.OpenDB(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewScreeningRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, repo, nil
}

func eventsResilienceConfig(cfg config.Config) resilience.Config {
	out := resilience.DefaultConfig()
	if cfg.EventsRetryMaxAttempts > 0 {
		out.RetryMaxAttempts = cfg.EventsRetryMaxAttempts
	}
	out.BreakerEnabled = cfg.EventsBreakerEnabled
	return out
}
