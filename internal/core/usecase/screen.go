package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
	"github.com/Balaji91221/resume-screening-app/internal/core/ports"
	"github.com/Balaji91221/resume-screening-app/internal/core/textclean"
)

const (
	NoticeAccuracyUnavailable = "Unable to calculate accuracy."
	NoticeWordCloudSkipped    = "Word cloud could not be rendered."

	defaultFrequencyLimit = 50
)

type ScreenUseCase struct {
	extractor  ports.TextExtractor
	classifier ports.ResumeClassifier
	renderer   ports.WordCloudRenderer
	metric     ports.MetricSource
	store      ports.ScreeningStore
	publisher  ports.EventPublisher
	recorder   ports.ScreeningRecorder

	now func() time.Time
}

// NewScreenUseCase wires the screening flow. metric, store, publisher and
// recorder may be nil; the corresponding step is then skipped.
func NewScreenUseCase(
	extractor ports.TextExtractor,
	classifier ports.ResumeClassifier,
	renderer ports.WordCloudRenderer,
	metric ports.MetricSource,
	store ports.ScreeningStore,
	publisher ports.EventPublisher,
	recorder ports.ScreeningRecorder,
) *ScreenUseCase {
	return &ScreenUseCase{
		extractor:  extractor,
		classifier: classifier,
		renderer:   renderer,
		metric:     metric,
		store:      store,
		publisher:  publisher,
		recorder:   recorder,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (uc *ScreenUseCase) Screen(ctx context.Context, upload domain.Upload, opts domain.ScreenOptions) (*domain.Screening, error) {
	start := time.Now()
	screening, err := uc.screen(ctx, upload, opts)
	uc.observe(screening, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	uc.persist(ctx, screening)
	return screening, nil
}

func (uc *ScreenUseCase) screen(ctx context.Context, upload domain.Upload, opts domain.ScreenOptions) (*domain.Screening, error) {
	extracted, err := uc.extract(ctx, upload)
	if err != nil {
		return nil, err
	}

	classification, err := uc.classifier.Classify(ctx, extracted.Text)
	if err != nil {
		return nil, fmt.Errorf("classify resume: %w", err)
	}

	screening := &domain.Screening{
		ID:         uuid.NewString(),
		Filename:   upload.Filename,
		Format:     extracted.Format,
		Encoding:   extracted.Encoding,
		CategoryID: classification.CategoryID,
		Category:   classification.Category,
		WordCount:  len(strings.Fields(classification.CleanedText)),
		Notices:    append([]string{}, extracted.Notices...),
		CreatedAt:  uc.now(),
	}

	if opts.WordCloud {
		uc.attachWordCloud(screening, classification.CleanedText)
	}
	uc.attachAccuracy(screening)

	return screening, nil
}

func (uc *ScreenUseCase) Get(ctx context.Context, id string) (*domain.Screening, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "get screening", errors.New("screening id is required"))
	}
	if uc.store == nil {
		return nil, domain.WrapError(domain.ErrScreeningNotFound, "get screening", fmt.Errorf("id=%s: result store disabled", id))
	}
	return uc.store.GetByID(ctx, id)
}

// Frequencies returns the stop-word filtered word counts of an upload, most frequent first.
func (uc *ScreenUseCase) Frequencies(ctx context.Context, upload domain.Upload, limit int) ([]domain.WordFrequency, error) {
	if limit <= 0 {
		limit = defaultFrequencyLimit
	}
	extracted, err := uc.extract(ctx, upload)
	if err != nil {
		return nil, err
	}
	return uc.renderer.Frequencies(textclean.Clean(extracted.Text), limit), nil
}

func (uc *ScreenUseCase) extract(ctx context.Context, upload domain.Upload) (domain.ExtractedText, error) {
	if len(upload.Data) == 0 {
		return domain.ExtractedText{}, domain.WrapError(domain.ErrInvalidInput, "extract text", errors.New("empty upload"))
	}
	extracted, err := uc.extractor.Extract(ctx, upload)
	if err != nil {
		return domain.ExtractedText{}, fmt.Errorf("extract text: %w", err)
	}
	return extracted, nil
}

func (uc *ScreenUseCase) attachWordCloud(screening *domain.Screening, cleaned string) {
	cloud, err := uc.renderer.Render(cleaned)
	if err != nil {
		slog.Warn("word_cloud_render_failed", "screening_id", screening.ID, "error", err)
		uc.notice(screening, "word_cloud", NoticeWordCloudSkipped)
		return
	}
	screening.WordCloud = &cloud
}

func (uc *ScreenUseCase) attachAccuracy(screening *domain.Screening) {
	if uc.metric == nil {
		uc.notice(screening, "accuracy", NoticeAccuracyUnavailable)
		return
	}
	accuracy, ok := uc.metric.Accuracy()
	if !ok {
		uc.notice(screening, "accuracy", NoticeAccuracyUnavailable)
		return
	}
	percent := accuracy * 100
	screening.Accuracy = &percent
}

func (uc *ScreenUseCase) notice(screening *domain.Screening, kind, message string) {
	screening.Notices = append(screening.Notices, message)
	if uc.recorder != nil {
		uc.recorder.ObserveNotice(kind)
	}
}

// persist is best-effort: a screening is never failed because the result
// could not be stored or announced.
func (uc *ScreenUseCase) persist(ctx context.Context, screening *domain.Screening) {
	if uc.store != nil {
		if err := uc.store.Save(ctx, screening); err != nil {
			slog.Warn("screening_store_failed", "screening_id", screening.ID, "error", err)
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishScreened(ctx, screening); err != nil {
			slog.Warn("screening_publish_failed", "screening_id", screening.ID, "error", err)
		}
	}
}

func (uc *ScreenUseCase) observe(screening *domain.Screening, duration time.Duration, err error) {
	if uc.recorder == nil {
		return
	}
	category := ""
	var format domain.DocumentFormat
	if screening != nil {
		category = screening.Category
		format = screening.Format
	}
	uc.recorder.ObserveScreening(category, format, duration, err)
}
