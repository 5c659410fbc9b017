package ports

import (
	"context"
	"time"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

// Vectorizer turns a batch of cleaned texts into feature vectors.
type Vectorizer interface {
	Transform(texts []string) ([]domain.FeatureVector, error)
	Dim() int
}

// Classifier maps a batch of feature vectors to category ids.
type Classifier interface {
	Predict(vectors []domain.FeatureVector) ([]domain.CategoryID, error)
}

// MetricSource reports the stored model accuracy as a fraction in [0,1].
type MetricSource interface {
	Accuracy() (float64, bool)
}

// TextExtractor decodes an uploaded document into text.
type TextExtractor interface {
	Extract(ctx context.Context, upload domain.Upload) (domain.ExtractedText, error)
}

// WordCloudRenderer renders a frequency-weighted image of cleaned text.
type WordCloudRenderer interface {
	Render(cleaned string) (domain.WordCloud, error)
	Frequencies(cleaned string, limit int) []domain.WordFrequency
}

// ScreeningStore persists screening results (never document content).
type ScreeningStore interface {
	Save(ctx context.Context, screening *domain.Screening) error
	GetByID(ctx context.Context, id string) (*domain.Screening, error)
}

// EventPublisher announces completed screenings.
type EventPublisher interface {
	PublishScreened(ctx context.Context, screening *domain.Screening) error
}

// ScreeningRecorder observes screening outcomes for metrics.
type ScreeningRecorder interface {
	ObserveScreening(category string, format domain.DocumentFormat, duration time.Duration, err error)
	ObserveNotice(kind string)
}
