package ports

import (
	"context"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

// ResumeClassifier is the inbound contract for text-only classification.
type ResumeClassifier interface {
	Classify(ctx context.Context, decodedText string) (domain.Classification, error)
}

// ResumeScreener is the inbound contract for end-to-end screening of an upload.
type ResumeScreener interface {
	Screen(ctx context.Context, upload domain.Upload, opts domain.ScreenOptions) (*domain.Screening, error)
	Get(ctx context.Context, id string) (*domain.Screening, error)
}

// WordFrequencyService computes stop-word filtered frequencies of an upload.
type WordFrequencyService interface {
	Frequencies(ctx context.Context, upload domain.Upload, limit int) ([]domain.WordFrequency, error)
}

// ModelDescriber exposes read-only information about the loaded artifacts.
type ModelDescriber interface {
	ModelInfo() domain.ModelInfo
}
