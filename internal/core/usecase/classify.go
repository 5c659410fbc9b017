package usecase

import (
	"context"
	"fmt"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
	"github.com/Balaji91221/resume-screening-app/internal/core/ports"
	"github.com/Balaji91221/resume-screening-app/internal/core/textclean"
)

type ClassifyUseCase struct {
	vectorizer ports.Vectorizer
	classifier ports.Classifier
}

func NewClassifyUseCase(
	vectorizer ports.Vectorizer,
	classifier ports.Classifier,
) *ClassifyUseCase {
	return &ClassifyUseCase{
		vectorizer: vectorizer,
		classifier: classifier,
	}
}

// Classify runs clean -> vectorize -> predict -> resolve on one decoded text.
// Unknown category ids degrade to domain.UnknownCategory instead of failing.
func (uc *ClassifyUseCase) Classify(ctx context.Context, decodedText string) (domain.Classification, error) {
	if err := ctx.Err(); err != nil {
		return domain.Classification{}, err
	}

	cleaned := textclean.Clean(decodedText)

	vector, err := uc.vectorize(cleaned)
	if err != nil {
		return domain.Classification{}, err
	}

	id, err := uc.predict(vector)
	if err != nil {
		return domain.Classification{}, err
	}

	return domain.Classification{
		CategoryID:  id,
		Category:    domain.ResolveCategory(id),
		CleanedText: cleaned,
	}, nil
}

func (uc *ClassifyUseCase) vectorize(cleaned string) (domain.FeatureVector, error) {
	vectors, err := uc.vectorizer.Transform([]string{cleaned})
	if err != nil {
		return domain.FeatureVector{}, fmt.Errorf("vectorize text: %w", err)
	}
	if len(vectors) != 1 {
		return domain.FeatureVector{}, domain.WrapError(
			domain.ErrInvalidArtifact,
			"vectorize text",
			fmt.Errorf("expected 1 vector, got %d", len(vectors)),
		)
	}
	return vectors[0], nil
}

func (uc *ClassifyUseCase) predict(vector domain.FeatureVector) (domain.CategoryID, error) {
	ids, err := uc.classifier.Predict([]domain.FeatureVector{vector})
	if err != nil {
		return 0, fmt.Errorf("predict category: %w", err)
	}
	if len(ids) == 0 {
		return 0, domain.WrapError(
			domain.ErrInvalidArtifact,
			"predict category",
			fmt.Errorf("classifier returned no prediction"),
		)
	}
	return ids[0], nil
}
