package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

type vectorizerFake struct {
	received []string
	vectors  []domain.FeatureVector
	err      error
}

func (f *vectorizerFake) Transform(texts []string) ([]domain.FeatureVector, error) {
	f.received = append(f.received, texts...)
	if f.err != nil {
		return nil, f.err
	}
	if f.vectors != nil {
		return f.vectors, nil
	}
	out := make([]domain.FeatureVector, len(texts))
	for i := range texts {
		out[i] = domain.FeatureVector{Dim: 3, Indices: []int{0}, Values: []float64{1}}
	}
	return out, nil
}

func (f *vectorizerFake) Dim() int { return 3 }

type classifierFake struct {
	ids      []domain.CategoryID
	err      error
	received []domain.FeatureVector
}

func (f *classifierFake) Predict(vectors []domain.FeatureVector) ([]domain.CategoryID, error) {
	f.received = append(f.received, vectors...)
	if f.err != nil {
		return nil, f.err
	}
	return f.ids, nil
}

func TestClassifyReturnsPythonDeveloperForID20(t *testing.T) {
	vec := &vectorizerFake{}
	cls := &classifierFake{ids: []domain.CategoryID{20}}
	uc := NewClassifyUseCase(vec, cls)

	got, err := uc.Classify(context.Background(), "Python, Django & Flask developer — see http://me.dev")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got.Category != "Python Developer" || got.CategoryID != 20 {
		t.Fatalf("unexpected classification: %+v", got)
	}
	if len(vec.received) != 1 {
		t.Fatalf("expected single-element batch, got %d", len(vec.received))
	}
	if strings.Contains(vec.received[0], "http") || strings.Contains(vec.received[0], ",") {
		t.Fatalf("expected cleaned text to reach vectorizer, got %q", vec.received[0])
	}
	if len(cls.received) != 1 {
		t.Fatalf("expected one vector passed to classifier, got %d", len(cls.received))
	}
}

func TestClassifyUnknownIDDegradesToUnknownLabel(t *testing.T) {
	uc := NewClassifyUseCase(&vectorizerFake{}, &classifierFake{ids: []domain.CategoryID{99}})

	got, err := uc.Classify(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got.Category != domain.UnknownCategory {
		t.Fatalf("expected Unknown, got %q", got.Category)
	}
}

func TestClassifyEmptyPredictionIsArtifactError(t *testing.T) {
	uc := NewClassifyUseCase(&vectorizerFake{}, &classifierFake{})

	_, err := uc.Classify(context.Background(), "anything")
	if !domain.IsKind(err, domain.ErrInvalidArtifact) {
		t.Fatalf("expected ErrInvalidArtifact, got %v", err)
	}
}

func TestClassifyVectorBatchMismatch(t *testing.T) {
	vec := &vectorizerFake{vectors: []domain.FeatureVector{{}, {}}}
	uc := NewClassifyUseCase(vec, &classifierFake{ids: []domain.CategoryID{1}})

	_, err := uc.Classify(context.Background(), "anything")
	if !domain.IsKind(err, domain.ErrInvalidArtifact) {
		t.Fatalf("expected ErrInvalidArtifact, got %v", err)
	}
}

func TestClassifyPropagatesVectorizerError(t *testing.T) {
	uc := NewClassifyUseCase(&vectorizerFake{err: errors.New("dimension mismatch")}, &classifierFake{})

	_, err := uc.Classify(context.Background(), "anything")
	if err == nil || !strings.Contains(err.Error(), "vectorize text") {
		t.Fatalf("expected vectorize error, got %v", err)
	}
}

func TestClassifyHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	uc := NewClassifyUseCase(&vectorizerFake{}, &classifierFake{ids: []domain.CategoryID{1}})

	if _, err := uc.Classify(ctx, "text"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
