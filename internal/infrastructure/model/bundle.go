package model

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

// ArtifactSource resolves artifact keys to readable content.
type ArtifactSource interface {
	Exists(ctx context.Context, key string) (bool, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// Bundle holds the loaded vectorizer and classifier. It is read-only after
// LoadBundle returns and safe for concurrent use.
type Bundle struct {
	vectorizer *TFIDFVectorizer
	classifier Classifier
	accuracy   *float64
}

// LoadBundle reads both artifacts. Missing artifacts are reported together so
// a misconfigured deployment fails once with the full list.
func LoadBundle(ctx context.Context, src ArtifactSource, vectorizerKey, classifierKey string) (*Bundle, error) {
	const op = "load model artifacts"

	missing := make([]string, 0, 2)
	for _, item := range []struct{ role, key string }{
		{role: "vectorizer", key: vectorizerKey},
		{role: "classifier", key: classifierKey},
	} {
		ok, err := src.Exists(ctx, item.key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !ok {
			missing = append(missing, fmt.Sprintf("%s (%s)", item.role, item.key))
		}
	}
	if len(missing) > 0 {
		return nil, domain.WrapError(domain.ErrMissingArtifact, op, fmt.Errorf("not found: %s", strings.Join(missing, ", ")))
	}

	var va vectorizerArtifact
	if err := decodeArtifact(ctx, src, vectorizerKey, &va); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidArtifact, op, fmt.Errorf("vectorizer (%s): %w", vectorizerKey, err))
	}
	vectorizer, err := newTFIDFVectorizer(va)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidArtifact, op, fmt.Errorf("vectorizer (%s): %w", vectorizerKey, err))
	}

	var ca classifierArtifact
	if err := decodeArtifact(ctx, src, classifierKey, &ca); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidArtifact, op, fmt.Errorf("classifier (%s): %w", classifierKey, err))
	}
	classifier, err := newClassifier(ca, vectorizer.Dim())
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidArtifact, op, fmt.Errorf("classifier (%s): %w", classifierKey, err))
	}

	b := &Bundle{vectorizer: vectorizer, classifier: classifier}
	if acc := ca.Metrics.Accuracy; acc != nil && *acc >= 0 && *acc <= 1 {
		value := *acc
		b.accuracy = &value
	}
	return b, nil
}

func decodeArtifact(ctx context.Context, src ArtifactSource, key string, dest any) error {
	rc, err := src.Open(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := json.NewDecoder(rc).Decode(dest); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

func (b *Bundle) Vectorizer() *TFIDFVectorizer { return b.vectorizer }
func (b *Bundle) Classifier() Classifier        { return b.classifier }

// Accuracy reports the held-out accuracy recorded with the classifier, if any.
func (b *Bundle) Accuracy() (float64, bool) {
	if b.accuracy == nil {
		return 0, false
	}
	return *b.accuracy, true
}

func (b *Bundle) ModelInfo() domain.ModelInfo {
	info := domain.ModelInfo{
		VectorizerDim:  b.vectorizer.Dim(),
		ClassifierKind: b.classifier.Kind(),
		Classes:        append([]domain.CategoryID(nil), b.classifier.Classes()...),
	}
	if acc, ok := b.Accuracy(); ok {
		percent := acc * 100
		info.AccuracyPercent = &percent
	}
	return info
}
