package model

import (
	"fmt"
	"sort"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

const (
	KindLinear = "linear"
	KindKNN    = "knn"
)

type classifierArtifact struct {
	Kind      string              `json:"kind"`
	Classes   []domain.CategoryID `json:"classes"`
	Coef      [][]float64         `json:"coef"`
	Intercept []float64           `json:"intercept"`
	K         int                 `json:"k"`
	Samples   []sampleArtifact    `json:"samples"`
	Metrics   struct {
		Accuracy *float64 `json:"accuracy"`
	} `json:"metrics"`
}

type sampleArtifact struct {
	Indices []int             `json:"indices"`
	Values  []float64         `json:"values"`
	Label   domain.CategoryID `json:"label"`
}

// Classifier is a loaded prediction model.
type Classifier interface {
	Predict(vectors []domain.FeatureVector) ([]domain.CategoryID, error)
	Kind() string
	Classes() []domain.CategoryID
}

func newClassifier(a classifierArtifact, dim int) (Classifier, error) {
	switch a.Kind {
	case KindLinear, "":
		return newLinearClassifier(a, dim)
	case KindKNN:
		return newKNNClassifier(a, dim)
	default:
		return nil, fmt.Errorf("unsupported classifier kind %q", a.Kind)
	}
}

// LinearClassifier scores each class with coef.x + intercept and picks the
// highest score. A single coefficient row with two classes is the binary form:
// a positive score selects the second class.
type LinearClassifier struct {
	classes   []domain.CategoryID
	coef      [][]float64
	intercept []float64
	dim       int
}

func newLinearClassifier(a classifierArtifact, dim int) (*LinearClassifier, error) {
	if len(a.Classes) == 0 {
		return nil, fmt.Errorf("classes are empty")
	}
	binary := len(a.Classes) == 2 && len(a.Coef) == 1
	if !binary && len(a.Coef) != len(a.Classes) {
		return nil, fmt.Errorf("coef rows/classes mismatch: %d/%d", len(a.Coef), len(a.Classes))
	}
	for i, row := range a.Coef {
		if len(row) != dim {
			return nil, fmt.Errorf("coef row %d has %d features, vectorizer has %d", i, len(row), dim)
		}
	}
	intercept := a.Intercept
	if len(intercept) == 0 {
		intercept = make([]float64, len(a.Coef))
	}
	if len(intercept) != len(a.Coef) {
		return nil, fmt.Errorf("intercept/coef rows mismatch: %d/%d", len(intercept), len(a.Coef))
	}
	return &LinearClassifier{
		classes:   a.Classes,
		coef:      a.Coef,
		intercept: intercept,
		dim:       dim,
	}, nil
}

func (c *LinearClassifier) Kind() string                 { return KindLinear }
func (c *LinearClassifier) Classes() []domain.CategoryID { return c.classes }

func (c *LinearClassifier) Predict(vectors []domain.FeatureVector) ([]domain.CategoryID, error) {
	out := make([]domain.CategoryID, 0, len(vectors))
	for _, v := range vectors {
		if v.Dim != c.dim {
			return nil, fmt.Errorf("vector dimension %d, model expects %d", v.Dim, c.dim)
		}
		out = append(out, c.predictOne(v))
	}
	return out, nil
}

func (c *LinearClassifier) predictOne(v domain.FeatureVector) domain.CategoryID {
	if len(c.coef) == 1 && len(c.classes) == 2 {
		if v.Dot(c.coef[0])+c.intercept[0] > 0 {
			return c.classes[1]
		}
		return c.classes[0]
	}
	best := 0
	bestScore := v.Dot(c.coef[0]) + c.intercept[0]
	for i := 1; i < len(c.coef); i++ {
		score := v.Dot(c.coef[i]) + c.intercept[i]
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return c.classes[best]
}

// KNNClassifier votes among the k most cosine-similar training samples.
// Vote ties go to the smallest category id.
type KNNClassifier struct {
	k       int
	classes []domain.CategoryID
	samples []domain.FeatureVector
	labels  []domain.CategoryID
	norms   []float64
	dim     int
}

func newKNNClassifier(a classifierArtifact, dim int) (*KNNClassifier, error) {
	if len(a.Samples) == 0 {
		return nil, fmt.Errorf("samples are empty")
	}
	k := a.K
	if k <= 0 {
		k = 5
	}
	if k > len(a.Samples) {
		k = len(a.Samples)
	}

	c := &KNNClassifier{k: k, dim: dim}
	seen := make(map[domain.CategoryID]struct{})
	for i, s := range a.Samples {
		if len(s.Indices) != len(s.Values) {
			return nil, fmt.Errorf("sample %d indices/values mismatch: %d/%d", i, len(s.Indices), len(s.Values))
		}
		for j, idx := range s.Indices {
			if idx < 0 || idx >= dim {
				return nil, fmt.Errorf("sample %d index %d out of range [0,%d)", i, idx, dim)
			}
			if j > 0 && idx <= s.Indices[j-1] {
				return nil, fmt.Errorf("sample %d indices are not strictly increasing", i)
			}
		}
		vec := domain.FeatureVector{Dim: dim, Indices: s.Indices, Values: s.Values}
		c.samples = append(c.samples, vec)
		c.labels = append(c.labels, s.Label)
		c.norms = append(c.norms, vec.Norm())
		if _, ok := seen[s.Label]; !ok {
			seen[s.Label] = struct{}{}
			c.classes = append(c.classes, s.Label)
		}
	}
	if len(a.Classes) > 0 {
		c.classes = a.Classes
	} else {
		sort.Slice(c.classes, func(i, j int) bool { return c.classes[i] < c.classes[j] })
	}
	return c, nil
}

func (c *KNNClassifier) Kind() string                 { return KindKNN }
func (c *KNNClassifier) Classes() []domain.CategoryID { return c.classes }

func (c *KNNClassifier) Predict(vectors []domain.FeatureVector) ([]domain.CategoryID, error) {
	out := make([]domain.CategoryID, 0, len(vectors))
	for _, v := range vectors {
		if v.Dim != c.dim {
			return nil, fmt.Errorf("vector dimension %d, model expects %d", v.Dim, c.dim)
		}
		out = append(out, c.predictOne(v))
	}
	return out, nil
}

type neighbour struct {
	similarity float64
	index      int
}

func (c *KNNClassifier) predictOne(v domain.FeatureVector) domain.CategoryID {
	norm := v.Norm()
	neighbours := make([]neighbour, len(c.samples))
	for i, s := range c.samples {
		sim := 0.0
		if norm > 0 && c.norms[i] > 0 {
			sim = v.DotSparse(s) / (norm * c.norms[i])
		}
		neighbours[i] = neighbour{similarity: sim, index: i}
	}
	sort.SliceStable(neighbours, func(i, j int) bool {
		return neighbours[i].similarity > neighbours[j].similarity
	})

	votes := make(map[domain.CategoryID]int, c.k)
	for _, n := range neighbours[:c.k] {
		votes[c.labels[n.index]]++
	}

	var best domain.CategoryID
	bestVotes := -1
	for label, count := range votes {
		if count > bestVotes || (count == bestVotes && label < best) {
			best, bestVotes = label, count
		}
	}
	return best
}
