package model

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

// tokenPattern matches words of two or more word characters.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

type vectorizerArtifact struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	Lowercase   *bool          `json:"lowercase"`
	SublinearTF bool           `json:"sublinear_tf"`
	Norm        string         `json:"norm"`
	StopWords   []string       `json:"stop_words"`
}

// TFIDFVectorizer is an immutable TF-IDF transformer loaded from an artifact.
type TFIDFVectorizer struct {
	vocabulary map[string]int
	idf        []float64
	lowercase  bool
	sublinear  bool
	norm       string
	stopWords  map[string]struct{}
}

func newTFIDFVectorizer(a vectorizerArtifact) (*TFIDFVectorizer, error) {
	if len(a.IDF) == 0 {
		return nil, fmt.Errorf("idf is empty")
	}
	if len(a.Vocabulary) == 0 {
		return nil, fmt.Errorf("vocabulary is empty")
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= len(a.IDF) {
			return nil, fmt.Errorf("term %q index %d out of range [0,%d)", term, idx, len(a.IDF))
		}
	}

	norm := strings.ToLower(strings.TrimSpace(a.Norm))
	switch norm {
	case "":
		norm = "l2"
	case "l1", "l2", "none":
	default:
		return nil, fmt.Errorf("unsupported norm %q", a.Norm)
	}

	lowercase := true
	if a.Lowercase != nil {
		lowercase = *a.Lowercase
	}

	stops := make(map[string]struct{}, len(a.StopWords))
	for _, w := range a.StopWords {
		stops[w] = struct{}{}
	}

	return &TFIDFVectorizer{
		vocabulary: a.Vocabulary,
		idf:        a.IDF,
		lowercase:  lowercase,
		sublinear:  a.SublinearTF,
		norm:       norm,
		stopWords:  stops,
	}, nil
}

func (v *TFIDFVectorizer) Dim() int { return len(v.idf) }

func (v *TFIDFVectorizer) Transform(texts []string) ([]domain.FeatureVector, error) {
	out := make([]domain.FeatureVector, 0, len(texts))
	for _, text := range texts {
		out = append(out, v.transformOne(text))
	}
	return out, nil
}

func (v *TFIDFVectorizer) transformOne(text string) domain.FeatureVector {
	if v.lowercase {
		text = strings.ToLower(text)
	}

	counts := make(map[int]float64)
	for _, token := range tokenPattern.FindAllString(text, -1) {
		if _, stop := v.stopWords[token]; stop {
			continue
		}
		if idx, ok := v.vocabulary[token]; ok {
			counts[idx]++
		}
	}

	vec := domain.FeatureVector{Dim: len(v.idf)}
	if len(counts) == 0 {
		return vec
	}

	vec.Indices = make([]int, 0, len(counts))
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)

	vec.Values = make([]float64, len(vec.Indices))
	for i, idx := range vec.Indices {
		tf := counts[idx]
		if v.sublinear {
			tf = 1 + math.Log(tf)
		}
		vec.Values[i] = tf * v.idf[idx]
	}
	v.normalize(vec.Values)
	return vec
}

func (v *TFIDFVectorizer) normalize(values []float64) {
	var total float64
	switch v.norm {
	case "l2":
		for _, x := range values {
			total += x * x
		}
		total = math.Sqrt(total)
	case "l1":
		for _, x := range values {
			total += math.Abs(x)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for i := range values {
		values[i] /= total
	}
}
