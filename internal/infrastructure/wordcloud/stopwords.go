package wordcloud

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed stopwords_en.txt
var englishStopWords string

// EnglishStopWords returns the built-in English stop-word list.
func EnglishStopWords() []string {
	return strings.Fields(englishStopWords)
}

// Stoplist is an additional stop-word file:
//
//	terms:
//	  - resume
//	  - curriculum
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stoplist: %w", err)
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse stoplist: %w", err)
	}
	return &sl, nil
}
