package domain

import "time"

type DocumentFormat string

const (
	FormatText DocumentFormat = "text"
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

// Upload is a single uploaded resume. It lives for one request only.
type Upload struct {
	Filename string
	MimeType string
	Data     []byte
}

// ExtractedText is the decoded document text plus how it was obtained.
type ExtractedText struct {
	Text     string         `json:"-"`
	Format   DocumentFormat `json:"format"`
	Encoding string         `json:"encoding"`
	Notices  []string       `json:"notices,omitempty"`
}

type Classification struct {
	CategoryID  CategoryID `json:"category_id"`
	Category    string     `json:"category"`
	CleanedText string     `json:"-"`
}

type ScreenOptions struct {
	WordCloud bool
}

type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type WordCloud struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Words  []WordFrequency `json:"words"`
	SVG    string          `json:"svg"`
}

// Screening is the outcome of one screening request. WordCloud is returned to
// the caller only; stores keep the remaining fields and no document content.
type Screening struct {
	ID         string         `json:"id"`
	Filename   string         `json:"filename"`
	Format     DocumentFormat `json:"format"`
	Encoding   string         `json:"encoding,omitempty"`
	CategoryID CategoryID     `json:"category_id"`
	Category   string         `json:"category"`
	WordCount  int            `json:"word_count"`
	Accuracy   *float64       `json:"accuracy,omitempty"`
	WordCloud  *WordCloud     `json:"word_cloud,omitempty"`
	Notices    []string       `json:"notices,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ModelInfo describes the loaded artifacts.
type ModelInfo struct {
	VectorizerDim   int          `json:"vectorizer_dim"`
	ClassifierKind  string       `json:"classifier_kind"`
	Classes         []CategoryID `json:"classes"`
	AccuracyPercent *float64     `json:"accuracy_percent,omitempty"`
}
