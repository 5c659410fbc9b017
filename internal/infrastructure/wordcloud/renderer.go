package wordcloud

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	svg "github.com/ajstarks/svgo"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

const (
	defaultWidth    = 800
	defaultHeight   = 400
	defaultMaxWords = 100

	minFontSize = 12
	maxFontSize = 64
	lineGap     = 6
	wordGap     = 10
	// Average glyph width relative to font size for a sans-serif face.
	glyphWidth = 0.6
)

var palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#17becf"}

type Options struct {
	Width          int
	Height         int
	MaxWords       int
	ExtraStopWords []string
}

// Renderer counts words that are not stop-words and lays them out as an SVG
// word cloud. It holds no mutable state and may be shared.
type Renderer struct {
	width     int
	height    int
	maxWords  int
	stopwords map[string]struct{}
}

func NewRenderer(opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = defaultMaxWords
	}

	base := EnglishStopWords()
	stops := make(map[string]struct{}, len(base)+len(opts.ExtraStopWords))
	for _, w := range base {
		stops[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range opts.ExtraStopWords {
		stops[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	return &Renderer{
		width:     opts.Width,
		height:    opts.Height,
		maxWords:  opts.MaxWords,
		stopwords: stops,
	}
}

// Frequencies returns word counts, most frequent first and alphabetical on
// ties. limit <= 0 returns every word.
func (r *Renderer) Frequencies(cleaned string, limit int) []domain.WordFrequency {
	counts := make(map[string]int)
	for _, word := range r.tokenize(cleaned) {
		counts[word]++
	}

	out := make([]domain.WordFrequency, 0, len(counts))
	for word, count := range counts {
		out = append(out, domain.WordFrequency{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *Renderer) tokenize(text string) []string {
	var (
		tokens  []string
		current strings.Builder
	)
	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := current.String()
		current.Reset()
		if len(word) <= 1 || isNumericOnly(word) {
			return
		}
		if _, stop := r.stopwords[word]; stop {
			return
		}
		tokens = append(tokens, word)
	}

	for _, ch := range text {
		if unicode.IsLetter(ch) || unicode.IsNumber(ch) {
			current.WriteRune(unicode.ToLower(ch))
			continue
		}
		flush()
	}
	flush()
	return tokens
}

func isNumericOnly(word string) bool {
	for _, ch := range word {
		if !unicode.IsDigit(ch) {
			return false
		}
	}
	return true
}

// Render lays the most frequent words out in rows, largest first, scaling
// font size linearly with frequency. A word wider than the canvas is shrunk
// to fit; words that fit neither across nor below the last row are dropped.
func (r *Renderer) Render(cleaned string) (domain.WordCloud, error) {
	words := r.Frequencies(cleaned, r.maxWords)
	if len(words) == 0 {
		return domain.WordCloud{}, domain.WrapError(domain.ErrInvalidInput, "render word cloud", errors.New("no words to plot"))
	}

	placed := r.layout(words)
	if len(placed) == 0 {
		return domain.WordCloud{}, domain.WrapError(domain.ErrInvalidInput, "render word cloud", fmt.Errorf("canvas %dx%d too small", r.width, r.height))
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(r.width, r.height)
	canvas.Rect(0, 0, r.width, r.height, "fill:white")
	shown := make([]domain.WordFrequency, 0, len(placed))
	for i, p := range placed {
		canvas.Text(p.x, p.y, p.word.Word, fmt.Sprintf("font-family:sans-serif;font-size:%dpx;fill:%s", p.size, palette[i%len(palette)]))
		shown = append(shown, p.word)
	}
	canvas.End()

	return domain.WordCloud{
		Width:  r.width,
		Height: r.height,
		Words:  shown,
		SVG:    buf.String(),
	}, nil
}

type placement struct {
	word domain.WordFrequency
	size int
	x, y int
}

func (r *Renderer) layout(words []domain.WordFrequency) []placement {
	top := words[0].Count
	bottom := words[len(words)-1].Count
	usable := r.width - 2*wordGap

	placed := make([]placement, 0, len(words))
	x, baseline := wordGap, 0
	for _, w := range words {
		size := fitFontSize(w.Word, fontSize(w.Count, bottom, top), usable)
		if size < minFontSize {
			continue
		}
		width := textWidth(w.Word, size)
		if baseline == 0 {
			baseline = size
		} else if x+width+wordGap > r.width {
			baseline += size + lineGap
			x = wordGap
		}
		if baseline > r.height-lineGap {
			break
		}
		placed = append(placed, placement{word: w, size: size, x: x, y: baseline})
		x += width + wordGap
	}
	return placed
}

func fontSize(count, low, high int) int {
	if high == low {
		return maxFontSize
	}
	scale := float64(count-low) / float64(high-low)
	return minFontSize + int(scale*float64(maxFontSize-minFontSize))
}

func textWidth(word string, size int) int {
	return int(float64(utf8.RuneCountInString(word)*size) * glyphWidth)
}

// fitFontSize returns the largest size not above size at which word spans at most width.
func fitFontSize(word string, size, width int) int {
	if textWidth(word, size) <= width {
		return size
	}
	return int(float64(width) / (float64(utf8.RuneCountInString(word)) * glyphWidth))
}
