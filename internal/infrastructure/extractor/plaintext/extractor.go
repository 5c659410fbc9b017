package plaintext

import (
	"context"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// Decode returns raw as UTF-8 when it is valid UTF-8 and as ISO-8859-1
// otherwise. Every byte sequence is valid Latin-1, so Decode cannot fail.
func Decode(raw []byte) (string, string) {
	if utf8.Valid(raw) {
		return string(raw), EncodingUTF8
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		runes := make([]rune, len(raw))
		for i, b := range raw {
			runes[i] = rune(b)
		}
		return string(runes), EncodingLatin1
	}
	return string(decoded), EncodingLatin1
}

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, upload domain.Upload) (domain.ExtractedText, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExtractedText{}, err
	}
	text, encoding := Decode(upload.Data)
	return domain.ExtractedText{
		Text:     text,
		Format:   domain.FormatText,
		Encoding: encoding,
	}, nil
}
