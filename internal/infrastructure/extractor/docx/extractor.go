package docx

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/extractor/plaintext"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, upload domain.Upload) (domain.ExtractedText, error) {
	const op = "extract docx"
	if err := ctx.Err(); err != nil {
		return domain.ExtractedText{}, err
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(upload.Data), int64(len(upload.Data)))
	if err != nil {
		return domain.ExtractedText{}, domain.WrapError(domain.ErrInvalidInput, op, err)
	}
	defer doc.Close()

	text, err := documentText(doc.Editable().GetContent())
	if err != nil {
		return domain.ExtractedText{}, domain.WrapError(domain.ErrInvalidInput, op, err)
	}
	return domain.ExtractedText{
		Text:     text,
		Format:   domain.FormatDOCX,
		Encoding: plaintext.EncodingUTF8,
	}, nil
}

// documentText flattens WordprocessingML into plain text: run text is kept,
// paragraphs and breaks become newlines, tabs become spaces.
func documentText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte(' ')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
