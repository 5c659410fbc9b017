package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/extractor/plaintext"
)

const NoticeRawFallback = "PDF text could not be extracted; the file was read as plain text."

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text layer of a PDF. Files the parser rejects, or
// that carry no text layer, are decoded byte-wise instead and a notice is
// attached.
func (e *Extractor) Extract(ctx context.Context, upload domain.Upload) (domain.ExtractedText, error) {
	text, err := extractText(ctx, upload.Data)
	if err == nil && strings.TrimSpace(text) != "" {
		return domain.ExtractedText{
			Text:     text,
			Format:   domain.FormatPDF,
			Encoding: plaintext.EncodingUTF8,
		}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.ExtractedText{}, ctxErr
	}
	if err != nil {
		slog.Warn("pdf_extract_failed", "filename", upload.Filename, "error", err)
	}

	decoded, encoding := plaintext.Decode(upload.Data)
	return domain.ExtractedText{
		Text:     decoded,
		Format:   domain.FormatPDF,
		Encoding: encoding,
		Notices:  []string{NoticeRawFallback},
	}, nil
}

func extractText(ctx context.Context, data []byte) (text string, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read page %d: %w", i, err)
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}
