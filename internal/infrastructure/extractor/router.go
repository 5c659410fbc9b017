package extractor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
	"github.com/Balaji91221/resume-screening-app/internal/core/ports"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/extractor/docx"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/extractor/pdf"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/extractor/plaintext"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
	mimeBin  = "application/octet-stream"
)

var extensionFormats = map[string]domain.DocumentFormat{
	".txt":  domain.FormatText,
	".text": domain.FormatText,
	".md":   domain.FormatText,
	".csv":  domain.FormatText,
	".pdf":  domain.FormatPDF,
	".docx": domain.FormatDOCX,
}

// Router dispatches uploads to the extractor for their format.
type Router struct {
	maxBytes   int64
	extractors map[domain.DocumentFormat]ports.TextExtractor
}

func NewRouter(maxBytes int64) *Router {
	return &Router{
		maxBytes: maxBytes,
		extractors: map[domain.DocumentFormat]ports.TextExtractor{
			domain.FormatText: plaintext.NewExtractor(),
			domain.FormatPDF:  pdf.NewExtractor(),
			domain.FormatDOCX: docx.NewExtractor(),
		},
	}
}

func (r *Router) Extract(ctx context.Context, upload domain.Upload) (domain.ExtractedText, error) {
	const op = "extract upload"
	if len(upload.Data) == 0 {
		return domain.ExtractedText{}, domain.WrapError(domain.ErrInvalidInput, op, errors.New("empty upload"))
	}
	if r.maxBytes > 0 && int64(len(upload.Data)) > r.maxBytes {
		return domain.ExtractedText{}, domain.WrapError(domain.ErrPayloadTooLarge, op, fmt.Errorf("%d bytes exceeds limit %d", len(upload.Data), r.maxBytes))
	}

	format, err := Detect(upload.Filename, upload.Data)
	if err != nil {
		return domain.ExtractedText{}, err
	}
	return r.extractors[format].Extract(ctx, upload)
}

// Detect picks a document format from the file extension, sniffing the
// content when the extension is missing or unknown. Content that sniffs as
// neither text nor a supported document but as some other known type is
// rejected; unidentifiable bytes are treated as text.
func Detect(filename string, data []byte) (domain.DocumentFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if format, ok := extensionFormats[ext]; ok {
		return format, nil
	}

	mime := mimetype.Detect(data)
	switch {
	case mime.Is(mimePDF):
		return domain.FormatPDF, nil
	case mime.Is(mimeDOCX):
		return domain.FormatDOCX, nil
	case isText(mime), mime.Is(mimeBin):
		return domain.FormatText, nil
	}
	return "", domain.WrapError(domain.ErrUnsupportedFormat, "detect format", fmt.Errorf("%s (%s)", filename, mime.String()))
}

func isText(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if m.Is(mimeText) {
			return true
		}
	}
	return false
}
