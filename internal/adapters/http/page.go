package httpadapter

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type pageView struct {
	ShowWordCloud bool
	Screening     *domain.Screening
	Accuracy      string
	WordCloud     template.HTML
	Error         string
}

// page serves the upload form and, on POST, the screening result for the submitted resume.
func (rt *Router) page(w http.ResponseWriter, r *http.Request) {
	view := pageView{}
	status := http.StatusOK

	if r.Method == http.MethodPost {
		upload, err := rt.readUpload(w, r)
		if err == nil {
			view.ShowWordCloud = r.FormValue("wordcloud") != ""
			view.Screening, err = rt.screener.Screen(r.Context(), upload, domain.ScreenOptions{WordCloud: view.ShowWordCloud})
		}
		if err != nil {
			status = mapErrorToHTTPStatus(err)
			view.Error = "Could not screen the resume."
			if status != http.StatusInternalServerError {
				view.Error = err.Error()
			} else {
				slog.Error("page_screen_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
			}
		}
		if view.Screening != nil {
			if view.Screening.Accuracy != nil {
				view.Accuracy = fmt.Sprintf("Model Accuracy: %.2f%%", *view.Screening.Accuracy)
			}
			if view.Screening.WordCloud != nil {
				view.WordCloud = inlineSVG(view.Screening.WordCloud.SVG)
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, view); err != nil {
		slog.Error("page_render_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
	}
}

// inlineSVG strips the XML prolog so the document can sit inside HTML. The
// renderer escapes every text node, so the markup is trusted.
func inlineSVG(doc string) template.HTML {
	if i := strings.Index(doc, "<svg"); i >= 0 {
		doc = doc[i:]
	}
	return template.HTML(doc)
}
