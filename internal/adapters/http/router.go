package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oapi-codegen/runtime"

	"github.com/Balaji91221/resume-screening-app/internal/adapters/http/openapi"
	"github.com/Balaji91221/resume-screening-app/internal/config"
	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
	"github.com/Balaji91221/resume-screening-app/internal/core/ports"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/report/xlsx"
	"github.com/Balaji91221/resume-screening-app/internal/observability/metrics"
)

const (
	// Room for multipart boundaries and part headers on top of the file itself.
	multipartOverhead = 64 << 10
	multipartMemory   = 1 << 20

	maxFrequencyLimit = 1000
)

// uploadFields lists the multipart fields accepted for the resume file, in lookup order.
var uploadFields = []string{"file", "resume"}

type Observability struct {
	HTTP    *metrics.HTTPServerMetrics
	Metrics http.Handler
}

type Router struct {
	cfg         config.Config
	screener    ports.ResumeScreener
	frequencies ports.WordFrequencyService
	describer   ports.ModelDescriber
	obs         Observability

	apiDoc func() (*openapi3.T, error)
}

func NewRouter(
	cfg config.Config,
	screener ports.ResumeScreener,
	frequencies ports.WordFrequencyService,
	describer ports.ModelDescriber,
	obs Observability,
) *Router {
	return &Router{
		cfg:         cfg,
		screener:    screener,
		frequencies: frequencies,
		describer:   describer,
		obs:         obs,
		apiDoc:      sync.OnceValues(openapi.Load),
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.HandleFunc("GET /openapi.json", rt.openAPI)
	mux.HandleFunc("GET /v1/categories", rt.listCategories)
	mux.HandleFunc("GET /v1/model", rt.modelInfo)
	mux.HandleFunc("POST /v1/screenings", rt.createScreening)
	mux.HandleFunc("GET /v1/screenings/{screening_id}", rt.getScreening)
	mux.HandleFunc("POST /v1/wordfreq", rt.wordFrequencies)
	mux.HandleFunc("GET /{$}", rt.page)
	mux.HandleFunc("POST /{$}", rt.page)
	if rt.obs.Metrics != nil {
		mux.Handle("GET /metrics", rt.obs.Metrics)
	}

	var onReject rejectHook
	if rt.obs.HTTP != nil {
		onReject = rt.obs.HTTP.RecordRejected
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, time.Duration(rt.cfg.APIBackpressureWaitMS)*time.Millisecond, onReject)
	handler = rateLimitMiddleware(handler, float64(rt.cfg.APIRateLimitRPS), rt.cfg.APIRateLimitBurst, onReject)
	if rt.obs.HTTP != nil {
		handler = rt.obs.HTTP.Middleware(handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) openAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := rt.apiDoc()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) listCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": domain.Categories()})
}

func (rt *Router) modelInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rt.describer.ModelInfo())
}

func (rt *Router) createScreening(w http.ResponseWriter, r *http.Request) {
	var wordCloud *bool
	if err := runtime.BindQueryParameter("form", true, false, "wordcloud", r.URL.Query(), &wordCloud); err != nil {
		writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "bind wordcloud", err))
		return
	}

	upload, err := rt.readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	screening, err := rt.screener.Screen(r.Context(), upload, domain.ScreenOptions{
		WordCloud: wordCloud != nil && *wordCloud,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, screening)
}

func (rt *Router) getScreening(w http.ResponseWriter, r *http.Request) {
	screening, err := rt.screener.Get(r.Context(), r.PathValue("screening_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, screening)
}

func (rt *Router) wordFrequencies(w http.ResponseWriter, r *http.Request) {
	var (
		format *string
		limit  *int
	)
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "bind format", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "bind limit", err))
		return
	}

	output := "json"
	if format != nil {
		output = strings.ToLower(strings.TrimSpace(*format))
	}
	if output != "json" && output != "xlsx" {
		writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "word frequencies", fmt.Errorf("unknown format %q", output)))
		return
	}
	n := 0
	if limit != nil {
		if *limit < 1 || *limit > maxFrequencyLimit {
			writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "word frequencies", fmt.Errorf("limit must be between 1 and %d", maxFrequencyLimit)))
			return
		}
		n = *limit
	}

	upload, err := rt.readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	words, err := rt.frequencies.Frequencies(r.Context(), upload, n)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if output == "xlsx" {
		w.Header().Set("Content-Type", xlsx.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="frequencies.xlsx"`)
		w.WriteHeader(http.StatusOK)
		if err := xlsx.WriteFrequencies(w, words); err != nil {
			// Headers are already sent; the client sees a truncated body.
			slog.Error("xlsx_write_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"words": words})
}

// readUpload reads the resume part of a multipart request, enforcing the upload limit.
func (rt *Router) readUpload(w http.ResponseWriter, r *http.Request) (domain.Upload, error) {
	const op = "read upload"

	maxBytes := rt.cfg.MaxUploadBytes
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Upload{}, domain.WrapError(domain.ErrPayloadTooLarge, op, err)
		}
		return domain.Upload{}, domain.WrapError(domain.ErrInvalidInput, op, err)
	}

	for _, field := range uploadFields {
		file, header, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return domain.Upload{}, domain.WrapError(domain.ErrInvalidInput, op, err)
		}
		defer file.Close()

		reader := io.Reader(file)
		if maxBytes > 0 {
			reader = io.LimitReader(file, maxBytes+1)
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return domain.Upload{}, domain.WrapError(domain.ErrInvalidInput, op, err)
		}
		if maxBytes > 0 && int64(len(data)) > maxBytes {
			return domain.Upload{}, domain.WrapError(domain.ErrPayloadTooLarge, op, fmt.Errorf("file exceeds %d bytes", maxBytes))
		}
		if rt.obs.HTTP != nil {
			rt.obs.HTTP.RecordUpload(len(data))
		}

		return domain.Upload{
			Filename: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Data:     data,
		}, nil
	}

	return domain.Upload{}, domain.WrapError(domain.ErrInvalidInput, op, errors.New("multipart field 'file' is required"))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
