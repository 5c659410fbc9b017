package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Balaji91221/resume-screening-app/internal/config"
	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

type screenerFake struct {
	screening *domain.Screening
	err       error
	gotUpload domain.Upload
	gotOpts   domain.ScreenOptions
}

func (f *screenerFake) Screen(_ context.Context, upload domain.Upload, opts domain.ScreenOptions) (*domain.Screening, error) {
	f.gotUpload = upload
	f.gotOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.screening, nil
}

func (f *screenerFake) Get(_ context.Context, id string) (*domain.Screening, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.screening == nil || f.screening.ID != id {
		return nil, domain.WrapError(domain.ErrScreeningNotFound, "get screening", errors.New(id))
	}
	return f.screening, nil
}

type frequenciesFake struct {
	words    []domain.WordFrequency
	err      error
	gotLimit int
}

func (f *frequenciesFake) Frequencies(_ context.Context, _ domain.Upload, limit int) ([]domain.WordFrequency, error) {
	f.gotLimit = limit
	return f.words, f.err
}

type describerFake struct{}

func (describerFake) ModelInfo() domain.ModelInfo {
	return domain.ModelInfo{VectorizerDim: 3, ClassifierKind: "linear", Classes: []domain.CategoryID{6, 15, 20}}
}

func sampleScreening() *domain.Screening {
	accuracy := 98.96
	return &domain.Screening{
		ID:         "scr-1",
		Filename:   "cv.txt",
		Format:     domain.FormatText,
		Encoding:   "utf-8",
		CategoryID: 20,
		Category:   "Python Developer",
		WordCount:  4,
		Accuracy:   &accuracy,
		CreatedAt:  time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
	}
}

func newTestRouter(cfg config.Config, screener *screenerFake, freq *frequenciesFake) http.Handler {
	if screener == nil {
		screener = &screenerFake{screening: sampleScreening()}
	}
	if freq == nil {
		freq = &frequenciesFake{}
	}
	return NewRouter(cfg, screener, freq, describerFake{}, Observability{}).Handler()
}

func newTestHandler(cfg config.Config) http.Handler {
	return newTestRouter(cfg, nil, nil)
}

func TestGetScreeningMapsNotFound(t *testing.T) {
	handler := newTestHandler(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/screenings/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestGetScreeningReturnsStoredResult(t *testing.T) {
	handler := newTestHandler(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/screenings/scr-1", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var got domain.Screening
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Category != "Python Developer" || got.CategoryID != 20 {
		t.Fatalf("unexpected screening %+v", got)
	}
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.WrapError(domain.ErrInvalidInput, "op", errors.New("x")), http.StatusBadRequest},
		{domain.WrapError(domain.ErrScreeningNotFound, "op", errors.New("x")), http.StatusNotFound},
		{domain.WrapError(domain.ErrPayloadTooLarge, "op", errors.New("x")), http.StatusRequestEntityTooLarge},
		{domain.WrapError(domain.ErrUnsupportedFormat, "op", errors.New("x")), http.StatusUnsupportedMediaType},
		{domain.WrapError(domain.ErrTemporary, "op", errors.New("x")), http.StatusServiceUnavailable},
		{domain.WrapError(domain.ErrInvalidArtifact, "op", errors.New("x")), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
			t.Fatalf("mapErrorToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	screener := &screenerFake{err: errors.New("db password=secret")}
	handler := newTestRouter(config.Config{}, screener, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/screenings/scr-1", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("unexpected error body %q", body["error"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(config.Config{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/screenings", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}
