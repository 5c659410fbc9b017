package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

func newRepoWithMock(t *testing.T) (*ScreeningRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &ScreeningRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestSaveInsertsResultRecord(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	accuracy := 97.5
	created := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO screenings \(id,filename,format,encoding,category_id,category,word_count,accuracy,notices,created_at\)`).
		WithArgs("s-1", "cv.pdf", "pdf", "utf-8", 20, "Python Developer", 42, 97.5, []byte(`["n"]`), created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), &domain.Screening{
		ID:         "s-1",
		Filename:   "cv.pdf",
		Format:     domain.FormatPDF,
		Encoding:   "utf-8",
		CategoryID: 20,
		Category:   "Python Developer",
		WordCount:  42,
		Accuracy:   &accuracy,
		Notices:    []string{"n"},
		CreatedAt:  created,
		WordCloud: &domain.WordCloud{
			Width:  800,
			Height: 400,
			Words:  []domain.WordFrequency{{Word: "django", Count: 7}},
			SVG:    "<svg><text>django</text></svg>",
		},
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// documentFreeArg rejects any insert argument that carries words from the resume.
type documentFreeArg struct{ t *testing.T }

func (a documentFreeArg) Match(v driver.Value) bool {
	var text string
	switch value := v.(type) {
	case string:
		text = value
	case []byte:
		text = string(value)
	default:
		return true
	}
	for _, leaked := range []string{"django", "<svg", "kubernetes"} {
		if strings.Contains(text, leaked) {
			a.t.Errorf("insert argument %q carries document content", text)
			return false
		}
	}
	return true
}

func TestSaveNeverWritesWordCloud(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	anyDocFree := documentFreeArg{t: t}
	mock.ExpectExec("INSERT INTO screenings").
		WithArgs(anyDocFree, anyDocFree, anyDocFree, anyDocFree, anyDocFree, anyDocFree, anyDocFree, anyDocFree, anyDocFree, anyDocFree).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), &domain.Screening{
		ID:         "s-3",
		Filename:   "cv.txt",
		Format:     domain.FormatText,
		Encoding:   "utf-8",
		CategoryID: 8,
		Category:   "DevOps Engineer",
		WordCount:  3,
		Notices:    []string{},
		CreatedAt:  time.Now().UTC(),
		WordCloud: &domain.WordCloud{
			Words: []domain.WordFrequency{{Word: "kubernetes", Count: 4}, {Word: "django", Count: 1}},
			SVG:   "<svg><text>kubernetes</text></svg>",
		},
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveWrapsDriverError(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO screenings").WillReturnError(errors.New("connection reset"))

	err := repo.Save(context.Background(), &domain.Screening{ID: "s-1", CreatedAt: time.Now()})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery(`SELECT id, filename, format, encoding, category_id, category, word_count, accuracy, notices, created_at FROM screenings WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrScreeningNotFound) {
		t.Fatalf("expected ErrScreeningNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByIDScansRecord(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	created := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(screeningColumns).AddRow(
		"s-2", "cv.txt", "text", "latin-1", 6, "Data Science", 12, nil,
		[]byte(`["Unable to calculate accuracy."]`), created,
	)
	mock.ExpectQuery("SELECT id, filename").WithArgs("s-2").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "s-2")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Format != domain.FormatText || got.CategoryID != 6 || got.Category != "Data Science" || got.Encoding != "latin-1" {
		t.Fatalf("unexpected screening %+v", got)
	}
	if got.Accuracy != nil {
		t.Fatalf("expected nil accuracy, got %v", *got.Accuracy)
	}
	if got.WordCloud != nil {
		t.Fatalf("stored screenings carry no word cloud, got %+v", got.WordCloud)
	}
	if len(got.Notices) != 1 || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected notices/created_at %v %v", got.Notices, got.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEnsureSchemaTakesAdvisoryLock(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WithArgs(int64(2026101701)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS screenings`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
