package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

const screeningsTable = "screenings"

var screeningColumns = []string{
	"id", "filename", "format", "encoding", "category_id", "category",
	"word_count", "accuracy", "notices", "created_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ScreeningRepository stores screening results. Uploaded documents, their
// text and anything derived from their words (word clouds) are never written.
type ScreeningRepository struct {
	db *sql.DB
}

func NewScreeningRepository(db *sql.DB) *ScreeningRepository {
	return &ScreeningRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ScreeningRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across replicas starting together.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026101701)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS screenings (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	format TEXT NOT NULL,
	encoding TEXT NOT NULL,
	category_id INTEGER NOT NULL,
	category TEXT NOT NULL,
	word_count INTEGER NOT NULL,
	accuracy DOUBLE PRECISION,
	notices JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL
);

ALTER TABLE screenings DROP COLUMN IF EXISTS word_cloud;

CREATE INDEX IF NOT EXISTS idx_screenings_category ON screenings(category_id);
CREATE INDEX IF NOT EXISTS idx_screenings_created_at ON screenings(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ScreeningRepository) Save(ctx context.Context, s *domain.Screening) error {
	noticesJSON, err := json.Marshal(nonNilStrings(s.Notices))
	if err != nil {
		return fmt.Errorf("marshal notices: %w", err)
	}
	var accuracy any
	if s.Accuracy != nil {
		accuracy = *s.Accuracy
	}

	query, args, err := psql.Insert(screeningsTable).
		Columns(screeningColumns...).
		Values(
			s.ID, s.Filename, string(s.Format), s.Encoding, int(s.CategoryID), s.Category,
			s.WordCount, accuracy, noticesJSON, s.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert screening: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert screening: %w", err)
	}
	return nil
}

func (r *ScreeningRepository) GetByID(ctx context.Context, id string) (*domain.Screening, error) {
	query, args, err := psql.Select(screeningColumns...).
		From(screeningsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select screening: %w", err)
	}

	var (
		s          domain.Screening
		format     string
		categoryID int
		accuracy   sql.NullFloat64
		noticesRaw []byte
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.ID, &s.Filename, &format, &s.Encoding, &categoryID, &s.Category,
		&s.WordCount, &accuracy, &noticesRaw, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrScreeningNotFound, "get screening", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan screening: %w", err)
	}

	s.Format = domain.DocumentFormat(format)
	s.CategoryID = domain.CategoryID(categoryID)
	if accuracy.Valid {
		value := accuracy.Float64
		s.Accuracy = &value
	}
	if len(noticesRaw) > 0 {
		if err := json.Unmarshal(noticesRaw, &s.Notices); err != nil {
			return nil, fmt.Errorf("unmarshal notices: %w", err)
		}
	}
	return &s, nil
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
