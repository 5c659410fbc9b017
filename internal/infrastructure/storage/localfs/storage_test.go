package localfs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

func TestOpenMissingArtifactIsTyped(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.Open(context.Background(), "clf.json")
	if !domain.IsKind(err, domain.ErrMissingArtifact) {
		t.Fatalf("expected ErrMissingArtifact, got %v", err)
	}
}

func TestExistsAndOpen(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tfidf.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	s := New(dir)

	ok, err := s.Exists(context.Background(), "tfidf.json")
	if err != nil || !ok {
		t.Fatalf("Exists() = %v, %v", ok, err)
	}
	if ok, _ := s.Exists(context.Background(), "nested"); ok {
		t.Fatalf("directories must not count as artifacts")
	}
	if ok, _ := s.Exists(context.Background(), "clf.json"); ok {
		t.Fatalf("expected clf.json to be missing")
	}

	rc, err := s.Open(context.Background(), filepath.Join(dir, "tfidf.json"))
	if err != nil {
		t.Fatalf("Open(abs) error = %v", err)
	}
	defer rc.Close()
	raw, _ := io.ReadAll(rc)
	if string(raw) != "{}" {
		t.Fatalf("unexpected content %q", raw)
	}
}
