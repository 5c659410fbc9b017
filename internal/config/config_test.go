package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		configPathEnv, "API_PORT", "MODEL_DIR", "VECTORIZER_PATH", "CLASSIFIER_PATH",
		"POSTGRES_DSN", "NATS_URL", "NATS_SUBJECT", "MAX_UPLOAD_BYTES",
		"API_RATE_LIMIT_RPS", "EVENTS_BREAKER_ENABLED", "WORDCLOUD_MAX_WORDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.ModelDir != "./model" || cfg.VectorizerPath != "tfidf.json" || cfg.ClassifierPath != "clf.json" {
		t.Fatalf("unexpected artifact defaults: %+v", cfg)
	}
	if cfg.PostgresDSN != "" || cfg.NATSURL != "" {
		t.Fatalf("store and publisher must be disabled by default, got %q %q", cfg.PostgresDSN, cfg.NATSURL)
	}
	if cfg.NATSSubject != "resume.screened" {
		t.Fatalf("default subject must match the event type, got %q", cfg.NATSSubject)
	}
	if cfg.MaxUploadBytes != 5<<20 {
		t.Fatalf("expected 5MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if !cfg.EventsBreakerEnabled {
		t.Fatalf("expected breaker enabled by default")
	}
}

func TestLoadParsesEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODEL_DIR", "/srv/model")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("API_RATE_LIMIT_RPS", "not-a-number")
	t.Setenv("EVENTS_BREAKER_ENABLED", "false")

	cfg := Load()
	if cfg.ModelDir != "/srv/model" {
		t.Fatalf("expected model dir override, got %q", cfg.ModelDir)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Fatalf("expected upload limit 1024, got %d", cfg.MaxUploadBytes)
	}
	if cfg.APIRateLimitRPS != 20 {
		t.Fatalf("invalid ints must fall back, got %d", cfg.APIRateLimitRPS)
	}
	if cfg.EventsBreakerEnabled {
		t.Fatalf("expected breaker disabled")
	}
}

func TestLoadOverlaysFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "app.yaml")
	raw := "model_dir: /opt/model\nnats_url: nats://broker:4222\nwordcloud_max_words: 25\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv("WORDCLOUD_MAX_WORDS", "40")

	cfg := Load()
	if cfg.ModelDir != "/opt/model" || cfg.NATSURL != "nats://broker:4222" {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if cfg.WordCloudMaxWords != 40 {
		t.Fatalf("env must win over file, got %d", cfg.WordCloudMaxWords)
	}
	if cfg.ClassifierPath != "clf.json" {
		t.Fatalf("keys absent from the file keep defaults, got %q", cfg.ClassifierPath)
	}
}

func TestLoadIgnoresBrokenFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte("model_dir: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(configPathEnv, path)

	if cfg := Load(); cfg.ModelDir != "./model" {
		t.Fatalf("expected defaults on broken file, got %q", cfg.ModelDir)
	}
}
