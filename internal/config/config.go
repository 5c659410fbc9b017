package config

import (
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "APP_CONFIG"

type Config struct {
	APIPort   string `yaml:"api_port"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ModelDir       string `yaml:"model_dir"`
	VectorizerPath string `yaml:"vectorizer_path"`
	ClassifierPath string `yaml:"classifier_path"`
	StopwordsPath  string `yaml:"stopwords_path"`

	PostgresDSN string `yaml:"postgres_dsn"`

	NATSURL     string `yaml:"nats_url"`
	NATSSubject string `yaml:"nats_subject"`

	EventsRetryMaxAttempts int  `yaml:"events_retry_max_attempts"`
	EventsBreakerEnabled   bool `yaml:"events_breaker_enabled"`

	MaxUploadBytes         int64 `yaml:"max_upload_bytes"`
	APIRateLimitRPS        int   `yaml:"api_rate_limit_rps"`
	APIRateLimitBurst      int   `yaml:"api_rate_limit_burst"`
	APIMaxInFlight         int   `yaml:"api_max_in_flight"`
	APIBackpressureWaitMS  int   `yaml:"api_backpressure_wait_ms"`
	APIMaxConnections      int   `yaml:"api_max_connections"`
	APIShutdownTimeoutSecs int   `yaml:"api_shutdown_timeout_seconds"`

	WordCloudWidth    int `yaml:"wordcloud_width"`
	WordCloudHeight   int `yaml:"wordcloud_height"`
	WordCloudMaxWords int `yaml:"wordcloud_max_words"`
}

func defaults() Config {
	return Config{
		APIPort:   "8080",
		LogLevel:  "info",
		LogFormat: "json",

		ModelDir:       "./model",
		VectorizerPath: "tfidf.json",
		ClassifierPath: "clf.json",

		NATSSubject: "resume.screened",

		EventsRetryMaxAttempts: 3,
		EventsBreakerEnabled:   true,

		MaxUploadBytes:         5 << 20,
		APIRateLimitRPS:        20,
		APIRateLimitBurst:      40,
		APIMaxInFlight:         32,
		APIBackpressureWaitMS:  250,
		APIMaxConnections:      256,
		APIShutdownTimeoutSecs: 10,

		WordCloudWidth:    800,
		WordCloudHeight:   400,
		WordCloudMaxWords: 100,
	}
}

// Load starts from defaults, overlays the YAML file named by APP_CONFIG when
// set, then applies environment overrides. An unreadable file is logged and
// skipped.
func Load() Config {
	cfg := defaults()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			slog.Warn("config_file_unreadable", "path", path, "error", err)
		} else {
			fileCfg := cfg
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				slog.Warn("config_file_invalid", "path", path, "error", err)
			} else {
				cfg = fileCfg
			}
		}
	}

	return Config{
		APIPort:   mustEnv("API_PORT", cfg.APIPort),
		LogLevel:  mustEnv("LOG_LEVEL", cfg.LogLevel),
		LogFormat: mustEnv("LOG_FORMAT", cfg.LogFormat),

		ModelDir:       mustEnv("MODEL_DIR", cfg.ModelDir),
		VectorizerPath: mustEnv("VECTORIZER_PATH", cfg.VectorizerPath),
		ClassifierPath: mustEnv("CLASSIFIER_PATH", cfg.ClassifierPath),
		StopwordsPath:  mustEnv("STOPWORDS_PATH", cfg.StopwordsPath),

		PostgresDSN: mustEnv("POSTGRES_DSN", cfg.PostgresDSN),

		NATSURL:     mustEnv("NATS_URL", cfg.NATSURL),
		NATSSubject: mustEnv("NATS_SUBJECT", cfg.NATSSubject),

		EventsRetryMaxAttempts: mustEnvInt("EVENTS_RETRY_MAX_ATTEMPTS", cfg.EventsRetryMaxAttempts),
		EventsBreakerEnabled:   mustEnvBool("EVENTS_BREAKER_ENABLED", cfg.EventsBreakerEnabled),

		MaxUploadBytes:         int64(mustEnvInt("MAX_UPLOAD_BYTES", int(cfg.MaxUploadBytes))),
		APIRateLimitRPS:        mustEnvInt("API_RATE_LIMIT_RPS", cfg.APIRateLimitRPS),
		APIRateLimitBurst:      mustEnvInt("API_RATE_LIMIT_BURST", cfg.APIRateLimitBurst),
		APIMaxInFlight:         mustEnvInt("API_MAX_IN_FLIGHT", cfg.APIMaxInFlight),
		APIBackpressureWaitMS:  mustEnvInt("API_BACKPRESSURE_WAIT_MS", cfg.APIBackpressureWaitMS),
		APIMaxConnections:      mustEnvInt("API_MAX_CONNECTIONS", cfg.APIMaxConnections),
		APIShutdownTimeoutSecs: mustEnvInt("API_SHUTDOWN_TIMEOUT_SECONDS", cfg.APIShutdownTimeoutSecs),

		WordCloudWidth:    mustEnvInt("WORDCLOUD_WIDTH", cfg.WordCloudWidth),
		WordCloudHeight:   mustEnvInt("WORDCLOUD_HEIGHT", cfg.WordCloudHeight),
		WordCloudMaxWords: mustEnvInt("WORDCLOUD_MAX_WORDS", cfg.WordCloudMaxWords),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
