package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	LogLevel string

	CorpusDir       string
	FileMatches     int
	SentenceMatches int
	StopWordsFile   string
	Abbreviations   string
	AnswerTimeout   time.Duration

	APIPort           string
	APIRateLimitRPS   float64
	APIRateLimitBurst int
	APIMaxInFlight    int
	APIQueueWait      time.Duration

	WorkerMetricsPort string

	PostgresDSN string

	NATSURL        string
	NATSSubject    string
	NATSQueueGroup string

	RetryMaxAttempts int
	BreakerEnabled   bool
}

func Load() Config {
	return Config{
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		CorpusDir:       mustEnv("CORPUS_DIR", "./corpus"),
		FileMatches:     mustEnvInt("FILE_MATCHES", 1),
		SentenceMatches: mustEnvInt("SENTENCE_MATCHES", 1),
		StopWordsFile:   mustEnv("STOPWORDS_FILE", ""),
		Abbreviations:   mustEnv("SENTENCE_ABBREVIATIONS", ""),
		AnswerTimeout:   mustEnvDuration("QA_TIMEOUT", 30*time.Second),

		APIPort:           mustEnv("API_PORT", "8080"),
		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 20),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 40),
		APIMaxInFlight:    mustEnvInt("API_MAX_IN_FLIGHT", 16),
		APIQueueWait:      mustEnvDuration("API_QUEUE_WAIT", 250*time.Millisecond),

		WorkerMetricsPort: mustEnv("WORKER_METRICS_PORT", "9091"),

		PostgresDSN: mustEnv("POSTGRES_DSN", ""),

		NATSURL:        mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject:    mustEnv("NATS_SUBJECT", "qa.questions"),
		NATSQueueGroup: mustEnv("NATS_QUEUE_GROUP", "qa-workers"),

		RetryMaxAttempts: mustEnvInt("RETRY_MAX_ATTEMPTS", 3),
		BreakerEnabled:   mustEnvBool("BREAKER_ENABLED", true),
	}
}

// HistoryEnabled reports whether answered questions are persisted.
func (c Config) HistoryEnabled() bool {
	return c.PostgresDSN != ""
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

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
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

func mustEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
