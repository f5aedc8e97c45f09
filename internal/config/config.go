package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	Addr     string
	LogLevel string
	Debug    bool

	PreferIPv4 bool

	WorkDir        string
	MaxUploadBytes int64
	RequestTimeout time.Duration
	HTTPTimeout    time.Duration
}

// Load reads configuration from the environment. A missing OPENAI_API_KEY
// is deliberately not an error here: it surfaces on the first provider
// call instead.
func Load() Config {
	cfg := Config{
		OpenAIBaseURL: strings.TrimSpace(getEnv("OPENAI_BASE_URL", "https://api.openai.com")),
		OpenAIModel:   strings.TrimSpace(getEnv("OPENAI_MODEL", "gpt-image-1")),

		Addr:     strings.TrimSpace(getEnv("WEB_ADDR", ":8080")),
		LogLevel: strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", "info"))),
		Debug:    getEnvBool("DEBUG", false),

		PreferIPv4: getEnvBool("PREFER_IPV4", true),

		WorkDir:        strings.TrimSpace(getEnv("WORK_DIR", os.TempDir())),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_MB", 25)) << 20,
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 240)) * time.Second,
		HTTPTimeout:    time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 180)) * time.Second,
	}

	cfg.OpenAIAPIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 25 << 20
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 240 * time.Second
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 180 * time.Second
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
