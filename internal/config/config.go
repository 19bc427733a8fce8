package config

import (
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ScoringConfig holds the externally configurable scoring policy:
// the AI-telltale phrase list, the score bands, the originality threshold
// and reference-source list, and the minimum accepted input length.
type ScoringConfig struct {
	TelltalePhrases  []string
	HighScore        float64
	LowScore         float64
	PrefixLimit      int
	OriginalityMax   int
	SourceThreshold  float64
	ReferenceSources []string
	MinInputLength   int
}

// DetectorConfig holds settings for an external AI-detection API.
// When BaseURL is set, the external scorer replaces the rule-based one.
type DetectorConfig struct {
	BaseURL    string
	APIKey     string
	TimeoutSec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Scoring  ScoringConfig
	Detector DetectorConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Scoring: ScoringConfig{
			TelltalePhrases:  getEnvList("AI_TELLTALE_PHRASES", []string{"As an AI language model", "In conclusion,"}),
			HighScore:        getEnvFloat("AI_HIGH_SCORE", 85.5),
			LowScore:         getEnvFloat("AI_LOW_SCORE", 12.0),
			PrefixLimit:      getEnvInt("AI_PREFIX_LIMIT", 1500),
			OriginalityMax:   getEnvInt("ORIGINALITY_MAX_SCORE", 20),
			SourceThreshold:  getEnvFloat("ORIGINALITY_SOURCE_THRESHOLD", 10),
			ReferenceSources: getEnvList("ORIGINALITY_REFERENCE_SOURCES", []string{"Wikipedia - General Knowledge", "Academic Source A"}),
			MinInputLength:   getEnvInt("MIN_INPUT_LENGTH", 50),
		},
		Detector: DetectorConfig{
			BaseURL:    getEnv("DETECTOR_BASE_URL", ""),
			APIKey:     getEnv("DETECTOR_API_KEY", ""),
			TimeoutSec: getEnvInt("DETECTOR_TIMEOUT_SEC", 15),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

// getEnvList parses a comma-separated env value, trimming whitespace and
// dropping empty items. Values containing commas are not supported.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
