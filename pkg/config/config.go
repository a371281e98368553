package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Log        LogConfig
	Generation GenerationConfig
	Extraction ExtractionConfig
	Materials  MaterialsConfig
	Exports    ExportsConfig
	Translator TranslatorConfig
	Cache      CacheConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// GenerationConfig points at the text-generation backend.
type GenerationConfig struct {
	BaseURL       string
	DefaultModel  string
	Temperature   float64
	Timeout       time.Duration
	AllowedModels []string
}

// ExtractionConfig bounds reference-material extraction.
type ExtractionConfig struct {
	MaxFileSizeBytes int64
	FetchTimeout     time.Duration
}

// MaterialsConfig controls teaching-material storage and limits.
type MaterialsConfig struct {
	StorageDir       string
	MaxPerClassroom  int
	MaxFileSizeBytes int64
}

// ExportsConfig configures generated-artifact storage and download links.
type ExportsConfig struct {
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	CleanupInterval   time.Duration
	WorkerConcurrency int
	WorkerRetries     int
}

// TranslatorConfig caps the per-user translation history.
type TranslatorConfig struct {
	HistoryLimit int
	HistoryTTL   time.Duration
}

// CacheConfig governs classroom-context cache behaviour.
type CacheConfig struct {
	Enabled      bool
	ClassroomTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Generation = GenerationConfig{
		BaseURL:       v.GetString("GENERATION_BASE_URL"),
		DefaultModel:  v.GetString("GENERATION_DEFAULT_MODEL"),
		Temperature:   v.GetFloat64("GENERATION_TEMPERATURE"),
		Timeout:       parseDuration(v.GetString("GENERATION_TIMEOUT"), 2*time.Minute),
		AllowedModels: splitAndTrim(v.GetString("GENERATION_ALLOWED_MODELS")),
	}

	maxExtractSize := v.GetInt64("EXTRACTION_MAX_FILE_SIZE")
	if maxExtractSize <= 0 {
		maxExtractSize = 5 * 1024 * 1024
	}
	cfg.Extraction = ExtractionConfig{
		MaxFileSizeBytes: maxExtractSize,
		FetchTimeout:     parseDuration(v.GetString("EXTRACTION_FETCH_TIMEOUT"), 30*time.Second),
	}

	maxMaterialSize := v.GetInt64("MATERIALS_MAX_FILE_SIZE")
	if maxMaterialSize <= 0 {
		maxMaterialSize = 10 * 1024 * 1024
	}
	cfg.Materials = MaterialsConfig{
		StorageDir:       v.GetString("MATERIALS_STORAGE_DIR"),
		MaxPerClassroom:  v.GetInt("MATERIALS_MAX_PER_CLASSROOM"),
		MaxFileSizeBytes: maxMaterialSize,
	}

	cfg.Exports = ExportsConfig{
		StorageDir:        v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret:   v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 24*time.Hour),
		CleanupInterval:   parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), time.Hour),
		WorkerConcurrency: v.GetInt("EXPORTS_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("EXPORTS_WORKER_RETRIES"),
	}

	cfg.Translator = TranslatorConfig{
		HistoryLimit: v.GetInt("TRANSLATOR_HISTORY_LIMIT"),
		HistoryTTL:   parseDuration(v.GetString("TRANSLATOR_HISTORY_TTL"), 30*24*time.Hour),
	}

	cfg.Cache = CacheConfig{
		Enabled:      v.GetBool("ENABLE_CACHE"),
		ClassroomTTL: parseDuration(v.GetString("CACHE_CLASSROOM_TTL"), 10*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "maestre")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("GENERATION_BASE_URL", "http://localhost:11434")
	v.SetDefault("GENERATION_DEFAULT_MODEL", "llama3.2:3b")
	v.SetDefault("GENERATION_TEMPERATURE", 0.7)
	v.SetDefault("GENERATION_TIMEOUT", "2m")
	v.SetDefault("GENERATION_ALLOWED_MODELS", "")

	v.SetDefault("EXTRACTION_MAX_FILE_SIZE", 5*1024*1024)
	v.SetDefault("EXTRACTION_FETCH_TIMEOUT", "30s")

	v.SetDefault("MATERIALS_STORAGE_DIR", "./data/materials")
	v.SetDefault("MATERIALS_MAX_PER_CLASSROOM", 5)
	v.SetDefault("MATERIALS_MAX_FILE_SIZE", 10*1024*1024)

	v.SetDefault("EXPORTS_STORAGE_DIR", "./data/exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("EXPORTS_WORKER_CONCURRENCY", 1)
	v.SetDefault("EXPORTS_WORKER_RETRIES", 3)

	v.SetDefault("TRANSLATOR_HISTORY_LIMIT", 10)
	v.SetDefault("TRANSLATOR_HISTORY_TTL", "720h")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_CLASSROOM_TTL", "10m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
