package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/futig/multimodal-rag/internal/pkg/breaker"
	pkgRetry "github.com/futig/multimodal-rag/internal/pkg/retry"
	"github.com/joho/godotenv"
)

const (
	GeminiDriverHTTP = "http"
	GeminiDriverSDK  = "sdk"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr     string        `env:"SERVER_ADDR" envDefault:":3000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"120s"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Model gateway configuration
	GeminiConnectorCfg GeminiConnectorConfig `envPrefix:"GEMINI_"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// In-memory file store configuration
	FileStoreCfg FileStoreConfig `envPrefix:"FILE_STORE_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type GeminiConnectorConfig struct {
	HTTPClientConfig
	Driver           string               `env:"DRIVER" envDefault:"http"`
	Model            string               `env:"MODEL" envDefault:"gemini-2.5-flash-preview-05-20"`
	GenerateEndpoint string               `env:"GENERATE_ENDPOINT" envDefault:"/models/{model}:generateContent"`
	Retry            pkgRetry.RetryConfig `envPrefix:"RETRY_"`
	Breaker          breaker.Config       `envPrefix:"BREAKER_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"90s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"90s"`
	MaxResponseSize       int64         `env:"MAX_RESPONSE_SIZE" envDefault:"8388608"` // 8 MiB
	APIKey                string        `env:"API_KEY"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxUploadSize       int64  `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"` // 32 MiB
	MaxFileSize         int64  `env:"MAX_FILE_SIZE" envDefault:"20971520"`   // 20 MiB, Gemini inline data limit
	MaxMemory           int64  `env:"MAX_MEMORY" envDefault:"8388608"`       // 8 MiB kept in memory while parsing
	ScratchDir          string `env:"SCRATCH_DIR" envDefault:"uploads"`
	DefaultEmbeddingSet string `env:"DEFAULT_EMBEDDING_SET" envDefault:"multimodal-set-1"`
}

// FileStoreConfig holds the in-memory store settings. A zero TTL keeps the file until it is replaced.
type FileStoreConfig struct {
	TTL time.Duration `env:"TTL" envDefault:"0s"`
}

// LoadConfig parses the -env flag, loads the matching .env file and the process environment.
func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return Load(*envFlag)
}

// Load builds the configuration for the given environment name.
func Load(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout))
	}

	gemini := cfg.GeminiConnectorCfg
	if !cfg.EnableMocks && strings.TrimSpace(gemini.APIKey) == "" {
		errors = append(errors, "GEMINI_API_KEY is required unless ENABLE_MOCKS is set")
	}

	if gemini.Driver != GeminiDriverHTTP && gemini.Driver != GeminiDriverSDK {
		errors = append(errors, fmt.Sprintf("GEMINI_DRIVER must be %q or %q, got %q", GeminiDriverHTTP, GeminiDriverSDK, gemini.Driver))
	}

	if strings.TrimSpace(gemini.Model) == "" {
		errors = append(errors, "GEMINI_MODEL must not be empty")
	}

	// retry-go treats zero attempts as "retry forever"
	if gemini.Retry.Attempts < 1 || gemini.Retry.Attempts > 10 {
		errors = append(errors, fmt.Sprintf("GEMINI_RETRY_ATTEMPTS must be between 1 and 10, got %d", gemini.Retry.Attempts))
	}

	if gemini.Breaker.Enabled && (gemini.Breaker.FailureRatio <= 0 || gemini.Breaker.FailureRatio > 1) {
		errors = append(errors, fmt.Sprintf("GEMINI_BREAKER_FAILURE_RATIO must be in (0, 1], got %v", gemini.Breaker.FailureRatio))
	}

	upload := cfg.FileUploadCfg
	if upload.MaxUploadSize <= 0 {
		errors = append(errors, fmt.Sprintf("FILE_UPLOAD_MAX_UPLOAD_SIZE must be positive, got %d", upload.MaxUploadSize))
	}

	if upload.MaxFileSize <= 0 || upload.MaxFileSize > upload.MaxUploadSize {
		errors = append(errors, fmt.Sprintf("FILE_UPLOAD_MAX_FILE_SIZE must be between 1 and FILE_UPLOAD_MAX_UPLOAD_SIZE(%d), got %d", upload.MaxUploadSize, upload.MaxFileSize))
	}

	if strings.TrimSpace(upload.ScratchDir) == "" {
		errors = append(errors, "FILE_UPLOAD_SCRATCH_DIR must not be empty")
	}

	if cfg.FileStoreCfg.TTL < 0 {
		errors = append(errors, fmt.Sprintf("FILE_STORE_TTL must not be negative, got %s", cfg.FileStoreCfg.TTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
