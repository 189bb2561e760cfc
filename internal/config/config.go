package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/dgallion1/itemsplit/internal/segment"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8090"`

	// Auth
	APIKey string `envconfig:"API_KEY"`

	// Worker pool
	WorkerCount  int `envconfig:"WORKER_COUNT" default:"4"`
	MaxQueueSize int `envconfig:"MAX_QUEUE_SIZE" default:"100"`

	// Upload limits
	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"52428800"` // 50MB

	// Job state
	JobTTL time.Duration `envconfig:"JOB_TTL" default:"1h"`

	// Segmentation
	ScoreThreshold  int    `envconfig:"SCORE_THRESHOLD" default:"70"`
	MaxHeaderLength int    `envconfig:"MAX_HEADER_LENGTH" default:"200"`
	CatalogFile     string `envconfig:"CATALOG_FILE"`
	FormType        string `envconfig:"FORM_TYPE" default:"10-K"`

	// Output: a directory, an S3 bucket, or both
	OutputDir   string `envconfig:"OUTPUT_DIR"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`
	S3Prefix    string `envconfig:"S3_PREFIX"`

	// Inbox sweep; disabled unless both are set
	InboxDir      string `envconfig:"INBOX_DIR"`
	SweepSchedule string `envconfig:"SWEEP_SCHEDULE"`

	// PDF
	PDFFallbackPdftotext bool `envconfig:"PDF_FALLBACK_PDFTOTEXT" default:"true"`
}

// Load reads .env if present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	return cfg, nil
}

// SegmentOptions returns the core options without a catalog; callers load
// CatalogFile separately.
func (c Config) SegmentOptions() segment.Options {
	return segment.Options{
		Threshold:       c.ScoreThreshold,
		MaxHeaderLength: c.MaxHeaderLength,
	}
}

func (c Config) Validate() error {
	if c.ScoreThreshold < 0 || c.ScoreThreshold > 100 {
		return fmt.Errorf("SCORE_THRESHOLD must be within 0..100, got %d", c.ScoreThreshold)
	}
	if c.MaxHeaderLength <= 0 {
		return fmt.Errorf("MAX_HEADER_LENGTH must be positive, got %d", c.MaxHeaderLength)
	}
	if c.FormType == "" {
		return fmt.Errorf("FORM_TYPE is required")
	}
	if c.S3Bucket != "" && (c.S3AccessKey == "") != (c.S3SecretKey == "") {
		return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY must be set together")
	}
	if (c.InboxDir == "") != (c.SweepSchedule == "") {
		return fmt.Errorf("INBOX_DIR and SWEEP_SCHEDULE must be set together")
	}
	return nil
}

// ValidateServer adds the checks only the HTTP service needs.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY is required")
	}
	return nil
}
