package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default service endpoints. Both can be overridden through the environment
// or the optional config file.
const (
	DefaultArcLinkBaseURL = "https://geofon.gfz-potsdam.de/api"
	DefaultIRISBaseURL    = "https://service.iris.edu/ws"

	defaultTimeout = 30 * time.Second
)

// Config holds application configuration. The MinIO fields are optional and
// validated separately; plain lookups run without any MinIO configuration.
type Config struct {
	ArcLinkBaseURL string
	IRISBaseURL    string
	Timeout        time.Duration
	Priorities     []string // nil means the built-in priority patterns

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
}

type ErrMissingRequiredEnvVar struct {
	Name string
}

func (e *ErrMissingRequiredEnvVar) Error() string {
	return fmt.Sprintf("required environment variable %q is not set", e.Name)
}

// Load reads configuration from environment variables and, when
// SEISAVAIL_CONFIG names a file, overlays the YAML settings from it.
func Load() (*Config, error) {
	config := Config{
		ArcLinkBaseURL: envOr("ARCLINK_BASE_URL", DefaultArcLinkBaseURL),
		IRISBaseURL:    envOr("IRIS_BASE_URL", DefaultIRISBaseURL),
		Timeout:        defaultTimeout,
		MinIOEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinIOAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinIOBucket:    os.Getenv("MINIO_BUCKET"),
		MinIOUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}

	if path := os.Getenv("SEISAVAIL_CONFIG"); path != "" {
		if err := config.applyFile(path); err != nil {
			return nil, err
		}
	}

	return &config, nil
}

// ValidateMinIO checks that every variable needed for snapshot uploads is
// present. Only callers that upload snapshots need it to pass.
func (c *Config) ValidateMinIO() error {
	if c.MinIOEndpoint == "" {
		return &ErrMissingRequiredEnvVar{Name: "MINIO_ENDPOINT"}
	}
	if c.MinIOAccessKey == "" {
		return &ErrMissingRequiredEnvVar{Name: "MINIO_ACCESS_KEY"}
	}
	if c.MinIOSecretKey == "" {
		return &ErrMissingRequiredEnvVar{Name: "MINIO_SECRET_KEY"}
	}
	if c.MinIOBucket == "" {
		return &ErrMissingRequiredEnvVar{Name: "MINIO_BUCKET"}
	}
	return nil
}

// fileConfig is the shape of the optional YAML config file. Absent fields
// leave the environment-derived values untouched.
type fileConfig struct {
	ArcLinkBaseURL string   `yaml:"arclink_base_url"`
	IRISBaseURL    string   `yaml:"iris_base_url"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	Priorities     []string `yaml:"priorities"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if file.ArcLinkBaseURL != "" {
		c.ArcLinkBaseURL = file.ArcLinkBaseURL
	}
	if file.IRISBaseURL != "" {
		c.IRISBaseURL = file.IRISBaseURL
	}
	if file.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(file.TimeoutSeconds) * time.Second
	}
	if len(file.Priorities) > 0 {
		c.Priorities = append([]string(nil), file.Priorities...)
	}
	return nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
