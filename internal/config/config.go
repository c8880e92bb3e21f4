// Package config handles converter service configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageNone     = "none"
	StorageLocal    = "local"
	StorageSupabase = "supabase"
)

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Images  ImagesConfig  `yaml:"images"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxUploadMB    int64         `yaml:"max_upload_mb"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// StorageConfig selects where saved results go.
type StorageConfig struct {
	Backend   string         `yaml:"backend"`
	OutputDir string         `yaml:"output_dir"`
	Supabase  SupabaseConfig `yaml:"supabase"`
}

// SupabaseConfig holds Supabase Storage credentials.
type SupabaseConfig struct {
	URL    string `yaml:"url"`
	Key    string `yaml:"key"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// ImagesConfig holds jpg-to-pdf image settings.
type ImagesConfig struct {
	MaxWidth    int `yaml:"max_width"`
	JPEGQuality int `yaml:"jpeg_quality"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    60 * time.Second,
			WriteTimeout:   300 * time.Second,
			IdleTimeout:    120 * time.Second,
			MaxUploadMB:    50,
			AllowedOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			Backend:   StorageNone,
			OutputDir: "./output",
			Supabase: SupabaseConfig{
				Bucket: "conversions",
			},
		},
		Images: ImagesConfig{
			MaxWidth:    1920,
			JPEGQuality: 80,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides values from CONVERTER_*, SUPABASE_* and LOG_LEVEL
// environment variables. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("CONVERTER_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CONVERTER_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}

	overrides := []struct {
		env    string
		target *string
	}{
		{"CONVERTER_STORAGE", &c.Storage.Backend},
		{"CONVERTER_OUTPUT_DIR", &c.Storage.OutputDir},
		{"SUPABASE_URL", &c.Storage.Supabase.URL},
		{"SUPABASE_KEY", &c.Storage.Supabase.Key},
		{"SUPABASE_BUCKET", &c.Storage.Supabase.Bucket},
		{"SUPABASE_PREFIX", &c.Storage.Supabase.Prefix},
		{"LOG_LEVEL", &c.Logging.Level},
	}
	for _, o := range overrides {
		if v, ok := lookup(o.env); ok && v != "" {
			*o.target = v
		}
	}
	return nil
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}

	switch strings.ToLower(c.Storage.Backend) {
	case "", StorageNone:
	case StorageLocal:
		if c.Storage.OutputDir == "" {
			return fmt.Errorf("storage.output_dir is required for the local backend")
		}
	case StorageSupabase:
		s := c.Storage.Supabase
		if s.URL == "" || s.Key == "" || s.Bucket == "" {
			return fmt.Errorf("storage.supabase requires url, key and bucket")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}

	if c.Images.MaxWidth <= 0 {
		return fmt.Errorf("images.max_width must be positive, got %d", c.Images.MaxWidth)
	}
	if c.Images.JPEGQuality < 1 || c.Images.JPEGQuality > 100 {
		return fmt.Errorf("images.jpeg_quality must be between 1 and 100, got %d", c.Images.JPEGQuality)
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}
	return nil
}

// Address returns the listen address for the server.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
