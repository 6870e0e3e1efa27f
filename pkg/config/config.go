package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultUserAgent is the browser-like identification sent with every request
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Config holds all configuration options for the scraper
type Config struct {
	// Search service settings
	Search SearchConfig `yaml:"search" json:"search"`

	// Download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Output file settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Record construction settings
	Record RecordConfig `yaml:"record" json:"record"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SearchConfig holds search-service configuration
type SearchConfig struct {
	Endpoint          string        `yaml:"endpoint" json:"endpoint"`
	Query             string        `yaml:"query" json:"query"`
	ImagesOnly        bool          `yaml:"images_only" json:"images_only"`
	MinFaves          int           `yaml:"min_faves" json:"min_faves"`
	Limit             int           `yaml:"limit" json:"limit"`
	ResultDelay       time.Duration `yaml:"result_delay" json:"result_delay"`
	RequestsPerMinute int           `yaml:"requests_per_minute" json:"requests_per_minute"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
}

// DownloadConfig holds download-specific configuration
type DownloadConfig struct {
	Directory string        `yaml:"directory" json:"directory"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	ChunkSize int           `yaml:"chunk_size" json:"chunk_size"`
	Delay     time.Duration `yaml:"delay" json:"delay"`
}

// OutputConfig holds the location of the metadata catalog
type OutputConfig struct {
	File string `yaml:"file" json:"file"`
}

// RecordConfig controls how media records are built from search results
type RecordConfig struct {
	Style         string `yaml:"style" json:"style"`
	ChogTag       string `yaml:"chog_tag" json:"chog_tag"`
	MonadTag      string `yaml:"monad_tag" json:"monad_tag"`
	ContentLength int    `yaml:"content_length" json:"content_length"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Endpoint:          "http://localhost:8080",
			Query:             "(#monad #chog nft) OR #chog",
			ImagesOnly:        true,
			MinFaves:          1,
			Limit:             300,
			ResultDelay:       500 * time.Millisecond,
			RequestsPerMinute: 60,
			Timeout:           30 * time.Second,
		},
		Download: DownloadConfig{
			Directory: "assets",
			UserAgent: DefaultUserAgent,
			Timeout:   30 * time.Second,
			ChunkSize: 8192,
			Delay:     500 * time.Millisecond,
		},
		Output: OutputConfig{
			File: "chog_dynamic.json",
		},
		Record: RecordConfig{
			Style:         "chog-nft-art",
			ChogTag:       "#chog",
			MonadTag:      "#monad",
			ContentLength: 100,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if endpoint := os.Getenv("CHOGSCRAPER_ENDPOINT"); endpoint != "" {
		c.Search.Endpoint = endpoint
	}
	if query := os.Getenv("CHOGSCRAPER_QUERY"); query != "" {
		c.Search.Query = query
	}
	if limit := os.Getenv("CHOGSCRAPER_LIMIT"); limit != "" {
		if val, err := positiveInt(limit); err != nil {
			errs = append(errs, fmt.Errorf("CHOGSCRAPER_LIMIT: %w", err))
		} else {
			c.Search.Limit = val
		}
	}
	if rpm := os.Getenv("CHOGSCRAPER_REQUESTS_PER_MINUTE"); rpm != "" {
		if val, err := positiveInt(rpm); err != nil {
			errs = append(errs, fmt.Errorf("CHOGSCRAPER_REQUESTS_PER_MINUTE: %w", err))
		} else {
			c.Search.RequestsPerMinute = val
		}
	}
	if delay := os.Getenv("CHOGSCRAPER_DELAY"); delay != "" {
		d, err := time.ParseDuration(delay)
		if err != nil {
			errs = append(errs, fmt.Errorf("CHOGSCRAPER_DELAY: %w", err))
		} else {
			c.Search.ResultDelay = d
			c.Download.Delay = d
		}
	}

	if userAgent := os.Getenv("CHOGSCRAPER_USER_AGENT"); userAgent != "" {
		c.Download.UserAgent = userAgent
	}
	if dir := os.Getenv("CHOGSCRAPER_OUTPUT_DIR"); dir != "" {
		c.Download.Directory = dir
	}
	if file := os.Getenv("CHOGSCRAPER_OUTPUT_FILE"); file != "" {
		c.Output.File = file
	}

	if logLevel := os.Getenv("CHOGSCRAPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return errors.Join(errs...)
}

func positiveInt(s string) (int, error) {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if val <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", val)
	}
	return val, nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		"chogscraper.yaml",
		".chogscraper.yaml",
		".chogscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "chogscraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".chogscraper.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Search
	if c.Search.Endpoint == "" {
		errs = append(errs, errors.New("search endpoint is required"))
	} else if u, err := url.Parse(c.Search.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("search endpoint %q is not an absolute URL", c.Search.Endpoint))
	}
	if strings.TrimSpace(c.Search.Query) == "" {
		errs = append(errs, errors.New("search query is required"))
	}
	if c.Search.Limit <= 0 {
		errs = append(errs, errors.New("search limit must be positive"))
	}
	if c.Search.MinFaves < 0 {
		errs = append(errs, errors.New("min faves cannot be negative"))
	}
	if c.Search.ResultDelay < 0 {
		errs = append(errs, errors.New("result delay cannot be negative"))
	}
	if c.Search.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}
	if c.Search.Timeout <= 0 {
		errs = append(errs, errors.New("search timeout must be positive"))
	}

	// Download
	if c.Download.Directory == "" {
		errs = append(errs, errors.New("download directory is required"))
	}
	if c.Download.Timeout <= 0 {
		errs = append(errs, errors.New("download timeout must be positive"))
	}
	if c.Download.ChunkSize <= 0 {
		errs = append(errs, errors.New("chunk size must be positive"))
	}
	if c.Download.Delay < 0 {
		errs = append(errs, errors.New("download delay cannot be negative"))
	}

	// Output
	if c.Output.File == "" {
		errs = append(errs, errors.New("output file is required"))
	}

	// Record
	if c.Record.ContentLength <= 0 {
		errs = append(errs, errors.New("content length must be positive"))
	}
	if c.Record.ChogTag == "" || c.Record.MonadTag == "" {
		errs = append(errs, errors.New("both hashtag filters are required"))
	}

	// Logging
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if endpoint, ok := flags["endpoint"].(string); ok && endpoint != "" {
		c.Search.Endpoint = endpoint
	}
	if query, ok := flags["query"].(string); ok && query != "" {
		c.Search.Query = query
	}
	if limit, ok := flags["limit"].(int); ok && limit > 0 {
		c.Search.Limit = limit
	}
	if delay, ok := flags["delay"].(time.Duration); ok && delay >= 0 {
		c.Search.ResultDelay = delay
		c.Download.Delay = delay
	}
	if dir, ok := flags["output-dir"].(string); ok && dir != "" {
		c.Download.Directory = dir
	}
	if file, ok := flags["output-file"].(string); ok && file != "" {
		c.Output.File = file
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".chogscraper.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
