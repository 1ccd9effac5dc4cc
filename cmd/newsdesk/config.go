package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/newsdesk"
	"gopkg.in/yaml.v3"
)

// Config is the newsdesk configuration file. Zero values fall back to
// DefaultConfig.
type Config struct {
	// Categories maps a category name to its RSS or Atom feed URLs.
	Categories map[string][]string `yaml:"categories"`

	Fetch      FetchConfig      `yaml:"fetch"`
	Extract    ExtractConfig    `yaml:"extract"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Cache      CacheConfig      `yaml:"cache"`

	LogLevel string `yaml:"log_level"`
}

// FetchConfig configures fetching of feeds and article pages.
type FetchConfig struct {
	Timeout     time.Duration   `yaml:"timeout"`
	Interval    time.Duration   `yaml:"interval"`
	Concurrency int             `yaml:"concurrency"`
	RetryDelays []time.Duration `yaml:"retry_delays"`
	UserAgent   string          `yaml:"user_agent"`
	Browser     bool            `yaml:"browser"`
	MaxItems    int             `yaml:"max_items"`
}

// ExtractConfig configures content extraction.
type ExtractConfig struct {
	MinLength int `yaml:"min_length"`
	MaxLength int `yaml:"max_length"`

	// Fallback is "readability", "trafilatura" or "none".
	Fallback string `yaml:"fallback"`
}

// SummarizerConfig configures the summarization provider.
type SummarizerConfig struct {
	// Provider is "gemini", "openai" or "none".
	Provider  string        `yaml:"provider"`
	Model     string        `yaml:"model"`
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`

	// Temperature is a pointer so that 0 can be configured.
	Temperature *float32 `yaml:"temperature"`
}

// CorpusConfig configures the in-memory corpus.
type CorpusConfig struct {
	Capacity int `yaml:"capacity"`
}

// CacheConfig configures the scrape cache.
type CacheConfig struct {
	Size int           `yaml:"size"`
	TTL  time.Duration `yaml:"ttl"`
}

// Provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Fallback extractor names.
const (
	FallbackReadability = "readability"
	FallbackTrafilatura = "trafilatura"
	FallbackNone        = "none"
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	temp := float32(0.3)
	return &Config{
		Categories: map[string][]string{
			"world":      {"https://feeds.bbci.co.uk/news/world/rss.xml"},
			"business":   {"https://feeds.bbci.co.uk/news/business/rss.xml"},
			"technology": {"https://feeds.bbci.co.uk/news/technology/rss.xml"},
			"science":    {"https://feeds.bbci.co.uk/news/science_and_environment/rss.xml"},
			"health":     {"https://feeds.bbci.co.uk/news/health/rss.xml"},
		},
		Fetch: FetchConfig{
			Timeout:     15 * time.Second,
			Interval:    100 * time.Millisecond,
			Concurrency: 4,
			RetryDelays: []time.Duration{500 * time.Millisecond, time.Second},
			MaxItems:    10,
		},
		Extract: ExtractConfig{
			MinLength: newsdesk.DefaultMinContentLength,
			MaxLength: newsdesk.DefaultMaxContentLength,
			Fallback:  FallbackReadability,
		},
		Summarizer: SummarizerConfig{
			Provider:    ProviderGemini,
			Timeout:     20 * time.Second,
			MaxTokens:   300,
			Temperature: &temp,
		},
		Corpus: CorpusConfig{Capacity: newsdesk.DefaultCorpusCapacity},
		Cache:  CacheConfig{Size: 500, TTL: 30 * time.Minute},

		LogLevel: "info",
	}
}

// LoadConfig reads the YAML file at path on top of DefaultConfig. An empty
// path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration and fills unset fields from
// DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "parse config: %v", err)
	}
	cfg.applyDefaults(DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults(d *Config) {
	if len(c.Categories) == 0 {
		c.Categories = d.Categories
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = d.Fetch.Timeout
	}
	if c.Fetch.Interval <= 0 {
		c.Fetch.Interval = d.Fetch.Interval
	}
	if c.Fetch.Concurrency <= 0 {
		c.Fetch.Concurrency = d.Fetch.Concurrency
	}
	if c.Fetch.RetryDelays == nil {
		c.Fetch.RetryDelays = d.Fetch.RetryDelays
	}
	if c.Fetch.MaxItems <= 0 {
		c.Fetch.MaxItems = d.Fetch.MaxItems
	}
	if c.Extract.MinLength <= 0 {
		c.Extract.MinLength = d.Extract.MinLength
	}
	if c.Extract.MaxLength <= 0 {
		c.Extract.MaxLength = d.Extract.MaxLength
	}
	if c.Extract.Fallback == "" {
		c.Extract.Fallback = d.Extract.Fallback
	}
	if c.Summarizer.Provider == "" {
		c.Summarizer.Provider = d.Summarizer.Provider
	}
	if c.Summarizer.Timeout <= 0 {
		c.Summarizer.Timeout = d.Summarizer.Timeout
	}
	if c.Summarizer.MaxTokens <= 0 {
		c.Summarizer.MaxTokens = d.Summarizer.MaxTokens
	}
	if c.Summarizer.Temperature == nil {
		c.Summarizer.Temperature = d.Summarizer.Temperature
	}
	if c.Corpus.Capacity <= 0 {
		c.Corpus.Capacity = d.Corpus.Capacity
	}
	if c.Cache.Size <= 0 {
		c.Cache.Size = d.Cache.Size
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = d.Cache.TTL
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	switch c.Summarizer.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderNone:
	default:
		return newsdesk.Errorf(newsdesk.EINVALID, "unknown summarizer provider %q", c.Summarizer.Provider)
	}
	switch c.Extract.Fallback {
	case FallbackReadability, FallbackTrafilatura, FallbackNone:
	default:
		return newsdesk.Errorf(newsdesk.EINVALID, "unknown extraction fallback %q", c.Extract.Fallback)
	}
	for name, feeds := range c.Categories {
		if len(feeds) == 0 {
			return newsdesk.Errorf(newsdesk.EINVALID, "category %q has no feeds", name)
		}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// CategoryNames returns the configured categories in sorted order.
func (c *Config) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseLogLevel parses debug, info, warn or error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, newsdesk.Errorf(newsdesk.EINVALID, "unknown log level %q", s)
}
