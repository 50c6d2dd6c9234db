// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used by the server and
// the blogctl tool.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Content sources for article bodies.
const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceS3   = "s3"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Content layout. Registry, published and draft paths derive from ContentDir.
	ContentDir     string
	ContentSource  string // "file", "http", "s3"
	ContentBaseURL string

	// Valkey (Redis-compatible page cache). Disabled when ValkeyHost is empty.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int
	PageCacheTTL   time.Duration

	// S3-compatible object storage for article bodies and publish mirroring.
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Prefix    string
	S3PublicURL string

	// Contact form relay
	ContactRelayURL  string
	ContactRateLimit int
	ContactWindow    time.Duration

	// AI provider settings for feed-based drafting
	AIProvider     string // "claude", "openai", "gemini", "mistral"
	ClaudeAPIKey   string
	ClaudeModel    string
	ClaudeBaseURL  string
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	GeminiAPIKey   string
	GeminiModel    string
	GeminiBaseURL  string
	MistralAPIKey  string
	MistralModel   string
	MistralBaseURL string

	FeedURLs []string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ContentDir:     envOrDefault("CONTENT_DIR", "content"),
		ContentSource:  strings.ToLower(envOrDefault("CONTENT_SOURCE", SourceFile)),
		ContentBaseURL: os.Getenv("CONTENT_BASE_URL"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Prefix:    envOrDefault("S3_PREFIX", "blog-posts"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		ContactRelayURL: envOrDefault("CONTACT_RELAY_URL", "https://formspree.io/f/xeogleze"),

		AIProvider:    envOrDefault("AI_PROVIDER", "claude"),
		ClaudeAPIKey:  os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:   os.Getenv("CLAUDE_MODEL"),
		ClaudeBaseURL: os.Getenv("CLAUDE_BASE_URL"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    os.Getenv("GEMINI_MODEL"),
		GeminiBaseURL:  os.Getenv("GEMINI_BASE_URL"),
		MistralAPIKey:  os.Getenv("MISTRAL_API_KEY"),
		MistralModel:   os.Getenv("MISTRAL_MODEL"),
		MistralBaseURL: os.Getenv("MISTRAL_BASE_URL"),

		FeedURLs: splitList(os.Getenv("FEED_URLS")),
	}

	var err error
	if cfg.ValkeyDB, err = envInt("VALKEY_DB", 0); err != nil {
		return nil, err
	}
	if cfg.ContactRateLimit, err = envInt("CONTACT_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.PageCacheTTL, err = envDuration("PAGE_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ContactWindow, err = envDuration("CONTACT_RATE_WINDOW", 10*time.Minute); err != nil {
		return nil, err
	}

	switch cfg.ContentSource {
	case SourceFile:
	case SourceHTTP:
		if cfg.ContentBaseURL == "" {
			return nil, fmt.Errorf("CONTENT_BASE_URL must be set when CONTENT_SOURCE=http")
		}
	case SourceS3:
		if cfg.S3Bucket == "" || cfg.S3Endpoint == "" {
			return nil, fmt.Errorf("S3_ENDPOINT and S3_BUCKET must be set when CONTENT_SOURCE=s3")
		}
	default:
		return nil, fmt.Errorf("unknown CONTENT_SOURCE %q", cfg.ContentSource)
	}

	if cfg.ContactRateLimit < 1 {
		return nil, fmt.Errorf("CONTACT_RATE_LIMIT must be positive")
	}

	return cfg, nil
}

// LoadDotEnv loads variables from the given files (default ".env") without
// overriding ones already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ValkeyAddr returns host:port, or "" when the page cache is disabled.
func (c *Config) ValkeyAddr() string {
	if c.ValkeyHost == "" {
		return ""
	}
	return c.ValkeyHost + ":" + c.ValkeyPort
}

// S3Enabled reports whether object storage credentials are configured.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}

// RegistryPath is the JSON-lines file holding published post records.
func (c *Config) RegistryPath() string {
	return filepath.Join(c.ContentDir, "registry", "posts.jsonl")
}

// PublishedDir holds one Markdown document per published post.
func (c *Config) PublishedDir() string {
	return filepath.Join(c.ContentDir, "blog-posts")
}

// DraftsDir holds generated drafts awaiting review.
func (c *Config) DraftsDir() string {
	return filepath.Join(c.ContentDir, "drafts")
}

// DraftIndexPath is the JSON-lines draft index.
func (c *Config) DraftIndexPath() string {
	return filepath.Join(c.DraftsDir(), "index.jsonl")
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
