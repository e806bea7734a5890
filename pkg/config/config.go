// Package config defines core configuration types for gobbcode.
// These types are pure data structures; loading and layering live in
// internal/configloader.
package config

import "time"

// Config is the root configuration structure for gobbcode.
type Config struct {
	// CaseInsensitive selects case-insensitive rule matching by default.
	CaseInsensitive *bool `yaml:"case_insensitive,omitempty" env:"CASE_INSENSITIVE"`

	// Only restricts the active rules to these names.
	Only []string `yaml:"only,omitempty" env:"ONLY" envSeparator:","`

	// Except removes these names from the active rules.
	Except []string `yaml:"except,omitempty" env:"EXCEPT" envSeparator:","`

	// Rules are custom rules registered after the built-ins, in order.
	// From the environment: GOBBCODE_RULES_0_NAME, GOBBCODE_RULES_0_PATTERN, ...
	Rules []CustomRule `yaml:"rules,omitempty" envPrefix:"RULES_"`

	// Output configures post-processing of rendered documents.
	Output OutputConfig `yaml:"output" envPrefix:"OUTPUT_"`

	// Server configures the HTTP service.
	Server ServerConfig `yaml:"server" envPrefix:"SERVER_"`

	// Ignore contains glob patterns for files to skip during batch runs.
	Ignore []string `yaml:"ignore,omitempty" env:"IGNORE" envSeparator:","`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" env:"JOBS"`

	// Write writes converted files next to their sources instead of stdout.
	Write bool `yaml:"-"`

	// OutDir redirects written files into this directory.
	OutDir string `yaml:"-"`

	// Report is the run summary format ("text" or "json").
	Report string `yaml:"-"`
}

// CustomRule is a user-defined rule registered on top of the built-ins.
// Registering a name that already exists replaces that rule in place.
type CustomRule struct {
	Name    string `yaml:"name" env:"NAME"`
	Pattern string `yaml:"pattern" env:"PATTERN"`
	Replace string `yaml:"replace" env:"REPLACE"`
	Content string `yaml:"content" env:"CONTENT"`
}

// OutputConfig controls what happens to a document after rendering.
type OutputConfig struct {
	Format       OutputFormat `yaml:"format,omitempty" env:"FORMAT"`
	Sanitize     *bool        `yaml:"sanitize,omitempty" env:"SANITIZE"`
	AnnotateCode *bool        `yaml:"annotate_code,omitempty" env:"ANNOTATE_CODE"`

	// Extension overrides the extension of written files (".html", ".md", ...).
	Extension string `yaml:"extension,omitempty" env:"EXTENSION"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr          string        `yaml:"addr,omitempty" env:"ADDR"`
	ReadTimeout   time.Duration `yaml:"read_timeout,omitempty" env:"READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout,omitempty" env:"WRITE_TIMEOUT"`
	RenderTimeout time.Duration `yaml:"render_timeout,omitempty" env:"RENDER_TIMEOUT"`

	// RateLimitRequests per RateLimitWindow per client IP. Zero disables it.
	RateLimitRequests int           `yaml:"rate_limit_requests,omitempty" env:"RATE_LIMIT_REQUESTS"`
	RateLimitWindow   time.Duration `yaml:"rate_limit_window,omitempty" env:"RATE_LIMIT_WINDOW"`

	// RedisURL backs both the rate limiter and the render cache when set.
	RedisURL    string        `yaml:"redis_url,omitempty" env:"REDIS_URL"`
	CacheTTL    time.Duration `yaml:"cache_ttl,omitempty" env:"CACHE_TTL"`
	CachePrefix string        `yaml:"cache_prefix,omitempty" env:"CACHE_PREFIX"`
}

// Server defaults.
const (
	DefaultAddr              = ":8080"
	DefaultReadTimeout       = 10 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultRenderTimeout     = 2 * time.Second
	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = time.Minute
	DefaultCacheTTL          = 10 * time.Minute
	DefaultCachePrefix       = "gobbcode:"
)

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		CaseInsensitive: Bool(false),
		Output: OutputConfig{
			Format:       FormatHTML,
			Sanitize:     Bool(false),
			AnnotateCode: Bool(false),
		},
		Server: ServerConfig{
			Addr:              DefaultAddr,
			ReadTimeout:       DefaultReadTimeout,
			WriteTimeout:      DefaultWriteTimeout,
			RenderTimeout:     DefaultRenderTimeout,
			RateLimitRequests: DefaultRateLimitRequests,
			RateLimitWindow:   DefaultRateLimitWindow,
			CacheTTL:          DefaultCacheTTL,
			CachePrefix:       DefaultCachePrefix,
		},
		Jobs:   0, // 0 means use GOMAXPROCS
		Report: "text",
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// BoolValue dereferences p, treating nil as false.
func BoolValue(p *bool) bool {
	return p != nil && *p
}

// IsCaseInsensitive reports whether matching defaults to case-insensitive.
func (c *Config) IsCaseInsensitive() bool {
	return c != nil && BoolValue(c.CaseInsensitive)
}
