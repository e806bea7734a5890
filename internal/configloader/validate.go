package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules[0].pattern").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rule names).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// knownReports lists valid run summary formats.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownReports = map[string]bool{
	"text": true,
	"json": true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Output.Format != "" && !cfg.Output.Format.IsValid() {
		result.addError("output.format", cfg.Output.Format,
			"invalid format %q; must be one of: html, markdown, text", cfg.Output.Format)
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Report != "" && !knownReports[cfg.Report] {
		result.addError("report", cfg.Report, "invalid report format %q; must be one of: text, json", cfg.Report)
	}

	validateRules(cfg, result)
	validateSelection(cfg, result)
	validateServer(cfg.Server, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateRules compiles every custom rule the same way the engine will.
func validateRules(cfg *config.Config, result *ValidationResult) {
	seen := make(map[string]int, len(cfg.Rules))

	for i, rule := range cfg.Rules {
		field := fmt.Sprintf("rules[%d]", i)

		if strings.TrimSpace(rule.Name) == "" {
			result.addError(field+".name", rule.Name, "custom rule name must not be empty")
			continue
		}

		if first, dup := seen[rule.Name]; dup {
			result.addWarning(field+".name", rule.Name,
				"rule %q is also defined at rules[%d]; the later definition wins", rule.Name, first)
		}
		seen[rule.Name] = i

		if _, err := bbcode.NewRule(rule.Pattern, rule.Replace, rule.Content); err != nil {
			result.addError(field, rule.Pattern, "rule %q: %v", rule.Name, err)
		}
	}
}

// validateSelection checks only/except against the known rule names.
func validateSelection(cfg *config.Config, result *ValidationResult) {
	if len(cfg.Only) > 0 && len(cfg.Except) > 0 {
		result.addWarning("except", cfg.Except, "both only and except are set; except is applied after only")
	}

	known := KnownRuleNames(cfg)
	for _, field := range []struct {
		name  string
		names []string
	}{{"only", cfg.Only}, {"except", cfg.Except}} {
		_, unknown := ResolveRuleNames(field.names, known)
		for _, name := range unknown {
			result.addWarning(field.name, name, "unknown rule %q; it will be ignored", name)
		}
	}
}

func validateServer(server config.ServerConfig, result *ValidationResult) {
	durations := []struct {
		field string
		value time.Duration
	}{
		{"server.read_timeout", server.ReadTimeout},
		{"server.write_timeout", server.WriteTimeout},
		{"server.render_timeout", server.RenderTimeout},
		{"server.rate_limit_window", server.RateLimitWindow},
		{"server.cache_ttl", server.CacheTTL},
	}
	for _, d := range durations {
		if d.value < 0 {
			result.addError(d.field, d.value, "duration must not be negative")
		}
	}

	if server.RateLimitRequests < 0 {
		result.addError("server.rate_limit_requests", server.RateLimitRequests, "must be >= 0 (0 disables rate limiting)")
	}
	if server.RateLimitRequests > 0 && server.RateLimitWindow <= 0 {
		result.addError("server.rate_limit_window", server.RateLimitWindow, "must be positive when rate limiting is enabled")
	}

	if server.RedisURL != "" {
		if _, err := redis.ParseURL(server.RedisURL); err != nil {
			result.addError("server.redis_url", server.RedisURL, "invalid redis URL: %v", err)
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// KnownRuleNames returns the built-in rule names followed by the custom
// rule names that are not built-in.
func KnownRuleNames(cfg *config.Config) []string {
	names := bbcode.BuiltinNames()
	if cfg == nil {
		return names
	}
	for _, rule := range cfg.Rules {
		if rule.Name != "" && !slices.Contains(names, rule.Name) {
			names = append(names, rule.Name)
		}
	}
	return names
}
