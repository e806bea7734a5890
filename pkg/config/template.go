package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every built-in rule and every setting.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// IncludeRules limits the documented built-in rules to these names.
	// If empty, all rules are included.
	IncludeRules []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Match tags regardless of case ([b] as well as [B])
case_insensitive: false

# Restrict or trim the built-in rules by name
# only: [bold, italic, underline, linebreak]
# except: [image, youtube]

# Custom rules, applied after the built-ins in this order
# rules:
#   - name: spoiler
#     pattern: '(?s)\[SPOILER\](.*?)\[/SPOILER\]'
#     replace: '<details>$1</details>'
#     content: '$1'

output:
  # html, markdown, or text
  format: html
  # sanitize: false
  # annotate_code: false

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
`)

	return buf.Bytes()
}

func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(` - Full Template
#
# Uncomment and modify settings as needed.

# Match tags regardless of case ([b] as well as [B])
case_insensitive: false

# Built-in rules, in the order they are applied. Use the names with
# only/except to select a subset.
`)

	builtin := bbcode.Builtin()
	builtin.Each(func(name string, rule bbcode.Rule) {
		if len(opts.IncludeRules) > 0 && !slices.Contains(opts.IncludeRules, name) {
			return
		}
		fmt.Fprintf(&buf, "#   %-12s %s\n", name, rule.Pattern())
	})

	buf.WriteString(`
# only: []
# except: []

# Custom rules, applied after the built-ins in this order. Replace and
# content templates reference capture groups as $1 or ${1}. Reusing a
# built-in name replaces that rule in place.
rules: []

output:
  # html, markdown, or text
  format: html
  # Restrict HTML to the elements the built-in rules produce
  sanitize: false
  # Tag <code> blocks with a detected language class
  annotate_code: false
  # Extension for written files (defaults to the format's extension)
  # extension: .html

server:
  addr: ":8080"
  read_timeout: 10s
  write_timeout: 30s
  render_timeout: 2s
  rate_limit_requests: 120
  rate_limit_window: 1m
  # redis_url: redis://localhost:6379/0
  cache_ttl: 10m
  cache_prefix: "gobbcode:"

ignore:
  - "vendor/**"
  - "node_modules/**"
`)

	return buf.Bytes()
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	defaults := NewConfig()
	cfg := map[string]any{
		"case_insensitive": false,
		"only":             []string{},
		"except":           []string{},
		"rules":            []CustomRule{},
		"output": map[string]any{
			"format":        defaults.Output.Format,
			"sanitize":      false,
			"annotate_code": false,
		},
		"server": map[string]any{
			"addr":                defaults.Server.Addr,
			"read_timeout":        defaults.Server.ReadTimeout.String(),
			"write_timeout":       defaults.Server.WriteTimeout.String(),
			"render_timeout":      defaults.Server.RenderTimeout.String(),
			"rate_limit_requests": defaults.Server.RateLimitRequests,
			"rate_limit_window":   defaults.Server.RateLimitWindow.String(),
			"cache_ttl":           defaults.Server.CacheTTL.String(),
			"cache_prefix":        defaults.Server.CachePrefix,
		},
		"ignore": []string{"vendor/**", "node_modules/**"},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gobbcode configuration
# See: https://github.com/yaklabco/gobbcode`
}
