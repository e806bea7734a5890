package configloader

import (
	"fmt"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/bbcode/facade"
	"github.com/yaklabco/gobbcode/pkg/config"
)

// NewParser builds a parser from the built-in rules plus cfg's custom
// rules, then applies the only/except selection.
func NewParser(cfg *config.Config) (*bbcode.Parser, error) {
	parser := bbcode.New()
	if err := ApplyConfig(parser, cfg); err != nil {
		return nil, err
	}
	return parser, nil
}

// ApplyConfig registers cfg's custom rules on parser in order and then
// narrows its active set. Rules are registered first so that only/except
// can name them.
func ApplyConfig(parser *bbcode.Parser, cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, rule := range cfg.Rules {
		if err := parser.RegisterRule(rule.Name, rule.Pattern, rule.Replace, rule.Content); err != nil {
			return fmt.Errorf("register rule %q: %w", rule.Name, err)
		}
	}

	Select(parser, cfg.Only, cfg.Except)
	return nil
}

// Select narrows parser's active set to only, then drops except from what
// remains. With only empty, except is taken from the full table. With both
// empty the active set is left as it is.
func Select(parser *bbcode.Parser, only, except []string) {
	switch {
	case len(only) > 0:
		drop := make(map[string]struct{}, len(except))
		for _, name := range except {
			drop[name] = struct{}{}
		}
		kept := make([]string, 0, len(only))
		for _, name := range only {
			if _, ok := drop[name]; !ok {
				kept = append(kept, name)
			}
		}
		parser.Only(kept...)
	case len(except) > 0:
		parser.Except(except...)
	}
}

// Setup returns a facade setup that applies cfg to the shared parser.
func Setup(cfg *config.Config) facade.Setup {
	return func(parser *bbcode.Parser) error {
		return ApplyConfig(parser, cfg)
	}
}
