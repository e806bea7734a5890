package bbcode

import (
	"context"
	"fmt"
)

// Parser applies an ordered rule table to BBCode source.
//
// A Parser owns the rule table and an Active Set, the order-preserving
// subset of the table used by Render. It is not internally synchronized:
// concurrent Render and Strip calls are safe only while nobody calls Only,
// Except or RegisterRule. Use Clone to give each goroutine its own Parser.
type Parser struct {
	rules  *Table
	active *Table
}

// New creates a Parser with every built-in rule active.
func New() *Parser {
	return NewWithTable(Builtin())
}

// NewWithTable creates a Parser over the given table with every rule
// active. The table is copied.
func NewWithTable(table *Table) *Parser {
	rules := table.Clone()
	return &Parser{
		rules:  rules,
		active: rules.Clone(),
	}
}

// Render converts source to HTML using the Active Set.
//
// Rules run in table order. Each rule is applied to the output of the
// previous one and repeated until its pattern no longer matches. A rule
// whose replacement matches its own pattern never terminates.
//
// Case-insensitive matching uses Unicode simple folding, so tag letters
// also match their fold equivalents: [ſ] matches [S] and the Kelvin sign
// matches K.
func (p *Parser) Render(source string, caseInsensitive bool) string {
	p.active.Each(func(_ string, rule Rule) {
		source = applyUntilFixpoint(rule.matcher(caseInsensitive), rule.replaceTmpl, source)
	})
	return source
}

// RenderCaseSensitive is Render(source, false).
func (p *Parser) RenderCaseSensitive(source string) string {
	return p.Render(source, false)
}

// RenderCaseInsensitive is Render(source, true).
func (p *Parser) RenderCaseInsensitive(source string) string {
	return p.Render(source, true)
}

// Strip removes every recognized tag and keeps the inner text.
// It always uses the full rule table, case-insensitively.
func (p *Parser) Strip(source string) string {
	p.rules.Each(func(_ string, rule Rule) {
		source = applyUntilFixpoint(rule.fold, rule.contentTmpl, source)
	})
	return source
}

// RenderContext is Render with ctx checked between passes.
// It returns ctx.Err() wrapped once the context is done.
func (p *Parser) RenderContext(ctx context.Context, source string, caseInsensitive bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var err error
	p.active.Each(func(name string, rule Rule) {
		if err != nil {
			return
		}
		source, err = applyUntilFixpointContext(ctx, rule.matcher(caseInsensitive), rule.replaceTmpl, source)
		if err != nil {
			err = fmt.Errorf("render rule %s: %w", name, err)
		}
	})
	if err != nil {
		return "", err
	}
	return source, nil
}

// StripContext is Strip with ctx checked between passes.
func (p *Parser) StripContext(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var err error
	p.rules.Each(func(name string, rule Rule) {
		if err != nil {
			return
		}
		source, err = applyUntilFixpointContext(ctx, rule.fold, rule.contentTmpl, source)
		if err != nil {
			err = fmt.Errorf("strip rule %s: %w", name, err)
		}
	})
	if err != nil {
		return "", err
	}
	return source, nil
}

// Only restricts the Active Set to the named rules, in table order.
// Unknown names are ignored.
func (p *Parser) Only(names ...string) *Parser {
	p.active = p.rules.Only(names...)
	return p
}

// Except removes the named rules from the Active Set, keeping table order.
// The Active Set is recomputed from the full table.
func (p *Parser) Except(names ...string) *Parser {
	p.active = p.rules.Except(names...)
	return p
}

// ActiveRules returns a copy of the Active Set.
func (p *Parser) ActiveRules() *Table {
	return p.active.Clone()
}

// Rules returns a copy of the full rule table.
func (p *Parser) Rules() *Table {
	return p.rules.Clone()
}

// RegisterRule adds or overwrites the rule called name in both the table
// and the Active Set, so it is active even if an earlier Except named it.
// An overwritten rule keeps its position. A name absent from the Active Set
// is appended to it.
func (p *Parser) RegisterRule(name, pattern, replace, content string) error {
	rule, err := NewRule(pattern, replace, content)
	if err != nil {
		return fmt.Errorf("register rule %s: %w", name, err)
	}

	p.rules.Set(name, rule)
	p.active.Set(name, rule)
	return nil
}

// Clone returns an independent copy of the parser.
func (p *Parser) Clone() *Parser {
	return &Parser{
		rules:  p.rules.Clone(),
		active: p.active.Clone(),
	}
}
