package configloader

import (
	"slices"
	"strings"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
)

// tagAliases maps BBCode tag names to the rule names that handle them.
// A tag with several forms (plain and named, or the list variants) expands
// to every rule for that tag.
//
//nolint:gochecknoglobals // Read-only lookup table.
var tagAliases = map[string][]string{
	"b":       {bbcode.RuleBold},
	"i":       {bbcode.RuleItalic},
	"u":       {bbcode.RuleUnderline},
	"s":       {bbcode.RuleLineThrough},
	"strike":  {bbcode.RuleLineThrough},
	"url":     {bbcode.RuleLink, bbcode.RuleNamedLink},
	"img":     {bbcode.RuleImage},
	"quote":   {bbcode.RuleQuote, bbcode.RuleNamedQuote},
	"*":       {bbcode.RuleListItem},
	"br":      {bbcode.RuleLineBreak},
	"newline": {bbcode.RuleLineBreak},
	"list": {
		bbcode.RuleOrderedListNumerical,
		bbcode.RuleOrderedListAlpha,
		bbcode.RuleUnorderedList,
		bbcode.RuleListItem,
	},
}

// ResolveRuleNames expands tag aliases in names against the known rule
// names. Exact rule names win over aliases. Names that match nothing are
// returned separately so callers can warn about them; the engine itself
// ignores unknown names.
func ResolveRuleNames(names []string, known []string) ([]string, []string) {
	var resolved, unknown []string

	add := func(name string) {
		if !slices.Contains(resolved, name) {
			resolved = append(resolved, name)
		}
	}

	for _, name := range names {
		if slices.Contains(known, name) {
			add(name)
			continue
		}

		if targets, ok := tagAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
			for _, target := range targets {
				add(target)
			}
			continue
		}

		unknown = append(unknown, name)
	}

	return resolved, unknown
}

// TagAliases returns the alias table keyed by tag name.
func TagAliases() map[string][]string {
	aliases := make(map[string][]string, len(tagAliases))
	for tag, targets := range tagAliases {
		aliases[tag] = slices.Clone(targets)
	}
	return aliases
}
