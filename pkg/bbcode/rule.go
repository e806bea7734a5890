package bbcode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// caseInsensitivePrefix turns a pattern into its case-folding form.
const caseInsensitivePrefix = "(?i)"

// Rule is a single tag transformation: a match pattern, the HTML
// replacement template and the template used when stripping tags.
//
// Rules are immutable. Both the case-sensitive and the case-insensitive
// forms of the pattern are compiled when the rule is created.
type Rule struct {
	pattern string
	replace string
	content string

	exact *regexp.Regexp
	fold  *regexp.Regexp

	replaceTmpl string
	contentTmpl string
}

// NewRule compiles pattern and validates both templates against its
// capture groups.
//
// Templates reference groups positionally with $1, ${1} or \1. A $ that
// does not introduce a group index is kept as literal text.
func NewRule(pattern, replace, content string) (Rule, error) {
	exact, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}

	fold, err := regexp.Compile(caseInsensitivePrefix + pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("compile case-insensitive pattern %q: %w", pattern, err)
	}

	groups := exact.NumSubexp()

	replaceTmpl, replaceMax := normalizeTemplate(replace)
	if replaceMax > groups {
		return Rule{}, &PlaceholderError{Template: replace, Index: replaceMax, Groups: groups}
	}

	contentTmpl, contentMax := normalizeTemplate(content)
	if contentMax > groups {
		return Rule{}, &PlaceholderError{Template: content, Index: contentMax, Groups: groups}
	}

	return Rule{
		pattern:     pattern,
		replace:     replace,
		content:     content,
		exact:       exact,
		fold:        fold,
		replaceTmpl: replaceTmpl,
		contentTmpl: contentTmpl,
	}, nil
}

// MustRule is like NewRule but panics on error.
func MustRule(pattern, replace, content string) Rule {
	rule, err := NewRule(pattern, replace, content)
	if err != nil {
		panic(err)
	}
	return rule
}

// Pattern returns the pattern as authored.
func (r Rule) Pattern() string { return r.pattern }

// Replace returns the HTML replacement template as authored.
func (r Rule) Replace() string { return r.replace }

// Content returns the content-only template as authored.
func (r Rule) Content() string { return r.content }

// Groups returns the number of capture groups in the pattern.
func (r Rule) Groups() int {
	if r.exact == nil {
		return 0
	}
	return r.exact.NumSubexp()
}

// matcher returns the compiled pattern for the requested case mode.
func (r Rule) matcher(caseInsensitive bool) *regexp.Regexp {
	if caseInsensitive {
		return r.fold
	}
	return r.exact
}

// PlaceholderError reports a template referencing a capture group the
// pattern does not have.
type PlaceholderError struct {
	Template string
	Index    int
	Groups   int
}

func (e *PlaceholderError) Error() string {
	return fmt.Sprintf("template %q references group %d but pattern has %d", e.Template, e.Index, e.Groups)
}

// normalizeTemplate rewrites $n, ${n} and \n placeholders into the ${n}
// form understood by regexp.Expand and escapes every other $. It returns
// the rewritten template and the highest group index referenced.
//
// Up to two digits are consumed after $ or \, so $12 means group 12.
func normalizeTemplate(tmpl string) (string, int) {
	var out strings.Builder
	out.Grow(len(tmpl) + 8)

	highest := 0
	emit := func(digits string) {
		idx, _ := strconv.Atoi(digits)
		if idx > highest {
			highest = idx
		}
		out.WriteString("${")
		out.WriteString(strconv.Itoa(idx))
		out.WriteByte('}')
	}

	for i := 0; i < len(tmpl); i++ {
		ch := tmpl[i]

		switch {
		case ch == '$' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			end := strings.IndexByte(tmpl[i+2:], '}')
			if end > 0 && end <= 2 && allDigits(tmpl[i+2:i+2+end]) {
				emit(tmpl[i+2 : i+2+end])
				i += 2 + end
				continue
			}
			out.WriteString("$$")

		case (ch == '$' || ch == '\\') && i+1 < len(tmpl) && isDigit(tmpl[i+1]):
			n := 1
			if i+2 < len(tmpl) && isDigit(tmpl[i+2]) {
				n = 2
			}
			emit(tmpl[i+1 : i+1+n])
			i += n

		case ch == '$':
			out.WriteString("$$")

		default:
			out.WriteByte(ch)
		}
	}

	return out.String(), highest
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func allDigits(s string) bool {
	for i := range len(s) {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}
