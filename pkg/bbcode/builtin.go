package bbcode

// Built-in rule names.
const (
	RuleBold                 = "bold"
	RuleItalic               = "italic"
	RuleUnderline            = "underline"
	RuleLineThrough          = "linethrough"
	RuleSize                 = "size"
	RuleColor                = "color"
	RuleCenter               = "center"
	RuleLeft                 = "left"
	RuleRight                = "right"
	RuleQuote                = "quote"
	RuleNamedQuote           = "namedquote"
	RuleLink                 = "link"
	RuleNamedLink            = "namedlink"
	RuleImage                = "image"
	RuleOrderedListNumerical = "orderedlistnumerical"
	RuleOrderedListAlpha     = "orderedlistalpha"
	RuleUnorderedList        = "unorderedlist"
	RuleListItem             = "listitem"
	RuleCode                 = "code"
	RuleYouTube              = "youtube"
	RuleLineBreak            = "linebreak"
	RuleSub                  = "sub"
	RuleSup                  = "sup"
	RuleSmall                = "small"
	RuleFont                 = "font"
)

type builtinRule struct {
	name    string
	pattern string
	replace string
	content string
}

// builtinRules is the default rule table in application order.
//
// The list item rule is the only one without (?s): it stops at the end of
// the line. The named quote body is greedy, every other body is not.
//
//nolint:gochecknoglobals // Read-only rule table.
var builtinRules = []builtinRule{
	{RuleBold, `(?s)\[B\](.*?)\[/B\]`, `<strong>$1</strong>`, `$1`},
	{RuleItalic, `(?s)\[I\](.*?)\[/I\]`, `<em>$1</em>`, `$1`},
	{RuleUnderline, `(?s)\[U\](.*?)\[/U\]`, `<u>$1</u>`, `$1`},
	{RuleLineThrough, `(?s)\[S\](.*?)\[/S\]`, `<strike>$1</strike>`, `$1`},
	{RuleSize, `(?s)\[SIZE=([1-7])\](.*?)\[/SIZE\]`, `<font size="$1">$2</font>`, `$2`},
	{RuleColor, `(?s)\[COLOR=(#[A-f0-9]{6}|#[A-f0-9]{3})\](.*?)\[/COLOR\]`, `<font color="$1">$2</font>`, `$2`},
	{RuleCenter, `(?s)\[CENTER\](.*?)\[/CENTER\]`, `<div style="text-align:center;">$1</div>`, `$1`},
	{RuleLeft, `(?s)\[LEFT\](.*?)\[/LEFT\]`, `<div style="text-align:left;">$1</div>`, `$1`},
	{RuleRight, `(?s)\[RIGHT\](.*?)\[/RIGHT\]`, `<div style="text-align:right;">$1</div>`, `$1`},
	{RuleQuote, `(?s)\[QUOTE\](.*?)\[/QUOTE\]`, `<blockquote>$1</blockquote>`, `$1`},
	{RuleNamedQuote, `(?s)\[QUOTE=(.*?)\](.*)\[/QUOTE\]`, `<blockquote><small>$1</small>$2</blockquote>`, `$2`},
	{RuleLink, `(?s)\[URL\](.*?)\[/URL\]`, `<a href="$1" rel="nofollow">$1</a>`, `$1`},
	{RuleNamedLink, `(?s)\[URL='(.*?)'\](.*?)\[/URL\]`, `<a href="$1" rel="nofollow">$2</a>`, `$2`},
	{
		RuleImage, `(?s)\[IMG\](.*?)\[/IMG\]`,
		`<div><img class="lazy-image" data-original="$1" src="/images/global/90.gif"></div>`, `$1`,
	},
	{RuleOrderedListNumerical, `(?s)\[LIST=1\](.*?)\[/LIST\]`, `<ol>$1</ol>`, `$1`},
	{RuleOrderedListAlpha, `(?s)\[LIST=a\](.*?)\[/LIST\]`, `<ol type="a">$1</ol>`, `$1`},
	{RuleUnorderedList, `(?s)\[LIST\](.*?)\[/LIST\]`, `<ul>$1</ul>`, `$1`},
	{RuleListItem, `\[\*\](.*)`, `<li>$1</li>`, `$1`},
	{RuleCode, `(?s)\[CODE\](.*?)\[/CODE\]`, `<code>$1</code>`, `$1`},
	{
		RuleYouTube, `(?s)\[YOUTUBE\](.*?)\[/YOUTUBE\]`,
		`<iframe width="560" height="315" src="//www.youtube.com/embed/$1" frameborder="0" allowfullscreen></iframe>`, `$1`,
	},
	{RuleLineBreak, `\r\n`, `<br />`, ``},
	{RuleSub, `(?s)\[SUB\](.*?)\[/SUB\]`, `<sub>$1</sub>`, `$1`},
	{RuleSup, `(?s)\[SUP\](.*?)\[/SUP\]`, `<sup>$1</sup>`, `$1`},
	{RuleSmall, `(?s)\[SMALL\](.*?)\[/SMALL\]`, `<small>$1</small>`, `$1`},
	{RuleFont, `(?s)\[FONT=(.*?)\](.*?)\[/FONT\]`, `<font face="$1">$2</font>`, `$2`},
}

// builtinTable is compiled once; rules are immutable so copies share them.
//
//nolint:gochecknoglobals // Compiled once at init.
var builtinTable = func() *Table {
	table := NewTable()
	for _, br := range builtinRules {
		table.Set(br.name, MustRule(br.pattern, br.replace, br.content))
	}
	return table
}()

// Builtin returns a fresh copy of the built-in rule table.
func Builtin() *Table {
	return builtinTable.Clone()
}

// BuiltinNames returns the built-in rule names in application order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinRules))
	for _, br := range builtinRules {
		names = append(names, br.name)
	}
	return names
}
