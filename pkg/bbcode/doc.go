// Package bbcode converts BBCode markup to HTML with an ordered table of
// regular-expression rules.
//
// # Rules
//
// A Rule holds a pattern, an HTML replacement template and a content
// template. The built-in table has 25 rules (see BuiltinNames), applied in
// a fixed order:
//
//   - bold, italic, underline, linethrough: [B] [I] [U] [S]
//   - size, color: [SIZE=1-7] and [COLOR=#rgb] or [COLOR=#rrggbb]
//   - center, left, right: alignment blocks
//   - quote, namedquote: [QUOTE] and [QUOTE=author]
//   - link, namedlink: [URL]href[/URL] and [URL='href']text[/URL]
//   - image, youtube: [IMG] and [YOUTUBE]
//   - orderedlistnumerical, orderedlistalpha, unorderedlist, listitem
//   - code, linebreak, sub, sup, small, font
//
// # Application
//
// Render walks the Active Set in table order. Every rule is applied to the
// output of the previous rule and repeated until it stops matching. Lists
// do not track nesting; nested lists converge through repeated passes.
//
// Strip walks the full table case-insensitively and replaces each tag span
// with its content template, leaving the inner text.
//
//	p := bbcode.New()
//	html := p.Only("bold", "linebreak").Render("[B]hi[/B]\r\n", false)
//	// <strong>hi</strong><br />
//
// The package has no knowledge of any shared instance; see package facade
// for the process-wide binding.
package bbcode
