// Package langdetect guesses the programming language of a code snippet
// so that rendered [CODE] blocks can carry a highlighting class.
package langdetect

import (
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// minClassifierLength is the shortest snippet handed to the classifier;
// shorter input produces noise.
const minClassifierLength = 24

// defaultCandidates are the languages the classifier chooses between.
//
//nolint:gochecknoglobals // Read-only candidate list.
var defaultCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "PHP",
	"Ruby", "Rust", "Java", "C", "C++", "C#", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Lua",
}

// snippet holds the views of a code sample the heuristics look at.
type snippet struct {
	raw     string
	trimmed string
	upper   string
}

func newSnippet(code string) snippet {
	trimmed := strings.TrimSpace(code)
	return snippet{
		raw:     code,
		trimmed: trimmed,
		upper:   strings.ToUpper(trimmed),
	}
}

// heuristic reports a language when a snippet carries an unmistakable marker.
type heuristic struct {
	lang  string
	match func(s snippet) bool
}

//nolint:gochecknoglobals // Compiled once.
var (
	cIncludePattern = regexp.MustCompile(`(?m)^#include\s*[<"]`)
	cssRulePattern  = regexp.MustCompile(`(?s)^[.#]?[A-Za-z][\w\-.# ,:>]*\{[^{}]*:[^{}]*;[^{}]*\}`)
	yamlKeyPattern  = regexp.MustCompile(`(?m)^\s*(?:- )?[A-Za-z_][\w\-]*: \S`)
)

// heuristics run in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only heuristic table.
var heuristics = []heuristic{
	{"php", func(s snippet) bool { return strings.HasPrefix(s.trimmed, "<?php") }},
	{"go", func(s snippet) bool { return strings.HasPrefix(s.trimmed, "package ") }},
	{"html", func(s snippet) bool {
		lower := strings.ToLower(s.trimmed)
		return strings.HasPrefix(lower, "<!doctype html") ||
			strings.Contains(lower, "<html") ||
			strings.Contains(lower, "<body")
	}},
	{"python", func(s snippet) bool {
		return strings.Contains(s.raw, "__name__") ||
			(strings.Contains(s.raw, "def ") && strings.Contains(s.raw, "):")) ||
			(strings.HasPrefix(s.trimmed, "from ") && strings.Contains(s.raw, " import "))
	}},
	{"c", func(s snippet) bool { return cIncludePattern.MatchString(s.raw) }},
	{"json", func(s snippet) bool {
		return (strings.HasPrefix(s.trimmed, "{") || strings.HasPrefix(s.trimmed, "[")) &&
			strings.Contains(s.trimmed, `":`)
	}},
	{"dockerfile", func(s snippet) bool {
		return strings.HasPrefix(s.trimmed, "FROM ") && strings.Contains(s.raw, "\nRUN ")
	}},
	{"sql", func(s snippet) bool {
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE "} {
			if strings.HasPrefix(s.upper, verb) {
				return true
			}
		}
		return false
	}},
	{"rust", func(s snippet) bool {
		return strings.Contains(s.raw, "fn main()") ||
			strings.Contains(s.raw, "println!") ||
			strings.Contains(s.raw, "let mut ")
	}},
	{"css", func(s snippet) bool { return cssRulePattern.MatchString(s.trimmed) }},
	{"javascript", func(s snippet) bool {
		return strings.Contains(s.raw, "console.log") ||
			strings.Contains(s.raw, "=>") ||
			strings.Contains(s.raw, "function ")
	}},
	{"yaml", func(s snippet) bool { return len(yamlKeyPattern.FindAllString(s.raw, 2)) >= 2 }},
}

// Detect returns a lower-case language name for code, or Text.
//
// A shebang line is trusted first, then the marker heuristics, then the
// go-enry classifier when it is confident.
func Detect(code string) string {
	s := newSnippet(code)
	if s.trimmed == "" {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(s.trimmed)); safe {
		return normalize(lang)
	}

	for _, h := range heuristics {
		if h.match(s) {
			return h.lang
		}
	}

	if len(s.trimmed) < minClassifierLength {
		return Text
	}

	if lang, safe := enry.GetLanguageByClassifier([]byte(s.trimmed), defaultCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// ClassName returns the conventional highlighter class for lang, or the
// empty string for Text.
func ClassName(lang string) string {
	if lang == "" || lang == Text {
		return ""
	}
	return "language-" + lang
}

// normalize converts go-enry language names to highlighter names.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	case "C#":
		return "csharp"
	default:
		return strings.ToLower(lang)
	}
}
