package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gobbcode/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"empty", "", langdetect.Text},
		{"whitespace", "  \n\t", langdetect.Text},
		{"shebang bash", "#!/bin/bash\necho hello", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"php open tag", "<?php\necho $user['name'];", "php"},
		{"go package", "package main\n\nfunc main() {}\n", "go"},
		{"python def", "def foo():\n    pass\n", "python"},
		{"python from import", "from os import path\n", "python"},
		{"c include", "#include <stdio.h>\nint main(void) { return 0; }", "c"},
		{"json object", `{"key": "value", "n": 1}`, "json"},
		{"dockerfile", "FROM alpine:3.20\nRUN apk add curl", "dockerfile"},
		{"sql select", "select * from posts where id = 1", "sql"},
		{"rust main", "fn main() {\n    println!(\"hi\");\n}", "rust"},
		{"css rule", ".quote { color: #333; }", "css"},
		{"javascript arrow", "const f = () => 42;\nconsole.log(f());", "javascript"},
		{"yaml keys", "name: forum\nposts: 12\n", "yaml"},
		{"html document", "<!DOCTYPE html>\n<html><body></body></html>", "html"},
		{"short prose", "hello world", langdetect.Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langdetect.Detect(tt.code))
		})
	}
}

func TestClassName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "language-go", langdetect.ClassName("go"))
	assert.Empty(t, langdetect.ClassName(langdetect.Text))
	assert.Empty(t, langdetect.ClassName(""))
}

func BenchmarkDetect(b *testing.B) {
	code := "def hello():\n    print(\"Hello, World!\")\n\nif __name__ == \"__main__\":\n    hello()"
	for range b.N {
		langdetect.Detect(code)
	}
}
