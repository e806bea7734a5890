//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/gobbcode"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":     Build,
	"t":     Test.Default,
	"l":     Lint.Default,
	"c":     Check,
	"serve": Dev.Serve,
	"smoke": Dev.Smoke,
}

type (
	Test st.Namespace
	Lint st.Namespace
	Dev  st.Namespace
)

// Build compiles bin/gobbcode when any Go source changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/gobbcode")
}

// Install puts gobbcode in $GOBIN.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gobbcode")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Default runs the suite under gotestsum with the race detector.
func (Test) Default() error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go", "tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race", "-p", procs,
		"-coverprofile=coverage.out", "-covermode=atomic",
		"./...",
	)
}

// Engine runs only the rule engine and output tests, verbosely.
func (Test) Engine() error {
	return sh.RunV("go", "tool", "gotestsum", "-f", "testdox", "--",
		"./pkg/bbcode/...", "./pkg/output/...")
}

// Coverage writes coverage.html.
func (Test) Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Serve runs the HTTP service against a local Redis when REDIS_URL is set.
func (Dev) Serve() error {
	st.Deps(Build)
	env := map[string]string{}
	if url := os.Getenv("REDIS_URL"); url != "" {
		env["GOBBCODE_SERVER_REDIS_URL"] = url
	}
	return sh.RunWithV(env, binary, "serve", "--debug")
}

// Smoke pushes a sample post through every output format.
func (Dev) Smoke() error {
	st.Deps(Build)
	sample := "[B]bold[/B] [URL='https://example.com']link[/URL]\\n[LIST][*]one\\n[*]two\\n[/LIST]"
	for _, format := range []string{"html", "markdown", "text"} {
		out, err := sh.Output("sh", "-c",
			fmt.Sprintf("printf '%%b' %q | %s render --format %s", sample, binary, format))
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		fmt.Printf("%s:\n%s\n\n", format, out)
	}
	return nil
}

// ldflags injects version, commit and date into main.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, time.Now().UTC().Format(time.RFC3339))
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
