// Command gobbcode renders and strips BBCode from files, stdin or HTTP.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gobbcode/internal/cli"
	"github.com/yaklabco/gobbcode/internal/logging"
)

// Stamped by the stave build target.
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date}).Execute()

	// Per-file failures have already been reported by the batch reporter.
	if err != nil && !errors.Is(err, cli.ErrConversionFailed) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	os.Exit(cli.ExitCode(err))
}
