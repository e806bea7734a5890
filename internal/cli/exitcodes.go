package cli

import (
	"context"
	"errors"

	"github.com/yaklabco/gobbcode/internal/configloader"
)

// Exit codes for gobbcode.
const (
	// ExitSuccess indicates every input converted.
	ExitSuccess = 0

	// ExitConversionErrors indicates at least one file failed to convert.
	ExitConversionErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitInterrupted indicates the run was cancelled, as by SIGINT.
	ExitInterrupted = 130
)

// Sentinel errors returned by commands so callers can pick an exit code.
var (
	// ErrConversionFailed is returned when one or more files failed.
	// The failures have already been reported.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrUsage marks an invalid combination of arguments or flags.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks a configuration that could not be loaded.
	ErrConfig = errors.New("invalid configuration")
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, ErrConversionFailed):
		return ExitConversionErrors
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}
