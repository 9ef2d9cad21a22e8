package cli

import (
	"errors"
	"os"
	"strconv"

	"github.com/yaklabco/linguo/internal/configloader"
	"github.com/yaklabco/linguo/pkg/fsutil"
)

// Exit codes for linguo.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a generic failure.
	ExitFailure = 1

	// ExitUsage indicates invalid command-line usage.
	ExitUsage = 2

	// ExitDataError indicates invalid configuration or detection data
	// (catalog, heuristics, model, filters).
	ExitDataError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitError carries the exit code a failed command should end with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

func usageError(err error) error { return withCode(ExitUsage, err) }

func dataError(err error) error { return withCode(ExitDataError, err) }

func ioError(err error) error { return withCode(ExitIOError, err) }

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	if errors.As(err, &validationErr) {
		return ExitDataError
	}

	switch {
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIOError
	default:
		return ExitFailure
	}
}
