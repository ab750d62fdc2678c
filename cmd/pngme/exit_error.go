// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io/fs"

	"github.com/pngme/pngme/internal/config"
	"github.com/pngme/pngme/internal/secret"
	"github.com/pngme/pngme/pkg/pngfile"
	"github.com/pngme/pngme/pkg/types"
)

// Aliases so handlers read naturally.
const (
	ExitFailure  = types.ExitFailure
	ExitUsage    = types.ExitUsage
	ExitNotFound = types.ExitNotFound
	ExitCorrupt  = types.ExitCorrupt
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit status " + e.Code.String()
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// processExitCode returns the status the process exits with after the
// command tree returned err. Errors that never reached a handler (unknown
// flags, wrong argument counts) are usage errors. An ExitError carrying a
// code that is out of range or zero is reported as a generic failure.
func processExitCode(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		return ExitUsage
	}
	if exitErr.Code.Validate() != nil || exitErr.Code.IsSuccess() {
		return ExitFailure
	}
	return exitErr.Code
}

// exitCodeFor classifies err into the process exit status.
func exitCodeFor(err error) types.ExitCode {
	switch {
	case err == nil:
		return types.ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitFailure
	case errors.Is(err, fs.ErrNotExist):
		return ExitNotFound
	case errors.Is(err, secret.ErrReservedTypeCode),
		errors.Is(err, pngfile.ErrUnknownTextEncoding),
		errors.Is(err, config.ErrInvalidOutputFormat):
		return ExitUsage
	}

	switch pngfile.Kind(err) {
	case pngfile.KindChunkNotFound:
		return ExitNotFound
	case pngfile.KindInvalidSignature, pngfile.KindChecksumMismatch, pngfile.KindUnexpectedEOF:
		return ExitCorrupt
	case pngfile.KindInvalidLength, pngfile.KindInvalidTypeCode, pngfile.KindInvalidPayloadEncoding:
		return ExitUsage
	default:
		return ExitFailure
	}
}
