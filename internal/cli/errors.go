package cli

import (
	"errors"
	"io/fs"

	"github.com/roach88/vdgen/internal/compiler"
	"github.com/roach88/vdgen/internal/config"
	"github.com/roach88/vdgen/internal/engine"
	"github.com/roach88/vdgen/internal/pathdata"
	"github.com/roach88/vdgen/internal/source"
	"github.com/roach88/vdgen/internal/store"
)

// Error codes reported in CLIError.Code.
const (
	ErrCodeGeneric          = "E001"
	ErrCodeInvalidArgument  = "E002"
	ErrCodeNotFound         = "E005"
	ErrCodeWriteFailed      = "E007"
	ErrCodeConversionFailed = "E200"
	ErrCodeStructural       = "E201"
	ErrCodeMissingAttribute = "E202"
	ErrCodePathSyntax       = "E203"
	ErrCodeThemeCoverage    = "E204"
	ErrCodeConfigInvalid    = "E301"
	ErrCodeTestFailed       = "E401"
)

// classify maps an error to its CLI error code and exit code. Bad input
// icons exit with ExitFailure; everything the user must fix in the
// invocation or environment exits with ExitCommandError.
func classify(err error) (string, int) {
	var (
		cfgErr      *config.Error
		syntaxErr   *pathdata.SyntaxError
		missingErr  *compiler.MissingAttributeError
		structErr   *compiler.StructuralError
		coverageErr *source.CoverageError
	)
	switch {
	case errors.As(err, &cfgErr):
		return ErrCodeConfigInvalid, ExitCommandError
	case engine.IsWriteError(err):
		return ErrCodeWriteFailed, ExitCommandError
	case errors.As(err, &syntaxErr):
		return ErrCodePathSyntax, ExitFailure
	case errors.As(err, &missingErr):
		return ErrCodeMissingAttribute, ExitFailure
	case errors.As(err, &structErr):
		return ErrCodeStructural, ExitFailure
	case errors.As(err, &coverageErr):
		return ErrCodeThemeCoverage, ExitFailure
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, store.ErrNotFound):
		return ErrCodeNotFound, ExitCommandError
	}
	return ErrCodeGeneric, GetExitCode(err)
}

// fail reports err through f and returns it as an ExitError carrying the
// classified exit code. A reporting failure is returned instead.
func fail(f *OutputFormatter, message string, err error) error {
	code, exit := classify(err)
	if outErr := f.Error(code, message+": "+err.Error(), nil); outErr != nil {
		return outErr
	}
	return reported(WrapExitError(exit, message, err))
}

// invalid reports a bad flag or argument and returns a command error.
func invalid(f *OutputFormatter, message string, err error) error {
	if outErr := f.Error(ErrCodeInvalidArgument, message+": "+err.Error(), nil); outErr != nil {
		return outErr
	}
	return reported(WrapExitError(ExitCommandError, message, err))
}
