package harness

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/vdgen/internal/compiler"
	"github.com/roach88/vdgen/internal/engine"
	"github.com/roach88/vdgen/internal/ir"
	"github.com/roach88/vdgen/internal/pathdata"
	"github.com/roach88/vdgen/internal/store"
)

// AssertionError is a failed expectation.
type AssertionError struct {
	Check    string // Expect field that failed
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Check, e.Expected, e.Actual)
}

// AssertionContext gives assertions access to the case's store.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
	Run   ir.Run
}

// ErrorKind classifies a conversion error as one of the Error* kinds.
// Returns "" for errors of any other kind.
func ErrorKind(err error) string {
	var (
		syntaxErr  *pathdata.SyntaxError
		missingErr *compiler.MissingAttributeError
		structErr  *compiler.StructuralError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return ErrorPathSyntax
	case errors.As(err, &missingErr):
		return ErrorMissingAttribute
	case errors.As(err, &structErr):
		return ErrorStructural
	}
	return ""
}

// EvaluateExpect checks a conversion outcome against exp.
// Returns one message per failed expectation; empty when all hold.
func EvaluateExpect(exp Expect, res *engine.Result, convErr error, actx *AssertionContext) []string {
	var errs []string
	fail := func(check, expected, actual string) {
		errs = append(errs, (&AssertionError{Check: check, Expected: expected, Actual: actual}).Error())
	}

	if exp.Error != "" {
		if convErr == nil {
			fail("error", exp.Error+" error", "success")
			return errs
		}
		if kind := ErrorKind(convErr); kind != exp.Error {
			fail("error", exp.Error, fmt.Sprintf("%q (%v)", kind, convErr))
		}
		if exp.ErrorContains != "" && !strings.Contains(convErr.Error(), exp.ErrorContains) {
			fail("error_contains", fmt.Sprintf("%q", exp.ErrorContains), convErr.Error())
		}
		if exp.Line != 0 {
			if line, ok := errorLine(convErr); !ok || line != exp.Line {
				fail("line", fmt.Sprint(exp.Line), fmt.Sprint(line))
			}
		}
		if exp.Offset != nil {
			var se *pathdata.SyntaxError
			if !errors.As(convErr, &se) {
				fail("offset", fmt.Sprint(*exp.Offset), "no path syntax error")
			} else if se.Offset != *exp.Offset {
				fail("offset", fmt.Sprint(*exp.Offset), fmt.Sprint(se.Offset))
			}
		}
		if n := countArtifacts(actx); n != 0 {
			fail("artifacts", "none recorded", fmt.Sprintf("%d recorded", n))
		}
		return errs
	}

	if convErr != nil {
		fail("conversion", "success", convErr.Error())
		return errs
	}

	if exp.AutoMirrored != nil {
		mirrored := res.Vector.AutoMirrored || res.Icon.AutoMirrored
		if mirrored != *exp.AutoMirrored {
			fail("auto_mirrored", fmt.Sprint(*exp.AutoMirrored), fmt.Sprint(mirrored))
		}
	}
	if exp.Package != "" && res.File.Package != exp.Package {
		fail("package", exp.Package, res.File.Package)
	}
	if exp.FileName != "" && res.File.Name != exp.FileName {
		fail("file_name", exp.FileName, res.File.Name)
	}
	if exp.Nodes != nil && len(res.Vector.Nodes) != *exp.Nodes {
		fail("nodes", fmt.Sprint(*exp.Nodes), fmt.Sprint(len(res.Vector.Nodes)))
	}
	for _, frag := range exp.Contains {
		if !strings.Contains(res.File.Content, frag) {
			fail("contains", fmt.Sprintf("output to contain %q", frag), "no match")
		}
	}
	for _, frag := range exp.NotContains {
		if strings.Contains(res.File.Content, frag) {
			fail("not_contains", fmt.Sprintf("output not to contain %q", frag), "a match")
		}
	}
	if exp.Warnings != nil {
		codes := warningCodes(res.Warnings)
		if strings.Join(codes, ",") != strings.Join(exp.Warnings, ",") {
			fail("warnings", fmt.Sprint(exp.Warnings), fmt.Sprint(codes))
		}
	}

	errs = append(errs, assertRecorded(res, actx)...)
	return errs
}

// errorLine extracts the document line from structural errors.
func errorLine(err error) (int, bool) {
	var (
		missingErr *compiler.MissingAttributeError
		structErr  *compiler.StructuralError
	)
	switch {
	case errors.As(err, &missingErr):
		return missingErr.Line, true
	case errors.As(err, &structErr):
		return structErr.Line, true
	}
	return 0, false
}

// warningCodes extracts the "[Wxxx]" prefix of each warning.
func warningCodes(warnings []string) []string {
	codes := make([]string, 0, len(warnings))
	for _, w := range warnings {
		if strings.HasPrefix(w, "[") {
			if end := strings.IndexByte(w, ']'); end > 0 {
				codes = append(codes, w[1:end])
				continue
			}
		}
		codes = append(codes, w)
	}
	return codes
}

// assertRecorded checks that the store holds exactly the returned artifact.
func assertRecorded(res *engine.Result, actx *AssertionContext) []string {
	if actx == nil || actx.Store == nil {
		return nil
	}
	artifacts, err := actx.Store.ListArtifacts(actx.Ctx, store.ArtifactFilter{RunToken: actx.Run.Token})
	if err != nil {
		return []string{fmt.Sprintf("artifacts: %v", err)}
	}
	if len(artifacts) != 1 {
		return []string{(&AssertionError{Check: "artifacts", Expected: "1 recorded", Actual: fmt.Sprint(len(artifacts))}).Error()}
	}
	if got := artifacts[0]; got.ID != res.Artifact.ID || got.Content != res.File.Content {
		return []string{(&AssertionError{Check: "artifacts", Expected: res.Artifact.ID, Actual: got.ID}).Error()}
	}
	return nil
}

func countArtifacts(actx *AssertionContext) int {
	if actx == nil || actx.Store == nil {
		return 0
	}
	artifacts, err := actx.Store.ListArtifacts(actx.Ctx, store.ArtifactFilter{})
	if err != nil {
		return -1
	}
	return len(artifacts)
}
