package compiler

import (
	"fmt"

	"github.com/roach88/vdgen/internal/ir"
)

// Lint codes (W100-W199). Findings never stop a conversion; they are
// reported next to it.
const (
	WarnAlphaRange      = "W101" // fill or stroke alpha outside [0, 1]
	WarnEmptyGroup      = "W102" // group without paths
	WarnEmptyPath       = "W103" // path data without commands
	WarnNoInitialMoveTo = "W104" // path does not start with a moveTo
)

// ValidationError is a lint finding on a compiled Vector.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate lints a compiled Vector and returns every finding in document
// order. Alpha values are passed through to generated code unchanged, so an
// out-of-range alpha is only a warning.
func Validate(v *ir.Vector) []ValidationError {
	var errs []ValidationError
	for i, node := range v.Nodes {
		switch n := node.(type) {
		case *ir.Path:
			errs = append(errs, validatePath(n, fmt.Sprintf("nodes[%d]", i))...)
		case *ir.Group:
			if len(n.Paths) == 0 {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("nodes[%d]", i),
					Message: "group has no paths",
					Code:    WarnEmptyGroup,
				})
			}
			for j, path := range n.Paths {
				errs = append(errs, validatePath(path, fmt.Sprintf("nodes[%d].paths[%d]", i, j))...)
			}
		}
	}
	return errs
}

func validatePath(p *ir.Path, field string) []ValidationError {
	var errs []ValidationError

	for _, a := range []struct {
		name  string
		value float32
	}{
		{"fill_alpha", p.FillAlpha},
		{"stroke_alpha", p.StrokeAlpha},
	} {
		if a.value < 0 || a.value > 1 {
			errs = append(errs, ValidationError{
				Field:   field + "." + a.name,
				Message: fmt.Sprintf("alpha %g is outside [0, 1]", a.value),
				Code:    WarnAlphaRange,
			})
		}
	}

	if len(p.Nodes) == 0 {
		errs = append(errs, ValidationError{
			Field:   field + ".nodes",
			Message: "path data is empty",
			Code:    WarnEmptyPath,
		})
		return errs
	}
	if p.Nodes[0].Command() != ir.CmdMoveTo {
		errs = append(errs, ValidationError{
			Field:   field + ".nodes[0]",
			Message: fmt.Sprintf("path starts with %s instead of moveTo", p.Nodes[0].Command()),
			Code:    WarnNoInitialMoveTo,
		})
	}
	return errs
}
