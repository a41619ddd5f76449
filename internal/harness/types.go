package harness

import "github.com/roach88/vdgen/internal/ir"

// Result is the outcome of running one case.
type Result struct {
	// Name is the case name.
	Name string `json:"name"`

	// Pass is true when every expectation held.
	Pass bool `json:"pass"`

	// Artifact is the recorded artifact of a successful conversion.
	Artifact *ir.Artifact `json:"artifact,omitempty"`

	// Warnings are the lint findings of the conversion.
	Warnings []string `json:"warnings,omitempty"`

	// ConversionError is the conversion error message, if any.
	ConversionError string `json:"conversion_error,omitempty"`

	// Errors lists failed expectations.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Output is the generated source.
	Output string `json:"-"`
}

// NewResult creates a new passing result.
// Used as the starting point for case execution.
func NewResult(name string) *Result {
	return &Result{
		Name:   name,
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
