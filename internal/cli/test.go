package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/vdgen/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // case filter (glob pattern)
}

// TestResult holds the overall test result.
type TestResult struct {
	Cases  []*harness.Result `json:"cases"`
	Passed int               `json:"passed"`
	Failed int               `json:"failed"`
	Total  int               `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <cases-dir>",
		Short: "Run conformance cases",
		Long: `Run conformance cases against the converter.

Each YAML case names an icon source and its expected outcome: the
generated package and file, the error kind and position for invalid
icons, lint warnings, and optionally a golden file holding the exact
generated source.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Command error (invalid paths, malformed cases, etc.)

Examples:
  vdgen test ./testdata/conformance
  vdgen test ./testdata/conformance --filter "filled_*"
  vdgen test ./testdata/conformance --update
  vdgen test ./testdata/conformance --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter cases by glob pattern on their name")

	return cmd
}

func runTests(cmd *cobra.Command, opts *TestOptions, casesDir string) error {
	f := opts.formatter(cmd)

	// Validate directory
	if _, err := os.Stat(casesDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("cases directory not found: %s", casesDir))
	}

	cases, err := harness.LoadCases(casesDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load cases", err)
	}
	cases, err = filterCases(cases, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid filter", err)
	}

	if len(cases) == 0 {
		if f.IsJSON() {
			return f.Success(TestResult{Cases: []*harness.Result{}})
		}
		return f.Success("No cases found.")
	}

	results, err := harness.RunAll(commandContext(cmd), cases, harness.Options{UpdateGolden: opts.Update})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run cases", err)
	}

	result := TestResult{Cases: results, Total: len(results)}
	for _, r := range results {
		if r.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if err := outputTestResult(f, result, opts.Update); err != nil {
		return err
	}
	if result.Failed > 0 {
		return reported(NewExitError(ExitFailure, fmt.Sprintf("%d of %d cases failed", result.Failed, result.Total)))
	}
	return nil
}

// filterCases keeps the cases whose name matches pattern.
func filterCases(cases []*harness.Case, pattern string) ([]*harness.Case, error) {
	if pattern == "" {
		return cases, nil
	}
	var kept []*harness.Case
	for _, c := range cases {
		matched, err := filepath.Match(pattern, c.Name)
		if err != nil {
			return nil, err
		}
		if matched {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

func outputTestResult(f *OutputFormatter, result TestResult, updated bool) error {
	if f.IsJSON() {
		var cliErr *CLIError
		if result.Failed > 0 {
			cliErr = &CLIError{
				Code:    ErrCodeTestFailed,
				Message: fmt.Sprintf("%d of %d cases failed", result.Failed, result.Total),
			}
		}
		return f.Result(result.Failed == 0, result, cliErr)
	}

	var b strings.Builder
	for _, r := range result.Cases {
		if r.Pass {
			fmt.Fprintf(&b, "%s %s\n", f.Mark(true), r.Name)
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", f.Mark(false), r.Name)
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "  %s\n", e)
		}
	}
	fmt.Fprintf(&b, "\n%d passed, %d failed, %d total", result.Passed, result.Failed, result.Total)
	if updated {
		b.WriteString(" (golden files updated)")
	}
	return f.Success(b.String())
}
