package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/vdgen/internal/engine"
	"github.com/roach88/vdgen/internal/ir"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Theme         string
	Out           string
	DB            string
	PackagePrefix string
	Workers       int
	ByPackage     bool
	CheckThemes   bool
	DetectTheme   bool
	Preprocess    bool
}

// BatchItem is one source in a batch result.
type BatchItem struct {
	Source   string       `json:"source"`
	Artifact *ir.Artifact `json:"artifact,omitempty"`
	Path     string       `json:"path,omitempty"`
	Error    string       `json:"error,omitempty"`
	Code     string       `json:"code,omitempty"`
}

// BatchResult holds the overall batch result.
type BatchResult struct {
	Run       ir.Run      `json:"run"`
	Items     []BatchItem `json:"items"`
	Converted int         `json:"converted"`
	Failed    int         `json:"failed"`
	Total     int         `json:"total"`
	Coverage  string      `json:"coverage,omitempty"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Convert every vector drawable under a directory",
		Long: `Convert every .xml file under a directory tree.

Files are converted concurrently and recorded in source path order, so
a batch over the same tree always produces the same artifacts. A file
that fails to convert is reported and the batch continues.

Without --by-package every file lands directly in --out. An icon whose
file was already generated from another source in the same batch (menu.xml
in both filled/ and outlined/, say) fails with E007 instead of replacing it.

Exit codes:
  0 - Every icon converted (and themes are covered with --check-themes)
  1 - One or more icons failed, or theme coverage is incomplete
  2 - Command error (invalid paths, config, output or database)

Examples:
  vdgen batch ./icons --out ./generated
  vdgen batch ./icons --detect-theme --check-themes --by-package
  vdgen batch ./icons --db history.db --workers 4 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Theme, "theme", "", "theme for icons whose theme is not detected")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output directory (default: current directory)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record the run in this history database")
	cmd.Flags().StringVar(&opts.PackagePrefix, "package-prefix", "", "package prefix of generated files")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "j", 0, "concurrent conversions (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.ByPackage, "by-package", false, "nest output files in package directories")
	cmd.Flags().BoolVar(&opts.CheckThemes, "check-themes", false, "fail unless every theme holds the same icons")
	cmd.Flags().BoolVar(&opts.DetectTheme, "detect-theme", false, "take each icon's theme from its directory name")
	cmd.Flags().BoolVar(&opts.Preprocess, "preprocess", true, "rewrite white path colours to black")

	return cmd
}

func runBatch(cmd *cobra.Command, opts *BatchOptions, root string) error {
	f := opts.formatter(cmd)

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("source directory not found: %s", root))
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return fail(f, "load config", err)
	}
	s, err := resolveSettings(cmd, cfg)
	if err != nil {
		return invalid(f, "batch", err)
	}

	out, err := openOutputs(s, cmd.OutOrStdout(), false)
	if err != nil {
		return fail(f, "open outputs", err)
	}
	defer out.Close()

	eng := newEngine(f, s, out, cmd.InOrStdin())
	f.VerboseLog("Converting %s (run %s)", root, eng.Run().Token)

	report, err := eng.Batch(commandContext(cmd), root, engine.BatchOptions{
		Theme:       s.theme,
		DetectTheme: s.detectTheme,
		CheckThemes: opts.CheckThemes,
		Preprocess:  s.preprocess,
	})
	if err != nil {
		return fail(f, "batch "+root, err)
	}

	result := newBatchResult(report, out)
	if err := writeBatchResult(f, result); err != nil {
		return err
	}

	switch {
	case result.Failed > 0:
		return reported(NewExitError(ExitFailure, fmt.Sprintf("%d of %d icons failed", result.Failed, result.Total)))
	case report.Coverage != nil:
		return reported(WrapExitError(ExitFailure, "theme coverage incomplete", report.Coverage))
	}
	return nil
}

func newBatchResult(report *engine.BatchReport, out *outputs) BatchResult {
	result := BatchResult{
		Run:    report.Run,
		Items:  make([]BatchItem, 0, len(report.Items)),
		Failed: report.Failed,
		Total:  len(report.Items),
	}
	result.Converted = result.Total - result.Failed
	if report.Coverage != nil {
		result.Coverage = report.Coverage.Error()
	}

	for _, item := range report.Items {
		bi := BatchItem{Source: item.Source}
		if item.Err != nil {
			bi.Error = item.Err.Error()
			bi.Code, _ = classify(item.Err)
		} else {
			a := item.Result.Artifact
			bi.Artifact = &a
			bi.Path = out.path(a)
		}
		result.Items = append(result.Items, bi)
	}
	return result
}

func writeBatchResult(f *OutputFormatter, result BatchResult) error {
	if f.IsJSON() {
		ok := result.Failed == 0 && result.Coverage == ""
		var cliErr *CLIError
		switch {
		case result.Failed > 0:
			cliErr = &CLIError{
				Code:    ErrCodeConversionFailed,
				Message: fmt.Sprintf("%d of %d icons failed", result.Failed, result.Total),
			}
		case result.Coverage != "":
			cliErr = &CLIError{Code: ErrCodeThemeCoverage, Message: result.Coverage}
		}
		return f.Result(ok, result, cliErr)
	}

	var b strings.Builder
	for _, item := range result.Items {
		if item.Error != "" {
			fmt.Fprintf(&b, "%s %s\n  %s\n", f.Mark(false), item.Source, item.Error)
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", f.Mark(true), item.Source)
		for _, w := range item.Artifact.Warnings {
			fmt.Fprintf(&b, "  warning: %s\n", w)
		}
	}
	if result.Coverage != "" {
		fmt.Fprintf(&b, "%s %s\n", f.Mark(false), result.Coverage)
	}
	fmt.Fprintf(&b, "\n%d converted, %d failed, %d total", result.Converted, result.Failed, result.Total)
	return f.Success(b.String())
}
