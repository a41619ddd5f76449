package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/vdgen/internal/engine"
	"github.com/roach88/vdgen/internal/ir"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Theme         string
	Out           string
	DB            string
	PackagePrefix string
	ByPackage     bool
	DetectTheme   bool
	Preprocess    bool
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Convert vector drawables as they change",
		Long: `Watch a directory tree and convert every .xml file that is created
or written, until interrupted. All conversions belong to one run.

With --format json each conversion is printed as one JSON response.

Exit codes:
  0 - Stopped by interrupt (failed conversions are reported, not fatal)
  1 - The watcher or the outputs could not be set up
  2 - Command error (directory not found, bad config)

Examples:
  vdgen watch ./icons --out ./generated
  vdgen watch ./icons --detect-theme --db history.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Theme, "theme", "", "theme for icons whose theme is not detected")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output directory (default: current directory)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record the run in this history database")
	cmd.Flags().StringVar(&opts.PackagePrefix, "package-prefix", "", "package prefix of generated files")
	cmd.Flags().BoolVar(&opts.ByPackage, "by-package", false, "nest output files in package directories")
	cmd.Flags().BoolVar(&opts.DetectTheme, "detect-theme", false, "take each icon's theme from its directory name")
	cmd.Flags().BoolVar(&opts.Preprocess, "preprocess", true, "rewrite white path colours to black")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *WatchOptions, root string) error {
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
		return invalid(f, "watch", err)
	}

	out, err := openOutputs(s, cmd.OutOrStdout(), false)
	if err != nil {
		return fail(f, "open outputs", err)
	}
	defer out.Close()

	eng := newEngine(f, s, out, cmd.InOrStdin())
	run := eng.Run()

	w, err := eng.NewWatcher(root, engine.WatchOptions{
		Theme:       s.theme,
		DetectTheme: s.detectTheme,
		Preprocess:  s.preprocess,
		OnItem: func(item engine.Item) {
			reportWatchItem(f, out, run, item)
		},
	})
	if err != nil {
		return fail(f, "watch "+root, err)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f.VerboseLog("Watching %s (run %s), interrupt to stop", root, run.Token)
	return w.Run(ctx)
}

// reportWatchItem prints one conversion. Failures are reported and the
// watch goes on.
func reportWatchItem(f *OutputFormatter, out *outputs, run ir.Run, item engine.Item) {
	if item.Err != nil {
		code, _ := classify(item.Err)
		_ = f.Error(code, item.Err.Error(), nil)
		return
	}

	result := ConvertResult{Run: run, Artifact: item.Result.Artifact, Path: out.path(item.Result.Artifact)}
	if f.IsJSON() {
		_ = f.Success(result)
		return
	}
	_ = f.Success(formatConverted(f, result))
}
