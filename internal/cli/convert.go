package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/vdgen/internal/ir"
	"github.com/roach88/vdgen/internal/source"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Theme         string
	Name          string
	Out           string
	DB            string
	PackagePrefix string
	Stdout        bool
	ByPackage     bool
	Preprocess    bool
}

// ConvertResult is the JSON payload of a successful conversion.
type ConvertResult struct {
	Run      ir.Run      `json:"run"`
	Artifact ir.Artifact `json:"artifact"`
	Path     string      `json:"path,omitempty"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <file.xml|->",
		Short: "Convert one vector drawable",
		Long: `Convert one vector drawable into a Kotlin ImageVector source file.

The icon name comes from the file name (arrow_back.xml becomes
ArrowBack) unless --name is given. "-" reads standard input and
requires --name.

Exit codes:
  0 - Icon converted
  1 - The icon is not a valid vector drawable
  2 - Command error (bad flags, config, output or database)

Examples:
  vdgen convert res/drawable/menu.xml
  vdgen convert home.xml --theme twotone --out ./generated
  vdgen convert - --name Menu --stdout < menu.xml
  vdgen convert menu.xml --db history.db --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Theme, "theme", "", "icon theme (filled|outlined|rounded|twotone|sharp)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "icon name (default: derived from the file name)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output directory (default: current directory)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record the run in this history database")
	cmd.Flags().StringVar(&opts.PackagePrefix, "package-prefix", "", "package prefix of generated files")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "write the generated source to standard output")
	cmd.Flags().BoolVar(&opts.ByPackage, "by-package", false, "nest output files in package directories")
	cmd.Flags().BoolVar(&opts.Preprocess, "preprocess", true, "rewrite white path colours to black")

	return cmd
}

func runConvert(cmd *cobra.Command, opts *ConvertOptions, name string) error {
	f := opts.formatter(cmd)

	if opts.Stdout && f.IsJSON() {
		return invalid(f, "convert", errors.New("--stdout cannot be combined with --format json"))
	}
	if name == source.Stdin && opts.Name == "" {
		return invalid(f, "convert", errors.New("--name is required when reading standard input"))
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return fail(f, "load config", err)
	}
	s, err := resolveSettings(cmd, cfg)
	if err != nil {
		return invalid(f, "convert", err)
	}
	if s.detectTheme {
		if theme, ok := source.ThemeFromPath(name); ok {
			s.theme = theme
		}
	}

	out, err := openOutputs(s, cmd.OutOrStdout(), opts.Stdout)
	if err != nil {
		return fail(f, "open outputs", err)
	}
	defer out.Close()

	eng := newEngine(f, s, out, cmd.InOrStdin())
	f.VerboseLog("Converting %s (theme %s, run %s)", name, s.theme.PackageName(), eng.Run().Token)

	res, err := eng.ConvertSource(commandContext(cmd), name, source.LoadOptions{
		Theme:      s.theme,
		Name:       opts.Name,
		Preprocess: s.preprocess,
	})
	if err != nil {
		return fail(f, "convert "+name, err)
	}

	if opts.Stdout {
		// The source itself is the output.
		for _, w := range res.Warnings {
			fmt.Fprintf(f.GetErrWriter(), "warning: %s\n", w)
		}
		return nil
	}

	result := ConvertResult{Run: eng.Run(), Artifact: res.Artifact, Path: out.path(res.Artifact)}
	if f.IsJSON() {
		return f.Success(result)
	}
	return f.Success(formatConverted(f, result))
}

func formatConverted(f *OutputFormatter, r ConvertResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s.%s", f.Mark(true), r.Artifact.Package, strings.TrimSuffix(r.Artifact.FileName, ".kt"))
	if r.Path != "" {
		fmt.Fprintf(&b, " -> %s", r.Path)
	}
	for _, w := range r.Artifact.Warnings {
		fmt.Fprintf(&b, "\n  warning: %s", w)
	}
	return b.String()
}
