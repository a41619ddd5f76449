package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/vdgen/internal/config"
)

// RootOptions are the persistent flags every subcommand sees.
type RootOptions struct {
	Verbose bool
	Format  string
	Config  string // empty searches the working directory
}

// ValidFormats are the accepted --format values.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the vdgen CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "vdgen",
		Short: "vdgen - Android vector drawables to Compose ImageVectors",
		Long: `Convert Android vector drawable XML into Kotlin source that builds
a Compose ImageVector, one file per icon and theme.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log progress and debug detail to stderr")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.Config, "config", "", "config file (default: vdgen.yaml, vdgen.yml or vdgen.toml in the working directory)")

	cmd.AddCommand(
		NewConvertCommand(opts),
		NewBatchCommand(opts),
		NewWatchCommand(opts),
		NewParseCommand(opts),
		NewPathDataCommand(opts),
		NewHistoryCommand(opts),
		NewTestCommand(opts),
	)
	return cmd
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// loadConfig reads the config file named by --config, or the default
// file in the working directory.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "working directory", err)
	}
	return config.Load(o.Config, dir)
}
