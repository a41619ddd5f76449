package cli

import (
	"context"
	"fmt"
	"io"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/roach88/vdgen/internal/codegen"
	"github.com/roach88/vdgen/internal/config"
	"github.com/roach88/vdgen/internal/engine"
	"github.com/roach88/vdgen/internal/ir"
	"github.com/roach88/vdgen/internal/sink"
	"github.com/roach88/vdgen/internal/source"
	"github.com/roach88/vdgen/internal/store"
)

// settings are the config values after command-line overrides.
type settings struct {
	theme       ir.Theme
	prefix      string
	out         string
	byPackage   bool
	db          string
	workers     int
	preprocess  bool
	detectTheme bool
}

// resolveSettings layers the flags set on cmd over cfg. Flags a command
// does not define keep the config value.
func resolveSettings(cmd *cobra.Command, cfg *config.Config) (settings, error) {
	s := settings{
		prefix:      stringFlag(cmd, "package-prefix", cfg.PackagePrefix),
		out:         stringFlag(cmd, "out", cfg.OutputDir),
		byPackage:   boolFlag(cmd, "by-package", cfg.ByPackage),
		db:          stringFlag(cmd, "db", cfg.Database),
		workers:     intFlag(cmd, "workers", cfg.Workers),
		preprocess:  boolFlag(cmd, "preprocess", cfg.Preprocess),
		detectTheme: boolFlag(cmd, "detect-theme", cfg.DetectTheme),
	}

	s.theme = ir.Filled
	var err error
	switch {
	case cmd.Flags().Changed("theme"):
		s.theme, err = ir.ParseTheme(stringFlag(cmd, "theme", ""))
	case cfg.Theme != "":
		s.theme, err = cfg.ThemeValue()
	}
	if err != nil {
		return settings{}, err
	}

	// An explicit --theme wins over directory detection.
	if cmd.Flags().Changed("theme") {
		s.detectTheme = false
	}
	return s, nil
}

func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}

func boolFlag(cmd *cobra.Command, name string, fallback bool) bool {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}
	return fallback
}

func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return fallback
}

// outputs is the sink chain of one command.
type outputs struct {
	sink    engine.Sink
	dir     *sink.Dir
	history *store.Store
}

// openOutputs builds the sinks for s. Generated files go to s.out, or to
// w when toWriter is set; the run is recorded in s.db when it is set.
func openOutputs(s settings, w io.Writer, toWriter bool) (*outputs, error) {
	o := &outputs{}
	var chain sink.Multi

	if toWriter {
		chain = append(chain, sink.NewWriter(w))
	} else {
		out := s.out
		if out == "" {
			out = "."
		}
		dir, err := sink.NewDir(out, s.byPackage)
		if err != nil {
			return nil, err
		}
		o.dir = dir
		chain = append(chain, dir)
	}

	if s.db != "" {
		history, err := openStore(s.db)
		if err != nil {
			return nil, err
		}
		o.history = history
		chain = append(chain, sink.NewStore(history))
	}

	o.sink = chain
	return o, nil
}

// Close releases the history database, if any.
func (o *outputs) Close() error {
	if o.history == nil {
		return nil
	}
	return o.history.Close()
}

// path returns where an artifact was written, or "" when it went to a
// writer.
func (o *outputs) path(a ir.Artifact) string {
	if o.dir == nil {
		return ""
	}
	return o.dir.Path(a)
}

func openStore(path string) (*store.Store, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}
	return store.Open(expanded)
}

// newEngine builds an engine for s reading "-" from in and writing to o.
func newEngine(f *OutputFormatter, s settings, o *outputs, in io.Reader) *engine.Engine {
	opts := []engine.Option{
		engine.WithLogger(f.Logger()),
		engine.WithCodegenOptions(codegen.Options{PackagePrefix: s.prefix}),
	}
	if s.workers > 0 {
		opts = append(opts, engine.WithWorkers(s.workers))
	}
	return engine.New(&source.FileProvider{In: in}, o.sink, opts...)
}

// commandContext returns the command's context, or Background when the
// command runs without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
