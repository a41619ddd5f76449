package cli

import (
	"errors"
	"fmt"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/roach88/vdgen/internal/ir"
	"github.com/roach88/vdgen/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string
	Run   string // show one run's artifacts
	Name  string // filter artifacts by icon name
	Show  string // print one artifact's generated source
	Limit int
}

// HistoryRun is one run in the history output.
type HistoryRun struct {
	ir.Run
	Artifacts []ir.Artifact `json:"artifacts"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Query recorded runs",
		Long: `Query the runs and artifacts recorded with --db.

Without --run, lists runs newest first. With --run, lists the artifacts
of that run in the order they were recorded. --show prints the generated
source of one artifact.

Exit codes:
  0 - Query succeeded
  2 - Command error (no --db, database or run or artifact not found)

Examples:
  vdgen history --db history.db
  vdgen history --db history.db --run 019a... --format json
  vdgen history --db history.db --name Menu
  vdgen history --db history.db --show <artifact-id>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "history database (default: database from config)")
	cmd.Flags().StringVar(&opts.Run, "run", "", "run token")
	cmd.Flags().StringVar(&opts.Name, "name", "", "list artifacts of this icon across runs")
	cmd.Flags().StringVar(&opts.Show, "show", "", "artifact ID whose source to print")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of entries (0 for all)")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	f := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return fail(f, "load config", err)
	}
	db := stringFlag(cmd, "db", cfg.Database)
	if db == "" {
		return invalid(f, "history", errors.New("no database: pass --db or set database in the config"))
	}
	path, err := homedir.Expand(db)
	if err != nil {
		return invalid(f, "history", err)
	}
	s, err := store.OpenExisting(path)
	if err != nil {
		return fail(f, "open history", err)
	}
	defer s.Close()

	ctx := commandContext(cmd)
	switch {
	case opts.Show != "":
		a, err := s.ReadArtifact(ctx, opts.Show)
		if err != nil {
			return fail(f, "history", err)
		}
		if f.IsJSON() {
			return f.Success(struct {
				ir.Artifact
				Content string `json:"content"`
			}{a, a.Content})
		}
		fmt.Fprint(cmd.OutOrStdout(), a.Content)
		return nil

	case opts.Run != "":
		run, err := s.ReadRun(ctx, opts.Run)
		if err != nil {
			return fail(f, "history", err)
		}
		artifacts, err := s.ListArtifacts(ctx, store.ArtifactFilter{RunToken: run.Token, Name: opts.Name, Limit: opts.Limit})
		if err != nil {
			return fail(f, "history", err)
		}
		result := HistoryRun{Run: run, Artifacts: artifacts}
		if f.IsJSON() {
			return f.Success(result)
		}
		return f.Success(formatRun(result))

	case opts.Name != "":
		artifacts, err := s.ListArtifacts(ctx, store.ArtifactFilter{Name: opts.Name, Limit: opts.Limit})
		if err != nil {
			return fail(f, "history", err)
		}
		if f.IsJSON() {
			return f.Success(artifacts)
		}
		return f.Success(formatArtifacts(artifacts))
	}

	runs, err := s.ListRuns(ctx, opts.Limit)
	if err != nil {
		return fail(f, "history", err)
	}
	if f.IsJSON() {
		return f.Success(runs)
	}
	if len(runs) == 0 {
		return f.Success("No runs recorded.")
	}
	var b strings.Builder
	for i, r := range runs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  %d artifacts  generator %s  prefix %q", r.Token, r.Artifacts, r.GeneratorVersion, r.PackagePrefix)
	}
	return f.Success(b.String())
}

func formatRun(r HistoryRun) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (generator %s, IR %s)\n", r.Token, r.GeneratorVersion, r.IRVersion)
	b.WriteString(formatArtifacts(r.Artifacts))
	return b.String()
}

func formatArtifacts(artifacts []ir.Artifact) string {
	if len(artifacts) == 0 {
		return "No artifacts."
	}
	var b strings.Builder
	for i, a := range artifacts {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%4d  %s.%s  %s  %s", a.Seq, a.Package, strings.TrimSuffix(a.FileName, ".kt"), a.SourceFile, a.ID)
		if len(a.Warnings) > 0 {
			fmt.Fprintf(&b, "  (%d warnings)", len(a.Warnings))
		}
	}
	return b.String()
}
