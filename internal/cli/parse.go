package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/vdgen/internal/compiler"
	"github.com/roach88/vdgen/internal/ir"
	"github.com/roach88/vdgen/internal/pathdata"
	"github.com/roach88/vdgen/internal/source"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	Theme      string
	Name       string
	Preprocess bool
}

// ParseResult is the IR of one icon.
type ParseResult struct {
	Icon     ir.Icon    `json:"icon"`
	Vector   *ir.Vector `json:"vector"`
	Warnings []string   `json:"warnings"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <file.xml|->",
		Short: "Print the parsed IR of a vector drawable",
		Long: `Parse a vector drawable and print its intermediate representation
as JSON, without generating code.

Exit codes:
  0 - Icon parsed
  1 - Icon could not be parsed (bad path data, missing attributes, bad structure)
  2 - Command error (file not found, invalid flags)

Examples:
  vdgen parse menu.xml
  vdgen parse - --name Menu < menu.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Theme, "theme", "", "icon theme (filled|outlined|rounded|twotone|sharp)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "icon name (default: derived from the file name)")
	cmd.Flags().BoolVar(&opts.Preprocess, "preprocess", true, "rewrite white path colours to black")

	return cmd
}

func runParse(cmd *cobra.Command, opts *ParseOptions, name string) error {
	f := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return fail(f, "load config", err)
	}
	s, err := resolveSettings(cmd, cfg)
	if err != nil {
		return invalid(f, "parse", err)
	}

	provider := &source.FileProvider{In: cmd.InOrStdin()}
	icon, err := source.LoadIcon(commandContext(cmd), provider, name, source.LoadOptions{
		Theme:      s.theme,
		Name:       opts.Name,
		Preprocess: s.preprocess,
	})
	if err != nil {
		return fail(f, "read "+name, err)
	}

	v, err := compiler.CompileIcon(icon)
	if err != nil {
		return fail(f, "parse "+name, err)
	}

	result := ParseResult{Icon: icon, Vector: v, Warnings: []string{}}
	for _, w := range compiler.Validate(v) {
		result.Warnings = append(result.Warnings, w.Error())
	}

	if f.IsJSON() {
		return f.Success(result)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode IR: %w", err)
	}
	return f.Success(string(data))
}

// PathDataOptions holds flags for the pathdata command.
type PathDataOptions struct {
	*RootOptions
}

// PathDataResult is a parsed path data string.
type PathDataResult struct {
	Input string            `json:"input"`
	Nodes []json.RawMessage `json:"nodes"`
	Path  string            `json:"path"`
}

// NewPathDataCommand creates the pathdata command.
func NewPathDataCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PathDataOptions{RootOptions: rootOpts}

	return &cobra.Command{
		Use:   "pathdata <path-data>",
		Short: "Parse an SVG path data string",
		Long: `Parse an SVG path data string and print its nodes and their
normalized form, one command letter per node.

Exit codes:
  0 - Valid path data
  1 - Syntax error (the offset of the offending fragment is reported)

Examples:
  vdgen pathdata "M3,18h18v-2H3v2z"
  vdgen pathdata "M0,0L1,2,3" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPathData(cmd, opts, args[0])
		},
	}
}

func runPathData(cmd *cobra.Command, opts *PathDataOptions, data string) error {
	f := opts.formatter(cmd)

	nodes, err := pathdata.Parse(data)
	if err != nil {
		var syntaxErr *pathdata.SyntaxError
		if errors.As(err, &syntaxErr) && f.IsJSON() {
			if outErr := f.Error(ErrCodePathSyntax, err.Error(), map[string]any{
				"offset":   syntaxErr.Offset,
				"fragment": syntaxErr.Fragment,
			}); outErr != nil {
				return outErr
			}
			return reported(WrapExitError(ExitFailure, "pathdata", err))
		}
		return fail(f, "pathdata", err)
	}

	result := PathDataResult{Input: data, Nodes: make([]json.RawMessage, 0, len(nodes)), Path: pathdata.Format(nodes)}
	for _, n := range nodes {
		raw, err := ir.MarshalPathNode(n)
		if err != nil {
			return fmt.Errorf("encode node: %w", err)
		}
		result.Nodes = append(result.Nodes, raw)
	}

	if f.IsJSON() {
		return f.Success(result)
	}
	return f.Success(fmt.Sprintf("%s %d nodes\n%s", f.Mark(true), len(nodes), result.Path))
}
