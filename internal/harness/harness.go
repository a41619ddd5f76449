package harness

import (
	"context"
	"fmt"

	"github.com/roach88/vdgen/internal/codegen"
	"github.com/roach88/vdgen/internal/engine"
	"github.com/roach88/vdgen/internal/source"
	"github.com/roach88/vdgen/internal/sink"
	"github.com/roach88/vdgen/internal/store"
	"github.com/roach88/vdgen/internal/testutil"
)

// Options control a harness run.
type Options struct {
	// UpdateGolden rewrites golden files with the generated output instead
	// of comparing against them.
	UpdateGolden bool
}

// Run executes a case and returns its result.
//
// Each case runs in a fresh in-memory database for isolation.
// An error is returned only when the case could not be executed at all;
// failed expectations are reported in the Result.
func Run(ctx context.Context, c *Case, opts Options) (*Result, error) {
	st, err := store.Open(store.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	var provider source.Provider = source.NewFileProvider()
	if c.Source != "" {
		provider = source.MemProvider{c.sourceName(): c.Source}
	}

	theme, err := c.theme()
	if err != nil {
		return nil, err
	}

	eng := engine.New(provider, sink.NewStore(st),
		engine.WithLogger(testutil.DiscardLogger()),
		engine.WithRunTokenGenerator(testutil.RunToken(c.RunToken)),
		engine.WithClock(testutil.NewSeqClock()),
		engine.WithCodegenOptions(codegen.Options{PackagePrefix: c.packagePrefix()}),
	)

	res, convErr := eng.ConvertSource(ctx, c.sourceName(), source.LoadOptions{
		Theme:      theme,
		Name:       c.Icon,
		Preprocess: c.preprocess(),
	})

	result := NewResult(c.Name)
	if convErr != nil {
		result.ConversionError = convErr.Error()
	}
	if res != nil {
		a := res.Artifact
		result.Artifact = &a
		result.Warnings = res.Warnings
		result.Output = res.File.Content
	}

	actx := &AssertionContext{Store: st, Ctx: ctx, Run: eng.Run()}
	for _, msg := range EvaluateExpect(c.Expect, res, convErr, actx) {
		result.AddError(msg)
	}

	if c.Golden != "" && res != nil {
		if err := checkGolden(c.goldenPath(), res.File.Content, opts.UpdateGolden); err != nil {
			result.AddError(err.Error())
		}
	}

	return result, nil
}

// RunAll executes cases in order.
func RunAll(ctx context.Context, cases []*Case, opts Options) ([]*Result, error) {
	results := make([]*Result, 0, len(cases))
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r, err := Run(ctx, c, opts)
		if err != nil {
			return results, fmt.Errorf("case %s: %w", c.Name, err)
		}
		results = append(results, r)
	}
	return results, nil
}
