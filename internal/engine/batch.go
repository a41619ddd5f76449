package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/roach88/vdgen/internal/ir"
	"github.com/roach88/vdgen/internal/source"
)

// BatchOptions configure Batch.
type BatchOptions struct {
	// Theme is used for sources whose theme is not detected.
	Theme ir.Theme

	// DetectTheme takes the theme from the nearest directory named after
	// a theme package ("outlined", "twotone", ...).
	DetectTheme bool

	// CheckThemes runs the theme coverage check over converted icons.
	CheckThemes bool

	// Preprocess rewrites white path colours to black before parsing.
	Preprocess bool
}

// Item is the outcome of one source in a batch.
type Item struct {
	Source string
	Result *Result
	Err    error
}

// BatchReport summarizes a batch.
type BatchReport struct {
	Run ir.Run

	// Items are sorted by source path.
	Items []Item

	// Failed counts items with an error.
	Failed int

	// Coverage is the theme coverage result when CheckThemes is set.
	// A nil Coverage means every theme holds the same icons.
	Coverage error
}

// Batch converts every icon file under root.
//
// Sources are read, parsed and generated by a pool of workers. Once the
// tree is exhausted, results are recorded with the sink in source-path
// order. A failing source never stops the batch; it is reported in its
// Item. Batch returns an error only when the walk fails or ctx is
// cancelled.
func (e *Engine) Batch(ctx context.Context, root string, opts BatchOptions) (*BatchReport, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	paths, errc := source.Walk(ctx, root)

	items := make(chan Item)
	var wg sync.WaitGroup
	wg.Add(e.workers)
	for i := 0; i < e.workers; i++ {
		go func() {
			defer wg.Done()
			e.consume(ctx, paths, items, opts)
		}()
	}
	go func() {
		wg.Wait()
		close(items)
	}()

	var collected []Item
	for item := range items {
		collected = append(collected, item)
	}

	// Check whether the walk failed.
	if err := <-errc; err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].Source < collected[j].Source
	})

	report := &BatchReport{Run: e.run, Items: collected}
	var icons []ir.Icon
	for i := range report.Items {
		item := &report.Items[i]
		if item.Err == nil {
			if err := e.record(ctx, item.Result); err != nil {
				item.Result = nil
				item.Err = err
			}
		}
		if item.Err != nil {
			report.Failed++
			e.logger.Warn("conversion failed", "source", item.Source, "error", item.Err)
			continue
		}
		icons = append(icons, item.Result.Icon)
	}

	if opts.CheckThemes {
		report.Coverage = source.CheckThemeCoverage(icons)
	}

	e.logger.Info("batch finished",
		"run", e.run.Token,
		"converted", len(report.Items)-report.Failed,
		"failed", report.Failed,
	)
	return report, nil
}

// consume reads source paths and generates them until paths is closed
// or ctx is cancelled.
func (e *Engine) consume(ctx context.Context, paths <-chan string, items chan<- Item, opts BatchOptions) {
	for path := range paths {
		item := Item{Source: path}
		item.Result, item.Err = e.generateSource(ctx, path, opts)

		select {
		case items <- item:
		case <-ctx.Done():
			return
		}
	}
}

func (e *Engine) generateSource(ctx context.Context, path string, opts BatchOptions) (*Result, error) {
	icon, err := source.LoadIcon(ctx, e.provider, path, e.loadOptions(path, opts.Theme, opts.DetectTheme, opts.Preprocess))
	if err != nil {
		return nil, &ConversionError{Source: path, Stage: StageRead, Err: err}
	}
	return e.Generate(icon)
}

func (e *Engine) loadOptions(path string, theme ir.Theme, detect, preprocess bool) source.LoadOptions {
	if detect {
		if t, ok := source.ThemeFromPath(path); ok {
			theme = t
		}
	}
	return source.LoadOptions{Theme: theme, Preprocess: preprocess}
}
