package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/roach88/vdgen/internal/codegen"
	"github.com/roach88/vdgen/internal/compiler"
	"github.com/roach88/vdgen/internal/ir"
	"github.com/roach88/vdgen/internal/source"
)

// Sink receives every generated file together with the run it belongs to.
// Implementations live in the sink package.
type Sink interface {
	Write(ctx context.Context, run ir.Run, a ir.Artifact) error
}

// Engine converts icons within a single run.
//
// Thread-safety model:
//   - Generate(): safe from any goroutine (pure)
//   - Convert(), ConvertSource(): safe from any goroutine, but the sink
//     sees writes in call order only when calls are serialized
//   - Batch(), Watcher.Run(): serialize their own sink writes
type Engine struct {
	provider source.Provider
	sink     Sink
	logger   *slog.Logger
	clock    Sequencer
	run      ir.Run
	opts     codegen.Options
	workers  int

	runGen RunTokenGenerator
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithWorkers sets the batch worker count. Values below 1 are ignored.
//
// Default: runtime.NumCPU()
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithRunTokenGenerator sets the run token source. Default: UUIDv7Generator.
func WithRunTokenGenerator(gen RunTokenGenerator) Option {
	return func(e *Engine) {
		e.runGen = gen
	}
}

// WithClock sets the sequencer stamping artifacts. Default: NewClock().
func WithClock(clock Sequencer) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithCodegenOptions sets the code generator options.
func WithCodegenOptions(opts codegen.Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// New creates an Engine reading through provider and writing to sink.
// A nil sink discards generated files; results are still returned.
//
// The run token is drawn once, here.
func New(provider source.Provider, sink Sink, opts ...Option) *Engine {
	e := &Engine{
		provider: provider,
		sink:     sink,
		logger:   slog.Default(),
		clock:    NewClock(),
		workers:  runtime.NumCPU(),
		runGen:   UUIDv7Generator{},
	}

	for _, opt := range opts {
		opt(e)
	}

	e.run = ir.Run{
		Token:            e.runGen.Generate(),
		GeneratorVersion: ir.GeneratorVersion,
		IRVersion:        ir.IRVersion,
		PackagePrefix:    e.opts.PackagePrefix,
	}
	return e
}

// Run returns the run this engine records artifacts under.
func (e *Engine) Run() ir.Run {
	return e.run
}

// Result is one successful conversion.
type Result struct {
	Icon     ir.Icon      `json:"icon"`
	Vector   *ir.Vector   `json:"-"`
	File     codegen.File `json:"-"`
	Artifact ir.Artifact  `json:"artifact"`

	// Warnings are lint findings; they never fail a conversion.
	Warnings []string `json:"warnings"`
}

// Generate parses icon and generates its file without touching the sink
// or the clock. The returned Result has no Artifact yet.
func (e *Engine) Generate(icon ir.Icon) (*Result, error) {
	v, err := compiler.CompileIcon(icon)
	if err != nil {
		return nil, &ConversionError{Source: icon.FileName, Stage: StageCompile, Err: err}
	}

	warnings := []string{}
	for _, w := range compiler.Validate(v) {
		warnings = append(warnings, w.Error())
	}

	return &Result{
		Icon:     icon,
		Vector:   v,
		File:     codegen.Generate(icon, v, e.opts),
		Warnings: warnings,
	}, nil
}

// Convert generates icon and records the result with the sink.
func (e *Engine) Convert(ctx context.Context, icon ir.Icon) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := e.Generate(icon)
	if err != nil {
		e.logger.Debug("conversion failed", "source", icon.FileName, "error", err)
		return nil, err
	}
	if err := e.record(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ConvertSource loads name through the provider and converts it.
func (e *Engine) ConvertSource(ctx context.Context, name string, opts source.LoadOptions) (*Result, error) {
	icon, err := source.LoadIcon(ctx, e.provider, name, opts)
	if err != nil {
		return nil, &ConversionError{Source: name, Stage: StageRead, Err: err}
	}
	return e.Convert(ctx, icon)
}

// record stamps res with the next seq, builds its artifact and writes it.
func (e *Engine) record(ctx context.Context, res *Result) error {
	seq := e.clock.Next()
	content := res.File.Content
	outputHash := ir.OutputHash([]byte(content))

	id, err := ir.ArtifactID(e.run.Token, res.Icon.Theme, res.Icon.Name, outputHash, seq)
	if err != nil {
		return fmt.Errorf("record %s: %w", res.Icon.FileName, err)
	}

	res.Artifact = ir.Artifact{
		ID:         id,
		RunToken:   e.run.Token,
		Seq:        seq,
		Name:       res.Icon.Name,
		Theme:      res.Icon.Theme,
		SourceFile: res.Icon.FileName,
		FileName:   res.File.Name,
		Package:    res.File.Package,
		SourceHash: ir.SourceHash(res.Icon.Content),
		OutputHash: outputHash,
		Warnings:   res.Warnings,
		Content:    content,
	}

	if e.sink != nil {
		if err := e.sink.Write(ctx, e.run, res.Artifact); err != nil {
			return &ConversionError{Source: res.Icon.FileName, Stage: StageWrite, Err: err}
		}
	}

	e.logger.Info("icon converted",
		"name", res.Icon.Name,
		"theme", res.Icon.Theme.PackageName(),
		"file", res.File.Name,
		"seq", seq,
		"warnings", len(res.Warnings),
	)
	return nil
}
