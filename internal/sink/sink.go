package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/roach88/vdgen/internal/ir"
	"github.com/roach88/vdgen/internal/store"
)

// Dir writes each artifact to a file under Root.
//
// Within one run a file belongs to the first source written to it. A
// later artifact from a different source that resolves to the same path
// is refused with an *OverwriteError; the same source may rewrite its
// file, which is what watch mode does.
type Dir struct {
	Root string

	// ByPackage nests files in directories mirroring their package,
	// e.g. androidx/compose/material/icons/filled/Menu.kt.
	ByPackage bool

	mu     sync.Mutex
	owners map[dirKey]string
}

type dirKey struct {
	run  string
	path string
}

// OverwriteError reports two sources of one run generating the same file.
type OverwriteError struct {
	Path   string
	Source string
	Owner  string
}

func (e *OverwriteError) Error() string {
	return fmt.Sprintf("%s would overwrite %s, already generated from %s in this run",
		e.Source, e.Path, e.Owner)
}

// NewDir returns a Dir rooted at root. A leading "~" is expanded.
func NewDir(root string, byPackage bool) (*Dir, error) {
	expanded, err := homedir.Expand(root)
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	return &Dir{Root: expanded, ByPackage: byPackage}, nil
}

// Path returns where a is written.
func (d *Dir) Path(a ir.Artifact) string {
	dir := d.Root
	if d.ByPackage && a.Package != "" {
		dir = filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(a.Package, ".", "/")))
	}
	return filepath.Join(dir, a.FileName)
}

// Write writes the artifact content. The file is written to a temporary
// name and renamed into place, so readers never see a partial file.
func (d *Dir) Write(ctx context.Context, run ir.Run, a ir.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := d.Path(a)
	if err := d.claim(run.Token, path, a.SourceFile); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+a.FileName+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.WriteString(tmp, a.Content); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// claim records source as the owner of path for the run, or fails when
// another source owns it.
func (d *Dir) claim(run, path, source string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := dirKey{run: run, path: path}
	if owner, ok := d.owners[key]; ok && owner != source {
		return &OverwriteError{Path: path, Source: source, Owner: owner}
	}
	if d.owners == nil {
		d.owners = make(map[dirKey]string)
	}
	d.owners[key] = source
	return nil
}

// Store records runs and artifacts in the history database.
type Store struct {
	History *store.Store
}

// NewStore returns a sink recording into s.
func NewStore(s *store.Store) *Store {
	return &Store{History: s}
}

// Write records the run, if it is new, and then the artifact. Both writes
// are idempotent.
func (s *Store) Write(ctx context.Context, run ir.Run, a ir.Artifact) error {
	if err := s.History.WriteRun(ctx, run); err != nil {
		return err
	}
	return s.History.WriteArtifact(ctx, a)
}

// Writer streams artifact content to W. Concurrent writes are serialized.
type Writer struct {
	mu sync.Mutex
	W  io.Writer
}

// NewWriter returns a sink writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{W: w}
}

// Write copies the artifact content to the underlying writer.
func (w *Writer) Write(ctx context.Context, _ ir.Run, a ir.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := io.WriteString(w.W, a.Content); err != nil {
		return fmt.Errorf("write %s: %w", a.FileName, err)
	}
	return nil
}

// Sink is the interface satisfied by every sink in this package.
type Sink interface {
	Write(ctx context.Context, run ir.Run, a ir.Artifact) error
}

// Multi writes to every sink in order and stops at the first error.
type Multi []Sink

// Write implements Sink.
func (m Multi) Write(ctx context.Context, run ir.Run, a ir.Artifact) error {
	for _, s := range m {
		if err := s.Write(ctx, run, a); err != nil {
			return err
		}
	}
	return nil
}
