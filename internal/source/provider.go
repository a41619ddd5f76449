package source

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Stdin is the source name that reads standard input.
const Stdin = "-"

// Provider yields the text content of a named icon source.
type Provider interface {
	ReadContent(ctx context.Context, name string) (string, error)
}

// FileProvider reads files from disk. The name "-" reads In.
type FileProvider struct {
	In io.Reader
}

// NewFileProvider returns a FileProvider reading "-" from os.Stdin.
func NewFileProvider() *FileProvider {
	return &FileProvider{In: os.Stdin}
}

// ReadContent reads the whole source. A missing file yields an error
// matching fs.ErrNotExist.
func (p *FileProvider) ReadContent(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if name == Stdin {
		if p.In == nil {
			return "", fmt.Errorf("read %s: no standard input", name)
		}
		return readAll(ctx, name, p.In)
	}

	f, err := os.Open(name)
	if err != nil {
		return "", fmt.Errorf("read icon: %w", err)
	}
	defer f.Close()
	return readAll(ctx, name, f)
}

type readResult struct {
	data []byte
	err  error
}

// readAll reads r in a goroutine so that a cancelled context returns
// immediately even when r blocks.
func readAll(ctx context.Context, name string, r io.Reader) (string, error) {
	done := make(chan readResult, 1)
	go func() {
		data, err := io.ReadAll(r)
		done <- readResult{data, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("read %s: %w", name, res.err)
		}
		return string(res.data), nil
	}
}

// MemProvider serves sources from memory, keyed by name.
type MemProvider map[string]string

// ReadContent returns the named entry.
func (m MemProvider) ReadContent(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, ok := m[name]
	if !ok {
		return "", fmt.Errorf("read icon: %w", &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist})
	}
	return content, nil
}
