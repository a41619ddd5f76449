package source

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

// Extension is the file extension of vector drawable sources.
const Extension = ".xml"

// IsIconFile reports whether path names a vector drawable source.
func IsIconFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// Walk sends the path of every icon file under root on the returned
// channel, in lexical order. The walk result is sent on the error channel
// once the path channel is closed. Cancelling ctx stops the walk.
func Walk(ctx context.Context, root string) (<-chan string, <-chan error) {
	paths := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(paths)

		errc <- filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() || !IsIconFile(path) {
				return nil
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case paths <- path:
			}
			return nil
		})
	}()
	return paths, errc
}
