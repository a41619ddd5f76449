package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/vdgen/internal/ir"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun writes a run with minimal required fields.
func createTestRun(t *testing.T, s *Store, token string) ir.Run {
	t.Helper()
	run := ir.Run{
		Token:            token,
		GeneratorVersion: "0.1.0",
		IRVersion:        "1",
		PackagePrefix:    "androidx.compose.material.icons",
	}
	if err := s.WriteRun(context.Background(), run); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}
	return run
}

// createTestArtifact builds an artifact with a real content-addressed ID.
func createTestArtifact(runToken, name string, theme ir.Theme, seq int64) ir.Artifact {
	content := "package " + theme.PackageName() + "\n// " + name + "\n"
	outputHash := ir.OutputHash([]byte(content))
	return ir.Artifact{
		ID:         ir.MustArtifactID(runToken, theme, name, outputHash, seq),
		RunToken:   runToken,
		Seq:        seq,
		Name:       name,
		Theme:      theme,
		SourceFile: "icons/" + name + ".xml",
		FileName:   name + ".kt",
		Package:    theme.PackageName(),
		SourceHash: ir.SourceHash("<vector/>"),
		OutputHash: outputHash,
		Content:    content,
	}
}
