package sink

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vdgen/internal/engine"
	"github.com/roach88/vdgen/internal/ir"
	"github.com/roach88/vdgen/internal/store"
)

// Every sink must satisfy the engine's interface.
var (
	_ engine.Sink = (*Dir)(nil)
	_ engine.Sink = (*Store)(nil)
	_ engine.Sink = (*Writer)(nil)
	_ engine.Sink = Multi(nil)
)

var testRun = ir.Run{Token: "run-1", GeneratorVersion: ir.GeneratorVersion, IRVersion: ir.IRVersion}

func testArtifact(name string, seq int64) ir.Artifact {
	content := "package androidx.compose.material.icons.filled\n// " + name + "\n"
	out := ir.OutputHash([]byte(content))
	return ir.Artifact{
		ID:         ir.MustArtifactID(testRun.Token, ir.Filled, name, out, seq),
		RunToken:   testRun.Token,
		Seq:        seq,
		Name:       name,
		Theme:      ir.Filled,
		SourceFile: "menu.xml",
		FileName:   name + ".kt",
		Package:    "androidx.compose.material.icons.filled",
		SourceHash: ir.SourceHash("<vector/>"),
		OutputHash: out,
		Warnings:   []string{},
		Content:    content,
	}
}

func TestDir_Flat(t *testing.T) {
	root := t.TempDir()
	d := &Dir{Root: root}
	a := testArtifact("Menu", 1)

	require.NoError(t, d.Write(context.Background(), testRun, a))

	data, err := os.ReadFile(filepath.Join(root, "Menu.kt"))
	require.NoError(t, err)
	assert.Equal(t, a.Content, string(data))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestDir_ByPackage(t *testing.T) {
	root := t.TempDir()
	d := &Dir{Root: root, ByPackage: true}
	a := testArtifact("Menu", 1)

	want := filepath.Join(root, "androidx", "compose", "material", "icons", "filled", "Menu.kt")
	assert.Equal(t, want, d.Path(a))

	require.NoError(t, d.Write(context.Background(), testRun, a))
	_, err := os.Stat(want)
	assert.NoError(t, err)
}

func TestDir_Overwrites(t *testing.T) {
	root := t.TempDir()
	d := &Dir{Root: root}
	a := testArtifact("Menu", 1)
	require.NoError(t, os.WriteFile(filepath.Join(root, "Menu.kt"), []byte("old"), 0o644))

	require.NoError(t, d.Write(context.Background(), testRun, a))

	data, err := os.ReadFile(filepath.Join(root, "Menu.kt"))
	require.NoError(t, err)
	assert.Equal(t, a.Content, string(data))
}

func TestDir_RefusesSecondSourceForSameFile(t *testing.T) {
	root := t.TempDir()
	d := &Dir{Root: root}
	ctx := context.Background()

	filled := testArtifact("Menu", 1)
	filled.SourceFile = "icons/filled/menu.xml"
	outlined := testArtifact("Menu", 2)
	outlined.SourceFile = "icons/outlined/menu.xml"
	outlined.Content = "package androidx.compose.material.icons.outlined\n"

	require.NoError(t, d.Write(ctx, testRun, filled))
	err := d.Write(ctx, testRun, outlined)

	var overwrite *OverwriteError
	require.True(t, errors.As(err, &overwrite))
	assert.Equal(t, filepath.Join(root, "Menu.kt"), overwrite.Path)
	assert.Equal(t, "icons/filled/menu.xml", overwrite.Owner)
	assert.Equal(t, "icons/outlined/menu.xml", overwrite.Source)

	data, err := os.ReadFile(filepath.Join(root, "Menu.kt"))
	require.NoError(t, err)
	assert.Equal(t, filled.Content, string(data), "first file must survive")

	// A new run starts with no owners.
	next := ir.Run{Token: "run-2"}
	assert.NoError(t, d.Write(ctx, next, outlined))
}

func TestDir_SameSourceRewrites(t *testing.T) {
	d := &Dir{Root: t.TempDir()}
	ctx := context.Background()

	require.NoError(t, d.Write(ctx, testRun, testArtifact("Menu", 1)))
	assert.NoError(t, d.Write(ctx, testRun, testArtifact("Menu", 2)))
}

func TestDir_RootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	err := (&Dir{Root: root}).Write(context.Background(), testRun, testArtifact("Menu", 1))
	assert.Error(t, err)
}

func TestNewDir_ExpandsHome(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skip("no home directory")
	}

	d, err := NewDir("~/icons", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "icons"), d.Root)
}

func TestStore_RecordsRunAndArtifact(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	sk := NewStore(s)
	for i, name := range []string{"Menu", "Home"} {
		require.NoError(t, sk.Write(ctx, testRun, testArtifact(name, int64(i+1))))
	}

	run, err := s.ReadRun(ctx, testRun.Token)
	require.NoError(t, err)
	assert.Equal(t, testRun, run)

	artifacts, err := s.ListArtifacts(ctx, store.ArtifactFilter{RunToken: testRun.Token})
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, testArtifact("Menu", 1), artifacts[0])
	assert.Equal(t, testArtifact("Home", 2), artifacts[1])
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Write(context.Background(), testRun, testArtifact("Menu", 1)))
	require.NoError(t, w.Write(context.Background(), testRun, testArtifact("Home", 2)))

	assert.Equal(t, testArtifact("Menu", 1).Content+testArtifact("Home", 2).Content, buf.String())
}

type failingSink struct{ calls int }

func (f *failingSink) Write(context.Context, ir.Run, ir.Artifact) error {
	f.calls++
	return errors.New("boom")
}

func TestMulti_StopsAtFirstError(t *testing.T) {
	var buf bytes.Buffer
	failing := &failingSink{}
	after := &failingSink{}

	err := Multi{NewWriter(&buf), failing, after}.Write(context.Background(), testRun, testArtifact("Menu", 1))

	assert.EqualError(t, err, "boom")
	assert.NotEmpty(t, buf.String())
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 0, after.calls)
}

func TestSinks_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	assert.ErrorIs(t, NewWriter(&buf).Write(ctx, testRun, testArtifact("Menu", 1)), context.Canceled)
	assert.ErrorIs(t, (&Dir{Root: t.TempDir()}).Write(ctx, testRun, testArtifact("Menu", 1)), context.Canceled)
}
