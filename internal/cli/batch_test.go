package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vdgen/internal/ir"
	"github.com/roach88/vdgen/internal/testutil"
)

func TestBatchCommandNonExistentDir(t *testing.T) {
	_, err := execute(t, NewBatchCommand(&RootOptions{Format: "text"}), "/nonexistent/icons")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source directory not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBatchCommandDetectTheme(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "icons")
	writeFile(t, src, "filled/menu.xml", testutil.SimpleIconXML(menuPathData))
	writeFile(t, src, "outlined/menu.xml", testutil.SimpleIconXML(menuPathData))
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, NewBatchCommand(&RootOptions{Format: "json"}), src,
		"--detect-theme", "--by-package", "--out", outDir, "--workers", "2")
	require.NoError(t, err)

	var result BatchResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Items, 2)

	// Items come back in source path order, stamped in that order.
	assert.Equal(t, filepath.Join(src, "filled", "menu.xml"), result.Items[0].Source)
	assert.Equal(t, ir.Filled, result.Items[0].Artifact.Theme)
	assert.Equal(t, int64(1), result.Items[0].Artifact.Seq)
	assert.Equal(t, ir.Outlined, result.Items[1].Artifact.Theme)
	assert.Equal(t, int64(2), result.Items[1].Artifact.Seq)

	for _, theme := range []string{"filled", "outlined"} {
		_, err := os.Stat(filepath.Join(outDir, "androidx", "compose", "material", "icons", theme, "Menu.kt"))
		assert.NoError(t, err, "missing %s output", theme)
	}
}

func TestBatchCommandDetectThemeFlatOutputCollision(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "icons")
	writeFile(t, src, "filled/menu.xml", testutil.SimpleIconXML(menuPathData))
	writeFile(t, src, "outlined/menu.xml", testutil.SimpleIconXML(menuPathData))
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, NewBatchCommand(&RootOptions{Format: "json"}), src, "--detect-theme", "--out", outDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result BatchResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, ErrCodeConversionFailed, resp.Error.Code)
	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Items, 2)
	assert.Equal(t, ir.Filled, result.Items[0].Artifact.Theme)
	assert.Equal(t, ErrCodeWriteFailed, result.Items[1].Code)
	assert.Contains(t, result.Items[1].Error, "already generated from")

	data, err := os.ReadFile(filepath.Join(outDir, "Menu.kt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package androidx.compose.material.icons.filled\n")
}

func TestBatchCommandPartialFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "icons")
	writeFile(t, src, "bad.xml", testutil.SimpleIconXML("M0,0L1,2,3"))
	writeFile(t, src, "menu.xml", testutil.SimpleIconXML(menuPathData))
	writeFile(t, src, "notes.txt", "not an icon")
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, NewBatchCommand(&RootOptions{Format: "json"}), src, "--out", outDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, Reported(err))

	var result BatchResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeConversionFailed, resp.Error.Code)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 1, result.Failed)

	require.Len(t, result.Items, 2)
	assert.Equal(t, ErrCodePathSyntax, result.Items[0].Code)
	assert.Nil(t, result.Items[0].Artifact)
	require.NotNil(t, result.Items[1].Artifact)
	assert.Equal(t, "Menu", result.Items[1].Artifact.Name)

	_, err = os.Stat(filepath.Join(outDir, "Menu.kt"))
	assert.NoError(t, err)
}

func TestBatchCommandTextOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "icons")
	writeFile(t, src, "bad.xml", testutil.SimpleIconXML("M0,0L1,2,3"))
	writeFile(t, src, "menu.xml", testutil.SimpleIconXML(menuPathData))

	out, err := execute(t, NewBatchCommand(&RootOptions{Format: "text"}), src, "--out", filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, out, "✗ "+filepath.Join(src, "bad.xml"))
	assert.Contains(t, out, "✓ "+filepath.Join(src, "menu.xml"))
	assert.Contains(t, out, "1 converted, 1 failed, 2 total")
}

func TestBatchCommandCheckThemes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "icons")
	writeFile(t, src, "filled/menu.xml", testutil.SimpleIconXML(menuPathData))

	out, err := execute(t, NewBatchCommand(&RootOptions{Format: "json"}), src,
		"--detect-theme", "--check-themes", "--out", filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result BatchResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, ErrCodeThemeCoverage, resp.Error.Code)
	assert.Equal(t, 1, result.Converted)
	assert.Contains(t, result.Coverage, "missing themes")
}

func TestBatchCommandEmptyDir(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, NewBatchCommand(&RootOptions{Format: "text"}), dir, "--out", filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Contains(t, out, "0 converted, 0 failed, 0 total")
}
