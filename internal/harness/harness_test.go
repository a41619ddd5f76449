package harness

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vdgen/internal/compiler"
	"github.com/roach88/vdgen/internal/ir"
	"github.com/roach88/vdgen/internal/pathdata"
)

const conformanceDir = "testdata/conformance"

func TestConformance(t *testing.T) {
	cases, err := LoadCases(conformanceDir)
	require.NoError(t, err)
	require.Len(t, cases, 7)

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			result, err := Run(context.Background(), c, Options{})
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRunWithGolden(t *testing.T) {
	c, err := LoadCase(filepath.Join(conformanceDir, "01_filled_menu.yaml"))
	require.NoError(t, err)

	result, err := RunWithGolden(t, c)
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestRun_Deterministic(t *testing.T) {
	c, err := LoadCase(filepath.Join(conformanceDir, "02_twotone_home.yaml"))
	require.NoError(t, err)

	first, err := Run(context.Background(), c, Options{})
	require.NoError(t, err)
	second, err := Run(context.Background(), c, Options{})
	require.NoError(t, err)

	require.NotNil(t, first.Artifact)
	assert.Equal(t, first.Artifact.ID, second.Artifact.ID)
	assert.Equal(t, "test-run-default", first.Artifact.RunToken)
	assert.Equal(t, int64(1), first.Artifact.Seq)
}

func TestRun_ReportsFailedExpectations(t *testing.T) {
	nodes := 3
	c := &Case{
		Name:   "menu",
		Source: `<vector xmlns:android="http://schemas.android.com/apk/res/android"><path android:pathData="M0,0"/></vector>`,
		Expect: Expect{
			Package:  "wrong.package",
			FileName: "Other.kt",
			Nodes:    &nodes,
			Contains: []string{"lineTo("},
			Warnings: []string{"W101"},
		},
	}

	result, err := Run(context.Background(), c, Options{})
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "package: expected wrong.package")
}

func TestRun_ExpectedErrorButSucceeded(t *testing.T) {
	c := &Case{
		Name:   "ok",
		Source: `<vector xmlns:android="http://schemas.android.com/apk/res/android"/>`,
		Expect: Expect{Error: ErrorStructural},
	}

	result, err := Run(context.Background(), c, Options{})
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, []string{"error: expected structural error, got success"}, result.Errors)
}

func TestRun_UnexpectedError(t *testing.T) {
	c := &Case{Name: "bad", Source: `<vector`}

	result, err := Run(context.Background(), c, Options{})
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.NotEmpty(t, result.ConversionError)
	assert.Nil(t, result.Artifact)
}

func TestRun_UpdateGolden(t *testing.T) {
	dir := t.TempDir()
	c := &Case{
		Name:   "menu",
		Source: `<vector xmlns:android="http://schemas.android.com/apk/res/android"><path android:pathData="M0,0"/></vector>`,
		Golden: "menu.golden",
		dir:    dir,
	}

	result, err := Run(context.Background(), c, Options{})
	require.NoError(t, err)
	assert.False(t, result.Pass, "missing golden file must fail")

	result, err = Run(context.Background(), c, Options{UpdateGolden: true})
	require.NoError(t, err)
	assert.True(t, result.Pass)

	data, err := os.ReadFile(filepath.Join(dir, "menu.golden"))
	require.NoError(t, err)
	assert.Equal(t, result.Output, string(data))

	result, err = Run(context.Background(), c, Options{})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestLoadCase_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "name: a\nsource: x\nexpect:\n  packages: a\n"},
		{"missing name", "source: x\n"},
		{"no source", "name: a\n"},
		{"source and file", "name: a\nsource: x\nfile: a.xml\n"},
		{"bad theme", "name: a\nsource: x\ntheme: bold\n"},
		{"bad error kind", "name: a\nsource: x\nexpect:\n  error: nope\n"},
		{"golden with error", "name: a\nsource: x\ngolden: a.golden\nexpect:\n  error: structural\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "case.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := LoadCase(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadCases_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("name: same\nsource: x\n"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	_, err := LoadCases(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `case name "same" used by both a.yaml and b.yml`)
}

func TestLoadCases_MissingDir(t *testing.T) {
	_, err := LoadCases(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&pathdata.SyntaxError{Reason: "x"}, ErrorPathSyntax},
		{&compiler.MissingAttributeError{Element: "path", Attribute: "android:pathData"}, ErrorMissingAttribute},
		{&compiler.StructuralError{Message: "x"}, ErrorStructural},
		{errors.New("other"), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorKind(tt.err), "%T", tt.err)
	}
}

func TestWarningCodes(t *testing.T) {
	got := warningCodes([]string{"[W101] nodes[0].fill_alpha: x", "[W104] y", "plain"})
	assert.Equal(t, []string{"W101", "W104", "plain"}, got)
}

func TestCaseDefaults(t *testing.T) {
	c := &Case{Name: "x"}
	theme, err := c.theme()
	require.NoError(t, err)
	assert.Equal(t, ir.Filled, theme)
	assert.Equal(t, "androidx.compose.material.icons", c.packagePrefix())
	assert.True(t, c.preprocess())
	assert.Equal(t, "x.xml", c.sourceName())

	c.Icon = "Menu"
	assert.Equal(t, "Menu.xml", c.sourceName())
}
