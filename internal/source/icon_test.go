package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vdgen/internal/ir"
)

const whiteIcon = `<vector xmlns:android="http://schemas.android.com/apk/res/android" android:autoMirrored="true">
    <path android:fillColor="@android:color/white" android:pathData="M0,0"/>
</vector>`

func TestPreprocess(t *testing.T) {
	out := Preprocess(whiteIcon)
	assert.Contains(t, out, `android:fillColor="@android:color/black"`)
	assert.NotContains(t, out, "@android:color/white")
	assert.Equal(t, "no colours", Preprocess("no colours"))
}

func TestIsAutoMirrored(t *testing.T) {
	assert.True(t, IsAutoMirrored(whiteIcon))
	assert.False(t, IsAutoMirrored(`<vector android:autoMirrored="false"/>`))
	assert.False(t, IsAutoMirrored(`<vector android:autoMirrored='true'/>`))
	assert.False(t, IsAutoMirrored(`<vector/>`))
}

func TestLoadIcon(t *testing.T) {
	p := MemProvider{"icons/zoom_out_map.xml": whiteIcon}

	icon, err := LoadIcon(context.Background(), p, "icons/zoom_out_map.xml", LoadOptions{
		Theme:      ir.Outlined,
		Preprocess: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "ZoomOutMap", icon.Name)
	assert.Equal(t, "zoom_out_map.xml", icon.FileName)
	assert.Equal(t, ir.Outlined, icon.Theme)
	assert.True(t, icon.AutoMirrored)
	assert.Contains(t, icon.Content, "@android:color/black")
}

func TestLoadIconNameOverrideNoPreprocess(t *testing.T) {
	p := MemProvider{Stdin: whiteIcon}

	icon, err := LoadIcon(context.Background(), p, Stdin, LoadOptions{Name: "Custom"})
	require.NoError(t, err)

	assert.Equal(t, "Custom", icon.Name)
	assert.Equal(t, ir.Filled, icon.Theme)
	assert.Equal(t, whiteIcon, icon.Content)
}

func TestLoadIconMissing(t *testing.T) {
	_, err := LoadIcon(context.Background(), MemProvider{}, "x.xml", LoadOptions{})
	assert.Error(t, err)
}

func TestThemeFromPath(t *testing.T) {
	tests := []struct {
		path  string
		theme ir.Theme
		ok    bool
	}{
		{filepath.Join("icons", "outlined", "menu.xml"), ir.Outlined, true},
		{filepath.Join("icons", "twotone", "action", "home.xml"), ir.TwoTone, true},
		{filepath.Join("sharp", "filled", "x.xml"), ir.Filled, true},
		{filepath.Join("icons", "menu.xml"), 0, false},
		{"menu.xml", 0, false},
		{filepath.Join("outlined.xml"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			theme, ok := ThemeFromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.theme, theme)
			}
		})
	}
}
