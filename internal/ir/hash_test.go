package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceHashStable(t *testing.T) {
	a := SourceHash(`<vector/>`)
	b := SourceHash(`<vector/>`)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, SourceHash(`<vector />`))
}

func TestHashDomainsDiffer(t *testing.T) {
	content := "package filled\n"
	assert.NotEqual(t, SourceHash(content), OutputHash([]byte(content)))
}

func TestArtifactIDDeterministic(t *testing.T) {
	out := OutputHash([]byte("x"))
	id1, err := ArtifactID("run-1", Filled, "Menu", out, 1)
	require.NoError(t, err)
	id2, err := ArtifactID("run-1", Filled, "Menu", out, 1)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	assert.NotEqual(t, id1, MustArtifactID("run-2", Filled, "Menu", out, 1))
	assert.NotEqual(t, id1, MustArtifactID("run-1", Sharp, "Menu", out, 1))
	assert.NotEqual(t, id1, MustArtifactID("run-1", Filled, "Menu", out, 2))
}
