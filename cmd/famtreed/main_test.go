package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris-hammersley/family-chart/person"
	"github.com/chris-hammersley/family-chart/persistence/memadapter"
)

func TestBootstrapGraphReturnsExistingPersistedGraph(t *testing.T) {
	a := memadapter.New()
	require.NoError(t, a.SavePerson(context.Background(), person.New("a")))

	g, err := bootstrapGraph(context.Background(), a, "")
	require.NoError(t, err)
	assert.True(t, g.Has("a"))
}

func TestBootstrapGraphImportsSeedDatasetWhenEmpty(t *testing.T) {
	a := memadapter.New()
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"people":[{"id":"a"},{"id":"b","rels":{"father":"a"}}]}`), 0o600))

	g, err := bootstrapGraph(context.Background(), a, path)
	require.NoError(t, err)
	assert.True(t, g.Has("a"))
	assert.True(t, g.Has("b"))
	assert.Equal(t, 2, a.Len())
}

func TestBootstrapGraphSkipsImportWhenAlreadyPersisted(t *testing.T) {
	a := memadapter.New()
	require.NoError(t, a.SavePerson(context.Background(), person.New("existing")))

	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"people":[{"id":"a"}]}`), 0o600))

	g, err := bootstrapGraph(context.Background(), a, path)
	require.NoError(t, err)
	assert.True(t, g.Has("existing"))
	assert.False(t, g.Has("a"))
}
