package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris-hammersley/family-chart/person"
)

type stubAdapter struct {
	saved   map[string]*person.Person
	saveErr error
}

func newStubAdapter() *stubAdapter {
	return &stubAdapter{saved: make(map[string]*person.Person)}
}

func (s *stubAdapter) SavePerson(_ context.Context, p *person.Person) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[p.ID] = p
	return nil
}

func (s *stubAdapter) DeletePerson(_ context.Context, id string) error {
	delete(s.saved, id)
	return nil
}

func (s *stubAdapter) LoadAll(_ context.Context) ([]*person.Person, error) {
	out := make([]*person.Person, 0, len(s.saved))
	for _, p := range s.saved {
		out = append(out, p)
	}
	return out, nil
}

func sampleGraph() *person.Graph {
	a := person.New("a")
	b := person.New("b")
	a.Rels.Children = []string{"b"}
	b.Rels.Father = "a"
	return person.NewGraphFrom([]*person.Person{a, b})
}

func TestMarshalUnmarshalPersonRoundtrips(t *testing.T) {
	p := person.New("a")
	p.Data["name"] = "Alice"

	data, err := MarshalPerson(p)
	require.NoError(t, err)

	got, err := UnmarshalPerson(data)
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, "Alice", got.Data["name"])
}

func TestUnmarshalPersonInvalidJSONReturnsError(t *testing.T) {
	_, err := UnmarshalPerson([]byte("not json"))
	assert.Error(t, err)
}

func TestSyncGraphSavesEveryPerson(t *testing.T) {
	stub := newStubAdapter()
	require.NoError(t, SyncGraph(context.Background(), stub, sampleGraph()))
	assert.Len(t, stub.saved, 2)
}

func TestLoadGraphFromRebuildsGraph(t *testing.T) {
	stub := newStubAdapter()
	require.NoError(t, SyncGraph(context.Background(), stub, sampleGraph()))

	g, err := LoadGraphFrom(context.Background(), stub)
	require.NoError(t, err)
	assert.True(t, g.Has("a"))
	assert.True(t, g.Has("b"))
}

func TestNotFoundErr(t *testing.T) {
	assert.Error(t, NotFoundErr("memadapter"))
}
