package editops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/person"
)

func TestDeletePersonHardDeletesWhenSafe(t *testing.T) {
	a := person.New("a")
	b := person.New("b")
	g := person.NewGraphFrom([]*person.Person{a, b})

	require.NoError(t, DeletePerson(g, "b", "a"))
	assert.False(t, g.Has("b"))
}

func TestDeletePersonDemotesWhenItWouldDisconnect(t *testing.T) {
	// bridge connects left and anchor; removing bridge would strand left.
	anchor := person.New("anchor")
	bridge := person.New("bridge")
	left := person.New("left")
	anchor.Rels.Father = "bridge"
	bridge.Rels.Children = []string{"anchor"}
	left.Rels.Father = "bridge"
	bridge.Rels.Children = append(bridge.Rels.Children, "left")

	g := person.NewGraphFrom([]*person.Person{anchor, bridge, left})

	require.NoError(t, DeletePerson(g, "bridge", "anchor"))
	assert.True(t, g.Has("bridge"))
	assert.True(t, g.Get("bridge").Unknown)
}

func TestDeletePersonNotFound(t *testing.T) {
	g := person.NewGraph()
	g.Add(person.New("a"))
	err := DeletePerson(g, "missing", "a")
	require.Error(t, err)
	assert.True(t, famerrors.IsReference(err))
}

func TestDeletePersonRepopulatesEmptyGraph(t *testing.T) {
	g := person.NewGraph()
	g.Add(person.New("only"))

	require.NoError(t, DeletePerson(g, "only", ""))
	assert.Equal(t, 1, g.Len())
}

func TestDeletePersonCascadesOrphanedPlaceholder(t *testing.T) {
	real := person.New("real")
	placeholder := person.NewToAdd("ph", person.GenderFemale)
	real.Rels.Spouses = []string{"ph"}
	placeholder.Rels.Spouses = []string{"real"}
	child := person.New("child")
	child.Rels.Father = "real"
	child.Rels.Mother = "ph"
	real.Rels.Children = []string{"child"}
	placeholder.Rels.Children = []string{"child"}
	anchor := person.New("anchor")
	anchor.Rels.Spouses = []string{"child"}
	child.Rels.Spouses = []string{"anchor"}

	g := person.NewGraphFrom([]*person.Person{anchor, real, placeholder, child})

	require.NoError(t, DeletePerson(g, "real", "anchor"))
	assert.False(t, g.Has("ph"))
	assert.Empty(t, child.Rels.Father)
}

func TestDemoteToUnknownKeepsGenderClearsData(t *testing.T) {
	p := person.New("p")
	p.SetGender(person.GenderFemale)
	p.Data["name"] = "Alice"

	demoteToUnknown(p)

	assert.True(t, p.Unknown)
	assert.Equal(t, person.GenderFemale, p.Gender())
	assert.NotContains(t, p.Data, "name")
}
