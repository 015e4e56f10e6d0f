package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris-hammersley/family-chart/person"
)

func TestWireEdgesFocusHasNoTo(t *testing.T) {
	g := buildFamily(t)
	result, err := Build(g, "father", DefaultConfig())
	require.NoError(t, err)

	focus := byPersonID(result, "father")
	require.NotNil(t, focus)
	assert.NotEmpty(t, focus.Children, "focus has children in this fixture")
	assert.Empty(t, focus.To, "focus never draws a to edge even though it has children")
}

func TestWireEdgesDescendantFromHasBothParents(t *testing.T) {
	g := buildFamily(t)
	result, err := Build(g, "father", DefaultConfig())
	require.NoError(t, err)

	child := byPersonID(result, "child")
	require.NotNil(t, child)

	fromIDs := map[string]bool{}
	for _, n := range child.From {
		fromIDs[n.Person.ID] = true
	}
	assert.True(t, fromIDs["father"])
	assert.True(t, fromIDs["mother"])
	assert.Len(t, child.From, 2)
}

func TestWireEdgesAncestorFromIsSingleTreeParent(t *testing.T) {
	g := person.NewGraph()
	leaf := person.New("leaf")
	p := person.New("parent")
	gp := person.New("grandparent")
	leaf.Rels.Father = "parent"
	p.Rels.Children = []string{"leaf"}
	p.Rels.Father = "grandparent"
	gp.Rels.Children = []string{"parent"}
	g.Add(leaf)
	g.Add(p)
	g.Add(gp)

	result, err := Build(g, "leaf", DefaultConfig())
	require.NoError(t, err)

	parentNode := byPersonID(result, "parent")
	require.NotNil(t, parentNode)
	require.Len(t, parentNode.From, 1)
	assert.Equal(t, "grandparent", parentNode.From[0].Person.ID)
}

func byPersonID(r *Result, id string) *Node {
	for _, n := range r.Nodes {
		if n.Person != nil && n.Person.ID == id {
			return n
		}
	}
	return nil
}
