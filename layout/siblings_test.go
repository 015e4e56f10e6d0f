package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris-hammersley/family-chart/person"
)

// siblingFamily builds main plus three siblings: one missing a mother, one
// with both parents, one missing a father, added to the graph in an order
// that would leave them unsorted if the tie-break weren't applied.
func siblingFamily(t *testing.T) *person.Graph {
	t.Helper()
	g := person.NewGraph()

	father := person.New("father")
	mother := person.New("mother")

	main := person.New("main")
	main.Rels.Father = "father"
	main.Rels.Mother = "mother"

	both := person.New("both")
	both.Rels.Father = "father"
	both.Rels.Mother = "mother"

	noMother := person.New("no-mother")
	noMother.Rels.Father = "father"

	noFather := person.New("no-father")
	noFather.Rels.Mother = "mother"

	father.Rels.Children = []string{"main", "both", "no-mother"}
	mother.Rels.Children = []string{"main", "both", "no-father"}

	g.Add(father)
	g.Add(mother)
	g.Add(main)
	g.Add(both)
	g.Add(noMother)
	g.Add(noFather)
	return g
}

func TestInsertSiblingsSkippedWhenOneLevelRels(t *testing.T) {
	g := siblingFamily(t)
	cfg := DefaultConfig()
	cfg.ShowSiblingsOfMain = true
	cfg.OneLevelRels = true

	result, err := Build(g, "main", cfg)
	require.NoError(t, err)
	for _, n := range result.Nodes {
		assert.False(t, n.Sibling)
	}
}

func TestInsertSiblingsOrdersNoMotherLeftNoFatherRight(t *testing.T) {
	g := siblingFamily(t)
	cfg := DefaultConfig()
	cfg.ShowSiblingsOfMain = true

	result, err := Build(g, "main", cfg)
	require.NoError(t, err)

	byID := make(map[string]*Node)
	for _, n := range result.Nodes {
		if n.Person != nil {
			byID[n.Person.ID] = n
		}
	}
	require.NotNil(t, byID["no-mother"])
	require.NotNil(t, byID["no-father"])
	require.NotNil(t, byID["both"])

	assert.Less(t, byID["no-mother"].X, byID["main"].X)
	assert.Greater(t, byID["no-father"].X, byID["main"].X)
}

func TestInsertSiblingsInterleavesOutwardFromSpouses(t *testing.T) {
	g := siblingFamily(t)
	spouse := person.New("spouse")
	g.Add(spouse)
	main := g.Get("main")
	main.Rels.Spouses = []string{"spouse"}
	spouse.Rels.Spouses = []string{"main"}

	cfg := DefaultConfig()
	cfg.ShowSiblingsOfMain = true

	result, err := Build(g, "main", cfg)
	require.NoError(t, err)

	var siblingXs []float64
	var mainNode *Node
	for _, n := range result.Nodes {
		if n.Sibling {
			siblingXs = append(siblingXs, n.X)
		}
		if n.Person != nil && n.Person.ID == "main" {
			mainNode = n
		}
	}
	require.NotNil(t, mainNode)
	require.Len(t, siblingXs, 3)

	left, right := siblingBoundary(mainNode)
	for _, x := range siblingXs {
		assert.True(t, x < left || x > right, "sibling x %v should fall outside [%v, %v]", x, left, right)
	}
}
