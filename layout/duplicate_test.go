package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris-hammersley/family-chart/person"
)

// cousinMarriageGraph produces a graph where "shared" is reachable as an
// ancestor of "focus" through two different paths, so the ancestor
// hierarchy contains two HierarchyNodes for the same person id.
func cousinMarriageGraph() *person.Graph {
	g := person.NewGraph()

	shared := person.New("shared")

	parentA := person.New("parentA")
	parentA.Rels.Father = "shared"
	parentB := person.New("parentB")
	parentB.Rels.Father = "shared"
	shared.Rels.Children = []string{"parentA", "parentB"}

	focus := person.New("focus")
	focus.Rels.Father = "parentA"
	focus.Rels.Mother = "parentB"
	parentA.Rels.Children = []string{"focus"}
	parentB.Rels.Children = []string{"focus"}

	g.Add(shared)
	g.Add(parentA)
	g.Add(parentB)
	g.Add(focus)
	return g
}

func TestResolveAncestryDuplicatesCollapsesAllButOne(t *testing.T) {
	g := cousinMarriageGraph()
	cfg := DefaultConfig()
	cfg.DuplicateBranchToggle = true

	focus := g.Get("focus")
	anc := buildAncestorHierarchy(g, focus, cfg)
	resolveAncestryDuplicates(anc, cfg)

	var occurrences, collapsed int
	for _, n := range flatten(anc) {
		if n.Person.ID == "shared" {
			occurrences++
			if n.collapsed {
				collapsed++
			}
		}
	}
	require.Equal(t, 2, occurrences)
	assert.Equal(t, 1, collapsed)
}

func TestResolveAncestryDuplicatesHonorsExpandedToggle(t *testing.T) {
	g := cousinMarriageGraph()
	cfg := DefaultConfig()
	cfg.DuplicateBranchToggle = true
	cfg.OnToggleOneCloseOthers = true
	cfg.ExpandedToggles = []ExpandedToggle{{PersonID: "shared", Context: "parentB"}}

	focus := g.Get("focus")
	anc := buildAncestorHierarchy(g, focus, cfg)
	resolveAncestryDuplicates(anc, cfg)

	for _, n := range flatten(anc) {
		if n.Person.ID != "shared" {
			continue
		}
		expanded := n.toggleValue["parentB"] == 1
		assert.Equal(t, n.Parent.Person.ID == "parentB", expanded)
	}
}

func TestResolveAncestryDuplicatesOneCloseOthersHonorsMostRecentToggle(t *testing.T) {
	g := cousinMarriageGraph()
	cfg := DefaultConfig()
	cfg.DuplicateBranchToggle = true
	cfg.OnToggleOneCloseOthers = true
	cfg.ExpandedToggles = []ExpandedToggle{
		{PersonID: "shared", Context: "parentA"},
		{PersonID: "shared", Context: "parentB"},
	}

	focus := g.Get("focus")
	anc := buildAncestorHierarchy(g, focus, cfg)
	resolveAncestryDuplicates(anc, cfg)

	expandedCount := 0
	for _, n := range flatten(anc) {
		if n.Person.ID != "shared" {
			continue
		}
		if !n.collapsed {
			expandedCount++
			assert.Equal(t, "parentB", n.Parent.Person.ID)
		}
	}
	assert.Equal(t, 1, expandedCount)
}

func TestResolveAncestryDuplicatesWithoutOneCloseOthersAllowsMultipleExpanded(t *testing.T) {
	g := cousinMarriageGraph()
	cfg := DefaultConfig()
	cfg.DuplicateBranchToggle = true
	cfg.OnToggleOneCloseOthers = false
	cfg.ExpandedToggles = []ExpandedToggle{
		{PersonID: "shared", Context: "parentA"},
		{PersonID: "shared", Context: "parentB"},
	}

	focus := g.Get("focus")
	anc := buildAncestorHierarchy(g, focus, cfg)
	resolveAncestryDuplicates(anc, cfg)

	expandedCount := 0
	for _, n := range flatten(anc) {
		if n.Person.ID == "shared" && !n.collapsed {
			expandedCount++
		}
	}
	assert.Equal(t, 2, expandedCount)
}

// marriedSiblingsGraph produces a focus with two children, cousin1 and
// cousin2, who are spouses of each other and share a child. Walking the
// descendant hierarchy from focus reaches that shared child once as
// (parent=cousin1, spouse=cousin2) and once as (parent=cousin2,
// spouse=cousin1) — the same unordered pair, walked in reverse.
func marriedSiblingsGraph() *person.Graph {
	g := person.NewGraph()

	focus := person.New("focus")

	cousin1 := person.New("cousin1")
	cousin1.SetGender(person.GenderMale)
	cousin1.Rels.Father = "focus"
	cousin2 := person.New("cousin2")
	cousin2.SetGender(person.GenderFemale)
	cousin2.Rels.Father = "focus"
	focus.Rels.Children = []string{"cousin1", "cousin2"}

	cousin1.Rels.Spouses = []string{"cousin2"}
	cousin2.Rels.Spouses = []string{"cousin1"}

	grandchild := person.New("grandchild")
	grandchild.Rels.Father = "cousin1"
	grandchild.Rels.Mother = "cousin2"
	cousin1.Rels.Children = []string{"grandchild"}
	cousin2.Rels.Children = []string{"grandchild"}

	g.Add(focus)
	g.Add(cousin1)
	g.Add(cousin2)
	g.Add(grandchild)
	return g
}

func TestResolveDescendantDuplicatesCollapsesReversedParentSpousePair(t *testing.T) {
	g := marriedSiblingsGraph()
	cfg := DefaultConfig()
	cfg.DuplicateBranchToggle = true

	focus := g.Get("focus")
	desc := buildDescendantHierarchy(g, focus, cfg)
	resolveDescendantDuplicates(desc, cfg)

	var occurrences, collapsed int
	for _, n := range flatten(desc) {
		if n.Person.ID == "grandchild" {
			occurrences++
			if n.collapsed {
				collapsed++
			}
		}
	}
	require.Equal(t, 2, occurrences)
	assert.Equal(t, 1, collapsed)
}

func TestResolveDuplicatesNoOpWhenDisabled(t *testing.T) {
	g := cousinMarriageGraph()
	cfg := DefaultConfig()
	cfg.DuplicateBranchToggle = false

	focus := g.Get("focus")
	anc := buildAncestorHierarchy(g, focus, cfg)
	resolveAncestryDuplicates(anc, cfg)

	for _, n := range flatten(anc) {
		assert.False(t, n.collapsed)
	}
}
