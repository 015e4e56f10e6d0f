package layout

import (
	"sort"

	"github.com/chris-hammersley/family-chart/person"
)

// insertSiblings adds main's siblings (any other child of either of main's
// parents) as leaf nodes beside main, per spec step 13: only when
// cfg.ShowSiblingsOfMain is set and cfg.OneLevelRels is not (one-level
// layouts show only main's direct relations). Siblings don't get their own
// descendant subtree — they exist only to show main's birth-order context —
// so they're placed but never recursed into. Candidates are ordered by
// cfg.SortChildrenFunc (if set) and then by the deterministic tie-break "no
// mother first on the left, no father first on the right, otherwise stable",
// then placed outward from the focus-and-spouse span, stepping by
// cfg.NodeSeparation: a sibling missing a mother always goes on the left,
// one missing a father always on the right, and siblings with both parents
// alternate left/right, starting on the left.
func insertSiblings(g *person.Graph, mainID string, main *Node, cfg Config) {
	if !cfg.ShowSiblingsOfMain || cfg.OneLevelRels {
		return
	}

	seen := map[string]bool{mainID: true}
	var siblings []*person.Person
	parentOf := make(map[string]*Node)
	for _, parentNode := range main.Parents {
		parent := parentNode.Person
		if parent == nil {
			continue
		}
		for _, cid := range parent.Rels.Children {
			if seen[cid] {
				continue
			}
			seen[cid] = true
			sib := g.Get(cid)
			if sib == nil {
				continue
			}
			siblings = append(siblings, sib)
			parentOf[sib.ID] = parentNode
		}
	}
	if len(siblings) == 0 {
		return
	}

	if cfg.SortChildrenFunc != nil {
		sort.SliceStable(siblings, func(i, j int) bool { return cfg.SortChildrenFunc(siblings[i], siblings[j]) })
	}
	sort.SliceStable(siblings, func(i, j int) bool { return siblingRank(siblings[i]) < siblingRank(siblings[j]) })

	left, right := siblingBoundary(main)
	nextLeft := true
	for _, sib := range siblings {
		var x float64
		goLeft := nextLeft
		switch siblingRank(sib) {
		case -1:
			goLeft = true
		case 1:
			goLeft = false
		default:
			nextLeft = !nextLeft
		}
		if goLeft {
			left -= cfg.NodeSeparation
			x = left
		} else {
			right += cfg.NodeSeparation
			x = right
		}
		sn := &Node{
			Person:  sib,
			X:       x,
			Y:       main.Y,
			Depth:   main.Depth,
			Sibling: true,
			Parents: main.Parents,
		}
		parentNode := parentOf[sib.ID]
		parentNode.Children = append(parentNode.Children, sn)
	}
}

// siblingRank implements the tie-break "no-mother first on left, no-father
// first on right, otherwise stable": a sibling missing a mother sorts
// before one with both parents, which sorts before one missing a father.
func siblingRank(p *person.Person) int {
	switch {
	case p.Rels.Mother == "":
		return -1
	case p.Rels.Father == "":
		return 1
	default:
		return 0
	}
}

// siblingBoundary returns the leftmost and rightmost x already occupied by
// main and main's spouses, the boundary siblings are interleaved outward
// from.
func siblingBoundary(main *Node) (left, right float64) {
	left, right = main.X, main.X
	for _, sp := range main.Spouses {
		if sp.X < left {
			left = sp.X
		}
		if sp.X > right {
			right = sp.X
		}
	}
	return left, right
}
