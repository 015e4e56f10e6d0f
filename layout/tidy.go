package layout

import "github.com/chris-hammersley/family-chart/person"

// tidyState threads the per-row cursor used while positioning a single
// hierarchy, grounded on the staged level/ordering/coordinate pipeline
// shape of a classic layered-graph layout: each row remembers the last
// node placed on it so the next node's offset can be computed from the
// separation function instead of a global pass.
type tidyState struct {
	lastAtDepth map[int]*HierarchyNode
}

// runTidyTree assigns an X to every node in the hierarchy rooted at root;
// the depth-derived Y is set later, by mergeHierarchies. isAncestry disables the
// cousin/half-sibling/spouse separation bonuses per spec step 7.
func runTidyTree(root *HierarchyNode, cfg Config, isAncestry bool) {
	st := &tidyState{lastAtDepth: make(map[int]*HierarchyNode)}
	layoutNode(root, st, cfg, isAncestry)
}

// layoutNode lays out node's subtree in post-order: children first, then
// this node is centered over them (or placed at the row cursor if a
// leaf), shifting the whole subtree right if the centered position would
// collide with whatever was placed immediately to its left on this row.
func layoutNode(node *HierarchyNode, st *tidyState, cfg Config, isAncestry bool) {
	node.x = 0

	if len(node.Children) == 0 {
		placeOnRow(node, st, cfg, isAncestry)
		return
	}

	for _, c := range node.Children {
		layoutNode(c, st, cfg, isAncestry)
	}

	first := node.Children[0].x
	last := node.Children[len(node.Children)-1].x
	desired := (first + last) / 2

	minX := desired
	if prev := st.lastAtDepth[node.Depth]; prev != nil {
		sepMin := prev.x + separation(prev, node, cfg, isAncestry)
		if sepMin > minX {
			minX = sepMin
		}
	}

	if minX > desired {
		shiftSubtree(node, minX-desired)
	}
	node.x = minX
	st.lastAtDepth[node.Depth] = node
}

func placeOnRow(node *HierarchyNode, st *tidyState, cfg Config, isAncestry bool) {
	x := 0.0
	if prev := st.lastAtDepth[node.Depth]; prev != nil {
		x = prev.x + separation(prev, node, cfg, isAncestry)
	}
	node.x = x
	st.lastAtDepth[node.Depth] = node
}

func shiftSubtree(node *HierarchyNode, delta float64) {
	node.x += delta
	for _, c := range node.Children {
		shiftSubtree(c, delta)
	}
}

// separation implements spec step 7's separation function, in absolute
// layout units (already scaled by NodeSeparation).
func separation(a, b *HierarchyNode, cfg Config, isAncestry bool) float64 {
	units := 1.0
	if !isAncestry {
		shared := sharedParentCount(a.Person, b.Person)
		switch shared {
		case 0:
			units += 0.25
		case 1:
			units += 0.125
		}
		units += 0.5 * float64(len(a.Person.Rels.Spouses)+len(b.Person.Rels.Spouses))
	}
	return units * cfg.NodeSeparation
}

func sharedParentCount(a, b *person.Person) int {
	pa := parentIDs(a)
	pb := parentIDs(b)
	count := 0
	for id := range pa {
		if pb[id] {
			count++
		}
	}
	return count
}

func parentIDs(p *person.Person) map[string]bool {
	out := make(map[string]bool, 2)
	if p.Rels.Father != "" {
		out[p.Rels.Father] = true
	}
	if p.Rels.Mother != "" {
		out[p.Rels.Mother] = true
	}
	return out
}
