package layout

import (
	"sort"

	"github.com/chris-hammersley/family-chart/person"
)

// HierarchyNode is an intermediate tree node built while deriving the
// ancestor/descendant hierarchies, before the tidy-tree pass assigns
// coordinates. It mirrors one appearance of a person; a person reachable
// along more than one path gets several HierarchyNodes for the same
// person id, which duplicate resolution (package-internal duplicate.go)
// then collapses or keeps.
type HierarchyNode struct {
	Person   *person.Person
	Parent   *HierarchyNode
	Children []*HierarchyNode
	Depth    int

	// x is the position assigned by the tidy-tree pass (tidy.go); it is
	// read relative to the hierarchy's own root before merge.go rebases
	// it into the shared coordinate system.
	x float64

	// SpouseOf is set while building the descendant hierarchy to record
	// which spouse of the tree-parent is this child's other biological
	// parent, used for descendant duplicate-group keys and later to
	// resolve the parent-side attach point.
	SpouseOf string

	// toggle state, populated by duplicate.go when enabled.
	toggleID    string
	toggleValue map[string]int64
	collapsed   bool
}

// buildDescendantHierarchy builds the tree rooted at focus whose
// child-getter is focus.Rels.Children, applying the spec's ordering
// rules: user comparator first, then in-flight new-relation children
// moved to the end, then reordered by the order of spouses on the
// parent.
func buildDescendantHierarchy(g *person.Graph, focus *person.Person, cfg Config) *HierarchyNode {
	root := &HierarchyNode{Person: focus}
	var walk func(node *HierarchyNode)
	walk = func(node *HierarchyNode) {
		children := orderedChildren(g, node.Person, cfg)
		for _, c := range children {
			spouseOf := c.Rels.Father
			if spouseOf == node.Person.ID {
				spouseOf = c.Rels.Mother
			}
			child := &HierarchyNode{Person: c, Parent: node, Depth: node.Depth + 1, SpouseOf: spouseOf}
			node.Children = append(node.Children, child)
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(root)
	if cfg.ModifyTreeHierarchy != nil {
		cfg.ModifyTreeHierarchy(root)
	}
	return root
}

// orderedChildren resolves a person's children in layout order: run the
// caller's sort comparator (if any), move children with in-flight
// _new_rel_data to the end, then reorder so that children of earlier
// spouses come first — mirrored for a female parent so the spouse
// sequence reads outward from the focus.
func orderedChildren(g *person.Graph, p *person.Person, cfg Config) []*person.Person {
	ids := p.Rels.Children
	children := make([]*person.Person, 0, len(ids))
	for _, id := range ids {
		if c := g.Get(id); c != nil {
			children = append(children, c)
		}
	}

	if cfg.SortChildrenFunc != nil {
		sort.SliceStable(children, func(i, j int) bool { return cfg.SortChildrenFunc(children[i], children[j]) })
	}

	sort.SliceStable(children, func(i, j int) bool {
		iNew := children[i].NewRelData != nil
		jNew := children[j].NewRelData != nil
		return !iNew && jNew
	})

	spouseRank := make(map[string]int, len(p.Rels.Spouses))
	for i, sid := range p.Rels.Spouses {
		spouseRank[sid] = i
	}
	otherParentOf := func(c *person.Person) string {
		if c.Rels.Father == p.ID {
			return c.Rels.Mother
		}
		return c.Rels.Father
	}
	rankOf := func(c *person.Person) int {
		r, ok := spouseRank[otherParentOf(c)]
		if !ok {
			return len(p.Rels.Spouses)
		}
		if p.Gender() == person.GenderFemale {
			return len(p.Rels.Spouses) - r
		}
		return r
	}
	sort.SliceStable(children, func(i, j int) bool { return rankOf(children[i]) < rankOf(children[j]) })

	return children
}

// buildAncestorHierarchy builds the tree rooted at focus whose
// child-getter is [father, mother].
func buildAncestorHierarchy(g *person.Graph, focus *person.Person, cfg Config) *HierarchyNode {
	root := &HierarchyNode{Person: focus}
	var walk func(node *HierarchyNode)
	walk = func(node *HierarchyNode) {
		for _, pid := range []string{node.Person.Rels.Father, node.Person.Rels.Mother} {
			if pid == "" {
				continue
			}
			parent := g.Get(pid)
			if parent == nil {
				continue
			}
			child := &HierarchyNode{Person: parent, Parent: node, Depth: node.Depth + 1}
			node.Children = append(node.Children, child)
			walk(child)
		}
	}
	walk(root)
	if cfg.ModifyTreeHierarchy != nil {
		cfg.ModifyTreeHierarchy(root)
	}
	return root
}

// trimDepth removes every node deeper than maxDepth (root is depth 0).
func trimDepth(root *HierarchyNode, maxDepth int) {
	var walk func(node *HierarchyNode)
	walk = func(node *HierarchyNode) {
		if node.Depth >= maxDepth {
			node.Children = nil
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(root)
}

// flatten returns every node in the hierarchy in pre-order.
func flatten(root *HierarchyNode) []*HierarchyNode {
	var out []*HierarchyNode
	var walk func(*HierarchyNode)
	walk = func(n *HierarchyNode) {
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}
