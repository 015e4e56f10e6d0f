package layout

// mergeHierarchies converts the two independently tidy-tree-positioned
// hierarchies into a single flat node list, sharing one Node for the
// focus person: its Children come from the descendant side (Y growing
// downward), its Parents from the ancestor side (Y growing upward). Both
// sides are re-offset so the focus sits at X=0 in the merged coordinate
// system, since each tidy-tree pass produces its own independent origin.
func mergeHierarchies(desc, anc *HierarchyNode, cfg Config) *Node {
	offsetDesc := -desc.x
	offsetAnc := -anc.x

	main := convertDescendant(desc, offsetDesc, cfg)
	ancMain := convertAncestor(anc, offsetAnc, cfg)

	main.Parents = ancMain.Parents
	for _, parentNode := range main.Parents {
		for i, c := range parentNode.Children {
			if c == ancMain {
				parentNode.Children[i] = main
			}
		}
	}
	return main
}

func convertDescendant(h *HierarchyNode, offset float64, cfg Config) *Node {
	n := &Node{
		Person:      h.Person,
		X:           h.x + offset,
		Y:           float64(h.Depth) * cfg.LevelSeparation,
		Depth:       h.Depth,
		ToggleID:    h.toggleID,
		ToggleValue: h.toggleValue,
	}
	for _, c := range h.Children {
		cn := convertDescendant(c, offset, cfg)
		cn.Parents = append(cn.Parents, n)
		cn.hierarchyParent = n.Person.ID
		n.Children = append(n.Children, cn)
	}
	return n
}

func convertAncestor(h *HierarchyNode, offset float64, cfg Config) *Node {
	n := &Node{
		Person:      h.Person,
		X:           h.x + offset,
		Y:           -float64(h.Depth) * cfg.LevelSeparation,
		Depth:       h.Depth,
		IsAncestry:  true,
		ToggleID:    h.toggleID,
		ToggleValue: h.toggleValue,
	}
	for _, c := range h.Children {
		cn := convertAncestor(c, offset, cfg)
		n.Parents = append(n.Parents, cn)
		cn.hierarchyParent = n.Person.ID
		cn.Children = append(cn.Children, n)
	}
	return n
}

// collectNodes walks out from main in every direction (descendant
// children, ancestor parents, and whatever placeSpouses/insertSiblings
// attached later) and returns every reachable node exactly once.
func collectNodes(main *Node) []*Node {
	seen := make(map[*Node]bool)
	order := make([]*Node, 0)
	var visit func(n *Node)
	visit = func(n *Node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		order = append(order, n)
		for _, c := range n.Children {
			visit(c)
		}
		for _, p := range n.Parents {
			visit(p)
		}
		for _, s := range n.Spouses {
			visit(s)
		}
	}
	visit(main)
	return order
}

// nodeByPersonID finds the first node for a given person id, used by
// spouse/sibling insertion to look up an already-placed node.
func nodeByPersonID(nodes []*Node, id string) *Node {
	for _, n := range nodes {
		if n.Person != nil && n.Person.ID == id {
			return n
		}
	}
	return nil
}
