package layout

import "strconv"

// attachPoints computes each node's parent-side attach point (psx, psy):
// the midpoint between its two biological parents' node positions when
// both are displayed, or the one displayed parent's position otherwise.
// It reads person.Rels rather than Node.Parents because a node's Parents
// slice holds only the tree-parent it was reached through, not
// necessarily the co-parent.
func attachPoints(main *Node) {
	nodes := collectNodes(main)
	for _, n := range nodes {
		if n.Person == nil {
			continue
		}
		var xs []float64
		var y float64
		for _, id := range [2]string{n.Person.Rels.Father, n.Person.Rels.Mother} {
			if id == "" {
				continue
			}
			if pn := nodeByPersonID(nodes, id); pn != nil {
				xs = append(xs, pn.X)
				y = pn.Y
			}
		}
		if len(xs) == 0 {
			continue
		}
		sum := 0.0
		for _, x := range xs {
			sum += x
		}
		n.PSX = sum / float64(len(xs))
		n.PSY = y
	}
}

// wireEdges populates From/To/ToAncestry per the data model's edge
// contract (spec step 17). The focus node never gets a To (it draws
// only upward, via ToAncestry); every other node's To is its Children.
// An ancestor node's From is the single tree-parent that led to it.
// A descendant node's From is [p1, p2]: the tree-parent plus that
// parent's matching spouse (the child's other biological parent), with
// the back-pointer registered on both so either endpoint can draw the
// edge. A descendant-side spouse node shares its partner's Children
// slice, so it is not wired from its own side: it gets To entries only
// through that back-pointer. ToAncestry is every node's Parents, run up
// to the ancestor side.
func wireEdges(main *Node) {
	nodes := collectNodes(main)
	for _, n := range nodes {
		if n.Spouse != nil && !n.IsAncestry {
			continue
		}
		for _, c := range n.Children {
			if n != main {
				n.To = append(n.To, c)
			}
			if n.IsAncestry {
				c.From = append(c.From, n)
				continue
			}
			wireDescendantFrom(nodes, n, c)
		}
		if len(n.Parents) > 0 {
			n.ToAncestry = append(n.ToAncestry, n.Parents...)
		}
	}
}

// wireDescendantFrom sets child.From to [p1, p2]: p1 is the tree-parent
// p already known from the Children link; p2 is p1's spouse matching
// the child's other biological parent, found by person id among p1's
// placed spouse nodes. p2 also gets the back-pointer into its To so the
// edge is discoverable from either parent.
func wireDescendantFrom(nodes []*Node, p1, child *Node) {
	child.From = append(child.From, p1)
	if child.Person == nil || p1.Person == nil {
		return
	}
	other := child.Person.Rels.Father
	if other == p1.Person.ID {
		other = child.Person.Rels.Mother
	}
	if other == "" || other == p1.Person.ID {
		return
	}
	p2 := nodeByPersonID(nodes, other)
	if p2 == nil || p2 == p1 {
		return
	}
	child.From = append(child.From, p2)
	p2.To = append(p2.To, child)
}

// assignTID gives every node a unique layout id: the bare person id
// when that person appears only once, or id plus an occurrence suffix
// when duplicate-branch resolution left more than one node for the same
// person. Duplicate is set to the total occurrence count on every one
// of those nodes so the renderer can style them distinctly.
func assignTID(main *Node) {
	nodes := collectNodes(main)
	counts := make(map[string]int, len(nodes))
	for _, n := range nodes {
		if n.Person != nil {
			counts[n.Person.ID]++
		}
	}
	occurrence := make(map[string]int, len(nodes))
	for _, n := range nodes {
		if n.Person == nil {
			continue
		}
		id := n.Person.ID
		idx := occurrence[id]
		occurrence[id] = idx + 1
		if counts[id] > 1 {
			n.Duplicate = counts[id]
			n.TID = id + "_dup" + strconv.Itoa(idx)
		} else {
			n.TID = id
		}
	}
}

// computeDim returns the axis-aligned bounding box of every node's
// position, plus the offset that would translate it to start at (0, 0).
func computeDim(main *Node) Dim {
	nodes := collectNodes(main)
	if len(nodes) == 0 {
		return Dim{}
	}
	minX, maxX := nodes[0].X, nodes[0].X
	minY, maxY := nodes[0].Y, nodes[0].Y
	for _, n := range nodes {
		if n.X < minX {
			minX = n.X
		}
		if n.X > maxX {
			maxX = n.X
		}
		if n.Y < minY {
			minY = n.Y
		}
		if n.Y > maxY {
			maxY = n.Y
		}
	}
	return Dim{Width: maxX - minX, Height: maxY - minY, XOff: -minX, YOff: -minY}
}

// orientHorizontal swaps X and Y (and psx/psy) on every node, turning a
// vertical generations-grow-downward layout into a horizontal
// generations-grow-rightward one.
func orientHorizontal(main *Node) {
	for _, n := range collectNodes(main) {
		n.X, n.Y = n.Y, n.X
		n.PSX, n.PSY = n.PSY, n.PSX
		n.EnterX, n.EnterY = n.EnterY, n.EnterX
	}
}
