package layout

import (
	"sort"

	"github.com/chris-hammersley/family-chart/person"
)

// placeSpouses walks every node already in the merged tree and, for
// each of that person's Rels.Spouses not already present as a sibling
// node under the same parent context, creates an adjacent spouse node:
// offset one NodeSeparation to the side, sharing the same Y and the
// same Children (a spouse doesn't duplicate the children row — it just
// sits beside the parent that owns it in this hierarchy). A spouse
// created only because augment.Augment inserted a to_add placeholder is
// marked Added so the renderer can draw it differently.
func placeSpouses(g *person.Graph, main *Node, cfg Config) {
	nodes := collectNodes(main)
	for _, n := range nodes {
		if n.Person == nil || len(n.Spouses) > 0 {
			continue
		}
		spouseIDs := append([]string(nil), n.Person.Rels.Spouses...)
		if cfg.SortSpousesFunc != nil {
			sort.SliceStable(spouseIDs, func(i, j int) bool {
				si, sj := g.Get(spouseIDs[i]), g.Get(spouseIDs[j])
				if si == nil || sj == nil {
					return false
				}
				return cfg.SortSpousesFunc(si, sj)
			})
		}
		for i, sid := range spouseIDs {
			sp := g.Get(sid)
			if sp == nil {
				continue
			}
			alreadyPlaced := false
			for _, o := range nodes {
				if o != n && o.Person == sp && o.IsAncestry == n.IsAncestry &&
					n.hierarchyParent != "" && o.hierarchyParent == n.hierarchyParent {
					alreadyPlaced = true
				}
			}
			if alreadyPlaced {
				continue
			}
			side := float64(i + 1)
			sn := &Node{
				Person:     sp,
				X:          n.X + side*cfg.NodeSeparation,
				Y:          n.Y,
				Depth:      n.Depth,
				IsAncestry: n.IsAncestry,
				Added:      sp.ToAdd,
				Spouse:     n,
			}
			sn.Children = n.Children
			n.Spouses = append(n.Spouses, sn)
			sn.FromSpouse = n
		}
	}
}
