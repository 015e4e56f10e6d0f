package editops

import (
	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/person"
)

// ToggleHide applies req: hides or shows a person's ancestor or
// descendant branch. Hiding ancestors detaches both parent slots at once.
// Hiding descendants detaches every current child, and does so
// symmetrically on the child's other parent too, so the child vanishes
// from the layout regardless of which parent it's reached through.
// Showing restores exactly the ids that were hidden, in the same slots.
func ToggleHide(g *person.Graph, req ToggleHideRequest) error {
	p := g.Get(req.ID)
	if p == nil {
		return famerrors.WrapReference(famerrors.ErrPersonNotFound, "editops", "ToggleHide", req.ID)
	}

	switch req.Side {
	case ToggleAncestors:
		if req.Show {
			p.ShowAncestors()
		} else {
			p.HideAncestors()
		}
	case ToggleChildren:
		if req.Show {
			showChildren(g, p)
		} else {
			hideChildren(g, p)
		}
	default:
		return famerrors.WrapInvariant(famerrors.ErrPersonNotFound, "editops", "ToggleHide", "unknown side")
	}
	return nil
}

func hideChildren(g *person.Graph, p *person.Person) {
	children := append([]string(nil), p.Rels.Children...)
	for _, cid := range children {
		child := g.Get(cid)
		coParentID := otherParentOf(child, p.ID)
		p.HideChild(cid)
		if coParentID != "" {
			if cp := g.Get(coParentID); cp != nil {
				cp.HideChild(cid)
			}
		}
	}
}

func showChildren(g *person.Graph, p *person.Person) {
	hidden := p.HiddenChildren()
	for _, cid := range hidden {
		child := g.Get(cid)
		coParentID := otherParentOf(child, p.ID)
		p.ShowChild(cid)
		if coParentID != "" {
			if cp := g.Get(coParentID); cp != nil {
				cp.ShowChild(cid)
			}
		}
	}
}

// otherParentOf returns child's parent slot that is not thisParentID, or
// "" if child is nil or has no other parent on record.
func otherParentOf(child *person.Person, thisParentID string) string {
	if child == nil {
		return ""
	}
	if child.Rels.Father != "" && child.Rels.Father != thisParentID {
		return child.Rels.Father
	}
	if child.Rels.Mother != "" && child.Rels.Mother != thisParentID {
		return child.Rels.Mother
	}
	return ""
}
