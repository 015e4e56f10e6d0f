package editops

import (
	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/person"
)

// DeletePerson removes id from g, or demotes her to unknown if removing
// her would leave a relative unable to reach anchorID. anchorID is
// normally the store's current focus; callers that have none should pass
// the empty string, which falls back to the graph's first person.
//
// After a hard delete, every to_add placeholder left with no spouse is
// cascade-deleted, and an empty graph is repopulated with a fresh blank
// person so the store's focus invariant never breaks.
func DeletePerson(g *person.Graph, id string, anchorID string) error {
	p := g.Get(id)
	if p == nil {
		return famerrors.WrapReference(famerrors.ErrPersonNotFound, "editops", "DeletePerson", id)
	}

	if anchorID == "" || !g.Has(anchorID) {
		if first := g.First(); first != nil {
			anchorID = first.ID
		}
	}

	if anchorID != "" && anchorID != id && !p.ToAdd && !RelativesConnectedWithoutPerson(g, id, anchorID) {
		demoteToUnknown(p)
		return nil
	}

	formerSpouses := append([]string(nil), p.Rels.Spouses...)
	removeAllReferences(g, id)
	RemoveRefMirrors(g, id)
	g.Remove(id)

	for _, sid := range formerSpouses {
		if s := g.Get(sid); s != nil && s.ToAdd && len(s.Rels.Spouses) == 0 {
			cascadeDeletePlaceholder(g, sid)
		}
	}

	if g.Len() == 0 {
		g.Add(person.New(NewPersonID()))
	}

	return nil
}

// demoteToUnknown keeps a person's relations and gender intact but blanks
// every other attribute, per the delete-safety invariant.
func demoteToUnknown(p *person.Person) {
	gender := p.Gender()
	p.Data = make(map[string]any)
	p.SetGender(gender)
	p.Unknown = true
}

// removeAllReferences strips id out of every other person's relation
// slots. It does not touch id's own Rels.
func removeAllReferences(g *person.Graph, id string) {
	for _, q := range g.All() {
		if q.ID == id {
			continue
		}
		if q.Rels.Father == id {
			q.Rels.Father = ""
		}
		if q.Rels.Mother == id {
			q.Rels.Mother = ""
		}
		removeID(&q.Rels.Spouses, id)
		removeID(&q.Rels.Children, id)
	}
}

// cascadeDeletePlaceholder removes a to_add person who has been orphaned
// by a spouse's deletion, clearing her from any child's parent slot
// without disturbing the child's other (real) parent.
func cascadeDeletePlaceholder(g *person.Graph, id string) {
	ph := g.Get(id)
	if ph == nil {
		return
	}
	for _, cid := range ph.Rels.Children {
		if c := g.Get(cid); c != nil {
			if c.Rels.Father == id {
				c.Rels.Father = ""
			}
			if c.Rels.Mother == id {
				c.Rels.Mother = ""
			}
		}
	}
	g.Remove(id)
}
