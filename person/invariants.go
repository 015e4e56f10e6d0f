package person

import (
	"fmt"

	famerrors "github.com/chris-hammersley/family-chart/errors"
)

// CheckReciprocity verifies that every relation slot on every person has
// its mirror on the referenced person: father/mother point back through
// Children, every child in Children names p as father or mother, and
// spouse links are symmetric. It is total over a well-formed graph (no
// dangling ids) and returns the first violation found.
func CheckReciprocity(g *Graph) error {
	for _, p := range g.All() {
		for _, cid := range p.Rels.Children {
			c := g.Get(cid)
			if c == nil || (c.Rels.Father != p.ID && c.Rels.Mother != p.ID) {
				return famerrors.WrapInvariant(famerrors.ErrReciprocityBroken, "person", "CheckReciprocity",
					fmt.Sprintf("%s lists child %s but the mirror is missing", p.ID, cid))
			}
		}
		if p.Rels.Father != "" {
			if !childOf(g, p.Rels.Father, p.ID) {
				return famerrors.WrapInvariant(famerrors.ErrReciprocityBroken, "person", "CheckReciprocity",
					fmt.Sprintf("%s.father=%s but %s is not in %s.children", p.ID, p.Rels.Father, p.ID, p.Rels.Father))
			}
		}
		if p.Rels.Mother != "" {
			if !childOf(g, p.Rels.Mother, p.ID) {
				return famerrors.WrapInvariant(famerrors.ErrReciprocityBroken, "person", "CheckReciprocity",
					fmt.Sprintf("%s.mother=%s but %s is not in %s.children", p.ID, p.Rels.Mother, p.ID, p.Rels.Mother))
			}
		}
		for _, sid := range p.Rels.Spouses {
			s := g.Get(sid)
			if s == nil || !s.IsSpouseOf(p.ID) {
				return famerrors.WrapInvariant(famerrors.ErrReciprocityBroken, "person", "CheckReciprocity",
					fmt.Sprintf("%s lists spouse %s but the mirror is missing", p.ID, sid))
			}
		}
	}
	return nil
}

func childOf(g *Graph, parentID, childID string) bool {
	parent := g.Get(parentID)
	if parent == nil {
		return false
	}
	for _, c := range parent.Rels.Children {
		if c == childID {
			return true
		}
	}
	return false
}

// CheckNoDanglingReferences verifies that every id appearing in any
// relation slot resolves to a person in the graph.
func CheckNoDanglingReferences(g *Graph) error {
	for _, p := range g.All() {
		for _, id := range relatedIDs(p) {
			if id != "" && !g.Has(id) {
				return famerrors.WrapReference(famerrors.ErrDanglingReference, "person", "CheckNoDanglingReferences",
					fmt.Sprintf("%s references %s", p.ID, id))
			}
		}
	}
	return nil
}

func relatedIDs(p *Person) []string {
	ids := make([]string, 0, 2+len(p.Rels.Spouses)+len(p.Rels.Children))
	if p.Rels.Father != "" {
		ids = append(ids, p.Rels.Father)
	}
	if p.Rels.Mother != "" {
		ids = append(ids, p.Rels.Mother)
	}
	ids = append(ids, p.Rels.Spouses...)
	ids = append(ids, p.Rels.Children...)
	return ids
}

// CheckNoSelfLoop verifies that no person is her own ancestor by walking
// up every father and mother line from every person.
func CheckNoSelfLoop(g *Graph) error {
	for _, p := range g.All() {
		seen := map[string]bool{}
		stack := []string{p.Rels.Father, p.Rels.Mother}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if id == "" || seen[id] {
				continue
			}
			if id == p.ID {
				return famerrors.WrapInvariant(famerrors.ErrSelfLoop, "person", "CheckNoSelfLoop", p.ID)
			}
			seen[id] = true
			if anc := g.Get(id); anc != nil {
				stack = append(stack, anc.Rels.Father, anc.Rels.Mother)
			}
		}
	}
	return nil
}

// CheckGenderConsistency verifies that every person referenced as a
// father has gender M and every person referenced as a mother has gender
// F, per the data-model invariant.
func CheckGenderConsistency(g *Graph) error {
	for _, p := range g.All() {
		if p.Rels.Father != "" {
			if f := g.Get(p.Rels.Father); f != nil && f.Gender() != GenderMale {
				return famerrors.WrapInvariant(famerrors.ErrGenderConflict, "person", "CheckGenderConsistency",
					fmt.Sprintf("%s is referenced as father but has gender %q", f.ID, f.Gender()))
			}
		}
		if p.Rels.Mother != "" {
			if m := g.Get(p.Rels.Mother); m != nil && m.Gender() != GenderFemale {
				return famerrors.WrapInvariant(famerrors.ErrGenderConflict, "person", "CheckGenderConsistency",
					fmt.Sprintf("%s is referenced as mother but has gender %q", m.ID, m.Gender()))
			}
		}
	}
	return nil
}

// CheckAll runs every invariant check and returns the first failure.
func CheckAll(g *Graph) error {
	checks := []func(*Graph) error{
		CheckNoDanglingReferences,
		CheckReciprocity,
		CheckNoSelfLoop,
		CheckGenderConsistency,
	}
	for _, check := range checks {
		if err := check(g); err != nil {
			return err
		}
	}
	return nil
}
