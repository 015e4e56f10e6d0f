package editops

import (
	"sort"

	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/person"
)

// CreatePerson allocates a fresh person with a collision-free id, empty
// data, and empty relations. It does not add the person to any graph —
// callers wire her in via AddRelative or LinkExisting.
func CreatePerson() *person.Person {
	return person.New(NewPersonID())
}

// CreatePersonWithGenderFromRelation allocates a fresh person whose
// gender is derived from the relation she is about to be added under:
// daughter/mother, or spouse of a male target, are female; every other
// case is male.
func CreatePersonWithGenderFromRelation(relType person.RelType, targetGender person.Gender) *person.Person {
	p := CreatePerson()
	switch {
	case relType == person.RelDaughter, relType == person.RelMother:
		p.SetGender(person.GenderFemale)
	case relType == person.RelSpouse && targetGender == person.GenderMale:
		p.SetGender(person.GenderFemale)
	default:
		p.SetGender(person.GenderMale)
	}
	return p
}

// AddRelative attaches req.NewPerson to req.TargetID as a relative of
// req.RelType, maintaining reciprocity and gender-consistency invariants.
// req.NewPerson must not already be present in g.
func AddRelative(g *person.Graph, req AddRelativeRequest) error {
	target := g.Get(req.TargetID)
	if target == nil {
		return famerrors.WrapReference(famerrors.ErrPersonNotFound, "editops", "AddRelative", req.TargetID)
	}
	if req.NewPerson == nil {
		return famerrors.WrapInvariant(famerrors.ErrPersonNotFound, "editops", "AddRelative", "nil new person")
	}
	if g.Has(req.NewPerson.ID) {
		return famerrors.WrapInvariant(famerrors.ErrAlreadyLinked, "editops", "AddRelative", req.NewPerson.ID)
	}

	g.Add(req.NewPerson)
	return wireRelative(g, target, req.NewPerson, req.RelType, req.OtherParentID)
}

// LinkExisting wires an already-present person to target, using the same
// rules as AddRelative but performing no creation.
func LinkExisting(g *person.Graph, req LinkExistingRequest) error {
	target := g.Get(req.TargetID)
	if target == nil {
		return famerrors.WrapReference(famerrors.ErrPersonNotFound, "editops", "LinkExisting", req.TargetID)
	}
	existing := g.Get(req.ExistingID)
	if existing == nil {
		return famerrors.WrapReference(famerrors.ErrPersonNotFound, "editops", "LinkExisting", req.ExistingID)
	}
	return wireRelative(g, target, existing, req.RelType, req.OtherParentID)
}

// wireRelative implements the per-relation-type wiring shared by
// AddRelative and LinkExisting.
func wireRelative(g *person.Graph, target, other *person.Person, relType person.RelType, otherParentID string) error {
	switch relType {
	case person.RelSon, person.RelDaughter:
		return wireChild(g, target, other, otherParentID)
	case person.RelFather, person.RelMother:
		return wireParent(g, target, other, relType)
	case person.RelSpouse:
		return wireSpouse(g, target, other)
	default:
		return famerrors.WrapInvariant(famerrors.ErrPersonNotFound, "editops", "wireRelative", "unknown rel type")
	}
}

func wireChild(g *person.Graph, target, child *person.Person, otherParentID string) error {
	if otherParentID == "_new" {
		wantGender := person.GenderFemale
		if target.Gender() == person.GenderFemale {
			wantGender = person.GenderMale
		}
		placeholder := person.NewToAdd(NewPersonID(), wantGender)
		g.Add(placeholder)
		linkSpouses(target, placeholder)
		otherParentID = placeholder.ID
	}

	if target.Gender() == person.GenderFemale {
		child.Rels.Mother = target.ID
	} else {
		child.Rels.Father = target.ID
	}
	appendUnique(&target.Rels.Children, child.ID)

	if otherParentID != "" {
		other := g.Get(otherParentID)
		if other == nil {
			return famerrors.WrapReference(famerrors.ErrPersonNotFound, "editops", "wireChild", otherParentID)
		}
		if other.Gender() == person.GenderFemale {
			child.Rels.Mother = other.ID
		} else {
			child.Rels.Father = other.ID
		}
		appendUnique(&other.Rels.Children, child.ID)
	}
	return nil
}

func wireParent(g *person.Graph, target, newParent *person.Person, relType person.RelType) error {
	var slot *string
	if relType == person.RelFather {
		newParent.SetGender(person.GenderMale)
		slot = &target.Rels.Father
	} else {
		newParent.SetGender(person.GenderFemale)
		slot = &target.Rels.Mother
	}

	if *slot != "" {
		if existing := g.Get(*slot); existing != nil && existing.ToAdd {
			removePlaceholder(g, existing.ID)
		}
	}

	*slot = newParent.ID
	appendUnique(&newParent.Rels.Children, target.ID)

	otherSlot := target.Rels.Mother
	if relType == person.RelMother {
		otherSlot = target.Rels.Father
	}
	if otherSlot != "" {
		if otherParent := g.Get(otherSlot); otherParent != nil {
			linkSpouses(newParent, otherParent)
		}
	}
	return nil
}

func wireSpouse(g *person.Graph, target, spouse *person.Person) error {
	for _, sid := range target.Rels.Spouses {
		if s := g.Get(sid); s != nil && s.ToAdd {
			removePlaceholder(g, s.ID)
			break
		}
	}
	linkSpouses(target, spouse)
	return nil
}

func linkSpouses(a, b *person.Person) {
	appendUnique(&a.Rels.Spouses, b.ID)
	appendUnique(&b.Rels.Spouses, a.ID)
}

func appendUnique(slice *[]string, id string) {
	for _, x := range *slice {
		if x == id {
			return
		}
	}
	*slice = append(*slice, id)
}

// removePlaceholder deletes a to_add person outright: unlinks her from
// every spouse and child that references her. Placeholders never gain
// real relatives beyond the pair they were created for, so a plain
// splice is safe.
func removePlaceholder(g *person.Graph, id string) {
	ph := g.Get(id)
	if ph == nil {
		return
	}
	for _, sid := range ph.Rels.Spouses {
		if s := g.Get(sid); s != nil {
			removeID(&s.Rels.Spouses, id)
		}
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

func removeID(slice *[]string, id string) {
	for i, x := range *slice {
		if x == id {
			*slice = append((*slice)[:i], (*slice)[i+1:]...)
			return
		}
	}
}

// MoveToAddToAdded clears the to_add flag on id once real data has been
// saved for her. The id itself is retained (spec's design note: a
// promoted placeholder keeps its original id).
func MoveToAddToAdded(g *person.Graph, id string) error {
	p := g.Get(id)
	if p == nil {
		return famerrors.WrapReference(famerrors.ErrPersonNotFound, "editops", "MoveToAddToAdded", id)
	}
	p.ToAdd = false
	return nil
}

// GetLinkCandidates returns every real, non-placeholder person eligible
// to be linked to targetID as a relative of relType: not the target
// herself, not already a spouse of the target, and — for
// ancestry/progeny relation types — not among the target's ancestors or
// descendants (which would create a cycle). For child relation types,
// descendants of the target's existing partners are excluded too, since
// linking one of them would also create a cycle through the shared
// child.
func GetLinkCandidates(g *person.Graph, targetID string, relType person.RelType) []*person.Person {
	target := g.Get(targetID)
	if target == nil {
		return nil
	}

	var forbidden map[string]bool
	switch relType {
	case person.RelFather, person.RelMother, person.RelSon, person.RelDaughter:
		forbidden = ancestorSet(g, targetID)
		for id := range descendantSet(g, targetID) {
			forbidden[id] = true
		}
		if relType == person.RelSon || relType == person.RelDaughter {
			for _, spouseID := range target.Rels.Spouses {
				for id := range descendantSet(g, spouseID) {
					forbidden[id] = true
				}
			}
		}
	default:
		forbidden = map[string]bool{}
	}

	var out []*person.Person
	for _, p := range g.All() {
		if p.ID == targetID || p.ToAdd || forbidden[p.ID] {
			continue
		}
		if target.IsSpouseOf(p.ID) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
