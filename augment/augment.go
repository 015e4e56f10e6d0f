// Package augment implements the Synthetic Augmentor: it extends a person
// graph with to_add placeholder spouses so that every child has both a
// father and a mother slot filled, which the layout engine relies on to
// avoid branching on missing parents.
package augment

import (
	"fmt"

	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/person"
)

// placeholderIDPrefix namespaces synthetic ids so they never collide with
// real person ids minted by editops.NewPersonID.
const placeholderIDPrefix = "to_add--"

// Augment extends g in place: for every person p with a child that lacks
// an opposite-gender partner among p's spouses, a to_add spouse is found
// or created, linked as a spouse of p, and back-filled as the missing
// parent on every such orphan-second-parent child.
//
// Augment is idempotent: running it twice produces the same graph as
// running it once, because the second pass finds every gap already
// closed by the first and creates nothing new.
func Augment(g *person.Graph) error {
	for _, p := range g.All() {
		if p.ToAdd {
			continue
		}
		orphaned := orphanChildren(g, p)
		if len(orphaned) == 0 {
			continue
		}
		placeholder, err := findOrCreatePlaceholder(g, p)
		if err != nil {
			return famerrors.Wrap(err, "augment", "Augment", "find or create placeholder spouse")
		}
		for _, child := range orphaned {
			linkPlaceholderParent(placeholder, child)
		}
	}
	return nil
}

// orphanChildren returns p's children that are missing a parent slot for
// an opposite-gender partner of p — i.e. children that need a to_add
// second parent created or reused.
func orphanChildren(g *person.Graph, p *person.Person) []*person.Person {
	var out []*person.Person
	for _, cid := range p.Rels.Children {
		c := g.Get(cid)
		if c == nil {
			continue
		}
		if p.Gender() == person.GenderFemale {
			if c.Rels.Father == "" {
				out = append(out, c)
			}
		} else {
			if c.Rels.Mother == "" {
				out = append(out, c)
			}
		}
	}
	return out
}

// findOrCreatePlaceholder returns p's existing to_add spouse of the
// opposite gender if one exists, or creates and links a fresh one.
func findOrCreatePlaceholder(g *person.Graph, p *person.Person) (*person.Person, error) {
	wantGender := person.GenderFemale
	if p.Gender() == person.GenderFemale {
		wantGender = person.GenderMale
	}

	for _, sid := range p.Rels.Spouses {
		s := g.Get(sid)
		if s != nil && s.ToAdd && s.Gender() == wantGender {
			return s, nil
		}
	}

	id := fmt.Sprintf("%s%s", placeholderIDPrefix, p.ID)
	for g.Has(id) {
		id += "-"
	}
	placeholder := person.NewToAdd(id, wantGender)
	g.Add(placeholder)

	p.Rels.Spouses = append(p.Rels.Spouses, placeholder.ID)
	placeholder.Rels.Spouses = append(placeholder.Rels.Spouses, p.ID)

	return placeholder, nil
}

// linkPlaceholderParent wires child's missing parent slot to placeholder
// and appends child to placeholder's children, without disturbing any
// slot the child already has filled.
func linkPlaceholderParent(placeholder, child *person.Person) {
	already := false
	for _, cid := range placeholder.Rels.Children {
		if cid == child.ID {
			already = true
			break
		}
	}
	if !already {
		placeholder.Rels.Children = append(placeholder.Rels.Children, child.ID)
	}

	if placeholder.Gender() == person.GenderFemale {
		child.Rels.Mother = placeholder.ID
	} else {
		child.Rels.Father = placeholder.ID
	}
}

// IsPlaceholder reports whether id was minted by Augment, independent of
// the person's current ToAdd flag (useful once a placeholder has been
// promoted to real via editops.MoveToAddToAdded, which clears ToAdd but
// keeps the id per the spec's design note).
func IsPlaceholder(id string) bool {
	return len(id) >= len(placeholderIDPrefix) && id[:len(placeholderIDPrefix)] == placeholderIDPrefix
}
