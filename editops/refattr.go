package editops

import "github.com/chris-hammersley/family-chart/person"

// ApplyPersonEdit merges updates into p.Data, mirroring any relation-scoped
// field (a key of the form "<field>__ref__<otherID>") onto the other
// person's own "<field>__ref__<selfID>" key. Plain fields are copied as
// given. Keys mirrored to a person absent from g are still recorded on p
// (the reference is meaningless but harmless) and simply skip the mirror
// step.
func ApplyPersonEdit(g *person.Graph, p *person.Person, updates map[string]any) {
	if p.Data == nil {
		p.Data = make(map[string]any)
	}
	for key, value := range updates {
		p.Data[key] = value
		field, otherID, ok := person.ParseRefAttrKey(key)
		if !ok {
			continue
		}
		if other := g.Get(otherID); other != nil {
			if other.Data == nil {
				other.Data = make(map[string]any)
			}
			other.Data[person.RefAttrKey(field, p.ID)] = value
		}
	}
}

// RemoveRefMirrors deletes every relation-scoped attribute anywhere in g
// that mirrors id — i.e. every key of the form "<field>__ref__<id>" on
// any other person. Called by DeletePerson before a person is spliced
// out, so no dangling mirror keys survive her.
func RemoveRefMirrors(g *person.Graph, id string) {
	suffix := "__ref__" + id
	for _, q := range g.All() {
		if q.ID == id {
			continue
		}
		for key := range q.Data {
			if len(key) > len(suffix) && key[len(key)-len(suffix):] == suffix {
				delete(q.Data, key)
			}
		}
	}
}
