// Package person defines the authoritative data model for the family-tree
// engine: individual Person records, their parent/child/spouse relations,
// and the Graph that owns a collection of them. Every mutation that keeps
// the graph's invariants intact lives in package editops; this package
// only knows how to construct, read, and directly splice relations — it
// performs no invariant checking of its own beyond what a getter needs to
// stay total.
package person

import "strings"

// Gender is the reserved "gender" data key's value space.
type Gender string

const (
	GenderUnset Gender = ""
	GenderMale  Gender = "M"
	GenderFemale Gender = "F"
)

// RelType enumerates the kinds of relative that editops.AddRelative can
// create, mirroring the rel_type values carried by NewRelData.
type RelType string

const (
	RelFather  RelType = "father"
	RelMother  RelType = "mother"
	RelSon     RelType = "son"
	RelDaughter RelType = "daughter"
	RelSpouse  RelType = "spouse"
)

// genderDataKey is the reserved attribute key holding a person's gender.
const genderDataKey = "gender"

// refSuffix is the separator used by relation-scoped attribute keys of the
// form "<field>__ref__<otherID>".
const refSuffix = "__ref__"

// Relations holds a person's father/mother/spouse/children links. The zero
// value is a person with no known relatives.
type Relations struct {
	Father   string   `json:"father,omitempty"`
	Mother   string   `json:"mother,omitempty"`
	Spouses  []string `json:"spouses,omitempty"`
	Children []string `json:"children,omitempty"`
}

// Clone returns a deep copy of r.
func (r Relations) Clone() Relations {
	return Relations{
		Father:   r.Father,
		Mother:   r.Mother,
		Spouses:  append([]string(nil), r.Spouses...),
		Children: append([]string(nil), r.Children...),
	}
}

// NewRelData carries in-flight information about a relation currently
// being created through a form, set transiently by editops and consumed
// by the layout engine's child-ordering step.
type NewRelData struct {
	RelType       RelType `json:"rel_type"`
	OtherParentID string  `json:"other_parent_id"` // "_new" means "create a to_add placeholder"
}

// Person is a single node in the family graph: identity, free-form
// attributes, relations, and the transient system flags spec'd in the
// data model (ToAdd, Unknown, NewRelData).
type Person struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data,omitempty"`
	Rels Relations      `json:"rels"`

	// rels holds relations detached by a hide-branch toggle, restored
	// verbatim by the matching show-branch toggle. Only the Hide*/Show*
	// methods touch it, called by editops.ToggleHide. Unexported, so a
	// hidden branch does not survive a JSON round-trip through
	// persistence or famimport — restoring it is out of scope (see
	// DESIGN.md).
	rels *Relations

	ToAdd      bool        `json:"to_add,omitempty"`
	Unknown    bool        `json:"unknown,omitempty"`
	NewRelData *NewRelData `json:"new_rel_data,omitempty"`
}

// New creates a person with the given id and no relations or attributes.
func New(id string) *Person {
	return &Person{ID: id, Data: make(map[string]any)}
}

// NewToAdd creates a synthetic placeholder spouse: an id, ToAdd=true, a
// gender, and nothing else.
func NewToAdd(id string, gender Gender) *Person {
	p := New(id)
	p.ToAdd = true
	p.SetGender(gender)
	return p
}

// Gender returns the person's gender, read from the reserved data key.
func (p *Person) Gender() Gender {
	if p.Data == nil {
		return GenderUnset
	}
	v, _ := p.Data[genderDataKey].(string)
	return Gender(v)
}

// SetGender sets the person's gender without checking the "locked once a
// real child exists" invariant; HasRealChild reports whether that lock
// applies, and callers that must respect it check it themselves.
func (p *Person) SetGender(g Gender) {
	if p.Data == nil {
		p.Data = make(map[string]any)
	}
	if g == GenderUnset {
		delete(p.Data, genderDataKey)
		return
	}
	p.Data[genderDataKey] = string(g)
}

// HasRealChild reports whether p has at least one child that is not itself
// a to_add placeholder's only purpose — i.e. whether p's gender is locked
// per the data-model invariant. g is the owning graph, needed to resolve
// child ids to their ToAdd flag.
func (p *Person) HasRealChild(g *Graph) bool {
	for _, cid := range p.Rels.Children {
		if c := g.Get(cid); c != nil && !c.ToAdd {
			return true
		}
	}
	return false
}

// ensureHidden lazily allocates the hidden mirror slot.
func (p *Person) ensureHidden() *Relations {
	if p.rels == nil {
		p.rels = &Relations{}
	}
	return p.rels
}

// cleanupHidden drops the hidden mirror slot once it holds nothing, so
// HasHiddenAncestors/HasHiddenChildren stay accurate without a separate
// boolean.
func (p *Person) cleanupHidden() {
	if p.rels == nil {
		return
	}
	if p.rels.Father == "" && p.rels.Mother == "" && len(p.rels.Children) == 0 && len(p.rels.Spouses) == 0 {
		p.rels = nil
	}
}

// HideAncestors moves p's father and mother slots into the hidden mirror,
// as spec'd: hiding ancestors always toggles both parent slots together.
func (p *Person) HideAncestors() {
	hidden := p.ensureHidden()
	hidden.Father = p.Rels.Father
	hidden.Mother = p.Rels.Mother
	p.Rels.Father = ""
	p.Rels.Mother = ""
}

// ShowAncestors restores a previously hidden father/mother pair.
func (p *Person) ShowAncestors() {
	if p.rels == nil {
		return
	}
	p.Rels.Father = p.rels.Father
	p.Rels.Mother = p.rels.Mother
	p.rels.Father = ""
	p.rels.Mother = ""
	p.cleanupHidden()
}

// HasHiddenAncestors reports whether p has a hidden father or mother slot.
func (p *Person) HasHiddenAncestors() bool {
	return p.rels != nil && (p.rels.Father != "" || p.rels.Mother != "")
}

// HideChild moves childID out of p's visible children into the hidden
// mirror. No-op if childID is not currently a visible child.
func (p *Person) HideChild(childID string) {
	for i, c := range p.Rels.Children {
		if c == childID {
			p.Rels.Children = append(p.Rels.Children[:i], p.Rels.Children[i+1:]...)
			hidden := p.ensureHidden()
			hidden.Children = append(hidden.Children, childID)
			return
		}
	}
}

// ShowChild restores a previously hidden child. No-op if childID is not
// currently hidden.
func (p *Person) ShowChild(childID string) {
	if p.rels == nil {
		return
	}
	for i, c := range p.rels.Children {
		if c == childID {
			p.rels.Children = append(p.rels.Children[:i], p.rels.Children[i+1:]...)
			p.Rels.Children = append(p.Rels.Children, childID)
			p.cleanupHidden()
			return
		}
	}
}

// HiddenChildren returns the ids of p's currently hidden children.
func (p *Person) HiddenChildren() []string {
	if p.rels == nil {
		return nil
	}
	return append([]string(nil), p.rels.Children...)
}

// RefAttrKey builds the mangled key for a relation-scoped attribute field
// mirrored on otherID.
func RefAttrKey(field, otherID string) string {
	return field + refSuffix + otherID
}

// ParseRefAttrKey splits a mangled "<field>__ref__<otherID>" key. ok is
// false if key does not match the pattern.
func ParseRefAttrKey(key string) (field, otherID string, ok bool) {
	idx := strings.Index(key, refSuffix)
	if idx < 0 {
		return "", "", false
	}
	return key[:idx], key[idx+len(refSuffix):], true
}

// Spouses returns the ids of p's current spouses in order.
func (p *Person) Spouses() []string { return p.Rels.Spouses }

// Children returns the ids of p's children in order.
func (p *Person) Children() []string { return p.Rels.Children }

// IsSpouseOf reports whether otherID appears in p's spouse list.
func (p *Person) IsSpouseOf(otherID string) bool {
	for _, s := range p.Rels.Spouses {
		if s == otherID {
			return true
		}
	}
	return false
}
