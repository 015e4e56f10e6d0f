package person

import "sort"

// Graph is the authoritative collection of persons and their relations.
// It is the sole owner of person data; callers outside package store must
// treat a *Graph handed to them as read-only (see store package docs).
type Graph struct {
	people map[string]*Person
	// order preserves insertion order so that "the first person in the
	// graph" (used as a delete/connectivity fallback throughout editops)
	// is deterministic rather than a random map iteration.
	order []string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{people: make(map[string]*Person)}
}

// NewGraphFrom builds a graph from an already-constructed slice of
// persons, preserving the given order as insertion order.
func NewGraphFrom(people []*Person) *Graph {
	g := NewGraph()
	for _, p := range people {
		g.Add(p)
	}
	return g
}

// Add inserts or replaces a person. Re-adding an existing id keeps its
// original position in insertion order.
func (g *Graph) Add(p *Person) {
	if p == nil {
		return
	}
	if _, exists := g.people[p.ID]; !exists {
		g.order = append(g.order, p.ID)
	}
	g.people[p.ID] = p
}

// Remove deletes a person by id. It does not touch any relation slots
// referencing that id — callers (editops.DeletePerson) are responsible
// for maintaining reciprocity before or after calling Remove.
func (g *Graph) Remove(id string) {
	if _, exists := g.people[id]; !exists {
		return
	}
	delete(g.people, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Get returns the person with the given id, or nil if absent.
func (g *Graph) Get(id string) *Person {
	if id == "" {
		return nil
	}
	return g.people[id]
}

// Has reports whether id resolves to a person in the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.people[id]
	return ok
}

// Len returns the number of persons in the graph.
func (g *Graph) Len() int {
	return len(g.people)
}

// First returns the first person added to the graph, or nil if empty.
// This is the fallback focus used throughout the store and editops when
// no better candidate is available.
func (g *Graph) First() *Person {
	if len(g.order) == 0 {
		return nil
	}
	return g.people[g.order[0]]
}

// All returns every person in the graph in a stable (insertion) order.
func (g *Graph) All() []*Person {
	out := make([]*Person, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.people[id])
	}
	return out
}

// IDs returns every person id in the graph in stable (insertion) order.
func (g *Graph) IDs() []string {
	return append([]string(nil), g.order...)
}

// SortedIDs returns every person id sorted lexicographically, useful for
// deterministic iteration in tests and property checks that don't care
// about insertion order.
func (g *Graph) SortedIDs() []string {
	ids := g.IDs()
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy of the graph: distinct Person values with
// independently-owned Data maps and Rels slices, so mutating the clone
// never affects the original. Used by the store's undo/redo snapshot
// stack.
func (g *Graph) Clone() *Graph {
	clone := NewGraph()
	for _, id := range g.order {
		p := g.people[id]
		cp := &Person{
			ID:      p.ID,
			Data:    make(map[string]any, len(p.Data)),
			Rels:    p.Rels.Clone(),
			ToAdd:   p.ToAdd,
			Unknown: p.Unknown,
		}
		for k, v := range p.Data {
			cp.Data[k] = v
		}
		if p.NewRelData != nil {
			nrd := *p.NewRelData
			cp.NewRelData = &nrd
		}
		if p.rels != nil {
			saved := p.rels.Clone()
			cp.rels = &saved
		}
		clone.Add(cp)
	}
	return clone
}
