package editops

import "github.com/chris-hammersley/family-chart/person"

// neighbors returns every id directly related to id (father, mother,
// spouses, children), treating the family graph as undirected for
// connectivity purposes.
func neighbors(g *person.Graph, id string) []string {
	p := g.Get(id)
	if p == nil {
		return nil
	}
	out := make([]string, 0, 2+len(p.Rels.Spouses)+len(p.Rels.Children))
	if p.Rels.Father != "" {
		out = append(out, p.Rels.Father)
	}
	if p.Rels.Mother != "" {
		out = append(out, p.Rels.Mother)
	}
	out = append(out, p.Rels.Spouses...)
	out = append(out, p.Rels.Children...)
	return out
}

// bfsReaches reports whether target is reachable from start via rels,
// never stepping through exclude.
func bfsReaches(g *person.Graph, start, target, exclude string) bool {
	if start == target {
		return true
	}
	visited := map[string]bool{start: true, exclude: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range neighbors(g, cur) {
			if n == "" || visited[n] {
				continue
			}
			if n == target {
				return true
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}
	return false
}

// RelativesConnectedWithoutPerson reports whether every direct relative
// of excludeID can still reach anchorID via rels once excludeID is
// removed from the graph (without actually removing it). Used by
// DeletePerson to decide between a hard delete and a demotion to unknown.
func RelativesConnectedWithoutPerson(g *person.Graph, excludeID, anchorID string) bool {
	p := g.Get(excludeID)
	if p == nil {
		return true
	}
	for _, r := range neighbors(g, excludeID) {
		if r == anchorID {
			continue
		}
		if !bfsReaches(g, r, anchorID, excludeID) {
			return false
		}
	}
	return true
}

// ConnectedToFirstPerson reports whether id can reach the graph's first
// person via rels.
func ConnectedToFirstPerson(g *person.Graph, id string) bool {
	first := g.First()
	if first == nil {
		return false
	}
	if id == first.ID {
		return true
	}
	return bfsReaches(g, id, first.ID, "")
}

// ancestorSet returns every ancestor of id (father/mother, recursively),
// not including id itself.
func ancestorSet(g *person.Graph, id string) map[string]bool {
	out := make(map[string]bool)
	var walk func(string)
	walk = func(cur string) {
		p := g.Get(cur)
		if p == nil {
			return
		}
		for _, parent := range []string{p.Rels.Father, p.Rels.Mother} {
			if parent == "" || out[parent] {
				continue
			}
			out[parent] = true
			walk(parent)
		}
	}
	walk(id)
	return out
}

// descendantSet returns every descendant of id (children, recursively),
// not including id itself.
func descendantSet(g *person.Graph, id string) map[string]bool {
	out := make(map[string]bool)
	var walk func(string)
	walk = func(cur string) {
		p := g.Get(cur)
		if p == nil {
			return
		}
		for _, c := range p.Rels.Children {
			if out[c] {
				continue
			}
			out[c] = true
			walk(c)
		}
	}
	walk(id)
	return out
}
