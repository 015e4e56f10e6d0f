// Package store implements the Reactive Store: it owns the person graph,
// the current focus, the last computed layout, and a bounded focus
// history, and re-runs the Layout Engine on every mutation. It is the one
// component in this codebase allowed to be stateful and concurrency-safe
// — grounded on the teacher's config.SafeConfig pattern — even though the
// layout and edit operations it calls are themselves pure.
package store

import (
	"strconv"
	"sync"
	"time"

	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/layout"
	"github.com/chris-hammersley/family-chart/metrics"
	"github.com/chris-hammersley/family-chart/person"
)

// maxHistory bounds the focus history per spec: at most 10 entries,
// deduplicated.
const maxHistory = 10

// UpdateProps is the opaque bag forwarded to the onUpdate subscriber,
// carrying renderer hints that the store itself never interprets.
type UpdateProps struct {
	Initial        bool
	TreePosition   string
	TransitionTime int
}

// UpdateFunc is the store's subscriber signature.
type UpdateFunc func(result *layout.Result, props UpdateProps)

// Store is the Reactive Store. The zero value is not usable; construct
// with New.
type Store struct {
	mu sync.RWMutex

	graph   *person.Graph
	mainID  string
	history []string

	cfg    layout.Config
	last   *layout.Result
	onUpdate UpdateFunc
	metrics  *metrics.Recorder

	undoSt undoStack
}

// New constructs a Store over g, focused at mainID (or the graph's first
// person if mainID is empty or unresolvable), with the given layout
// config and subscriber. onUpdate may be nil.
func New(g *person.Graph, mainID string, cfg layout.Config, onUpdate UpdateFunc) *Store {
	return NewWithMetrics(g, mainID, cfg, onUpdate, nil)
}

// NewWithMetrics is New plus an optional metrics.Recorder that UpdateTree
// reports every layout build to. A nil recorder behaves like New.
func NewWithMetrics(g *person.Graph, mainID string, cfg layout.Config, onUpdate UpdateFunc, rec *metrics.Recorder) *Store {
	if g == nil {
		g = person.NewGraph()
	}
	if g.Len() == 0 {
		g.Add(person.New(newBlankID(g)))
	}
	s := &Store{graph: g, cfg: cfg, onUpdate: onUpdate, metrics: rec}
	if mainID == "" || !g.Has(mainID) {
		if first := g.First(); first != nil {
			mainID = first.ID
		}
	}
	s.mainID = mainID
	return s
}

// newBlankID returns an id guaranteed not to collide with g's existing
// ids, used only when seeding an empty graph with its first blank
// person.
func newBlankID(g *person.Graph) string {
	id := "blank"
	for n := 0; g.Has(id); n++ {
		id = "blank-" + strconv.Itoa(n)
	}
	return id
}

// UpdateData replaces the entire graph, preserving the focus if it still
// resolves, or substituting the engine's default choice otherwise.
func (s *Store) UpdateData(g *person.Graph, props UpdateProps) {
	s.mu.Lock()
	if g == nil || g.Len() == 0 {
		g = person.NewGraph()
		g.Add(person.New(newBlankID(g)))
	}
	s.graph = g
	if !g.Has(s.mainID) {
		s.mainID = s.getLastAvailableMainDatumLocked()
	}
	s.mu.Unlock()

	s.UpdateTree(props)
}

// UpdateMainID sets the focus, pushing the prior id onto the bounded,
// deduplicated history.
func (s *Store) UpdateMainID(id string) error {
	s.mu.Lock()
	if !s.graph.Has(id) {
		s.mu.Unlock()
		return famerrors.WrapReference(famerrors.ErrPersonNotFound, "store", "UpdateMainID", id)
	}
	if s.mainID != "" && s.mainID != id {
		s.pushHistoryLocked(s.mainID)
	}
	s.mainID = id
	s.mu.Unlock()
	return nil
}

func (s *Store) pushHistoryLocked(id string) {
	for _, h := range s.history {
		if h == id {
			return
		}
	}
	s.history = append(s.history, id)
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}
}

// GetLastAvailableMainDatum walks the focus history in reverse looking
// for a surviving id, falling back to the graph's first person. Intended
// to be called after an edit that may have deleted the current focus.
func (s *Store) GetLastAvailableMainDatum() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLastAvailableMainDatumLocked()
}

func (s *Store) getLastAvailableMainDatumLocked() string {
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.graph.Has(s.history[i]) {
			return s.history[i]
		}
	}
	if s.graph.Has(s.mainID) {
		return s.mainID
	}
	if first := s.graph.First(); first != nil {
		return first.ID
	}
	return ""
}

// UpdateTree re-runs the Layout Engine over the current graph and focus,
// adopting the engine's own choice of focus if none is set, then invokes
// the subscriber with the fresh result.
func (s *Store) UpdateTree(props UpdateProps) {
	s.mu.Lock()
	if !s.graph.Has(s.mainID) {
		s.mainID = s.getLastAvailableMainDatumLocked()
	}
	start := time.Now()
	result, err := layout.Build(s.graph, s.mainID, s.cfg)
	nodeCount := 0
	if err != nil {
		// Build never fails on an unresolvable main id, only on an empty graph
		// (or a failed augment pass). Fall back to a zero-valued result rather
		// than panic.
		result = &layout.Result{MainID: s.mainID}
	} else {
		nodeCount = len(result.Nodes)
	}
	s.metrics.ObserveLayoutBuild(time.Since(start), nodeCount, err)
	s.metrics.SetGraphSize(s.graph.Len())

	s.last = result
	onUpdate := s.onUpdate
	s.mu.Unlock()

	if onUpdate != nil {
		onUpdate(result, props)
	}
}

// GetDatum returns the person with the given id, or nil.
func (s *Store) GetDatum(id string) *person.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.Get(id)
}

// GetTreeDatum returns the last computed layout node for the given
// person id, or nil if that id has no node in the current layout.
func (s *Store) GetTreeDatum(id string) *layout.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	for _, n := range s.last.Nodes {
		if n.Person != nil && n.Person.ID == id {
			return n
		}
	}
	return nil
}

// GetMainDatum returns the currently focused person, or nil.
func (s *Store) GetMainDatum() *person.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.Get(s.mainID)
}

// GetTreeMainDatum returns the layout node for the current focus.
func (s *Store) GetTreeMainDatum() *layout.Node {
	return s.GetTreeDatum(s.MainID())
}

// MainID returns the current focus id.
func (s *Store) MainID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mainID
}

// GetData returns the store's underlying graph. Callers must treat it as
// read-only; mutate only through package editops followed by UpdateTree.
func (s *Store) GetData() *person.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// GetTree returns the last computed layout result, or nil if UpdateTree
// has never run.
func (s *Store) GetTree() *layout.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Config returns the store's current layout configuration.
func (s *Store) Config() layout.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SetConfig replaces the layout configuration. The caller is expected to
// call UpdateTree afterward to see the effect.
func (s *Store) SetConfig(cfg layout.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}
