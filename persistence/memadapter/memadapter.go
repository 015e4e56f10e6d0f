// Package memadapter implements persistence.Adapter entirely in memory,
// for tests and for running the engine with persistence disabled.
package memadapter

import (
	"context"
	"sync"

	"github.com/chris-hammersley/family-chart/person"
)

// Adapter is an in-memory persistence.Adapter. The zero value has
// nothing saved.
type Adapter struct {
	mu      sync.RWMutex
	records map[string]*person.Person
}

// New returns an empty Adapter.
func New() *Adapter {
	return &Adapter{records: make(map[string]*person.Person)}
}

// SavePerson implements persistence.Adapter.
func (a *Adapter) SavePerson(_ context.Context, p *person.Person) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records[p.ID] = p
	return nil
}

// DeletePerson implements persistence.Adapter.
func (a *Adapter) DeletePerson(_ context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.records, id)
	return nil
}

// LoadAll implements persistence.Adapter.
func (a *Adapter) LoadAll(_ context.Context) ([]*person.Person, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*person.Person, 0, len(a.records))
	for _, p := range a.records {
		out = append(out, p)
	}
	return out, nil
}

// Len reports how many persons are currently saved, for tests.
func (a *Adapter) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.records)
}
