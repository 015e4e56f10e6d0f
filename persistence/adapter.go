// Package persistence defines the storage boundary a wrapper application
// uses to keep a person graph durable: save-person and delete-person, per
// the core's external-interfaces contract, plus a bootstrap load the
// contract is silent on but any real deployment needs. It is grounded on
// the teacher's flowstore.Store — a narrow per-entity CRUD surface over
// whatever backend holds the bytes — generalized from a single flow
// entity to a person.
package persistence

import (
	"context"
	"encoding/json"

	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/person"
)

// Adapter persists individual persons. Nothing in package store or
// package editops calls it — persistence is a pull, triggered by the
// wrapper (gateway/http) after a successful edit — so every
// implementation may perform I/O freely. Implementations must be safe
// for concurrent use.
type Adapter interface {
	// SavePerson upserts p, keyed by p.ID.
	SavePerson(ctx context.Context, p *person.Person) error
	// DeletePerson removes the person with the given id. Deleting an id
	// that was never saved is not an error.
	DeletePerson(ctx context.Context, id string) error
	// LoadAll returns every currently saved person, for building the
	// graph a Store starts from. Order is unspecified.
	LoadAll(ctx context.Context) ([]*person.Person, error)
}

// ErrNoSnapshot classifies "nothing has been saved under this id" for
// adapters whose backend reports missing keys differently.
var ErrNoSnapshot = famerrors.ErrPersonNotFound

// NotFoundErr formats a consistent not-found error for adapters.
func NotFoundErr(component string) error {
	return famerrors.WrapReference(ErrNoSnapshot, component, "Load", "no record found")
}

// MarshalPerson serializes a person the way every Adapter implementation
// stores its bytes, kept here so adapters don't each re-derive the wire
// format.
func MarshalPerson(p *person.Person) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, famerrors.Wrap(err, "persistence", "MarshalPerson", "encode person")
	}
	return data, nil
}

// UnmarshalPerson is the inverse of MarshalPerson.
func UnmarshalPerson(data []byte) (*person.Person, error) {
	var p person.Person
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, famerrors.Wrap(err, "persistence", "UnmarshalPerson", "decode person")
	}
	return &p, nil
}

// SyncGraph replays every person in g through adapter.SavePerson, for
// bootstrapping a fresh backend from an in-memory graph (e.g. a
// famimport dataset) or persisting the outcome of an in-memory edit that
// touched more than one person (AddRelative, DeletePerson's cascades).
func SyncGraph(ctx context.Context, a Adapter, g *person.Graph) error {
	for _, p := range g.All() {
		if err := a.SavePerson(ctx, p); err != nil {
			return famerrors.Wrap(err, "persistence", "SyncGraph", "save person "+p.ID)
		}
	}
	return nil
}

// LoadGraphFrom rebuilds a person.Graph from everything an adapter has
// saved.
func LoadGraphFrom(ctx context.Context, a Adapter) (*person.Graph, error) {
	people, err := a.LoadAll(ctx)
	if err != nil {
		return nil, famerrors.Wrap(err, "persistence", "LoadGraphFrom", "load all persons")
	}
	return person.NewGraphFrom(people), nil
}
