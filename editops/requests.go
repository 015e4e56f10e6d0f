// Package editops implements the pure graph-mutation primitives of the
// family-tree engine: creating and linking relatives, deleting persons,
// toggling hidden branches, and mirroring relation-scoped attributes.
// Every exported function here takes a *person.Graph and either mutates
// it in place or returns an error, maintaining the data model's
// invariants (package person/invariants.go) on every successful return.
// None of these functions perform I/O; persistence is an external
// collaborator invoked by the caller, not by editops.
package editops

import "github.com/chris-hammersley/family-chart/person"

// AddRelativeRequest describes a request to attach a new or existing
// person to target as a relative of the given kind, grounded on the
// teacher's CreateEntityRequest/UpdateEntityRequest request-object shape
// (one struct per operation, trace/request id optional for callers that
// want to correlate a mutation with a later persistence write).
type AddRelativeRequest struct {
	TargetID  string
	RelType   person.RelType
	NewPerson *person.Person // must be non-nil and not yet in the graph

	// OtherParentID is only meaningful when RelType is RelSon or
	// RelDaughter: the id of the child's other parent, or "_new" to have
	// a to_add placeholder created for that slot.
	OtherParentID string

	TraceID string
}

// LinkExistingRequest is AddRelativeRequest's sibling for wiring an
// already-present person instead of creating a new one.
type LinkExistingRequest struct {
	TargetID      string
	RelType       person.RelType
	ExistingID    string
	OtherParentID string
	TraceID       string
}

// DeletePersonRequest describes a request to remove a person from the
// graph, demoting her to unknown instead if that removal would disconnect
// any relative from the graph's designated anchor (see RelativesConnectedWithoutPerson).
type DeletePersonRequest struct {
	ID      string
	AnchorID string
	TraceID string
}

// ToggleHideRequest describes a request to hide or show a person's
// ancestor or descendant branch.
type ToggleHideRequest struct {
	ID   string
	Side ToggleSide
	Show bool // false = hide, true = show
}

// ToggleSide selects which of a person's branches a hide/show toggle
// applies to.
type ToggleSide int

const (
	ToggleAncestors ToggleSide = iota
	ToggleChildren
)
