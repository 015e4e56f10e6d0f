package editops

import "github.com/google/uuid"

// NewPersonID allocates a fresh opaque id (a random UUIDv4). Collisions
// are astronomically unlikely, so nothing checks the id against a graph
// before use.
func NewPersonID() string {
	return uuid.NewString()
}
