package store

import "github.com/chris-hammersley/family-chart/person"

// maxUndo bounds the undo/redo stack so a long editing session can't
// grow it without limit.
const maxUndo = 50

// snapshot is one entry in the undo/redo stack: a full graph clone plus
// the focus it was captured with.
type snapshot struct {
	graph  *person.Graph
	mainID string
}

// undoStack holds snapshots taken before each mutation; redoStack holds
// snapshots popped off by Undo, replayed by Redo.
type undoStack struct {
	undo []snapshot
	redo []snapshot
}

// Snapshot pushes the store's current graph and focus onto the undo
// stack and clears the redo stack, as any fresh edit invalidates redo
// history. Call this before applying an edit operation.
func (s *Store) Snapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undoSt.undo = append(s.undoSt.undo, snapshot{graph: s.graph.Clone(), mainID: s.mainID})
	if len(s.undoSt.undo) > maxUndo {
		s.undoSt.undo = s.undoSt.undo[len(s.undoSt.undo)-maxUndo:]
	}
	s.undoSt.redo = nil
}

// Undo restores the most recent snapshot, pushing the current state onto
// the redo stack first. Returns false if there is nothing to undo.
func (s *Store) Undo(props UpdateProps) bool {
	s.mu.Lock()
	if len(s.undoSt.undo) == 0 {
		s.mu.Unlock()
		return false
	}
	cur := snapshot{graph: s.graph.Clone(), mainID: s.mainID}
	prev := s.undoSt.undo[len(s.undoSt.undo)-1]
	s.undoSt.undo = s.undoSt.undo[:len(s.undoSt.undo)-1]
	s.undoSt.redo = append(s.undoSt.redo, cur)

	s.graph = prev.graph
	s.mainID = prev.mainID
	s.mu.Unlock()

	s.UpdateTree(props)
	return true
}

// Redo re-applies the most recently undone snapshot. Returns false if
// there is nothing to redo.
func (s *Store) Redo(props UpdateProps) bool {
	s.mu.Lock()
	if len(s.undoSt.redo) == 0 {
		s.mu.Unlock()
		return false
	}
	cur := snapshot{graph: s.graph.Clone(), mainID: s.mainID}
	next := s.undoSt.redo[len(s.undoSt.redo)-1]
	s.undoSt.redo = s.undoSt.redo[:len(s.undoSt.redo)-1]
	s.undoSt.undo = append(s.undoSt.undo, cur)

	s.graph = next.graph
	s.mainID = next.mainID
	s.mu.Unlock()

	s.UpdateTree(props)
	return true
}
