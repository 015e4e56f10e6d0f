package http

import (
	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/editops"
	"github.com/chris-hammersley/family-chart/person"
	"github.com/chris-hammersley/family-chart/store"
)

// MutateRequest is the wire shape of POST /mutate: a tagged union over
// every editops operation, grounded on the teacher's single envelope
// per NATS subject carrying a discriminated request body.
type MutateRequest struct {
	Op string `json:"op"`

	TargetID      string `json:"target_id,omitempty"`
	RelType       string `json:"rel_type,omitempty"`
	OtherParentID string `json:"other_parent_id,omitempty"`
	ExistingID    string `json:"existing_id,omitempty"`

	ID       string `json:"id,omitempty"`
	AnchorID string `json:"anchor_id,omitempty"`

	Side string `json:"side,omitempty"`
	Show bool   `json:"show,omitempty"`

	Updates map[string]any `json:"updates,omitempty"`

	MainID string `json:"main_id,omitempty"`
}

// Recognized MutateRequest.Op values.
const (
	OpAddRelative   = "add_relative"
	OpLinkExisting  = "link_existing"
	OpDeletePerson  = "delete_person"
	OpToggleHide    = "toggle_hide"
	OpApplyEdit     = "apply_person_edit"
	OpUpdateMainID  = "update_main_id"
	OpUndo          = "undo"
	OpRedo          = "redo"
)

// dispatch applies req against s's underlying graph (or s's own
// focus/history operations), without recomputing the layout — the
// caller is responsible for calling s.UpdateTree afterward.
func dispatch(s *store.Store, req MutateRequest) error {
	g := s.GetData()

	switch req.Op {
	case OpAddRelative:
		relType := person.RelType(req.RelType)
		newPerson := editops.CreatePersonWithGenderFromRelation(relType, genderOf(g, req.TargetID))
		return editops.AddRelative(g, editops.AddRelativeRequest{
			TargetID:      req.TargetID,
			RelType:       relType,
			NewPerson:     newPerson,
			OtherParentID: req.OtherParentID,
		})

	case OpLinkExisting:
		return editops.LinkExisting(g, editops.LinkExistingRequest{
			TargetID:      req.TargetID,
			RelType:       person.RelType(req.RelType),
			ExistingID:    req.ExistingID,
			OtherParentID: req.OtherParentID,
		})

	case OpDeletePerson:
		anchor := req.AnchorID
		if anchor == "" {
			anchor = s.MainID()
		}
		return editops.DeletePerson(g, req.ID, anchor)

	case OpToggleHide:
		side := editops.ToggleAncestors
		if req.Side == "children" {
			side = editops.ToggleChildren
		}
		return editops.ToggleHide(g, editops.ToggleHideRequest{ID: req.ID, Side: side, Show: req.Show})

	case OpApplyEdit:
		p := g.Get(req.ID)
		if p == nil {
			return famerrors.WrapReference(famerrors.ErrPersonNotFound, "gateway", "dispatch", req.ID)
		}
		editops.ApplyPersonEdit(g, p, req.Updates)
		return nil

	case OpUpdateMainID:
		return s.UpdateMainID(req.MainID)

	case OpUndo:
		if !s.Undo(store.UpdateProps{}) {
			return famerrors.WrapInvariant(famerrors.ErrNoCandidate, "gateway", "dispatch", "nothing to undo")
		}
		return nil

	case OpRedo:
		if !s.Redo(store.UpdateProps{}) {
			return famerrors.WrapInvariant(famerrors.ErrNoCandidate, "gateway", "dispatch", "nothing to redo")
		}
		return nil

	default:
		return famerrors.WrapInvariant(famerrors.ErrPersonNotFound, "gateway", "dispatch", "unknown op "+req.Op)
	}
}

// genderOf returns g.Get(id)'s gender, or GenderUnset if id doesn't
// resolve — CreatePersonWithGenderFromRelation degrades gracefully to
// its "every other case is male" default in that case.
func genderOf(g *person.Graph, id string) person.Gender {
	if p := g.Get(id); p != nil {
		return p.Gender()
	}
	return person.GenderUnset
}
