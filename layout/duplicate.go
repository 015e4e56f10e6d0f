package layout

// Duplicate-branch resolution (spec step 6): the same person can appear
// more than once in a hierarchy — an ancestor reached through two
// different marriages, or a descendant reached through two spouses of a
// shared parent. Every occurrence after the first is collapsed by
// default so the layout stays a tree. Build is pure, so re-expanding a
// different occurrence isn't a mutation of existing nodes: the caller
// (the store) records which (personID, context) pairs should stay
// expanded in cfg.ExpandedToggles and calls Build again; resolve*
// honors that override when deciding which occurrence collapses.

// ExpandedToggle names one duplicate occurrence that should stay
// expanded instead of the default first-occurrence-wins rule.
type ExpandedToggle struct {
	PersonID string
	Context  string // parent_id, spouse_id, or "main" depending on side
}

// allowedContexts computes, per person id named in toggles, the set of
// contexts that should stay expanded for that id. When oneCloseOthers is
// true only the last (most recently opened, per toggles' append order)
// entry for an id survives, so at most one context per id is allowed;
// otherwise every entry for that id is allowed, letting more than one
// occurrence stay expanded at once, per the spec's toggle-recency note.
func allowedContexts(toggles []ExpandedToggle, oneCloseOthers bool) map[string]map[string]bool {
	allowed := make(map[string]map[string]bool)
	for _, t := range toggles {
		if oneCloseOthers {
			allowed[t.PersonID] = map[string]bool{t.Context: true}
			continue
		}
		if allowed[t.PersonID] == nil {
			allowed[t.PersonID] = make(map[string]bool)
		}
		allowed[t.PersonID][t.Context] = true
	}
	return allowed
}

// resolveAncestryDuplicates walks root pre-order, finds every person id
// that appears more than once, and collapses every occurrence except
// those named in cfg.ExpandedToggles for that id (or, for an id with no
// toggle entries at all, the first occurrence found). The toggle context
// for an ancestry node is its tree-parent's person id, or "main" at the
// root.
func resolveAncestryDuplicates(root *HierarchyNode, cfg Config) {
	if !cfg.DuplicateBranchToggle {
		return
	}
	allowed := allowedContexts(cfg.ExpandedToggles, cfg.OnToggleOneCloseOthers)
	chosen := make(map[string]bool)
	var walk func(node *HierarchyNode)
	walk = func(node *HierarchyNode) {
		id := node.Person.ID
		ctx := "main"
		if node.Parent != nil {
			ctx = node.Parent.Person.ID
		}
		node.toggleID = id
		node.toggleValue = map[string]int64{ctx: -1}

		contexts, hasToggles := allowed[id]
		switch {
		case hasToggles && contexts[ctx]:
			node.toggleValue[ctx] = 1
			node.collapsed = false
		case hasToggles:
			node.collapsed = true
			node.Children = nil
		case chosen[id]:
			node.collapsed = true
			node.Children = nil
		default:
			node.toggleValue[ctx] = 1
			chosen[id] = true
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(root)
}

// descendantKey normalizes the (parent, spouse) pair a descendant
// duplicate was reached through so the same pair produces the same key
// regardless of which of the two persons is walked as "parent" and
// which as "spouse" — the canonical descendant-duplicate case reaches a
// shared descendant once via (cousin1, cousin2) and once via
// (cousin2, cousin1) from a common ancestor on each cousin's side.
func descendantKey(id, parentID, spouseID string) string {
	a, b := parentID, spouseID
	if a > b {
		a, b = b, a
	}
	return id + "\x00" + a + "\x00" + b
}

// resolveDescendantDuplicates resolves duplicate descendant subtrees: a
// child reached through more than one (parent, spouse) path is
// collapsed on every occurrence but one for that path, keyed by the
// unordered pair rather than by parent id alone or by the order the
// pair happened to be walked in, since distinct spouses of the same
// parent may legitimately share a child.
func resolveDescendantDuplicates(root *HierarchyNode, cfg Config) {
	if !cfg.DuplicateBranchToggle {
		return
	}
	allowed := allowedContexts(cfg.ExpandedToggles, cfg.OnToggleOneCloseOthers)
	seen := make(map[string]bool)
	var walk func(node *HierarchyNode)
	walk = func(node *HierarchyNode) {
		id := node.Person.ID
		parentID, spouseID := "", ""
		if node.Parent != nil {
			parentID = node.Parent.Person.ID
			spouseID = node.SpouseOf
		}
		node.toggleID = id
		node.toggleValue = map[string]int64{spouseID: -1}
		seenKey := descendantKey(id, parentID, spouseID)

		contexts, hasToggles := allowed[id]
		switch {
		case hasToggles && contexts[spouseID]:
			node.toggleValue[spouseID] = 1
			node.collapsed = false
		case hasToggles:
			node.collapsed = true
			node.Children = nil
		case seen[seenKey]:
			node.collapsed = true
			node.Children = nil
		default:
			node.toggleValue[spouseID] = 1
			seen[seenKey] = true
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(root)
}
