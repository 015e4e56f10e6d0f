package layout

// markPrivacy applies cfg.PrivateCardsConfig.Condition to every node,
// setting IsPrivate so the renderer can redact that card's data without
// the Layout Engine itself inspecting or copying sensitive fields.
func markPrivacy(main *Node, cfg Config) {
	if cfg.PrivateCardsConfig == nil || cfg.PrivateCardsConfig.Condition == nil {
		return
	}
	cond := cfg.PrivateCardsConfig.Condition
	for _, n := range collectNodes(main) {
		if n.Person != nil && cond(n.Person) {
			n.IsPrivate = true
		}
	}
}

// markAllRelsDisplayed sets AllRelsDisplayed on every node whose person
// has every spouse, child, and parent relation represented by another
// node in the layout — false when a depth trim or a collapsed duplicate
// left a relation out of the picture. Relations detached by a hide
// toggle are no longer in Rels, so they are not counted.
func markAllRelsDisplayed(main *Node) {
	nodes := collectNodes(main)
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.Person != nil {
			present[n.Person.ID] = true
		}
	}
	for _, n := range nodes {
		if n.Person == nil {
			continue
		}
		n.AllRelsDisplayed = allRelsPresent(n, present)
	}
}

func allRelsPresent(n *Node, present map[string]bool) bool {
	p := n.Person
	for _, sid := range p.Rels.Spouses {
		if !present[sid] {
			return false
		}
	}
	for _, cid := range p.Rels.Children {
		if !present[cid] {
			return false
		}
	}
	if p.Rels.Father != "" && !present[p.Rels.Father] {
		return false
	}
	if p.Rels.Mother != "" && !present[p.Rels.Mother] {
		return false
	}
	return true
}
