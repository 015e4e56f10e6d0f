// Package layout implements the Layout Engine: given an augmented person
// graph and a focus id, it builds the two-sided ancestor/descendant
// hierarchy, runs a tidy-tree pass over each side, merges them around the
// focus, places spouses and siblings, resolves duplicate branches, and
// emits positioned layout nodes ready for a renderer. The engine does no
// I/O, is deterministic for a given input, and is total over any
// well-formed graph; it changes the graph it is given only when
// Config.SingleParentEmptyCard makes it add placeholder parents.
package layout

import "github.com/chris-hammersley/family-chart/person"

// Config is the recognized-keys table of layout options.
type Config struct {
	NodeSeparation  float64
	LevelSeparation float64

	SingleParentEmptyCard bool
	IsHorizontal          bool
	OneLevelRels          bool

	AncestryDepth *int
	ProgenyDepth  *int

	ShowSiblingsOfMain bool

	SortChildrenFunc func(a, b *person.Person) bool
	SortSpousesFunc  func(a, b *person.Person) bool
	ModifyTreeHierarchy func(*HierarchyNode)

	PrivateCardsConfig *PrivacyConfig

	DuplicateBranchToggle  bool
	OnToggleOneCloseOthers bool

	// ExpandedToggles records, in the order the caller (the store)
	// opened them, every duplicate occurrence that should stay expanded
	// instead of the default first-occurrence-wins rule. A person id
	// absent from this slice falls back to that default. When present,
	// OnToggleOneCloseOthers decides how many of a person's entries take
	// effect: true honors only the last (most recent) entry for that id
	// and collapses every other occurrence; false honors every entry for
	// that id, so more than one occurrence may stay expanded at once.
	ExpandedToggles []ExpandedToggle
}

// DefaultConfig returns the recognized keys at their spec-default values.
func DefaultConfig() Config {
	return Config{
		NodeSeparation:  250,
		LevelSeparation: 150,
	}
}

// PrivacyConfig configures §4.4 privacy marking.
type PrivacyConfig struct {
	Condition func(p *person.Person) bool
}

// Node is a single positioned appearance of a person in the layout, per
// the data model's layout-node shape.
type Node struct {
	TID    string
	Person *person.Person

	X, Y   float64
	EnterX, EnterY float64 // "_x", "_y": animation enter/exit coordinates

	Depth int

	IsAncestry bool
	Sibling    bool
	Added      bool // synthetic spouse
	Spouse     *Node // back-link to whom this is the spouse of

	Parents  []*Node
	Children []*Node
	Spouses  []*Node

	From []*Node
	To   []*Node
	ToAncestry []*Node
	FromSpouse *Node

	PSX, PSY float64 // parent-side attach point

	Duplicate int // count of appearances if >1, else 0

	ToggleID    string
	ToggleValue map[string]int64 // per-parent-context toggle timestamp
	TgDP        map[string]map[string]int64 // ancestry-side toggle: parentID -> value (kept for symmetry with spec naming)
	TgDPSpouse  map[string]map[string]int64 // descendant-side toggle: parentID -> spouseID -> value

	AllRelsDisplayed bool
	IsPrivate        bool

	// hierarchyParent is the id this node's position was derived from
	// during tidy-tree layout — the tree-parent, not necessarily a
	// biological parent (e.g. the merged root's ancestor children have
	// the focus as hierarchyParent for edge-wiring purposes).
	hierarchyParent string
	// treeSpouseOf is the id of the co-parent used to resolve
	// the psx/psy attach point.
	treeSpouseOf string
}

// Dim is the overall extent of a computed layout.
type Dim struct {
	Width, Height float64
	XOff, YOff    float64
}

// Result is the Layout Engine's output.
type Result struct {
	Nodes        []*Node
	Dim          Dim
	MainID       string
	IsHorizontal bool
}
