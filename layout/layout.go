package layout

import (
	"github.com/chris-hammersley/family-chart/augment"
	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/person"
)

// Build runs the full layout pipeline for g around mainID: augment g with
// placeholder spouses if configured, resolve the focus (mainID if it
// resolves, else the graph's first person), build the two hierarchies,
// trim them to the configured depth (or to 1 if cfg.OneLevelRels),
// resolve duplicate branches, tidy-tree position each side, merge them
// around the focus, place spouses and (if configured and not
// cfg.OneLevelRels) main's siblings, mark rel-display completeness and
// privacy, assign layout ids, wire edges, optionally reorient to
// horizontal, and measure the result. Build is total for any
// well-formed (non-empty) graph: an unresolvable mainID never fails it,
// only an empty graph does. Build is deterministic: the same graph, main
// id, and config always produce the same Result. With
// cfg.SingleParentEmptyCard set it adds the placeholder parents to g
// itself before laying it out; otherwise it leaves g unchanged.
func Build(g *person.Graph, mainID string, cfg Config) (*Result, error) {
	if cfg.SingleParentEmptyCard {
		if err := augment.Augment(g); err != nil {
			return nil, famerrors.Wrap(err, "layout", "Build", "augment missing second parents")
		}
	}

	main := g.Get(mainID)
	if main == nil {
		main = g.First()
	}
	if main == nil {
		return nil, famerrors.WrapReference(famerrors.ErrMindMapEmpty, "layout", "Build", mainID)
	}
	mainID = main.ID

	desc := buildDescendantHierarchy(g, main, cfg)
	anc := buildAncestorHierarchy(g, main, cfg)

	progenyDepth, ancestryDepth := cfg.ProgenyDepth, cfg.AncestryDepth
	if cfg.OneLevelRels {
		one := 1
		progenyDepth, ancestryDepth = &one, &one
	}
	if progenyDepth != nil {
		trimDepth(desc, *progenyDepth)
	}
	if ancestryDepth != nil {
		trimDepth(anc, *ancestryDepth)
	}

	resolveDescendantDuplicates(desc, cfg)
	resolveAncestryDuplicates(anc, cfg)

	runTidyTree(desc, cfg, false)
	runTidyTree(anc, cfg, true)

	merged := mergeHierarchies(desc, anc, cfg)

	placeSpouses(g, merged, cfg)
	insertSiblings(g, mainID, merged, cfg)

	attachPoints(merged)
	markAllRelsDisplayed(merged)
	markPrivacy(merged, cfg)
	assignTID(merged)
	wireEdges(merged)

	if cfg.IsHorizontal {
		orientHorizontal(merged)
	}

	dim := computeDim(merged)

	return &Result{
		Nodes:        collectNodes(merged),
		Dim:          dim,
		MainID:       mainID,
		IsHorizontal: cfg.IsHorizontal,
	}, nil
}
