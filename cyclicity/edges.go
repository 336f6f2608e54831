package cyclicity

import (
	"errors"

	"github.com/katalvlaran/cophylo/dagnode"
	"github.com/katalvlaran/cophylo/tree"
)

// ErrDanglingAssociation indicates a host-switch step's child association
// could not be resolved against the path - an invariant violation
// (spec.md §7's Internal error kind), not a user-facing condition.
var ErrDanglingAssociation = errors.New("cyclicity: host-switch parasite has no mapped child in path")

// TransferEdge is one candidate host-switch edge: DonorParasite is the
// symbiont internal node whose event is host-switch, Donor is its host,
// and Recipient is the host the "outside" child landed on (spec.md
// §4.G step 1).
type TransferEdge struct {
	DonorParasite *tree.Node
	Donor         *tree.Node
	Recipient     *tree.Node
}

// ExtractTransferEdges finds every transfer edge in path and validates
// each with a single batch offline-LCA pass over hostTree: a candidate
// (donor, recipient) pair only survives if neither is an ancestor of the
// other (their LCA is some third node), per spec.md §4.G step 1.
func ExtractTransferEdges(hostTree *tree.Tree, path dagnode.Path) ([]TransferEdge, error) {
	mapping := path.Mapping()

	type candidate struct {
		donorParasite *tree.Node
		donor         *tree.Node
		recipient     *tree.Node
	}
	var candidates []candidate
	for _, step := range path {
		if step.Event != dagnode.EventHostSwitch {
			continue
		}
		p := step.Assoc.Parasite
		h := step.Assoc.Host
		if p.Left == nil || p.Right == nil {
			return nil, ErrDanglingAssociation
		}
		hLeft, ok1 := mapping[p.Left]
		hRight, ok2 := mapping[p.Right]
		if !ok1 || !ok2 {
			return nil, ErrDanglingAssociation
		}

		var outside *tree.Node
		if !h.IsAncestorOf(hLeft) {
			outside = hLeft
		} else {
			outside = hRight
		}
		candidates = append(candidates, candidate{donorParasite: p, donor: h, recipient: outside})
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	queries := make([]lcaQuery, len(candidates))
	for i, c := range candidates {
		queries[i] = lcaQuery{u: c.donor, v: c.recipient}
	}
	lcas := offlineLCA(hostTree.Root(), hostTree, queries)

	var edges []TransferEdge
	for i, c := range candidates {
		lca := lcas[i]
		if lca == c.donor || lca == c.recipient {
			continue // one is an ancestor of the other: not a valid transfer
		}
		edges = append(edges, TransferEdge{DonorParasite: c.donorParasite, Donor: c.donor, Recipient: c.recipient})
	}

	return edges, nil
}
