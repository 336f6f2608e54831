package engine

import (
	"github.com/katalvlaran/cophylo/dagnode"
	"github.com/katalvlaran/cophylo/transfer"
	"github.com/katalvlaran/cophylo/tree"
)

// LeafMap maps a symbiont leaf Node to the host leaf Node it is observed
// on (spec.md §6).
type LeafMap map[*tree.Node]*tree.Node

// Matrices holds the two DP tables produced by Run, addressed by
// parasite.Index and host.Index exactly as spec.md §3 describes. They
// remain readable after Run returns for callers (package equivalence)
// that need direct cell access rather than just the root.
type Matrices struct {
	Main    [][]*dagnode.Node
	Subtree [][]*dagnode.Node
}

// Run fills Matrices for symbiont tree p against host tree h under
// leafMap and cfg, and returns (root, matrices, nil) where root is
// policy.Best of main[p.Root()][every host] (spec.md §4.D). Returns
// ErrUnmappedLeaf if some symbiont leaf is absent from leafMap.
func Run(h, p *tree.Tree, leafMap LeafMap, cfg Config) (*dagnode.Node, *Matrices, error) {
	m := &Matrices{
		Main:    newMatrix(p.Size(), h.Size()),
		Subtree: newMatrix(p.Size(), h.Size()),
	}
	xfer := transfer.NewCache()

	for i := 0; i < p.Size(); i++ {
		pn := p.NodeAt(i)
		if pn.IsLeaf() {
			if err := initLeaf(m, pn, leafMap, cfg); err != nil {
				return nil, nil, err
			}
			continue
		}

		for j := 0; j < h.Size(); j++ {
			hn := h.NodeAt(j)
			fillCell(m, pn, hn, cfg, xfer)
		}
	}

	var rootCandidates []*dagnode.Node
	pRoot := p.Root()
	for j := 0; j < h.Size(); j++ {
		rootCandidates = append(rootCandidates, m.Main[pRoot.Index][j])
	}
	root := cfg.Policy.Best(rootCandidates)

	return root, m, nil
}

func newMatrix(rows, cols int) [][]*dagnode.Node {
	out := make([][]*dagnode.Node, rows)
	for i := range out {
		row := make([]*dagnode.Node, cols)
		for j := range row {
			row[j] = dagnode.EmptySolution()
		}
		out[i] = row
	}

	return out
}

// initLeaf seeds main[p][h*] and subtree[p][a] for every strict ancestor
// a of h* (spec.md §4.D, "At leaves of P").
func initLeaf(m *Matrices, pn *tree.Node, leafMap LeafMap, cfg Config) error {
	hStar, ok := leafMap[pn]
	if !ok {
		return ErrUnmappedLeaf
	}

	assoc := dagnode.Association{Parasite: pn, Host: hStar}
	m.Main[pn.Index][hStar.Index] = cfg.Policy.Leaf(assoc, 0, 0)
	m.Subtree[pn.Index][hStar.Index] = cfg.Policy.Leaf(assoc, 0, 0)

	for _, a := range hStar.ProperAncestors() {
		dist := tree.Distance(a, hStar)
		m.Subtree[pn.Index][a.Index] = cfg.Policy.Leaf(assoc, cfg.LossCost*int64(dist), dist)
	}

	return nil
}

// fillCell computes main[pn][hn] and subtree[pn][hn] for an internal
// parasite pn and arbitrary host hn, per spec.md §4.D. The caller must
// have already filled hn.Left/hn.Right's columns for pn (guaranteed by
// Run's host post-order iteration).
func fillCell(m *Matrices, pn, hn *tree.Node, cfg Config, xfer *transfer.Cache) {
	if cfg.Constraint.hostMismatch(pn, hn) {
		m.Main[pn.Index][hn.Index] = dagnode.EmptySolution()
		m.Subtree[pn.Index][hn.Index] = dagnode.EmptySolution()

		return
	}

	var terms []*dagnode.Node

	if hn.Left != nil { // host internal: cospeciation + richer duplication
		terms = append(terms, cospeciationTerms(m, pn, hn, cfg)...)
		terms = append(terms, duplicationTermsInternalHost(m, pn, hn, cfg)...)
	} else {
		terms = append(terms, duplicationTermLeafHost(m, pn, hn, cfg))
	}

	terms = append(terms, hostSwitchTerms(m, pn, hn, cfg, xfer)...)
	terms = cfg.Constraint.filterByEvent(pn, terms)

	main := cfg.Policy.Best(terms)
	m.Main[pn.Index][hn.Index] = main

	if hn.Left != nil {
		lossLeft := cfg.Policy.AddLoss(cfg.LossCost, m.Subtree[pn.Index][hn.Left.Index])
		lossRight := cfg.Policy.AddLoss(cfg.LossCost, m.Subtree[pn.Index][hn.Right.Index])
		m.Subtree[pn.Index][hn.Index] = cfg.Policy.Best([]*dagnode.Node{main, lossLeft, lossRight})
	} else {
		m.Subtree[pn.Index][hn.Index] = main
	}
}

func cospeciationTerms(m *Matrices, pn, hn *tree.Node, cfg Config) []*dagnode.Node {
	pl, pr := pn.Left, pn.Right
	hl, hr := hn.Left, hn.Right
	assoc := dagnode.Association{Parasite: pn, Host: hn}

	t1 := cfg.Policy.Cartesian(cfg.CospCost, m.Subtree[pl.Index][hl.Index], m.Subtree[pr.Index][hr.Index], assoc, dagnode.EventCospeciation, 0)
	t2 := cfg.Policy.Cartesian(cfg.CospCost, m.Subtree[pl.Index][hr.Index], m.Subtree[pr.Index][hl.Index], assoc, dagnode.EventCospeciation, 0)

	return []*dagnode.Node{t1, t2}
}

// duplicationTermsInternalHost returns the seven duplication terms
// available when hn is internal (spec.md §4.D): the two child copies
// distributed across {h, h.Left, h.Right} with 0, 1, or 2 loss steps. A
// child that stays exactly at hn (no loss of its own) reads main[][hn];
// a child that drifts down to hn.Left/hn.Right reads subtree[][that
// host], since that drift's loss cost is already folded into the
// subtree cell (main[][hn] would under-declare it, subtree[][hn] would
// double-count it - using main for the non-drifting side and subtree
// for the drifting side is what keeps each term's loss count exact).
// The two 2-loss terms drift the children to *opposite* host sides (one
// to hn.Left, the other to hn.Right); a same-side pairing (both to
// hn.Left or both to hn.Right) is not one of duplication's terms.
func duplicationTermsInternalHost(m *Matrices, pn, hn *tree.Node, cfg Config) []*dagnode.Node {
	pl, pr := pn.Left, pn.Right
	hl, hr := hn.Left, hn.Right
	assoc := dagnode.Association{Parasite: pn, Host: hn}

	main := func(childIdx, hostIdx int) *dagnode.Node { return m.Main[childIdx][hostIdx] }
	sub := func(childIdx, hostIdx int) *dagnode.Node { return m.Subtree[childIdx][hostIdx] }

	terms := []struct {
		left, right *dagnode.Node
		losses      int
	}{
		{main(pl.Index, hn.Index), main(pr.Index, hn.Index), 0},
		{sub(pl.Index, hl.Index), main(pr.Index, hn.Index), 1},
		{main(pl.Index, hn.Index), sub(pr.Index, hl.Index), 1},
		{sub(pl.Index, hr.Index), main(pr.Index, hn.Index), 1},
		{main(pl.Index, hn.Index), sub(pr.Index, hr.Index), 1},
		{sub(pl.Index, hl.Index), sub(pr.Index, hr.Index), 2},
		{sub(pl.Index, hr.Index), sub(pr.Index, hl.Index), 2},
	}

	out := make([]*dagnode.Node, len(terms))
	for i, term := range terms {
		extra := cfg.DupCost + int64(term.losses)*cfg.LossCost
		out[i] = cfg.Policy.Cartesian(extra, term.left, term.right, assoc, dagnode.EventDuplication, term.losses)
	}

	return out
}

// duplicationTermLeafHost is the sole duplication term available when
// hn is a leaf: both copies must stay exactly at hn (no h.Left/h.Right
// to drift into).
func duplicationTermLeafHost(m *Matrices, pn, hn *tree.Node, cfg Config) *dagnode.Node {
	pl, pr := pn.Left, pn.Right
	assoc := dagnode.Association{Parasite: pn, Host: hn}

	return cfg.Policy.Cartesian(cfg.DupCost, m.Subtree[pl.Index][hn.Index], m.Subtree[pr.Index][hn.Index], assoc, dagnode.EventDuplication, 0)
}

// hostSwitchTerms returns, for every candidate h' in hn's transfer set,
// the two host-switch terms (left child stays / right child stays) per
// spec.md §4.D. The staying child may still drift by loss below hn, so
// it reads subtree[][hn]; the switching child lands exactly on the
// transfer target hp with no further drift of its own, so it reads
// main[][hp] - using subtree[][hp] there would let it silently descend
// past the declared switch target without charging the extra loss, and
// would record the wrong host for that child (the host cyclicity
// later reads off this step to build its transfer edges).
func hostSwitchTerms(m *Matrices, pn, hn *tree.Node, cfg Config, xfer *transfer.Cache) []*dagnode.Node {
	pl, pr := pn.Left, pn.Right
	assoc := dagnode.Association{Parasite: pn, Host: hn}
	candidates := xfer.Get(hn, cfg.DistanceThreshold)

	out := make([]*dagnode.Node, 0, 2*len(candidates))
	for _, hp := range candidates {
		stayLeft := cfg.Policy.Cartesian(cfg.SwitchCost, m.Subtree[pl.Index][hn.Index], m.Main[pr.Index][hp.Index], assoc, dagnode.EventHostSwitch, 0)
		stayRight := cfg.Policy.Cartesian(cfg.SwitchCost, m.Main[pl.Index][hp.Index], m.Subtree[pr.Index][hn.Index], assoc, dagnode.EventHostSwitch, 0)
		out = append(out, stayLeft, stayRight)
	}

	return out
}
