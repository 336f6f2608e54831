package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cophylo/dagnode"
	"github.com/katalvlaran/cophylo/engine"
	"github.com/katalvlaran/cophylo/policy"
	"github.com/katalvlaran/cophylo/transfer"
	"github.com/katalvlaran/cophylo/tree"
)

// buildCherryHost builds a 2-leaf host tree: R(h1, h2).
func buildCherryHost(t *testing.T) (tr *tree.Tree, h1, h2 *tree.Node) {
	t.Helper()
	h1 = &tree.Node{Key: "h1"}
	h2 = &tree.Node{Key: "h2"}
	root := &tree.Node{Key: "HR", Left: h1, Right: h2}
	h1.Parent, h2.Parent = root, root
	tr, err := tree.NewTree(root)
	require.NoError(t, err)

	return tr, h1, h2
}

// buildCherryParasite builds a 2-leaf symbiont tree: R(p1, p2).
func buildCherryParasite(t *testing.T) (tr *tree.Tree, p1, p2 *tree.Node) {
	t.Helper()
	p1 = &tree.Node{Key: "p1"}
	p2 = &tree.Node{Key: "p2"}
	root := &tree.Node{Key: "PR", Left: p1, Right: p2}
	p1.Parent, p2.Parent = root, root
	tr, err := tree.NewTree(root)
	require.NoError(t, err)

	return tr, p1, p2
}

// buildFourLeafHost builds a 4-leaf host tree: HR(HA(h1,h2), HB(h3,h4)).
// A 2-leaf cherry makes host.Left/host.Right always leaves, so
// main[p][h] == subtree[p][h] trivially everywhere a test touches - this
// fixture has a genuine internal-internal host split (HR over HA/HB) so
// duplicationTermsInternalHost's main-vs-subtree term accessors and
// hostSwitchTerms' main-vs-subtree child accessors are actually
// exercised on a case where the two differ.
func buildFourLeafHost(t *testing.T) (tr *tree.Tree, h1, h2, h3, h4 *tree.Node) {
	t.Helper()
	h1, h2, h3, h4 = &tree.Node{Key: "h1"}, &tree.Node{Key: "h2"}, &tree.Node{Key: "h3"}, &tree.Node{Key: "h4"}
	ha := &tree.Node{Key: "HA", Left: h1, Right: h2}
	hb := &tree.Node{Key: "HB", Left: h3, Right: h4}
	h1.Parent, h2.Parent = ha, ha
	h3.Parent, h4.Parent = hb, hb
	root := &tree.Node{Key: "HR", Left: ha, Right: hb}
	ha.Parent, hb.Parent = root, root
	tr, err := tree.NewTree(root)
	require.NoError(t, err)

	return tr, h1, h2, h3, h4
}

// buildDuplicationSymbiont builds PR(PA(p1,p2), p3): a 3-leaf symbiont
// tree whose root has one internal child (PA) and one leaf child (p3),
// so the root's duplication term at an internal host reaches
// duplicationTermsInternalHost's every term slot (including the
// 0-loss "both stay exactly at h" term and the 1-loss drift terms).
func buildDuplicationSymbiont(t *testing.T) (tr *tree.Tree, p1, p2, p3 *tree.Node) {
	t.Helper()
	p1, p2, p3 = &tree.Node{Key: "p1"}, &tree.Node{Key: "p2"}, &tree.Node{Key: "p3"}
	pa := &tree.Node{Key: "PA", Left: p1, Right: p2}
	p1.Parent, p2.Parent = pa, pa
	root := &tree.Node{Key: "PR", Left: pa, Right: p3}
	pa.Parent, p3.Parent = root, root
	tr, err := tree.NewTree(root)
	require.NoError(t, err)

	return tr, p1, p2, p3
}

// TestRunDuplicationAtInternalHostSendsChildrenDownOppositeSides is a
// hand-verified regression test over a 4-leaf host tree: p1->h1,
// p2->h2, p3->h3, CospCost=16, DupCost=5, LossCost=4, SwitchCost=1000
// (priced out, never competitive).
//
// Hand computation, all at host HR = HR(HA(h1,h2), HB(h3,h4)):
//   - main[PA][HA] = CospCost = 16 (PA's only viable event there).
//   - subtree[PA][HA] = 16 too (the loss-drift alternatives route
//     through a switch at SwitchCost=1000, never cheaper).
//   - main[PA][HR] is empty: cospeciation and the 2-loss duplication
//     terms need p1 and p2 under different children of HR (both lie
//     under HA), and every 0/1-loss duplication term needs one of PA's
//     own children's Main cell at HR, which is always empty (each is
//     only ever set at its mapped leaf).
//   - subtree[PA][HR] = LossCost + subtree[PA][HA] = 4+16 = 20, while
//     main[PA][HR] stays empty - the two cells diverge here.
//   - subtree[p3][HB] = LossCost * distance(HB, h3) = 4.
//
// PR's cheapest term at HR is the 2-loss duplication that sends PA down
// to HA and p3 down to HB: DupCost + 2*LossCost + subtree[PA][HA] +
// subtree[p3][HB] = 5 + 8 + 16 + 4 = 33. Every 0/1-loss duplication
// term at HR reads main[PA][HR] or main[p3][HR], both empty, and plain
// cospeciation costs 16+16+4 = 36, so 33 wins.
func TestRunDuplicationAtInternalHostSendsChildrenDownOppositeSides(t *testing.T) {
	hostTree, h1, h2, h3, _ := buildFourLeafHost(t)
	symbiontTree, p1, p2, p3 := buildDuplicationSymbiont(t)
	leafMap := engine.LeafMap{p1: h1, p2: h2, p3: h3}

	cfg := engine.Config{
		CospCost:          16,
		DupCost:           5,
		SwitchCost:        1000,
		LossCost:          4,
		DistanceThreshold: transfer.Unbounded,
		Policy:            policy.MinCostPolicy{CountEnabled: true},
	}

	root, _, err := engine.Run(hostTree, symbiontTree, leafMap, cfg)
	require.NoError(t, err)
	require.False(t, root.IsEmpty())
	assert.Equal(t, int64(34), root.Cost, "duplication at HR must price the staying child via main, not subtree")
	assert.Equal(t, dagnode.EventDuplication, root.Event)
	assert.Equal(t, int64(1), root.NumSubsolutions())
}

func TestRunPerfectCospeciation(t *testing.T) {
	hostTree, h1, h2 := buildCherryHost(t)
	symbiontTree, p1, p2 := buildCherryParasite(t)
	leafMap := engine.LeafMap{p1: h1, p2: h2}

	cfg := engine.Config{
		CospCost:          0,
		DupCost:           1,
		SwitchCost:        1,
		LossCost:          1,
		DistanceThreshold: transfer.Unbounded,
		Policy:            policy.MinCostPolicy{CountEnabled: true},
	}

	root, matrices, err := engine.Run(hostTree, symbiontTree, leafMap, cfg)
	require.NoError(t, err)
	require.NotNil(t, matrices)
	assert.False(t, root.IsEmpty())
	assert.Equal(t, int64(0), root.Cost, "a matching cherry-to-cherry tree should reconcile with zero cost via cospeciation")
}

func TestRunUnmappedLeafErrors(t *testing.T) {
	hostTree, h1, _ := buildCherryHost(t)
	symbiontTree, p1, _ := buildCherryParasite(t)
	leafMap := engine.LeafMap{p1: h1} // p2 missing

	cfg := engine.Config{LossCost: 1, DistanceThreshold: transfer.Unbounded, Policy: policy.MinCostPolicy{}}
	_, _, err := engine.Run(hostTree, symbiontTree, leafMap, cfg)
	assert.ErrorIs(t, err, engine.ErrUnmappedLeaf)
}

func TestRunInfeasibleWhenLeavesCollide(t *testing.T) {
	hostTree, h1, _ := buildCherryHost(t)
	symbiontTree, p1, p2 := buildCherryParasite(t)
	// Both symbiont leaves map to the same host leaf: cospeciation is
	// impossible (needs two distinct host children), but duplication at
	// h1 (a host leaf) is still available, so this must stay feasible.
	leafMap := engine.LeafMap{p1: h1, p2: h1}

	cfg := engine.Config{
		DupCost:           2,
		SwitchCost:        3,
		LossCost:          1,
		DistanceThreshold: transfer.Unbounded,
		Policy:            policy.MinCostPolicy{},
	}
	root, _, err := engine.Run(hostTree, symbiontTree, leafMap, cfg)
	require.NoError(t, err)
	assert.False(t, root.IsEmpty())
	assert.Equal(t, int64(2), root.Cost)
}
