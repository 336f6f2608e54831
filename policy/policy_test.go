package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cophylo/dagnode"
	"github.com/katalvlaran/cophylo/policy"
	"github.com/katalvlaran/cophylo/tree"
)

func assoc(label string) dagnode.Association {
	n := &tree.Node{Key: label, Label: label}

	return dagnode.Association{Parasite: n, Host: n}
}

func TestMinCostPolicyDelegates(t *testing.T) {
	p := policy.MinCostPolicy{CountEnabled: true}
	leaf := p.Leaf(assoc("p1"), 0, 0)
	assert.Equal(t, dagnode.Final, leaf.Kind)
}

func TestEventVectorPolicyCartesianAccumulates(t *testing.T) {
	p := policy.EventVectorPolicy{}
	left := p.Leaf(assoc("l"), 0, 0)
	right := p.Leaf(assoc("r"), 0, 1) // one loss below r
	node := p.Cartesian(0, left, right, assoc("parent"), dagnode.EventCospeciation, 0)

	vecs := policy.Vectors(node)
	require.Len(t, vecs, 1)
	for v, count := range vecs {
		assert.Equal(t, policy.EventVector{C: 1, L: 1}, v)
		assert.Equal(t, int64(1), count)
	}
}

func TestEventVectorPolicyBestUnionsAndSumsVectorCounts(t *testing.T) {
	p := policy.EventVectorPolicy{}
	a := p.Leaf(assoc("a"), 5, 0)
	b := p.Leaf(assoc("b"), 5, 0)
	best := p.Best([]*dagnode.Node{a, b})

	vecs := policy.Vectors(best)
	require.Len(t, vecs, 1)
	assert.Equal(t, int64(2), vecs[policy.EventVector{}])
}

func TestEventVectorPolicyAddLossBumpsLossCoordinate(t *testing.T) {
	p := policy.EventVectorPolicy{}
	leaf := p.Leaf(assoc("a"), 0, 2)
	withLoss := p.AddLoss(3, leaf)
	vecs := policy.Vectors(withLoss)
	assert.Equal(t, int64(1), vecs[policy.EventVector{L: 3}])
}

func TestBestKPolicyBoundsFanout(t *testing.T) {
	p := policy.BestKPolicy{K: 2}
	leaves := make([]*dagnode.Node, 4)
	for i := range leaves {
		leaves[i] = p.Leaf(assoc("p"), int64(i), 0)
	}
	best := p.Best(leaves)
	require.Equal(t, dagnode.Multiple, best.Kind)
	assert.Len(t, best.Children, 2)
	assert.Equal(t, int64(0), best.Children[0].Cost)
	assert.Equal(t, int64(1), best.Children[1].Cost)
}

func TestBestKPolicyCartesianBounded(t *testing.T) {
	p := policy.BestKPolicy{K: 2}
	left := p.Best([]*dagnode.Node{
		p.Leaf(assoc("l0"), 0, 0),
		p.Leaf(assoc("l1"), 10, 0),
		p.Leaf(assoc("l2"), 20, 0),
	})
	right := p.Best([]*dagnode.Node{
		p.Leaf(assoc("r0"), 0, 0),
		p.Leaf(assoc("r1"), 5, 0),
	})

	combined := p.Cartesian(0, left, right, assoc("parent"), dagnode.EventDuplication, 0)
	require.Equal(t, dagnode.Multiple, combined.Kind)
	assert.Len(t, combined.Children, 2)
	assert.Equal(t, int64(0), combined.Children[0].Cost)
	assert.Equal(t, int64(5), combined.Children[1].Cost)
}
