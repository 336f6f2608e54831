package cyclicity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cophylo/cyclicity"
	"github.com/katalvlaran/cophylo/dagnode"
	"github.com/katalvlaran/cophylo/tree"
)

// buildThreeLeafHost builds R(X(h1, h2), h3).
func buildThreeLeafHost(t *testing.T) (tr *tree.Tree, x, h1, h2, h3 *tree.Node) {
	t.Helper()
	h1 = &tree.Node{Key: "h1"}
	h2 = &tree.Node{Key: "h2"}
	h3 = &tree.Node{Key: "h3"}
	x = &tree.Node{Key: "X", Left: h1, Right: h2}
	h1.Parent, h2.Parent = x, x
	root := &tree.Node{Key: "R", Left: x, Right: h3}
	x.Parent, h3.Parent = root, root
	tr, err := tree.NewTree(root)
	require.NoError(t, err)

	return tr, x, h1, h2, h3
}

func TestExtractTransferEdgesFindsOutsideRecipient(t *testing.T) {
	hostTree, x, h1, _, h3 := buildThreeLeafHost(t)

	pl := &tree.Node{Key: "pl"}
	pr := &tree.Node{Key: "pr"}
	p := &tree.Node{Key: "p", Left: pl, Right: pr}
	pl.Parent, pr.Parent = p, p

	path := dagnode.Path{
		{Assoc: dagnode.Association{Parasite: pl, Host: h1}, Event: dagnode.EventLeaf},
		{Assoc: dagnode.Association{Parasite: pr, Host: h3}, Event: dagnode.EventLeaf},
		{Assoc: dagnode.Association{Parasite: p, Host: x}, Event: dagnode.EventHostSwitch},
	}

	edges, err := cyclicity.ExtractTransferEdges(hostTree, path)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, x, edges[0].Donor)
	assert.Equal(t, h3, edges[0].Recipient)
	assert.Equal(t, p, edges[0].DonorParasite)
}

func TestIsAcyclicTrueWithNoTransfers(t *testing.T) {
	hostTree, _, h1, h2, _ := buildThreeLeafHost(t)
	_ = h2

	path := dagnode.Path{
		{Assoc: dagnode.Association{Parasite: &tree.Node{Key: "p"}, Host: h1}, Event: dagnode.EventCospeciation},
	}

	acyclic, edges, err := cyclicity.IsAcyclic(hostTree, path)
	require.NoError(t, err)
	assert.True(t, acyclic)
	assert.Empty(t, edges)
}

func TestIsAcyclicTrueForIndependentTransfers(t *testing.T) {
	hostTree, x, h1, _, h3 := buildThreeLeafHost(t)

	pl := &tree.Node{Key: "pl"}
	pr := &tree.Node{Key: "pr"}
	p := &tree.Node{Key: "p", Left: pl, Right: pr}
	pl.Parent, pr.Parent = p, p

	ql := &tree.Node{Key: "ql"}
	qr := &tree.Node{Key: "qr"}
	q := &tree.Node{Key: "q", Left: ql, Right: qr}
	ql.Parent, qr.Parent = q, q

	// Two unrelated host-switch events (different donor parasites, no
	// ancestor relationship between them): no temporal constraint links
	// them, so the precedence graph stays acyclic.
	path := dagnode.Path{
		{Assoc: dagnode.Association{Parasite: pl, Host: h1}, Event: dagnode.EventLeaf},
		{Assoc: dagnode.Association{Parasite: pr, Host: h3}, Event: dagnode.EventLeaf},
		{Assoc: dagnode.Association{Parasite: p, Host: x}, Event: dagnode.EventHostSwitch},
		{Assoc: dagnode.Association{Parasite: ql, Host: h1}, Event: dagnode.EventLeaf},
		{Assoc: dagnode.Association{Parasite: qr, Host: h3}, Event: dagnode.EventLeaf},
		{Assoc: dagnode.Association{Parasite: q, Host: x}, Event: dagnode.EventHostSwitch},
	}

	acyclic, edges, err := cyclicity.IsAcyclic(hostTree, path)
	require.NoError(t, err)
	assert.True(t, acyclic)
	assert.Len(t, edges, 2)
}

func TestIsAcyclicFalseWhenSharedDonorParasiteCrosses(t *testing.T) {
	hostTree, x, h1, _, h3 := buildThreeLeafHost(t)

	// A single donor parasite node p is recorded twice as the
	// DonorParasite of two transfers with swapped donor/recipient roles
	// (X->h3 and h3->X): Condition 3 then links X and h3 both ways,
	// producing a 2-cycle.
	pl := &tree.Node{Key: "pl"}
	pr := &tree.Node{Key: "pr"}
	p := &tree.Node{Key: "p", Left: pl, Right: pr}
	pl.Parent, pr.Parent = p, p

	ql := &tree.Node{Key: "ql"}
	qr := &tree.Node{Key: "qr"}
	q := &tree.Node{Key: "q", Left: ql, Right: qr}
	ql.Parent, qr.Parent = q, q

	path := dagnode.Path{
		{Assoc: dagnode.Association{Parasite: pl, Host: h1}, Event: dagnode.EventLeaf},
		{Assoc: dagnode.Association{Parasite: pr, Host: h3}, Event: dagnode.EventLeaf},
		{Assoc: dagnode.Association{Parasite: p, Host: x}, Event: dagnode.EventHostSwitch},
		{Assoc: dagnode.Association{Parasite: ql, Host: h3}, Event: dagnode.EventLeaf},
		{Assoc: dagnode.Association{Parasite: qr, Host: h1}, Event: dagnode.EventLeaf},
		{Assoc: dagnode.Association{Parasite: q, Host: h3}, Event: dagnode.EventHostSwitch},
	}
	// Force both transfers onto the same DonorParasite identity to
	// exercise Condition 3 directly, bypassing ExtractTransferEdges'
	// per-step DonorParasite derivation.
	edges := []cyclicity.TransferEdge{
		{DonorParasite: p, Donor: x, Recipient: h3},
		{DonorParasite: p, Donor: h3, Recipient: x},
	}
	_ = path

	acyclic, _, err := isAcyclicFromEdges(hostTree, edges)
	require.NoError(t, err)
	assert.False(t, acyclic)
}

// isAcyclicFromEdges exercises the SCC check directly on hand-built
// edges, since forcing a genuine cyclic scenario through
// ExtractTransferEdges would require a much deeper tree.
func isAcyclicFromEdges(hostTree *tree.Tree, edges []cyclicity.TransferEdge) (bool, []cyclicity.TransferEdge, error) {
	return cyclicity.CheckEdges(hostTree, edges)
}
