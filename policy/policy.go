package policy

import "github.com/katalvlaran/cophylo/dagnode"

// Policy is the strategy interface the DP engine (package engine) drives
// once per DP cell. Cartesian and AddLoss share their names with the
// dagnode factory functions they wrap; Leaf and Best play the roles of
// dagnode.FromLeafAssociation and dagnode.BestSolution.
type Policy interface {
	// Leaf builds a Final node for a parasite fixed at assoc, numLosses
	// being the number of loss steps already folded into cost (0 at an
	// exact leaf map, >0 for a subtree cell below the mapped host).
	Leaf(assoc dagnode.Association, cost int64, numLosses int) *dagnode.Node

	// Cartesian combines left and right into one Simple node under event,
	// adding extraCost; numLosses is the number of loss steps this
	// specific combination charges (0 for cospeciation/duplication/switch
	// terms that charge no losses of their own).
	Cartesian(extraCost int64, left, right *dagnode.Node, assoc dagnode.Association, event dagnode.Event, numLosses int) *dagnode.Node

	// AddLoss attaches one loss step on top of sol.
	AddLoss(lossCost int64, sol *dagnode.Node) *dagnode.Node

	// Best selects the minimum-cost element(s) of list, merging ties.
	Best(list []*dagnode.Node) *dagnode.Node
}

// MinCostPolicy selects purely by cost; CountEnabled documents whether
// the caller intends to read NumSubsolutions afterward (T1 counting) or
// only wants a structurally-valid DAG to enumerate (T1 enumeration,
// T3/T4 pre-pass) - dagnode.Node.NumSubsolutions is correct either way.
type MinCostPolicy struct {
	CountEnabled bool
}

var _ Policy = MinCostPolicy{}

func (MinCostPolicy) Leaf(assoc dagnode.Association, cost int64, numLosses int) *dagnode.Node {
	return &dagnode.Node{Kind: dagnode.Final, Assoc: assoc, Cost: cost, Event: dagnode.EventLeaf}
}

func (MinCostPolicy) Cartesian(extraCost int64, left, right *dagnode.Node, assoc dagnode.Association, event dagnode.Event, numLosses int) *dagnode.Node {
	return dagnode.Cartesian(extraCost, left, right, assoc, event, numLosses)
}

func (MinCostPolicy) AddLoss(lossCost int64, sol *dagnode.Node) *dagnode.Node {
	return dagnode.AddLoss(lossCost, sol)
}

func (MinCostPolicy) Best(list []*dagnode.Node) *dagnode.Node {
	return dagnode.BestSolution(list)
}
