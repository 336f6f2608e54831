package dagnode

var emptySentinel = &Node{Kind: Final, Cost: Infinity, Event: EventLeaf, hasNumSub: true, numSub: 1}

// EmptySolution returns the process-wide empty-solution sentinel: a
// Final node with infinite cost and no association. It is the identity
// element for BestSolution (never wins on cost) and acts as the
// "nothing here" leaf for Cartesian's emptiness propagation.
func EmptySolution() *Node {
	return emptySentinel
}

// FromLeafAssociation builds a Final node representing parasite p fixed
// at association assoc, with cost = lossCost * distance - the cost of
// the loss steps accumulated while p's lineage drifted down to assoc's
// host without a splitting event (spec.md §4.B).
func FromLeafAssociation(assoc Association, lossCost int64, distance int) *Node {
	return &Node{
		Kind:  Final,
		Assoc: assoc,
		Cost:  lossCost * int64(distance),
		Event: EventLeaf,
	}
}

// Cartesian combines left and right subsolutions under one Simple node
// at assoc with the given event, adding extraCost on top of the
// children's costs. If either child is the empty sentinel, the result
// is infeasible and Infinity propagates outward without building a
// dangling Simple node (spec.md §4.B edge case (i)). numLosses is
// recorded for event-vector bookkeeping by policies that need it (see
// package policy); it does not affect Cost here (the caller has already
// folded loss cost into extraCost where applicable).
func Cartesian(extraCost int64, left, right *Node, assoc Association, event Event, numLosses int) *Node {
	if left.IsEmpty() || right.IsEmpty() {
		return EmptySolution()
	}

	cost := extraCost + left.Cost + right.Cost
	if cost >= Infinity {
		cost = Infinity
	}
	_ = numLosses // consumed by policy-level Cartesian wrappers (package policy)

	return &Node{
		Kind:              Simple,
		Assoc:             assoc,
		Cost:              cost,
		Event:             event,
		Left:              left,
		Right:             right,
		TransferCandidate: event == EventHostSwitch,
	}
}

// AddLoss returns a node equivalent to sol but with lossCost added to
// its outer cost, sharing sol's children unchanged - one loss step
// attached on top of an existing subsolution (spec.md §4.B, §9's note on
// add_loss). If sol is empty, the result is still empty (no children to
// wrap, cost stays Infinity).
func AddLoss(lossCost int64, sol *Node) *Node {
	if sol.IsEmpty() {
		return EmptySolution()
	}

	cost := sol.Cost + lossCost
	if cost >= Infinity {
		cost = Infinity
	}

	switch sol.Kind {
	case Final:
		return &Node{Kind: Final, Assoc: sol.Assoc, Cost: cost, Event: sol.Event}
	case Simple:
		return &Node{
			Kind:              Simple,
			Assoc:             sol.Assoc,
			Cost:              cost,
			Event:             sol.Event,
			Left:              sol.Left,
			Right:             sol.Right,
			TransferCandidate: sol.TransferCandidate,
		}
	default: // Multiple
		children := make([]*Node, len(sol.Children))
		for i, c := range sol.Children {
			children[i] = AddLoss(lossCost, c)
		}

		return BestSolution(children)
	}
}

// BestSolution picks the minimum-cost element(s) of list, merging all
// ties into a single Multiple node (flattening any Multiple inputs so
// the no-Multiple-in-Multiple invariant holds). Empty input returns the
// empty sentinel. All-infinite input returns the empty sentinel as well,
// since an infinite-cost "solution" carries no information a caller can
// act on.
func BestSolution(list []*Node) *Node {
	best := EmptySolution()
	for _, n := range list {
		if n == nil || n.IsEmpty() {
			continue
		}
		if best.IsEmpty() || n.Cost < best.Cost {
			best = n
		}
	}
	if best.IsEmpty() || best.Cost >= Infinity {
		return EmptySolution()
	}

	var tied []*Node
	for _, n := range list {
		if n == nil || n.IsEmpty() {
			continue
		}
		if n.Cost == best.Cost {
			tied = append(tied, n)
		}
	}

	return flattenMultiple(tied)
}

// Merge unions a and b at equal cost, flattening any Multiple children
// to preserve the invariant. Returns ErrMismatchedCost if a and b carry
// different finite costs (callers that want "best of either" regardless
// of cost should use BestSolution instead).
func Merge(a, b *Node) (*Node, error) {
	if a.IsEmpty() {
		return b, nil
	}
	if b.IsEmpty() {
		return a, nil
	}
	if a.Cost != b.Cost {
		return nil, ErrMismatchedCost
	}

	return flattenMultiple([]*Node{a, b}), nil
}

// flattenMultiple builds a Multiple node from nodes, inlining any
// Multiple node's Children directly rather than nesting it, and
// collapsing to the single element when there is only one (a Multiple
// of one child is just that child - no OR choice to represent).
func flattenMultiple(nodes []*Node) *Node {
	var flat []*Node
	for _, n := range nodes {
		if n.Kind == Multiple {
			flat = append(flat, n.Children...)
		} else {
			flat = append(flat, n)
		}
	}
	if len(flat) == 0 {
		return EmptySolution()
	}
	if len(flat) == 1 {
		return flat[0]
	}

	return &Node{Kind: Multiple, Cost: flat[0].Cost, Children: flat}
}
