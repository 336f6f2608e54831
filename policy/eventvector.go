package policy

import "github.com/katalvlaran/cophylo/dagnode"

// EventVector is a (cospeciation, duplication, switch, loss) occurrence
// count, the unit of Task T2 (spec.md GLOSSARY).
type EventVector struct {
	C, D, S, L int
}

// Add returns the coordinate-wise sum of v and o.
func (v EventVector) Add(o EventVector) EventVector {
	return EventVector{C: v.C + o.C, D: v.D + o.D, S: v.S + o.S, L: v.L + o.L}
}

// bump returns v with coordinate ev incremented by n (EventLeaf bumps
// nothing: a Final node contributes only through its loss count, passed
// separately).
func bump(v EventVector, ev dagnode.Event, n int) EventVector {
	switch ev {
	case dagnode.EventCospeciation:
		v.C += n
	case dagnode.EventDuplication:
		v.D += n
	case dagnode.EventHostSwitch:
		v.S += n
	}

	return v
}

// vectorSet maps an EventVector to the number of distinct reconciliations
// (within the node it is attached to) exhibiting it.
type vectorSet map[EventVector]int64

func extraOf(n *dagnode.Node) vectorSet {
	if n == nil || n.Extra == nil {
		return nil
	}

	return n.Extra.(vectorSet)
}

// EventVectorPolicy accumulates, at every Node, the set of event vectors
// its sub-DAG covers along with per-vector subsolution multiplicities
// (spec.md §4.C policy 3, §9's "accumulating" counter variant).
type EventVectorPolicy struct{}

var _ Policy = EventVectorPolicy{}

func (EventVectorPolicy) Leaf(assoc dagnode.Association, cost int64, numLosses int) *dagnode.Node {
	n := &dagnode.Node{Kind: dagnode.Final, Assoc: assoc, Cost: cost, Event: dagnode.EventLeaf}
	n.Extra = vectorSet{{L: numLosses}: 1}

	return n
}

func (EventVectorPolicy) Cartesian(extraCost int64, left, right *dagnode.Node, assoc dagnode.Association, event dagnode.Event, numLosses int) *dagnode.Node {
	node := dagnode.Cartesian(extraCost, left, right, assoc, event, numLosses)
	if node.IsEmpty() {
		return node
	}

	out := vectorSet{}
	for lv, lc := range extraOf(left) {
		for rv, rc := range extraOf(right) {
			combined := bump(lv.Add(rv), event, 1)
			combined.L += numLosses
			out[combined] += lc * rc
		}
	}
	node.Extra = out

	return node
}

func (p EventVectorPolicy) AddLoss(lossCost int64, sol *dagnode.Node) *dagnode.Node {
	if sol.IsEmpty() {
		return dagnode.EmptySolution()
	}

	if sol.Kind == dagnode.Multiple {
		// Recurse into each original alternative (which still carries its
		// own vectorSet) rather than delegating straight to
		// dagnode.AddLoss, which would rebuild children with no Extra.
		bumped := make([]*dagnode.Node, len(sol.Children))
		for i, c := range sol.Children {
			bumped[i] = p.AddLoss(lossCost, c)
		}

		return p.Best(bumped)
	}

	node := dagnode.AddLoss(lossCost, sol)
	out := vectorSet{}
	for v, n := range extraOf(sol) {
		v.L++
		out[v] += n
	}
	node.Extra = out

	return node
}

func (EventVectorPolicy) Best(list []*dagnode.Node) *dagnode.Node {
	best := dagnode.BestSolution(list)
	if best.IsEmpty() {
		return best
	}

	out := vectorSet{}
	collect := func(n *dagnode.Node) {
		for v, c := range extraOf(n) {
			out[v] += c
		}
	}
	if best.Kind == dagnode.Multiple {
		for _, c := range best.Children {
			collect(c)
		}
	} else {
		collect(best)
	}
	best.Extra = out

	return best
}

// Vectors returns the event vectors attached to root together with their
// subsolution multiplicities - the Task T2 answer set (spec.md §6).
func Vectors(root *dagnode.Node) map[EventVector]int64 {
	out := make(map[EventVector]int64)
	for v, c := range extraOf(root) {
		out[v] = c
	}

	return out
}
