package dagnode

import "github.com/katalvlaran/cophylo/tree"

// Step is one decision fixed along a single materialized reconciliation:
// the Association a Simple/Final node was built at, and the Event
// chosen there. A full reconciliation is a Path, produced by package
// walk's enumerator (and consumed by packages cyclicity and
// equivalence), in left-to-right traversal order (spec.md §4.F, §6).
type Step struct {
	Assoc Association
	Event Event
}

// Path is an ordered, materialized reconciliation: one Step per
// non-Multiple node visited along the walk that produced it.
type Path []Step

// Mapping builds the parasite-node -> host-node assignment this Path
// represents, keyed by the parasite tree.Node's identity.
func (p Path) Mapping() map[*tree.Node]*tree.Node {
	out := make(map[*tree.Node]*tree.Node, len(p))
	for _, step := range p {
		out[step.Assoc.Parasite] = step.Assoc.Host
	}

	return out
}

// EventOf returns the event recorded for parasite, and whether one was
// found at all.
func (p Path) EventOf(parasite *tree.Node) (Event, bool) {
	for _, step := range p {
		if step.Assoc.Parasite == parasite {
			return step.Event, true
		}
	}

	return EventLeaf, false
}

// Associations renders the path as "<parasite>@<host>" strings in
// traversal order, the output format spec.md §6 prescribes for T1/T2.
func (p Path) Associations() []string {
	out := make([]string, len(p))
	for i, step := range p {
		out[i] = step.Assoc.Key()
	}

	return out
}
