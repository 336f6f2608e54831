package equivalence

import (
	"github.com/katalvlaran/cophylo/dagnode"
	"github.com/katalvlaran/cophylo/tree"
)

// Reachable is a 2-D table of dagnode.Node references keyed by
// (parasite, host), restricted to the cells actually visited by some
// optimal reconciliation reachable from a DAG's root (spec.md §4.H.1).
type Reachable struct {
	cells map[*tree.Node]map[*tree.Node]*dagnode.Node
}

// At returns the node reachable at (parasite, host), or nil if that
// pair is never visited by any optimal reconciliation.
func (r *Reachable) At(parasite, host *tree.Node) *dagnode.Node {
	byHost, ok := r.cells[parasite]
	if !ok {
		return nil
	}

	return byHost[host]
}

// Parasites returns every symbiont node with at least one reachable
// association, in no particular order.
func (r *Reachable) Parasites() []*tree.Node {
	out := make([]*tree.Node, 0, len(r.cells))
	for p := range r.cells {
		out = append(out, p)
	}

	return out
}

// BuildReachable walks root (an optimal-DAG node produced by package
// engine under policy.MinCostPolicy or similar) and records, for every
// (parasite, host) pair visited, the dagnode.Node instance found there.
// SIMPLE nodes contribute both children; MULTIPLE nodes contribute every
// child (all are equally optimal, per the OR-node invariant). Traversal
// is iterative and dedupes by node identity to stay linear in the DAG's
// size rather than the (possibly exponential) number of reconciliations
// it represents.
func BuildReachable(root *dagnode.Node) *Reachable {
	r := &Reachable{cells: make(map[*tree.Node]map[*tree.Node]*dagnode.Node)}
	if root == nil || root.IsEmpty() {
		return r
	}

	visited := make(map[*dagnode.Node]bool)
	stack := []*dagnode.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n] {
			continue
		}
		visited[n] = true

		switch n.Kind {
		case dagnode.Final, dagnode.Simple:
			r.record(n.Assoc.Parasite, n.Assoc.Host, n)
			if n.Kind == dagnode.Simple {
				stack = append(stack, n.Left, n.Right)
			}
		case dagnode.Multiple:
			stack = append(stack, n.Children...)
		}
	}

	return r
}

func (r *Reachable) record(p, h *tree.Node, n *dagnode.Node) {
	byHost, ok := r.cells[p]
	if !ok {
		byHost = make(map[*tree.Node]*dagnode.Node)
		r.cells[p] = byHost
	}
	byHost[h] = n
}
