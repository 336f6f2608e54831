package engine

import (
	"errors"

	"github.com/katalvlaran/cophylo/dagnode"
	"github.com/katalvlaran/cophylo/policy"
	"github.com/katalvlaran/cophylo/tree"
)

// ErrUnmappedLeaf indicates a symbiont leaf has no entry in LeafMap
// (spec.md §6: "every parasite leaf must have an entry").
var ErrUnmappedLeaf = errors.New("engine: symbiont leaf has no host mapping")

// Config bundles the DP engine's tunables. Costs are already scaled by
// the caller's cost multiplier (spec.md §6) and are plain int64 here so
// this package's arithmetic stays exact.
type Config struct {
	CospCost   int64
	DupCost    int64
	SwitchCost int64
	LossCost   int64

	// DistanceThreshold bounds host-switch candidates; transfer.Unbounded
	// for no bound.
	DistanceThreshold int

	// Policy drives how subsolutions are combined (package policy).
	Policy policy.Policy

	// Constraint restricts the DP to a single class representative's
	// events (and, for T4, hosts): package equivalence's event-constrained
	// re-reconciliator (spec.md §4.H.4). Nil for an ordinary, unconstrained
	// run.
	Constraint *Constraint
}

// Constraint pins, per internal symbiont node, which event is admissible
// and (T4 only) which host the association must carry.
type Constraint struct {
	EventAt map[*tree.Node]dagnode.Event
	HostAt  map[*tree.Node]*tree.Node
}

// filterByEvent drops every term whose Event doesn't match c.EventAt[pn],
// when a constraint is recorded for pn. A nil receiver is unconstrained.
func (c *Constraint) filterByEvent(pn *tree.Node, terms []*dagnode.Node) []*dagnode.Node {
	if c == nil {
		return terms
	}
	want, ok := c.EventAt[pn]
	if !ok {
		return terms
	}

	out := terms[:0]
	for _, t := range terms {
		if t.Event == want {
			out = append(out, t)
		}
	}

	return out
}

// hostMismatch reports whether pn is host-pinned by c to a host other
// than hn (T4's "host must match map[p] in main[p][h]" rule). A nil
// receiver never mismatches.
func (c *Constraint) hostMismatch(pn, hn *tree.Node) bool {
	if c == nil {
		return false
	}
	want, ok := c.HostAt[pn]

	return ok && want != hn
}
