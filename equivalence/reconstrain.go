package equivalence

import (
	"github.com/katalvlaran/cophylo/dagnode"
	"github.com/katalvlaran/cophylo/engine"
	"github.com/katalvlaran/cophylo/tree"
)

// Representative names the event (and, for T4, host) each symbiont node
// is pinned to within one class (spec.md §4.H.4's "representative (map,
// events) of a class").
type Representative struct {
	Events map[*tree.Node]dagnode.Event
	Hosts  map[*tree.Node]*tree.Node // T4 only; absent entries are unconstrained
}

// RepresentativeFromPath derives a Representative from one materialized
// reconciliation (package walk's output). Host-switch associations are
// left host-unconstrained, since BuildClassDAG's T4 relabeling already
// abstracts their host to SwitchNode - pinning it again would be
// over-constraining relative to the class it belongs to.
func RepresentativeFromPath(path dagnode.Path) Representative {
	rep := Representative{
		Events: make(map[*tree.Node]dagnode.Event, len(path)),
		Hosts:  make(map[*tree.Node]*tree.Node, len(path)),
	}
	for _, step := range path {
		rep.Events[step.Assoc.Parasite] = step.Event
		if step.Event != dagnode.EventHostSwitch {
			rep.Hosts[step.Assoc.Parasite] = step.Assoc.Host
		}
	}

	return rep
}

// Reconstrain re-runs the DP engine with rep pinned at every internal
// symbiont node, producing the sub-DAG of exactly the reconciliations in
// rep's class (spec.md §4.H.4). cfg is reused with its Constraint field
// overwritten; callers should not rely on cfg's prior Constraint.
func Reconstrain(h, p *tree.Tree, leafMap engine.LeafMap, cfg engine.Config, rep Representative) (*dagnode.Node, *engine.Matrices, error) {
	cfg.Constraint = &engine.Constraint{EventAt: rep.Events, HostAt: rep.Hosts}

	return engine.Run(h, p, leafMap, cfg)
}
