package equivalence

import (
	"sort"
	"strings"

	"github.com/katalvlaran/cophylo/dagnode"
	"github.com/katalvlaran/cophylo/tree"
)

// Task selects which class-equivalence relation BuildClassDAG computes
// (spec.md §4.H.2).
type Task int

const (
	// EventPartition is T3: every association's host collapses to
	// GeneralNode; only the event sequence distinguishes classes.
	EventPartition Task = iota
	// CDEquivalence is T4: only host-switch associations collapse their
	// host to SwitchNode; cospeciation/duplication keep their real host.
	CDEquivalence
)

// GeneralNode and SwitchNode are the sentinel host tree.Node values
// substituted in by BuildClassDAG (spec.md §4.H.2). They are never part
// of any real tree.Tree and compare by identity like any other node.
var (
	GeneralNode = &tree.Node{Key: "GENERAL_NODE", Label: "GENERAL_NODE"}
	SwitchNode  = &tree.Node{Key: "SWITCH_NODE", Label: "SWITCH_NODE"}
)

func relabelHost(task Task, event dagnode.Event, host *tree.Node) *tree.Node {
	switch task {
	case EventPartition:
		return GeneralNode
	case CDEquivalence:
		if event == dagnode.EventHostSwitch {
			return SwitchNode
		}

		return host
	default:
		return host
	}
}

// BuildClassDAG rewrites root's associations per task and merges
// alternatives that become identical under that relabeling, via the
// simple reducer (Reduce), at every OR point (spec.md §4.H.2).
func BuildClassDAG(task Task, root *dagnode.Node) *dagnode.Node {
	return buildClass(task, root, make(map[*dagnode.Node]*dagnode.Node))
}

func buildClass(task Task, n *dagnode.Node, memo map[*dagnode.Node]*dagnode.Node) *dagnode.Node {
	if n == nil || n.IsEmpty() {
		return dagnode.EmptySolution()
	}
	if cached, ok := memo[n]; ok {
		return cached
	}

	var result *dagnode.Node
	switch n.Kind {
	case dagnode.Final:
		result = &dagnode.Node{
			Kind:  dagnode.Final,
			Assoc: dagnode.Association{Parasite: n.Assoc.Parasite, Host: relabelHost(task, n.Event, n.Assoc.Host)},
			Event: n.Event,
		}
	case dagnode.Simple:
		left := buildClass(task, n.Left, memo)
		right := buildClass(task, n.Right, memo)
		result = &dagnode.Node{
			Kind:  dagnode.Simple,
			Assoc: dagnode.Association{Parasite: n.Assoc.Parasite, Host: relabelHost(task, n.Event, n.Assoc.Host)},
			Event: n.Event,
			Left:  left,
			Right: right,
		}
	case dagnode.Multiple:
		children := make([]*dagnode.Node, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, buildClass(task, c, memo))
		}
		result = Reduce(children)
	}

	memo[n] = result

	return result
}

// Reduce canonicalizes an OR-set of class nodes to a fixed point under
// duplicate absorption and the partner rule - the "simple reducer"
// spec.md §4.H.3 describes as sufficient outside the general friend-rule
// case (see DESIGN.md).
func Reduce(nodes []*dagnode.Node) *dagnode.Node {
	flat := dedupe(flatten(nodes))
	flat = applyPartnerRule(flat)
	flat = dedupe(flat)

	if len(flat) == 0 {
		return dagnode.EmptySolution()
	}
	if len(flat) == 1 {
		return flat[0]
	}

	return &dagnode.Node{Kind: dagnode.Multiple, Children: flat}
}

func flatten(nodes []*dagnode.Node) []*dagnode.Node {
	var out []*dagnode.Node
	for _, n := range nodes {
		if n == nil || n.IsEmpty() {
			continue
		}
		if n.Kind == dagnode.Multiple {
			out = append(out, n.Children...)
		} else {
			out = append(out, n)
		}
	}

	return out
}

// dedupe applies duplicate absorption: the special case of spec.md
// §4.H.3's "absorption rule" where X's represented set is a subset of
// Y's because X and Y are structurally identical.
func dedupe(nodes []*dagnode.Node) []*dagnode.Node {
	seen := make(map[string]bool, len(nodes))
	out := make([]*dagnode.Node, 0, len(nodes))
	for _, n := range nodes {
		h := classHash(n)
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, n)
	}

	return out
}

// applyPartnerRule repeatedly merges SIMPLE siblings that share
// association and event and agree on one side, folding their other side
// into an OR, until no more merges apply (spec.md §4.H.3's partner rule).
func applyPartnerRule(nodes []*dagnode.Node) []*dagnode.Node {
	for {
		merged := false
	search:
		for i := 0; i < len(nodes); i++ {
			a := nodes[i]
			if a.Kind != dagnode.Simple {
				continue
			}
			for j := i + 1; j < len(nodes); j++ {
				b := nodes[j]
				if b.Kind != dagnode.Simple || a.Assoc.Key() != b.Assoc.Key() || a.Event != b.Event {
					continue
				}

				var combined *dagnode.Node
				switch {
				case classHash(a.Left) == classHash(b.Left):
					combined = &dagnode.Node{
						Kind: dagnode.Simple, Assoc: a.Assoc, Event: a.Event,
						Left: a.Left, Right: Reduce([]*dagnode.Node{a.Right, b.Right}),
					}
				case classHash(a.Right) == classHash(b.Right):
					combined = &dagnode.Node{
						Kind: dagnode.Simple, Assoc: a.Assoc, Event: a.Event,
						Right: a.Right, Left: Reduce([]*dagnode.Node{a.Left, b.Left}),
					}
				default:
					continue
				}

				nodes = replaceTwoWithOne(nodes, i, j, combined)
				merged = true
				break search
			}
		}
		if !merged {
			return nodes
		}
	}
}

func replaceTwoWithOne(nodes []*dagnode.Node, i, j int, combined *dagnode.Node) []*dagnode.Node {
	out := make([]*dagnode.Node, 0, len(nodes)-1)
	for k, n := range nodes {
		if k == i || k == j {
			continue
		}
		out = append(out, n)
	}

	return append(out, combined)
}

// classHash renders n's structure (association, event, recursively
// hashed children, MULTIPLE children sorted) into a comparable string,
// per spec.md §4.H.3's equality definition.
func classHash(n *dagnode.Node) string {
	if n == nil || n.IsEmpty() {
		return "_"
	}

	switch n.Kind {
	case dagnode.Final:
		return "F(" + n.Assoc.Key() + "," + n.Event.String() + ")"
	case dagnode.Simple:
		return "S(" + n.Assoc.Key() + "," + n.Event.String() + "," + classHash(n.Left) + "," + classHash(n.Right) + ")"
	case dagnode.Multiple:
		hashes := make([]string, len(n.Children))
		for i, c := range n.Children {
			hashes[i] = classHash(c)
		}
		sort.Strings(hashes)

		return "M(" + strings.Join(hashes, "|") + ")"
	default:
		return "?"
	}
}
