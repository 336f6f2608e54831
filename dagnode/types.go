package dagnode

import (
	"errors"
	"math"

	"github.com/katalvlaran/cophylo/tree"
)

// Sentinel errors for DAG node construction.
var (
	// ErrEmptyChildren indicates no candidate nodes were supplied.
	// BestSolution and Merge do not return it: BestSolution answers an
	// empty list with the empty sentinel.
	ErrEmptyChildren = errors.New("dagnode: no children supplied")

	// ErrNotMultiple indicates an operation that requires a Multiple node
	// was given a node of a different Kind.
	ErrNotMultiple = errors.New("dagnode: node is not Multiple")

	// ErrMismatchedCost indicates Merge was asked to union two nodes of
	// different cost, which would violate the Multiple-equal-cost
	// invariant (spec.md §3, §8).
	ErrMismatchedCost = errors.New("dagnode: cannot merge nodes of different cost")
)

// Infinity is the cost assigned to infeasible solutions. It is chosen
// small enough that two Infinity costs can be added without overflowing
// int64, per spec.md §4.D edge case (i): "∞-cost children propagate to ∞."
const Infinity int64 = math.MaxInt64 / 4

// Kind tags the three shapes a solution DAG node can take (spec.md §3).
type Kind int

const (
	// Final is a leaf solution: one Association, a cost, event always Leaf.
	Final Kind = iota
	// Simple is an AND node: one Association, an event, exactly two children.
	Simple
	// Multiple is an OR node: no Association, no event, >=1 children all
	// tied at the same cost.
	Multiple
)

func (k Kind) String() string {
	switch k {
	case Final:
		return "Final"
	case Simple:
		return "Simple"
	case Multiple:
		return "Multiple"
	default:
		return "Unknown"
	}
}

// Event tags the biological event a Simple node represents; Final nodes
// always carry EventLeaf.
type Event int

const (
	EventLeaf Event = iota
	EventCospeciation
	EventDuplication
	EventHostSwitch
)

func (e Event) String() string {
	switch e {
	case EventLeaf:
		return "leaf"
	case EventCospeciation:
		return "cospeciation"
	case EventDuplication:
		return "duplication"
	case EventHostSwitch:
		return "host-switch"
	default:
		return "unknown"
	}
}

// Char returns the single-character event tag used in T3/T4 class
// representatives (spec.md §6): C, D, S, or L.
func (e Event) Char() byte {
	switch e {
	case EventCospeciation:
		return 'C'
	case EventDuplication:
		return 'D'
	case EventHostSwitch:
		return 'S'
	default:
		return 'L'
	}
}

// Association is a (parasite, host) pair. Equality and hashing are by
// the two node labels, per spec.md §3, so two Associations built from
// distinct but identically-labeled tree instances still compare equal -
// this is what lets the class-matrix machinery (package equivalence)
// compare associations across separately-rebuilt DP runs.
type Association struct {
	Parasite *tree.Node
	Host     *tree.Node // nil for class-relabeled associations (GENERAL_NODE, SWITCH_NODE)
}

// Key returns the hash/equality key for this Association.
func (a Association) Key() string {
	hostLabel := "?"
	if a.Host != nil {
		hostLabel = a.Host.Label
		if hostLabel == "" {
			hostLabel = a.Host.Key
		}
	}
	parasiteLabel := "?"
	if a.Parasite != nil {
		parasiteLabel = a.Parasite.Label
		if parasiteLabel == "" {
			parasiteLabel = a.Parasite.Key
		}
	}

	return parasiteLabel + "@" + hostLabel
}

// Node is one node of the shared solution DAG.
//
// Extra carries policy-specific payload (the event-vector set for
// policy.EventVectorPolicy, the top-K sorted list for policy.BestKPolicy)
// without forcing every policy's data into every Node - mirrors
// core.Vertex.Metadata's map[string]interface{} escape hatch in the
// teacher library for attaching caller-specific data to a shared type.
type Node struct {
	Kind  Kind
	Assoc Association
	Cost  int64
	Event Event

	// Left, Right are populated for Kind == Simple only.
	Left, Right *Node

	// Children holds the OR alternatives for Kind == Multiple only; every
	// entry has Kind Simple or Final (never Multiple - flattened on Merge).
	Children []*Node

	// TransferCandidate marks a Simple node whose event is EventHostSwitch
	// and thus participates in cyclicity checking (spec.md §4.F).
	TransferCandidate bool

	Extra interface{}

	numSub    int64 // memoized NumSubsolutions; valid only when hasNumSub is set
	hasNumSub bool
}

// NumSubsolutions returns the number of distinct reconciliations this
// node's sub-DAG represents: product over Simple children, sum over
// Multiple children, 1 at Final (spec.md §3). The value is memoized on
// first computation; callers from a single goroutine per run (spec.md §5)
// need no locking.
func (n *Node) NumSubsolutions() int64 {
	if n == nil {
		return 0
	}
	if n.hasNumSub {
		return n.numSub
	}

	var total int64
	switch n.Kind {
	case Final:
		total = 1
	case Simple:
		total = n.Left.NumSubsolutions() * n.Right.NumSubsolutions()
	case Multiple:
		for _, c := range n.Children {
			total += c.NumSubsolutions()
		}
	}
	n.numSub = total
	n.hasNumSub = true

	return total
}

// IsEmpty reports whether n is the empty-solution sentinel (infinite
// cost, no association, acting as identity for best-selection and zero
// for products - spec.md §3).
func (n *Node) IsEmpty() bool {
	return n != nil && n.Kind == Final && n.Cost >= Infinity && n.Assoc.Parasite == nil
}
