package reconcile

import "github.com/katalvlaran/cophylo/transfer"

// Task selects which of the four answer shapes Reconcile computes
// (spec.md §1, §6).
type Task int

const (
	// TaskReconciliations is T1: every optimal reconciliation.
	TaskReconciliations Task = iota
	// TaskEventVectors is T2: the event-vector distribution at the
	// optimum, one representative per vector.
	TaskEventVectors
	// TaskEventPartitions is T3: host-blind event-partition classes.
	TaskEventPartitions
	// TaskCDEquivalence is T4: cospeciation/duplication-equivalence
	// classes (host-switch host abstracted).
	TaskCDEquivalence
)

// Options bundles the DP engine's tunables and the task selector, shaped
// as a fixed, validated struct with a DefaultOptions constructor rather
// than an open-ended list of functional options, since spec.md §6's
// input set (cost vector, task, distance threshold, maximum, acyclic
// only, K, cost multiplier) is a closed bundle.
type Options struct {
	Task Task

	// CospCost, DupCost, SwitchCost, LossCost are the per-event costs
	// (spec.md §6), in the caller's natural units; Reconcile scales them
	// by CostMultiplier internally so the DP's int64 arithmetic stays
	// exact even for fractional-looking cost ratios.
	CospCost, DupCost, SwitchCost, LossCost float64

	// CostMultiplier scales the four costs above into exact integers
	// before the DP runs (spec.md §6). Default 1000.
	CostMultiplier int64

	// DistanceThreshold bounds host-switch candidates by host-tree
	// distance; transfer.Unbounded (the default) means no bound.
	DistanceThreshold int

	// AcyclicOnly restricts TaskReconciliations to reconciliations whose
	// transfer edges pass the Stolzer acyclicity test (spec.md §4.G).
	// Ignored for every other task.
	AcyclicOnly bool

	// Maximum caps the number of reconciliations/representatives
	// enumerated before Reconcile stops early and returns what it has
	// with Result.Truncated set. Zero means unbounded.
	Maximum int

	// K selects the top-K policy (spec.md §4.C policy 4) instead of
	// MinCostPolicy, when > 0. Not used by any of T1-T4's defined
	// semantics (see DESIGN.md); present because spec.md §4.C lists
	// Best-K as one of four pluggable policies the engine must support.
	K int
}

// DefaultOptions returns an Options with spec.md §6's stated defaults:
// T1, zero costs (the caller is expected to set these), no distance
// bound, no acyclic filter, no enumeration cap, cost multiplier 1000.
func DefaultOptions() Options {
	return Options{
		Task:              TaskReconciliations,
		CostMultiplier:    1000,
		DistanceThreshold: transfer.Unbounded,
	}
}

func (o Options) validate() error {
	switch o.Task {
	case TaskReconciliations, TaskEventVectors, TaskEventPartitions, TaskCDEquivalence:
	default:
		return &OptionError{Field: "Task", Reason: "unknown task"}
	}
	if o.CostMultiplier <= 0 {
		return &OptionError{Field: "CostMultiplier", Reason: "must be positive"}
	}
	if o.Maximum < 0 {
		return &OptionError{Field: "Maximum", Reason: "must be non-negative"}
	}
	if o.K < 0 {
		return &OptionError{Field: "K", Reason: "must be non-negative"}
	}
	if o.CospCost < 0 || o.DupCost < 0 || o.SwitchCost < 0 || o.LossCost < 0 {
		return &OptionError{Field: "cost vector", Reason: "costs must be non-negative"}
	}

	return nil
}

// scaled returns the four costs as exact int64 units under
// CostMultiplier (spec.md §6).
func (o Options) scaled() (cosp, dup, sw, loss int64) {
	m := float64(o.CostMultiplier)

	return int64(o.CospCost * m), int64(o.DupCost * m), int64(o.SwitchCost * m), int64(o.LossCost * m)
}
