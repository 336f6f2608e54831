package reconcile

import (
	"github.com/katalvlaran/cophylo/dagnode"
	"github.com/katalvlaran/cophylo/policy"
)

// Reconciliation is one materialized optimal reconciliation (T1): its
// associations in traversal order, and whether it passed the acyclicity
// test (nil when Options.AcyclicOnly was false, so the check was never
// run).
type Reconciliation struct {
	Associations []string
	Acyclic      *bool
}

// VectorEntry is one distinct event vector at the optimum (T2): its
// count (number of reconciliations exhibiting it) and one representative
// reconciliation's associations, when a representative was found within
// Options.Maximum enumerated paths.
type VectorEntry struct {
	Vector          policy.EventVector
	Count           int64
	Representative  []string
	RepresentFailed bool // true if no representative was found within the enumeration cap
}

// ClassEntry is one top-level alternative of the class DAG (T3 or T4):
// Count is that alternative's class-DAG NumSubsolutions (the number of
// classes it holds, not the number of reconciliations they cover), and
// Representative is one representative reconciliation's associations.
type ClassEntry struct {
	Count          int64
	Representative []string
}

// Result is Reconcile's output. Exactly one of Reconciliations, Vectors,
// Classes is populated, per Options.Task.
type Result struct {
	Task Task

	// OptimalCost is the minimum total reconciliation cost, in the
	// caller's original (unscaled) units.
	OptimalCost float64

	// Root is the shared solution DAG engine.Run produced (MinCostPolicy
	// for T3/T4 and for T1 unless Options.K > 0, which uses BestKPolicy;
	// EventVectorPolicy for T2), exposed for callers that
	// want to re-walk or re-reduce it themselves.
	Root *dagnode.Node

	Reconciliations []Reconciliation // T1 only
	Vectors         []VectorEntry    // T2 only
	Classes         []ClassEntry     // T3, T4

	// Truncated is true if Options.Maximum stopped enumeration before
	// every reconciliation/representative was produced.
	Truncated bool
}
