package reconcile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/cophylo/cyclicity"
	"github.com/katalvlaran/cophylo/dagnode"
	"github.com/katalvlaran/cophylo/engine"
	"github.com/katalvlaran/cophylo/equivalence"
	"github.com/katalvlaran/cophylo/policy"
	"github.com/katalvlaran/cophylo/tree"
	"github.com/katalvlaran/cophylo/walk"
)

// Reconcile runs the DP engine once against hostTree/symbiontTree/leafMap
// under opts and dispatches to the task-specific answer shape (spec.md
// §4.I, §6). ctx is checked between enumeration steps; a cancelled
// context aborts with an error wrapping ErrCancelled, returning whatever
// was already enumerated is not an option since every task's answer is
// only meaningful as a whole (spec.md §5).
func Reconcile(ctx context.Context, hostTree, symbiontTree *tree.Tree, leafMap engine.LeafMap, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	cosp, dup, sw, loss := opts.scaled()
	cfg := engine.Config{
		CospCost:          cosp,
		DupCost:           dup,
		SwitchCost:        sw,
		LossCost:          loss,
		DistanceThreshold: opts.DistanceThreshold,
	}

	switch opts.Task {
	case TaskReconciliations:
		cfg.Policy = choosePolicy(opts)
	case TaskEventVectors:
		cfg.Policy = policy.EventVectorPolicy{}
	case TaskEventPartitions, TaskCDEquivalence:
		cfg.Policy = policy.MinCostPolicy{}
	}

	root, _, err := engine.Run(hostTree, symbiontTree, leafMap, cfg)
	if err != nil {
		if errors.Is(err, engine.ErrUnmappedLeaf) {
			return nil, &InputSemanticError{Reason: "symbiont leaf has no host mapping", Err: err}
		}

		return nil, &InternalError{Reason: "engine run failed", Err: err}
	}
	if root.IsEmpty() {
		return nil, &InputSemanticError{Reason: "no feasible reconciliation under the given cost vector (optimal cost is infinite)"}
	}

	switch opts.Task {
	case TaskReconciliations:
		return runReconciliations(ctx, hostTree, opts, root)
	case TaskEventVectors:
		return runEventVectors(ctx, cfg, opts, root)
	case TaskEventPartitions:
		return runClassTask(ctx, equivalence.EventPartition, TaskEventPartitions, opts, root)
	case TaskCDEquivalence:
		return runClassTask(ctx, equivalence.CDEquivalence, TaskCDEquivalence, opts, root)
	default:
		return nil, &InternalError{Reason: "unreachable task dispatch"}
	}
}

func choosePolicy(opts Options) policy.Policy {
	if opts.K > 0 {
		return policy.BestKPolicy{K: opts.K}
	}

	return policy.MinCostPolicy{}
}

// enumerate drives walk.Walker to completion (or opts.Maximum, or ctx
// cancellation), returning every emitted path.
func enumerate(ctx context.Context, root *dagnode.Node, max int) ([]dagnode.Path, bool, error) {
	w := walk.NewWalker(root)
	var out []dagnode.Path
	for {
		if err := ctx.Err(); err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrCancelled, err)
		}
		path, ok := w.Next()
		if !ok {
			return out, false, nil
		}
		out = append(out, path)
		if max > 0 && len(out) >= max {
			_, more := w.Next()

			return out, more, nil
		}
	}
}

func runReconciliations(ctx context.Context, hostTree *tree.Tree, opts Options, root *dagnode.Node) (*Result, error) {
	paths, truncated, err := enumerate(ctx, root, opts.Maximum)
	if err != nil {
		return nil, err
	}

	recs := make([]Reconciliation, 0, len(paths))
	for _, p := range paths {
		rec := Reconciliation{Associations: p.Associations()}
		if opts.AcyclicOnly {
			acyclic, _, cerr := cyclicity.IsAcyclic(hostTree, p)
			if cerr != nil {
				return nil, &InternalError{Reason: "cyclicity check failed", Err: cerr}
			}
			if !acyclic {
				continue
			}
			rec.Acyclic = &acyclic
		}
		recs = append(recs, rec)
	}

	return &Result{
		Task:            TaskReconciliations,
		OptimalCost:     unscale(root.Cost, opts),
		Root:            root,
		Reconciliations: recs,
		Truncated:       truncated,
	}, nil
}

// runEventVectors answers T2: the event-vector distribution at the
// optimum (policy.Vectors), each vector paired with one representative
// reconciliation found by walking root and counting events directly off
// each emitted Path, recovering the loss coordinate from the fact that
// every path sharing one root has the same total cost (spec.md §4.I's
// "per vector" strategy; see SPEC_FULL.md §5).
func runEventVectors(ctx context.Context, cfg engine.Config, opts Options, root *dagnode.Node) (*Result, error) {
	counts := policy.Vectors(root)
	remaining := make(map[policy.EventVector]bool, len(counts))
	for v := range counts {
		remaining[v] = true
	}
	reps := make(map[policy.EventVector][]string, len(counts))

	w := walk.NewWalker(root)
	truncated := false
	seen := 0
	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}
		path, ok := w.Next()
		if !ok {
			break
		}
		seen++
		v := vectorOf(path, root.Cost, cfg)
		if remaining[v] {
			reps[v] = path.Associations()
			delete(remaining, v)
		}
		if opts.Maximum > 0 && seen >= opts.Maximum {
			truncated = len(remaining) > 0
			break
		}
	}

	entries := make([]VectorEntry, 0, len(counts))
	for v, c := range counts {
		rep, found := reps[v]
		entries = append(entries, VectorEntry{Vector: v, Count: c, Representative: rep, RepresentFailed: !found})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].Vector, entries[j].Vector
		switch {
		case a.C != b.C:
			return a.C < b.C
		case a.D != b.D:
			return a.D < b.D
		case a.S != b.S:
			return a.S < b.S
		default:
			return a.L < b.L
		}
	})

	return &Result{
		Task:        TaskEventVectors,
		OptimalCost: unscale(root.Cost, opts),
		Root:        root,
		Vectors:     entries,
		Truncated:   truncated,
	}, nil
}

// vectorOf counts C/D/S directly from path's steps and derives L from
// the invariant that every complete path sharing one DP root has the
// same total cost: L = (totalCost - C*CospCost - D*DupCost - S*SwitchCost) / LossCost.
// When LossCost is zero the loss coordinate cannot be recovered this
// way and is left at zero (see DESIGN.md).
func vectorOf(path dagnode.Path, totalCost int64, cfg engine.Config) policy.EventVector {
	v := policy.EventVector{}
	for _, step := range path {
		switch step.Event {
		case dagnode.EventCospeciation:
			v.C++
		case dagnode.EventDuplication:
			v.D++
		case dagnode.EventHostSwitch:
			v.S++
		}
	}
	if cfg.LossCost != 0 {
		used := int64(v.C)*cfg.CospCost + int64(v.D)*cfg.DupCost + int64(v.S)*cfg.SwitchCost
		v.L = int((totalCost - used) / cfg.LossCost)
	}

	return v
}

// runClassTask answers T3/T4: each top-level alternative of
// BuildClassDAG becomes one ClassEntry, whose Count is that
// alternative's class-DAG NumSubsolutions (the "simple reducer" scope
// documented in DESIGN.md) and whose representative is the first path
// walk.Walker emits from that alternative's sub-DAG.
func runClassTask(ctx context.Context, task equivalence.Task, resultTask Task, opts Options, root *dagnode.Node) (*Result, error) {
	class := equivalence.BuildClassDAG(task, root)

	var alternatives []*dagnode.Node
	if class.Kind == dagnode.Multiple {
		alternatives = class.Children
	} else {
		alternatives = []*dagnode.Node{class}
	}

	entries := make([]ClassEntry, 0, len(alternatives))
	truncated := false
	for i, alt := range alternatives {
		if opts.Maximum > 0 && i >= opts.Maximum {
			truncated = true
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}

		w := walk.NewWalker(alt)
		var rep []string
		if path, ok := w.Next(); ok {
			rep = path.Associations()
		}
		entries = append(entries, ClassEntry{Count: alt.NumSubsolutions(), Representative: rep})
	}

	return &Result{
		Task:        resultTask,
		OptimalCost: unscale(root.Cost, opts),
		Root:        root,
		Classes:     entries,
		Truncated:   truncated,
	}, nil
}

func unscale(cost int64, opts Options) float64 {
	if cost >= dagnode.Infinity {
		return math.Inf(1)
	}

	return float64(cost) / float64(opts.CostMultiplier)
}
