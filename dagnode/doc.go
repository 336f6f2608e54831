// Package dagnode implements the shared AND/OR solution DAG (spec.md §3,
// §4.B): the compact structure in which a single bottom-up DP pass
// represents the entire set of optimal reconciliations.
//
// What:
//
//   - Association: a (parasite, host) pair.
//   - Node: a tagged DAG node of kind Final (a leaf solution), Simple
//     (an AND node combining exactly two children under one event), or
//     Multiple (an OR node over tied-cost alternatives).
//   - Factory operations: EmptySolution, FromLeafAssociation, Cartesian,
//     AddLoss, BestSolution, Merge - the shared constructors and
//     combinators for Node values. They are not the only way nodes are
//     built: package policy and package equivalence also construct some
//     Node values directly.
//
// Why:
//
//   - A naive implementation would materialize every reconciliation
//     individually; the DAG instead shares subsolutions, so counting and
//     enumeration (packages walk, equivalence) run in time proportional
//     to the DAG's size, not to the (potentially astronomical) number of
//     reconciliations it represents.
//
// Invariants (spec.md §3, §8):
//
//   - A Multiple node never directly contains another Multiple child;
//     Merge always flattens.
//   - All children of a given Multiple have equal Cost.
//   - NumSubsolutions is the product over Simple children and the sum
//     over Multiple children, computed on first call and memoized on the
//     node (single-writer, per spec.md §5).
//
// Lifetime: every Node produced by one Engine.Run call is an ordinary
// heap value (there is no arena) and is never mutated after being
// returned, except for the lazy NumSubsolutions cache.
package dagnode
