// Package equivalence groups optimal reconciliations into equivalence
// classes without enumerating them (spec.md §4.H), and re-reconciles a
// single representative back out of a chosen class.
//
// Four stages, run in order:
//
//   - Reachable (H.1) restricts attention to the nodes of the shared
//     solution DAG (package dagnode) actually reachable from its root -
//     the DP fills every (parasite, host) cell regardless of whether an
//     optimal reconciliation ever visits it, so downstream work needs
//     this pruned view rather than the raw matrices.
//   - BuildClassDAG (H.2) rewrites the reachable DAG's association
//     labels per the chosen task (T3 collapses every host to
//     GeneralNode; T4 collapses only host-switch hosts to SwitchNode)
//     and merges any alternatives that become identical under that
//     relabeling.
//   - Reduce (H.3) canonicalizes an OR-set of class subtrees by the
//     partner rule (two SIMPLE siblings agreeing on one side merge their
//     other side into an OR) and duplicate absorption; this is the
//     "simple reducer" spec.md §4.H.3 describes as sufficient for hot
//     paths, used here as the default (see DESIGN.md for why the general
//     friend-rule/subset reducer is not implemented).
//   - Reconstrain (H.4) re-runs the DP with a chosen class
//     representative's events (and, for T4, hosts) pinned, producing the
//     sub-DAG of exactly that class's reconciliations.
package equivalence
