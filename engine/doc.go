// Package engine implements the DTL dynamic program (spec.md §4.D): a
// single bottom-up pass over (parasite x host) cells that fills two
// dense matrices - main (p maps exactly to h) and subtree (p maps
// somewhere in h's subtree, possibly after loss steps) - and returns the
// root solution DAG (package dagnode).
//
// The recurrence at each internal parasite/host cell considers three
// event families (spec.md §4.D):
//
//   - Cospeciation (host internal only): two symmetric child-to-child
//     assignments.
//   - Duplication: seven terms distributing the two child copies across
//     {h, h.Left, h.Right} with 0, 1, or 2 loss steps - grounded on
//     _examples/original_source/capybara/eucalypt/reconciliator.py's
//     duplication recurrence, the Go-native structure being a post-order
//     DP over a rooted tree with two per-node score tables, the same
//     shape soniakeys-bio/parsimony.go uses for Fitch/Sankoff parsimony.
//   - Host-switch: two terms per candidate in package transfer's set.
//
// Cost arithmetic is pure int64 (the caller, package reconcile, applies
// the configured cost multiplier before invoking Run, keeping this
// package's arithmetic exact and its tests free of floating-point
// rounding concerns).
//
// Complexity: Time O(|P| * |H|) DP cells, each O(1) event-family work
// plus O(|transfer set|) for host-switch; Memory O(|P| * |H|) for the
// two matrices.
package engine
