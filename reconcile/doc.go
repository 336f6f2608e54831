// Package reconcile is the library's external interface: the only
// package an embedder (NEXUS parser, CLI, GUI - all out of scope here)
// needs to import for ordinary use. It wires package engine's DP,
// package walk's enumerator, package cyclicity's acyclicity test, and
// package equivalence's class machinery behind one Reconcile entry
// point dispatching on Options.Task (spec.md §4.I, §6).
//
// The four tasks:
//
//   - T1: every optimal reconciliation, optionally filtered to the
//     acyclic ones (Options.AcyclicOnly).
//   - T2: the event-vector distribution at the optimum, each vector
//     paired with one representative reconciliation.
//   - T3: the event-partition classes (host-blind).
//   - T4: the cospeciation/duplication-equivalence classes (host-switch
//     host abstracted, cospeciation/duplication host kept).
package reconcile
