// Package cyclicity implements the per-reconciliation temporal
// consistency test (spec.md §4.G): whether a reconciliation's
// host-switch (transfer) edges could have happened in some consistent
// time order, given that a transfer's donor and recipient hosts must be
// co-extant.
//
// Two steps, run per reconciliation (a dagnode.Path from package walk):
//
//  1. ExtractTransferEdges finds, for every host-switch step, the
//     (donor, recipient) host pair, validated with an offline LCA batch
//     query (weighted union-find with path halving, in the manner of
//     Tarjan - see lca.go) so a malformed or externally-supplied path
//     cannot produce a nonsensical ancestor/descendant "transfer".
//  2. IsAcyclic builds a directed graph over host nodes encoding the
//     temporal constraints implied by every pair of transfer edges
//     (Stolzer et al.'s construction) and runs an iterative Tarjan SCC
//     pass; the reconciliation is acyclic iff no non-trivial SCC exists.
//
// This is a total, deterministic check with no failure modes (spec.md
// §4.G): every call either returns a verdict or a genuine invariant
// violation (ErrDanglingAssociation), never "unknown".
//
// Complexity: ExtractTransferEdges is O(|H| + |transfer edges|) (one
// DFS over the host tree plus near-O(1) unions per query); IsAcyclic is
// O(V + E) over the small induced graph of hosts actually involved.
package cyclicity
