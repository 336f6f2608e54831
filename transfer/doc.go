// Package transfer computes, for a host node h, the set of hosts a
// host-switch event at h is legal to jump to (spec.md §4.E): every node
// that is a proper cousin of h (not an ancestor of h, not in h's own
// subtree), optionally bounded to within a tree-edge distance threshold.
//
// Why: the DP engine (package engine) consults this set once per
// (parasite, host) cell considered for a host-switch term, so results
// are cached per host per distance threshold via Cache - a single
// engine run reuses the same host's transfer set across every parasite
// row, and the cache is owned by that run (no global/shared state,
// consistent with spec.md §5's single-writer-per-run arena discipline).
//
// Complexity: a Cache miss costs O(size of the visited sibling subtrees,
// pruned at the distance threshold); a hit is O(1).
package transfer
