// Package tree implements rooted, full binary trees used as the host and
// symbiont trees of a cophylogenetic reconciliation.
//
// What:
//
//   - Node: a tree vertex with a stable key, a label, parent/left/right
//     links, a post-order Index and (for internal nodes) an InternalIndex.
//   - Tree: owns a root Node and the post-order linearization.
//   - Ancestry queries: IsAncestorOf, Sibling, ProperAncestors,
//     ProperDescendants, Depth, Distance.
//
// Why:
//
//   - Every downstream component (engine, transfer, cyclicity, equivalence)
//     addresses nodes by their post-order Index into dense arrays, so the
//     linearization performed here is load-bearing for the whole system.
//   - Trees must be "full" (every internal node has exactly two children);
//     this is checked once, at construction, so no downstream component has
//     to special-case unary nodes.
//
// Complexity:
//
//   - Linearize: Time O(n), Memory O(n).
//   - IsAncestorOf / ProperAncestors / Depth: Time O(depth).
//   - ProperDescendants: Time O(size of subtree).
//
// Errors:
//
//   - ErrNilNode          a nil *Node was passed where one was required.
//   - ErrNotFullBinary    an internal node has exactly one child.
//   - ErrEmptyKey         a node was built with an empty key.
package tree
