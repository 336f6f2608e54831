// Package walk enumerates the reconciliations held in a shared solution
// DAG (package dagnode) one at a time, in left-to-right order, without
// ever materializing the full solution set (spec.md §4.F).
//
// A SIMPLE node is an AND node (spec.md §3): every reconciliation that
// reaches it includes both its Left and Right child together, not one
// or the other. Each call to Walker.Next therefore performs one complete
// iterative DFS over the whole AND-tree reachable from the root -
// visiting both children of every SIMPLE node it meets - and the only
// thing that varies between calls is which child each MULTIPLE (OR)
// node along the way takes.
//
// A choice stack, one entry per MULTIPLE node encountered so far
// (odometer-style: maxIndex, current index), drives that variation:
// after a full walk is emitted, the next call advances the
// deepest-encountered MULTIPLE's index, resetting and reusing the
// stack below it, until every combination of OR choices has been
// produced and the stack empties.
//
// Each call to Walker.Next does O(size of the AND-tree reachable from
// the root) work; the choice stack never grows beyond the number of
// MULTIPLE nodes on that walk, independent of how many reconciliations
// exist in total.
package walk
