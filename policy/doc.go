// Package policy implements the four pluggable solution-combining
// strategies the DP engine (package engine) can run with (spec.md §4.C):
//
//   - MinCostPolicy: minimum-cost only (used for T1 enumeration and as
//     the T3/T4 pre-pass), optionally with subsolution counting enabled
//     (T1 counting) - the two collapse to one type here since
//     dagnode.Node.NumSubsolutions is always available for free; the
//     CountEnabled field only documents intent, matching spec.md §4.C's
//     framing of them as two policies over one mechanism.
//   - EventVectorPolicy: every node additionally carries the set of
//     (cospeciation, duplication, switch, loss) event vectors its
//     sub-DAG covers, with per-vector subsolution multiplicities, used
//     to answer T2.
//   - BestKPolicy: keeps only the K cheapest children of every OR choice,
//     using a min-heap over pairwise sums at each Cartesian combination
//     so the K-best list is produced without materializing the full
//     cross product.
//
// A policy's Cartesian and AddLoss wrap the package dagnode factory
// calls of the same name, with the policy adding or combining its own
// bookkeeping in Node.Extra. Not every operation wraps the factory:
// Leaf builds its Final node directly, and BestKPolicy.Best ranks and
// trims its list itself.
package policy
