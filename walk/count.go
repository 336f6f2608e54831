package walk

import "github.com/katalvlaran/cophylo/dagnode"

// CountAll walks root end to end and counts reconciliations by brute
// enumeration, independent of dagnode.Node.NumSubsolutions' memoized
// product/sum recurrence. It exists as a cross-check for small DAGs (it
// is exponential in the worst case) rather than a production counting
// path.
func CountAll(root *dagnode.Node) int64 {
	w := NewWalker(root)
	var n int64
	for {
		if _, ok := w.Next(); !ok {
			break
		}
		n++
	}

	return n
}

// All materializes every reconciliation rooted at root as a slice of
// Paths. Intended for tests and small DAGs; production call sites
// should drive Walker directly to avoid holding the whole set in memory.
func All(root *dagnode.Node) []dagnode.Path {
	w := NewWalker(root)
	var out []dagnode.Path
	for {
		p, ok := w.Next()
		if !ok {
			break
		}
		out = append(out, p)
	}

	return out
}
