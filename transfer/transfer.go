package transfer

import "github.com/katalvlaran/cophylo/tree"

// Unbounded indicates "no distance threshold" (D = ∞ in spec.md §4.E).
const Unbounded = -1

// Cache memoizes TransferSet results per (host, distance threshold),
// scoped to one engine run (spec.md §4.E: "the result is cached per h").
type Cache struct {
	memo map[*tree.Node]map[int][]*tree.Node
}

// NewCache returns an empty, ready-to-use Cache.
func NewCache() *Cache {
	return &Cache{memo: make(map[*tree.Node]map[int][]*tree.Node)}
}

// Get returns the transfer set for host h bounded by maxDistance
// (Unbounded for no bound), computing and caching it on first request.
func (c *Cache) Get(h *tree.Node, maxDistance int) []*tree.Node {
	byDist, ok := c.memo[h]
	if !ok {
		byDist = make(map[int][]*tree.Node)
		c.memo[h] = byDist
	}
	if set, ok := byDist[maxDistance]; ok {
		return set
	}

	set := computeSet(h, maxDistance)
	byDist[maxDistance] = set

	return set
}

// computeSet walks h's ancestor chain; at each level k (0 = h itself,
// 1 = h.Parent, ...) it takes that ancestor's sibling subtree - which is
// exactly the "start from h's sibling, then its parent's sibling, then
// the grandparent's sibling, ..." walk spec.md §4.E describes - and
// collects every node in it within maxDistance tree-edges of h. This
// yields precisely the proper cousins of h: nodes that are neither
// ancestors of h nor inside h's own subtree.
func computeSet(h *tree.Node, maxDistance int) []*tree.Node {
	var out []*tree.Node
	for ancestor := h; ancestor.Parent != nil; ancestor = ancestor.Parent {
		sib := ancestor.Sibling()
		if sib == nil {
			continue
		}
		collectBounded(sib, h, maxDistance, &out)
	}

	return out
}

// collectBounded appends every node of the subtree rooted at sub whose
// tree-edge distance from h is within maxDistance, pruning subtrees once
// the bound is exceeded (distance only grows monotonically on further
// descent, so no node below a pruned one can qualify either).
func collectBounded(sub, h *tree.Node, maxDistance int, out *[]*tree.Node) {
	stack := []*tree.Node{sub}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if maxDistance != Unbounded && tree.EdgeDistance(h, n) > maxDistance {
			continue
		}
		*out = append(*out, n)
		if n.Left != nil {
			stack = append(stack, n.Left, n.Right)
		}
	}
}
