package cyclicity

import "github.com/katalvlaran/cophylo/tree"

// lcaQuery is one (u, v) pair to resolve.
type lcaQuery struct {
	u, v *tree.Node
}

// offlineLCA answers every query in one DFS over host (rooted at root),
// using weighted union-find with path halving (Tarjan's offline LCA
// scheme), per spec.md §4.G. Returns, for each query in order, the LCA
// node.
func offlineLCA(root *tree.Node, hostTree *tree.Tree, queries []lcaQuery) []*tree.Node {
	n := hostTree.Size()
	parent := make([]int, n) // union-find parent, indexed by tree.Node.Index
	size := make([]int, n)   // union-find set size, for union by weight
	ancestor := make([]*tree.Node, n)
	visited := make([]bool, n)
	for i := range parent {
		parent[i] = i
		size[i] = 1
	}

	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]] // path halving
			x = parent[x]
		}

		return x
	}

	byNode := make(map[*tree.Node][]int) // node -> indices into queries where it's the "other" side
	for qi, q := range queries {
		byNode[q.u] = append(byNode[q.u], qi)
		byNode[q.v] = append(byNode[q.v], qi)
	}

	results := make([]*tree.Node, len(queries))

	// Iterative post-order Tarjan-offline-LCA DFS.
	type frame struct {
		n       *tree.Node
		visited bool
	}
	stack := []frame{{n: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		cur := top.n
		if !top.visited {
			top.visited = true
			if cur.Left != nil {
				stack = append(stack, frame{n: cur.Right})
				stack = append(stack, frame{n: cur.Left})
			}
			continue
		}
		stack = stack[:len(stack)-1]

		// cur's children have already been unioned into cur's set.
		ancestor[find(cur.Index)] = cur
		visited[cur.Index] = true

		for _, qi := range byNode[cur] {
			q := queries[qi]
			other := q.u
			if other == cur {
				other = q.v
			}
			if visited[other.Index] {
				results[qi] = ancestor[find(other.Index)]
			}
		}

		// Union cur's finished subtree into its parent's set.
		if p := cur.Parent; p != nil {
			rc, rp := find(cur.Index), find(p.Index)
			if size[rc] > size[rp] {
				rc, rp = rp, rc
			}
			parent[rc] = rp
			size[rp] += size[rc]
			ancestor[rp] = p
		}
	}

	return results
}
