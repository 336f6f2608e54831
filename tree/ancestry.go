package tree

// IsAncestorOf reports whether n is a (non-strict) ancestor of other,
// i.e. other == n or other is reached by repeatedly following Parent
// from other up to n. Walks up from other per spec.md §3.
func (n *Node) IsAncestorOf(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}

	return false
}

// ProperAncestors returns n's ancestors from its immediate parent up to
// (and including) the root, excluding n itself.
func (n *Node) ProperAncestors() []*Node {
	var out []*Node
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		out = append(out, cur)
	}

	return out
}

// ProperDescendants returns every node in n's subtree except n itself,
// in pre-order (each node before its children, right subtree first).
func (n *Node) ProperDescendants() []*Node {
	var out []*Node
	var stack []*Node
	if n.Left != nil {
		stack = append(stack, n.Left)
	}
	if n.Right != nil {
		stack = append(stack, n.Right)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)
		if cur.Left != nil {
			stack = append(stack, cur.Left)
		}
		if cur.Right != nil {
			stack = append(stack, cur.Right)
		}
	}

	return out
}

// Depth returns the number of edges from the root to n.
func (n *Node) Depth() int {
	d := 0
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		d++
	}

	return d
}

// Distance returns the number of tree edges on the path from ancestor
// down to descendant. The caller must ensure ancestor.IsAncestorOf(descendant);
// otherwise the result is meaningless (no error is raised, matching
// spec.md §3's description of Distance as a pure edge count).
func Distance(ancestor, descendant *Node) int {
	d := 0
	for cur := descendant; cur != ancestor && cur != nil; cur = cur.Parent {
		d++
	}

	return d
}

// EdgeDistance returns the number of tree edges on the path between a
// and b via their lowest common ancestor, regardless of which (if
// either) is an ancestor of the other. Used by package transfer to
// bound host-switch candidates by a distance threshold (spec.md §4.E).
func EdgeDistance(a, b *Node) int {
	anchor := LCA(a, b)

	return a.Depth() - anchor.Depth() + b.Depth() - anchor.Depth()
}

// LCA returns the lowest common ancestor of a and b, walking up via
// Parent pointers. Used by EdgeDistance and wherever a single query
// (rather than a batch) suffices; package cyclicity answers its batched
// queries with its own offline LCA and does not call this.
func LCA(a, b *Node) *Node {
	depthA, depthB := a.Depth(), b.Depth()
	for depthA > depthB {
		a = a.Parent
		depthA--
	}
	for depthB > depthA {
		b = b.Parent
		depthB--
	}
	for a != b {
		a = a.Parent
		b = b.Parent
	}

	return a
}
