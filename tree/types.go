package tree

import "errors"

// Sentinel errors for tree construction and queries.
var (
	// ErrNilNode indicates a nil *Node was passed where one was required.
	ErrNilNode = errors.New("tree: nil node")

	// ErrNotFullBinary indicates an internal node has exactly one child,
	// violating the full-binary-tree invariant.
	ErrNotFullBinary = errors.New("tree: node is not full binary (exactly one child)")

	// ErrEmptyKey indicates a node was constructed with an empty key.
	ErrEmptyKey = errors.New("tree: node key is empty")

	// ErrNotLinearized indicates an index-addressed operation was attempted
	// before Tree.Linearize ran.
	ErrNotLinearized = errors.New("tree: tree has not been linearized")
)

// Node is a vertex of a rooted full binary tree.
//
// Index is assigned by Tree.Linearize in post-order and is the address
// every downstream dense array (engine.main, engine.subtree, ...) uses.
// InternalIndex is a second, denser counter over non-leaf nodes only;
// some components (e.g. per-internal-node caches) prefer it to avoid
// wasting space on leaf slots.
type Node struct {
	// Key uniquely identifies this node within its Tree.
	Key string

	// Label is the printable name (defaults to Key if unset by the caller).
	Label string

	Parent *Node
	Left   *Node
	Right  *Node

	// Index is the post-order position assigned by Linearize; it holds
	// the zero value until then.
	Index int

	// InternalIndex is the post-order position among internal (non-leaf)
	// nodes only; Linearize sets it to -1 for leaves. It holds the zero
	// value before Linearize runs.
	InternalIndex int
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// Sibling returns n's sibling (the other child of n.Parent), or nil if
// n is the root.
func (n *Node) Sibling() *Node {
	if n.Parent == nil {
		return nil
	}
	if n.Parent.Left == n {
		return n.Parent.Right
	}

	return n.Parent.Left
}

// Tree is a rooted, full binary tree over Nodes.
//
// A Tree is built by assembling Nodes via their Parent/Left/Right fields
// and then calling Linearize, which assigns post-order indices and
// validates the full-binary invariant. Downstream components must not
// address a Tree by Index before Linearize has succeeded.
type Tree struct {
	root     *Node
	order    []*Node // post-order list, order[i].Index == i
	internal []*Node // post-order list restricted to internal nodes
}

// NewTree wraps root into a Tree and linearizes it.
// Returns ErrNilNode if root is nil, or ErrNotFullBinary/ErrEmptyKey if
// the invariant is violated anywhere in the tree.
func NewTree(root *Node) (*Tree, error) {
	if root == nil {
		return nil, ErrNilNode
	}
	t := &Tree{root: root}
	if err := t.Linearize(); err != nil {
		return nil, err
	}

	return t, nil
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Size returns the post-order length (total number of nodes).
func (t *Tree) Size() int {
	return len(t.order)
}

// NumInternal returns the number of internal (non-leaf) nodes.
func (t *Tree) NumInternal() int {
	return len(t.internal)
}

// NodeAt returns the node whose post-order Index is i.
func (t *Tree) NodeAt(i int) *Node {
	return t.order[i]
}

// InternalAt returns the internal-only node whose InternalIndex is i.
func (t *Tree) InternalAt(i int) *Node {
	return t.internal[i]
}

// Leaves returns all leaf nodes in post-order.
func (t *Tree) Leaves() []*Node {
	leaves := make([]*Node, 0, t.Size()-t.NumInternal())
	for _, n := range t.order {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
	}

	return leaves
}

// Linearize performs an iterative post-order traversal assigning Index to
// every node and InternalIndex to every internal node, and validates the
// full-binary invariant along the way. Iterative (explicit stack) per
// spec.md §9's guidance to avoid deep recursion on realistic tree depths.
func (t *Tree) Linearize() error {
	if t.root == nil {
		return ErrNilNode
	}

	t.order = t.order[:0]
	t.internal = t.internal[:0]

	type frame struct {
		n        *Node
		visited  bool
	}
	stack := []frame{{n: t.root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		n := top.n
		if n == nil {
			return ErrNilNode
		}
		if n.Key == "" {
			return ErrEmptyKey
		}
		if n.Label == "" {
			n.Label = n.Key
		}

		hasLeft := n.Left != nil
		hasRight := n.Right != nil
		if hasLeft != hasRight {
			return ErrNotFullBinary
		}

		if !top.visited {
			top.visited = true
			if hasLeft {
				stack = append(stack, frame{n: n.Right})
				stack = append(stack, frame{n: n.Left})
			}
			continue
		}

		// Post-order visit.
		n.Index = len(t.order)
		t.order = append(t.order, n)
		if !n.IsLeaf() {
			n.InternalIndex = len(t.internal)
			t.internal = append(t.internal, n)
		} else {
			n.InternalIndex = -1
		}
		stack = stack[:len(stack)-1]
	}

	return nil
}
