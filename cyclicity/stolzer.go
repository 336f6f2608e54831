package cyclicity

import (
	"github.com/katalvlaran/cophylo/dagnode"
	"github.com/katalvlaran/cophylo/tree"
)

// IsAcyclic runs the full cyclicity check on path against hostTree:
// extract the path's transfer edges, build the temporal-precedence
// graph those edges imply, and test it for non-trivial strongly
// connected components (spec.md §4.G). A reconciliation with no
// host-switch steps is vacuously acyclic.
func IsAcyclic(hostTree *tree.Tree, path dagnode.Path) (bool, []TransferEdge, error) {
	edges, err := ExtractTransferEdges(hostTree, path)
	if err != nil {
		return false, nil, err
	}

	acyclic, _, err := CheckEdges(hostTree, edges)

	return acyclic, edges, err
}

// CheckEdges runs the temporal-precedence SCC test directly on an
// already-extracted edge set, skipping ExtractTransferEdges. Exposed
// for composing with other producers of TransferEdge (and for testing
// the SCC construction in isolation).
func CheckEdges(hostTree *tree.Tree, edges []TransferEdge) (bool, []TransferEdge, error) {
	if len(edges) == 0 {
		return true, nil, nil
	}

	g := buildPrecedenceGraph(edges)
	acyclic := !hasNonTrivialSCC(g)

	return acyclic, edges, nil
}

// precedenceGraph is an adjacency map over tree.Node identities, built
// only from the host nodes actually touched by transfer edges - it
// stays small regardless of host tree size.
type precedenceGraph struct {
	adj map[*tree.Node]map[*tree.Node]bool
}

func newPrecedenceGraph() *precedenceGraph {
	return &precedenceGraph{adj: make(map[*tree.Node]map[*tree.Node]bool)}
}

func (g *precedenceGraph) addEdge(from, to *tree.Node) {
	if from == nil || to == nil || from == to {
		return
	}
	if g.adj[from] == nil {
		g.adj[from] = make(map[*tree.Node]bool)
	}
	g.adj[from][to] = true
}

// buildPrecedenceGraph encodes the temporal ordering every pair of
// transfer edges forces on host nodes (Stolzer et al.'s construction):
// a transfer's donor must be co-extant with its recipient, so any two
// edges sharing or nesting a donor parasite constrain which must occur
// first. Every edge alone also contributes its own parent -> child
// precedence (a transfer happens after its donor/recipient nodes come
// into existence).
func buildPrecedenceGraph(edges []TransferEdge) *precedenceGraph {
	g := newPrecedenceGraph()

	for _, e := range edges {
		if e.Donor.Parent != nil {
			g.addEdge(e.Donor.Parent, e.Donor)
		}
		if e.Recipient.Parent != nil {
			g.addEdge(e.Recipient.Parent, e.Recipient)
		}
	}

	for i, a := range edges {
		for j, b := range edges {
			if i == j {
				continue
			}

			switch {
			case a.DonorParasite == b.DonorParasite:
				// Condition 3: two transfers from the same donor parasite
				// node must respect each other's endpoints.
				g.addEdge(a.Donor, b.Donor)
				g.addEdge(a.Recipient, b.Recipient)
			case a.DonorParasite.IsAncestorOf(b.DonorParasite):
				// Condition 2: b's transfer happens strictly after a's, since
				// b's donor parasite descends from a's.
				g.addEdge(a.Donor, b.Donor)
				g.addEdge(a.Recipient, b.Donor)
				g.addEdge(a.Donor, b.Recipient)
				g.addEdge(a.Recipient, b.Recipient)
			}
		}
	}

	return g
}

// hasNonTrivialSCC runs an iterative Tarjan SCC pass over g and reports
// whether any component has more than one node, or a single node with a
// self-loop.
func hasNonTrivialSCC(g *precedenceGraph) bool {
	index := 0
	indices := make(map[*tree.Node]int)
	lowlink := make(map[*tree.Node]int)
	onStack := make(map[*tree.Node]bool)
	var stack []*tree.Node

	type frame struct {
		v        *tree.Node
		children []*tree.Node
		ci       int
	}

	nodes := make([]*tree.Node, 0, len(g.adj))
	for v := range g.adj {
		nodes = append(nodes, v)
	}

	for _, start := range nodes {
		if _, seen := indices[start]; seen {
			continue
		}

		var work []*frame
		children := childrenOf(g, start)
		work = append(work, &frame{v: start, children: children})
		indices[start] = index
		lowlink[start] = index
		index++
		stack = append(stack, start)
		onStack[start] = true

		for len(work) > 0 {
			top := work[len(work)-1]
			if top.ci < len(top.children) {
				w := top.children[top.ci]
				top.ci++
				if _, seen := indices[w]; !seen {
					indices[w] = index
					lowlink[w] = index
					index++
					stack = append(stack, w)
					onStack[w] = true
					work = append(work, &frame{v: w, children: childrenOf(g, w)})
				} else if onStack[w] {
					if indices[w] < lowlink[top.v] {
						lowlink[top.v] = indices[w]
					}
				}
				continue
			}

			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1]
				if lowlink[top.v] < lowlink[parent.v] {
					lowlink[parent.v] = lowlink[top.v]
				}
			}

			if lowlink[top.v] == indices[top.v] {
				var component []*tree.Node
				for {
					n := len(stack) - 1
					w := stack[n]
					stack = stack[:n]
					onStack[w] = false
					component = append(component, w)
					if w == top.v {
						break
					}
				}
				if len(component) > 1 {
					return true
				}
				if len(component) == 1 && g.adj[component[0]][component[0]] {
					return true
				}
			}
		}
	}

	return false
}

func childrenOf(g *precedenceGraph, v *tree.Node) []*tree.Node {
	neighbors := g.adj[v]
	if len(neighbors) == 0 {
		return nil
	}
	out := make([]*tree.Node, 0, len(neighbors))
	for w := range neighbors {
		out = append(out, w)
	}

	return out
}
