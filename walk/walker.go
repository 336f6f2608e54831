package walk

import "github.com/katalvlaran/cophylo/dagnode"

// choiceEntry is one MULTIPLE node's OR state encountered along the
// current walk: idx ranges over [0, maxIdx], maxIdx = len(children)-1,
// per spec.md §4.F.
type choiceEntry struct {
	maxIdx int
	idx    int
}

// Walker enumerates every reconciliation rooted at a dagnode.Node
// exactly once. A reconciliation is one full assignment of OR choices
// at every MULTIPLE node on the path; a SIMPLE node is an AND step and
// always contributes both children to every reconciliation that
// reaches it. The zero value is not usable; construct with NewWalker.
type Walker struct {
	root    *dagnode.Node
	choices []choiceEntry
	started bool
	done    bool
}

// NewWalker prepares an enumerator over root. root.IsEmpty() yields a
// walker with no reconciliations at all.
func NewWalker(root *dagnode.Node) *Walker {
	return &Walker{root: root}
}

// Next produces the next reconciliation as a dagnode.Path, in
// left-to-right traversal order, and reports whether one was found.
// Once it returns false, every subsequent call also returns false.
func (w *Walker) Next() (dagnode.Path, bool) {
	if w.done {
		return nil, false
	}
	if !w.started {
		w.started = true
		if w.root == nil || w.root.IsEmpty() {
			w.done = true

			return nil, false
		}

		return w.fullWalk(), true
	}

	if !w.advanceChoices() {
		w.done = true

		return nil, false
	}

	return w.fullWalk(), true
}

// advanceChoices advances the choice stack's deepest non-exhausted
// entry, popping exhausted entries first (spec.md §4.F). Reports
// whether any entry still had room to advance.
func (w *Walker) advanceChoices() bool {
	for len(w.choices) > 0 {
		top := &w.choices[len(w.choices)-1]
		if top.idx < top.maxIdx {
			top.idx++

			return true
		}
		w.choices = w.choices[:len(w.choices)-1]
	}

	return false
}

// fullWalk performs one complete, iterative (non-recursive) depth-first
// pass over the whole AND/OR structure rooted at w.root: a SIMPLE node
// always contributes its own association and descends into both Left
// and Right (Left first); a MULTIPLE node consumes (or, the first time
// it is reached at its position, creates) the next choice-stack entry
// and descends into exactly the one child it selects. w.choices is
// trimmed to the entries actually used this walk, so the next call to
// advanceChoices always operates on the current walk's real frontier.
func (w *Walker) fullWalk() dagnode.Path {
	var path dagnode.Path
	ci := 0

	type item struct{ node *dagnode.Node }
	stack := []item{{w.root}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch cur.node.Kind {
		case dagnode.Final:
			path = append(path, dagnode.Step{Assoc: cur.node.Assoc, Event: cur.node.Event})
		case dagnode.Simple:
			path = append(path, dagnode.Step{Assoc: cur.node.Assoc, Event: cur.node.Event})
			// Right pushed first so Left pops (and is visited) first.
			stack = append(stack, item{cur.node.Right}, item{cur.node.Left})
		case dagnode.Multiple:
			var entry *choiceEntry
			if ci < len(w.choices) {
				entry = &w.choices[ci]
			} else {
				w.choices = append(w.choices, choiceEntry{maxIdx: len(cur.node.Children) - 1})
				entry = &w.choices[len(w.choices)-1]
			}
			ci++
			stack = append(stack, item{cur.node.Children[entry.idx]})
		}
	}
	w.choices = w.choices[:ci]

	return path
}
