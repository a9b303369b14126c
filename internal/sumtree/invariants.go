package sumtree

import (
	"fmt"
	"unicode/utf8"
)

// CheckInvariants walks the tree rooted at t and verifies the structural
// invariants that must hold after every edit: every node's Sums match its
// recomputed aggregate, no leaf exceeds MaxSpans spans, no internal node
// exceeds MaxSpans children, and every text span holds well-formed UTF-8.
// It never mutates the tree; a non-nil error means a corrupted tree. Only
// the tests call it: no build, debug or otherwise, runs it after an edit.
func CheckInvariants(t *Tree) error {
	return checkNode(t.root)
}

func checkNode(n *Node) error {
	if n.IsLeaf() {
		if len(n.Spans()) > MaxSpans {
			return fmt.Errorf("sumtree: leaf has %d spans, exceeds MaxSpans=%d", len(n.Spans()), MaxSpans)
		}
		want := sumSpans(n.Spans())
		if want != n.sums {
			return fmt.Errorf("sumtree: leaf sums mismatch: have %+v want %+v", n.sums, want)
		}
		for _, sp := range n.Spans() {
			if sp.IsText() && !utf8.Valid(sp.Bytes()) {
				return fmt.Errorf("sumtree: text span contains invalid UTF-8")
			}
		}
		return nil
	}

	if len(n.Children()) > MaxSpans {
		return fmt.Errorf("sumtree: internal node has %d children, exceeds MaxSpans=%d", len(n.Children()), MaxSpans)
	}
	var want Sums
	for _, c := range n.Children() {
		if err := checkNode(c); err != nil {
			return err
		}
		want = want.Add(c.sums)
	}
	if want != n.sums {
		return fmt.Errorf("sumtree: internal sums mismatch: have %+v want %+v", n.sums, want)
	}
	return nil
}
