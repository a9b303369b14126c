package selection

import (
	"time"

	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
)

// undoGroupWindow groups edits within this long of each other into a
// single undo step.
const undoGroupWindow = 1 * time.Second

// Snapshot pairs a tree version with the selection set active when it was
// captured, so undo/redo restores cursors along with content.
type Snapshot struct {
	Tree       *sumtree.Tree
	Selections []Selection
}

// History is an undo/redo stack of Snapshots grouped by edit burst.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	lastEdit  time.Time
}

// NewHistory seeds a History with the document's initial state, so the
// very first undo has somewhere to land.
func NewHistory(initial Snapshot) *History {
	return &History{undoStack: []Snapshot{initial}}
}

// Record pushes snap as a new undo step, or — if called within
// undoGroupWindow of the previous Record — coalesces it into the most
// recent step instead, so a burst of typing undoes as one unit. now is
// explicit so tests control grouping without a real clock.
func (h *History) Record(snap Snapshot, now time.Time) {
	h.redoStack = nil

	if len(h.undoStack) > 0 && !h.lastEdit.IsZero() && now.Sub(h.lastEdit) <= undoGroupWindow {
		h.undoStack[len(h.undoStack)-1] = snap
	} else {
		h.undoStack = append(h.undoStack, snap)
	}
	h.lastEdit = now
}

// Undo pops the current step onto the redo stack and returns the step
// beneath it. ok is false if there is nothing left to undo.
func (h *History) Undo() (Snapshot, bool) {
	if len(h.undoStack) < 2 {
		return Snapshot{}, false
	}
	current := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	h.lastEdit = time.Time{}
	return h.undoStack[len(h.undoStack)-1], true
}

// Redo pops the most recently undone step back onto the undo stack and
// returns it. ok is false if there is nothing to redo.
func (h *History) Redo() (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	snap := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, snap)
	h.lastEdit = time.Time{}
	return snap, true
}
