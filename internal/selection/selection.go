// Package selection owns cursor/selection state and the editing
// operations driven from it: motion, insert/delete, multi-click and
// multi-cursor gestures, undo/redo, and translating a selection into
// layout-space rectangles for rendering.
package selection

import (
	"sync/atomic"

	"github.com/jasonmcghee/texteditorcore/internal/coords"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
)

var nextID atomic.Uint32

// Selection is one cursor (Cursor == Anchor) or range (Cursor != Anchor).
// Cursor is the moving end; Anchor is fixed while extending a selection.
type Selection struct {
	Cursor Cursor
	Anchor Cursor
	ID     uint32

	// goalColumn remembers the layout-space X a vertical motion is trying
	// to preserve across lines shorter than it. Reset whenever a
	// horizontal motion or edit moves the cursor.
	goalColumn    float64
	hasGoalColumn bool
}

// Cursor is a document position plus its resolved byte offset.
type Cursor = coords.DocPos

// New returns a collapsed selection at pos with a freshly allocated ID.
func New(pos coords.DocPos) Selection {
	return Selection{Cursor: pos, Anchor: pos, ID: nextID.Add(1)}
}

// IsCollapsed reports whether the selection has no range (cursor only):
// Cursor and Anchor name the same line and column.
func (s Selection) IsCollapsed() bool {
	return s.Cursor.Line == s.Anchor.Line && s.Cursor.Column == s.Anchor.Column
}

// Range returns the selection's byte range in document order, regardless
// of which end the cursor sits at.
func (s Selection) Range() (start, end coords.DocPos) {
	if s.Anchor.Line < s.Cursor.Line ||
		(s.Anchor.Line == s.Cursor.Line && s.Anchor.Column <= s.Cursor.Column) {
		return s.Anchor, s.Cursor
	}
	return s.Cursor, s.Anchor
}

// Collapse moves the anchor to the cursor, clearing any selection range.
func (s Selection) Collapse() Selection {
	s.Anchor = s.Cursor
	return s
}

func (s Selection) withCursor(pos coords.DocPos, extend bool) Selection {
	s.Cursor = pos
	if !extend {
		s.Anchor = pos
	}
	return s
}

func (s Selection) clearGoalColumn() Selection {
	s.hasGoalColumn = false
	return s
}
