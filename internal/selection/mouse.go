package selection

import (
	"time"

	"github.com/jasonmcghee/texteditorcore/internal/coords"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
)

const (
	multiClickWindow    = 300 * time.Millisecond
	multiClickTolerance = 2 // characters
)

// ClickKind distinguishes a single click from a double/triple click, which
// select a word or a line respectively.
type ClickKind int

const (
	ClickSingle ClickKind = iota
	ClickDouble
	ClickTriple
)

// ClickTracker detects double- and triple-clicks within a 300ms window and
// a 2-character position tolerance, resetting back to single-click after
// a triple click or once the window/tolerance is exceeded.
type ClickTracker struct {
	lastTime time.Time
	lastPos  coords.DocPos
	count    int
}

// Click records a click at pos observed at now and returns its resolved
// kind. now is an explicit parameter (not time.Now) so tests control it.
func (c *ClickTracker) Click(pos coords.DocPos, now time.Time) ClickKind {
	sameSpot := c.count > 0 &&
		now.Sub(c.lastTime) <= multiClickWindow &&
		pos.Line == c.lastPos.Line &&
		absInt(int(pos.Column)-int(c.lastPos.Column)) <= multiClickTolerance

	if sameSpot {
		c.count++
	} else {
		c.count = 1
	}
	if c.count > 3 {
		c.count = 1
	}
	c.lastTime = now
	c.lastPos = pos

	switch c.count {
	case 2:
		return ClickDouble
	case 3:
		return ClickTriple
	default:
		return ClickSingle
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SelectWord returns a selection spanning the run of word characters
// (letters, digits, underscore) touching pos, or a collapsed selection at
// pos if it sits between non-word characters.
func SelectWord(tree *sumtree.Tree, pos coords.DocPos) Selection {
	b := byteAt(tree, pos)
	lineStart := tree.FindLineStartAt(b)
	lineEnd := tree.FindLineEndAt(b)
	line := tree.GetTextSlice(int(lineStart), int(lineEnd))
	offsetInLine := int(b - lineStart)

	start, end := offsetInLine, offsetInLine
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	for end < len(line) && isWordByte(line[end]) {
		end++
	}

	startByte := lineStart + uint64(start)
	endByte := lineStart + uint64(end)
	return Selection{
		Anchor: posAtByte(tree, startByte),
		Cursor: posAtByte(tree, endByte),
		ID:     nextID.Add(1),
	}
}

// SelectLine returns a selection spanning pos's whole line, including its
// trailing newline when one exists, so a subsequent delete removes the
// line entirely.
func SelectLine(tree *sumtree.Tree, pos coords.DocPos) Selection {
	b := byteAt(tree, pos)
	lineStart := tree.FindLineStartAt(b)
	lineEnd := tree.FindLineEndAt(b)

	endByte := lineEnd
	if next, ok := tree.FindNextNewline(lineEnd); ok {
		endByte = next + 1
	}

	return Selection{
		Anchor: posAtByte(tree, lineStart),
		Cursor: posAtByte(tree, endByte),
		ID:     nextID.Add(1),
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// ShiftClick extends sel's cursor to pos while keeping its anchor fixed.
func ShiftClick(sel Selection, tree *sumtree.Tree, pos coords.DocPos) Selection {
	_ = tree
	return sel.withCursor(pos, true).clearGoalColumn()
}

// AltClick appends a new collapsed cursor at pos to an existing
// multi-cursor set, for adding a cursor without disturbing the others.
func AltClick(selections []Selection, pos coords.DocPos) []Selection {
	return append(selections, New(pos))
}

// AltDrag updates the most recently added cursor (selections[len-1],
// the one alt-click just appended) to extend toward pos, leaving every
// other cursor in the set untouched.
func AltDrag(selections []Selection, pos coords.DocPos) []Selection {
	if len(selections) == 0 {
		return selections
	}
	last := len(selections) - 1
	selections[last] = selections[last].withCursor(pos, true)
	return selections
}
