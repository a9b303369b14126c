package selection

import (
	"testing"
	"time"

	"github.com/jasonmcghee/texteditorcore/internal/coords"
	"github.com/jasonmcghee/texteditorcore/internal/fontsys"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
	"github.com/stretchr/testify/require"
)

func testHub() *coords.Hub {
	hub := coords.NewHub()
	hub.AttachFontSystem(fontsys.NewMonospace())
	hub.ViewportWidth = 400
	hub.ViewportHeight = 200
	return hub
}

func TestRangeOrdersRegardlessOfCursorSide(t *testing.T) {
	a := coords.DocPos{Line: 0, Column: 0, ByteOffset: 0}
	b := coords.DocPos{Line: 0, Column: 5, ByteOffset: 5}

	sel := Selection{Anchor: b, Cursor: a}
	start, end := sel.Range()
	require.Equal(t, a, start)
	require.Equal(t, b, end)
}

func TestMoveRightAndLeftCrossLineBoundary(t *testing.T) {
	tree := sumtree.FromString("ab\ncd")
	sel := New(coords.DocPos{Line: 0, Column: 2, ByteOffset: 2})

	sel = sel.MoveRight(tree, false)
	require.EqualValues(t, 1, sel.Cursor.Line)
	require.EqualValues(t, 0, sel.Cursor.Column)

	sel = sel.MoveLeft(tree, false)
	require.EqualValues(t, 0, sel.Cursor.Line)
	require.EqualValues(t, 2, sel.Cursor.Column)
}

func TestMoveRightExtendsSelectionWhenRequested(t *testing.T) {
	tree := sumtree.FromString("abcd")
	sel := New(coords.DocPos{Line: 0, Column: 0, ByteOffset: 0})

	sel = sel.MoveRight(tree, true)
	sel = sel.MoveRight(tree, true)
	require.False(t, sel.IsCollapsed())
	start, end := sel.Range()
	require.EqualValues(t, 0, start.Column)
	require.EqualValues(t, 2, end.Column)
}

func TestMoveUpDownPreservesGoalColumnAcrossShortLine(t *testing.T) {
	tree := sumtree.FromString("abcdef\nxy\nabcdef")
	hub := testHub()

	sel := New(coords.DocPos{Line: 0, Column: 5, ByteOffset: 5})
	sel = sel.MoveDown(tree, hub, false) // lands clamped on short "xy" line
	require.EqualValues(t, 1, sel.Cursor.Line)
	require.LessOrEqual(t, sel.Cursor.Column, uint32(2))

	sel = sel.MoveDown(tree, hub, false) // goal column should restore to 5
	require.EqualValues(t, 2, sel.Cursor.Line)
	require.EqualValues(t, 5, sel.Cursor.Column)
}

func TestInsertAtCollapsedCursor(t *testing.T) {
	tree := sumtree.FromString("ac")
	sel := New(coords.DocPos{Line: 0, Column: 1, ByteOffset: 1})

	edit, newSel, result := Insert(tree, sel, "b")
	require.Equal(t, "abc", result.FlattenToString())
	require.EqualValues(t, 1, edit.Pos)
	require.True(t, newSel.IsCollapsed())
	require.EqualValues(t, 2, newSel.Cursor.Column)
}

func TestInsertReplacesNonCollapsedSelection(t *testing.T) {
	tree := sumtree.FromString("hello world")
	sel := Selection{
		Anchor: coords.DocPos{Line: 0, Column: 0, ByteOffset: 0},
		Cursor: coords.DocPos{Line: 0, Column: 5, ByteOffset: 5},
	}

	_, newSel, result := Insert(tree, sel, "bye")
	require.Equal(t, "bye world", result.FlattenToString())
	require.EqualValues(t, 3, newSel.Cursor.Column)
}

func TestBackspaceAtStartOfDocumentIsNoOp(t *testing.T) {
	tree := sumtree.FromString("abc")
	sel := New(coords.DocPos{Line: 0, Column: 0, ByteOffset: 0})

	_, _, _, ok := Backspace(tree, sel)
	require.False(t, ok)
}

func TestBackspaceOverNewlineLandsAtPreviousLineEnd(t *testing.T) {
	tree := sumtree.FromString("abc\nd")
	sel := New(coords.DocPos{Line: 1, Column: 0, ByteOffset: 4})

	_, newSel, result, ok := Backspace(tree, sel)
	require.True(t, ok)
	require.Equal(t, "abcd", result.FlattenToString())
	require.EqualValues(t, 0, newSel.Cursor.Line)
	require.EqualValues(t, 3, newSel.Cursor.Column)
}

func TestDeleteAtEndOfDocumentIsNoOp(t *testing.T) {
	tree := sumtree.FromString("abc")
	sel := New(coords.DocPos{Line: 0, Column: 3, ByteOffset: 3})

	_, _, _, ok := Delete(tree, sel)
	require.False(t, ok)
}

func TestDeleteForwardRemovesNextCharacter(t *testing.T) {
	tree := sumtree.FromString("abc")
	sel := New(coords.DocPos{Line: 0, Column: 1, ByteOffset: 1})

	_, newSel, result, ok := Delete(tree, sel)
	require.True(t, ok)
	require.Equal(t, "ac", result.FlattenToString())
	require.EqualValues(t, 1, newSel.Cursor.Column)
}

func TestClickTrackerDetectsDoubleAndTripleClick(t *testing.T) {
	var tr ClickTracker
	pos := coords.DocPos{Line: 2, Column: 10}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.Equal(t, ClickSingle, tr.Click(pos, base))
	require.Equal(t, ClickDouble, tr.Click(pos, base.Add(100*time.Millisecond)))
	require.Equal(t, ClickTriple, tr.Click(pos, base.Add(200*time.Millisecond)))
	// a fourth rapid click at the same spot starts back over at single
	require.Equal(t, ClickSingle, tr.Click(pos, base.Add(300*time.Millisecond)))
}

func TestClickTrackerResetsAfterWindowExpires(t *testing.T) {
	var tr ClickTracker
	pos := coords.DocPos{Line: 0, Column: 0}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.Equal(t, ClickSingle, tr.Click(pos, base))
	require.Equal(t, ClickSingle, tr.Click(pos, base.Add(500*time.Millisecond)))
}

func TestClickTrackerRespectsColumnTolerance(t *testing.T) {
	var tr ClickTracker
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tr.Click(coords.DocPos{Line: 0, Column: 10}, base)
	kind := tr.Click(coords.DocPos{Line: 0, Column: 13}, base.Add(50*time.Millisecond))
	require.Equal(t, ClickSingle, kind, "beyond the 2-character tolerance should not register as a double-click")
}

func TestSelectWordSelectsRunOfWordCharacters(t *testing.T) {
	tree := sumtree.FromString("foo bar.baz")
	sel := SelectWord(tree, coords.DocPos{Line: 0, Column: 5, ByteOffset: 5}) // inside "bar"

	start, end := sel.Range()
	require.EqualValues(t, 4, start.Column)
	require.EqualValues(t, 7, end.Column)
}

func TestSelectLineIncludesTrailingNewline(t *testing.T) {
	tree := sumtree.FromString("one\ntwo\nthree")
	sel := SelectLine(tree, coords.DocPos{Line: 1, Column: 1, ByteOffset: 5})

	start, end := sel.Range()
	require.EqualValues(t, 0, start.Column)
	require.Equal(t, uint64(4), start.ByteOffset)
	require.Equal(t, uint64(8), end.ByteOffset)
}

func TestAltClickAppendsCursorWithoutDisturbingOthers(t *testing.T) {
	first := New(coords.DocPos{Line: 0, Column: 0})
	selections := []Selection{first}

	selections = AltClick(selections, coords.DocPos{Line: 1, Column: 0})
	require.Len(t, selections, 2)
	require.Equal(t, first, selections[0])
}

func TestAltDragExtendsOnlyMostRecentCursor(t *testing.T) {
	selections := []Selection{
		New(coords.DocPos{Line: 0, Column: 0}),
		New(coords.DocPos{Line: 1, Column: 0}),
	}
	selections = AltDrag(selections, coords.DocPos{Line: 1, Column: 5})

	require.True(t, selections[0].IsCollapsed())
	require.False(t, selections[1].IsCollapsed())
}

func TestToRectanglesSingleLineSelection(t *testing.T) {
	tree := sumtree.FromString("hello world")
	hub := testHub()
	sel := Selection{
		Anchor: coords.DocPos{Line: 0, Column: 0},
		Cursor: coords.DocPos{Line: 0, Column: 5},
	}

	rects := sel.ToRectangles(hub, tree)
	require.Len(t, rects, 1)
	require.Greater(t, rects[0].Width, 0.0)
}

func TestToRectanglesThreeLineSelectionHasOneMiddleRect(t *testing.T) {
	tree := sumtree.FromString("abc\ndef\nghi")
	hub := testHub()
	sel := Selection{
		Anchor: coords.DocPos{Line: 0, Column: 1},
		Cursor: coords.DocPos{Line: 2, Column: 2},
	}

	rects := sel.ToRectangles(hub, tree)
	require.Len(t, rects, 3)
	require.Equal(t, hub.ViewportWidth, rects[1].Width)
}

func TestToRectanglesManyLineSelectionCollapsesMiddleBlock(t *testing.T) {
	tree := sumtree.FromString("abc\ndef\nghi\njkl\nmno")
	hub := testHub()
	sel := Selection{
		Anchor: coords.DocPos{Line: 0, Column: 1},
		Cursor: coords.DocPos{Line: 4, Column: 2},
	}

	rects := sel.ToRectangles(hub, tree)
	require.Len(t, rects, 3, "first-partial + one collapsed middle block + last-partial")
	require.Equal(t, hub.ViewportWidth, rects[1].Width)
	require.Equal(t, hub.Metrics.LineHeight*3, rects[1].Height)
}

func TestToRectanglesCollapsedSelectionReturnsNil(t *testing.T) {
	hub := testHub()
	tree := sumtree.FromString("abc")
	sel := New(coords.DocPos{Line: 0, Column: 1})
	require.Nil(t, sel.ToRectangles(hub, tree))
}

func TestHistoryUndoRedoRoundTrip(t *testing.T) {
	t0 := sumtree.FromString("a")
	t1 := sumtree.FromString("ab")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	h := NewHistory(Snapshot{Tree: t0})
	h.Record(Snapshot{Tree: t1}, base.Add(2*time.Second))

	prev, ok := h.Undo()
	require.True(t, ok)
	require.Same(t, t0, prev.Tree)

	next, ok := h.Redo()
	require.True(t, ok)
	require.Same(t, t1, next.Tree)
}

func TestHistoryGroupsEditsWithinDebounceWindow(t *testing.T) {
	t0 := sumtree.FromString("")
	t1 := sumtree.FromString("a")
	t2 := sumtree.FromString("ab")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	h := NewHistory(Snapshot{Tree: t0})
	h.Record(Snapshot{Tree: t1}, base)
	h.Record(Snapshot{Tree: t2}, base.Add(200*time.Millisecond)) // within 1s: coalesces

	prev, ok := h.Undo()
	require.True(t, ok)
	require.Same(t, t0, prev.Tree, "rapid typing should undo as a single step")
}

func TestHistoryUndoWithNothingToUndoReturnsFalse(t *testing.T) {
	h := NewHistory(Snapshot{Tree: sumtree.FromString("x")})
	_, ok := h.Undo()
	require.False(t, ok)
}
