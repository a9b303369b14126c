package selection

import (
	"unicode/utf8"

	"github.com/jasonmcghee/texteditorcore/internal/coords"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
)

func byteAt(tree *sumtree.Tree, pos coords.DocPos) uint64 {
	return tree.DocPosToByte(pos.Line, pos.Column)
}

func posAtByte(tree *sumtree.Tree, b uint64) coords.DocPos {
	line := tree.ByteToLine(b)
	lineStart, _ := tree.LineToByte(line)
	col := 0
	for range tree.GetTextSlice(int(lineStart), int(b)) {
		col++
	}
	return coords.DocPos{Line: line, Column: uint32(col), ByteOffset: b}
}

// MoveLeft moves the cursor back one character, crossing a line boundary
// at column 0. extend keeps the anchor fixed, growing the selection.
func (s Selection) MoveLeft(tree *sumtree.Tree, extend bool) Selection {
	b := byteAt(tree, s.Cursor)
	if b == 0 {
		return s.withCursor(s.Cursor, extend).clearGoalColumn()
	}
	lo := uint64(0)
	if b > utf8.UTFMax {
		lo = b - utf8.UTFMax
	}
	window := tree.GetTextSlice(int(lo), int(b))
	_, size := utf8.DecodeLastRuneInString(window)
	if size == 0 {
		size = 1
	}
	return s.withCursor(posAtByte(tree, b-uint64(size)), extend).clearGoalColumn()
}

// MoveRight moves the cursor forward one character, crossing a line
// boundary at the end of a line.
func (s Selection) MoveRight(tree *sumtree.Tree, extend bool) Selection {
	b := byteAt(tree, s.Cursor)
	total := tree.ByteCount()
	if b >= total {
		return s.withCursor(s.Cursor, extend).clearGoalColumn()
	}
	hi := total
	if b+utf8.UTFMax < total {
		hi = b + utf8.UTFMax
	}
	window := tree.GetTextSlice(int(b), int(hi))
	_, size := utf8.DecodeRuneInString(window)
	if size == 0 {
		size = 1
	}
	return s.withCursor(posAtByte(tree, b+uint64(size)), extend).clearGoalColumn()
}

// MoveLineStart moves the cursor to byte 0 of its current line.
func (s Selection) MoveLineStart(tree *sumtree.Tree, extend bool) Selection {
	b := byteAt(tree, s.Cursor)
	start := tree.FindLineStartAt(b)
	return s.withCursor(posAtByte(tree, start), extend).clearGoalColumn()
}

// MoveLineEnd moves the cursor to the end of its current line: the offset
// of the line's newline, or the end of the document on the last line.
func (s Selection) MoveLineEnd(tree *sumtree.Tree, extend bool) Selection {
	b := byteAt(tree, s.Cursor)
	end := tree.FindLineEndAt(b)
	return s.withCursor(posAtByte(tree, end), extend).clearGoalColumn()
}

// MoveUp moves the cursor up one visual line, preserving the layout-space
// X position (the goal column) across shorter intervening lines.
func (s Selection) MoveUp(tree *sumtree.Tree, hub *coords.Hub, extend bool) Selection {
	return s.moveVertical(tree, hub, extend, -hub.Metrics.LineHeight)
}

// MoveDown moves the cursor down one visual line. See MoveUp.
func (s Selection) MoveDown(tree *sumtree.Tree, hub *coords.Hub, extend bool) Selection {
	return s.moveVertical(tree, hub, extend, hub.Metrics.LineHeight)
}

func (s Selection) moveVertical(tree *sumtree.Tree, hub *coords.Hub, extend bool, dy float64) Selection {
	layout := hub.DocToLayoutWithTree(s.Cursor, tree)
	targetX := layout.X
	if s.hasGoalColumn {
		targetX = s.goalColumn
	}

	newLayout := coords.LayoutPos{X: targetX, Y: layout.Y + dy}
	newPos := hub.LayoutToDocWithTree(newLayout, tree)

	out := s.withCursor(newPos, extend)
	out.goalColumn = targetX
	out.hasGoalColumn = true
	return out
}
