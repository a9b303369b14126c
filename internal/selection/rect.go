package selection

import (
	"unicode/utf8"

	"github.com/jasonmcghee/texteditorcore/internal/coords"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
)

// ToRectangles converts sel into at most 3 layout-space rectangles: a
// first-line partial, a last-line partial, and — for selections spanning
// more than two lines — one middle block collapsed to the viewport's full
// content width rather than one rectangle per covered line. Returns nil
// for a collapsed selection.
func (s Selection) ToRectangles(hub *coords.Hub, tree *sumtree.Tree) []coords.LayoutRect {
	if s.IsCollapsed() {
		return nil
	}
	start, end := s.Range()

	if start.Line == end.Line {
		p1 := hub.DocToLayoutWithTree(start, tree)
		p2 := hub.DocToLayoutWithTree(end, tree)
		return []coords.LayoutRect{{X: p1.X, Y: p1.Y, Width: p2.X - p1.X, Height: hub.Metrics.LineHeight}}
	}

	rects := make([]coords.LayoutRect, 0, 3)
	rects = append(rects, lineRect(hub, tree, start.Line, start.Column, lineCharCount(tree, start.Line), true))

	if end.Line > start.Line+1 {
		middleLines := end.Line - start.Line - 1
		p0 := hub.DocToLayoutWithTree(coords.DocPos{Line: start.Line + 1, Column: 0}, tree)
		rects = append(rects, coords.LayoutRect{
			X:      p0.X,
			Y:      p0.Y,
			Width:  hub.ViewportWidth,
			Height: hub.Metrics.LineHeight * float64(middleLines),
		})
	}

	rects = append(rects, lineRect(hub, tree, end.Line, 0, end.Column, false))
	return rects
}

// lineRect builds the rectangle for one partial line of a multi-line
// selection, from col0 to col1. addSliver appends a visual sliver for the
// newline itself, for every partial line except the selection's last.
func lineRect(hub *coords.Hub, tree *sumtree.Tree, line, col0, col1 uint32, addSliver bool) coords.LayoutRect {
	if col1 < col0 {
		col1 = col0
	}
	p1 := hub.DocToLayoutWithTree(coords.DocPos{Line: line, Column: col0}, tree)
	p2 := hub.DocToLayoutWithTree(coords.DocPos{Line: line, Column: col1}, tree)
	width := p2.X - p1.X
	if addSliver {
		width += hub.Metrics.SpaceWidth
	}
	return coords.LayoutRect{X: p1.X, Y: p1.Y, Width: width, Height: hub.Metrics.LineHeight}
}

// lineCharCount returns the number of characters on line, used to size a
// selection's first-line rectangle out to the line's own end.
func lineCharCount(tree *sumtree.Tree, line uint32) uint32 {
	lineStartByte, ok := tree.LineToByte(line)
	if !ok {
		return 0
	}
	lineEndByte := tree.FindLineEndAt(lineStartByte)
	lineText := tree.GetTextSlice(int(lineStartByte), int(lineEndByte))
	return uint32(utf8.RuneCountInString(lineText))
}

// ScrollToCursor ensures hub's scroll keeps sel's cursor within the
// scrolloff margins.
func (s Selection) ScrollToCursor(hub *coords.Hub, tree *sumtree.Tree) {
	hub.EnsureVisible(hub.DocToLayoutWithTree(s.Cursor, tree))
}
