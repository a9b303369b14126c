package coords

import (
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jasonmcghee/texteditorcore/internal/fontsys"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
)

// Scrolloff defaults: keep 4 lines visible above/below the cursor and 8
// characters visible left/right of it.
const (
	VerticalScrolloffLines   = 4
	HorizontalScrolloffChars = 8

	// visibleRangeMargin is the extra line count included on each end of
	// VisibleByteRangeWithTree, beyond what's strictly on-screen.
	visibleRangeMargin = 2
)

type boundsCache struct {
	valid            bool
	version          uint64
	longestLineChars int
	maxLineWidth     float64
	totalHeight      float64
}

// Hub owns scroll state, text metrics, and an optional font system, and is
// the sole place doc/layout/view/physical conversions happen. A Hub with a
// nil FontSystem falls back to metric-based estimates everywhere a shaped
// conversion would otherwise be used.
type Hub struct {
	ScrollX, ScrollY float64
	ViewportWidth    float64
	ViewportHeight   float64
	ScaleFactor      float64
	Metrics          TextMetrics
	FontSystem       fontsys.System

	mu     sync.Mutex
	bounds boundsCache
}

// NewHub returns a Hub with metric-based defaults and no font system
// attached; ScaleFactor defaults to 1 (no HiDPI scaling).
func NewHub() *Hub {
	return &Hub{ScaleFactor: 1, Metrics: DefaultMetrics()}
}

// AttachFontSystem wires a font system and recomputes LineHeight/SpaceWidth
// from it: line_height from laying out "A\nB" and taking the y-delta
// between the two glyphs (the shaped height when the font system places
// both on one row), space_width from the font's average-advance coefficient.
func (h *Hub) AttachFontSystem(fs fontsys.System) {
	h.FontSystem = fs
	if fs == nil {
		return
	}
	shaped := fs.LayoutTextScaled("A\nB", h.Metrics.FontSize, h.ScaleFactor)
	lineHeight := shaped.Height
	var yA, yB float64
	haveA, haveB := false, false
	for _, g := range shaped.Glyphs {
		switch {
		case g.Char == 'A' && !haveA:
			yA, haveA = g.Y, true
		case g.Char == 'B' && !haveB:
			yB, haveB = g.Y, true
		}
	}
	if haveA && haveB && yB > yA {
		lineHeight = yB - yA
	}
	if lineHeight > 0 {
		h.Metrics.LineHeight = lineHeight / h.ScaleFactor
	}
	h.Metrics.SpaceWidth = fs.CharWidthCoef() * h.Metrics.FontSize
	h.invalidateBounds()
}

func (h *Hub) invalidateBounds() {
	h.mu.Lock()
	h.bounds = boundsCache{}
	h.mu.Unlock()
}

// --- space <-> space conversions not requiring document context ---

func (h *Hub) LayoutToView(p LayoutPos) ViewPos {
	return ViewPos{X: p.X - h.ScrollX, Y: p.Y - h.ScrollY}
}

func (h *Hub) ViewToLayout(p ViewPos) LayoutPos {
	return LayoutPos{X: p.X + h.ScrollX, Y: p.Y + h.ScrollY}
}

func (h *Hub) ViewToPhysical(p ViewPos) PhysicalPos {
	return PhysicalPos{X: p.X * h.ScaleFactor, Y: p.Y * h.ScaleFactor}
}

func (h *Hub) PhysicalToView(p PhysicalPos) ViewPos {
	if h.ScaleFactor == 0 {
		return ViewPos{}
	}
	return ViewPos{X: p.X / h.ScaleFactor, Y: p.Y / h.ScaleFactor}
}

func (h *Hub) LayoutToPhysical(p LayoutPos) PhysicalPos {
	return h.ViewToPhysical(h.LayoutToView(p))
}

func (h *Hub) PhysicalToLayout(p PhysicalPos) LayoutPos {
	return h.ViewToLayout(h.PhysicalToView(p))
}

// --- doc <-> layout, requiring tree context for line/column text ---

func (h *Hub) resolveByteOffset(pos DocPos, tree *sumtree.Tree) uint64 {
	if pos.ByteOffset != 0 {
		return pos.ByteOffset
	}
	if pos.Line == 0 && pos.Column == 0 {
		return 0
	}
	return tree.DocPosToByte(pos.Line, pos.Column)
}

// DocToLayoutWithTree converts a document position to a layout-space
// position. Uses the shaped path (tab expansion + font-system measurement
// of the line prefix) when a font system is attached, else the metric path
// (column * space_width).
func (h *Hub) DocToLayoutWithTree(pos DocPos, tree *sumtree.Tree) LayoutPos {
	byteOff := h.resolveByteOffset(pos, tree)
	lineStart := tree.FindLineStartAt(byteOff)
	lineText := tree.GetLineAt(lineStart)
	prefix := prefixByColumn(lineText, pos.Column)

	var x float64
	if h.FontSystem != nil {
		expanded := expandTabs(prefix, h.Metrics.TabStops)
		shaped := h.FontSystem.LayoutTextScaled(expanded, h.Metrics.FontSize, h.ScaleFactor)
		if h.ScaleFactor != 0 {
			x = shaped.Width / h.ScaleFactor
		}
	} else {
		x = float64(pos.Column) * h.Metrics.SpaceWidth
	}
	y := float64(pos.Line) * h.Metrics.LineHeight
	return LayoutPos{X: x, Y: y}
}

// LayoutToDocWithTree converts a layout-space position back to a document
// position, via font-system-backed hit testing against the shaped line
// when a font system is attached, else a space_width estimate.
func (h *Hub) LayoutToDocWithTree(pos LayoutPos, tree *sumtree.Tree) DocPos {
	line := uint32(0)
	if h.Metrics.LineHeight > 0 {
		l := math.Floor(pos.Y / h.Metrics.LineHeight)
		if l > 0 {
			line = uint32(l)
		}
	}
	if line > tree.LineCount() {
		line = tree.LineCount()
	}

	lineStart, ok := tree.LineToByte(line)
	if !ok {
		line = tree.LineCount()
		lineStart, _ = tree.LineToByte(line)
	}
	lineText := tree.GetLineAt(lineStart)
	lineChars := uint32(utf8.RuneCountInString(lineText))

	var col uint32
	if h.FontSystem != nil {
		expanded := expandTabs(lineText, h.Metrics.TabStops)
		hit := h.FontSystem.HitTestLine(expanded, h.Metrics.FontSize, h.ScaleFactor, pos.X)
		col = collapseExpandedColumn(lineText, h.Metrics.TabStops, hit)
	} else if h.Metrics.SpaceWidth > 0 {
		col = uint32(math.Round(pos.X / h.Metrics.SpaceWidth))
	}
	if col > lineChars {
		col = lineChars
	}

	byteOff := tree.DocPosToByte(line, col)
	return DocPos{Line: line, Column: col, ByteOffset: byteOff}
}

// EnsureVisible adjusts scroll so pos sits at least the scrolloff margins
// from the viewport edges. Scroll never goes negative.
func (h *Hub) EnsureVisible(pos LayoutPos) {
	vMargin := float64(VerticalScrolloffLines) * h.Metrics.LineHeight
	hMargin := float64(HorizontalScrolloffChars) * h.Metrics.SpaceWidth

	if vMargin*2 > h.ViewportHeight && h.ViewportHeight > 0 {
		vMargin = h.ViewportHeight / 2
	}
	if hMargin*2 > h.ViewportWidth && h.ViewportWidth > 0 {
		hMargin = h.ViewportWidth / 2
	}

	switch {
	case pos.Y < h.ScrollY+vMargin:
		h.ScrollY = pos.Y - vMargin
	case pos.Y > h.ScrollY+h.ViewportHeight-vMargin:
		h.ScrollY = pos.Y - h.ViewportHeight + vMargin
	}
	switch {
	case pos.X < h.ScrollX+hMargin:
		h.ScrollX = pos.X - hMargin
	case pos.X > h.ScrollX+h.ViewportWidth-hMargin:
		h.ScrollX = pos.X - h.ViewportWidth + hMargin
	}
	if h.ScrollX < 0 {
		h.ScrollX = 0
	}
	if h.ScrollY < 0 {
		h.ScrollY = 0
	}
}

// NewChild returns a child viewport with its own bounds and scroll state,
// inheriting Metrics, FontSystem, and ScaleFactor. Used for nested
// scrollable regions such as a completion popup.
func (h *Hub) NewChild() *Hub {
	return &Hub{
		ScaleFactor: h.ScaleFactor,
		Metrics:     h.Metrics,
		FontSystem:  h.FontSystem,
	}
}

// collapseExpandedColumn maps expandedCol, a character index into
// expandTabs(lineText, tabStops), back to a character column in the
// original lineText — the inverse of expandTabs, needed so hit-testing
// against a tab-expanded line round-trips through DocToLayoutWithTree's
// original-column space instead of returning an expanded-space index. A
// hit landing inside a tab's expansion snaps to whichever original
// column (before or after the tab) it's closer to.
func collapseExpandedColumn(lineText string, tabStops, expandedCol uint32) uint32 {
	if tabStops == 0 {
		tabStops = 1
	}
	col, orig := uint32(0), uint32(0)
	for _, r := range lineText {
		width := uint32(1)
		if r == '\t' {
			width = tabStops - (col % tabStops)
		}
		if expandedCol <= col {
			return orig
		}
		if expandedCol < col+width {
			if expandedCol-col <= (col+width)-expandedCol {
				return orig
			}
			return orig + 1
		}
		col += width
		orig++
	}
	return orig
}

func prefixByColumn(lineText string, column uint32) string {
	if column == 0 {
		return ""
	}
	col := uint32(0)
	for i := range lineText {
		if col == column {
			return lineText[:i]
		}
		col++
	}
	return lineText
}

func expandTabs(s string, tabStops uint32) string {
	if tabStops == 0 {
		tabStops = 1
	}
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := uint32(0)
	for _, r := range s {
		if r == '\t' {
			n := tabStops - (col % tabStops)
			for i := uint32(0); i < n; i++ {
				b.WriteByte(' ')
			}
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}
