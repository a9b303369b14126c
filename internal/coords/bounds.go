package coords

import (
	"math"
	"strings"

	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
)

// GetDocumentBounds returns (max_line_width, total_height) in layout
// pixels, cached by tree version plus the longest line's character count;
// invalidated when either changes.
func (h *Hub) GetDocumentBounds(tree *sumtree.Tree) (maxLineWidth, totalHeight float64) {
	longest := longestLineChars(tree)

	h.mu.Lock()
	if h.bounds.valid && h.bounds.version == tree.Version() && h.bounds.longestLineChars == longest {
		w, hh := h.bounds.maxLineWidth, h.bounds.totalHeight
		h.mu.Unlock()
		return w, hh
	}
	h.mu.Unlock()

	charWidth := h.Metrics.SpaceWidth
	if h.FontSystem != nil {
		charWidth = h.Metrics.FontSize * h.FontSystem.CharWidthCoef()
	}
	width := float64(longest) * charWidth
	height := float64(tree.LineCount()+1) * h.Metrics.LineHeight

	h.mu.Lock()
	h.bounds = boundsCache{
		valid:            true,
		version:          tree.Version(),
		longestLineChars: longest,
		maxLineWidth:     width,
		totalHeight:      height,
	}
	h.mu.Unlock()
	return width, height
}

func longestLineChars(tree *sumtree.Tree) int {
	longest := 0
	for _, line := range strings.Split(tree.FlattenToString(), "\n") {
		n := 0
		for range line {
			n++
		}
		if n > longest {
			longest = n
		}
	}
	return longest
}

// ClampScrollToBounds enforces scroll ∈ [0, doc_size − viewport_size] along
// both axes.
func (h *Hub) ClampScrollToBounds(tree *sumtree.Tree) {
	maxWidth, totalHeight := h.GetDocumentBounds(tree)
	maxScrollX := math.Max(0, maxWidth-h.ViewportWidth)
	maxScrollY := math.Max(0, totalHeight-h.ViewportHeight)
	h.ScrollX = clamp(h.ScrollX, 0, maxScrollX)
	h.ScrollY = clamp(h.ScrollY, 0, maxScrollY)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// VisibleByteRangeWithTree computes the byte range spanning the first and
// last visible lines, widened by visibleRangeMargin lines on each end.
// This is the sole input to the layout cache's culling pass.
func (h *Hub) VisibleByteRangeWithTree(tree *sumtree.Tree) (start, end uint64) {
	if h.Metrics.LineHeight <= 0 {
		return 0, tree.ByteCount()
	}
	firstLine := int64(math.Floor(h.ScrollY/h.Metrics.LineHeight)) - visibleRangeMargin
	lastLine := int64(math.Ceil((h.ScrollY+h.ViewportHeight)/h.Metrics.LineHeight)) + visibleRangeMargin
	if firstLine < 0 {
		firstLine = 0
	}
	if lastLine < 0 {
		lastLine = 0
	}

	startByte, ok := tree.LineToByte(uint32(firstLine))
	if !ok {
		startByte = tree.ByteCount()
	}
	endByte, ok := tree.LineToByte(uint32(lastLine) + 1)
	if !ok {
		endByte = tree.ByteCount()
	}
	if endByte < startByte {
		endByte = startByte
	}
	return startByte, endByte
}

// VisibleLineContent returns the sub-slice of lineText intersecting the
// horizontally visible region (scroll_x ± a scrolloff-sized buffer), along
// with the starting character column and x-offset at which to render it.
// When tokenBoundaries (sorted, ascending character indices) are given,
// slice endpoints snap outward to the nearest boundary so a token is never
// split mid-highlight under horizontal scroll.
func (h *Hub) VisibleLineContent(lineText string, tokenBoundaries []int) (content string, startCol uint32, xOffset float64) {
	runes := []rune(lineText)
	charWidth := h.Metrics.SpaceWidth
	if h.FontSystem != nil {
		charWidth = h.Metrics.FontSize * h.FontSystem.CharWidthCoef()
	}
	if charWidth <= 0 {
		return lineText, 0, 0
	}

	buffer := float64(HorizontalScrolloffChars) * charWidth
	left := h.ScrollX - buffer
	right := h.ScrollX + h.ViewportWidth + buffer

	startIdx := int(math.Floor(left / charWidth))
	endIdx := int(math.Ceil(right / charWidth))
	if startIdx < 0 {
		startIdx = 0
	}
	if endIdx > len(runes) {
		endIdx = len(runes)
	}
	if startIdx > endIdx {
		startIdx = endIdx
	}

	if len(tokenBoundaries) > 0 {
		startIdx = snapBoundaryDown(tokenBoundaries, startIdx)
		endIdx = snapBoundaryUp(tokenBoundaries, endIdx, len(runes))
	}
	if startIdx > len(runes) {
		startIdx = len(runes)
	}
	if endIdx > len(runes) {
		endIdx = len(runes)
	}
	if startIdx > endIdx {
		endIdx = startIdx
	}

	content = string(runes[startIdx:endIdx])
	xOffset = float64(startIdx) * charWidth
	return content, uint32(startIdx), xOffset
}

func snapBoundaryDown(boundaries []int, idx int) int {
	best := 0
	for _, b := range boundaries {
		if b <= idx {
			best = b
		} else {
			break
		}
	}
	return best
}

func snapBoundaryUp(boundaries []int, idx, lineLen int) int {
	for _, b := range boundaries {
		if b >= idx {
			return b
		}
	}
	return lineLen
}
