package coords

import (
	"testing"

	"github.com/jasonmcghee/texteditorcore/internal/fontsys"
	"github.com/jasonmcghee/texteditorcore/internal/span"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
	"github.com/stretchr/testify/require"
)

func TestRoundTripCoordinateLawWithFontSystem(t *testing.T) {
	tree := sumtree.FromString("hello world\nsecond line here\nthird")
	h := NewHub()
	h.AttachFontSystem(fontsys.NewMonospace())

	cases := []DocPos{
		{Line: 0, Column: 0},
		{Line: 0, Column: 5},
		{Line: 1, Column: 10},
		{Line: 2, Column: 5},
	}
	for _, p := range cases {
		layout := h.DocToLayoutWithTree(p, tree)
		got := h.LayoutToDocWithTree(layout, tree)
		require.Equal(t, p.Line, got.Line)
		require.Equal(t, p.Column, got.Column)
	}
}

func TestRoundTripCoordinateLawWithTabs(t *testing.T) {
	tree := sumtree.FromString("\tX\nabc\tdef")
	h := NewHub()
	h.AttachFontSystem(fontsys.NewMonospace())
	h.Metrics.TabStops = 4

	cases := []DocPos{
		{Line: 0, Column: 0},
		{Line: 0, Column: 1},
		{Line: 0, Column: 2},
		{Line: 1, Column: 3},
		{Line: 1, Column: 4},
	}
	for _, p := range cases {
		layout := h.DocToLayoutWithTree(p, tree)
		got := h.LayoutToDocWithTree(layout, tree)
		require.Equal(t, p.Line, got.Line)
		require.Equal(t, p.Column, got.Column, "round trip for %+v", p)
	}
}

func TestRoundTripCoordinateLawMetricOnly(t *testing.T) {
	tree := sumtree.FromString("abc\ndef\nghi")
	h := NewHub()

	p := DocPos{Line: 1, Column: 2}
	layout := h.DocToLayoutWithTree(p, tree)
	got := h.LayoutToDocWithTree(layout, tree)
	require.Equal(t, p.Line, got.Line)
	require.Equal(t, p.Column, got.Column)
}

func TestEnsureVisibleAppliesScrolloffMargins(t *testing.T) {
	h := NewHub()
	h.ViewportWidth = 400
	h.ViewportHeight = 200
	h.Metrics.LineHeight = 10
	h.Metrics.SpaceWidth = 8

	h.EnsureVisible(LayoutPos{X: 0, Y: 500})
	require.Greater(t, h.ScrollY, 0.0)

	topMargin := float64(VerticalScrolloffLines) * h.Metrics.LineHeight
	require.InDelta(t, 500-h.ViewportHeight+topMargin, h.ScrollY, 0.01)
}

func TestEnsureVisibleNeverGoesNegative(t *testing.T) {
	h := NewHub()
	h.ViewportWidth = 400
	h.ViewportHeight = 200
	h.Metrics.LineHeight = 10
	h.Metrics.SpaceWidth = 8

	h.EnsureVisible(LayoutPos{X: 0, Y: 0})
	require.Zero(t, h.ScrollY)
	require.Zero(t, h.ScrollX)
}

func TestGetDocumentBoundsCachedUntilVersionOrLongestLineChanges(t *testing.T) {
	h := NewHub()
	tree := sumtree.FromString("short\nlonger line here")

	w1, h1 := h.GetDocumentBounds(tree)
	w2, h2 := h.GetDocumentBounds(tree)
	require.Equal(t, w1, w2)
	require.Equal(t, h1, h2)

	tree2 := tree.Insert(tree.ByteCount(), span.NewText([]byte("!")))
	w3, _ := h.GetDocumentBounds(tree2)
	require.Greater(t, w3, 0.0)
}

func TestClampScrollToBoundsKeepsScrollWithinDocument(t *testing.T) {
	h := NewHub()
	h.ViewportWidth = 100
	h.ViewportHeight = 100
	tree := sumtree.FromString("a\nb\nc")

	h.ScrollX = 1e9
	h.ScrollY = 1e9
	h.ClampScrollToBounds(tree)

	maxW, maxH := h.GetDocumentBounds(tree)
	require.LessOrEqual(t, h.ScrollX, maxW)
	require.LessOrEqual(t, h.ScrollY, maxH)
}

func TestVisibleByteRangeWithTreeIncludesMargin(t *testing.T) {
	h := NewHub()
	h.Metrics.LineHeight = 10
	h.ViewportHeight = 30
	tree := sumtree.FromString("l0\nl1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9")

	start, end := h.VisibleByteRangeWithTree(tree)
	require.EqualValues(t, 0, start)
	require.Greater(t, end, uint64(0))
	require.LessOrEqual(t, end, tree.ByteCount())
}

func TestVisibleLineContentSnapsToTokenBoundaries(t *testing.T) {
	h := NewHub()
	h.Metrics.SpaceWidth = 10
	h.ViewportWidth = 50
	h.ScrollX = 100

	line := "0123456789abcdefghijklmnopqrstuvwxyz"
	boundaries := []int{0, 5, 10, 15, 20, 25, 30, 35}

	content, startCol, _ := h.VisibleLineContent(line, boundaries)
	require.Contains(t, boundaries, int(startCol))
	require.NotEmpty(t, content)
}

func TestNewChildInheritsMetricsButNotScroll(t *testing.T) {
	h := NewHub()
	h.ScrollX, h.ScrollY = 50, 50
	h.Metrics.FontSize = 18

	child := h.NewChild()
	require.Zero(t, child.ScrollX)
	require.Zero(t, child.ScrollY)
	require.Equal(t, h.Metrics.FontSize, child.Metrics.FontSize)
}

