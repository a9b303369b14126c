package sumtree

import (
	"strings"
	"testing"

	"github.com/jasonmcghee/texteditorcore/internal/span"
	"github.com/stretchr/testify/require"
)

func TestByteLineRoundTripOnMultilineInput(t *testing.T) {
	tr := FromString("Line 1\nLine 2\nLine 3\n")

	require.EqualValues(t, 21, tr.ByteCount())
	require.EqualValues(t, 3, tr.LineCount())

	b, ok := tr.LineToByte(0)
	require.True(t, ok)
	require.EqualValues(t, 0, b)

	b, ok = tr.LineToByte(1)
	require.True(t, ok)
	require.EqualValues(t, 7, b)

	b, ok = tr.LineToByte(2)
	require.True(t, ok)
	require.EqualValues(t, 14, b)

	b, ok = tr.LineToByte(3)
	require.True(t, ok)
	require.EqualValues(t, 21, b)

	_, ok = tr.LineToByte(4)
	require.False(t, ok)

	require.EqualValues(t, 1, tr.ByteToLine(10))
}

func TestInsertAtEndMergesIntoSingleSpan(t *testing.T) {
	tr := FromString("hello")
	for i := 0; i < 5; i++ {
		tr = tr.Insert(tr.ByteCount(), span.NewText([]byte("!")))
	}
	require.Equal(t, "hello!!!!!", tr.FlattenToString())

	leaves := collectLeaves(tr.root)
	require.Len(t, leaves, 1)
	require.Len(t, leaves[0].Spans(), 1)
	require.Equal(t, "hello!!!!!", string(leaves[0].Spans()[0].Bytes()))
}

func TestDeleteRemovesRangeAndMergesUnderfullSiblings(t *testing.T) {
	tr := FromString("abcdefghij")
	tr = tr.Delete(3, 6)
	require.Equal(t, "abcghij", tr.FlattenToString())
	require.NoError(t, CheckInvariants(tr))
}

func TestReplaceIsDeleteThenInsert(t *testing.T) {
	tr := FromString("hello world")
	tr = tr.Replace(0, 5, span.NewText([]byte("goodbye")))
	require.Equal(t, "goodbye world", tr.FlattenToString())
}

func TestFlattenNeverPanicsOnUnicode(t *testing.T) {
	tr := FromString("héllo 世界\n日本語")
	require.NotPanics(t, func() { tr.FlattenToString() })
	require.Equal(t, "héllo 世界\n日本語", tr.FlattenToString())
}

func TestStructuralSumsInvariantHoldsAfterManyEdits(t *testing.T) {
	tr := FromString("")
	for i := 0; i < 64; i++ {
		tr = tr.Insert(tr.ByteCount(), span.NewText([]byte("line\n")))
		require.NoError(t, CheckInvariants(tr))
	}
	tr = tr.Delete(0, 20)
	require.NoError(t, CheckInvariants(tr))
}

func TestGetTextSliceClampsOutOfRange(t *testing.T) {
	tr := FromString("abcdef")
	require.Equal(t, "", tr.GetTextSlice(-5, -1))
	require.Equal(t, "abcdef", tr.GetTextSlice(0, 1000))
	require.Equal(t, "cde", tr.GetTextSlice(2, 5))
}

func TestFindPrevNewlineCrossesLeafBoundary(t *testing.T) {
	// chunkSize=1024 bytes * MaxSpans=16 spans puts the leaf boundary at
	// 16384 bytes; pad well past it so the newline at byte 5 sits in an
	// earlier leaf than the cursor's seek position.
	content := "line1\n" + strings.Repeat("x", 20000)
	tr := FromString(content)
	require.Greater(t, len(collectLeaves(tr.root)), 1, "input must span multiple leaves")

	c := NewCursor(tr)
	c.SeekByte(uint64(len(content) - 1))
	pos, ok := c.FindByte('\n', false)
	require.True(t, ok)
	require.EqualValues(t, 5, pos)
}

func TestFindPrevNewlineViaTreeAPICrossesLeafBoundary(t *testing.T) {
	content := "line1\n" + strings.Repeat("x", 20000)
	tr := FromString(content)

	pos, ok := tr.FindPrevNewline(uint64(len(content)))
	require.True(t, ok)
	require.EqualValues(t, 5, pos)
}

func TestEmptyTreeIsTotal(t *testing.T) {
	tr := Empty()
	require.EqualValues(t, 0, tr.ByteCount())
	require.EqualValues(t, 0, tr.LineCount())
	require.Equal(t, "", tr.FlattenToString())
	_, ok := tr.LineToByte(1)
	require.False(t, ok)
}

func collectLeaves(n *Node) []*Node {
	if n.IsLeaf() {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.Children() {
		out = append(out, collectLeaves(c)...)
	}
	return out
}
