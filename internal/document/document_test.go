package document

import (
	"testing"

	"github.com/jasonmcghee/texteditorcore/internal/span"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
	"github.com/stretchr/testify/require"
)

func TestEditAutoFlushesAtThreshold(t *testing.T) {
	d := New("hello")
	d.threshold = 5

	for i := 0; i < 5; i++ {
		d.Edit(NewInsert(d.Read().ByteCount(), span.NewText([]byte("!"))))
	}

	require.Equal(t, "hello!!!!!", d.Read().FlattenToString())
	require.EqualValues(t, 0, d.PendingCount())
}

func TestFlushIsNoOpWithNothingPending(t *testing.T) {
	d := New("hello")
	before := d.Read()
	after := d.Flush()
	require.Same(t, before, after)
}

func TestMultiCursorInsertOrderingMatchesQueueOrder(t *testing.T) {
	d := New("hello world")
	// Selections at byte 0 and byte 5, queued in left-to-right order. Flush
	// applies each edit to the result of the one before it, so the second
	// cursor's byte is compensated for the earlier insert: 5+1 = 6.
	d.Edit(NewInsert(0, span.NewText([]byte("X"))))
	d.Edit(NewInsert(6, span.NewText([]byte("X"))))
	d.Flush()

	require.Equal(t, "XhelloX world", d.Read().FlattenToString())
}

func TestVersionNeverDecreases(t *testing.T) {
	d := New("abc")
	v0 := d.Version()
	d.Edit(NewInsert(3, span.NewText([]byte("d"))))
	d.Flush()
	v1 := d.Version()
	require.Greater(t, v1, v0)

	d.Edit(NewDelete(Range{Start: 0, End: 1}))
	d.Flush()
	v2 := d.Version()
	require.Greater(t, v2, v1)
}

func TestReaderIsolationFromSubsequentFlush(t *testing.T) {
	d := New("abc")
	snap := d.Read()

	d.Edit(NewInsert(3, span.NewText([]byte("d"))))
	d.Flush()

	require.Equal(t, "abc", snap.FlattenToString())
	require.Equal(t, "abcd", d.Read().FlattenToString())
}

func TestOnFlushReceivesAppliedEditsInFIFOOrder(t *testing.T) {
	d := New("ac")
	var seen []Edit
	d.OnFlush = func(_ *sumtree.Tree, applied []Edit) {
		seen = applied
	}

	d.Edit(NewInsert(1, span.NewText([]byte("b"))))
	d.Edit(NewInsert(3, span.NewText([]byte("d"))))
	d.Flush()

	require.Equal(t, "abcd", d.Read().FlattenToString())
	require.Len(t, seen, 2)
	require.EqualValues(t, 1, seen[0].Pos)
	require.EqualValues(t, 3, seen[1].Pos)
}

func TestPendingCountTracksQueueSize(t *testing.T) {
	d := New("")
	require.EqualValues(t, 0, d.PendingCount())

	d.Edit(NewInsert(0, span.NewText([]byte("a"))))
	require.EqualValues(t, 1, d.PendingCount())

	d.Flush()
	require.EqualValues(t, 0, d.PendingCount())
}

func TestReplaceTreePublishesGivenSnapshot(t *testing.T) {
	d := New("abc")
	other := sumtree.FromString("zzz")
	d.ReplaceTree(other)
	require.Equal(t, "zzz", d.Read().FlattenToString())
}

func TestReplaceTreeNeverDecreasesVersion(t *testing.T) {
	d := New("abc")
	d.Edit(NewInsert(3, span.NewText([]byte("d"))))
	d.Flush()
	d.Edit(NewInsert(4, span.NewText([]byte("e"))))
	d.Flush()
	v2 := d.Version()

	// snap captures content from before the two edits above, at a lower
	// version than what's currently published.
	snap := sumtree.FromString("abc")
	require.Less(t, snap.Version(), v2)

	published := d.ReplaceTree(snap)
	require.Greater(t, d.Version(), v2)
	require.Equal(t, d.Version(), published.Version())
	require.Equal(t, "abc", d.Read().FlattenToString())
}
