package style

import (
	"testing"

	"github.com/jasonmcghee/texteditorcore/internal/coords"
	"github.com/jasonmcghee/texteditorcore/internal/document"
	"github.com/jasonmcghee/texteditorcore/internal/fontsys"
	"github.com/jasonmcghee/texteditorcore/internal/layout"
	"github.com/jasonmcghee/texteditorcore/internal/span"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
	"github.com/stretchr/testify/require"
)

func TestShiftRangeByInsertBeforeAtAndAfter(t *testing.T) {
	r := ByteRange{Start: 10, End: 20}

	require.Equal(t, ByteRange{15, 25}, shiftRangeByInsert(r, 10, 5)) // at start: shift whole
	require.Equal(t, ByteRange{10, 25}, shiftRangeByInsert(r, 15, 5)) // inside: extend end
	require.Equal(t, r, shiftRangeByInsert(r, 25, 5))                 // after: untouched
}

func TestShiftRangeByDeleteCases(t *testing.T) {
	r := ByteRange{Start: 10, End: 20}

	// deletion entirely after the range: untouched
	got, ok := shiftRangeByDelete(r, 25, 30)
	require.True(t, ok)
	require.Equal(t, r, got)

	// deletion entirely before the range: shift left by deletion length
	got, ok = shiftRangeByDelete(r, 0, 5)
	require.True(t, ok)
	require.Equal(t, ByteRange{5, 15}, got)

	// entirely inside: dropped
	_, ok = shiftRangeByDelete(r, 10, 20)
	require.False(t, ok)
	_, ok = shiftRangeByDelete(r, 5, 25)
	require.False(t, ok)

	// overlaps start: the surviving bytes [15,20) now start at the deletion point
	got, ok = shiftRangeByDelete(r, 5, 15)
	require.True(t, ok)
	require.Equal(t, ByteRange{5, 10}, got)

	// overlaps end: truncate to deletion point
	got, ok = shiftRangeByDelete(r, 15, 25)
	require.True(t, ok)
	require.Equal(t, ByteRange{10, 15}, got)
}

func TestUpdateSyntaxAlignsStyleBufferToGlyphs(t *testing.T) {
	tree := sumtree.FromString("func main() {}")
	hub := coords.NewHub()
	hub.AttachFontSystem(fontsys.NewMonospace())
	cache := layout.NewCache()
	cache.Rebuild(tree, hub, hub.FontSystem)

	buf := NewBuffer()
	tokens := []TokenRange{{Range: ByteRange{Start: 0, End: 4}, TokenID: 7}}
	buf.UpdateSyntax(cache, tokens, true)

	styleBuf := cache.StyleBuffer()
	glyphs := cache.Glyphs()
	for i, tokID := range styleBuf {
		if tokID == 0 {
			continue
		}
		require.GreaterOrEqual(t, glyphs[i].CharByteOffset, uint64(0))
		require.Less(t, glyphs[i].CharByteOffset, uint64(4))
	}
	require.EqualValues(t, 7, styleBuf[0])
}

func TestUpdateSyntaxShiftsStaleTokensByPendingEdits(t *testing.T) {
	// Token was produced against "func main" (9 bytes); document has since
	// had "x" inserted at byte 0, so a stale [0,4) token should shift to
	// [1,5) before painting.
	tree := sumtree.FromString("xfunc main() {}")
	hub := coords.NewHub()
	hub.AttachFontSystem(fontsys.NewMonospace())
	cache := layout.NewCache()
	cache.Rebuild(tree, hub, hub.FontSystem)

	buf := NewBuffer()
	buf.RecordEdit(document.NewInsert(0, span.NewText([]byte("x"))))

	tokens := []TokenRange{{Range: ByteRange{Start: 0, End: 4}, TokenID: 9}}
	buf.UpdateSyntax(cache, tokens, false)

	styleBuf := cache.StyleBuffer()
	// byte 0 ('x') should NOT be painted; bytes [1,5) ("func") should be.
	require.EqualValues(t, 0, styleBuf[0])
	require.EqualValues(t, 9, styleBuf[1])
}

func TestRemoveOverlapsDropsExactDuplicatesOnly(t *testing.T) {
	effects := []TextEffect{
		{Range: ByteRange{0, 5}, Priority: Syntax, Payload: uint16(1)},
		{Range: ByteRange{0, 5}, Priority: Syntax, Payload: uint16(1)},
		{Range: ByteRange{0, 5}, Priority: Selection, Payload: uint16(2)},
	}
	out := RemoveOverlaps(effects)
	require.Len(t, out, 2)
}

func TestCoalesceEffectsMergesAdjacentSamePayload(t *testing.T) {
	effects := []TextEffect{
		{Range: ByteRange{0, 5}, Priority: Syntax, Payload: uint16(1)},
		{Range: ByteRange{5, 10}, Priority: Syntax, Payload: uint16(1)},
		{Range: ByteRange{10, 15}, Priority: Syntax, Payload: uint16(2)},
	}
	out := CoalesceEffects(effects)
	require.Len(t, out, 2)
	require.Equal(t, ByteRange{0, 10}, out[0].Range)
	require.Equal(t, ByteRange{10, 15}, out[1].Range)
}

func TestCoalesceEffectsIsIdempotent(t *testing.T) {
	effects := []TextEffect{
		{Range: ByteRange{0, 5}, Priority: Syntax, Payload: uint16(1)},
		{Range: ByteRange{5, 10}, Priority: Syntax, Payload: uint16(1)},
	}
	once := CoalesceEffects(effects)
	twice := CoalesceEffects(once)
	require.Equal(t, once, twice)
}
