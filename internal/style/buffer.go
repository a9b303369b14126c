package style

import (
	"sort"
	"sync"

	"github.com/jasonmcghee/texteditorcore/internal/document"
	"github.com/jasonmcghee/texteditorcore/internal/layout"
)

// Buffer reconciles authoritative (or stale) token ranges against a
// layout.Cache's glyph sequence, writing per-glyph token IDs and
// relative intra-token positions into the cache's style buffers.
type Buffer struct {
	mu           sync.Mutex
	pendingEdits []document.Edit
}

// NewBuffer returns an empty Buffer with no pending edits.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// RecordEdit appends e to the edits applied to the document since the
// last fresh parse. Called by whatever drives the syntax worker's input,
// once per document.Edit that was flushed.
func (b *Buffer) RecordEdit(e document.Edit) {
	b.mu.Lock()
	b.pendingEdits = append(b.pendingEdits, e)
	b.mu.Unlock()
}

// UpdateSyntax is the authoritative style update: clears the style
// buffers, optionally shifts tokens by the pending-edit delta when the
// parse is stale (freshParse == false), then binary-searches cache's
// glyphs on CharByteOffset to paint each token's glyph range.
//
// When freshParse is true, the pending-edit log is cleared: the parse
// that produced tokens already reflects every edit applied so far.
func (b *Buffer) UpdateSyntax(cache *layout.Cache, tokens []TokenRange, freshParse bool) {
	b.mu.Lock()
	edits := append([]document.Edit(nil), b.pendingEdits...)
	if freshParse {
		b.pendingEdits = nil
	}
	b.mu.Unlock()

	sort.SliceStable(edits, func(i, j int) bool {
		return editPos(edits[i]) < editPos(edits[j])
	})

	styleBuf := cache.StyleBuffer()
	relBuf := cache.RelPosBuffer()
	for i := range styleBuf {
		styleBuf[i] = 0
	}
	for i := range relBuf {
		relBuf[i] = 0
	}

	glyphs := cache.Glyphs()
	for _, tok := range tokens {
		effective := tok
		ok := true
		if !freshParse {
			effective, ok = shiftToken(tok, edits)
		}
		if !ok || effective.Range.Len() == 0 {
			continue
		}
		paintToken(glyphs, styleBuf, relBuf, effective)
	}
}

func paintToken(glyphs []layout.GlyphPosition, styleBuf []uint16, relBuf []float32, tok TokenRange) {
	startIdx := sort.Search(len(glyphs), func(i int) bool {
		return glyphs[i].CharByteOffset >= tok.Range.Start
	})
	endIdx := sort.Search(len(glyphs), func(i int) bool {
		return glyphs[i].CharByteOffset >= tok.Range.End
	})
	length := float64(tok.Range.Len())
	for i := startIdx; i < endIdx && i < len(styleBuf); i++ {
		styleBuf[i] = tok.TokenID
		relBuf[i] = float32(float64(glyphs[i].CharByteOffset-tok.Range.Start) / length)
	}
}
