// Package style owns per-glyph token IDs and intra-token relative
// positions, kept separate from internal/layout's glyph positions so a
// syntax update never forces a layout rebuild. It also reconciles token
// ranges produced from a stale parse against edits the document has
// already applied but the parser hasn't seen yet.
package style

// Priority orders overlapping TextEffects; higher renders on top.
type Priority int32

const (
	Base      Priority = 0
	Syntax    Priority = 10
	Search    Priority = 20
	ErrorEff  Priority = 30
	Selection Priority = 40
)

// ByteRange is a half-open byte interval [Start, End).
type ByteRange struct {
	Start uint64
	End   uint64
}

// Len returns the number of bytes the range spans; zero if End <= Start.
func (r ByteRange) Len() uint64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// TokenRange is one syntax token: a byte range tagged with a palette
// index.
type TokenRange struct {
	Range   ByteRange
	TokenID uint16
}

// TextEffect is a styling directive over a byte range: a priority and an
// opaque payload (e.g. a token ID, a search-highlight marker, an error
// squiggle color). Payload must be a comparable concrete type — overlap
// removal and coalescing compare it with ==.
type TextEffect struct {
	Range    ByteRange
	Priority Priority
	Payload  any
}
