package style

import "github.com/jasonmcghee/texteditorcore/internal/document"

// shiftRangeByInsert applies an insertion of length l at byte p to r:
// ranges starting at or after p shift wholesale; ranges only containing
// p have their end extended; ranges entirely before p are untouched.
func shiftRangeByInsert(r ByteRange, p, l uint64) ByteRange {
	switch {
	case r.Start >= p:
		return ByteRange{Start: r.Start + l, End: r.End + l}
	case r.End > p:
		return ByteRange{Start: r.Start, End: r.End + l}
	default:
		return r
	}
}

// shiftRangeByDelete applies a deletion of [a, b) to r. Ranges entirely
// after the deletion shift left by (b-a); ranges entirely before are
// untouched; ranges entirely inside are dropped; partially-overlapping
// ranges are truncated to exclude the deleted bytes.
func shiftRangeByDelete(r ByteRange, a, b uint64) (ByteRange, bool) {
	d := b - a
	switch {
	case r.Start >= b:
		return ByteRange{Start: r.Start - d, End: r.End - d}, true
	case r.End <= a:
		return r, true
	case r.Start >= a && r.End <= b:
		return ByteRange{}, false
	default:
		newStart := r.Start
		if newStart > a {
			newStart = a
		}
		newEnd := r.End
		if newEnd > b {
			newEnd -= d
		} else {
			newEnd = a
		}
		return ByteRange{Start: newStart, End: newEnd}, newEnd > newStart
	}
}

// editPos is the position an edit is sorted by when reconciling pending
// edits in original-position order.
func editPos(e document.Edit) uint64 {
	if e.Kind == document.KindInsert {
		return e.Pos
	}
	return e.Range.Start
}

// shiftToken applies the cumulative effect of edits, in the order given,
// to tok. Returns false if the shifted range becomes empty (the token
// should be dropped).
func shiftToken(tok TokenRange, edits []document.Edit) (TokenRange, bool) {
	r := tok.Range
	for _, e := range edits {
		switch e.Kind {
		case document.KindInsert:
			r = shiftRangeByInsert(r, e.Pos, uint64(e.Content.Len()))
		case document.KindDelete:
			shifted, ok := shiftRangeByDelete(r, e.Range.Start, e.Range.End)
			if !ok {
				return TokenRange{}, false
			}
			r = shifted
		case document.KindReplace:
			shifted, ok := shiftRangeByDelete(r, e.Range.Start, e.Range.End)
			if !ok {
				return TokenRange{}, false
			}
			r = shiftRangeByInsert(shifted, e.Range.Start, uint64(e.Content.Len()))
		}
	}
	if r.Len() == 0 {
		return TokenRange{}, false
	}
	return TokenRange{Range: r, TokenID: tok.TokenID}, true
}
