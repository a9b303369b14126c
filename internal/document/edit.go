// Package document provides the writer-buffered, lock-free-read façade
// over the sum tree: Document queues Edits, auto-flushes them into fresh
// Tree snapshots, and publishes a monotonically versioned current
// snapshot that readers can grab without ever blocking.
package document

import "github.com/jasonmcghee/texteditorcore/internal/span"

// Kind tags which Edit variant a value holds.
type Kind uint8

const (
	// KindInsert inserts Content at Pos.
	KindInsert Kind = iota
	// KindDelete removes the bytes in Range.
	KindDelete
	// KindReplace removes Range and inserts Content at Range.Start.
	KindReplace
)

// Range is a half-open byte interval [Start, End).
type Range struct {
	Start uint64
	End   uint64
}

// Len returns the number of bytes the range spans.
func (r Range) Len() uint64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Edit is the sum type of document mutations: Insert{pos, content},
// Delete{range}, and Replace{range, content}, where content is either
// text or a widget span.
type Edit struct {
	Kind    Kind
	Pos     uint64
	Range   Range
	Content span.Span
}

// NewInsert builds an Insert edit.
func NewInsert(pos uint64, content span.Span) Edit {
	return Edit{Kind: KindInsert, Pos: pos, Content: content}
}

// NewDelete builds a Delete edit.
func NewDelete(r Range) Edit {
	return Edit{Kind: KindDelete, Range: r}
}

// NewReplace builds a Replace edit.
func NewReplace(r Range, content span.Span) Edit {
	return Edit{Kind: KindReplace, Range: r, Content: content}
}
