// Package span defines the smallest content units stored in the document
// sum tree: immutable UTF-8 text runs and opaque embedded widgets.
package span

import "unicode/utf8"

// Kind tags which variant a Span holds.
type Kind uint8

const (
	// KindText marks a Span backed by an immutable UTF-8 byte run.
	KindText Kind = iota
	// KindWidget marks a Span that embeds an opaque widget and contributes
	// zero bytes to the document.
	KindWidget
)

// Widget is the capability set an embedded object must implement to live
// inside the document tree. Concrete variants (cursors, selection
// rectangles, pickers) live with their owning subsystem, not here.
type Widget interface {
	// Measure returns the widget's logical size.
	Measure() (width, height float64)
	// ZIndex orders overlapping widgets; higher paints on top.
	ZIndex() int32
	// Paint renders the widget using a caller-supplied context.
	Paint(ctx any)
}

// Span is a tagged union over Text and Widget content. The zero value is
// an empty text span.
type Span struct {
	kind     Kind
	text     []byte
	newlines uint32
	widget   Widget
}

// NewText builds a text span from bytes already known to be valid UTF-8.
// Callers at the tree boundary (FromString, edit application) are
// responsible for only ever splitting on code-point boundaries.
func NewText(b []byte) Span {
	return Span{kind: KindText, text: b, newlines: countNewlines(b)}
}

// NewWidget builds a widget span.
func NewWidget(w Widget) Span {
	return Span{kind: KindWidget, widget: w}
}

func countNewlines(b []byte) uint32 {
	var n uint32
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}

// IsText reports whether this span holds text.
func (s Span) IsText() bool { return s.kind == KindText }

// IsWidget reports whether this span holds a widget.
func (s Span) IsWidget() bool { return s.kind == KindWidget }

// Bytes returns the underlying UTF-8 run. Empty for widget spans.
func (s Span) Bytes() []byte { return s.text }

// Len returns the byte length this span contributes to the document.
// Widget spans always contribute zero bytes.
func (s Span) Len() int {
	if s.kind == KindWidget {
		return 0
	}
	return len(s.text)
}

// Newlines returns the cached newline count of a text span.
func (s Span) Newlines() uint32 { return s.newlines }

// Widget returns the embedded widget, or nil for text spans.
func (s Span) Widget() Widget { return s.widget }

// SplitAt splits a text span at byte offset i, which must land on a UTF-8
// code-point boundary. Splitting a widget span panics: widgets are atomic.
func (s Span) SplitAt(i int) (Span, Span) {
	if s.kind == KindWidget {
		panic("span: cannot split a widget span")
	}
	if i < 0 || i > len(s.text) {
		panic("span: split offset out of range")
	}
	if i != len(s.text) && !utf8.RuneStart(s.text[i]) {
		panic("span: split offset is not a UTF-8 boundary")
	}
	left := s.text[:i:i]
	right := s.text[i:len(s.text):len(s.text)]
	return NewText(left), NewText(right)
}

// Merge appends other's bytes to the end of a text span, producing a new
// span. Used when an insertion lands at the end of an existing text span,
// so sequential typing does not fragment the tree.
func (s Span) Merge(other Span) Span {
	if s.kind != KindText || other.kind != KindText {
		panic("span: cannot merge non-text spans")
	}
	combined := make([]byte, 0, len(s.text)+len(other.text))
	combined = append(combined, s.text...)
	combined = append(combined, other.text...)
	return NewText(combined)
}

// ValidUTF8 reports whether a text span's bytes are well-formed UTF-8;
// widget spans report true. NewText does not call it, so a span's bytes
// are not validated at construction. Never panics.
func (s Span) ValidUTF8() bool {
	if s.kind != KindText {
		return true
	}
	return utf8.Valid(s.text)
}
