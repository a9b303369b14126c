package sumtree

import (
	"unicode/utf8"

	"github.com/jasonmcghee/texteditorcore/internal/span"
)

// chunkSize bounds a single text span at construction time; it has no
// bearing on edit-time span sizes, which grow or shrink freely.
const chunkSize = 1024

// FromString builds a fresh Tree from s: the string is chunked into
// UTF-8-boundary-aligned pieces of at most chunkSize bytes, packed into
// leaves of at most MaxSpans spans, and internal nodes are built bottom-up.
func FromString(s string) *Tree {
	spans := chunkText([]byte(s))
	root := buildFromSpans(spans)
	return &Tree{root: root, version: 0}
}

// Empty builds a Tree with no content.
func Empty() *Tree {
	return &Tree{root: newLeaf(nil), version: 0}
}

func chunkText(b []byte) []span.Span {
	if len(b) == 0 {
		return []span.Span{span.NewText(nil)}
	}
	var spans []span.Span
	start := 0
	for start < len(b) {
		end := start + chunkSize
		if end >= len(b) {
			end = len(b)
		} else {
			// walk back to a code-point boundary
			for end > start && !utf8.RuneStart(b[end]) {
				end--
			}
			if end == start {
				end = start + chunkSize // pathological: force progress
			}
		}
		spans = append(spans, span.NewText(b[start:end:end]))
		start = end
	}
	return spans
}

// buildFromSpans packs spans into leaves of at most MaxSpans, then builds
// internal levels bottom-up until a single root remains.
func buildFromSpans(spans []span.Span) *Node {
	if len(spans) == 0 {
		return newLeaf(nil)
	}
	var leaves []*Node
	for i := 0; i < len(spans); i += MaxSpans {
		end := i + MaxSpans
		if end > len(spans) {
			end = len(spans)
		}
		leaves = append(leaves, newLeaf(append([]span.Span(nil), spans[i:end]...)))
	}
	return buildLevel(leaves)
}

func buildLevel(nodes []*Node) *Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	var next []*Node
	for i := 0; i < len(nodes); i += MaxSpans {
		end := i + MaxSpans
		if end > len(nodes) {
			end = len(nodes)
		}
		next = append(next, newInternal(append([]*Node(nil), nodes[i:end]...)))
	}
	return buildLevel(next)
}
