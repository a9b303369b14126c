package selection

import (
	"unicode/utf8"

	"github.com/jasonmcghee/texteditorcore/internal/document"
	"github.com/jasonmcghee/texteditorcore/internal/span"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
)

// Insert replaces sel's range (collapsing to a single point when sel has
// no range) with text, returning the document.Edit to queue, the
// resulting collapsed selection, and the tree produced by applying the
// edit locally so the caller can keep rendering without waiting for the
// document to flush.
func Insert(tree *sumtree.Tree, sel Selection, text string) (document.Edit, Selection, *sumtree.Tree) {
	start, end := sel.Range()
	startByte := byteAt(tree, start)
	endByte := byteAt(tree, end)
	content := span.NewText([]byte(text))

	var edit document.Edit
	var result *sumtree.Tree
	if startByte == endByte {
		edit = document.NewInsert(startByte, content)
		result = tree.Insert(startByte, content)
	} else {
		edit = document.NewReplace(document.Range{Start: startByte, End: endByte}, content)
		result = tree.Replace(startByte, endByte, content)
	}

	newByte := startByte + uint64(len(text))
	return edit, New(posAtByte(result, newByte)), result
}

// Backspace deletes sel's range, or the one character before the cursor
// when sel is collapsed. Deleting a newline merges the cursor onto the
// end of the previous line: posAtByte resolves the surviving byte offset
// against the post-edit tree, which naturally lands it at that line's
// original length without any special-cased bookkeeping. ok is false when
// there was nothing to delete (cursor at document start).
func Backspace(tree *sumtree.Tree, sel Selection) (edit document.Edit, newSel Selection, result *sumtree.Tree, ok bool) {
	if !sel.IsCollapsed() {
		return deleteRange(tree, sel)
	}
	b := byteAt(tree, sel.Cursor)
	if b == 0 {
		return document.Edit{}, sel, tree, false
	}
	lo := uint64(0)
	if b > utf8.UTFMax {
		lo = b - utf8.UTFMax
	}
	window := tree.GetTextSlice(int(lo), int(b))
	_, size := utf8.DecodeLastRuneInString(window)
	if size == 0 {
		size = 1
	}
	return deleteRangeBytes(tree, b-uint64(size), b)
}

// Delete deletes sel's range, or the one character after the cursor when
// sel is collapsed (the forward-delete key). ok is false when there was
// nothing to delete (cursor at document end).
func Delete(tree *sumtree.Tree, sel Selection) (edit document.Edit, newSel Selection, result *sumtree.Tree, ok bool) {
	if !sel.IsCollapsed() {
		return deleteRange(tree, sel)
	}
	b := byteAt(tree, sel.Cursor)
	total := tree.ByteCount()
	if b >= total {
		return document.Edit{}, sel, tree, false
	}
	hi := total
	if b+utf8.UTFMax < total {
		hi = b + utf8.UTFMax
	}
	window := tree.GetTextSlice(int(b), int(hi))
	_, size := utf8.DecodeRuneInString(window)
	if size == 0 {
		size = 1
	}
	return deleteRangeBytes(tree, b, b+uint64(size))
}

func deleteRange(tree *sumtree.Tree, sel Selection) (document.Edit, Selection, *sumtree.Tree, bool) {
	start, end := sel.Range()
	return deleteRangeBytes(tree, byteAt(tree, start), byteAt(tree, end))
}

func deleteRangeBytes(tree *sumtree.Tree, start, end uint64) (document.Edit, Selection, *sumtree.Tree, bool) {
	if end <= start {
		return document.Edit{}, New(posAtByte(tree, start)), tree, false
	}
	edit := document.NewDelete(document.Range{Start: start, End: end})
	result := tree.Delete(start, end)
	return edit, New(posAtByte(result, start)), result, true
}
