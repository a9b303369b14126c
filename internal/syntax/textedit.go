package syntax

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/jasonmcghee/texteditorcore/internal/document"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
)

// Position is (row, character-column) — never a visual column.
type Position struct {
	Row    uint32
	Column uint32
}

// TextEdit mirrors sitter.InputEdit: the byte and position deltas an
// incremental reparse needs to reuse unchanged subtrees.
type TextEdit struct {
	StartByte      uint64
	OldEndByte     uint64
	NewEndByte     uint64
	StartPosition  Position
	OldEndPosition Position
	NewEndPosition Position
}

// ToInputEdit converts to the tree-sitter edit type tree.Edit expects.
func (e TextEdit) ToInputEdit() sitter.InputEdit {
	return sitter.InputEdit{
		StartIndex:    uint32(e.StartByte),
		OldEndIndex:   uint32(e.OldEndByte),
		NewEndIndex:   uint32(e.NewEndByte),
		StartPoint:    sitter.Point{Row: uint(e.StartPosition.Row), Column: uint(e.StartPosition.Column)},
		OldEndPoint:   sitter.Point{Row: uint(e.OldEndPosition.Row), Column: uint(e.OldEndPosition.Column)},
		NewEndPoint:   sitter.Point{Row: uint(e.NewEndPosition.Row), Column: uint(e.NewEndPosition.Column)},
	}
}

// TextEditFromEdit builds a TextEdit from a document.Edit by resolving
// byte offsets to (row, character-column) via tree navigation.
// oldTree is the document tree before the edit; newTree is the tree after.
func TextEditFromEdit(oldTree, newTree *sumtree.Tree, e document.Edit) TextEdit {
	var startByte, oldEndByte, newEndByte uint64
	switch e.Kind {
	case document.KindInsert:
		startByte = e.Pos
		oldEndByte = e.Pos
		newEndByte = e.Pos + uint64(e.Content.Len())
	case document.KindDelete:
		startByte = e.Range.Start
		oldEndByte = e.Range.End
		newEndByte = e.Range.Start
	case document.KindReplace:
		startByte = e.Range.Start
		oldEndByte = e.Range.End
		newEndByte = e.Range.Start + uint64(e.Content.Len())
	}

	return TextEdit{
		StartByte:      startByte,
		OldEndByte:     oldEndByte,
		NewEndByte:     newEndByte,
		StartPosition:  positionAtByte(oldTree, startByte),
		OldEndPosition: positionAtByte(oldTree, oldEndByte),
		NewEndPosition: positionAtByte(newTree, newEndByte),
	}
}

func positionAtByte(tree *sumtree.Tree, b uint64) Position {
	line := tree.ByteToLine(b)
	lineStart, _ := tree.LineToByte(line)
	col := 0
	for range tree.GetTextSlice(int(lineStart), int(b)) {
		col++
	}
	return Position{Row: line, Column: uint32(col)}
}
