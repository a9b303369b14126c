package sumtree

// LineToByte returns the byte offset at the start of targetLine, or false
// if targetLine exceeds the document's line count.
func (t *Tree) LineToByte(targetLine uint32) (uint64, bool) {
	if targetLine == 0 {
		return 0, true
	}
	if targetLine > t.LineCount() {
		return 0, false
	}
	c := NewCursor(t)
	c.SeekLine(targetLine)
	return c.BytePos(), true
}

// ByteToLine returns the line containing byte offset b, clamping
// out-of-range offsets to the nearest valid one.
func (t *Tree) ByteToLine(b uint64) uint32 {
	c := NewCursor(t)
	c.SeekByte(b)
	return c.LinePos()
}

// FindNextNewline returns the byte offset of the first '\n' at or after
// pos, or false if there is none.
func (t *Tree) FindNextNewline(pos uint64) (uint64, bool) {
	c := NewCursor(t)
	c.SeekByte(pos)
	return c.FindByte('\n', true)
}

// FindPrevNewline returns the byte offset of the last '\n' strictly before
// pos, or false if there is none.
func (t *Tree) FindPrevNewline(pos uint64) (uint64, bool) {
	c := NewCursor(t)
	c.SeekByte(pos)
	return c.FindByte('\n', false)
}

// FindLineStartAt returns the byte offset of the start of the line
// containing pos.
func (t *Tree) FindLineStartAt(pos uint64) uint64 {
	line := t.ByteToLine(pos)
	start, _ := t.LineToByte(line)
	return start
}

// FindLineEndAt returns the byte offset just before the line's terminating
// newline (or end of document if the line is the last, unterminated one).
func (t *Tree) FindLineEndAt(pos uint64) uint64 {
	if end, ok := t.FindNextNewline(pos); ok {
		return end
	}
	return t.ByteCount()
}

// GetLineAt returns the text of the line containing pos, excluding its
// terminating newline.
func (t *Tree) GetLineAt(pos uint64) string {
	start := t.FindLineStartAt(pos)
	end := t.FindLineEndAt(start)
	return t.GetTextSlice(int(start), int(end))
}

// DocPosToByte resolves a (line, character-column) pair to a byte offset
// by walking the line's text. Out-of-range columns clamp to the line's
// length.
func (t *Tree) DocPosToByte(line, column uint32) uint64 {
	start, ok := t.LineToByte(line)
	if !ok {
		return t.ByteCount()
	}
	end := t.FindLineEndAt(start)
	lineText := t.GetTextSlice(int(start), int(end))
	col := 0
	for i := range lineText {
		if uint32(col) == column {
			return start + uint64(i)
		}
		col++
	}
	return start + uint64(len(lineText))
}
