package fontsys

// Monospace is a deterministic System implementation: every glyph advances
// by a fixed fraction of font size, with no ligatures or kerning. It has no
// real atlas; AtlasData returns a single-pixel placeholder. Used by the
// coords/layout/selection/style test suites and by cmd/coreview when no
// real glyph atlas is wired up.
type Monospace struct {
	// AdvanceCoef is the average-advance/font-size ratio (CharWidthCoef).
	// 0.6 matches typical monospace coding fonts.
	AdvanceCoef float64
	// LineHeightCoef is line-height/font-size.
	LineHeightCoef float64
}

// NewMonospace returns a Monospace with the conventional coding-font
// coefficients.
func NewMonospace() *Monospace {
	return &Monospace{AdvanceCoef: 0.6, LineHeightCoef: 1.3}
}

// logicalAdvance is the per-glyph advance in logical (pre-scale) pixels.
func (m *Monospace) logicalAdvance(fontSize float64) float64 {
	return m.AdvanceCoef * fontSize
}

func (m *Monospace) LayoutTextScaled(text string, fontSize, scaleFactor float64) ShapedLine {
	adv := m.logicalAdvance(fontSize) * scaleFactor
	height := m.LineHeightCoef * fontSize * scaleFactor

	glyphs := make([]Glyph, 0, len(text))
	x := 0.0
	for _, r := range text {
		glyphs = append(glyphs, Glyph{
			Char: r, X: x, Y: 0,
			Width: adv, Height: height,
		})
		x += adv
	}
	return ShapedLine{Glyphs: glyphs, Width: x, Height: height}
}

func (m *Monospace) HitTestLine(text string, fontSize, scaleFactor float64, targetXLogical float64) uint32 {
	adv := m.logicalAdvance(fontSize)
	if adv <= 0 {
		return 0
	}
	col := 0
	x := 0.0
	for range text {
		mid := x + adv/2
		if targetXLogical < mid {
			return uint32(col)
		}
		x += adv
		col++
	}
	return uint32(col)
}

func (m *Monospace) CharWidthCoef() float64 {
	return m.AdvanceCoef
}

func (m *Monospace) AtlasData() []byte {
	return []byte{0xff}
}

func (m *Monospace) AtlasSize() (int, int) {
	return 1, 1
}
