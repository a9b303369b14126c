package main

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/jasonmcghee/texteditorcore/internal/syntax"
)

// tokenStyles maps each syntax.TokenKind to a lipgloss style. Colors are
// generated with go-colorful rather than hand-picked hex strings, spread
// evenly around the hue wheel at fixed saturation/value. The table covers
// token kinds up to syntax.TokenParameter (tokenKindCount); any higher
// kind id renders unstyled.
var tokenStyles = buildTokenStyles()

const tokenKindCount = int(syntax.TokenParameter) + 1

func buildTokenStyles() [tokenKindCount]lipgloss.Style {
	var styles [tokenKindCount]lipgloss.Style
	styles[syntax.TokenNone] = lipgloss.NewStyle()

	for k := 1; k < tokenKindCount; k++ {
		hue := 360.0 * float64(k) / float64(tokenKindCount)
		c := colorful.Hsv(hue, 0.55, 0.92)
		styles[k] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	}

	// A handful of kinds read better bold (keywords, types) — adjusted
	// after generation rather than baked into the hue spread.
	styles[syntax.TokenKeyword] = styles[syntax.TokenKeyword].Bold(true)
	styles[syntax.TokenType] = styles[syntax.TokenType].Bold(true)
	styles[syntax.TokenComment] = styles[syntax.TokenComment].Italic(true)

	return styles
}

var (
	cursorStyle     = lipgloss.NewStyle().Reverse(true)
	statusBarStyle  = lipgloss.NewStyle().Faint(true)
	selectionStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#3a3a3a"))
	lineNumberStyle = lipgloss.NewStyle().Faint(true).Width(5).Align(lipgloss.Right)
)

func styleForToken(id uint16) lipgloss.Style {
	if int(id) >= len(tokenStyles) {
		return lipgloss.NewStyle()
	}
	return tokenStyles[id]
}
