// Package coords is the coordinate transformation hub: document space
// (line, column, byte offset) to layout space (logical pixels, pre-scroll)
// to view space (layout minus scroll) to physical space (device pixels).
// All conversions between spaces go through a Hub; callers never compute
// one space from another by hand.
package coords

// DocPos identifies a position in the document. Column is a character
// column, never a byte or visual column. ByteOffset is authoritative when
// non-zero; a caller building a DocPos from (Line, Column) alone can leave
// it zero and let the Hub resolve it against a tree.
type DocPos struct {
	Line       uint32
	Column     uint32
	ByteOffset uint64
}

// LayoutPos is a logical-pixel position, DPI-independent, origin at
// document (0, 0), before scroll is applied.
type LayoutPos struct {
	X, Y float64
}

// ViewPos is LayoutPos minus the current scroll offset.
type ViewPos struct {
	X, Y float64
}

// PhysicalPos is a device-pixel position: ViewPos times ScaleFactor. This
// is what the GPU renderer consumes directly.
type PhysicalPos struct {
	X, Y float64
}

// LayoutRect is an axis-aligned rectangle in layout space, used for
// selection highlight and widget bounds.
type LayoutRect struct {
	X, Y, Width, Height float64
}

// TextMetrics carries the font/layout constants the Hub needs for
// metric-based (unshaped) estimates.
type TextMetrics struct {
	FontSize   float64
	LineHeight float64
	SpaceWidth float64
	TabStops   uint32
	Baseline   float64
}

// DefaultMetrics returns metric-based defaults usable before a font system
// is attached.
func DefaultMetrics() TextMetrics {
	return TextMetrics{
		FontSize:   14,
		LineHeight: 14 * 1.3,
		SpaceWidth: 14 * 0.6,
		TabStops:   4,
		Baseline:   14 * 0.8,
	}
}
