// Package canvas defines the vector-drawing surface the chart renderer
// draws onto. The renderer only ever talks to the Canvas interface; the
// concrete backend is an external concern.
package canvas

// Colour is an RGB colour with components in [0, 1].
type Colour struct {
	R, G, B float64
}

var (
	Black = Colour{0, 0, 0}
	White = Colour{1, 1, 1}
)

// TextAnchor positions a text string relative to its anchor point.
type TextAnchor int

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

// Canvas is a vector-drawing surface in page coordinates (points, origin at
// the top left).
type Canvas interface {
	// FilledCircle draws a disc of the given radius.
	FilledCircle(x, y, r float64, col Colour)
	// Line draws a straight stroke of the given width.
	Line(x0, y0, x1, y1, width float64, col Colour)
	// Text draws a string at the given font size.
	Text(x, y, size float64, anchor TextAnchor, s string, col Colour)
	// Close finishes the page and flushes it to the backing store.
	Close() error
}
