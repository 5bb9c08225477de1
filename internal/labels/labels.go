// Package labels places text labels on the chart while avoiding collisions
// with other labels and with exclusion regions such as star discs.
package labels

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/starcharter/starcharter/internal/canvas"
)

// approximate width of one glyph as a fraction of the font size
const glyphAspect = 0.6

// Candidate is one possible anchor position for a label. Candidates are
// tried in order; the first that collides with nothing wins.
type Candidate struct {
	X, Y   float64
	Anchor canvas.TextAnchor
}

// Label is a queued piece of text competing for space on the chart.
type Label struct {
	Text       string
	FontSize   float64
	Priority   float64 // lower places first; star labels use magnitude
	Colour     canvas.Colour
	Candidates []Candidate
}

// Placed is a label that won a position.
type Placed struct {
	Label
	Candidate
}

// Engine collects exclusion regions and queued labels, then resolves
// collisions in priority order. Overlap queries run against an R-tree, so
// placement cost stays near O(n log n) even on dense charts.
type Engine struct {
	rt     *rtreego.Rtree
	queued []Label
}

func NewEngine() *Engine {
	return &Engine{rt: rtreego.NewTree(2, 25, 50)}
}

type region struct {
	rect rtreego.Rect
}

func (r *region) Bounds() rtreego.Rect {
	return r.rect
}

func makeRect(x0, y0, x1, y1 float64) rtreego.Rect {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	const epsilon = 1e-6
	rect, _ := rtreego.NewRect(rtreego.Point{x0, y0},
		[]float64{x1 - x0 + epsilon, y1 - y0 + epsilon})
	return rect
}

// AddExclusion forbids labels from overlapping the given page-space box.
func (e *Engine) AddExclusion(x0, y0, x1, y1 float64) {
	e.rt.Insert(&region{rect: makeRect(x0, y0, x1, y1)})
}

// Queue adds a label to be placed when Place is called.
func (e *Engine) Queue(l Label) {
	e.queued = append(e.queued, l)
}

// extent returns the page-space box the label would occupy at a candidate.
func (l *Label) extent(c Candidate) (x0, y0, x1, y1 float64) {
	w := float64(len([]rune(l.Text))) * l.FontSize * glyphAspect
	h := l.FontSize
	switch c.Anchor {
	case canvas.AnchorStart:
		x0 = c.X
	case canvas.AnchorMiddle:
		x0 = c.X - w/2
	case canvas.AnchorEnd:
		x0 = c.X - w
	}
	return x0, c.Y - h/2, x0 + w, c.Y + h/2
}

// Place resolves all queued labels in priority order. Each label takes its
// first candidate position that overlaps neither an exclusion region nor a
// previously placed label; labels with no free candidate are dropped. The
// result is deterministic for a given queue.
func (e *Engine) Place() []Placed {
	order := make([]int, len(e.queued))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return e.queued[order[a]].Priority < e.queued[order[b]].Priority
	})

	var placed []Placed
	for _, i := range order {
		l := e.queued[i]
		for _, c := range l.Candidates {
			x0, y0, x1, y1 := l.extent(c)
			rect := makeRect(x0, y0, x1, y1)
			if len(e.rt.SearchIntersect(rect)) > 0 {
				continue
			}
			e.rt.Insert(&region{rect: rect})
			placed = append(placed, Placed{Label: l, Candidate: c})
			break
		}
	}
	e.queued = e.queued[:0]
	return placed
}
