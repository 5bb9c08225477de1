package labels

import (
	"testing"

	"github.com/starcharter/starcharter/internal/canvas"
)

func TestPlacePrefersLowerPriority(t *testing.T) {
	e := NewEngine()
	spot := []Candidate{{X: 100, Y: 100, Anchor: canvas.AnchorStart}}
	e.Queue(Label{Text: "faint", FontSize: 9, Priority: 5.0, Candidates: spot})
	e.Queue(Label{Text: "bright", FontSize: 9, Priority: 1.0, Candidates: spot})

	placed := e.Place()
	if len(placed) != 1 {
		t.Fatalf("placed %d labels, want 1", len(placed))
	}
	if placed[0].Text != "bright" {
		t.Errorf("placed %q, want the lower-priority %q to lose", placed[0].Text, "faint")
	}
}

func TestPlaceFallsBackToNextCandidate(t *testing.T) {
	e := NewEngine()
	e.Queue(Label{Text: "first", FontSize: 9, Priority: 1,
		Candidates: []Candidate{{X: 100, Y: 100, Anchor: canvas.AnchorStart}}})
	e.Queue(Label{Text: "second", FontSize: 9, Priority: 2,
		Candidates: []Candidate{
			{X: 100, Y: 100, Anchor: canvas.AnchorStart},
			{X: 100, Y: 200, Anchor: canvas.AnchorMiddle},
		}})

	placed := e.Place()
	if len(placed) != 2 {
		t.Fatalf("placed %d labels, want 2", len(placed))
	}
	for _, p := range placed {
		if p.Text == "second" && (p.Y != 200 || p.Anchor != canvas.AnchorMiddle) {
			t.Errorf("second label placed at (%v, %v), want its fallback position", p.X, p.Y)
		}
	}
}

func TestExclusionsBlockLabels(t *testing.T) {
	e := NewEngine()
	e.AddExclusion(90, 90, 200, 110)
	e.Queue(Label{Text: "hidden", FontSize: 9, Priority: 1,
		Candidates: []Candidate{{X: 100, Y: 100, Anchor: canvas.AnchorStart}}})

	if placed := e.Place(); len(placed) != 0 {
		t.Fatalf("placed %d labels inside an exclusion region, want 0", len(placed))
	}
}

func TestDistantLabelsCoexist(t *testing.T) {
	e := NewEngine()
	e.Queue(Label{Text: "one", FontSize: 9, Priority: 1,
		Candidates: []Candidate{{X: 50, Y: 50, Anchor: canvas.AnchorStart}}})
	e.Queue(Label{Text: "two", FontSize: 9, Priority: 2,
		Candidates: []Candidate{{X: 300, Y: 300, Anchor: canvas.AnchorEnd}}})

	if placed := e.Place(); len(placed) != 2 {
		t.Fatalf("placed %d labels, want 2", len(placed))
	}
}

// Anchoring changes which side of the anchor point the text occupies.
func TestExtentRespectsAnchor(t *testing.T) {
	l := Label{Text: "abcde", FontSize: 10}
	w := 5 * 10 * glyphAspect

	x0, _, x1, _ := l.extent(Candidate{X: 100, Y: 0, Anchor: canvas.AnchorStart})
	if x0 != 100 || x1 != 100+w {
		t.Errorf("start-anchored extent [%v, %v], want [100, %v]", x0, x1, 100+w)
	}
	x0, _, x1, _ = l.extent(Candidate{X: 100, Y: 0, Anchor: canvas.AnchorEnd})
	if x1 != 100 || x0 != 100-w {
		t.Errorf("end-anchored extent [%v, %v], want [%v, 100]", x0, x1, 100-w)
	}
	x0, _, x1, _ = l.extent(Candidate{X: 100, Y: 0, Anchor: canvas.AnchorMiddle})
	if x0 != 100-w/2 || x1 != 100+w/2 {
		t.Errorf("middle-anchored extent [%v, %v] not centred", x0, x1)
	}
}
