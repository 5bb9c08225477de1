package canvas

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSVGDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	cv, err := NewSVG(path, 400, 300)
	if err != nil {
		t.Fatalf("NewSVG: %v", err)
	}
	cv.FilledCircle(10, 20, 1.5, Black)
	cv.Line(0, 0, 400, 300, 0.5, Colour{0.5, 0.5, 0.5})
	cv.Text(200, 150, 12, AnchorMiddle, "M31 <&> companions", Black)
	if err := cv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(b)

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="400.00" height="300.00"`,
		`<circle cx="10.000" cy="20.000" r="1.500" fill="rgb(0,0,0)"/>`,
		`stroke="rgb(128,128,128)"`,
		`text-anchor="middle"`,
		"M31 &lt;&amp;&gt; companions",
		"</svg>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestSVGEmptyDocumentIsValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.svg")
	cv, err := NewSVG(path, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if err := cv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(string(b)), "</svg>") {
		t.Error("document not closed")
	}
}
