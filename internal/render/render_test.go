package render

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starcharter/starcharter/internal/chart"
)

// Full pipeline: text catalogue in, finished SVG chart out.
func TestChartRendersSVG(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "stars.dat")
	lines := []string{
		"1 1 1 0.5 -1.5 1.0 0.5 10 100 - - Testar - -",
		"2 2 2 2.0 0.0 2.0 0.5 10 100",
		"3 3 3 3.5 1.5 3.0 0.5 10 100",
		"4 4 4 180.0 45.0 1.5 0.5 10 100", // far outside the field
	}
	if err := os.WriteFile(src, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := chart.DefaultConfig()
	cfg.RA0 = 0
	cfg.Dec0 = 0
	cfg.StarCatalogueText = src
	cfg.StarCatalogueBinary = filepath.Join(dir, "stars.bin")
	cfg.OutputFilename = filepath.Join(dir, "chart")
	cfg.Title = "Test field"

	if err := Chart(&cfg); err != nil {
		t.Fatalf("Chart: %v", err)
	}

	// The binary catalogue was built as a side effect.
	if _, err := os.Stat(cfg.StarCatalogueBinary); err != nil {
		t.Errorf("binary catalogue not built: %v", err)
	}

	b, err := os.ReadFile(cfg.OutputFilename + ".svg")
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	doc := string(b)

	for _, want := range []string{"<svg", "</svg>", "Test field", "Testar"} {
		if !strings.Contains(doc, want) {
			t.Errorf("chart missing %q", want)
		}
	}
	if got := strings.Count(doc, "<circle"); got != 3 {
		t.Errorf("chart draws %d star discs, want 3", got)
	}
}

// Rendering with stars disabled still produces a titled page.
func TestChartWithoutStars(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "stars.dat")
	if err := os.WriteFile(src, []byte("1 1 1 1.0 1.0 2.0 0.5 10 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := chart.DefaultConfig()
	cfg.PlotStars = false
	cfg.StarCatalogueText = src
	cfg.StarCatalogueBinary = filepath.Join(dir, "stars.bin")
	cfg.OutputFilename = filepath.Join(dir, "blank")
	cfg.Title = "Empty field"

	if err := Chart(&cfg); err != nil {
		t.Fatalf("Chart: %v", err)
	}

	b, err := os.ReadFile(cfg.OutputFilename + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "<circle") {
		t.Error("chart draws star discs with plotting disabled")
	}
	if !strings.Contains(string(b), "Empty field") {
		t.Error("chart missing its title")
	}
}

func TestChartRejectsInvalidConfig(t *testing.T) {
	cfg := chart.DefaultConfig()
	// No catalogue configured at all.
	if err := Chart(&cfg); err == nil {
		t.Fatal("Chart accepted a config with no catalogue")
	}

	cfg.StarCatalogueText = "stars.dat"
	cfg.AngularWidth = -5
	if err := Chart(&cfg); err == nil {
		t.Fatal("Chart accepted a negative angular width")
	}
}

func TestPageMapper(t *testing.T) {
	cfg := chart.DefaultConfig()
	cfg.Aspect = 1
	_, fov := cfg.Geometry()
	page := newPageMapper(&cfg, fov)

	// Plane origin maps to the page centre; the y axis flips.
	px, py := page.toPage(0, 0)
	if math.Abs(px-page.width/2) > 1e-9 || math.Abs(py-page.height/2) > 1e-9 {
		t.Errorf("plane origin maps to (%v, %v), want the page centre", px, py)
	}
	_, top := page.toPage(0, fov.YMax)
	if top != 0 {
		t.Errorf("top of the plot maps to y=%v, want 0", top)
	}
	_, bottom := page.toPage(0, fov.YMin)
	if bottom != page.height {
		t.Errorf("bottom of the plot maps to y=%v, want %v", bottom, page.height)
	}
}
