package catalogue

import (
	"math"
	"math/rand"
	"testing"
)

func TestSchemeCounts(t *testing.T) {
	if got := testScheme.TileCount(); got != 1+4*8+16*32 {
		t.Errorf("TileCount() = %d, want %d", got, 1+4*8+16*32)
	}
	starts := testScheme.LevelStartIndexes()
	want := []int32{0, 1, 33}
	for i := range want {
		if starts[i] != want[i] {
			t.Errorf("level %d starts at %d, want %d", i, starts[i], want[i])
		}
	}
}

func TestOwningTileLevelSelection(t *testing.T) {
	levelStart := testScheme.LevelStartIndexes()

	cases := []struct {
		mag       float64
		wantLevel int
	}{
		{-1.4, 0},
		{4.0, 0}, // threshold is inclusive
		{4.1, 1},
		{8.0, 1},
		{11.9, 2},
		{12.0, 2},
	}
	for _, tc := range cases {
		index := testScheme.OwningTile(1.0, 0.2, tc.mag, levelStart)
		if index < 0 {
			t.Fatalf("mag %v: star dropped", tc.mag)
		}
		if id := testScheme.TileAt(index); id.Level != tc.wantLevel {
			t.Errorf("mag %v owned by level %d, want %d", tc.mag, id.Level, tc.wantLevel)
		}
	}

	if index := testScheme.OwningTile(1.0, 0.2, 12.5, levelStart); index != -1 {
		t.Errorf("star fainter than every level owned by tile %d, want -1", index)
	}
}

// Positions exactly on the sky boundary clamp into the edge bins instead of
// indexing past the grid.
func TestOwningTileClampsEdges(t *testing.T) {
	levelStart := testScheme.LevelStartIndexes()

	edges := []struct {
		ra, dec float64
	}{
		{0, -math.Pi / 2},
		{0, math.Pi / 2},
		{2 * math.Pi, 0},
		{2 * math.Pi, math.Pi / 2},
	}
	for _, e := range edges {
		index := testScheme.OwningTile(e.ra, e.dec, 10, levelStart)
		if index < 0 || index >= testScheme.TileCount() {
			t.Fatalf("position (%v, %v) maps to tile %d", e.ra, e.dec, index)
		}
		id := testScheme.TileAt(index)
		lev := testScheme[id.Level]
		if id.RAIndex < 0 || id.RAIndex >= lev.RABins || id.DecIndex < 0 || id.DecIndex >= lev.DecBins {
			t.Errorf("position (%v, %v) maps to out-of-grid tile %v", e.ra, e.dec, id)
		}
	}
}

// TileAt inverts the flat directory index, and the owning tile's bounds
// always contain the star.
func TestOwningTileBoundsAgree(t *testing.T) {
	levelStart := testScheme.LevelStartIndexes()
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 1000; i++ {
		ra := rng.Float64() * 2 * math.Pi
		dec := math.Asin(2*rng.Float64() - 1)
		mag := rng.Float64() * 12

		index := testScheme.OwningTile(ra, dec, mag, levelStart)
		if index < 0 {
			t.Fatalf("star (%v, %v) mag %v dropped", ra, dec, mag)
		}
		id := testScheme.TileAt(index)
		if !testScheme.Bounds(id).Contains(ra, dec) {
			t.Errorf("tile %v does not contain its own star (%v, %v)", id, ra, dec)
		}
		lev := testScheme[id.Level]
		back := int(levelStart[id.Level]) + id.DecIndex*lev.RABins + id.RAIndex
		if back != index {
			t.Errorf("TileAt(%d) = %v maps back to %d", index, id, back)
		}
	}
}

func TestTileBoundsCoverSky(t *testing.T) {
	for level := range testScheme {
		lev := testScheme[level]
		first := testScheme.Bounds(TileID{Level: level, RAIndex: 0, DecIndex: 0})
		last := testScheme.Bounds(TileID{Level: level, RAIndex: lev.RABins - 1, DecIndex: lev.DecBins - 1})
		if first.RAMin != 0 || first.DecMin != -math.Pi/2 {
			t.Errorf("level %d first tile starts at (%v, %v)", level, first.RAMin, first.DecMin)
		}
		if math.Abs(last.RAMax-2*math.Pi) > 1e-12 || math.Abs(last.DecMax-math.Pi/2) > 1e-12 {
			t.Errorf("level %d last tile ends at (%v, %v)", level, last.RAMax, last.DecMax)
		}
	}
}
