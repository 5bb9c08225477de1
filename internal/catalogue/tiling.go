package catalogue

import (
	"fmt"
	"math"
)

// TilingLevel pairs a faintest-magnitude threshold with the grid resolution
// used for stars in that magnitude band. The brightest stars live in the
// coarsest grid; fainter, more numerous stars live in progressively finer
// grids.
type TilingLevel struct {
	FaintestMag float64
	RABins      int
	DecBins     int
}

// Scheme is an ordered sequence of tiling levels, traversed in increasing
// FaintestMag. The first level whose threshold is >= a star's magnitude owns
// that star.
type Scheme []TilingLevel

// DefaultScheme is the tiling pattern used for the merged star catalogue.
var DefaultScheme = Scheme{
	{6.5, 1, 1},
	{8.5, 5, 10},
	{10.2, 10, 20},
	{12, 20, 40},
	{13, 40, 80},
	{14, 80, 160},
}

// TileCount returns the total number of tiles across all levels.
func (s Scheme) TileCount() int {
	n := 0
	for _, lev := range s {
		n += lev.RABins * lev.DecBins
	}
	return n
}

// LevelStartIndexes returns, for each level, the index into the flat tile
// directory at which that level's tiles begin.
func (s Scheme) LevelStartIndexes() []int32 {
	starts := make([]int32, len(s))
	n := int32(0)
	for i, lev := range s {
		starts[i] = n
		n += int32(lev.RABins * lev.DecBins)
	}
	return starts
}

// TileID identifies one cell of the spatial index.
type TileID struct {
	Level    int
	RAIndex  int
	DecIndex int
}

func (id TileID) String() string {
	return fmt.Sprintf("L%d/%d/%d", id.Level, id.RAIndex, id.DecIndex)
}

// TileBounds is the sky-space bounding box of a tile. RA in [0, 2pi),
// Dec in [-pi/2, pi/2].
type TileBounds struct {
	RAMin, RAMax   float64
	DecMin, DecMax float64
}

// Contains reports whether the sky position (ra, dec) lies inside the box.
// Both edges are inclusive, matching the conservative visibility test.
func (b TileBounds) Contains(ra, dec float64) bool {
	return ra >= b.RAMin && ra <= b.RAMax && dec >= b.DecMin && dec <= b.DecMax
}

// Bounds returns the sky bounding box of the given tile.
func (s Scheme) Bounds(id TileID) TileBounds {
	lev := s[id.Level]
	raMin := float64(id.RAIndex) * (2 * math.Pi) / float64(lev.RABins)
	decMin := (float64(id.DecIndex)/float64(lev.DecBins) - 0.5) * math.Pi
	return TileBounds{
		RAMin:  raMin,
		RAMax:  raMin + (2*math.Pi)/float64(lev.RABins),
		DecMin: decMin,
		DecMax: decMin + math.Pi/float64(lev.DecBins),
	}
}

// OwningTile returns the index into the flat tile directory of the tile that
// owns a star at (ra, dec) with magnitude mag, or -1 if the star is fainter
// than every level of the scheme.
func (s Scheme) OwningTile(ra, dec, mag float64, levelStart []int32) int {
	for level, lev := range s {
		if mag <= lev.FaintestMag {
			raBin := int(math.Floor((ra / (2 * math.Pi)) * float64(lev.RABins)))
			decBin := int(math.Floor(((dec / math.Pi) + 0.5) * float64(lev.DecBins)))
			if raBin >= lev.RABins {
				raBin = lev.RABins - 1
			}
			if raBin < 0 {
				raBin = 0
			}
			if decBin >= lev.DecBins {
				decBin = lev.DecBins - 1
			}
			if decBin < 0 {
				decBin = 0
			}
			return int(levelStart[level]) + decBin*lev.RABins + raBin
		}
	}
	return -1
}

// TileAt maps a flat directory index back to a TileID.
func (s Scheme) TileAt(index int) TileID {
	for level, lev := range s {
		n := lev.RABins * lev.DecBins
		if index < n {
			return TileID{Level: level, RAIndex: index % lev.RABins, DecIndex: index / lev.RABins}
		}
		index -= n
	}
	return TileID{Level: -1}
}
