package catalogue

import (
	"math"
)

// Projector maps sky coordinates onto the chart plane and back. Forward
// projection returns NaN coordinates for sky points with no image under the
// active projection (e.g. the far side of the sphere).
type Projector interface {
	Project(ra, dec float64) (x, y float64)
	Inverse(x, y float64) (ra, dec float64)
}

// FieldOfView describes the sky region one chart render needs populated
// with stars: the pointing centre, the plane-space plot rectangle, and the
// projection that connects the two.
type FieldOfView struct {
	RA0, Dec0  float64 // pointing centre, radians
	PlaneWidth float64 // linear width of the viewport on the plane
	Aspect     float64 // height/width ratio

	XMin, XMax float64 // plot clipping bounds, plane units
	YMin, YMax float64

	Proj Projector
}

// InPlotArea reports whether a projected position is finite and inside the
// plot clipping bounds.
func (v *FieldOfView) InPlotArea(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsNaN(y) &&
		!math.IsInf(x, 0) && !math.IsInf(y, 0) &&
		x >= v.XMin && x <= v.XMax && y >= v.YMin && y <= v.YMax
}

// TileVisible decides whether a tile can possibly contribute visible stars
// to the viewport. The test samples a constant number of points rather than
// intersecting the tile boundary exactly: the pointing centre, the four
// viewport corners inverse-projected onto the sky, and the four tile
// corners forward-projected onto the plane. False positives merely cost
// extra tile reads; tiles much larger than the viewport can in rare
// geometries produce false negatives when no sampled point lands inside
// both regions.
func (v *FieldOfView) TileVisible(scheme Scheme, id TileID) bool {
	box := scheme.Bounds(id)

	// Pointing centre inside the tile?
	if box.Contains(v.RA0, v.Dec0) {
		return true
	}

	// Any viewport corner inside the tile?
	for i := 0; i <= 1; i++ {
		for j := 0; j <= 1; j++ {
			x := (float64(i) - 0.5) * v.PlaneWidth
			y := (float64(j) - 0.5) * v.Aspect * v.PlaneWidth
			ra, dec := v.Proj.Inverse(x, y)
			if !math.IsNaN(ra) && !math.IsNaN(dec) && box.Contains(ra, dec) {
				return true
			}
		}
	}

	// Any tile corner inside the plot area?
	for i := 0; i <= 1; i++ {
		for j := 0; j <= 1; j++ {
			ra := box.RAMin + float64(i)*(box.RAMax-box.RAMin)
			dec := box.DecMin + float64(j)*(box.DecMax-box.DecMin)
			x, y := v.Proj.Project(ra, dec)
			if v.InPlotArea(x, y) {
				return true
			}
		}
	}

	return false
}

// VisibleTiles enumerates the tiles of one level that pass TileVisible, in
// Dec-major order.
func (v *FieldOfView) VisibleTiles(scheme Scheme, level int) []TileID {
	var ids []TileID
	lev := scheme[level]
	for decIndex := 0; decIndex < lev.DecBins; decIndex++ {
		for raIndex := 0; raIndex < lev.RABins; raIndex++ {
			id := TileID{Level: level, RAIndex: raIndex, DecIndex: decIndex}
			if v.TileVisible(scheme, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
