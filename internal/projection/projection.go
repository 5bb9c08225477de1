// Package projection maps celestial coordinates onto the chart plane and
// back, for the six projection families supported by the chart renderer.
package projection

import (
	"math"
)

// Family selects the projection used to flatten the celestial sphere.
type Family int

const (
	// Flat plots the raw difference in (RA, Dec) from the chart centre.
	Flat Family = iota
	// Peters is an equal-area cylindrical projection.
	Peters
	// Gnomonic maps great circles to straight lines; radius tan(z).
	Gnomonic
	// Stereographic is conformal; radius 2 tan(z/2).
	Stereographic
	// Spherical is the orthographic view of a globe; radius sin(z).
	Spherical
	// AltAz maps zenith angle linearly to radius, for whole-hemisphere
	// charts.
	AltAz
)

// Coordinates selects the coordinate system of the chart centre and grid.
type Coordinates int

const (
	Equatorial Coordinates = iota
	Galactic
)

// planeMargin leaves breathing room around spherical and alt-az charts.
const planeMargin = 1.12

// Projection is a pure forward/inverse mapping between sky coordinates and
// plane coordinates for one chart. It is safe for concurrent use.
type Projection struct {
	family        Family
	coords        Coordinates
	ra0, dec0     float64 // chart centre, radians (native coordinates)
	positionAngle float64 // radians
	angularWidth  float64 // radians
}

// New returns the projection for a chart centred at (ra0, dec0) radians,
// rotated by positionAngle radians, spanning angularWidth radians across.
func New(family Family, coords Coordinates, ra0, dec0, positionAngle, angularWidth float64) *Projection {
	return &Projection{
		family:        family,
		coords:        coords,
		ra0:           ra0,
		dec0:          dec0,
		positionAngle: positionAngle,
		angularWidth:  angularWidth,
	}
}

// PlaneWidth returns the linear width of the viewport on the projection
// plane corresponding to the chart's angular width.
func (p *Projection) PlaneWidth() float64 {
	switch p.family {
	case Gnomonic:
		return 2 * math.Tan(p.angularWidth/2)
	case Stereographic:
		return 4 * math.Tan(p.angularWidth/4)
	case Spherical:
		return 2 * math.Sin(p.angularWidth/2) * planeMargin
	case AltAz:
		return 2 * planeMargin
	default: // Flat, Peters
		return p.angularWidth
	}
}

// Project maps a sky position (equatorial RA/Dec, radians) to plane
// coordinates. Points with no image under the projection come back as NaN.
func (p *Projection) Project(ra, dec float64) (x, y float64) {
	lng, lat := ra, dec
	if p.coords == Galactic {
		lng, lat = EquatorialToGalactic(ra, dec)
	}

	switch p.family {
	case Flat:
		x = wrapPi(p.ra0 - lng)
		y = p.dec0 - lat
		return x, y
	case Peters:
		x = wrapPi(p.ra0 - lng)
		y = 2 * (math.Sin(p.dec0) - math.Sin(lat))
		return x, y
	}

	zenithAngle, azimuth := makeZenithal(lng, lat, p.ra0, p.dec0)
	azimuth -= p.positionAngle

	if p.family == AltAz {
		if zenithAngle > math.Pi {
			return math.NaN(), math.NaN()
		}
	} else if zenithAngle > math.Pi/2 {
		// Opposite side of sphere.
		return math.NaN(), math.NaN()
	}

	var radius float64
	switch p.family {
	case Gnomonic:
		radius = math.Tan(zenithAngle)
	case Stereographic:
		radius = 2 * math.Tan(zenithAngle/2)
	case Spherical:
		radius = math.Sin(zenithAngle)
	case AltAz:
		radius = 2 * zenithAngle / p.angularWidth
	}

	return radius * -math.Sin(azimuth), radius * math.Cos(azimuth)
}

// Inverse maps plane coordinates back to an equatorial sky position. Plane
// points outside the projection's image come back as NaN.
func (p *Projection) Inverse(x, y float64) (ra, dec float64) {
	switch p.family {
	case Flat, Peters:
		xp := x*math.Cos(p.positionAngle) + y*math.Sin(p.positionAngle)
		yp := -x*math.Sin(p.positionAngle) + y*math.Cos(p.positionAngle)
		ra = p.ra0 - xp
		if p.family == Flat {
			dec = p.dec0 - yp
		} else {
			dec = math.Asin((2*math.Sin(p.dec0) - yp) / 2)
		}
	default:
		var zenithAngle float64
		switch p.family {
		case Gnomonic:
			zenithAngle = math.Atan(math.Hypot(x, y))
		case Stereographic:
			zenithAngle = 2 * math.Atan(math.Hypot(x, y)/2)
		case Spherical:
			zenithAngle = math.Asin(math.Hypot(x, y))
		case AltAz:
			zenithAngle = math.Hypot(x, y) * p.angularWidth / 2
		}

		azimuth := math.Atan2(-x, y) + p.positionAngle
		altitude := math.Pi/2 - zenithAngle

		capAngle := math.Pi / 2
		if p.angularWidth/2 > capAngle {
			capAngle = p.angularWidth / 2
		}
		if p.family == AltAz {
			if altitude < math.Pi/2-capAngle {
				return math.NaN(), math.NaN()
			}
		} else if altitude < 0 {
			return math.NaN(), math.NaN()
		}

		a := [3]float64{
			math.Cos(altitude) * math.Cos(azimuth),
			math.Cos(altitude) * math.Sin(azimuth),
			math.Sin(altitude),
		}
		a = rotateXZ(a, -(math.Pi/2)+p.dec0)
		a = rotateXY(a, p.ra0)
		ra = math.Atan2(a[1], a[0])
		dec = math.Asin(a[2])
	}

	if p.coords == Galactic {
		ra, dec = GalacticToEquatorial(ra, dec)
	}
	for ra < 0 {
		ra += 2 * math.Pi
	}
	for ra > 2*math.Pi {
		ra -= 2 * math.Pi
	}
	return ra, dec
}

// wrapPi wraps an angle into [-pi, pi]. The RA axis wraps around; the Dec
// axis must not.
func wrapPi(a float64) float64 {
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
