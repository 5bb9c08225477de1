package projection

import (
	"math"
)

// Galactic pole and node constants, J2000 (Binney & Merrifield pp30-31).
const (
	lCP   = 123.932 * math.Pi / 180
	raGP  = 192.85948 * math.Pi / 180
	decGP = 27.12825 * math.Pi / 180
)

// rotateXY rotates a three-component vector about the z axis.
func rotateXY(v [3]float64, theta float64) [3]float64 {
	s, c := math.Sincos(theta)
	return [3]float64{v[0]*c - v[1]*s, v[0]*s + v[1]*c, v[2]}
}

// rotateXZ rotates a three-component vector about the y axis.
func rotateXZ(v [3]float64, theta float64) [3]float64 {
	s, c := math.Sincos(theta)
	return [3]float64{v[0]*c - v[2]*s, v[1], v[0]*s + v[2]*c}
}

// makeZenithal converts a sky position into the zenith angle and azimuth
// seen from a zenith at (ra0, dec0).
func makeZenithal(ra, dec, ra0, dec0 float64) (zenithAngle, azimuth float64) {
	a := [3]float64{
		math.Cos(ra) * math.Cos(dec),
		math.Sin(ra) * math.Cos(dec),
		math.Sin(dec),
	}
	a = rotateXY(a, -ra0)
	a = rotateXZ(a, math.Pi/2-dec0)
	if a[2] > 0.999999999 {
		a[2] = 1.0
	}
	if a[2] < -0.999999999 {
		a[2] = -1.0
	}
	altitude := math.Asin(a[2])
	if math.Abs(math.Cos(altitude)) < 1e-7 {
		azimuth = 0 // ignore azimuth at the pole
	} else {
		azimuth = math.Atan2(a[1], a[0])
	}
	zenithAngle = math.Pi/2 - altitude
	return zenithAngle, azimuth
}

// AngDist returns the angular distance between two sky positions, radians.
func AngDist(ra0, dec0, ra1, dec1 float64) float64 {
	p0 := [3]float64{
		math.Sin(ra0) * math.Cos(dec0),
		math.Cos(ra0) * math.Cos(dec0),
		math.Sin(dec0),
	}
	p1 := [3]float64{
		math.Sin(ra1) * math.Cos(dec1),
		math.Cos(ra1) * math.Cos(dec1),
		math.Sin(dec1),
	}
	d0 := p0[0] - p1[0]
	d1 := p0[1] - p1[1]
	d2 := p0[2] - p1[2]
	sep2 := d0*d0 + d1*d1 + d2*d2
	if sep2 <= 0 {
		return 0
	}
	return 2 * math.Asin(math.Sqrt(sep2)/2)
}

// EquatorialToGalactic converts equatorial (RA, Dec) into galactic (l, b).
func EquatorialToGalactic(ra, dec float64) (l, b float64) {
	b = math.Asin(math.Sin(dec)*math.Sin(decGP) +
		math.Cos(decGP)*math.Cos(dec)*math.Cos(ra-raGP))
	lSin := math.Cos(dec) * math.Sin(ra-raGP) / math.Cos(b)
	lCos := (math.Cos(decGP)*math.Sin(dec) - math.Sin(decGP)*math.Cos(dec)*math.Cos(ra-raGP)) / math.Cos(b)
	l = lCP - math.Atan2(lSin, lCos)

	for b < -math.Pi {
		b += 2 * math.Pi
	}
	for b > math.Pi {
		b -= 2 * math.Pi
	}
	for l < 0 {
		l += 2 * math.Pi
	}
	for l > 2*math.Pi {
		l -= 2 * math.Pi
	}
	return l, b
}

// GalacticToEquatorial converts galactic (l, b) into equatorial (RA, Dec).
func GalacticToEquatorial(l, b float64) (ra, dec float64) {
	dec = math.Asin(math.Sin(b)*math.Sin(decGP) +
		math.Cos(decGP)*math.Cos(b)*math.Cos(lCP-l))
	rSin := math.Cos(b) * math.Sin(lCP-l) / math.Cos(dec)
	rCos := (math.Cos(decGP)*math.Sin(b) - math.Sin(decGP)*math.Cos(b)*math.Cos(lCP-l)) / math.Cos(dec)
	ra = raGP + math.Atan2(rSin, rCos)
	return ra, dec
}
