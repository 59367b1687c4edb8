package proj

import (
	"math"

	"github.com/pkg/errors"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Datum handling: geodetic<->geocentric conversion and Helmert shifts.                           */
/*                                                                                                */
/* A datum ties an ellipsoid to a physical realization. Transforms between datums route through   */
/* WGS84 geocentric coordinates: geodetic -> geocentric -> Helmert to WGS84 -> inverse Helmert    */
/* to the destination -> geodetic. Grid-shift datums instead perturb geodetic coordinates         */
/* directly, before or after the parametric leg.                                                  */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

type datumType int

const (
	pjdUnknown datumType = iota
	pjd3Param
	pjd7Param
	pjdGridShift
	pjdWGS84   // WGS84 or equivalent
	pjdNoDatum // no datum: never shift
)

const (
	wgs84SemiMajor = 6378137.0
	wgs84ESquared  = 0.006694379990141316
)

// A datum holds the resolved transform parameters of a CRS. For 3- and
// 7-parameter datums params is the towgs84 vector already normalised:
// translations in metres, rotations in radians, scale as a unit multiplier.
type datum struct {
	datumType datumType
	params    []float64
	a, b      float64
	es, ep2   float64
	nadGrids  []gridRef
}

// equal reports whether two datums describe the same realization: same
// ellipsoid within tolerance and same shift parameters. The es tolerance is
// wide enough that GRS80 and WGS84 compare identical.
func (d *datum) equal(other *datum) bool {
	if d.datumType != other.datumType {
		return false
	}
	if d.a != other.a || math.Abs(d.es-other.es) > 0.000000000050 {
		return false
	}
	switch d.datumType {
	case pjd3Param:
		return d.params[0] == other.params[0] &&
			d.params[1] == other.params[1] &&
			d.params[2] == other.params[2]
	case pjd7Param:
		for i := 0; i < 7; i++ {
			if d.params[i] != other.params[i] {
				return false
			}
		}
		return true
	case pjdGridShift:
		return gridRefsEqual(d.nadGrids, other.nadGrids)
	}
	return true
}

// needsShift reports whether the datum carries a parametric (3- or
// 7-parameter Helmert) shift to WGS84. Grid-shift datums report false.
func (d *datum) needsShift() bool {
	return d.datumType == pjd3Param || d.datumType == pjd7Param
}

/**
 * Converts geodetic coordinates (λ, φ in radians, height in metres) to
 * geocentric (ECEF) cartesian coordinates:
 *   x = (ν+h)⋅cosφ⋅cosλ, y = (ν+h)⋅cosφ⋅sinλ, z = (ν⋅(1-e²)+h)⋅sinφ
 * where ν = a/√(1−e²⋅sin²φ) is the radius of curvature in the prime
 * vertical.
 */
func (d *datum) geodeticToGeocentric(λ, φ, h float64) (x, y, z float64, err error) {
	// Don't blow up if the latitude is just a little out of the value range
	// as it may be a rounding issue.
	if φ < -halfPi && φ > -1.001*halfPi {
		φ = -halfPi
	} else if φ > halfPi && φ < 1.001*halfPi {
		φ = halfPi
	} else if φ < -halfPi || φ > halfPi {
		return 0, 0, 0, errors.Wrapf(ErrOutOfDomain, "latitude %g out of range", φ)
	}

	if λ > math.Pi {
		λ -= twoPi
	}
	sinφ := math.Sin(φ)
	cosφ := math.Cos(φ)
	ν := d.a / math.Sqrt(1-d.es*sinφ*sinφ)

	x = (ν + h) * cosφ * math.Cos(λ)
	y = (ν + h) * cosφ * math.Sin(λ)
	z = (ν*(1-d.es) + h) * sinφ
	return x, y, z, nil
}

/**
 * Converts geocentric cartesian coordinates back to geodetic (λ, φ, h).
 *
 * Iterative refinement of sinφ/cosφ to 1e-12 radian (Bowring-style
 * parametric start), capped at 30 rounds; 30 is always enough.
 */
func (d *datum) geocentricToGeodetic(x, y, z float64) (λ, φ, h float64) {
	const (
		genau   = 1e-12
		genau2  = genau * genau
		maxiter = 30
	)

	p := math.Sqrt(x*x + y*y)
	rr := math.Sqrt(x*x + y*y + z*z)

	if p/d.a < genau {
		// On the minor axis: longitude is arbitrary.
		λ = 0
		if rr/d.a < genau {
			// Centre of the earth.
			return 0, halfPi, -d.b
		}
	} else {
		λ = math.Atan2(y, x)
	}

	ct := z / rr
	st := p / rr
	rx := 1.0 / math.Sqrt(1.0-d.es*(2.0-d.es)*st*st)
	cosφ0 := st * (1.0 - d.es) * rx
	sinφ0 := ct * rx

	for iter := 0; iter < maxiter; iter++ {
		ν := d.a / math.Sqrt(1.0-d.es*sinφ0*sinφ0)
		h = p*cosφ0 + z*sinφ0 - ν*(1.0-d.es*sinφ0*sinφ0)

		rk := d.es * ν / (ν + h)
		rx = 1.0 / math.Sqrt(1.0-rk*(2.0-rk)*st*st)
		cosφ := st * (1.0 - rk) * rx
		sinφ := ct * rx
		sdφ := sinφ*cosφ0 - cosφ*sinφ0
		cosφ0 = cosφ
		sinφ0 = sinφ
		if sdφ*sdφ <= genau2 {
			break
		}
	}

	φ = math.Atan(sinφ0 / math.Abs(cosφ0))
	return λ, φ, h
}

/**
 * Applies the Helmert transform taking this datum's geocentric frame to
 * WGS84. Position-vector convention: the rotation applied to the position
 * vector yields the target-frame coordinates.
 */
func (d *datum) geocentricToWGS84(x, y, z float64) (float64, float64, float64) {
	switch d.datumType {
	case pjd3Param:
		return x + d.params[0], y + d.params[1], z + d.params[2]
	case pjd7Param:
		dx, dy, dz := d.params[0], d.params[1], d.params[2]
		rx, ry, rz := d.params[3], d.params[4], d.params[5]
		m := d.params[6]
		xOut := m*(x-rz*y+ry*z) + dx
		yOut := m*(rz*x+y-rx*z) + dy
		zOut := m*(-ry*x+rx*y+z) + dz
		return xOut, yOut, zOut
	}
	return x, y, z
}

/**
 * Applies the inverse Helmert transform, WGS84 geocentric to this datum.
 */
func (d *datum) geocentricFromWGS84(x, y, z float64) (float64, float64, float64) {
	switch d.datumType {
	case pjd3Param:
		return x - d.params[0], y - d.params[1], z - d.params[2]
	case pjd7Param:
		dx, dy, dz := d.params[0], d.params[1], d.params[2]
		rx, ry, rz := d.params[3], d.params[4], d.params[5]
		m := d.params[6]
		xt := (x - dx) / m
		yt := (y - dy) / m
		zt := (z - dz) / m
		return xt + rz*yt - ry*zt,
			-rz*xt + yt + rx*zt,
			ry*xt - rx*yt + zt
	}
	return x, y, z
}

// transformDatum shifts a geodetic point (radians, metres) from the source
// datum to the destination datum, routing through WGS84.
func transformDatum(source, dest *datum, λ, φ, h float64) (float64, float64, float64, error) {
	if source.equal(dest) {
		return λ, φ, h, nil
	}
	if source.datumType == pjdNoDatum || dest.datumType == pjdNoDatum {
		return λ, φ, h, nil
	}
	if source.datumType == pjdWGS84 && dest.datumType == pjdWGS84 {
		return λ, φ, h, nil
	}

	// Work on copies of the ellipsoid constants: a grid-shifted point is
	// nominally on WGS84 afterwards.
	srcA, srcEs := source.a, source.es
	dstA, dstEs := dest.a, dest.es

	if source.datumType == pjdGridShift {
		var err error
		λ, φ, err = applyGridShift(source.nadGrids, false, λ, φ)
		if err != nil {
			return math.NaN(), math.NaN(), math.NaN(), err
		}
		srcA = wgs84SemiMajor
		srcEs = wgs84ESquared
	}
	if dest.datumType == pjdGridShift {
		dstA = wgs84SemiMajor
		dstEs = wgs84ESquared
	}

	if srcEs != dstEs || srcA != dstA || source.needsShift() || dest.needsShift() {
		src := &datum{datumType: source.datumType, params: source.params,
			a: srcA, b: source.b, es: srcEs, ep2: source.ep2}
		dst := &datum{datumType: dest.datumType, params: dest.params,
			a: dstA, b: dest.b, es: dstEs, ep2: dest.ep2}

		x, y, z, err := src.geodeticToGeocentric(λ, φ, h)
		if err != nil {
			return math.NaN(), math.NaN(), math.NaN(), err
		}
		if source.needsShift() {
			x, y, z = src.geocentricToWGS84(x, y, z)
		}
		if dest.needsShift() {
			x, y, z = dst.geocentricFromWGS84(x, y, z)
		}
		λ, φ, h = dst.geocentricToGeodetic(x, y, z)
	}

	if dest.datumType == pjdGridShift {
		var err error
		λ, φ, err = applyGridShift(dest.nadGrids, true, λ, φ)
		if err != nil {
			return math.NaN(), math.NaN(), math.NaN(), err
		}
	}
	return λ, φ, h, nil
}
