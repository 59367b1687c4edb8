package proj

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Derived, implementation-facing projection parameters.                                          */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// ProjectionParams is a Definition augmented with the derived ellipsoid
// constants and the resolved datum, plus the initialized projection
// implementation. Once Derive has run the record is immutable and may be
// shared freely between goroutines.
type ProjectionParams struct {
	Definition

	Es     float64 // first eccentricity squared
	E      float64 // first eccentricity
	Ep2    float64 // second eccentricity squared
	OneEs  float64 // 1 - es
	ROneEs float64 // 1 / (1 - es)
	Sphere bool

	FrMeter float64 // 1 / ToMeter

	EllipseName string
	DatumName   string

	datum *datum
	proj  projection
}

// A projection maps geographic coordinates in radians to the projection
// plane in metres (false origin included) and back. Implementations must be
// initialized exactly once before use; Forward and Inverse on an
// uninitialized projection fail with ErrUninitializedProjection.
//
// Both directions return NaN results wrapped in ErrOutOfDomain for points
// outside the projection's valid domain, including iteration blow-ups.
type projection interface {
	Init(p *ProjectionParams) error
	Forward(lam, phi float64) (x, y float64, err error)
	Inverse(x, y float64) (lam, phi float64, err error)
}

// IsGeographic reports whether the CRS is an unprojected longitude/latitude
// system.
func (p *ProjectionParams) IsGeographic() bool {
	switch p.ProjName {
	case "longlat", "latlong", "latlon", "lonlat", "identity":
		return true
	}
	return false
}

// adjustLon wraps a longitude difference into -π..π unless +over asked for
// unwrapped output.
func (p *ProjectionParams) adjustLon(lam float64) float64 {
	if p.Over {
		return lam
	}
	return adjlon(lam)
}

// checkLatRange rejects latitudes beyond the poles by more than rounding.
func checkLatRange(phi float64) error {
	if math.Abs(phi) > halfPi+epsln {
		return ErrOutOfDomain
	}
	return nil
}
