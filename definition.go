package proj

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* The raw parsed parameter record.                                                               */
/*                                                                                                */
/* A Definition holds exactly what a CRS description said, before derivation fills in defaults.   */
/* Numeric fields use NaN for "not specified" so that an explicit zero is distinguishable from    */
/* an absent parameter. Angular values are stored in radians.                                     */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// A Point is a coordinate in the unit implied by its CRS: degrees for
// geographic systems at the API boundary, linear units for projected ones.
// M is an uninterpreted measure carried through unchanged.
type Point struct {
	X, Y, Z, M float64
}

// finite reports whether the mandatory fields are usable by the pipeline.
func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// A Definition is a CRS description lowered to proj-style parameters.
type Definition struct {
	ProjName  string
	Title     string
	SRSCode   string
	EllpsName string

	A, B, Rf float64

	DatumCode   string
	DatumParams []float64 // 3 or 7 towgs84 values, still in m/arcsec/ppm
	NADGrids    string

	Lat0, Lat1, Lat2, LatTS      float64 // radians
	Long0, Long1, Long2, LongC   float64 // radians
	Alpha, Gamma, FromGreenwich  float64 // radians
	K0, X0, Y0, ToMeter, VToMeter float64

	Units string
	Axis  string // three chars from {e,w,n,s,u,d}

	Zone     int
	UTMSouth bool

	NoDefs bool
	Over   bool
	Approx bool
	RA     bool
	NoOff  bool // omerc: suppress u_0 offset (Type A)
	NoRot  bool // omerc: suppress rectification rotation

	// axisSeen marks that an AXIS record replaced the default "enu".
	axisSeen bool
}

// NewDefinition returns a Definition with every numeric field marked absent.
func NewDefinition() *Definition {
	nan := math.NaN()
	return &Definition{
		A: nan, B: nan, Rf: nan,
		Lat0: nan, Lat1: nan, Lat2: nan, LatTS: nan,
		Long0: nan, Long1: nan, Long2: nan, LongC: nan,
		Alpha: nan, Gamma: nan, FromGreenwich: nan,
		K0: nan, X0: nan, Y0: nan, ToMeter: nan, VToMeter: nan,
		Axis: "enu",
	}
}

func given(v float64) bool {
	return !math.IsNaN(v)
}

// or returns v when present, otherwise the fallback.
func or(v, fallback float64) float64 {
	if given(v) {
		return v
	}
	return fallback
}
