package proj

import (
	"math"
	"sync"

	"github.com/pkg/errors"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* The transform pipeline.                                                                        */
/*                                                                                                */
/* One point flows through: source axis correction -> unit scale -> inverse projection ->         */
/* prime meridian -> datum shift -> prime meridian -> forward projection -> unit scale ->         */
/* destination axis correction. Each call is self-contained and synchronous; everything the       */
/* stages touch is immutable, so Transform may run concurrently from any number of goroutines.    */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

var (
	wgs84Once sync.Once
	wgs84PS   *ProjectionParams
)

// wgs84Geographic returns the process-wide WGS84 longlat projection used as
// the detour target between two shifted datums.
func wgs84Geographic() *ProjectionParams {
	wgs84Once.Do(func() {
		def, err := ParseDefinition("+proj=longlat +datum=WGS84 +no_defs")
		if err != nil {
			panic(err)
		}
		wgs84PS, err = Derive(def)
		if err != nil {
			panic(err)
		}
	})
	return wgs84PS
}

// Transform converts one point from the source CRS to the destination CRS.
// Geographic coordinates are degrees at this boundary. enforceAxis applies
// the CRS axis specifications on the way in and out.
//
// The input is never mutated; per-point failures return an error and leave
// no partial state behind.
func Transform(source, dest *ProjectionParams, pt Point, enforceAxis bool) (Point, error) {
	if !pt.finite() {
		return Point{}, errors.Wrapf(ErrInvalidCoordinate, "(%v, %v)", pt.X, pt.Y)
	}
	hasZ := pt.Z != 0

	// Two geographic systems on the same datum and prime meridian are the
	// same system; hand the point back untouched.
	if source.IsGeographic() && dest.IsGeographic() &&
		source.FromGreenwich == dest.FromGreenwich &&
		(!enforceAxis || source.Axis == dest.Axis) &&
		source.datum.equal(dest.datum) {
		return pt, nil
	}

	// Two shifted datums talk to each other through WGS84.
	if shiftedDatum(source) && shiftedDatum(dest) {
		wgs := wgs84Geographic()
		mid, err := Transform(source, wgs, pt, enforceAxis)
		if err != nil {
			return Point{}, err
		}
		return Transform(wgs, dest, mid, enforceAxis)
	}

	p := pt

	if enforceAxis && source.Axis != "enu" {
		p = adjustAxis(source.Axis, false, p)
	}

	// To geodetic radians. Out-of-range degrees wrap the way a parsed
	// lat/lon would.
	if source.IsGeographic() {
		p.X = wrap180(p.X) * deg2rad
		p.Y = wrap90(p.Y) * deg2rad
	} else {
		if source.ToMeter != 1 {
			p.X *= source.ToMeter
			p.Y *= source.ToMeter
		}
		var err error
		p.X, p.Y, err = source.proj.Inverse(p.X, p.Y)
		if err != nil {
			return Point{}, err
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return Point{}, ErrOutOfDomain
		}
	}

	if source.FromGreenwich != 0 {
		p.X += source.FromGreenwich
	}

	var err error
	p.X, p.Y, p.Z, err = transformDatum(source.datum, dest.datum, p.X, p.Y, p.Z)
	if err != nil {
		return Point{}, err
	}

	if dest.FromGreenwich != 0 {
		p.X -= dest.FromGreenwich
	}

	// From geodetic radians.
	if dest.IsGeographic() {
		p.X *= rad2deg
		p.Y *= rad2deg
	} else {
		p.X, p.Y, err = dest.proj.Forward(p.X, p.Y)
		if err != nil {
			return Point{}, err
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return Point{}, ErrOutOfDomain
		}
		if dest.ToMeter != 1 {
			p.X /= dest.ToMeter
			p.Y /= dest.ToMeter
		}
	}

	if enforceAxis && dest.Axis != "enu" {
		p = adjustAxis(dest.Axis, true, p)
	}

	if !hasZ {
		p.Z = 0
	}
	p.M = pt.M
	return p, nil
}

// shiftedDatum reports whether the CRS sits on a datum that moves points
// and is not simply WGS84.
func shiftedDatum(ps *ProjectionParams) bool {
	switch ps.datum.datumType {
	case pjd3Param, pjd7Param, pjdGridShift:
		return true
	}
	return false
}

// adjustAxis permutes and sign-flips a point between a CRS axis convention
// and the internal east-north-up order. denorm converts internal -> CRS.
func adjustAxis(axis string, denorm bool, pt Point) Point {
	in := [3]float64{pt.X, pt.Y, pt.Z}
	var out Point
	out.M = pt.M
	for i := 0; i < 3; i++ {
		v := in[i]
		if denorm {
			// Internal -> CRS: the i-th output slot reads from the internal
			// axis named by axis[i].
			switch axis[i] {
			case 'e':
				v = pt.X
			case 'w':
				v = -pt.X
			case 'n':
				v = pt.Y
			case 's':
				v = -pt.Y
			case 'u':
				v = pt.Z
			case 'd':
				v = -pt.Z
			}
			switch i {
			case 0:
				out.X = v
			case 1:
				out.Y = v
			case 2:
				out.Z = v
			}
			continue
		}
		// CRS -> internal: the i-th input slot feeds the internal axis
		// named by axis[i].
		switch axis[i] {
		case 'e':
			out.X = v
		case 'w':
			out.X = -v
		case 'n':
			out.Y = v
		case 's':
			out.Y = -v
		case 'u':
			out.Z = v
		case 'd':
			out.Z = -v
		}
	}
	return out
}

/* Converter façade - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - */

// A Converter binds a source and destination CRS once and converts points
// between them. Converters are immutable and safe for concurrent use.
type Converter struct {
	source, dest *ProjectionParams
	enforceAxis  bool
}

// NewConverter parses both definitions (through the projection cache) and
// returns the bound converter.
func NewConverter(sourceDef, destDef string) (*Converter, error) {
	source, err := Parse(sourceDef)
	if err != nil {
		return nil, err
	}
	dest, err := Parse(destDef)
	if err != nil {
		return nil, err
	}
	return &Converter{source: source, dest: dest, enforceAxis: true}, nil
}

// Source returns the bound source CRS.
func (c *Converter) Source() *ProjectionParams { return c.source }

// Dest returns the bound destination CRS.
func (c *Converter) Dest() *ProjectionParams { return c.dest }

// Forward converts a point from the source CRS to the destination CRS.
func (c *Converter) Forward(pt Point) (Point, error) {
	return Transform(c.source, c.dest, pt, c.enforceAxis)
}

// Inverse converts a point from the destination CRS back to the source CRS.
func (c *Converter) Inverse(pt Point) (Point, error) {
	return Transform(c.dest, c.source, pt, c.enforceAxis)
}

// TransformBatch converts a slice of points, reusing the bound converter.
// A point that fails comes back as a NaN-filled row; the batch keeps going.
func (c *Converter) TransformBatch(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, pt := range pts {
		res, err := c.Forward(pt)
		if err != nil {
			nan := math.NaN()
			res = Point{X: nan, Y: nan, Z: nan, M: pt.M}
		}
		out[i] = res
	}
	return out
}

// TransformFlat converts interleaved x/y pairs, e.g. [x0, y0, x1, y1, ...].
// Failed pairs come back NaN-filled.
func (c *Converter) TransformFlat(coords []float64) ([]float64, error) {
	if len(coords)%2 != 0 {
		return nil, errors.Wrap(ErrInvalidCoordinate, "flat coordinate array must hold x/y pairs")
	}
	out := make([]float64, len(coords))
	for i := 0; i < len(coords); i += 2 {
		res, err := c.Forward(Point{X: coords[i], Y: coords[i+1]})
		if err != nil {
			out[i] = math.NaN()
			out[i+1] = math.NaN()
			continue
		}
		out[i] = res.X
		out[i+1] = res.Y
	}
	return out, nil
}
