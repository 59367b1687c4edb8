package proj

import (
	"math"

	"github.com/pkg/errors"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Derivation: turn a raw Definition into the constants the projections consume.                  */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

const (
	// authalic sphere series (PROJ pj_ell_set)
	sixth = 0.1666666666666666667
	ra4   = 0.04722222222222222222
	ra6   = 0.02215608465608465608
)

// Derive resolves the ellipsoid, datum and unit of a Definition, computes the
// derived eccentricities and returns an initialized ProjectionParams ready
// for the transform pipeline.
func Derive(def *Definition) (*ProjectionParams, error) {
	ps := &ProjectionParams{Definition: *def}

	// A named datum supplies its ellipsoid and shift parameters unless the
	// definition overrode them explicitly.
	if ps.DatumCode != "" && ps.DatumCode != "none" {
		if dd, ok := datumDefs[ps.DatumCode]; ok {
			if ps.DatumParams == nil && dd.towgs84 != nil {
				ps.DatumParams = append([]float64(nil), dd.towgs84...)
			}
			if ps.NADGrids == "" {
				ps.NADGrids = dd.nadgrids
			}
			if ps.EllpsName == "" {
				ps.EllpsName = dd.ellipse
			}
			if dd.datumName != "" {
				ps.DatumName = dd.datumName
			} else {
				ps.DatumName = ps.DatumCode
			}
		}
	}

	if err := deriveEllipsoid(ps); err != nil {
		return nil, err
	}

	// Units: a named unit wins, then an explicit +to_meter, then metres.
	if ps.Units != "" {
		u, ok := unitDefs[ps.Units]
		if !ok && ps.Units != "degrees" {
			return nil, errors.Wrapf(ErrUnsupported, "unit %q", ps.Units)
		}
		if ok {
			ps.ToMeter = u.ToMeter
		}
	}
	ps.ToMeter = or(ps.ToMeter, 1)
	ps.FrMeter = 1 / ps.ToMeter

	// UTM presets; the zone fixes the central meridian.
	if ps.ProjName == "utm" {
		if ps.Zone < 1 || ps.Zone > 60 {
			return nil, errors.Wrapf(ErrBadSyntax, "utm zone %d", ps.Zone)
		}
		ps.Long0 = or(ps.Long0, (float64(ps.Zone-1)*6-180+3)*deg2rad)
		ps.K0 = or(ps.K0, 0.9996)
		ps.X0 = or(ps.X0, 500000)
		if ps.UTMSouth {
			ps.Y0 = or(ps.Y0, 10000000)
		}
	}

	// Remaining defaults for the hot path.
	ps.K0 = or(ps.K0, 1)
	if ps.K0 <= 0 {
		return nil, errors.Wrapf(ErrBadSyntax, "k_0 %v must be positive", ps.K0)
	}
	ps.X0 = or(ps.X0, 0)
	ps.Y0 = or(ps.Y0, 0)
	ps.Lat0 = or(ps.Lat0, 0)
	ps.Long0 = or(ps.Long0, 0)
	ps.FromGreenwich = or(ps.FromGreenwich, 0)
	if ps.Axis == "" {
		ps.Axis = "enu"
	}
	if len(ps.Axis) != 3 {
		return nil, errors.Wrapf(ErrBadSyntax, "axis %q", ps.Axis)
	}

	ps.datum = resolveDatum(ps)

	factory, ok := lookupProjection(ps.ProjName)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupported, "projection %q", ps.ProjName)
	}
	ps.proj = factory()
	if err := ps.proj.Init(ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func deriveEllipsoid(ps *ProjectionParams) error {
	nGiven := 0
	for _, v := range []float64{ps.A, ps.B, ps.Rf} {
		if given(v) {
			nGiven++
		}
	}
	if nGiven < 2 {
		name := ps.EllpsName
		if name == "" {
			name = "WGS84"
		}
		ell, ok := ellipsoidDefs[name]
		if !ok {
			return errors.Wrapf(ErrUnsupported, "ellipsoid %q", name)
		}
		// An explicitly given axis survives the table lookup.
		if !given(ps.A) {
			ps.A = ell.A
		}
		if !given(ps.B) && ell.B != 0 {
			ps.B = ell.B
		}
		if !given(ps.Rf) && ell.Rf != 0 {
			ps.Rf = ell.Rf
		}
		ps.EllipseName = ell.Name
	}
	if given(ps.Rf) && !given(ps.B) {
		ps.B = (1.0 - 1.0/ps.Rf) * ps.A
	}
	if !given(ps.B) {
		ps.B = ps.A
	}
	if !given(ps.A) || ps.A <= 0 {
		return errors.Wrap(ErrBadSyntax, "no usable semi-major axis")
	}

	if math.Abs(ps.A-ps.B) < epsln {
		ps.Sphere = true
		ps.B = ps.A
	}

	a2 := ps.A * ps.A
	b2 := ps.B * ps.B
	ps.Es = (a2 - b2) / a2
	ps.E = math.Sqrt(ps.Es)

	if ps.RA {
		// Replace by the authalic sphere.
		ps.A *= 1 - ps.Es*(sixth+ps.Es*(ra4+ps.Es*ra6))
		ps.B = ps.A
		ps.Es = 0
		ps.E = 0
		ps.Sphere = true
		a2 = ps.A * ps.A
		b2 = a2
	}

	ps.Ep2 = (a2 - b2) / b2
	ps.OneEs = 1 - ps.Es
	ps.ROneEs = 1 / ps.OneEs
	return nil
}

// resolveDatum builds the datum record, normalising towgs84 rotations from
// arcseconds to radians and the scale from ppm to a multiplier.
func resolveDatum(ps *ProjectionParams) *datum {
	d := &datum{
		datumType: pjdWGS84,
		a:         ps.A,
		b:         ps.B,
		es:        ps.Es,
		ep2:       ps.Ep2,
	}
	if ps.DatumCode == "none" {
		d.datumType = pjdNoDatum
		return d
	}
	if ps.NADGrids != "" {
		d.datumType = pjdGridShift
		d.nadGrids = parseGridRefs(ps.NADGrids)
		return d
	}
	if len(ps.DatumParams) > 0 {
		p := append([]float64(nil), ps.DatumParams...)
		if p[0] != 0 || p[1] != 0 || p[2] != 0 {
			d.datumType = pjd3Param
		}
		if len(p) > 3 && (p[3] != 0 || p[4] != 0 || p[5] != 0 || p[6] != 0) {
			d.datumType = pjd7Param
			p[3] *= secToRad
			p[4] *= secToRad
			p[5] *= secToRad
			p[6] = p[6]/1000000.0 + 1.0
		}
		d.params = p
	}
	return d
}
