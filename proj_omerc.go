package proj

import (
	"math"

	"github.com/pkg/errors"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Hotine oblique Mercator.                                                                       */
/*                                                                                                */
/* Two parameter styles: a projection centre with an azimuth (lonc+alpha), or two points on the   */
/* initial line (lon_1/lat_1, lon_2/lat_2). Type A (natural-origin variant) is selected ONLY by   */
/* an explicit no_uoff/no_off flag or a variant-A method name; it suppresses the u_c offset.      */
/* no_rot additionally skips the rectification rotation.                                          */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

type omercProjection struct {
	baseProjection
	noOff, noRot bool
	alpha        float64
	long0        float64
	bl, al, el   float64
	gamma0, uc   float64
}

func (o *omercProjection) Init(p *ProjectionParams) error {
	o.bind(p)
	o.noOff = p.NoOff
	o.noRot = p.NoRot

	sinlat := math.Sin(p.Lat0)
	coslat := math.Cos(p.Lat0)
	con := p.E * sinlat

	o.bl = math.Sqrt(1 + p.Es/(1-p.Es)*math.Pow(coslat, 4))
	o.al = p.A * o.bl * p.K0 * math.Sqrt(1-p.Es) / (1 - con*con)
	t0 := tsfnz(p.E, p.Lat0, sinlat)
	dl := o.bl / coslat * math.Sqrt((1-p.Es)/(1-con*con))
	if dl*dl < 1 {
		dl = 1
	}

	var fl, gl float64
	if given(p.LongC) {
		// Central point and azimuth style.
		if !given(p.Alpha) {
			return errors.Wrap(ErrBadSyntax, "omerc wants +alpha with +lonc")
		}
		o.alpha = p.Alpha
		if p.Lat0 >= 0 {
			fl = dl + math.Sqrt(dl*dl-1)
		} else {
			fl = dl - math.Sqrt(dl*dl-1)
		}
		o.el = fl * math.Pow(t0, o.bl)
		gl = 0.5 * (fl - 1/fl)
		o.gamma0 = math.Asin(math.Sin(o.alpha) / dl)
		o.long0 = p.LongC - math.Asin(gl*math.Tan(o.gamma0))/o.bl
	} else {
		// Two-point style.
		if !given(p.Lat1) || !given(p.Lat2) || !given(p.Long1) || !given(p.Long2) {
			return errors.Wrap(ErrBadSyntax, "omerc wants lonc+alpha or two points")
		}
		t1 := tsfnz(p.E, p.Lat1, math.Sin(p.Lat1))
		t2 := tsfnz(p.E, p.Lat2, math.Sin(p.Lat2))
		if p.Lat0 >= 0 {
			o.el = (dl + math.Sqrt(dl*dl-1)) * math.Pow(t0, o.bl)
		} else {
			o.el = (dl - math.Sqrt(dl*dl-1)) * math.Pow(t0, o.bl)
		}
		hl := math.Pow(t1, o.bl)
		ll := math.Pow(t2, o.bl)
		fl = o.el / hl
		gl = 0.5 * (fl - 1/fl)
		jl := (o.el*o.el - ll*hl) / (o.el*o.el + ll*hl)
		pl := (ll - hl) / (ll + hl)
		dlon12 := adjlon(p.Long1 - p.Long2)
		o.long0 = 0.5*(p.Long1+p.Long2) -
			math.Atan(jl*math.Tan(0.5*o.bl*dlon12)/pl)/o.bl
		o.long0 = adjlon(o.long0)
		dlon10 := adjlon(p.Long1 - o.long0)
		o.gamma0 = math.Atan(math.Sin(o.bl*dlon10) / gl)
		o.alpha = math.Asin(dl * math.Sin(o.gamma0))
	}

	if o.noOff {
		o.uc = 0
	} else {
		if p.Lat0 >= 0 {
			o.uc = o.al / o.bl * math.Atan2(math.Sqrt(dl*dl-1), math.Cos(o.alpha))
		} else {
			o.uc = -o.al / o.bl * math.Atan2(math.Sqrt(dl*dl-1), math.Cos(o.alpha))
		}
	}
	return nil
}

func (o *omercProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := o.ready(); err != nil {
		return 0, 0, err
	}
	p := o.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	dlon := p.adjustLon(lam - o.long0)

	var us, vs float64
	if math.Abs(math.Abs(phi)-halfPi) <= epsln {
		con := 1.0
		if phi < 0 {
			con = -1
		}
		vs = o.al / o.bl * math.Log(math.Tan(fortPi+con*o.gamma0*0.5))
		us = -con * halfPi * o.al / o.bl
	} else {
		t := tsfnz(p.E, phi, math.Sin(phi))
		ql := o.el / math.Pow(t, o.bl)
		sl := 0.5 * (ql - 1/ql)
		tl := 0.5 * (ql + 1/ql)
		vl := math.Sin(o.bl * dlon)
		ul := (sl*math.Sin(o.gamma0) - vl*math.Cos(o.gamma0)) / tl
		if math.Abs(math.Abs(ul)-1) <= epsln {
			return math.NaN(), math.NaN(), ErrOutOfDomain
		}
		vs = 0.5 * o.al * math.Log((1-ul)/(1+ul)) / o.bl
		if math.Abs(math.Cos(o.bl*dlon)) <= epsln {
			us = o.al * o.bl * dlon
		} else {
			us = o.al * math.Atan2(sl*math.Cos(o.gamma0)+vl*math.Sin(o.gamma0),
				math.Cos(o.bl*dlon)) / o.bl
		}
	}

	if o.noRot {
		return p.X0 + us, p.Y0 + vs, nil
	}
	us -= o.uc
	x := p.X0 + vs*math.Cos(o.alpha) + us*math.Sin(o.alpha)
	y := p.Y0 + us*math.Cos(o.alpha) - vs*math.Sin(o.alpha)
	return x, y, nil
}

func (o *omercProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := o.ready(); err != nil {
		return 0, 0, err
	}
	p := o.p
	var us, vs float64
	if o.noRot {
		vs = y - p.Y0
		us = x - p.X0
	} else {
		vs = (x-p.X0)*math.Cos(o.alpha) - (y-p.Y0)*math.Sin(o.alpha)
		us = (y-p.Y0)*math.Cos(o.alpha) + (x-p.X0)*math.Sin(o.alpha)
		us += o.uc
	}
	qp := math.Exp(-o.bl * vs / o.al)
	sp := 0.5 * (qp - 1/qp)
	tp := 0.5 * (qp + 1/qp)
	vp := math.Sin(o.bl * us / o.al)
	up := (vp*math.Cos(o.gamma0) + sp*math.Sin(o.gamma0)) / tp

	if math.Abs(math.Abs(up)-1) < epsln {
		return o.long0, math.Copysign(halfPi, up), nil
	}
	ts := math.Pow(o.el/math.Sqrt((1+up)/(1-up)), 1/o.bl)
	phi, err := phi2z(p.E, ts)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	lam := p.adjustLon(o.long0 -
		math.Atan2(sp*math.Cos(o.gamma0)-vp*math.Sin(o.gamma0),
			math.Cos(o.bl*us/o.al))/o.bl)
	return lam, phi, nil
}
