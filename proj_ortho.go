package proj

import "math"

// Orthographic, spherical. Back-hemisphere points have no image.
type orthoProjection struct {
	baseProjection
	sinP14, cosP14 float64
}

func (o *orthoProjection) Init(p *ProjectionParams) error {
	o.bind(p)
	o.sinP14 = math.Sin(p.Lat0)
	o.cosP14 = math.Cos(p.Lat0)
	return nil
}

func (o *orthoProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := o.ready(); err != nil {
		return 0, 0, err
	}
	p := o.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	sinphi := math.Sin(phi)
	cosphi := math.Cos(phi)
	dlon := p.adjustLon(lam - p.Long0)
	coslon := math.Cos(dlon)
	g := o.sinP14*sinphi + o.cosP14*cosphi*coslon
	if g <= 0 && math.Abs(g) > epsln {
		return math.NaN(), math.NaN(), ErrOutOfDomain
	}
	x := p.X0 + p.A*cosphi*math.Sin(dlon)
	y := p.Y0 + p.A*(o.cosP14*sinphi-o.sinP14*cosphi*coslon)
	return x, y, nil
}

func (o *orthoProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := o.ready(); err != nil {
		return 0, 0, err
	}
	p := o.p
	x -= p.X0
	y -= p.Y0
	rh := math.Sqrt(x*x + y*y)
	if rh > p.A*(1+epsln) {
		return math.NaN(), math.NaN(), ErrOutOfDomain
	}
	z := asinz(rh / p.A)
	sinz := math.Sin(z)
	cosz := math.Cos(z)
	if math.Abs(rh) <= epsln {
		return p.Long0, p.Lat0, nil
	}
	phi := asinz(cosz*o.sinP14 + y*sinz*o.cosP14/rh)
	var lam float64
	con := math.Abs(p.Lat0) - halfPi
	if math.Abs(con) <= epsln {
		if p.Lat0 >= 0 {
			lam = p.adjustLon(p.Long0 + math.Atan2(x, -y))
		} else {
			lam = p.adjustLon(p.Long0 - math.Atan2(-x, y))
		}
	} else {
		lam = p.adjustLon(p.Long0 +
			math.Atan2(x*sinz, rh*o.cosP14*cosz-y*o.sinP14*sinz))
	}
	return lam, phi, nil
}
