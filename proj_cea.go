package proj

import "math"

// Lambert cylindrical equal area; qsfnz/iqsfnz for the ellipsoidal pair.
type ceaProjection struct {
	baseProjection
	k0    float64
	latTS float64
}

func (c *ceaProjection) Init(p *ProjectionParams) error {
	c.bind(p)
	c.latTS = or(p.LatTS, 0)
	c.k0 = p.K0
	if !p.Sphere {
		c.k0 = msfnz(math.Sin(c.latTS), math.Cos(c.latTS), p.Es)
	}
	return nil
}

func (c *ceaProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := c.ready(); err != nil {
		return 0, 0, err
	}
	p := c.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	dlon := p.adjustLon(lam - p.Long0)
	var x, y float64
	if p.Sphere {
		x = p.X0 + p.A*dlon*math.Cos(c.latTS)
		y = p.Y0 + p.A*math.Sin(phi)/math.Cos(c.latTS)
	} else {
		qs := qsfnz(p.E, math.Sin(phi))
		x = p.X0 + p.A*c.k0*dlon
		y = p.Y0 + p.A*qs*0.5/c.k0
	}
	return x, y, nil
}

func (c *ceaProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := c.ready(); err != nil {
		return 0, 0, err
	}
	p := c.p
	x -= p.X0
	y -= p.Y0
	var lam, phi float64
	if p.Sphere {
		lam = p.adjustLon(p.Long0 + x/p.A/math.Cos(c.latTS))
		phi = math.Asin(y / p.A * math.Cos(c.latTS))
	} else {
		var err error
		phi, err = iqsfnz(p.E, 2*y*c.k0/p.A)
		if err != nil {
			return math.NaN(), math.NaN(), err
		}
		lam = p.adjustLon(p.Long0 + x/(p.A*c.k0))
	}
	return lam, phi, nil
}
