package proj

import "math"

/* Cassini-Soldner: transverse equidistant, via the meridional-distance
 * series on the ellipsoid. */

type cassProjection struct {
	baseProjection
	e0, e1, e2, e3 float64
	ml0            float64
}

func (c *cassProjection) Init(p *ProjectionParams) error {
	c.bind(p)
	if !p.Sphere {
		c.e0 = e0fn(p.Es)
		c.e1 = e1fn(p.Es)
		c.e2 = e2fn(p.Es)
		c.e3 = e3fn(p.Es)
		c.ml0 = p.A * mlfn(c.e0, c.e1, c.e2, c.e3, p.Lat0)
	}
	return nil
}

func (c *cassProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := c.ready(); err != nil {
		return 0, 0, err
	}
	p := c.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	dlon := p.adjustLon(lam - p.Long0)

	if p.Sphere {
		x := p.A * math.Asin(math.Cos(phi)*math.Sin(dlon))
		y := p.A * (math.Atan2(math.Tan(phi), math.Cos(dlon)) - p.Lat0)
		return x + p.X0, y + p.Y0, nil
	}

	sinphi := math.Sin(phi)
	cosphi := math.Cos(phi)
	nl := gN(p.A, p.E, sinphi)
	tl := math.Tan(phi)
	t := tl * tl
	a1 := dlon * cosphi
	cc := p.Es * cosphi * cosphi / (1 - p.Es)
	a2 := a1 * a1

	x := p.X0 + nl*a1*(1-a2*t*(1.0/6-(8-t+8*cc)*a2/120))
	y := p.Y0 + p.A*mlfn(c.e0, c.e1, c.e2, c.e3, phi) - c.ml0 +
		nl*tl*a2*(0.5+(5-t+6*cc)*a2/24)
	return x, y, nil
}

func (c *cassProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := c.ready(); err != nil {
		return 0, 0, err
	}
	p := c.p
	x -= p.X0
	y -= p.Y0

	if p.Sphere {
		dd := y/p.A + p.Lat0
		phi := math.Asin(math.Sin(dd) * math.Cos(x/p.A))
		lam := math.Atan2(math.Tan(x/p.A), math.Cos(dd))
		return p.adjustLon(p.Long0 + lam), phi, nil
	}

	ml1 := c.ml0 + y
	phi1, err := imlfn(ml1/p.A, c.e0, c.e1, c.e2, c.e3)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	if math.Abs(math.Abs(phi1)-halfPi) <= epsln {
		return p.Long0, math.Copysign(halfPi, y), nil
	}
	sinphi1 := math.Sin(phi1)
	nl1 := gN(p.A, p.E, sinphi1)
	rl1 := nl1 * (1 - p.Es) / (1 - p.Es*sinphi1*sinphi1)
	tl1 := math.Tan(phi1)
	d := x / nl1
	ds := d * d

	phi := phi1 - nl1*tl1/rl1*ds*(0.5-(1+3*tl1*tl1)*ds/24)
	lam := p.adjustLon(p.Long0 +
		d*(1-ds*(tl1*tl1/3+(1+3*tl1*tl1)*tl1*tl1*ds/15))/math.Cos(phi1))
	return lam, phi, nil
}
