package proj

import "math"

// Gnomonic, spherical only. Points on or beyond the horizon great circle
// have no image.
type gnomProjection struct {
	baseProjection
	sinP14, cosP14 float64
}

func (g *gnomProjection) Init(p *ProjectionParams) error {
	g.bind(p)
	g.sinP14 = math.Sin(p.Lat0)
	g.cosP14 = math.Cos(p.Lat0)
	return nil
}

func (g *gnomProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := g.ready(); err != nil {
		return 0, 0, err
	}
	p := g.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	sinphi := math.Sin(phi)
	cosphi := math.Cos(phi)
	dlon := p.adjustLon(lam - p.Long0)
	coslon := math.Cos(dlon)
	gg := g.sinP14*sinphi + g.cosP14*cosphi*coslon
	if gg <= epsln {
		return math.NaN(), math.NaN(), ErrOutOfDomain
	}
	ksp := 1 / gg
	x := p.X0 + p.A*ksp*cosphi*math.Sin(dlon)
	y := p.Y0 + p.A*ksp*(g.cosP14*sinphi-g.sinP14*cosphi*coslon)
	return x, y, nil
}

func (g *gnomProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := g.ready(); err != nil {
		return 0, 0, err
	}
	p := g.p
	x = (x - p.X0) / p.A
	y = (y - p.Y0) / p.A
	rh := math.Sqrt(x*x + y*y)
	if rh <= epsln {
		return p.Long0, p.Lat0, nil
	}
	c := math.Atan2(rh, 1)
	sinc := math.Sin(c)
	cosc := math.Cos(c)
	phi := asinz(cosc*g.sinP14 + y*sinc*g.cosP14/rh)
	lam := math.Atan2(x*sinc, rh*g.cosP14*cosc-y*g.sinP14*sinc)
	return p.adjustLon(p.Long0 + lam), phi, nil
}
