package proj

import "math"

// Equirectangular: linear in both λ and φ, with an optional standard
// parallel setting the x scale.
type eqcProjection struct {
	baseProjection
	rc float64
}

func (e *eqcProjection) Init(p *ProjectionParams) error {
	e.bind(p)
	latTS := or(p.LatTS, or(p.Lat1, 0))
	e.rc = math.Cos(latTS)
	if e.rc <= 0 {
		return ErrOutOfDomain
	}
	return nil
}

func (e *eqcProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := e.ready(); err != nil {
		return 0, 0, err
	}
	p := e.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	dlon := p.adjustLon(lam - p.Long0)
	x := p.X0 + p.A*dlon*e.rc
	y := p.Y0 + p.A*(adjlat(phi)-p.Lat0)
	return x, y, nil
}

func (e *eqcProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := e.ready(); err != nil {
		return 0, 0, err
	}
	p := e.p
	lam := p.adjustLon(p.Long0 + (x-p.X0)/(p.A*e.rc))
	phi := adjlat(p.Lat0 + (y-p.Y0)/p.A)
	return lam, phi, nil
}
