package proj

import "math"

// Miller cylindrical: y = a·ln(tan(π/4 + φ/2.5))·1.25. Spherical by
// construction.
type millProjection struct {
	baseProjection
}

func (m *millProjection) Init(p *ProjectionParams) error {
	m.bind(p)
	return nil
}

func (m *millProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := m.ready(); err != nil {
		return 0, 0, err
	}
	p := m.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	dlon := p.adjustLon(lam - p.Long0)
	x := p.X0 + p.A*dlon
	y := p.Y0 + p.A*math.Log(math.Tan(fortPi+phi/2.5))*1.25
	return x, y, nil
}

func (m *millProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := m.ready(); err != nil {
		return 0, 0, err
	}
	p := m.p
	x -= p.X0
	y -= p.Y0
	lam := p.adjustLon(p.Long0 + x/p.A)
	phi := 2.5 * (math.Atan(math.Exp(0.8*y/p.A)) - fortPi)
	return lam, phi, nil
}
