package proj

import "math"

/* Mercator, spherical and ellipsoidal. The ellipsoidal inverse runs phi2z
 * (1e-10, 15 steps); points at the poles are outside the domain. */

type mercProjection struct {
	baseProjection
	k0 float64
}

func (m *mercProjection) Init(p *ProjectionParams) error {
	m.bind(p)
	m.k0 = p.K0
	if given(p.LatTS) {
		latTS := math.Abs(p.LatTS)
		if p.Sphere {
			m.k0 = math.Cos(latTS)
		} else {
			m.k0 = msfnz(math.Sin(latTS), math.Cos(latTS), p.Es)
		}
	}
	return nil
}

func (m *mercProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := m.ready(); err != nil {
		return 0, 0, err
	}
	p := m.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	// The poles map to infinity.
	if math.Abs(math.Abs(phi)-halfPi) <= epsln {
		return math.NaN(), math.NaN(), ErrOutOfDomain
	}
	dlon := p.adjustLon(lam - p.Long0)
	x := p.X0 + p.A*m.k0*dlon
	var y float64
	if p.Sphere {
		y = p.Y0 + p.A*m.k0*math.Log(math.Tan(fortPi+0.5*phi))
	} else {
		ts := tsfnz(p.E, phi, math.Sin(phi))
		y = p.Y0 - p.A*m.k0*math.Log(ts)
	}
	return x, y, nil
}

func (m *mercProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := m.ready(); err != nil {
		return 0, 0, err
	}
	p := m.p
	x = (x - p.X0) / (p.A * m.k0)
	y = (y - p.Y0) / (p.A * m.k0)
	var phi float64
	if p.Sphere {
		phi = halfPi - 2*math.Atan(math.Exp(-y))
	} else {
		var err error
		phi, err = phi2z(p.E, math.Exp(-y))
		if err != nil {
			return math.NaN(), math.NaN(), err
		}
	}
	lam := p.adjustLon(p.Long0 + x)
	return lam, phi, nil
}
