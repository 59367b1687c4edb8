package proj

import "math"

// Mollweide: Newton iteration for the auxiliary angle θ satisfying
// 2θ + sin 2θ = π sin φ, capped at 20 rounds.
type mollProjection struct {
	baseProjection
}

func (m *mollProjection) Init(p *ProjectionParams) error {
	m.bind(p)
	return nil
}

func (m *mollProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := m.ready(); err != nil {
		return 0, 0, err
	}
	p := m.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	dlon := p.adjustLon(lam - p.Long0)

	theta := phi
	con := math.Pi * math.Sin(phi)
	converged := false
	for i := 0; i < 20; i++ {
		deltaTheta := -(theta + math.Sin(theta) - con) / (1 + math.Cos(theta))
		theta += deltaTheta
		if math.Abs(deltaTheta) < epsln {
			converged = true
			break
		}
	}
	if !converged && math.Abs(math.Abs(phi)-halfPi) > epsln {
		return math.NaN(), math.NaN(), notConverged("moll forward")
	}
	theta /= 2

	// Both poles project onto a single point; keep x there pinned to the
	// central meridian.
	if halfPi-math.Abs(phi) < epsln {
		dlon = 0
	}
	x := 0.900316316158*p.A*dlon*math.Cos(theta) + p.X0
	y := 1.4142135623731*p.A*math.Sin(theta) + p.Y0
	return x, y, nil
}

func (m *mollProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := m.ready(); err != nil {
		return 0, 0, err
	}
	p := m.p
	x -= p.X0
	y -= p.Y0
	arg := y / (1.4142135623731 * p.A)
	if math.Abs(arg) > 1+epsln {
		return math.NaN(), math.NaN(), ErrOutOfDomain
	}
	theta := asinz(arg)
	lam := p.adjustLon(p.Long0 + x/(0.900316316158*p.A*math.Cos(theta)))
	theta *= 2
	phi := asinz((theta + math.Sin(theta)) / math.Pi)
	return lam, phi, nil
}
