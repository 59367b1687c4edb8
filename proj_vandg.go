package proj

import "math"

/* Van der Grinten: closed-form forward on the sphere, cubic-equation
 * inverse. Usually combined with +R_A so the sphere preserves area. */

type vandgProjection struct {
	baseProjection
}

func (v *vandgProjection) Init(p *ProjectionParams) error {
	v.bind(p)
	return nil
}

func (v *vandgProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := v.ready(); err != nil {
		return 0, 0, err
	}
	p := v.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	r := p.A
	dlon := p.adjustLon(lam - p.Long0)

	if math.Abs(phi) <= epsln {
		return p.X0 + r*dlon, p.Y0, nil
	}
	theta := asinz(2 * math.Abs(phi/math.Pi))
	if math.Abs(dlon) <= epsln || math.Abs(math.Abs(phi)-halfPi) <= epsln {
		// On the central meridian (or at a pole) the x term vanishes.
		x := p.X0
		var y float64
		if phi >= 0 {
			y = p.Y0 + math.Pi*r*math.Tan(0.5*theta)
		} else {
			y = p.Y0 - math.Pi*r*math.Tan(0.5*theta)
		}
		return x, y, nil
	}

	al := 0.5 * math.Abs(math.Pi/dlon-dlon/math.Pi)
	asq := al * al
	sinth := math.Sin(theta)
	costh := math.Cos(theta)
	g := costh / (sinth + costh - 1)
	gsq := g * g
	m := g * (2/sinth - 1)
	msq := m * m
	con := math.Pi * r * (al*(g-msq) +
		math.Sqrt(asq*(g-msq)*(g-msq)-(msq+asq)*(gsq-msq))) / (msq + asq)
	if dlon < 0 {
		con = -con
	}
	x := p.X0 + con

	con = math.Abs(con / (math.Pi * r))
	var y float64
	if phi >= 0 {
		y = p.Y0 + math.Pi*r*math.Sqrt(1-con*con-2*al*con)
	} else {
		y = p.Y0 - math.Pi*r*math.Sqrt(1-con*con-2*al*con)
	}
	return x, y, nil
}

func (v *vandgProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := v.ready(); err != nil {
		return 0, 0, err
	}
	p := v.p
	r := p.A
	x -= p.X0
	y -= p.Y0

	con := math.Pi * r
	xx := x / con
	yy := y / con
	xys := xx*xx + yy*yy
	c1 := -math.Abs(yy) * (1 + xys)
	c2 := c1 - 2*yy*yy + xx*xx
	c3 := -2*c1 + 1 + 2*yy*yy + xys*xys
	d := yy*yy/c3 + (2*c2*c2*c2/c3/c3/c3-9*c1*c2/c3/c3)/27
	a1 := (c1 - c2*c2/3/c3) / c3
	m1 := 2 * math.Sqrt(-a1/3)
	con = (3 * d) / a1 / m1
	if math.Abs(con) > 1 {
		con = sign(con)
	}
	th1 := math.Acos(con) / 3

	var phi float64
	if y >= 0 {
		phi = (-m1*math.Cos(th1+math.Pi/3) - c2/3/c3) * math.Pi
	} else {
		phi = -(-m1*math.Cos(th1+math.Pi/3) - c2/3/c3) * math.Pi
	}
	var lam float64
	if math.Abs(xx) < epsln {
		lam = p.Long0
	} else {
		lam = p.adjustLon(p.Long0 +
			math.Pi*(xys-1+math.Sqrt(1+2*(xx*xx-yy*yy)+xys*xys))/(2*xx))
	}
	return lam, phi, nil
}
