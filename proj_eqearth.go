package proj

import "math"

/* Equal Earth: polynomial in the auxiliary latitude θ with sin θ = (√3/2)·sin φ. */

const (
	eqearthA1 = 1.340264
	eqearthA2 = -0.081106
	eqearthA3 = 0.000893
	eqearthA4 = 0.003796
	eqearthM  = 0.8660254037844386 // √3/2
)

type eqearthProjection struct {
	baseProjection
}

func (e *eqearthProjection) Init(p *ProjectionParams) error {
	e.bind(p)
	return nil
}

func (e *eqearthProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := e.ready(); err != nil {
		return 0, 0, err
	}
	p := e.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	dlon := p.adjustLon(lam - p.Long0)
	theta := asinz(eqearthM * math.Sin(phi))
	theta2 := theta * theta
	theta6 := theta2 * theta2 * theta2
	x := dlon * math.Cos(theta) /
		(eqearthM * (eqearthA1 + 3*eqearthA2*theta2 + theta6*(7*eqearthA3+9*eqearthA4*theta2)))
	y := theta * (eqearthA1 + eqearthA2*theta2 + theta6*(eqearthA3+eqearthA4*theta2))
	return p.A*x + p.X0, p.A*y + p.Y0, nil
}

func (e *eqearthProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := e.ready(); err != nil {
		return 0, 0, err
	}
	p := e.p
	x = (x - p.X0) / p.A
	y = (y - p.Y0) / p.A

	const (
		tol     = 1e-9
		maxIter = 12
	)
	theta := y
	converged := false
	for i := 0; i < maxIter; i++ {
		theta2 := theta * theta
		theta6 := theta2 * theta2 * theta2
		f := theta*(eqearthA1+eqearthA2*theta2+theta6*(eqearthA3+eqearthA4*theta2)) - y
		fder := eqearthA1 + 3*eqearthA2*theta2 + theta6*(7*eqearthA3+9*eqearthA4*theta2)
		theta -= f / fder
		if math.Abs(f/fder) < tol {
			converged = true
			break
		}
	}
	if !converged {
		return math.NaN(), math.NaN(), notConverged("eqearth inverse")
	}
	theta2 := theta * theta
	theta6 := theta2 * theta2 * theta2
	lam := p.adjustLon(p.Long0 +
		eqearthM*x*(eqearthA1+3*eqearthA2*theta2+theta6*(7*eqearthA3+9*eqearthA4*theta2))/math.Cos(theta))
	phi := asinz(math.Sin(theta) / eqearthM)
	return lam, phi, nil
}
