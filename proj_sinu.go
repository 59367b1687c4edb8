package proj

import "math"

// Sinusoidal: equal-area pseudocylindrical. The ellipsoidal pair runs over
// the en-series meridional distance.
type sinuProjection struct {
	baseProjection
	en [5]float64
}

func (s *sinuProjection) Init(p *ProjectionParams) error {
	s.bind(p)
	if !p.Sphere {
		s.en = enfn(p.Es)
	}
	return nil
}

func (s *sinuProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := s.ready(); err != nil {
		return 0, 0, err
	}
	p := s.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	dlon := p.adjustLon(lam - p.Long0)
	var x, y float64
	if p.Sphere {
		x = p.A * dlon * math.Cos(phi)
		y = p.A * phi
	} else {
		sinPhi := math.Sin(phi)
		cosPhi := math.Cos(phi)
		y = p.A * mlfnE(phi, sinPhi, cosPhi, s.en)
		x = p.A * dlon * cosPhi / math.Sqrt(1-p.Es*sinPhi*sinPhi)
	}
	return x + p.X0, y + p.Y0, nil
}

func (s *sinuProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := s.ready(); err != nil {
		return 0, 0, err
	}
	p := s.p
	x -= p.X0
	y -= p.Y0
	var lam, phi float64
	if p.Sphere {
		phi = y / p.A
		if math.Abs(phi) > halfPi+epsln {
			return math.NaN(), math.NaN(), ErrOutOfDomain
		}
		if math.Abs(math.Abs(phi)-halfPi) <= epsln {
			lam = p.Long0
		} else {
			lam = p.adjustLon(p.Long0 + x/(p.A*math.Cos(phi)))
		}
		return lam, phi, nil
	}
	var err error
	phi, err = invMlfn(y/p.A, p.Es, s.en)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	if abs := math.Abs(phi); abs < halfPi {
		sinPhi := math.Sin(phi)
		lam = p.adjustLon(p.Long0 + x*math.Sqrt(1-p.Es*sinPhi*sinPhi)/(p.A*math.Cos(phi)))
	} else if abs-epsln < halfPi {
		lam = p.Long0
	} else {
		return math.NaN(), math.NaN(), ErrOutOfDomain
	}
	return lam, phi, nil
}
