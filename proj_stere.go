package proj

import "math"

/* Stereographic, with the polar/oblique/equatorial branches and the ssfn
 * conformal mapping for the ellipsoid. */

type stereProjection struct {
	baseProjection
	k0               float64
	coslat0, sinlat0 float64
	con, cons, ms1   float64
	x0c              float64 // conformal latitude of the origin
	cosX0, sinX0     float64
}

func ssfn(phit, sinphi, eccen float64) float64 {
	sinphi *= eccen
	return math.Tan(0.5*(halfPi+phit)) *
		math.Pow((1-sinphi)/(1+sinphi), 0.5*eccen)
}

func (s *stereProjection) Init(p *ProjectionParams) error {
	s.bind(p)
	s.k0 = p.K0
	s.coslat0 = math.Cos(p.Lat0)
	s.sinlat0 = math.Sin(p.Lat0)
	if p.Sphere {
		if s.k0 == 1 && given(p.LatTS) && math.Abs(s.coslat0) <= epsln {
			s.k0 = 0.5 * (1 + sign(p.Lat0)*math.Sin(p.LatTS))
		}
		return nil
	}
	if math.Abs(s.coslat0) <= epsln {
		if p.Lat0 > 0 {
			s.con = 1 // north polar aspect
		} else {
			s.con = -1
		}
	}
	s.cons = math.Sqrt(math.Pow(1+p.E, 1+p.E) * math.Pow(1-p.E, 1-p.E))
	if s.k0 == 1 && given(p.LatTS) && math.Abs(s.coslat0) <= epsln &&
		math.Abs(math.Cos(p.LatTS)) > epsln {
		// Polar aspect with a latitude of true scale away from the pole.
		s.k0 = 0.5 * s.cons * msfnz(math.Sin(p.LatTS), math.Cos(p.LatTS), p.Es) /
			tsfnz(p.E, s.con*p.LatTS, s.con*math.Sin(p.LatTS))
	}
	s.ms1 = msfnz(s.sinlat0, s.coslat0, p.Es)
	s.x0c = 2*math.Atan(ssfn(p.Lat0, s.sinlat0, p.E)) - halfPi
	s.cosX0 = math.Cos(s.x0c)
	s.sinX0 = math.Sin(s.x0c)
	return nil
}

func (s *stereProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := s.ready(); err != nil {
		return 0, 0, err
	}
	p := s.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	sinlat := math.Sin(phi)
	coslat := math.Cos(phi)
	dlon := p.adjustLon(lam - p.Long0)

	// The point antipodal to the origin has no image.
	if math.Abs(math.Abs(lam-p.Long0)-math.Pi) <= epsln && math.Abs(phi+p.Lat0) <= epsln {
		return math.NaN(), math.NaN(), ErrOutOfDomain
	}

	if p.Sphere {
		denom := 1 + s.sinlat0*sinlat + s.coslat0*coslat*math.Cos(dlon)
		if math.Abs(denom) <= epsln {
			return math.NaN(), math.NaN(), ErrOutOfDomain
		}
		a := 2 * s.k0 / denom
		x := p.A*a*coslat*math.Sin(dlon) + p.X0
		y := p.A*a*(s.coslat0*sinlat-s.sinlat0*coslat*math.Cos(dlon)) + p.Y0
		return x, y, nil
	}

	chi := 2*math.Atan(ssfn(phi, sinlat, p.E)) - halfPi
	cosChi := math.Cos(chi)
	sinChi := math.Sin(chi)
	var x, y float64
	if math.Abs(s.coslat0) <= epsln {
		// Polar aspect.
		ts := tsfnz(p.E, phi*s.con, s.con*sinlat)
		rh := 2 * p.A * s.k0 * ts / s.cons
		x = p.X0 + rh*math.Sin(dlon)
		y = p.Y0 - s.con*rh*math.Cos(dlon)
		return x, y, nil
	} else if math.Abs(s.sinlat0) < epsln {
		// Equatorial aspect.
		a := 2 * p.A * s.k0 / (1 + cosChi*math.Cos(dlon))
		y = p.Y0 + a*sinChi
		x = p.X0 + a*cosChi*math.Sin(dlon)
		return x, y, nil
	}
	// Oblique aspect.
	a := 2 * p.A * s.k0 * s.ms1 /
		(s.cosX0 * (1 + s.sinX0*sinChi + s.cosX0*cosChi*math.Cos(dlon)))
	y = p.Y0 + a*(s.cosX0*sinChi-s.sinX0*cosChi*math.Cos(dlon))
	x = p.X0 + a*cosChi*math.Sin(dlon)
	return x, y, nil
}

func (s *stereProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := s.ready(); err != nil {
		return 0, 0, err
	}
	p := s.p
	x -= p.X0
	y -= p.Y0
	rh := math.Sqrt(x*x + y*y)

	if p.Sphere {
		c := 2 * math.Atan(rh/(2*p.A*s.k0))
		if rh <= epsln {
			return p.Long0, p.Lat0, nil
		}
		phi := math.Asin(math.Cos(c)*s.sinlat0 + y*math.Sin(c)*s.coslat0/rh)
		var lam float64
		if math.Abs(s.coslat0) < epsln {
			if p.Lat0 > 0 {
				lam = p.adjustLon(p.Long0 + math.Atan2(x, -y))
			} else {
				lam = p.adjustLon(p.Long0 + math.Atan2(x, y))
			}
		} else {
			lam = p.adjustLon(p.Long0 +
				math.Atan2(x*math.Sin(c), rh*s.coslat0*math.Cos(c)-y*s.sinlat0*math.Sin(c)))
		}
		return lam, phi, nil
	}

	if math.Abs(s.coslat0) <= epsln {
		// Polar aspect.
		if rh <= epsln {
			return p.Long0, p.Lat0, nil
		}
		x *= s.con
		y *= s.con
		ts := rh * s.cons / (2 * p.A * s.k0)
		phi, err := phi2z(p.E, ts)
		if err != nil {
			return math.NaN(), math.NaN(), err
		}
		phi *= s.con
		lam := s.con * p.adjustLon(s.con*p.Long0+math.Atan2(x, -y))
		return lam, phi, nil
	}

	ce := 2 * math.Atan(rh*s.cosX0/(2*p.A*s.k0*s.ms1))
	lam := p.Long0
	var chi float64
	if rh <= epsln {
		chi = s.x0c
	} else {
		chi = math.Asin(math.Cos(ce)*s.sinX0 + y*math.Sin(ce)*s.cosX0/rh)
		lam = p.adjustLon(p.Long0 +
			math.Atan2(x*math.Sin(ce), rh*s.cosX0*math.Cos(ce)-y*s.sinX0*math.Sin(ce)))
	}
	phi, err := phi2z(p.E, math.Tan(0.5*(halfPi+chi)))
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	return lam, -phi, nil
}
