package proj

import "math"

/* Azimuthal equidistant. Spheres and polar aspects use closed forms; the
 * oblique ellipsoid goes through the geodesic expansion about the origin
 * (Vincenty's series, with its G/H auxiliaries) in both directions. */

type aeqdProjection struct {
	baseProjection
	sinP12, cosP12 float64
	e0, e1, e2, e3 float64
	ml0, mlp       float64
}

func (a *aeqdProjection) Init(p *ProjectionParams) error {
	a.bind(p)
	a.sinP12 = math.Sin(p.Lat0)
	a.cosP12 = math.Cos(p.Lat0)
	if !p.Sphere {
		a.e0 = e0fn(p.Es)
		a.e1 = e1fn(p.Es)
		a.e2 = e2fn(p.Es)
		a.e3 = e3fn(p.Es)
		a.ml0 = p.A * mlfn(a.e0, a.e1, a.e2, a.e3, p.Lat0)
		a.mlp = p.A * mlfn(a.e0, a.e1, a.e2, a.e3, halfPi)
	}
	return nil
}

func (a *aeqdProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := a.ready(); err != nil {
		return 0, 0, err
	}
	p := a.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	dlon := p.adjustLon(lam - p.Long0)
	sinphi := math.Sin(phi)
	cosphi := math.Cos(phi)

	if p.Sphere {
		switch {
		case math.Abs(a.sinP12-1) <= epsln:
			// North polar aspect.
			x := p.X0 + p.A*(halfPi-phi)*math.Sin(dlon)
			y := p.Y0 - p.A*(halfPi-phi)*math.Cos(dlon)
			return x, y, nil
		case math.Abs(a.sinP12+1) <= epsln:
			// South polar aspect.
			x := p.X0 + p.A*(halfPi+phi)*math.Sin(dlon)
			y := p.Y0 + p.A*(halfPi+phi)*math.Cos(dlon)
			return x, y, nil
		default:
			cosC := a.sinP12*sinphi + a.cosP12*cosphi*math.Cos(dlon)
			c := math.Acos(cosC)
			kp := 1.0
			if math.Abs(c) >= epsln {
				kp = c / math.Sin(c)
			}
			x := p.X0 + p.A*kp*cosphi*math.Sin(dlon)
			y := p.Y0 + p.A*kp*(a.cosP12*sinphi-a.sinP12*cosphi*math.Cos(dlon))
			return x, y, nil
		}
	}

	switch {
	case math.Abs(a.sinP12-1) <= epsln:
		ml := p.A * mlfn(a.e0, a.e1, a.e2, a.e3, phi)
		x := p.X0 + (a.mlp-ml)*math.Sin(dlon)
		y := p.Y0 - (a.mlp-ml)*math.Cos(dlon)
		return x, y, nil
	case math.Abs(a.sinP12+1) <= epsln:
		ml := p.A * mlfn(a.e0, a.e1, a.e2, a.e3, phi)
		x := p.X0 + (a.mlp+ml)*math.Sin(dlon)
		y := p.Y0 + (a.mlp+ml)*math.Cos(dlon)
		return x, y, nil
	}

	// Oblique ellipsoid: geodesic series about the origin.
	tanphi := sinphi / cosphi
	nl1 := gN(p.A, p.E, a.sinP12)
	nl := gN(p.A, p.E, sinphi)
	psi := math.Atan((1-p.Es)*tanphi + p.Es*nl1*a.sinP12/(nl*cosphi))
	az := math.Atan2(math.Sin(dlon), a.cosP12*math.Tan(psi)-a.sinP12*math.Cos(dlon))
	var s float64
	switch {
	case az == 0:
		s = math.Asin(a.cosP12*math.Sin(psi) - a.sinP12*math.Cos(psi))
	case math.Abs(math.Abs(az)-math.Pi) <= epsln:
		s = -math.Asin(a.cosP12*math.Sin(psi) - a.sinP12*math.Cos(psi))
	default:
		s = math.Asin(math.Sin(dlon) * math.Cos(psi) / math.Sin(az))
	}
	g := p.E * a.sinP12 / math.Sqrt(1-p.Es)
	h := p.E * a.cosP12 * math.Cos(az) / math.Sqrt(1-p.Es)
	gh := g * h
	hs := h * h
	s2 := s * s
	s3 := s2 * s
	s4 := s3 * s
	s5 := s4 * s
	c := nl1 * s * (1 - s2*hs*(1-hs)/6 +
		s3/8*gh*(1-2*hs) +
		s4/120*(hs*(4-7*hs)-3*g*g*(1-7*hs)) -
		s5/48*gh)
	x := p.X0 + c*math.Sin(az)
	y := p.Y0 + c*math.Cos(az)
	return x, y, nil
}

func (a *aeqdProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := a.ready(); err != nil {
		return 0, 0, err
	}
	p := a.p
	x -= p.X0
	y -= p.Y0

	if p.Sphere {
		rh := math.Sqrt(x*x + y*y)
		if rh > 2*halfPi*p.A {
			return math.NaN(), math.NaN(), ErrOutOfDomain
		}
		z := rh / p.A
		sinz := math.Sin(z)
		cosz := math.Cos(z)
		lam := p.Long0
		var phi float64
		if math.Abs(rh) <= epsln {
			return lam, p.Lat0, nil
		}
		phi = asinz(cosz*a.sinP12 + y*sinz*a.cosP12/rh)
		con := math.Abs(p.Lat0) - halfPi
		if math.Abs(con) <= epsln {
			if p.Lat0 >= 0 {
				lam = p.adjustLon(p.Long0 + math.Atan2(x, -y))
			} else {
				lam = p.adjustLon(p.Long0 - math.Atan2(-x, y))
			}
			return lam, phi, nil
		}
		lam = p.adjustLon(p.Long0 +
			math.Atan2(x*sinz, rh*a.cosP12*cosz-y*a.sinP12*sinz))
		return lam, phi, nil
	}

	switch {
	case math.Abs(a.sinP12-1) <= epsln:
		rh := math.Sqrt(x*x + y*y)
		ml := a.mlp - rh
		phi, err := imlfn(ml/p.A, a.e0, a.e1, a.e2, a.e3)
		if err != nil {
			return math.NaN(), math.NaN(), err
		}
		lam := p.adjustLon(p.Long0 + math.Atan2(x, -y))
		return lam, phi, nil
	case math.Abs(a.sinP12+1) <= epsln:
		rh := math.Sqrt(x*x + y*y)
		ml := rh - a.mlp
		phi, err := imlfn(ml/p.A, a.e0, a.e1, a.e2, a.e3)
		if err != nil {
			return math.NaN(), math.NaN(), err
		}
		lam := p.adjustLon(p.Long0 + math.Atan2(x, y))
		return lam, phi, nil
	}

	c := math.Sqrt(x*x + y*y)
	az := math.Atan2(x, y)
	cosAz := math.Cos(az)
	n1 := gN(p.A, p.E, a.sinP12)
	aa := -p.Es * a.cosP12 * a.cosP12 * cosAz * cosAz / (1 - p.Es)
	bb := 3 * p.Es * (1 - aa) * a.sinP12 * a.cosP12 * cosAz / (1 - p.Es)
	d := c / n1
	ee := d - aa*(1+aa)*d*d*d/6 - bb*(1+3*aa)*d*d*d*d/24
	f := 1 - aa*ee*ee/2 - bb*ee*ee*ee/6
	psi := math.Asin(a.sinP12*math.Cos(ee) + a.cosP12*math.Sin(ee)*cosAz)
	lam := p.adjustLon(p.Long0 + math.Asin(math.Sin(az)*math.Sin(ee)/math.Cos(psi)))
	sinpsi := math.Sin(psi)
	phi := math.Atan2((1-p.Es*f*a.sinP12/sinpsi)*math.Tan(psi), 1-p.Es)
	return lam, phi, nil
}
