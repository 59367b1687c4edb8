package proj

import "math"

/* Lambert azimuthal equal-area, with pole/equator/oblique aspects and the
 * authalic-latitude series for the ellipsoid. */

type laeaMode int

const (
	laeaNPole laeaMode = iota
	laeaSPole
	laeaEquit
	laeaObliq
)

// authalic latitude series coefficients (PROJ pj_authset)
const (
	authP00 = 0.33333333333333333333
	authP01 = 0.17222222222222222222
	authP02 = 0.10257936507936507936
	authP10 = 0.06388888888888888888
	authP11 = 0.06640211640211640211
	authP20 = 0.01641501294219154443
)

func authset(es float64) [3]float64 {
	var apa [3]float64
	apa[0] = es * authP00
	t := es * es
	apa[0] += t * authP01
	apa[1] = t * authP10
	t *= es
	apa[0] += t * authP02
	apa[1] += t * authP11
	apa[2] = t * authP20
	return apa
}

func authlat(beta float64, apa [3]float64) float64 {
	t := beta + beta
	return beta + apa[0]*math.Sin(t) + apa[1]*math.Sin(t+t) + apa[2]*math.Sin(3*t)
}

type laeaProjection struct {
	baseProjection
	mode             laeaMode
	qp, mmf          float64
	apa              [3]float64
	sinb1, cosb1     float64
	rq, dd, xmf, ymf float64
	sinph0, cosph0   float64
}

func (l *laeaProjection) Init(p *ProjectionParams) error {
	l.bind(p)
	t := math.Abs(p.Lat0)
	if math.Abs(t-halfPi) < epsln {
		if p.Lat0 < 0 {
			l.mode = laeaSPole
		} else {
			l.mode = laeaNPole
		}
	} else if math.Abs(t) < epsln {
		l.mode = laeaEquit
	} else {
		l.mode = laeaObliq
	}
	if p.Es > 0 {
		l.qp = qsfnz(p.E, 1)
		l.mmf = 0.5 / (1 - p.Es)
		l.apa = authset(p.Es)
		switch l.mode {
		case laeaNPole, laeaSPole:
			l.dd = 1
		case laeaEquit:
			l.rq = math.Sqrt(0.5 * l.qp)
			l.dd = 1 / l.rq
			l.xmf = 1
			l.ymf = 0.5 * l.qp * l.mmf
		case laeaObliq:
			l.rq = math.Sqrt(0.5 * l.qp)
			sinphi := math.Sin(p.Lat0)
			l.sinb1 = qsfnz(p.E, sinphi) / l.qp
			l.cosb1 = math.Sqrt(1 - l.sinb1*l.sinb1)
			l.dd = math.Cos(p.Lat0) /
				(math.Sqrt(1-p.Es*sinphi*sinphi) * l.rq * l.cosb1)
			l.ymf = l.rq / l.dd
			l.xmf = l.rq * l.dd
		}
	} else if l.mode == laeaObliq {
		l.sinph0 = math.Sin(p.Lat0)
		l.cosph0 = math.Cos(p.Lat0)
	}
	return nil
}

func (l *laeaProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := l.ready(); err != nil {
		return 0, 0, err
	}
	p := l.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	dlon := p.adjustLon(lam - p.Long0)
	if p.Sphere {
		return l.forwardSphere(dlon, phi)
	}

	sinb, cosb, b := 0.0, 0.0, 0.0
	sinphi := math.Sin(phi)
	q := qsfnz(p.E, sinphi)
	if l.mode == laeaObliq || l.mode == laeaEquit {
		sinb = q / l.qp
		cosb = math.Sqrt(1 - sinb*sinb)
	}
	switch l.mode {
	case laeaObliq:
		b = 1 + l.sinb1*sinb + l.cosb1*cosb*math.Cos(dlon)
	case laeaEquit:
		b = 1 + cosb*math.Cos(dlon)
	case laeaNPole:
		b = halfPi + phi
		q = l.qp - q
	case laeaSPole:
		b = phi - halfPi
		q = l.qp + q
	}
	if math.Abs(b) < epsln {
		return math.NaN(), math.NaN(), ErrOutOfDomain
	}

	var x, y float64
	switch l.mode {
	case laeaObliq, laeaEquit:
		b = math.Sqrt(2 / b)
		if l.mode == laeaObliq {
			y = l.ymf * b * (l.cosb1*sinb - l.sinb1*cosb*math.Cos(dlon))
		} else {
			y = b * sinb * l.ymf
		}
		x = l.xmf * b * cosb * math.Sin(dlon)
	case laeaNPole, laeaSPole:
		if q >= 0 {
			b = math.Sqrt(q)
			x = b * math.Sin(dlon)
			if l.mode == laeaSPole {
				y = b * math.Cos(dlon)
			} else {
				y = -b * math.Cos(dlon)
			}
		}
	}
	return p.A*x + p.X0, p.A*y + p.Y0, nil
}

func (l *laeaProjection) forwardSphere(dlon, phi float64) (float64, float64, error) {
	p := l.p
	coslam := math.Cos(dlon)
	sinlam := math.Sin(dlon)
	sinphi := math.Sin(phi)
	cosphi := math.Cos(phi)

	var x, y float64
	switch l.mode {
	case laeaEquit, laeaObliq:
		if l.mode == laeaEquit {
			y = 1 + cosphi*coslam
		} else {
			y = 1 + l.sinph0*sinphi + l.cosph0*cosphi*coslam
		}
		if y <= epsln {
			return math.NaN(), math.NaN(), ErrOutOfDomain
		}
		y = math.Sqrt(2 / y)
		x = y * cosphi * sinlam
		if l.mode == laeaObliq {
			y *= l.cosph0*sinphi - l.sinph0*cosphi*coslam
		} else {
			y *= sinphi
		}
	case laeaNPole, laeaSPole:
		if l.mode == laeaNPole {
			coslam = -coslam
		}
		if math.Abs(phi+l.p.Lat0) < epsln {
			return math.NaN(), math.NaN(), ErrOutOfDomain
		}
		y = fortPi - phi*0.5
		if l.mode == laeaSPole {
			y = 2 * math.Cos(y)
		} else {
			y = 2 * math.Sin(y)
		}
		x = y * sinlam
		y *= coslam
	}
	return p.A*x + p.X0, p.A*y + p.Y0, nil
}

func (l *laeaProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := l.ready(); err != nil {
		return 0, 0, err
	}
	p := l.p
	x = (x - p.X0) / p.A
	y = (y - p.Y0) / p.A
	if p.Sphere {
		return l.inverseSphere(x, y)
	}

	var lam, ab float64
	switch l.mode {
	case laeaEquit, laeaObliq:
		x /= l.dd
		y *= l.dd
		rho := math.Sqrt(x*x + y*y)
		if rho < epsln {
			return p.Long0, p.Lat0, nil
		}
		ce := 2 * math.Asin(0.5*rho/l.rq)
		cCe := math.Cos(ce)
		sCe := math.Sin(ce)
		x *= sCe
		if l.mode == laeaObliq {
			ab = cCe*l.sinb1 + y*sCe*l.cosb1/rho
			y = rho*l.cosb1*cCe - y*l.sinb1*sCe
		} else {
			ab = y * sCe / rho
			y = rho * cCe
		}
	case laeaNPole, laeaSPole:
		if l.mode == laeaNPole {
			y = -y
		}
		q := x*x + y*y
		if q == 0 {
			return p.Long0, p.Lat0, nil
		}
		ab = 1 - q/l.qp
		if l.mode == laeaSPole {
			ab = -ab
		}
	}
	lam = math.Atan2(x, y)
	phi := authlat(math.Asin(ab), l.apa)
	return p.adjustLon(lam + p.Long0), phi, nil
}

func (l *laeaProjection) inverseSphere(x, y float64) (float64, float64, error) {
	p := l.p
	rh := math.Sqrt(x*x + y*y)
	phi := rh * 0.5
	if phi > 1 {
		return math.NaN(), math.NaN(), ErrOutOfDomain
	}
	phi = 2 * math.Asin(phi)
	var lam float64
	switch l.mode {
	case laeaEquit:
		sinz := math.Sin(phi)
		cosz := math.Cos(phi)
		if math.Abs(rh) <= epsln {
			phi = 0
		} else {
			phi = math.Asin(y * sinz / rh)
		}
		x *= sinz
		y = cosz * rh
	case laeaObliq:
		sinz := math.Sin(phi)
		cosz := math.Cos(phi)
		if math.Abs(rh) <= epsln {
			phi = p.Lat0
		} else {
			phi = math.Asin(cosz*l.sinph0 + y*sinz*l.cosph0/rh)
		}
		x *= sinz * l.cosph0
		y = (cosz - math.Sin(phi)*l.sinph0) * rh
	case laeaNPole:
		phi = halfPi - phi
		y = -y
	case laeaSPole:
		phi -= halfPi
	}
	if y == 0 && (l.mode == laeaEquit || l.mode == laeaObliq) {
		lam = 0
	} else {
		lam = math.Atan2(x, y)
	}
	return p.adjustLon(lam + p.Long0), phi, nil
}
