package proj

import (
	"math"

	"github.com/pkg/errors"
)

/* Lambert conformal conic, one or two standard parallels. Mirror-image
 * parallels (lat1 = -lat2) degenerate to a cylinder and are rejected. */

type lccProjection struct {
	baseProjection
	phi1, phi2 float64
	ns, f0, rh float64
	ellips     bool
}

func (l *lccProjection) Init(p *ProjectionParams) error {
	l.bind(p)
	l.phi1 = or(p.Lat1, p.Lat0)
	if given(p.Lat2) {
		l.phi2 = p.Lat2
	} else {
		l.phi2 = l.phi1
		if !given(p.Lat1) {
			l.phi1 = p.Lat0
		}
	}
	if math.Abs(l.phi1+l.phi2) < epsln {
		return errors.Wrap(ErrBadSyntax, "lcc standard parallels are mirror images")
	}
	l.ellips = !p.Sphere

	sin1 := math.Sin(l.phi1)
	cos1 := math.Cos(l.phi1)
	if l.ellips {
		ms1 := msfnz(sin1, cos1, p.Es)
		ts1 := tsfnz(p.E, l.phi1, sin1)
		ts0 := tsfnz(p.E, p.Lat0, math.Sin(p.Lat0))
		if math.Abs(l.phi1-l.phi2) > epsln {
			sin2 := math.Sin(l.phi2)
			ms2 := msfnz(sin2, math.Cos(l.phi2), p.Es)
			ts2 := tsfnz(p.E, l.phi2, sin2)
			l.ns = math.Log(ms1/ms2) / math.Log(ts1/ts2)
		} else {
			l.ns = sin1
		}
		l.f0 = ms1 / (l.ns * math.Pow(ts1, l.ns))
		l.rh = p.A * l.f0 * math.Pow(ts0, l.ns)
	} else {
		if math.Abs(l.phi1-l.phi2) > epsln {
			l.ns = math.Log(cos1/math.Cos(l.phi2)) /
				math.Log(math.Tan(fortPi+0.5*l.phi2)/math.Tan(fortPi+0.5*l.phi1))
		} else {
			l.ns = sin1
		}
		l.f0 = cos1 * math.Pow(math.Tan(fortPi+0.5*l.phi1), l.ns) / l.ns
		l.rh = p.A * l.f0 * math.Pow(math.Tan(fortPi+0.5*p.Lat0), -l.ns)
	}
	return nil
}

func (l *lccProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := l.ready(); err != nil {
		return 0, 0, err
	}
	p := l.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	var rh1 float64
	con := math.Abs(math.Abs(phi) - halfPi)
	if con > epsln {
		if l.ellips {
			ts := tsfnz(p.E, phi, math.Sin(phi))
			rh1 = p.A * l.f0 * math.Pow(ts, l.ns)
		} else {
			rh1 = p.A * l.f0 * math.Pow(math.Tan(fortPi+0.5*phi), -l.ns)
		}
	} else {
		// The pole on the far side of the cone's apex is unreachable.
		if phi*l.ns <= 0 {
			return math.NaN(), math.NaN(), ErrOutOfDomain
		}
		rh1 = 0
	}
	theta := l.ns * p.adjustLon(lam-p.Long0)
	x := p.K0*(rh1*math.Sin(theta)) + p.X0
	y := p.K0*(l.rh-rh1*math.Cos(theta)) + p.Y0
	return x, y, nil
}

func (l *lccProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := l.ready(); err != nil {
		return 0, 0, err
	}
	p := l.p
	x = (x - p.X0) / p.K0
	y = l.rh - (y-p.Y0)/p.K0

	var rh1, con float64
	if l.ns > 0 {
		rh1 = math.Sqrt(x*x + y*y)
		con = 1
	} else {
		rh1 = -math.Sqrt(x*x + y*y)
		con = -1
	}
	theta := 0.0
	if rh1 != 0 {
		theta = math.Atan2(con*x, con*y)
	}

	var phi float64
	if rh1 != 0 || l.ns > 0 {
		if l.ellips {
			ts := math.Pow(rh1/(p.A*l.f0), 1/l.ns)
			var err error
			phi, err = phi2z(p.E, ts)
			if err != nil {
				return math.NaN(), math.NaN(), err
			}
		} else {
			phi = 2*math.Atan(math.Pow(p.A*l.f0/rh1, 1/l.ns)) - halfPi
		}
	} else {
		phi = -halfPi
	}
	lam := p.adjustLon(theta/l.ns + p.Long0)
	return lam, phi, nil
}
