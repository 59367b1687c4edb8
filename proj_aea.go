package proj

import (
	"math"

	"github.com/pkg/errors"
)

/* Albers equal-area conic. The inverse recovers latitude through the phi1z
 * Newton iteration (25 steps, 1e-7). */

type aeaProjection struct {
	baseProjection
	ns0, c, rh float64
}

func (a *aeaProjection) Init(p *ProjectionParams) error {
	a.bind(p)
	lat1 := or(p.Lat1, 0)
	lat2 := or(p.Lat2, lat1)
	if math.Abs(lat1+lat2) < epsln {
		return errors.Wrap(ErrBadSyntax, "aea standard parallels are mirror images")
	}

	sinPo := math.Sin(lat1)
	cosPo := math.Cos(lat1)
	con := sinPo
	ms1 := msfnz(sinPo, cosPo, p.Es)
	qs1 := qsfnz(p.E, sinPo)

	sinPo = math.Sin(lat2)
	cosPo = math.Cos(lat2)
	ms2 := msfnz(sinPo, cosPo, p.Es)
	qs2 := qsfnz(p.E, sinPo)

	qs0 := qsfnz(p.E, math.Sin(p.Lat0))

	if math.Abs(lat1-lat2) > epsln {
		a.ns0 = (ms1*ms1 - ms2*ms2) / (qs2 - qs1)
	} else {
		a.ns0 = con
	}
	a.c = ms1*ms1 + a.ns0*qs1
	a.rh = p.A * math.Sqrt(a.c-a.ns0*qs0) / a.ns0
	return nil
}

func (a *aeaProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := a.ready(); err != nil {
		return 0, 0, err
	}
	p := a.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	qs := qsfnz(p.E, math.Sin(phi))
	rh1 := p.A * math.Sqrt(a.c-a.ns0*qs) / a.ns0
	theta := a.ns0 * p.adjustLon(lam-p.Long0)
	x := rh1*math.Sin(theta) + p.X0
	y := a.rh - rh1*math.Cos(theta) + p.Y0
	return x, y, nil
}

func (a *aeaProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := a.ready(); err != nil {
		return 0, 0, err
	}
	p := a.p
	x -= p.X0
	y = a.rh - y + p.Y0

	var rh1, con float64
	if a.ns0 >= 0 {
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
	con = rh1 * a.ns0 / p.A

	var phi float64
	if p.Sphere {
		phi = asinz((a.c - con*con) / (2 * a.ns0))
	} else {
		var err error
		phi, err = phi1z(p.E, (a.c-con*con)/a.ns0)
		if err != nil {
			return math.NaN(), math.NaN(), err
		}
	}
	lam := p.adjustLon(theta/a.ns0 + p.Long0)
	return lam, phi, nil
}
