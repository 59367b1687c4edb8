package proj

import "math"

/* Equidistant conic, built on the meridional-distance series. */

type eqdcProjection struct {
	baseProjection
	e0, e1, e2, e3 float64
	ns, g, rh      float64
}

func (e *eqdcProjection) Init(p *ProjectionParams) error {
	e.bind(p)
	lat1 := or(p.Lat1, 0)
	lat2 := or(p.Lat2, lat1)

	e.e0 = e0fn(p.Es)
	e.e1 = e1fn(p.Es)
	e.e2 = e2fn(p.Es)
	e.e3 = e3fn(p.Es)

	sinPhi := math.Sin(lat1)
	cosPhi := math.Cos(lat1)
	ms1 := msfnz(sinPhi, cosPhi, p.Es)
	ml1 := mlfn(e.e0, e.e1, e.e2, e.e3, lat1)

	if math.Abs(lat1-lat2) < epsln {
		e.ns = sinPhi
	} else {
		sinPhi = math.Sin(lat2)
		cosPhi = math.Cos(lat2)
		ms2 := msfnz(sinPhi, cosPhi, p.Es)
		ml2 := mlfn(e.e0, e.e1, e.e2, e.e3, lat2)
		e.ns = (ms1 - ms2) / (ml2 - ml1)
	}
	e.g = ml1 + ms1/e.ns
	ml0 := mlfn(e.e0, e.e1, e.e2, e.e3, p.Lat0)
	e.rh = p.A * (e.g - ml0)
	return nil
}

func (e *eqdcProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := e.ready(); err != nil {
		return 0, 0, err
	}
	p := e.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	ml := mlfn(e.e0, e.e1, e.e2, e.e3, phi)
	rh1 := p.A * (e.g - ml)
	theta := e.ns * p.adjustLon(lam-p.Long0)
	x := p.X0 + rh1*math.Sin(theta)
	y := p.Y0 + e.rh - rh1*math.Cos(theta)
	return x, y, nil
}

func (e *eqdcProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := e.ready(); err != nil {
		return 0, 0, err
	}
	p := e.p
	x -= p.X0
	y = e.rh - (y - p.Y0)

	var rh1, con float64
	if e.ns >= 0 {
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
	ml := e.g - rh1/p.A
	phi, err := imlfn(ml, e.e0, e.e1, e.e2, e.e3)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	lam := p.adjustLon(p.Long0 + theta/e.ns)
	return lam, phi, nil
}
