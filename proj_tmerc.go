package proj

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Transverse Mercator.                                                                           */
/*                                                                                                */
/* The default ellipsoidal path is the Krüger n-series (Poder/Engsager): two complex Clenshaw     */
/* summations over six coefficients derived from the third flattening. +approx selects the        */
/* classic Snyder series instead; spheres always take the Snyder spherical branch. The Krüger     */
/* domain guard is |ξ| ≤ 2.6234 (about 81.7° of arc from the central meridian).                   */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

const etmercDomain = 2.623395162778

type tmercProjection struct {
	baseProjection
	// forceExact marks the etmerc spelling, which refuses spheres rather
	// than falling back to the Snyder branch.
	forceExact bool
	approx     bool

	// Snyder branch
	e0, e1, e2, e3 float64
	ml0            float64

	// Krüger branch
	cgb, cbg [6]float64
	utg, gtu [6]float64
	qn, zb   float64
}

func (t *tmercProjection) Init(p *ProjectionParams) error {
	t.bind(p)
	t.approx = p.Approx || p.Sphere
	if t.forceExact && p.Sphere {
		return ErrUnsupported
	}
	if t.forceExact {
		t.approx = false
	}
	if t.approx {
		t.e0 = e0fn(p.Es)
		t.e1 = e1fn(p.Es)
		t.e2 = e2fn(p.Es)
		t.e3 = e3fn(p.Es)
		t.ml0 = p.A * mlfn(t.e0, t.e1, t.e2, t.e3, p.Lat0)
		return nil
	}
	t.initKruger(p)
	return nil
}

func (t *tmercProjection) initKruger(p *ProjectionParams) {
	f := p.Es / (1 + math.Sqrt(1-p.Es))
	n := f / (2 - f)
	np := n

	t.cgb[0] = n * (2 + n*(-2.0/3 + n*(-2 + n*(116.0/45 + n*(26.0/45 + n*(-2854.0/675))))))
	t.cbg[0] = n * (-2 + n*(2.0/3 + n*(4.0/3 + n*(-82.0/45 + n*(32.0/45 + n*(4642.0/4725))))))
	np *= n
	t.cgb[1] = np * (7.0/3 + n*(-8.0/5 + n*(-227.0/45 + n*(2704.0/315 + n*(2323.0/945)))))
	t.cbg[1] = np * (5.0/3 + n*(-16.0/15 + n*(-13.0/9 + n*(904.0/315 + n*(-1522.0/945)))))
	np *= n
	t.cgb[2] = np * (56.0/15 + n*(-136.0/35 + n*(-1262.0/105 + n*(73814.0/2835))))
	t.cbg[2] = np * (-26.0/15 + n*(34.0/21 + n*(8.0/5 + n*(-12686.0/2835))))
	np *= n
	t.cgb[3] = np * (4279.0/630 + n*(-332.0/35 + n*(-399572.0/14175)))
	t.cbg[3] = np * (1237.0/630 + n*(-12.0/5 + n*(-24832.0/14175)))
	np *= n
	t.cgb[4] = np * (4174.0/315 + n*(-144838.0/6237))
	t.cbg[4] = np * (-734.0/315 + n*(109598.0/31185))
	np *= n
	t.cgb[5] = np * (601676.0 / 22275)
	t.cbg[5] = np * (444337.0 / 155925)

	np = n * n
	t.qn = p.K0 / (1 + n) * (1 + np*(1.0/4+np*(1.0/64+np/256)))

	t.utg[0] = n * (-0.5 + n*(2.0/3 + n*(-37.0/96 + n*(1.0/360 + n*(81.0/512 + n*(-96199.0/604800))))))
	t.gtu[0] = n * (0.5 + n*(-2.0/3 + n*(5.0/16 + n*(41.0/180 + n*(-127.0/288 + n*(7891.0/37800))))))
	t.utg[1] = np * (-1.0/48 + n*(-1.0/15 + n*(437.0/1440 + n*(-46.0/105 + n*(1118711.0/3870720)))))
	t.gtu[1] = np * (13.0/48 + n*(-3.0/5 + n*(557.0/1440 + n*(281.0/630 + n*(-1983433.0/1935360)))))
	np *= n
	t.utg[2] = np * (-17.0/480 + n*(37.0/840 + n*(209.0/4480 + n*(-5569.0/90720))))
	t.gtu[2] = np * (61.0/240 + n*(-103.0/140 + n*(15061.0/26880 + n*(167603.0/181440))))
	np *= n
	t.utg[3] = np * (-4397.0/161280 + n*(11.0/504 + n*(830251.0/7257600)))
	t.gtu[3] = np * (49561.0/161280 + n*(-179.0/168 + n*(6601661.0/7257600)))
	np *= n
	t.utg[4] = np * (-4583.0/161280 + n*(108847.0/3991680))
	t.gtu[4] = np * (34729.0/80640 + n*(-3418889.0/1995840))
	np *= n
	t.utg[5] = np * (-20648693.0 / 638668800)
	t.gtu[5] = np * (212378941.0 / 319334400)

	z := gatg(t.cbg[:], p.Lat0)
	t.zb = -t.qn * (z + clens(t.gtu[:], 2*z))
}

func (t *tmercProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := t.ready(); err != nil {
		return 0, 0, err
	}
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	if t.approx {
		return t.forwardSnyder(lam, phi)
	}
	return t.forwardKruger(lam, phi)
}

func (t *tmercProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := t.ready(); err != nil {
		return 0, 0, err
	}
	if t.approx {
		return t.inverseSnyder(x, y)
	}
	return t.inverseKruger(x, y)
}

func (t *tmercProjection) forwardKruger(lam, phi float64) (float64, float64, error) {
	p := t.p
	ce := p.adjustLon(lam - p.Long0)
	cn := gatg(t.cbg[:], phi)
	sinCn := math.Sin(cn)
	cosCn := math.Cos(cn)
	sinCe := math.Sin(ce)
	cosCe := math.Cos(ce)

	cn = math.Atan2(sinCn, cosCe*cosCn)
	ce = math.Atan2(sinCe*cosCn, hypot(sinCn, cosCn*cosCe))
	ce = asinhy(math.Tan(ce))

	dCn, dCe := clensCmplx(t.gtu[:], 2*cn, 2*ce)
	cn += dCn
	ce += dCe

	if math.Abs(ce) > etmercDomain {
		return math.NaN(), math.NaN(), ErrOutOfDomain
	}
	x := p.A*(t.qn*ce) + p.X0
	y := p.A*(t.qn*cn+t.zb) + p.Y0
	return x, y, nil
}

func (t *tmercProjection) inverseKruger(x, y float64) (float64, float64, error) {
	p := t.p
	ce := (x - p.X0) / p.A
	cn := (y - p.Y0) / p.A
	cn = (cn - t.zb) / t.qn
	ce /= t.qn

	if math.Abs(ce) > etmercDomain {
		return math.NaN(), math.NaN(), ErrOutOfDomain
	}
	dCn, dCe := clensCmplx(t.utg[:], 2*cn, 2*ce)
	cn += dCn
	ce += dCe
	ce = math.Atan(math.Sinh(ce))

	sinCn := math.Sin(cn)
	cosCn := math.Cos(cn)
	sinCe := math.Sin(ce)
	cosCe := math.Cos(ce)

	cn = math.Atan2(sinCn*cosCe, hypot(sinCe, cosCe*cosCn))
	ce = math.Atan2(sinCe, cosCe*cosCn)

	lam := p.adjustLon(ce + p.Long0)
	phi := gatg(t.cgb[:], cn)
	return lam, phi, nil
}

func (t *tmercProjection) forwardSnyder(lam, phi float64) (float64, float64, error) {
	p := t.p
	deltaLon := p.adjustLon(lam - p.Long0)
	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)

	if p.Sphere {
		b := cosPhi * math.Sin(deltaLon)
		if math.Abs(math.Abs(b)-1) < epsln {
			return math.NaN(), math.NaN(), ErrOutOfDomain
		}
		x := 0.5*p.A*p.K0*math.Log((1+b)/(1-b)) + p.X0
		con := math.Acos(cosPhi * math.Cos(deltaLon) / math.Sqrt(1-b*b))
		if phi < 0 {
			con = -con
		}
		y := p.A*p.K0*(con-p.Lat0) + p.Y0
		return x, y, nil
	}

	al := cosPhi * deltaLon
	als := al * al
	c := p.Ep2 * cosPhi * cosPhi
	tq := math.Tan(phi)
	tt := tq * tq
	con := 1 - p.Es*sinPhi*sinPhi
	n := p.A / math.Sqrt(con)
	ml := p.A * mlfn(t.e0, t.e1, t.e2, t.e3, phi)

	x := p.K0*n*al*(1+als/6*(1-tt+c+als/20*(5-18*tt+tt*tt+72*c-58*p.Ep2))) + p.X0
	y := p.K0*(ml-t.ml0+n*tq*(als*(0.5+als/24*(5-tt+9*c+4*c*c+als/30*(61-58*tt+tt*tt+600*c-330*p.Ep2))))) + p.Y0
	return x, y, nil
}

func (t *tmercProjection) inverseSnyder(x, y float64) (float64, float64, error) {
	p := t.p
	const maxIter = 6

	if p.Sphere {
		f := math.Exp((x - p.X0) / (p.A * p.K0))
		g := 0.5 * (f - 1/f)
		temp := p.Lat0 + (y-p.Y0)/(p.A*p.K0)
		h := math.Cos(temp)
		con := math.Sqrt((1 - h*h) / (1 + g*g))
		phi := asinz(con)
		if temp < 0 {
			phi = -phi
		}
		var lam float64
		if g == 0 && h == 0 {
			lam = p.Long0
		} else {
			lam = p.adjustLon(math.Atan2(g, h) + p.Long0)
		}
		return lam, phi, nil
	}

	x -= p.X0
	y -= p.Y0
	con := (t.ml0 + y/p.K0) / p.A
	phi := con
	i := 0
	for {
		deltaPhi := (con+t.e1*math.Sin(2*phi)-t.e2*math.Sin(4*phi)+t.e3*math.Sin(6*phi))/t.e0 - phi
		phi += deltaPhi
		if math.Abs(deltaPhi) <= epsln {
			break
		}
		if i >= maxIter {
			return math.NaN(), math.NaN(), notConverged("tmerc inverse")
		}
		i++
	}
	if math.Abs(phi) < halfPi {
		sinPhi := math.Sin(phi)
		cosPhi := math.Cos(phi)
		tanPhi := math.Tan(phi)
		c := p.Ep2 * cosPhi * cosPhi
		cs := c * c
		tt := tanPhi * tanPhi
		ts := tt * tt
		con = 1 - p.Es*sinPhi*sinPhi
		n := p.A / math.Sqrt(con)
		r := n * (1 - p.Es) / con
		d := x / (n * p.K0)
		ds := d * d

		lat := phi - (n * tanPhi * ds / r) *
			(0.5 - ds/24*(5+3*tt+10*c-4*cs-9*p.Ep2-ds/30*(61+90*tt+298*c+45*ts-252*p.Ep2-3*cs)))
		lon := p.adjustLon(p.Long0 +
			d*(1-ds/6*(1+2*tt+c-ds/20*(5-2*c+28*tt-3*cs+8*p.Ep2+24*ts)))/cosPhi)
		return lon, lat, nil
	}
	return p.Long0, math.Copysign(halfPi, y), nil
}
