package proj

import (
	"math"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Shared numeric kernel for the projection library.                                              */
/*                                                                                                */
/* These are the classic PROJ auxiliary functions (msfnz, tsfnz, phi2z, qsfnz, the meridional     */
/* distance series and the Clenshaw summations for the Krüger series). Angles are radians         */
/* throughout. Iterative routines carry a fixed cap and tolerance; exhausting the cap reports     */
/* non-convergence rather than looping.                                                           */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

const (
	halfPi = math.Pi / 2
	fortPi = math.Pi / 4
	twoPi  = math.Pi * 2
	// sPi is the slightly-fat π that PROJ uses when deciding whether a
	// longitude still needs wrapping.
	sPi = 3.14159265359

	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi

	secToRad = 4.84813681109535993589914102357e-6

	epsln = 1.0e-10
)

// adjlon wraps a longitude into -π..π.
func adjlon(lon float64) float64 {
	if math.Abs(lon) <= sPi {
		return lon
	}
	lon += math.Pi
	lon -= twoPi * math.Floor(lon/twoPi)
	lon -= math.Pi
	return lon
}

// adjlat clamps a latitude that has strayed marginally past ±π/2.
func adjlat(lat float64) float64 {
	if math.Abs(lat) < halfPi {
		return lat
	}
	return math.Copysign(halfPi, lat)
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// msfnz computes the meridian scale factor m = cosφ/√(1 − es·sin²φ).
func msfnz(sinphi, cosphi, es float64) float64 {
	return cosphi / math.Sqrt(1-es*sinphi*sinphi)
}

// tsfnz computes the isometric latitude function
// t = tan(π/4 − φ/2) / [(1 − e·sinφ)/(1 + e·sinφ)]^(e/2).
func tsfnz(eccent, phi, sinphi float64) float64 {
	con := eccent * sinphi
	com := 0.5 * eccent
	con = math.Pow((1-con)/(1+con), com)
	return math.Tan(0.5*(halfPi-phi)) / con
}

// phi2z inverts tsfnz by fixed-point iteration; 15 steps to 1e-10.
func phi2z(eccent, ts float64) (float64, error) {
	eccnth := 0.5 * eccent
	phi := halfPi - 2*math.Atan(ts)
	for i := 0; i < 15; i++ {
		con := eccent * math.Sin(phi)
		dphi := halfPi - 2*math.Atan(ts*math.Pow((1-con)/(1+con), eccnth)) - phi
		phi += dphi
		if math.Abs(dphi) <= 1e-10 {
			return phi, nil
		}
	}
	return math.NaN(), notConverged("phi2z")
}

// qsfnz computes the q auxiliary used by the equal-area projections.
func qsfnz(eccent, sinphi float64) float64 {
	if eccent > 1e-7 {
		con := eccent * sinphi
		return (1 - eccent*eccent) *
			(sinphi/(1-con*con) - (0.5/eccent)*math.Log((1-con)/(1+con)))
	}
	return 2 * sinphi
}

// iqsfnz inverts qsfnz by Newton iteration; 30 steps to 1e-10.
func iqsfnz(eccent, q float64) (float64, error) {
	temp := 1 - (1-eccent*eccent)/(2*eccent)*math.Log((1-eccent)/(1+eccent))
	if math.Abs(math.Abs(q)-temp) < 1e-6 {
		return math.Copysign(halfPi, q), nil
	}
	phi := math.Asin(0.5 * q)
	oneEs := 1 - eccent*eccent
	for i := 0; i < 30; i++ {
		sinphi := math.Sin(phi)
		cosphi := math.Cos(phi)
		con := eccent * sinphi
		com := 1 - con*con
		dphi := 0.5 * com * com / cosphi *
			(q/oneEs - sinphi/com + 0.5/eccent*math.Log((1-con)/(1+con)))
		phi += dphi
		if math.Abs(dphi) <= 1e-10 {
			return phi, nil
		}
	}
	return math.NaN(), notConverged("iqsfnz")
}

/* Meridional distance series (Snyder 3-21), used by the +approx Transverse
 * Mercator branch and the equidistant projections. */

func e0fn(es float64) float64 {
	return 1 - 0.25*es*(1+es/16*(3+1.25*es))
}

func e1fn(es float64) float64 {
	return 0.375 * es * (1 + 0.25*es*(1+0.46875*es))
}

func e2fn(es float64) float64 {
	return 0.05859375 * es * es * (1 + 0.75*es)
}

func e3fn(es float64) float64 {
	return es * es * es * (35.0 / 3072.0)
}

// mlfn computes the meridional distance from the equator to latitude phi.
func mlfn(e0, e1, e2, e3, phi float64) float64 {
	return e0*phi - e1*math.Sin(2*phi) + e2*math.Sin(4*phi) - e3*math.Sin(6*phi)
}

// imlfn inverts mlfn by Newton iteration; 15 steps to 1e-10.
func imlfn(ml, e0, e1, e2, e3 float64) (float64, error) {
	phi := ml / e0
	for i := 0; i < 15; i++ {
		dphi := (ml - (e0*phi - e1*math.Sin(2*phi) + e2*math.Sin(4*phi) - e3*math.Sin(6*phi))) /
			(e0 - 2*e1*math.Cos(2*phi) + 4*e2*math.Cos(4*phi) - 6*e3*math.Cos(6*phi))
		phi += dphi
		if math.Abs(dphi) <= 1e-10 {
			return phi, nil
		}
	}
	return math.NaN(), notConverged("imlfn")
}

// gN is the radius of curvature in the prime vertical.
func gN(a, e, sinphi float64) float64 {
	temp := e * sinphi
	return a / math.Sqrt(1-temp*temp)
}

/* Helpers for the Krüger n-series Transverse Mercator. */

func asinhy(x float64) float64 {
	y := math.Abs(x)
	y = math.Log1p(y * (1 + y/(hypot(1, y)+1)))
	if x < 0 {
		return -y
	}
	return y
}

func hypot(x, y float64) float64 {
	x = math.Abs(x)
	y = math.Abs(y)
	a := math.Max(x, y)
	if a == 0 {
		return 0
	}
	b := math.Min(x, y) / a
	return a * math.Sqrt(1+b*b)
}

// gatg evaluates a trigonometric series by Clenshaw summation, transforming
// the Gaussian latitude.
func gatg(pp []float64, b float64) float64 {
	cos2b := 2 * math.Cos(2*b)
	var h, h1, h2 float64
	for i := len(pp) - 1; i >= 0; i-- {
		h = -h2 + cos2b*h1 + pp[i]
		h2 = h1
		h1 = h
	}
	return b + h*math.Sin(2*b)
}

// clens sums a real Clenshaw series.
func clens(pp []float64, argR float64) float64 {
	r := 2 * math.Cos(argR)
	var hr, hr1, hr2 float64
	for i := len(pp) - 1; i >= 0; i-- {
		hr = -hr2 + r*hr1 + pp[i]
		hr2 = hr1
		hr1 = hr
	}
	return math.Sin(argR) * hr
}

// clensCmplx sums a complex Clenshaw series; returns the real and imaginary
// parts of the transformed argument.
func clensCmplx(pp []float64, argR, argI float64) (float64, float64) {
	sinArgR := math.Sin(argR)
	cosArgR := math.Cos(argR)
	sinhArgI := math.Sinh(argI)
	coshArgI := math.Cosh(argI)
	r := 2 * cosArgR * coshArgI
	i := -2 * sinArgR * sinhArgI
	var hr, hr1, hr2, hi, hi1, hi2 float64
	for j := len(pp) - 1; j >= 0; j-- {
		hr = -hr2 + r*hr1 - i*hi1 + pp[j]
		hi = -hi2 + i*hr1 + r*hi1
		hr2 = hr1
		hr1 = hr
		hi2 = hi1
		hi1 = hi
	}
	r = sinArgR * coshArgI
	i = cosArgR * sinhArgI
	return r*hr - i*hi, r*hi + i*hr
}

// asinz is arcsine with the argument clamped onto [-1, 1] to absorb
// rounding just past the ends.
func asinz(x float64) float64 {
	if math.Abs(x) > 1 {
		x = sign(x)
	}
	return math.Asin(x)
}

/* The en-series meridional distance (PROJ pj_enfn/pj_mlfn/pj_inv_mlfn),
 * used by the sinusoidal family. */

const (
	enC00 = 1.0
	enC02 = 0.25
	enC04 = 0.046875
	enC06 = 0.01953125
	enC08 = 0.01068115234375
	enC22 = 0.75
	enC44 = 0.46875
	enC46 = 0.01302083333333333333
	enC48 = 0.00712076822916666666
	enC66 = 0.36458333333333333333
	enC68 = 0.00569661458333333333
	enC88 = 0.3076171875
)

func enfn(es float64) [5]float64 {
	var en [5]float64
	en[0] = enC00 - es*(enC02+es*(enC04+es*(enC06+es*enC08)))
	en[1] = es * (enC22 - es*(enC04+es*(enC06+es*enC08)))
	t := es * es
	en[2] = t * (enC44 - es*(enC46+es*enC48))
	t *= es
	en[3] = t * (enC66 - es*enC68)
	en[4] = t * es * enC88
	return en
}

func mlfnE(phi, sphi, cphi float64, en [5]float64) float64 {
	cphi *= sphi
	sphi *= sphi
	return en[0]*phi - cphi*(en[1]+sphi*(en[2]+sphi*(en[3]+sphi*en[4])))
}

func invMlfn(arg, es float64, en [5]float64) (float64, error) {
	k := 1 / (1 - es)
	phi := arg
	for i := 0; i < 20; i++ {
		s := math.Sin(phi)
		t := 1 - es*s*s
		t = (mlfnE(phi, s, math.Cos(phi), en) - arg) * t * math.Sqrt(t) * k
		phi -= t
		if math.Abs(t) < 1e-10 {
			return phi, nil
		}
	}
	return math.NaN(), notConverged("invMlfn")
}

// phi1z inverts the equal-area q function for the Albers inverse; Newton
// iteration, 25 steps to 1e-7.
func phi1z(eccent, qs float64) (float64, error) {
	phi := asinz(0.5 * qs)
	if eccent < epsln {
		return phi, nil
	}
	eccnts := eccent * eccent
	for i := 1; i <= 25; i++ {
		sinphi := math.Sin(phi)
		cosphi := math.Cos(phi)
		con := eccent * sinphi
		com := 1 - con*con
		dphi := 0.5 * com * com / cosphi *
			(qs/(1-eccnts) - sinphi/com + 0.5/eccent*math.Log((1-con)/(1+con)))
		phi += dphi
		if math.Abs(dphi) <= 1e-7 {
			return phi, nil
		}
	}
	return math.NaN(), notConverged("phi1z")
}

/* Degree wrapping carried over from the DMS helpers; these operate on
 * degrees at the parsing boundary, not radians. */

// wrap90 constrains degrees to -90..+90 with a triangle wave; e.g. 91 => 89.
func wrap90(degrees float64) float64 {
	if -90 <= degrees && degrees <= 90 {
		return degrees
	}
	const (
		a = 90.0
		p = 360.0
	)
	x := degrees
	return 4*a/p*math.Abs(math.Mod(math.Mod(x-p/4, p)+p, p)-p/2) - a
}

// wrap180 constrains degrees to -180..+180 with a sawtooth; e.g. 181 => -179.
func wrap180(degrees float64) float64 {
	if -180 <= degrees && degrees <= 180 {
		return degrees
	}
	const (
		a = 180.0
		p = 360.0
	)
	x := degrees
	return math.Mod(math.Mod(2*a*x/p-p/2, p)+p, p) - a
}
