package proj

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Robinson: a tabulated world-map projection. X and Y are cubic splines in latitude, tabulated   */
/* in 5° steps; the inverse brackets the latitude row and refines it by Newton iteration.         */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

var robinCoefsX = [19][4]float64{
	{1, 2.2199e-17, -7.15515e-05, 3.1103e-06},
	{0.9986, -0.000482243, -2.4897e-05, -1.3309e-06},
	{0.9954, -0.00083103, -4.48605e-05, -9.86701e-07},
	{0.99, -0.00135364, -5.9661e-05, 3.6777e-06},
	{0.9822, -0.00167442, -4.49547e-06, -5.72411e-06},
	{0.973, -0.00214868, -9.03571e-05, 1.8736e-08},
	{0.96, -0.00305085, -9.00761e-05, 1.64917e-06},
	{0.9427, -0.00382792, -6.53386e-05, -2.6154e-06},
	{0.9216, -0.00467746, -0.00010457, 4.81243e-06},
	{0.8962, -0.00536223, -3.23831e-05, -5.43432e-06},
	{0.8679, -0.00609363, -0.000113898, 3.32484e-06},
	{0.835, -0.00698325, -6.40253e-05, 9.34959e-07},
	{0.7986, -0.00755338, -5.00009e-05, 9.35324e-07},
	{0.7597, -0.00798324, -3.5971e-05, -2.27626e-06},
	{0.7186, -0.00851367, -7.01149e-05, -8.6303e-06},
	{0.6732, -0.00986209, -0.000199569, 1.91974e-05},
	{0.6213, -0.010418, 8.83923e-05, 6.24051e-06},
	{0.5722, -0.00906601, 0.000182, 6.24051e-06},
	{0.5322, -0.00677797, 0.000275608, 6.24051e-06},
}

var robinCoefsY = [19][4]float64{
	{-5.20417e-18, 0.0124, 1.21431e-18, -8.45284e-11},
	{0.062, 0.0124, -1.26793e-09, 4.22642e-10},
	{0.124, 0.0124, 5.07171e-09, -1.60604e-09},
	{0.186, 0.0123999, -1.90189e-08, 6.00152e-09},
	{0.248, 0.0124002, 7.10039e-08, -2.24e-08},
	{0.31, 0.0123992, -2.64997e-07, 8.35986e-08},
	{0.372, 0.0124029, 9.88983e-07, -3.11994e-07},
	{0.434, 0.0123893, -3.69093e-06, -4.35621e-07},
	{0.4958, 0.0123198, -1.02252e-05, -3.45523e-07},
	{0.5571, 0.0121916, -1.54081e-05, -5.82288e-07},
	{0.6176, 0.0119938, -2.41424e-05, -5.25327e-07},
	{0.6769, 0.011713, -3.20223e-05, -5.16405e-07},
	{0.7346, 0.0113541, -3.97684e-05, -6.09052e-07},
	{0.7903, 0.0109107, -4.89042e-05, -1.04739e-06},
	{0.8435, 0.0103431, -6.4615e-05, -1.40374e-09},
	{0.8936, 0.00969686, -6.4636e-05, -8.547e-06},
	{0.9394, 0.00840947, -0.000192841, -4.2106e-06},
	{0.9761, 0.00616527, -0.000256, -4.2106e-06},
	{1, 0.00328947, -0.000319159, -4.2106e-06},
}

const (
	robinFXC    = 0.8487
	robinFYC    = 1.3523
	robinC1     = 11.45915590261646417544 // degrees per node, inverted
	robinRC1    = 0.08726646259971647884  // 5 degrees in radians
	robinNodes  = 18
	robinOneEps = 1.000001
)

func robinPoly(c [4]float64, z float64) float64 {
	return c[0] + z*(c[1]+z*(c[2]+z*c[3]))
}

func robinPolyDeriv(c [4]float64, z float64) float64 {
	return c[1] + z*(2*c[2]+z*3*c[3])
}

type robinProjection struct {
	baseProjection
}

func (r *robinProjection) Init(p *ProjectionParams) error {
	r.bind(p)
	return nil
}

func (r *robinProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := r.ready(); err != nil {
		return 0, 0, err
	}
	p := r.p
	if err := checkLatRange(phi); err != nil {
		return math.NaN(), math.NaN(), err
	}
	dlon := p.adjustLon(lam - p.Long0)

	dphi := math.Abs(phi)
	i := int(math.Floor(dphi * robinC1))
	if i < 0 {
		return math.NaN(), math.NaN(), ErrOutOfDomain
	}
	if i > robinNodes {
		i = robinNodes
	}
	z := rad2deg * (dphi - robinRC1*float64(i))
	x := robinPoly(robinCoefsX[i], z) * robinFXC * p.A * dlon
	y := robinPoly(robinCoefsY[i], z) * robinFYC * p.A
	if phi < 0 {
		y = -y
	}
	return x + p.X0, y + p.Y0, nil
}

func (r *robinProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := r.ready(); err != nil {
		return 0, 0, err
	}
	p := r.p
	x -= p.X0
	y -= p.Y0

	lam := x / (robinFXC * p.A)
	phi := math.Abs(y / (robinFYC * p.A))

	if phi >= 1 {
		// At or just past the pole row.
		if phi > robinOneEps {
			return math.NaN(), math.NaN(), ErrOutOfDomain
		}
		phi = math.Copysign(halfPi, y)
		lam /= robinCoefsX[robinNodes][0]
	} else {
		// Bracket the node row, then polish with Newton.
		i := int(math.Floor(phi * robinNodes))
		if i < 0 {
			return math.NaN(), math.NaN(), ErrOutOfDomain
		}
		for {
			if robinCoefsY[i][0] > phi {
				i--
			} else if i+1 <= robinNodes && robinCoefsY[i+1][0] <= phi {
				i++
			} else {
				break
			}
			if i < 0 || i > robinNodes {
				return math.NaN(), math.NaN(), ErrOutOfDomain
			}
		}
		coefs := robinCoefsY[i]
		upper := 1.0
		if i < robinNodes {
			upper = robinCoefsY[i+1][0]
		}
		t := 5 * (phi - coefs[0]) / (upper - coefs[0])
		converged := false
		for iter := 0; iter < 100; iter++ {
			dt := (robinPoly(coefs, t) - phi) / robinPolyDeriv(coefs, t)
			t -= dt
			if math.Abs(dt) < 1e-10 {
				converged = true
				break
			}
		}
		if !converged {
			return math.NaN(), math.NaN(), notConverged("robin inverse")
		}
		lam /= robinPoly(robinCoefsX[i], t)
		phi = (5*float64(i) + t) * deg2rad
		if y < 0 {
			phi = -phi
		}
	}

	lam = p.adjustLon(lam + p.Long0)
	return lam, phi, nil
}
