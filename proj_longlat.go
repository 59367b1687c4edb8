package proj

// longlatProjection is the identity projection: geographic coordinates in,
// geographic coordinates out, in radians. The pipeline converts to degrees
// at the API boundary.
type longlatProjection struct {
	baseProjection
}

func (ll *longlatProjection) Init(p *ProjectionParams) error {
	ll.bind(p)
	return nil
}

func (ll *longlatProjection) Forward(lam, phi float64) (float64, float64, error) {
	if err := ll.ready(); err != nil {
		return 0, 0, err
	}
	return lam, phi, nil
}

func (ll *longlatProjection) Inverse(x, y float64) (float64, float64, error) {
	if err := ll.ready(); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
