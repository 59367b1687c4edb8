package proj

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testGrid builds a one-subgrid shift table covering lon -100..-90,
// lat 35..45 (stored west-positive) with a constant shift in arcseconds.
func testGrid(name string, shiftLonSec, shiftLatSec float64) *Grid {
	const n = 11
	sg := &Subgrid{
		LLLam:  90 * deg2rad,
		LLPhi:  35 * deg2rad,
		DelLam: 1 * deg2rad,
		DelPhi: 1 * deg2rad,
		NLam:   n,
		NPhi:   n,
		CvsLam: make([]float64, n*n),
		CvsPhi: make([]float64, n*n),
	}
	for i := range sg.CvsLam {
		sg.CvsLam[i] = shiftLonSec
		sg.CvsPhi[i] = shiftLatSec
	}
	return &Grid{Name: name, Subgrids: []*Subgrid{sg}}
}

func TestSubgridInterpolation(t *testing.T) {
	g := testGrid("interp", 1.2, -0.4)
	sg := g.Subgrids[0]

	assert.True(t, sg.contains(96*deg2rad, 39*deg2rad))
	assert.False(t, sg.contains(89*deg2rad, 39*deg2rad))
	assert.False(t, sg.contains(96*deg2rad, 46*deg2rad))

	dlam, dphi := sg.interpolate(96.5*deg2rad, 39.5*deg2rad)
	assert.InDelta(t, 1.2*secToRad, dlam, 1e-15)
	assert.InDelta(t, -0.4*secToRad, dphi, 1e-15)
}

func TestGridShiftForwardAndInverse(t *testing.T) {
	DefaultGridStore.Register("testshift", testGrid("testshift", 1.0, 0.3))
	refs := parseGridRefs("testshift")

	λ := -96 * deg2rad
	φ := 39 * deg2rad
	outλ, outφ, err := applyGridShift(refs, false, λ, φ)
	assert.NoError(t, err)
	// A positive stored longitude shift moves the point west.
	assert.InDelta(t, λ-1.0*secToRad, outλ, 1e-15)
	assert.InDelta(t, φ+0.3*secToRad, outφ, 1e-15)

	backλ, backφ, err := applyGridShift(refs, true, outλ, outφ)
	assert.NoError(t, err)
	assert.InDelta(t, λ, backλ, 1e-12)
	assert.InDelta(t, φ, backφ, 1e-12)
}

func TestGridShiftSemantics(t *testing.T) {
	t.Run("null grid matches everywhere with zero delta", func(t *testing.T) {
		λ, φ, err := applyGridShift(parseGridRefs("@null"), false, 1.0, 0.5)
		assert.NoError(t, err)
		assert.Equal(t, 1.0, λ)
		assert.Equal(t, 0.5, φ)
	})

	t.Run("optional missing grid is skipped", func(t *testing.T) {
		λ, φ, err := applyGridShift(parseGridRefs("@no_such_grid"), false, 1.0, 0.5)
		assert.NoError(t, err)
		assert.Equal(t, 1.0, λ)
		assert.Equal(t, 0.5, φ)
	})

	t.Run("mandatory missing grid fails", func(t *testing.T) {
		_, _, err := applyGridShift(parseGridRefs("no_such_grid"), false, 1.0, 0.5)
		assert.ErrorIs(t, err, ErrGridMissing)
	})

	t.Run("point outside every grid passes through", func(t *testing.T) {
		DefaultGridStore.Register("far_away", testGrid("far_away", 5, 5))
		λ, φ, err := applyGridShift(parseGridRefs("far_away"), false, 0.1, 0.1)
		assert.NoError(t, err)
		assert.Equal(t, 0.1, λ)
		assert.Equal(t, 0.1, φ)
	})
}

func TestGridShiftThroughPipeline(t *testing.T) {
	t.Run("mandatory missing grid surfaces as ErrGridMissing", func(t *testing.T) {
		c := mustConverter(t,
			"+proj=longlat +ellps=clrk66 +nadgrids=definitely_missing +no_defs",
			"EPSG:4326")
		_, err := c.Forward(Point{X: -96, Y: 39})
		assert.ErrorIs(t, err, ErrGridMissing)
	})

	t.Run("optional missing grid degrades to identity", func(t *testing.T) {
		c := mustConverter(t,
			"+proj=longlat +ellps=clrk66 +nadgrids=@also_missing +no_defs",
			"EPSG:4326")
		got, err := c.Forward(Point{X: -96, Y: 39})
		assert.NoError(t, err)
		assert.InDelta(t, -96.0, got.X, 1e-6)
		assert.InDelta(t, 39.0, got.Y, 1e-6)
	})

	t.Run("NAD27 with loaded grid applies a small nonzero shift", func(t *testing.T) {
		DefaultGridStore.Register("conus", testGrid("conus", 1.0, 0.3))
		c := mustConverter(t, "+proj=longlat +datum=NAD27 +no_defs", "EPSG:4326")
		got, err := c.Forward(Point{X: -96, Y: 39})
		assert.NoError(t, err)
		assert.NotEqual(t, -96.0, got.X)
		assert.InDelta(t, -96.0, got.X, 0.01)
		assert.InDelta(t, 39.0, got.Y, 0.01)

		back, err := c.Inverse(got)
		assert.NoError(t, err)
		assert.InDelta(t, -96.0, back.X, 1e-9)
		assert.InDelta(t, 39.0, back.Y, 1e-9)
	})

	t.Run("NAD27 without grids falls back near-identity", func(t *testing.T) {
		c := mustConverter(t, "+proj=longlat +datum=NAD27 +no_defs", "EPSG:4326")
		// All of NAD27's grid references are optional and none of the loaded
		// grids covers this point, so it passes through unshifted; the datum
		// carries no parametric fallback shift.
		got, err := c.Forward(Point{X: -140, Y: 20})
		assert.NoError(t, err)
		assert.InDelta(t, -140.0, got.X, 0.003)
		assert.InDelta(t, 20.0, got.Y, 0.003)
	})
}
