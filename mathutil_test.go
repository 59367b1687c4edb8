package proj

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjlon(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{-190 * deg2rad, 170 * deg2rad},
		{190 * deg2rad, -170 * deg2rad},
		{370 * deg2rad, 10 * deg2rad},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, adjlon(tt.in), 1e-12)
	}
}

func TestWrapDegrees(t *testing.T) {
	assert.Equal(t, 89.0, wrap90(91))
	assert.Equal(t, -89.0, wrap90(-91))
	assert.Equal(t, 45.0, wrap90(45))
	assert.Equal(t, -179.0, wrap180(181))
	assert.Equal(t, 179.0, wrap180(-181))
	assert.Equal(t, 120.0, wrap180(120))
}

func TestIsometricLatitudePair(t *testing.T) {
	e := math.Sqrt(0.00669438002290) // GRS80
	for _, phi := range []float64{-1.2, -0.5, 0, 0.3, 0.7, 1.4} {
		ts := tsfnz(e, phi, math.Sin(phi))
		back, err := phi2z(e, ts)
		assert.NoError(t, err)
		assert.InDelta(t, phi, back, 1e-9, "phi %v", phi)
	}
}

func TestEqualAreaLatitudePair(t *testing.T) {
	e := math.Sqrt(0.00669438002290)
	for _, phi := range []float64{-1.2, -0.5, 0.3, 0.7, 1.4} {
		q := qsfnz(e, math.Sin(phi))
		back, err := iqsfnz(e, q)
		assert.NoError(t, err)
		assert.InDelta(t, phi, back, 1e-9, "phi %v", phi)

		back, err = phi1z(e, q)
		assert.NoError(t, err)
		assert.InDelta(t, phi, back, 1e-6, "phi1z %v", phi)
	}
}

func TestMeridionalDistancePairs(t *testing.T) {
	const es = 0.00669438002290

	t.Run("e-series", func(t *testing.T) {
		e0, e1, e2, e3 := e0fn(es), e1fn(es), e2fn(es), e3fn(es)
		for _, phi := range []float64{-1.2, -0.4, 0, 0.6, 1.3} {
			ml := mlfn(e0, e1, e2, e3, phi)
			back, err := imlfn(ml, e0, e1, e2, e3)
			assert.NoError(t, err)
			assert.InDelta(t, phi, back, 1e-9)
		}
	})

	t.Run("en-series", func(t *testing.T) {
		en := enfn(es)
		for _, phi := range []float64{-1.2, -0.4, 0.6, 1.3} {
			ml := mlfnE(phi, math.Sin(phi), math.Cos(phi), en)
			back, err := invMlfn(ml, es, en)
			assert.NoError(t, err)
			assert.InDelta(t, phi, back, 1e-9)
		}
	})
}

func TestMsfnz(t *testing.T) {
	// At the equator the meridian scale is the full cosine.
	assert.InDelta(t, 1.0, msfnz(0, 1, 0.00669438), 1e-15)
	// At 60N on a sphere it is cos 60.
	assert.InDelta(t, 0.5, msfnz(math.Sin(math.Pi/3), math.Cos(math.Pi/3), 0), 1e-12)
}

func TestAsinzClamps(t *testing.T) {
	assert.Equal(t, halfPi, asinz(1.0000000001))
	assert.Equal(t, -halfPi, asinz(-1.0000000001))
	assert.InDelta(t, math.Asin(0.5), asinz(0.5), 1e-15)
}

func TestClenshawInverses(t *testing.T) {
	// The Krüger coefficient pairs must invert each other through gatg.
	var tm tmercProjection
	ps, err := Parse("+proj=tmerc +ellps=GRS80")
	assert.NoError(t, err)
	tm = *ps.proj.(*tmercProjection)
	for _, phi := range []float64{-1.1, -0.3, 0.2, 0.9} {
		conformal := gatg(tm.cbg[:], phi)
		back := gatg(tm.cgb[:], conformal)
		assert.InDelta(t, phi, back, 1e-12)
	}
}
