package proj

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func wgs84Datum(t *testing.T) *datum {
	t.Helper()
	ps, err := Parse("EPSG:4326")
	assert.NoError(t, err)
	return ps.datum
}

func TestGeodeticGeocentricRoundTrip(t *testing.T) {
	d := wgs84Datum(t)
	tests := []struct {
		name          string
		lon, lat, hgt float64
	}{
		{"equator", 0, 0, 0},
		{"greenwich area", -0.00147 * deg2rad, 51.47788 * deg2rad, 17},
		{"southern", 151.2 * deg2rad, -33.85 * deg2rad, 120},
		{"near pole", 10 * deg2rad, 89.5 * deg2rad, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z, err := d.geodeticToGeocentric(tt.lon, tt.lat, tt.hgt)
			assert.NoError(t, err)
			lon, lat, hgt := d.geocentricToGeodetic(x, y, z)
			assert.InDelta(t, tt.lon, lon, 1e-12)
			assert.InDelta(t, tt.lat, lat, 1e-11)
			assert.InDelta(t, tt.hgt, hgt, 1e-4)
		})
	}

	t.Run("out of range latitude", func(t *testing.T) {
		_, _, _, err := d.geodeticToGeocentric(0, 2.0, 0)
		assert.ErrorIs(t, err, ErrOutOfDomain)
	})
}

func TestHelmertIdentity(t *testing.T) {
	ps, err := Parse("+proj=longlat +ellps=WGS84 +towgs84=0,0,0,0,0,0,0")
	assert.NoError(t, err)
	wgs := wgs84Datum(t)

	λ, φ, h := -71*deg2rad, 41*deg2rad, 10.0
	outλ, outφ, outH, err := transformDatum(ps.datum, wgs, λ, φ, h)
	assert.NoError(t, err)
	assert.InDelta(t, λ, outλ, 1e-12)
	assert.InDelta(t, φ, outφ, 1e-12)
	assert.InDelta(t, h, outH, 1e-6)
}

func TestHelmertSevenParameter(t *testing.T) {
	osgb, err := Parse("+proj=longlat +datum=OSGB36 +no_defs")
	assert.NoError(t, err)
	wgs := wgs84Datum(t)

	// WGS84 (51.47788, -0.00147) is OSGB36 (51.4773, 0.0001), per the
	// Ordnance Survey worked example.
	λ, φ, _, err := transformDatum(wgs, osgb.datum, -0.00147*deg2rad, 51.47788*deg2rad, 0)
	assert.NoError(t, err)
	assert.InDelta(t, 0.0001, λ*rad2deg, 5e-4)
	assert.InDelta(t, 51.4773, φ*rad2deg, 5e-4)

	// And back.
	backλ, backφ, _, err := transformDatum(osgb.datum, wgs, λ, φ, 0)
	assert.NoError(t, err)
	assert.InDelta(t, -0.00147, backλ*rad2deg, 1e-7)
	assert.InDelta(t, 51.47788, backφ*rad2deg, 1e-7)
}

func TestHelmertThreeParameter(t *testing.T) {
	ed50, err := Parse("+proj=longlat +ellps=intl +towgs84=-87,-98,-121 +no_defs")
	assert.NoError(t, err)
	wgs := wgs84Datum(t)

	λ, φ, h, err := transformDatum(ed50.datum, wgs, 2*deg2rad, 48*deg2rad, 0)
	assert.NoError(t, err)
	// ED50 -> WGS84 around Paris moves roughly 100 m south-west.
	assert.NotEqual(t, 2.0, λ*rad2deg)
	assert.InDelta(t, 2.0, λ*rad2deg, 0.01)
	assert.InDelta(t, 48.0, φ*rad2deg, 0.01)

	backλ, backφ, _, err := transformDatum(wgs, ed50.datum, λ, φ, h)
	assert.NoError(t, err)
	assert.InDelta(t, 2.0, backλ*rad2deg, 1e-9)
	assert.InDelta(t, 48.0, backφ*rad2deg, 1e-9)
}

func TestDatumEquality(t *testing.T) {
	a, err := Parse("+proj=longlat +ellps=WGS84 +towgs84=1,2,3 +no_defs")
	assert.NoError(t, err)
	b, err := Parse("+proj=merc +ellps=WGS84 +towgs84=1,2,3 +no_defs")
	assert.NoError(t, err)
	c, err := Parse("+proj=longlat +ellps=WGS84 +towgs84=1,2,4 +no_defs")
	assert.NoError(t, err)

	assert.True(t, a.datum.equal(b.datum))
	assert.False(t, a.datum.equal(c.datum))

	// GRS80 and WGS84 count as the same figure.
	grs, err := Parse("+proj=longlat +ellps=GRS80 +no_defs")
	assert.NoError(t, err)
	wgs, err := Parse("+proj=longlat +ellps=WGS84 +no_defs")
	assert.NoError(t, err)
	assert.True(t, grs.datum.equal(wgs.datum))
}

func TestNoDatumSkipsShifts(t *testing.T) {
	none, err := Parse("+proj=longlat +datum=none +ellps=intl +no_defs")
	assert.NoError(t, err)
	osgb, err := Parse("+proj=longlat +datum=OSGB36 +no_defs")
	assert.NoError(t, err)

	λ, φ, _, err := transformDatum(none.datum, osgb.datum, 0.02, 0.9, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0.02, λ)
	assert.Equal(t, 0.9, φ)
}

func TestDatumTransformRejectsGarbage(t *testing.T) {
	wgs := wgs84Datum(t)
	osgb, err := Parse("+proj=longlat +datum=OSGB36 +no_defs")
	assert.NoError(t, err)
	_, _, _, err = transformDatum(wgs, osgb.datum, 0, math.Pi, 0)
	assert.ErrorIs(t, err, ErrOutOfDomain)
}
