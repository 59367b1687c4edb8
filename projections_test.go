package proj

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Literal forward expectations, PROJ-style: lon/lat degrees in, metres out.
func TestProjectionForwardKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		proj     string
		delta    float64
		lon, lat float64
		x, y     float64
	}{
		{
			name:  "mercator ellipsoidal",
			proj:  "+proj=merc +ellps=GRS80",
			delta: 0.001,
			lon:   2, lat: 1,
			x: 222638.981586547, y: 110579.965218250,
		},
		{
			name:  "mercator ellipsoidal south",
			proj:  "+proj=merc +ellps=GRS80",
			delta: 0.001,
			lon:   2, lat: -1,
			x: 222638.981586547, y: -110579.965218250,
		},
		{
			name:  "mercator spherical web",
			proj:  "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0",
			delta: 0.01,
			lon:   18.5, lat: 54.2,
			x: 2059410.57968, y: 7208125.2609,
		},
		{
			name:  "transverse mercator kruger",
			proj:  "+proj=tmerc +ellps=GRS80",
			delta: 0.001,
			lon:   2, lat: 1,
			x: 222650.796797586, y: 110642.229411933,
		},
		{
			name:  "extended transverse mercator",
			proj:  "+proj=etmerc +ellps=GRS80",
			delta: 0.001,
			lon:   2, lat: 1,
			x: 222650.796797586, y: 110642.229411933,
		},
		{
			name:  "utm zone 30",
			proj:  "+proj=utm +zone=30 +ellps=GRS80",
			delta: 0.01,
			lon:   2, lat: 1,
			x: 1057002.405491298, y: 110955.141175949,
		},
		{
			name:  "albers equal area",
			proj:  "+proj=aea +ellps=GRS80 +lat_1=0 +lat_2=2",
			delta: 0.01,
			lon:   2, lat: 1,
			x: 222571.608757106, y: 110653.326743030,
		},
		{
			name:  "albers equal area south",
			proj:  "+proj=aea +ellps=GRS80 +lat_1=0 +lat_2=2",
			delta: 0.01,
			lon:   2, lat: -1,
			x: 222706.306508391, y: -110484.267144400,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, err := Parse(tt.proj)
			assert.NoError(t, err)
			x, y, err := ps.proj.Forward(tt.lon*deg2rad, tt.lat*deg2rad)
			assert.NoError(t, err)
			assert.InDelta(t, tt.x, x, tt.delta)
			assert.InDelta(t, tt.y, y, tt.delta)
		})
	}
}

// Every projection must invert its own forward within 1e-7 rad across its
// declared domain.
func TestProjectionRoundTrips(t *testing.T) {
	const tol = 1e-7 // radians

	tests := []struct {
		name   string
		proj   string
		points [][2]float64 // lon, lat degrees
	}{
		{"longlat", "+proj=longlat +datum=WGS84",
			[][2]float64{{0, 0}, {-71, 41}, {179, -89}}},
		{"merc ellipsoidal", "+proj=merc +ellps=GRS80",
			[][2]float64{{2, 1}, {-50, -30}, {120, 60}}},
		{"merc spherical", "+proj=merc +a=6378137 +b=6378137",
			[][2]float64{{18.5, 54.2}, {-120, -55}}},
		{"tmerc kruger", "+proj=tmerc +ellps=GRS80",
			[][2]float64{{2, 1}, {-3, 52}, {9, 48}, {0.5, -44}}},
		{"tmerc approx", "+proj=tmerc +ellps=GRS80 +approx",
			[][2]float64{{2, 1}, {-3, 52}, {4, -33}}},
		{"tmerc spherical", "+proj=tmerc +R=6370997",
			[][2]float64{{2, 1}, {-4, 48}}},
		{"utm", "+proj=utm +zone=19 +datum=WGS84",
			[][2]float64{{-71, 41}, {-69.5, 44}, {-68, -12}}},
		{"eqc", "+proj=eqc +ellps=WGS84 +lat_ts=30",
			[][2]float64{{10, 50}, {-150, -70}}},
		{"mill", "+proj=mill +R=6371000",
			[][2]float64{{20, 40}, {-100, -60}, {179, 80}}},
		{"cea spherical", "+proj=cea +R=6371000 +lat_ts=30",
			[][2]float64{{10, 45}, {-60, -80}}},
		{"cea ellipsoidal", "+proj=cea +ellps=GRS80 +lat_ts=5",
			[][2]float64{{10, 45}, {-60, -80}}},
		{"sinu ellipsoidal", "+proj=sinu +ellps=GRS80",
			[][2]float64{{2, 1}, {-158, 21}, {30, -70}}},
		{"sinu spherical", "+proj=sinu +R=6371000",
			[][2]float64{{2, 1}, {-158, 21}}},
		{"moll", "+proj=moll +R=6371000",
			[][2]float64{{0, 0}, {90, 45}, {-150, -60}, {0, 89}}},
		{"robin", "+proj=robin +R=6371000",
			[][2]float64{{0, 0}, {100, 47}, {-60, -30}, {10, 82}}},
		{"eqearth", "+proj=eqearth +R=6371000",
			[][2]float64{{0, 0}, {100, 47}, {-60, -30}}},
		{"lcc 2sp", "+proj=lcc +ellps=GRS80 +lat_1=33 +lat_2=45 +lat_0=39 +lon_0=-96",
			[][2]float64{{-96, 39}, {-75, 21}, {-120, 55}}},
		{"lcc 1sp", "+proj=lcc +ellps=clrk66 +lat_1=18 +lat_0=18 +lon_0=-77",
			[][2]float64{{-77, 18}, {-70, 22}}},
		{"aea", "+proj=aea +ellps=GRS80 +lat_1=29.5 +lat_2=45.5 +lat_0=23 +lon_0=-96",
			[][2]float64{{-96, 23}, {-75, 40}, {-110, 50}}},
		{"eqdc", "+proj=eqdc +ellps=GRS80 +lat_1=20 +lat_2=60",
			[][2]float64{{0, 40}, {-70, 35}, {80, 10}}},
		{"stere polar", "+proj=stere +lat_0=90 +lat_ts=70 +lon_0=-45 +ellps=WGS84",
			[][2]float64{{-45, 70}, {10, 80}, {-130, 85}}},
		{"stere oblique ellipsoidal", "+proj=stere +lat_0=40 +lon_0=-100 +ellps=GRS80",
			[][2]float64{{-100, 40}, {-90, 45}, {-110, 30}}},
		{"stere oblique spherical", "+proj=stere +lat_0=30 +lon_0=10 +R=6371000",
			[][2]float64{{10, 30}, {25, 40}}},
		{"laea oblique ellipsoidal", "+proj=laea +lat_0=52 +lon_0=10 +ellps=GRS80",
			[][2]float64{{10, 52}, {4, 50}, {25, 35}}},
		{"laea polar", "+proj=laea +lat_0=90 +lon_0=0 +ellps=WGS84",
			[][2]float64{{0, 89}, {120, 75}}},
		{"laea spherical", "+proj=laea +lat_0=40 +lon_0=-100 +R=6371000",
			[][2]float64{{-100, 40}, {-80, 30}}},
		{"aeqd oblique ellipsoidal", "+proj=aeqd +lat_0=40 +lon_0=-100 +ellps=GRS80",
			[][2]float64{{-100, 40}, {-95, 42}, {-105, 35}}},
		{"aeqd polar", "+proj=aeqd +lat_0=90 +lon_0=0 +ellps=WGS84",
			[][2]float64{{10, 80}, {-150, 70}}},
		{"aeqd spherical", "+proj=aeqd +lat_0=40 +lon_0=-100 +R=6371000",
			[][2]float64{{-95, 42}, {-120, 20}}},
		{"gnom", "+proj=gnom +lat_0=40 +lon_0=-100 +R=6371000",
			[][2]float64{{-100, 40}, {-95, 42}, {-110, 30}}},
		{"ortho", "+proj=ortho +lat_0=40 +lon_0=-100 +R=6371000",
			[][2]float64{{-100, 40}, {-95, 42}, {-110, 30}}},
		{"vandg", "+proj=vandg +R_A +ellps=WGS84",
			[][2]float64{{85, 30}, {-120, -40}, {0, 45}}},
		{"omerc azimuth", "+proj=omerc +lat_0=4 +lonc=115 +alpha=53.31582 +k_0=0.99984 +ellps=evrst30",
			[][2]float64{{115, 4}, {117, 6}, {112, 1}}},
		{"omerc two point", "+proj=omerc +lat_0=45 +lat_1=40 +lon_1=-80 +lat_2=50 +lon_2=-70 +ellps=GRS80",
			[][2]float64{{-75, 45}, {-78, 42}}},
		{"cass", "+proj=cass +lat_0=50 +lon_0=10 +ellps=bessel",
			[][2]float64{{10, 50}, {12, 51}, {8, 48}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, err := Parse(tt.proj)
			assert.NoError(t, err)
			for _, pt := range tt.points {
				lam := pt[0] * deg2rad
				phi := pt[1] * deg2rad
				x, y, err := ps.proj.Forward(lam, phi)
				assert.NoError(t, err, "forward (%v,%v)", pt[0], pt[1])
				assert.False(t, math.IsNaN(x) || math.IsNaN(y), "forward NaN at (%v,%v)", pt[0], pt[1])
				lam2, phi2, err := ps.proj.Inverse(x, y)
				assert.NoError(t, err, "inverse (%v,%v)", pt[0], pt[1])
				assert.InDelta(t, lam, lam2, tol, "lon at (%v,%v)", pt[0], pt[1])
				assert.InDelta(t, phi, phi2, tol, "lat at (%v,%v)", pt[0], pt[1])
			}
		})
	}
}

func TestProjectionDomainFailures(t *testing.T) {
	t.Run("mercator rejects the poles", func(t *testing.T) {
		ps, err := Parse("+proj=merc +ellps=WGS84")
		assert.NoError(t, err)
		_, _, err = ps.proj.Forward(0, halfPi)
		assert.ErrorIs(t, err, ErrOutOfDomain)
	})

	t.Run("orthographic rejects the back hemisphere", func(t *testing.T) {
		ps, err := Parse("+proj=ortho +lat_0=40 +lon_0=-100 +R=6371000")
		assert.NoError(t, err)
		_, _, err = ps.proj.Forward(80*deg2rad, -40*deg2rad)
		assert.ErrorIs(t, err, ErrOutOfDomain)
	})

	t.Run("gnomonic rejects the horizon", func(t *testing.T) {
		ps, err := Parse("+proj=gnom +lat_0=0 +lon_0=0 +R=6371000")
		assert.NoError(t, err)
		_, _, err = ps.proj.Forward(90*deg2rad, 0)
		assert.ErrorIs(t, err, ErrOutOfDomain)
	})

	t.Run("kruger rejects far-side longitudes", func(t *testing.T) {
		ps, err := Parse("+proj=tmerc +ellps=GRS80")
		assert.NoError(t, err)
		_, _, err = ps.proj.Forward(160*deg2rad, 5*deg2rad)
		assert.ErrorIs(t, err, ErrOutOfDomain)
	})

	t.Run("lcc rejects mirror-image parallels", func(t *testing.T) {
		_, err := Parse("+proj=lcc +ellps=GRS80 +lat_1=30 +lat_2=-30")
		assert.Error(t, err)
	})

	t.Run("uninitialized projection is a programmer error", func(t *testing.T) {
		var m mercProjection
		_, _, err := m.Forward(0, 0)
		assert.ErrorIs(t, err, ErrUninitializedProjection)
	})
}

// Mollweide keeps the far-north world map finite (pole neighbourhood).
func TestMollweidePole(t *testing.T) {
	ps, err := Parse("+proj=moll +R=6371000")
	assert.NoError(t, err)
	x, y, err := ps.proj.Forward(0, 89*deg2rad)
	assert.NoError(t, err)
	assert.False(t, math.IsNaN(x) || math.IsInf(x, 0))
	assert.False(t, math.IsNaN(y) || math.IsInf(y, 0))

	lam, phi, err := ps.proj.Inverse(x, y)
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, lam, 1e-6*deg2rad)
	assert.InDelta(t, 89*deg2rad, phi, 1e-6*deg2rad)
}
