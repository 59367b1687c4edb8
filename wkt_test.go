package proj

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const wkt1UTM19 = `PROJCS["WGS 84 / UTM zone 19N",GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]],PROJECTION["Transverse_Mercator"],PARAMETER["latitude_of_origin",0],PARAMETER["central_meridian",-69],PARAMETER["scale_factor",0.9996],PARAMETER["false_easting",500000],PARAMETER["false_northing",0],UNIT["metre",1],AXIS["Easting",EAST],AXIS["Northing",NORTH]]`

const wkt2UTM19 = `PROJCRS["WGS 84 / UTM zone 19N",BASEGEOGCRS["WGS 84",DATUM["World Geodetic System 1984",ELLIPSOID["WGS 84",6378137,298.257223563,LENGTHUNIT["metre",1]]],PRIMEM["Greenwich",0,ANGLEUNIT["degree",0.0174532925199433]]],CONVERSION["UTM zone 19N",METHOD["Transverse Mercator"],PARAMETER["Latitude of natural origin",0,ANGLEUNIT["degree",0.0174532925199433]],PARAMETER["Longitude of natural origin",-69,ANGLEUNIT["degree",0.0174532925199433]],PARAMETER["Scale factor at natural origin",0.9996,SCALEUNIT["unity",1]],PARAMETER["False easting",500000,LENGTHUNIT["metre",1]],PARAMETER["False northing",0,LENGTHUNIT["metre",1]]],CS[Cartesian,2],AXIS["(E)",east,ORDER[1],LENGTHUNIT["metre",1]],AXIS["(N)",north,ORDER[2],LENGTHUNIT["metre",1]],ID["EPSG",32619]]`

const wkt1LCC = `PROJCS["NAD83 / Conus Albers-ish",GEOGCS["NAD83",DATUM["North_American_Datum_1983",SPHEROID["GRS 1980",6378137,298.257222101],TOWGS84[0,0,0]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]],PROJECTION["Lambert_Conformal_Conic_2SP"],PARAMETER["standard_parallel_1",33],PARAMETER["standard_parallel_2",45],PARAMETER["latitude_of_origin",39],PARAMETER["central_meridian",-96],PARAMETER["false_easting",0],PARAMETER["false_northing",0],UNIT["metre",1]]`

func TestParseWKT1(t *testing.T) {
	t.Run("projected", func(t *testing.T) {
		def, err := ParseDefinition(wkt1UTM19)
		assert.NoError(t, err)
		assert.Equal(t, "tmerc", def.ProjName)
		assert.Equal(t, "wgs84", def.DatumCode)
		assert.Equal(t, 6378137.0, def.A)
		assert.InDelta(t, 298.257223563, def.Rf, 1e-9)
		assert.InDelta(t, -69*deg2rad, def.Long0, 1e-12)
		assert.Equal(t, 0.9996, def.K0)
		assert.Equal(t, 500000.0, def.X0)
		assert.Equal(t, "enu", def.Axis)
	})

	t.Run("geographic", func(t *testing.T) {
		def, err := ParseDefinition(`GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]]`)
		assert.NoError(t, err)
		assert.Equal(t, "longlat", def.ProjName)
		assert.Equal(t, "wgs84", def.DatumCode)
	})

	t.Run("towgs84 record", func(t *testing.T) {
		def, err := ParseDefinition(wkt1LCC)
		assert.NoError(t, err)
		assert.Equal(t, "lcc", def.ProjName)
		assert.Equal(t, []float64{0, 0, 0}, def.DatumParams)
		assert.InDelta(t, 33*deg2rad, def.Lat1, 1e-12)
		assert.InDelta(t, 45*deg2rad, def.Lat2, 1e-12)
	})

	t.Run("transforms agree with the equivalent proj string", func(t *testing.T) {
		fromWKT := mustConverter(t, "EPSG:4326", wkt1UTM19)
		fromCode := mustConverter(t, "EPSG:4326", "EPSG:32619")

		a, err := fromWKT.Forward(Point{X: -71, Y: 41})
		assert.NoError(t, err)
		b, err := fromCode.Forward(Point{X: -71, Y: 41})
		assert.NoError(t, err)
		assert.InDelta(t, b.X, a.X, 1e-6)
		assert.InDelta(t, b.Y, a.Y, 1e-6)
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := ParseDefinition(`PROJCS["broken`)
		assert.ErrorIs(t, err, ErrBadSyntax)
	})
}

func TestParseWKT2(t *testing.T) {
	def, err := ParseDefinition(wkt2UTM19)
	assert.NoError(t, err)
	assert.Equal(t, "tmerc", def.ProjName)
	assert.Equal(t, "wgs84", def.DatumCode)
	assert.InDelta(t, -69*deg2rad, def.Long0, 1e-12)
	assert.Equal(t, 0.9996, def.K0)
	assert.Equal(t, 500000.0, def.X0)
	assert.Equal(t, "enu", def.Axis)

	fromWKT2 := mustConverter(t, "EPSG:4326", wkt2UTM19)
	fromCode := mustConverter(t, "EPSG:4326", "EPSG:32619")
	a, err := fromWKT2.Forward(Point{X: -71, Y: 41})
	assert.NoError(t, err)
	b, err := fromCode.Forward(Point{X: -71, Y: 41})
	assert.NoError(t, err)
	assert.InDelta(t, b.X, a.X, 1e-6)
	assert.InDelta(t, b.Y, a.Y, 1e-6)
}

func TestParseWKT2Geographic(t *testing.T) {
	def, err := ParseDefinition(`GEOGCRS["WGS 84",ENSEMBLE["World Geodetic System 1984 ensemble",MEMBER["World Geodetic System 1984 (Transit)"],ELLIPSOID["WGS 84",6378137,298.257223563,LENGTHUNIT["metre",1]]],PRIMEM["Greenwich",0,ANGLEUNIT["degree",0.0174532925199433]],CS[ellipsoidal,2],AXIS["geodetic latitude (Lat)",north,ORDER[1]],AXIS["geodetic longitude (Lon)",east,ORDER[2]],ANGLEUNIT["degree",0.0174532925199433],ID["EPSG",4326]]`)
	assert.NoError(t, err)
	assert.Equal(t, "longlat", def.ProjName)
	assert.Equal(t, "wgs84", def.DatumCode)
	assert.Equal(t, "neu", def.Axis)
}

func TestWKTMethodNormalization(t *testing.T) {
	tests := []struct {
		method string
		proj   string
	}{
		{"Transverse_Mercator", "tmerc"},
		{"Transverse Mercator", "tmerc"},
		{"Lambert_Conformal_Conic_2SP", "lcc"},
		{"Lambert Conic Conformal (2SP)", "lcc"},
		{"Albers_Conic_Equal_Area", "aea"},
		{"Hotine Oblique Mercator (variant B)", "omerc"},
		{"Cassini-Soldner", "cass"},
		{"Van_der_Grinten", "vandg"},
		{"Popular Visualisation Pseudo Mercator", "merc"},
	}
	for _, tt := range tests {
		got, ok := methodToProj[normalizeMethodName(tt.method)]
		assert.True(t, ok, tt.method)
		assert.Equal(t, tt.proj, got, tt.method)
	}
}

func TestWKTTypeADetection(t *testing.T) {
	assert.True(t, isTypeAMethodName("Hotine_Oblique_Mercator_Azimuth_Natural_Origin"))
	assert.True(t, isTypeAMethodName("Hotine Oblique Mercator (variant A)"))
	assert.False(t, isTypeAMethodName("Hotine_Oblique_Mercator"))
	assert.False(t, isTypeAMethodName("Hotine Oblique Mercator (variant B)"))
}
