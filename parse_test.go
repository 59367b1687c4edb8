package proj

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProjString(t *testing.T) {
	t.Run("full mercator definition", func(t *testing.T) {
		def, err := ParseDefinition("+title=Pseudo-Mercator +proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs")
		assert.NoError(t, err)
		assert.Equal(t, "merc", def.ProjName)
		assert.Equal(t, 6378137.0, def.A)
		assert.Equal(t, 6378137.0, def.B)
		assert.Equal(t, 0.0, def.LatTS)
		assert.Equal(t, "m", def.Units)
		assert.Equal(t, "@null", def.NADGrids)
		assert.True(t, def.NoDefs)
	})

	t.Run("angles with unit suffixes", func(t *testing.T) {
		def, err := ParseDefinition("+proj=tmerc +lat_0=45d30'15\"N +lon_0=0.5r +ellps=WGS84")
		assert.NoError(t, err)
		assert.InDelta(t, (45+30.0/60+15.0/3600)*deg2rad, def.Lat0, 1e-12)
		assert.InDelta(t, 0.5, def.Long0, 1e-15)
	})

	t.Run("towgs84 three and seven", func(t *testing.T) {
		def, err := ParseDefinition("+proj=longlat +ellps=intl +towgs84=-87,-98,-121")
		assert.NoError(t, err)
		assert.Equal(t, []float64{-87, -98, -121}, def.DatumParams)

		def, err = ParseDefinition("+proj=longlat +ellps=airy +towgs84=446.448,-125.157,542.06,0.1502,0.247,0.8421,-20.4894")
		assert.NoError(t, err)
		assert.Len(t, def.DatumParams, 7)
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		def, err := ParseDefinition("+proj=longlat +datum=WGS84 +wktext +some_junk=1")
		assert.NoError(t, err)
		assert.Equal(t, "longlat", def.ProjName)
	})

	t.Run("missing proj fails", func(t *testing.T) {
		_, err := ParseDefinition("+ellps=WGS84")
		assert.ErrorIs(t, err, ErrBadSyntax)
	})

	t.Run("bad number carries the offending token", func(t *testing.T) {
		_, err := ParseDefinition("+proj=merc +lat_ts=banana")
		assert.ErrorIs(t, err, ErrBadSyntax)
		assert.Contains(t, err.Error(), "banana")
	})

	t.Run("utm needs a plausible zone", func(t *testing.T) {
		_, err := Parse("+proj=utm +zone=99 +datum=WGS84")
		assert.ErrorIs(t, err, ErrBadSyntax)
	})

	t.Run("unsupported projection name", func(t *testing.T) {
		_, err := Parse("+proj=nosuchthing +ellps=WGS84")
		assert.ErrorIs(t, err, ErrUnsupported)
	})
}

func TestParseDMS(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"-3.62", -3.62},
		{"3 37 12W", -(3 + 37.0/60 + 12.0/3600)},
		{"3°37′12″W", -(3 + 37.0/60 + 12.0/3600)},
		{"51° 28′ 40.37″ N", 51 + 28.0/60 + 40.37/3600},
		{"45d30", 45.5},
		{"90dE", 90},
		{"17d40'W", -(17 + 40.0/60)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDMS(tt.in)
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := parseDMS("")
	assert.Error(t, err)
	_, err = parseDMS("north by northwest")
	assert.Error(t, err)
}

func TestParseDispatch(t *testing.T) {
	t.Run("epsg code", func(t *testing.T) {
		def, err := ParseDefinition("EPSG:4326")
		assert.NoError(t, err)
		assert.Equal(t, "longlat", def.ProjName)
		assert.Equal(t, "EPSG:4326", def.SRSCode)
	})

	t.Run("epsg code is case-insensitive", func(t *testing.T) {
		def, err := ParseDefinition("epsg:3857")
		assert.NoError(t, err)
		assert.Equal(t, "merc", def.ProjName)
	})

	t.Run("wgs84 alias", func(t *testing.T) {
		def, err := ParseDefinition("WGS84")
		assert.NoError(t, err)
		assert.Equal(t, "longlat", def.ProjName)
		assert.Equal(t, "wgs84", def.DatumCode)
	})

	t.Run("google alias", func(t *testing.T) {
		def, err := ParseDefinition("GOOGLE")
		assert.NoError(t, err)
		assert.Equal(t, "merc", def.ProjName)
	})

	t.Run("utm zone codes", func(t *testing.T) {
		north, err := Parse("EPSG:32619")
		assert.NoError(t, err)
		assert.Equal(t, 19, north.Zone)
		assert.False(t, north.UTMSouth)
		assert.InDelta(t, -69*deg2rad, north.Long0, 1e-12)
		assert.Equal(t, 0.9996, north.K0)
		assert.Equal(t, 500000.0, north.X0)
		assert.Equal(t, 0.0, north.Y0)

		south, err := Parse("EPSG:32719")
		assert.NoError(t, err)
		assert.True(t, south.UTMSouth)
		assert.Equal(t, 10000000.0, south.Y0)
	})

	t.Run("gibberish is unsupported", func(t *testing.T) {
		_, err := ParseDefinition("this is not a CRS")
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("empty is bad syntax", func(t *testing.T) {
		_, err := ParseDefinition("   ")
		assert.ErrorIs(t, err, ErrBadSyntax)
	})
}

func TestDerivation(t *testing.T) {
	t.Run("rf derives the minor axis", func(t *testing.T) {
		ps, err := Parse("+proj=longlat +a=6378137 +rf=298.257223563")
		assert.NoError(t, err)
		assert.InDelta(t, 6356752.3142, ps.B, 1e-4)
		assert.InDelta(t, 0.00669437999014, ps.Es, 1e-14)
		assert.False(t, ps.Sphere)
	})

	t.Run("named ellipsoid fills the gaps", func(t *testing.T) {
		ps, err := Parse("+proj=longlat +ellps=intl")
		assert.NoError(t, err)
		assert.Equal(t, 6378388.0, ps.A)
		assert.InDelta(t, 6356911.9462, ps.B, 1e-3)
	})

	t.Run("default ellipsoid is WGS84", func(t *testing.T) {
		ps, err := Parse("+proj=merc +no_defs")
		assert.NoError(t, err)
		assert.Equal(t, 6378137.0, ps.A)
	})

	t.Run("sphere when axes match", func(t *testing.T) {
		ps, err := Parse("+proj=merc +a=6378137 +b=6378137")
		assert.NoError(t, err)
		assert.True(t, ps.Sphere)
		assert.Equal(t, 0.0, ps.Es)
	})

	t.Run("authalic radius", func(t *testing.T) {
		ps, err := Parse("+proj=vandg +R_A +ellps=WGS84")
		assert.NoError(t, err)
		assert.True(t, ps.Sphere)
		assert.Equal(t, 0.0, ps.Es)
		// Authalic radius of WGS84.
		assert.InDelta(t, 6371007.18, ps.A, 0.1)
	})

	t.Run("datum code resolves ellipsoid and params", func(t *testing.T) {
		ps, err := Parse("+proj=longlat +datum=OSGB36")
		assert.NoError(t, err)
		assert.Equal(t, "airy", ps.EllpsName)
		assert.Equal(t, pjd7Param, ps.datum.datumType)
		// Rotations are radians, scale a multiplier on the hot path.
		assert.InDelta(t, 0.1502*secToRad, ps.datum.params[3], 1e-18)
		assert.InDelta(t, 1-20.4894/1e6, ps.datum.params[6], 1e-12)
	})

	t.Run("seven zero parameters stay WGS84-equivalent", func(t *testing.T) {
		ps, err := Parse("+proj=longlat +ellps=WGS84 +towgs84=0,0,0,0,0,0,0")
		assert.NoError(t, err)
		assert.Equal(t, pjdWGS84, ps.datum.datumType)
	})

	t.Run("nadgrids wins", func(t *testing.T) {
		ps, err := Parse("+proj=longlat +ellps=clrk66 +nadgrids=@conus,@alaska")
		assert.NoError(t, err)
		assert.Equal(t, pjdGridShift, ps.datum.datumType)
		assert.Len(t, ps.datum.nadGrids, 2)
		assert.True(t, ps.datum.nadGrids[0].optional)
		assert.Equal(t, "conus", ps.datum.nadGrids[0].name)
	})

	t.Run("datum none never shifts", func(t *testing.T) {
		ps, err := Parse("+proj=longlat +datum=none +ellps=intl")
		assert.NoError(t, err)
		assert.Equal(t, pjdNoDatum, ps.datum.datumType)
	})

	t.Run("units resolve to_meter", func(t *testing.T) {
		ps, err := Parse("+proj=merc +ellps=WGS84 +units=us-ft")
		assert.NoError(t, err)
		assert.Equal(t, 0.304800609601219, ps.ToMeter)
	})

	t.Run("unknown unit fails", func(t *testing.T) {
		_, err := Parse("+proj=merc +ellps=WGS84 +units=cubits")
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("prime meridian by name", func(t *testing.T) {
		ps, err := Parse("+proj=longlat +ellps=GRS80 +pm=paris")
		assert.NoError(t, err)
		assert.InDelta(t, 2.337229166667*deg2rad, ps.FromGreenwich, 1e-12)
	})
}
