package proj

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The PROJ-string form survives everything, including the Web Mercator
// @null grid reference; the WKT and PROJJSON forms have no slot for
// nadgrids, so that fixture stays out of their lists.
var serializeFixtures = []string{
	"EPSG:4326",
	"EPSG:32619",
	"+proj=merc +lat_ts=5 +ellps=WGS84 +no_defs",
	"+proj=lcc +lat_1=49 +lat_2=44 +lat_0=46.5 +lon_0=3 +x_0=700000 +y_0=6600000 +ellps=GRS80 +no_defs",
	"+proj=longlat +datum=OSGB36 +no_defs",
	"+proj=stere +lat_0=90 +lat_ts=70 +lon_0=-45 +ellps=WGS84 +no_defs",
}

var projStringFixtures = append([]string{"EPSG:3857"}, serializeFixtures...)

func reparseEquivalent(t *testing.T, original *ProjectionParams, serialized string) {
	t.Helper()
	re, err := Parse(serialized)
	assert.NoError(t, err, "reparsing %q", serialized)
	assert.True(t, paramsEquivalent(original, re),
		"round trip lost parameters:\n  original: %v\n  emitted: %s", original.ProjName, serialized)
}

func TestSerializeProjString(t *testing.T) {
	for _, fixture := range projStringFixtures {
		t.Run(fixture, func(t *testing.T) {
			ps, err := Parse(fixture)
			assert.NoError(t, err)
			out := ps.ToProj4()
			assert.True(t, strings.HasPrefix(out, "+proj="))
			reparseEquivalent(t, ps, out)
		})
	}
}

func TestSerializeWKT1(t *testing.T) {
	for _, fixture := range serializeFixtures {
		t.Run(fixture, func(t *testing.T) {
			ps, err := Parse(fixture)
			assert.NoError(t, err)
			out := ps.ToWKT1()
			if ps.IsGeographic() {
				assert.True(t, strings.HasPrefix(out, "GEOGCS["))
			} else {
				assert.True(t, strings.HasPrefix(out, "PROJCS["))
			}
			reparseEquivalent(t, ps, out)
		})
	}
}

func TestSerializeWKT2(t *testing.T) {
	for _, fixture := range serializeFixtures {
		t.Run(fixture, func(t *testing.T) {
			ps, err := Parse(fixture)
			assert.NoError(t, err)
			out := ps.ToWKT2()
			if ps.IsGeographic() {
				assert.True(t, strings.HasPrefix(out, "GEOGCRS["))
			} else {
				assert.True(t, strings.HasPrefix(out, "PROJCRS["))
			}
			reparseEquivalent(t, ps, out)
		})
	}
}

func TestSerializePROJJSON(t *testing.T) {
	for _, fixture := range serializeFixtures {
		t.Run(fixture, func(t *testing.T) {
			ps, err := Parse(fixture)
			assert.NoError(t, err)
			out := ps.ToPROJJSONString()
			assert.NotEmpty(t, out)
			reparseEquivalent(t, ps, out)
		})
	}
}

func TestIdentifyEPSG(t *testing.T) {
	t.Run("utm by parameters", func(t *testing.T) {
		ps, err := Parse("+proj=utm +zone=19 +datum=WGS84 +units=m +no_defs")
		assert.NoError(t, err)
		assert.Equal(t, "EPSG:32619", ps.IdentifyEPSG())
	})

	t.Run("geographic wgs84", func(t *testing.T) {
		ps, err := Parse("+proj=longlat +datum=WGS84 +no_defs")
		assert.NoError(t, err)
		assert.Equal(t, "EPSG:4326", ps.IdentifyEPSG())
	})

	t.Run("code round trip keeps its code", func(t *testing.T) {
		ps, err := Parse("EPSG:27700")
		assert.NoError(t, err)
		assert.Equal(t, "EPSG:27700", ps.IdentifyEPSG())
	})

	t.Run("unknown parameters yield nothing", func(t *testing.T) {
		ps, err := Parse("+proj=tmerc +lat_0=12.5 +lon_0=44 +k_0=0.9 +ellps=WGS84 +no_defs")
		assert.NoError(t, err)
		assert.Equal(t, "", ps.IdentifyEPSG())
	})

	t.Run("parameters off by more than tolerance", func(t *testing.T) {
		ps, err := Parse("+proj=utm +zone=19 +datum=WGS84 +x_0=500000.5 +no_defs")
		assert.NoError(t, err)
		assert.Equal(t, "", ps.IdentifyEPSG())
	})
}
