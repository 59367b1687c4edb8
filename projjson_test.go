package proj

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const projjsonUTM19 = `{
  "type": "ProjectedCRS",
  "name": "WGS 84 / UTM zone 19N",
  "base_crs": {
    "type": "GeographicCRS",
    "name": "WGS 84",
    "datum": {
      "type": "GeodeticReferenceFrame",
      "name": "World Geodetic System 1984",
      "ellipsoid": {"name": "WGS 84", "semi_major_axis": 6378137, "inverse_flattening": 298.257223563}
    }
  },
  "conversion": {
    "name": "UTM zone 19N",
    "method": {"name": "Transverse Mercator"},
    "parameters": [
      {"name": "Latitude of natural origin", "value": 0, "unit": "degree"},
      {"name": "Longitude of natural origin", "value": -69, "unit": "degree"},
      {"name": "Scale factor at natural origin", "value": 0.9996, "unit": "unity"},
      {"name": "False easting", "value": 500000, "unit": "metre"},
      {"name": "False northing", "value": 0, "unit": "metre"}
    ]
  },
  "coordinate_system": {
    "subtype": "Cartesian",
    "axis": [
      {"name": "Easting", "abbreviation": "E", "direction": "east", "unit": "metre"},
      {"name": "Northing", "abbreviation": "N", "direction": "north", "unit": "metre"}
    ]
  }
}`

func TestParsePROJJSON(t *testing.T) {
	t.Run("projected", func(t *testing.T) {
		def, err := ParseDefinition(projjsonUTM19)
		assert.NoError(t, err)
		assert.Equal(t, "tmerc", def.ProjName)
		assert.Equal(t, "wgs84", def.DatumCode)
		assert.Equal(t, 6378137.0, def.A)
		assert.InDelta(t, -69*deg2rad, def.Long0, 1e-12)
		assert.Equal(t, 0.9996, def.K0)
		assert.Equal(t, "enu", def.Axis)
	})

	t.Run("geographic", func(t *testing.T) {
		def, err := ParseDefinition(`{"type":"GeographicCRS","name":"WGS 84","datum":{"type":"GeodeticReferenceFrame","name":"World Geodetic System 1984","ellipsoid":{"name":"WGS 84","semi_major_axis":6378137,"inverse_flattening":298.257223563}},"coordinate_system":{"subtype":"ellipsoidal","axis":[{"name":"Geodetic latitude","abbreviation":"Lat","direction":"north"},{"name":"Geodetic longitude","abbreviation":"Lon","direction":"east"}]}}`)
		assert.NoError(t, err)
		assert.Equal(t, "longlat", def.ProjName)
		assert.Equal(t, "wgs84", def.DatumCode)
		assert.Equal(t, "neu", def.Axis)
	})

	t.Run("agrees with the equivalent code", func(t *testing.T) {
		fromJSON := mustConverter(t, "EPSG:4326", projjsonUTM19)
		fromCode := mustConverter(t, "EPSG:4326", "EPSG:32619")
		a, err := fromJSON.Forward(Point{X: -71, Y: 41})
		assert.NoError(t, err)
		b, err := fromCode.Forward(Point{X: -71, Y: 41})
		assert.NoError(t, err)
		assert.InDelta(t, b.X, a.X, 1e-6)
		assert.InDelta(t, b.Y, a.Y, 1e-6)
	})

	t.Run("broken json is bad syntax", func(t *testing.T) {
		_, err := ParseDefinition(`{"type": "ProjectedCRS", "name": `)
		assert.ErrorIs(t, err, ErrBadSyntax)
	})

	t.Run("unknown method is unsupported", func(t *testing.T) {
		_, err := ParseDefinition(`{"type":"ProjectedCRS","name":"x","conversion":{"name":"c","method":{"name":"Space Oblique Whatever"},"parameters":[]}}`)
		assert.ErrorIs(t, err, ErrUnsupported)
	})
}
