package proj

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* PROJJSON decoding.                                                                             */
/*                                                                                                */
/* PROJJSON mirrors the WKT2 model as a JSON object tree; the decoder reuses the WKT method and   */
/* parameter lowering so both forms stay in step.                                                 */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

type projJSON struct {
	Type          string            `json:"type"`
	Name          string            `json:"name"`
	BaseCRS       *projJSON         `json:"base_crs,omitempty"`
	SourceCRS     *projJSON         `json:"source_crs,omitempty"`
	Datum         *projJSONDatum    `json:"datum,omitempty"`
	DatumEnsemble *projJSONDatum    `json:"datum_ensemble,omitempty"`
	Conversion    *projJSONConv     `json:"conversion,omitempty"`
	Transformation *projJSONConv    `json:"transformation,omitempty"`
	CoordSystem   *projJSONCS       `json:"coordinate_system,omitempty"`
	ID            *projJSONID       `json:"id,omitempty"`
}

type projJSONDatum struct {
	Type          string             `json:"type"`
	Name          string             `json:"name"`
	Ellipsoid     *projJSONEllipsoid `json:"ellipsoid,omitempty"`
	PrimeMeridian *projJSONPrimeM    `json:"prime_meridian,omitempty"`
}

type projJSONEllipsoid struct {
	Name              string   `json:"name"`
	SemiMajorAxis     *float64 `json:"semi_major_axis,omitempty"`
	SemiMinorAxis     *float64 `json:"semi_minor_axis,omitempty"`
	InverseFlattening *float64 `json:"inverse_flattening,omitempty"`
	Radius            *float64 `json:"radius,omitempty"`
}

type projJSONPrimeM struct {
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"`
}

type projJSONConv struct {
	Name       string            `json:"name"`
	Method     projJSONNamed     `json:"method"`
	Parameters []projJSONParam   `json:"parameters"`
}

type projJSONNamed struct {
	Name string `json:"name"`
}

type projJSONParam struct {
	Name  string          `json:"name"`
	Value float64         `json:"value"`
	Unit  json.RawMessage `json:"unit,omitempty"`
}

type projJSONCS struct {
	Subtype string         `json:"subtype"`
	Axis    []projJSONAxis `json:"axis"`
}

type projJSONAxis struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Direction    string `json:"direction"`
}

type projJSONID struct {
	Authority string `json:"authority"`
	Code      int    `json:"code"`
}

// isPROJJSON detects a PROJJSON payload: the first '{' must come with a
// "type" member.
func isPROJJSON(s string) bool {
	i := strings.IndexByte(s, '{')
	if i < 0 {
		return false
	}
	return strings.Contains(s, `"type"`)
}

// parsePROJJSON lowers a PROJJSON document to a Definition.
func parsePROJJSON(s string) (*Definition, error) {
	var doc projJSON
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, errors.Wrapf(ErrBadSyntax, "PROJJSON: %v", err)
	}
	def := NewDefinition()
	if err := lowerPROJJSON(def, &doc); err != nil {
		return nil, err
	}
	if def.ProjName == "" {
		return nil, errors.Wrap(ErrUnsupported, "PROJJSON names no projection method")
	}
	if !given(def.Long0) && given(def.LongC) && def.ProjName != "omerc" {
		def.Long0 = def.LongC
	}
	return def, nil
}

func lowerPROJJSON(def *Definition, doc *projJSON) error {
	if def.Title == "" {
		def.Title = doc.Name
	}
	switch doc.Type {
	case "GeographicCRS", "GeodeticCRS":
		if def.ProjName == "" {
			def.ProjName = "longlat"
		}
	case "ProjectedCRS", "BoundCRS", "":
	default:
		return errors.Wrapf(ErrUnsupported, "PROJJSON type %q", doc.Type)
	}

	if doc.SourceCRS != nil {
		if err := lowerPROJJSON(def, doc.SourceCRS); err != nil {
			return err
		}
	}
	if doc.BaseCRS != nil {
		if err := lowerPROJJSON(def, doc.BaseCRS); err != nil {
			return err
		}
	}

	datum := doc.Datum
	if datum == nil {
		datum = doc.DatumEnsemble
	}
	if datum != nil {
		if def.DatumCode == "" {
			def.DatumCode = cleanWKTDatumCode(datum.Name, def)
		}
		if e := datum.Ellipsoid; e != nil {
			def.EllpsName = cleanWKTEllipsoidName(e.Name)
			if e.Radius != nil {
				def.A = *e.Radius
				def.B = *e.Radius
			}
			if e.SemiMajorAxis != nil {
				def.A = *e.SemiMajorAxis
			}
			if e.SemiMinorAxis != nil {
				def.B = *e.SemiMinorAxis
			}
			if e.InverseFlattening != nil {
				if *e.InverseFlattening == 0 {
					def.B = def.A
				} else {
					def.Rf = *e.InverseFlattening
				}
			}
		}
		if pm := datum.PrimeMeridian; pm != nil {
			def.FromGreenwich = pm.Longitude * deg2rad
		}
	}

	if conv := doc.Conversion; conv != nil {
		if err := lowerWKTMethod(def, conv.Method.Name); err != nil {
			return err
		}
		for _, p := range conv.Parameters {
			if err := applyWKTParameter(def, p.Name, projJSONParamDegrees(p)); err != nil {
				return err
			}
		}
	}
	if tr := doc.Transformation; tr != nil &&
		(strings.Contains(normalizeMethodName(tr.Method.Name), "position_vector") ||
			strings.Contains(normalizeMethodName(tr.Method.Name), "geocentric_translations")) {
		towgs := make([]float64, 7)
		n := 0
		for _, p := range tr.Parameters {
			idx := -1
			switch normalizeMethodName(p.Name) {
			case "x_axis_translation":
				idx = 0
			case "y_axis_translation":
				idx = 1
			case "z_axis_translation":
				idx = 2
			case "x_axis_rotation":
				idx = 3
			case "y_axis_rotation":
				idx = 4
			case "z_axis_rotation":
				idx = 5
			case "scale_difference":
				idx = 6
			}
			if idx >= 0 {
				towgs[idx] = p.Value
				n++
			}
		}
		if n > 0 {
			if towgs[3] == 0 && towgs[4] == 0 && towgs[5] == 0 && towgs[6] == 0 {
				def.DatumParams = towgs[:3]
			} else {
				def.DatumParams = towgs
			}
		}
	}

	if cs := doc.CoordSystem; cs != nil && len(cs.Axis) > 0 {
		axis := ""
		for _, a := range cs.Axis {
			switch strings.ToLower(a.Direction) {
			case "east":
				axis += "e"
			case "west":
				axis += "w"
			case "north":
				axis += "n"
			case "south":
				axis += "s"
			case "up":
				axis += "u"
			case "down":
				axis += "d"
			}
		}
		for len(axis) < 3 {
			axis += string("enu"[len(axis)])
		}
		def.Axis = axis[:3]
	}
	return nil
}

// projJSONParamDegrees yields the parameter value in the unit the WKT
// lowering expects: degrees for angles, metres for lengths.
func projJSONParamDegrees(p projJSONParam) float64 {
	if len(p.Unit) == 0 {
		return p.Value
	}
	var name string
	if err := json.Unmarshal(p.Unit, &name); err == nil {
		// Plain-string units: "degree" and "metre" are already what the
		// lowering expects.
		return p.Value
	}
	var obj struct {
		Type             string  `json:"type"`
		Name             string  `json:"name"`
		ConversionFactor float64 `json:"conversion_factor"`
	}
	if err := json.Unmarshal(p.Unit, &obj); err != nil {
		return p.Value
	}
	switch obj.Type {
	case "AngularUnit":
		if obj.Name != "degree" && obj.ConversionFactor != 0 {
			return p.Value * obj.ConversionFactor * rad2deg
		}
	case "LinearUnit":
		if obj.ConversionFactor != 0 {
			return p.Value * obj.ConversionFactor
		}
	}
	return p.Value
}
