package proj

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Serialization: PROJ string, WKT1, WKT2-2019 and PROJJSON output, plus EPSG identification.     */
/*                                                                                                */
/* Angles are emitted in degrees and lengths in metres unless the CRS carries another unit.       */
/* Every emitted form parses back to an equivalent CRS through this package's own parser, except  */
/* that the WKT and PROJJSON forms carry no nadgrids reference.                                   */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ToProj4 renders the CRS as a PROJ string.
func (p *ProjectionParams) ToProj4() string {
	var sb strings.Builder
	add := func(format string, args ...interface{}) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, format, args...)
	}

	add("+proj=%s", p.ProjName)
	if p.ProjName == "utm" && p.Zone > 0 {
		add("+zone=%d", p.Zone)
		if p.UTMSouth {
			add("+south")
		}
	}
	if p.Lat0 != 0 {
		add("+lat_0=%s", fmtF(p.Lat0*rad2deg))
	}
	if given(p.Lat1) {
		add("+lat_1=%s", fmtF(p.Lat1*rad2deg))
	}
	if given(p.Lat2) {
		add("+lat_2=%s", fmtF(p.Lat2*rad2deg))
	}
	if given(p.LatTS) {
		add("+lat_ts=%s", fmtF(p.LatTS*rad2deg))
	}
	if p.ProjName == "omerc" && given(p.LongC) {
		add("+lonc=%s", fmtF(p.LongC*rad2deg))
	} else if p.Long0 != 0 && p.ProjName != "utm" {
		add("+lon_0=%s", fmtF(p.Long0*rad2deg))
	}
	if given(p.Alpha) {
		add("+alpha=%s", fmtF(p.Alpha*rad2deg))
	}
	if given(p.Gamma) {
		add("+gamma=%s", fmtF(p.Gamma*rad2deg))
	}
	if p.K0 != 1 && p.ProjName != "utm" {
		add("+k_0=%s", fmtF(p.K0))
	}
	if p.X0 != 0 && p.ProjName != "utm" {
		add("+x_0=%s", fmtF(p.X0))
	}
	if p.Y0 != 0 && p.ProjName != "utm" {
		add("+y_0=%s", fmtF(p.Y0))
	}

	_, knownDatum := datumDefs[p.DatumCode]
	_, knownEllps := ellipsoidDefs[p.EllpsName]
	switch {
	case knownDatum:
		add("+datum=%s", p.DatumCode)
	case knownEllps:
		add("+ellps=%s", p.EllpsName)
	default:
		add("+a=%s", fmtF(p.A))
		add("+b=%s", fmtF(p.B))
	}
	if !knownDatum {
		if p.NADGrids != "" {
			add("+nadgrids=%s", p.NADGrids)
		} else if len(p.DatumParams) > 0 {
			strs := make([]string, len(p.DatumParams))
			for i, v := range p.DatumParams {
				strs[i] = fmtF(v)
			}
			add("+towgs84=%s", strings.Join(strs, ","))
		}
	}
	if p.RA {
		add("+R_A")
	}
	if p.Over {
		add("+over")
	}
	if p.Approx {
		add("+approx")
	}
	if p.NoOff {
		add("+no_uoff")
	}
	if p.FromGreenwich != 0 {
		add("+pm=%s", fmtF(p.FromGreenwich*rad2deg))
	}
	if !p.IsGeographic() {
		if p.Units != "" {
			add("+units=%s", p.Units)
		} else if p.ToMeter != 1 {
			add("+to_meter=%s", fmtF(p.ToMeter))
		}
	}
	if p.Axis != "enu" {
		add("+axis=%s", p.Axis)
	}
	add("+no_defs")
	return sb.String()
}

/* WKT parameter emission shared by WKT1, WKT2 and PROJJSON. */

type crsParam struct {
	wkt1    string
	wkt2    string
	value   float64
	angular bool
}

func (p *ProjectionParams) wktParameters() []crsParam {
	var out []crsParam
	addAngle := func(wkt1, wkt2 string, v float64) {
		out = append(out, crsParam{wkt1, wkt2, v * rad2deg, true})
	}
	addLen := func(wkt1, wkt2 string, v float64) {
		out = append(out, crsParam{wkt1, wkt2, v, false})
	}
	addPlain := func(wkt1, wkt2 string, v float64) {
		out = append(out, crsParam{wkt1, wkt2, v, false})
	}

	if given(p.Lat1) {
		addAngle("standard_parallel_1", "Latitude of 1st standard parallel", p.Lat1)
	}
	if given(p.Lat2) {
		addAngle("standard_parallel_2", "Latitude of 2nd standard parallel", p.Lat2)
	}
	if given(p.LatTS) {
		addAngle("standard_parallel_1", "Latitude of standard parallel", p.LatTS)
	}
	if p.ProjName == "omerc" {
		addAngle("latitude_of_center", "Latitude of projection centre", p.Lat0)
		if given(p.LongC) {
			addAngle("longitude_of_center", "Longitude of projection centre", p.LongC)
		}
		if given(p.Alpha) {
			addAngle("azimuth", "Azimuth at projection centre", p.Alpha)
		}
		if given(p.Gamma) {
			addAngle("rectified_grid_angle", "Angle from Rectified to Skew Grid", p.Gamma)
		}
	} else {
		addAngle("latitude_of_origin", "Latitude of natural origin", p.Lat0)
		addAngle("central_meridian", "Longitude of natural origin", p.Long0)
	}
	addPlain("scale_factor", "Scale factor at natural origin", p.K0)
	addLen("false_easting", "False easting", p.X0)
	addLen("false_northing", "False northing", p.Y0)
	return out
}

func (p *ProjectionParams) wktSpheroid() (name string, a, rf float64) {
	name = p.EllpsName
	if name == "" {
		name = "unknown"
	}
	rf = 0
	if p.Es > 0 {
		f := 1 - p.B/p.A
		rf = 1 / f
	}
	return name, p.A, rf
}

// wktDatumName emits the registry code when the datum is a known one so
// that the output reparses onto the same registry entry.
func (p *ProjectionParams) wktDatumName() string {
	if _, ok := datumDefs[p.DatumCode]; ok {
		return p.DatumCode
	}
	if p.DatumName != "" {
		return p.DatumName
	}
	if p.DatumCode != "" && p.DatumCode != "none" {
		return p.DatumCode
	}
	return "unknown"
}

func (p *ProjectionParams) wktTitle() string {
	if p.Title != "" {
		return p.Title
	}
	if p.SRSCode != "" {
		return p.SRSCode
	}
	if p.IsGeographic() {
		return "unknown geographic CRS"
	}
	return "unknown projected CRS"
}

// ToWKT1 renders the CRS as single-line WKT1.
func (p *ProjectionParams) ToWKT1() string {
	var sb strings.Builder
	geogcs := p.wkt1GeogCS()
	if p.IsGeographic() {
		return geogcs
	}
	method, ok := projToMethod[p.ProjName]
	if !ok {
		method = p.ProjName
	}
	fmt.Fprintf(&sb, `PROJCS["%s",%s,PROJECTION["%s"]`, p.wktTitle(), geogcs, method)
	for _, prm := range p.wktParameters() {
		fmt.Fprintf(&sb, `,PARAMETER["%s",%s]`, prm.wkt1, fmtF(prm.value))
	}
	unitName, toMeter := "metre", 1.0
	if p.Units != "" && p.Units != "m" {
		unitName = unitDefs[p.Units].Name
		toMeter = p.ToMeter
	}
	fmt.Fprintf(&sb, `,UNIT["%s",%s]`, unitName, fmtF(toMeter))
	if p.Axis != "enu" {
		sb.WriteString(wkt1Axes(p.Axis))
	}
	sb.WriteString("]")
	return sb.String()
}

func (p *ProjectionParams) wkt1GeogCS() string {
	var sb strings.Builder
	name, a, rf := p.wktSpheroid()
	title := p.wktTitle()
	if !p.IsGeographic() {
		title = "GCS_" + p.wktDatumName()
	}
	fmt.Fprintf(&sb, `GEOGCS["%s",DATUM["D_%s",SPHEROID["%s",%s,%s]`,
		title, p.wktDatumName(), name, fmtF(a), fmtF(rf))
	if len(p.DatumParams) > 0 {
		strs := make([]string, len(p.DatumParams))
		for i, v := range p.DatumParams {
			strs[i] = fmtF(v)
		}
		fmt.Fprintf(&sb, `,TOWGS84[%s]`, strings.Join(strs, ","))
	}
	pm := p.FromGreenwich * rad2deg
	fmt.Fprintf(&sb, `],PRIMEM["Greenwich",%s],UNIT["degree",0.0174532925199433]]`, fmtF(pm))
	return sb.String()
}

func wkt1Axes(axis string) string {
	var sb strings.Builder
	names := map[byte][2]string{
		'e': {"Easting", "EAST"},
		'w': {"Easting", "WEST"},
		'n': {"Northing", "NORTH"},
		's': {"Northing", "SOUTH"},
		'u': {"Up", "UP"},
		'd': {"Down", "DOWN"},
	}
	for i := 0; i < 2; i++ {
		n := names[axis[i]]
		fmt.Fprintf(&sb, `,AXIS["%s",%s]`, n[0], n[1])
	}
	return sb.String()
}

// ToWKT2 renders the CRS as single-line WKT2 (2019).
func (p *ProjectionParams) ToWKT2() string {
	name, a, rf := p.wktSpheroid()
	ellipsoid := fmt.Sprintf(`ELLIPSOID["%s",%s,%s,LENGTHUNIT["metre",1]]`,
		name, fmtF(a), fmtF(rf))
	datum := fmt.Sprintf(`DATUM["%s",%s]`, p.wktDatumName(), ellipsoid)
	primem := fmt.Sprintf(`PRIMEM["Greenwich",%s,ANGLEUNIT["degree",0.0174532925199433]]`,
		fmtF(p.FromGreenwich*rad2deg))

	if p.IsGeographic() {
		return fmt.Sprintf(`GEOGCRS["%s",%s,%s,CS[ellipsoidal,2],`+
			`AXIS["geodetic latitude (Lat)",north],AXIS["geodetic longitude (Lon)",east],`+
			`ANGLEUNIT["degree",0.0174532925199433]]`,
			p.wktTitle(), datum, primem)
	}

	method, ok := projToMethod[p.ProjName]
	if !ok {
		method = p.ProjName
	}
	// WKT2 prefers the spaced spellings.
	method = strings.ReplaceAll(method, "_", " ")

	var conv strings.Builder
	fmt.Fprintf(&conv, `CONVERSION["unnamed",METHOD["%s"]`, method)
	for _, prm := range p.wktParameters() {
		unit := `LENGTHUNIT["metre",1]`
		if prm.angular {
			unit = `ANGLEUNIT["degree",0.0174532925199433]`
		} else if prm.wkt1 == "scale_factor" {
			unit = `SCALEUNIT["unity",1]`
		}
		fmt.Fprintf(&conv, `,PARAMETER["%s",%s,%s]`, prm.wkt2, fmtF(prm.value), unit)
	}
	conv.WriteString("]")

	unitName, toMeter := "metre", 1.0
	if p.Units != "" && p.Units != "m" {
		unitName = unitDefs[p.Units].Name
		toMeter = p.ToMeter
	}
	return fmt.Sprintf(`PROJCRS["%s",BASEGEOGCRS["%s",%s,%s],%s,CS[Cartesian,2],`+
		`AXIS["(E)",east],AXIS["(N)",north],LENGTHUNIT["%s",%s]]`,
		p.wktTitle(), "GCS "+p.wktDatumName(), datum, primem, conv.String(),
		unitName, fmtF(toMeter))
}

// ToPROJJSON renders the CRS as a PROJJSON document tree.
func (p *ProjectionParams) ToPROJJSON() map[string]interface{} {
	name, a, rf := p.wktSpheroid()
	ellipsoid := map[string]interface{}{
		"name":            name,
		"semi_major_axis": a,
	}
	if rf != 0 {
		ellipsoid["inverse_flattening"] = rf
	} else {
		ellipsoid["semi_minor_axis"] = p.B
	}
	datum := map[string]interface{}{
		"type":      "GeodeticReferenceFrame",
		"name":      p.wktDatumName(),
		"ellipsoid": ellipsoid,
	}
	if p.FromGreenwich != 0 {
		datum["prime_meridian"] = map[string]interface{}{
			"name":      "unnamed",
			"longitude": p.FromGreenwich * rad2deg,
		}
	}

	if p.IsGeographic() {
		return map[string]interface{}{
			"type":  "GeographicCRS",
			"name":  p.wktTitle(),
			"datum": datum,
			"coordinate_system": map[string]interface{}{
				"subtype": "ellipsoidal",
				"axis": []interface{}{
					map[string]interface{}{"name": "Geodetic longitude", "abbreviation": "Lon", "direction": "east", "unit": "degree"},
					map[string]interface{}{"name": "Geodetic latitude", "abbreviation": "Lat", "direction": "north", "unit": "degree"},
				},
			},
		}
	}

	method, ok := projToMethod[p.ProjName]
	if !ok {
		method = p.ProjName
	}
	var params []interface{}
	for _, prm := range p.wktParameters() {
		unit := "metre"
		if prm.angular {
			unit = "degree"
		} else if prm.wkt1 == "scale_factor" {
			unit = "unity"
		}
		params = append(params, map[string]interface{}{
			"name":  prm.wkt2,
			"value": prm.value,
			"unit":  unit,
		})
	}
	return map[string]interface{}{
		"type": "ProjectedCRS",
		"name": p.wktTitle(),
		"base_crs": map[string]interface{}{
			"type":  "GeographicCRS",
			"name":  "GCS " + p.wktDatumName(),
			"datum": datum,
		},
		"conversion": map[string]interface{}{
			"name":       "unnamed",
			"method":     map[string]interface{}{"name": strings.ReplaceAll(method, "_", " ")},
			"parameters": params,
		},
		"coordinate_system": map[string]interface{}{
			"subtype": "Cartesian",
			"axis": []interface{}{
				map[string]interface{}{"name": "Easting", "abbreviation": "E", "direction": "east", "unit": "metre"},
				map[string]interface{}{"name": "Northing", "abbreviation": "N", "direction": "north", "unit": "metre"},
			},
		},
	}
}

// ToPROJJSONString renders the CRS as a compact PROJJSON string.
func (p *ProjectionParams) ToPROJJSONString() string {
	b, err := json.Marshal(p.ToPROJJSON())
	if err != nil {
		return ""
	}
	return string(b)
}

/* EPSG identification - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// IdentifyEPSG returns the "EPSG:<n>" string of a built-in code whose
// parameters match this CRS within tolerance, or "" when none does.
func (p *ProjectionParams) IdentifyEPSG() string {
	if p.SRSCode != "" {
		if _, ok := epsgCode(p.SRSCode); ok {
			return p.SRSCode
		}
	}
	// Most-common codes first; map iteration order would otherwise make
	// near-ties (4326 vs 4258) nondeterministic.
	codes := []int{4326, 3857, 4269, 4267, 4258, 4230, 3395, 2154, 27700, 25832}
	if p.ProjName == "utm" && p.Zone >= 1 && p.Zone <= 60 {
		if p.UTMSouth {
			codes = append(codes, 32700+p.Zone)
		} else {
			codes = append(codes, 32600+p.Zone)
		}
	}
	for _, code := range codes {
		defStr, _ := epsgLookup(code)
		candidate, err := Parse(defStr)
		if err != nil {
			continue
		}
		if paramsEquivalent(p, candidate) {
			return "EPSG:" + strconv.Itoa(code)
		}
	}
	return ""
}

// paramsEquivalent compares two derived CRS within the identification
// tolerances: |Δa| < 0.1 m, angles < 1e-9 rad, |Δk0| < 1e-9, false origin
// < 0.01 m.
func paramsEquivalent(a, b *ProjectionParams) bool {
	if a.IsGeographic() != b.IsGeographic() {
		return false
	}
	if !a.IsGeographic() {
		an, bn := a.ProjName, b.ProjName
		if an == "utm" {
			an = "tmerc"
		}
		if bn == "utm" {
			bn = "tmerc"
		}
		if an != bn {
			return false
		}
	}
	if math.Abs(a.A-b.A) >= 0.1 || math.Abs(a.B-b.B) >= 0.1 {
		return false
	}
	if !a.datum.equal(b.datum) {
		return false
	}
	angTol := 1e-9
	if math.Abs(a.Lat0-b.Lat0) >= angTol || math.Abs(a.Long0-b.Long0) >= angTol {
		return false
	}
	if math.Abs(or(a.Lat1, 0)-or(b.Lat1, 0)) >= angTol ||
		math.Abs(or(a.Lat2, 0)-or(b.Lat2, 0)) >= angTol ||
		math.Abs(or(a.LatTS, 0)-or(b.LatTS, 0)) >= angTol {
		return false
	}
	if math.Abs(a.K0-b.K0) >= 1e-9 {
		return false
	}
	if math.Abs(a.X0-b.X0) >= 0.01 || math.Abs(a.Y0-b.Y0) >= 0.01 {
		return false
	}
	if a.ToMeter != b.ToMeter {
		return false
	}
	return true
}
