package proj

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* WKT parsing: lex to a keyword tree, then lower the tree onto a Definition.                     */
/*                                                                                                */
/* Both WKT1 (PROJCS/GEOGCS) and WKT2-2019 (PROJCRS/GEOGCRS/BOUNDCRS) are handled by one walker;  */
/* the keyword sets are disjoint. A compound CRS that references a base CRS stays a tree — the    */
/* walker lowers the whole tree into one flat Definition.                                         */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// A wktNode is one WKT record: KEYWORD[arg, arg, CHILD[...], ...].
type wktNode struct {
	keyword  string
	strs     []string   // quoted-string arguments, in order
	nums     []float64  // numeric arguments, in order
	words    []string   // bare-word arguments (enum values such as EAST)
	children []*wktNode
}

func (n *wktNode) child(keyword string) *wktNode {
	for _, c := range n.children {
		if c.keyword == keyword {
			return c
		}
	}
	return nil
}

func (n *wktNode) childs(keyword string) []*wktNode {
	var out []*wktNode
	for _, c := range n.children {
		if c.keyword == keyword {
			out = append(out, c)
		}
	}
	return out
}

// isWKT reports whether the string opens with a known WKT keyword.
func isWKT(s string) bool {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, "[(")
	if i <= 0 {
		return false
	}
	switch strings.TrimSpace(s[:i]) {
	case "PROJCS", "GEOGCS", "GEOCCS", "LOCAL_CS", "COMPD_CS",
		"PROJCRS", "GEOGCRS", "GEODCRS", "BOUNDCRS", "VERTCRS", "COMPOUNDCRS":
		return true
	}
	return false
}

// lexWKT parses a WKT string into its record tree.
func lexWKT(s string) (*wktNode, error) {
	p := &wktLexer{src: s}
	node, err := p.node()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, errors.Wrapf(ErrBadSyntax, "trailing WKT input %q", p.src[p.pos:])
	}
	return node, nil
}

type wktLexer struct {
	src string
	pos int
}

func (p *wktLexer) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *wktLexer) node() (*wktNode, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && (isWKTIdentChar(p.src[p.pos])) {
		p.pos++
	}
	if p.pos == start {
		return nil, errors.Wrapf(ErrBadSyntax, "WKT keyword expected at %q", p.rest())
	}
	node := &wktNode{keyword: strings.ToUpper(p.src[start:p.pos])}
	p.skipSpace()
	if p.pos >= len(p.src) || (p.src[p.pos] != '[' && p.src[p.pos] != '(') {
		return nil, errors.Wrapf(ErrBadSyntax, "WKT %s wants a bracket at %q", node.keyword, p.rest())
	}
	open := p.src[p.pos]
	p.pos++
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, errors.Wrapf(ErrBadSyntax, "unterminated WKT %s", node.keyword)
		}
		switch c := p.src[p.pos]; {
		case c == ']' || c == ')':
			if (open == '[') != (c == ']') {
				return nil, errors.Wrapf(ErrBadSyntax, "mismatched bracket in WKT %s", node.keyword)
			}
			p.pos++
			return node, nil
		case c == ',':
			p.pos++
		case c == '"':
			str, err := p.quoted()
			if err != nil {
				return nil, err
			}
			node.strs = append(node.strs, str)
		case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
			num, err := p.number()
			if err != nil {
				return nil, err
			}
			node.nums = append(node.nums, num)
		default:
			// Bare word or nested record; decide by what follows the name.
			save := p.pos
			for p.pos < len(p.src) && isWKTIdentChar(p.src[p.pos]) {
				p.pos++
			}
			word := p.src[save:p.pos]
			p.skipSpace()
			if p.pos < len(p.src) && (p.src[p.pos] == '[' || p.src[p.pos] == '(') {
				p.pos = save
				child, err := p.node()
				if err != nil {
					return nil, err
				}
				node.children = append(node.children, child)
			} else {
				if word == "" {
					return nil, errors.Wrapf(ErrBadSyntax, "unexpected WKT character %q", p.rest())
				}
				node.words = append(node.words, word)
			}
		}
	}
}

func (p *wktLexer) quoted() (string, error) {
	p.pos++ // opening quote
	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '"' {
			// WKT2 escapes a quote by doubling it.
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '"' {
				sb.WriteByte('"')
				p.pos += 2
				continue
			}
			p.pos++
			return sb.String(), nil
		}
		sb.WriteByte(c)
		p.pos++
	}
	return "", errors.Wrap(ErrBadSyntax, "unterminated WKT string")
}

func (p *wktLexer) number() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' ||
			c == 'e' || c == 'E':
			p.pos++
		default:
			goto done
		}
	}
done:
	f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, errors.Wrapf(ErrBadSyntax, "WKT number %q", p.src[start:p.pos])
	}
	return f, nil
}

func (p *wktLexer) rest() string {
	if p.pos+20 < len(p.src) {
		return p.src[p.pos:p.pos+20] + "..."
	}
	return p.src[p.pos:]
}

func isWKTIdentChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' ||
		c >= '0' && c <= '9' || c == '_'
}

/* Method and parameter mapping - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - */

// normalizeMethodName lowers a WKT/PROJJSON method name onto the secondary
// lookup key: lower case, with '-', '(', ')' and whitespace mapped to '_'.
func normalizeMethodName(name string) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '\t', '-', '(', ')', '/':
			if !lastUnderscore {
				sb.WriteByte('_')
				lastUnderscore = true
			}
		default:
			sb.WriteRune(r)
			lastUnderscore = false
		}
	}
	return strings.Trim(sb.String(), "_")
}

// methodToProj maps normalized method names onto proj names.
var methodToProj = map[string]string{
	"geographic":                       "longlat",
	"transverse_mercator":              "tmerc",
	"extended_transverse_mercator":     "etmerc",
	"mercator":                         "merc",
	"mercator_variant_a":               "merc",
	"mercator_variant_b":               "merc",
	"mercator_1sp":                     "merc",
	"mercator_2sp":                     "merc",
	"mercator_auxiliary_sphere":        "merc",
	"popular_visualisation_pseudo_mercator": "merc",
	"lambert_conformal_conic":          "lcc",
	"lambert_conformal_conic_1sp":      "lcc",
	"lambert_conformal_conic_2sp":      "lcc",
	"lambert_conic_conformal_1sp":      "lcc",
	"lambert_conic_conformal_2sp":      "lcc",
	"albers_equal_area":                "aea",
	"albers_conic_equal_area":          "aea",
	"albers":                           "aea",
	"stereographic":                    "stere",
	"polar_stereographic":              "stere",
	"polar_stereographic_variant_a":    "stere",
	"polar_stereographic_variant_b":    "stere",
	"oblique_stereographic":            "stere",
	"hotine_oblique_mercator":          "omerc",
	"hotine_oblique_mercator_variant_a": "omerc",
	"hotine_oblique_mercator_variant_b": "omerc",
	"hotine_oblique_mercator_azimuth_natural_origin": "omerc",
	"hotine_oblique_mercator_azimuth_center":         "omerc",
	"oblique_mercator":                 "omerc",
	"cassini_soldner":                  "cass",
	"cassini":                          "cass",
	"lambert_azimuthal_equal_area":     "laea",
	"azimuthal_equidistant":            "aeqd",
	"equidistant_conic":                "eqdc",
	"miller_cylindrical":               "mill",
	"sinusoidal":                       "sinu",
	"mollweide":                        "moll",
	"equirectangular":                  "eqc",
	"equidistant_cylindrical":          "eqc",
	"plate_carree":                     "eqc",
	"cylindrical_equal_area":           "cea",
	"lambert_cylindrical_equal_area":   "cea",
	"gnomonic":                         "gnom",
	"orthographic":                     "ortho",
	"van_der_grinten":                  "vandg",
	"vandergrinten":                    "vandg",
	"robinson":                         "robin",
	"equal_earth":                      "eqearth",
}

// projToMethod is the preferred method name per proj name, used by the
// serializer. (WKT1 spellings; the WKT2 serializer re-spells a few.)
var projToMethod = map[string]string{
	"longlat": "Geographic",
	"tmerc":   "Transverse_Mercator",
	"etmerc":  "Extended_Transverse_Mercator",
	"utm":     "Transverse_Mercator",
	"merc":    "Mercator",
	"lcc":     "Lambert_Conformal_Conic",
	"aea":     "Albers_Equal_Area",
	"stere":   "Stereographic",
	"omerc":   "Hotine_Oblique_Mercator",
	"cass":    "Cassini-Soldner",
	"laea":    "Lambert_Azimuthal_Equal_Area",
	"aeqd":    "Azimuthal_Equidistant",
	"eqdc":    "Equidistant_Conic",
	"mill":    "Miller_Cylindrical",
	"sinu":    "Sinusoidal",
	"moll":    "Mollweide",
	"eqc":     "Equirectangular",
	"cea":     "Cylindrical_Equal_Area",
	"gnom":    "Gnomonic",
	"ortho":   "Orthographic",
	"vandg":   "Van_der_Grinten",
	"robin":   "Robinson",
	"eqearth": "Equal_Earth",
}

// applyWKTParameter lowers one PARAMETER record. Angular values arrive in
// degrees and are stored in radians.
func applyWKTParameter(def *Definition, name string, val float64) error {
	switch normalizeMethodName(name) {
	case "standard_parallel_1", "latitude_of_1st_standard_parallel":
		// Cylindrical and stereographic methods use the standard parallel
		// as the latitude of true scale.
		switch def.ProjName {
		case "merc", "cea", "stere", "eqc":
			def.LatTS = val * deg2rad
		default:
			def.Lat1 = val * deg2rad
		}
	case "standard_parallel_2", "latitude_of_2nd_standard_parallel":
		def.Lat2 = val * deg2rad
	case "false_easting", "easting_at_false_origin", "easting_at_projection_centre":
		def.X0 = val
	case "false_northing", "northing_at_false_origin", "northing_at_projection_centre":
		def.Y0 = val
	case "latitude_of_origin", "latitude_of_natural_origin", "central_parallel",
		"latitude_of_false_origin":
		def.Lat0 = val * deg2rad
	case "latitude_of_center", "latitude_of_centre", "latitude_of_projection_centre":
		def.Lat0 = val * deg2rad
	case "longitude_of_center", "longitude_of_centre", "longitude_of_projection_centre":
		def.LongC = val * deg2rad
	case "central_meridian", "longitude_of_natural_origin", "longitude_of_false_origin":
		def.Long0 = val * deg2rad
	case "scale_factor", "scale_factor_at_natural_origin",
		"scale_factor_at_projection_centre", "scale_factor_on_initial_line":
		def.K0 = val
	case "azimuth", "azimuth_at_projection_centre", "azimuth_of_initial_line":
		def.Alpha = val * deg2rad
	case "rectified_grid_angle", "angle_from_rectified_to_skew_grid":
		def.Gamma = val * deg2rad
	case "standard_parallel", "latitude_of_standard_parallel":
		def.LatTS = val * deg2rad
	case "pseudo_standard_parallel_1":
		def.Lat1 = val * deg2rad
	case "auxiliary_sphere_type", "zone_width", "x_scale", "y_scale", "xy_plane_rotation":
		// Not modelled.
	default:
		return errors.Wrapf(ErrUnsupported, "WKT parameter %q", name)
	}
	return nil
}

/* Tree lowering - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// parseWKT lowers a WKT string to a Definition.
func parseWKT(s string) (*Definition, error) {
	root, err := lexWKT(s)
	if err != nil {
		return nil, err
	}
	def := NewDefinition()
	if err := lowerWKTNode(def, root); err != nil {
		return nil, err
	}

	if def.ProjName == "" {
		return nil, errors.Wrap(ErrUnsupported, "WKT names no projection method")
	}
	// False origin values were expressed in the CRS's linear unit.
	if given(def.ToMeter) && def.ProjName != "longlat" {
		def.X0 = or(def.X0, 0) * def.ToMeter
		def.Y0 = or(def.Y0, 0) * def.ToMeter
	}
	// A centre longitude doubles as the central meridian everywhere except
	// the oblique Mercator, which distinguishes the two.
	if !given(def.Long0) && given(def.LongC) && def.ProjName != "omerc" {
		def.Long0 = def.LongC
	}
	// Two-axis coordinate systems leave the vertical at its default.
	switch len(def.Axis) {
	case 3:
	case 2:
		def.Axis += "u"
	default:
		def.Axis = "enu"
	}
	return def, nil
}

func lowerWKTNode(def *Definition, n *wktNode) error {
	switch n.keyword {
	case "PROJCS", "PROJCRS":
		if len(n.strs) > 0 {
			def.Title = n.strs[0]
		}
		return lowerWKTChildren(def, n)

	case "GEOGCS", "GEOGCRS", "GEODCRS", "BASEGEOGCRS", "BASEGEODCRS":
		if def.ProjName == "" {
			def.ProjName = "longlat"
		}
		if def.Title == "" && len(n.strs) > 0 {
			def.Title = n.strs[0]
		}
		if def.DatumCode == "" && len(n.strs) > 0 {
			def.DatumCode = cleanWKTDatumCode(n.strs[0], def)
		}
		return lowerWKTChildren(def, n)

	case "BOUNDCRS":
		return lowerWKTChildren(def, n)

	case "SOURCECRS", "BASECRS":
		return lowerWKTChildren(def, n)

	case "TARGETCRS", "USAGE", "SCOPE", "AREA", "BBOX", "REMARK", "ID", "AUTHORITY":
		return nil

	case "ABRIDGEDTRANSFORMATION":
		return lowerWKTAbridged(def, n)

	case "DATUM", "TRF", "GEODETICDATUM":
		if len(n.strs) > 0 {
			def.DatumCode = cleanWKTDatumCode(n.strs[0], def)
		}
		return lowerWKTChildren(def, n)

	case "ENSEMBLE":
		// Datum ensembles name member datums; the ensemble name itself
		// carries the code.
		if len(n.strs) > 0 {
			def.DatumCode = cleanWKTDatumCode(n.strs[0], def)
		}
		return lowerWKTChildren(def, n)

	case "SPHEROID", "ELLIPSOID":
		return lowerWKTSpheroid(def, n)

	case "PRIMEM":
		if len(n.strs) > 0 {
			name := strings.ToLower(n.strs[0])
			if deg, ok := primeMeridianDefs[name]; ok {
				def.FromGreenwich = deg * deg2rad
			} else if len(n.nums) > 0 {
				def.FromGreenwich = n.nums[0] * deg2rad
			} else {
				return errors.Wrapf(ErrUnsupported, "prime meridian %q", n.strs[0])
			}
		}
		return nil

	case "PROJECTION": // WKT1
		if len(n.strs) == 0 {
			return errors.Wrap(ErrBadSyntax, "PROJECTION wants a name")
		}
		return lowerWKTMethod(def, n.strs[0])

	case "CONVERSION": // WKT2
		return lowerWKTChildren(def, n)

	case "METHOD": // WKT2
		if len(n.strs) == 0 {
			return errors.Wrap(ErrBadSyntax, "METHOD wants a name")
		}
		return lowerWKTMethod(def, n.strs[0])

	case "PARAMETER":
		if len(n.strs) == 0 || len(n.nums) == 0 {
			return errors.Wrap(ErrBadSyntax, "PARAMETER wants a name and value")
		}
		return applyWKTParameter(def, n.strs[0], n.nums[0])

	case "TOWGS84":
		if len(n.nums) != 3 && len(n.nums) != 7 {
			return errors.Wrap(ErrBadSyntax, "TOWGS84 wants 3 or 7 values")
		}
		def.DatumParams = append([]float64(nil), n.nums...)
		return nil

	case "UNIT", "LENGTHUNIT": // linear for PROJCS, angular inside GEOGCS
		return lowerWKTUnit(def, n)

	case "ANGLEUNIT":
		// Geographic coordinates stay degrees at the boundary.
		return nil

	case "CS":
		return lowerWKTChildren(def, n)

	case "AXIS":
		lowerWKTAxis(def, n)
		return nil

	case "LOCAL_CS":
		def.ProjName = "identity"
		return nil

	case "COMPD_CS", "COMPOUNDCRS":
		return lowerWKTChildren(def, n)

	case "VERT_CS", "VERTCRS", "VDATUM", "VERT_DATUM", "EXTENSION", "ORDER", "MERIDIAN":
		return nil
	}
	// Unknown records are skipped, like unknown +keys.
	return nil
}

func lowerWKTChildren(def *Definition, n *wktNode) error {
	for _, c := range n.children {
		if err := lowerWKTNode(def, c); err != nil {
			return err
		}
	}
	return nil
}

func lowerWKTMethod(def *Definition, method string) error {
	name, ok := methodToProj[normalizeMethodName(method)]
	if !ok {
		return errors.Wrapf(ErrUnsupported, "projection method %q", method)
	}
	def.ProjName = name
	if def.ProjName == "omerc" && isTypeAMethodName(method) {
		def.NoOff = true
	}
	return nil
}

// isTypeAMethodName detects the Hotine oblique Mercator "variant A"
// spellings; absence of a marker never implies Type A.
func isTypeAMethodName(method string) bool {
	m := normalizeMethodName(method)
	return strings.Contains(m, "variant_a") || strings.Contains(m, "azimuth_natural_origin")
}

func lowerWKTSpheroid(def *Definition, n *wktNode) error {
	if len(n.nums) < 2 {
		return errors.Wrap(ErrBadSyntax, "SPHEROID wants a and rf")
	}
	if len(n.strs) > 0 {
		def.EllpsName = cleanWKTEllipsoidName(n.strs[0])
	}
	def.A = n.nums[0]
	if n.nums[1] != 0 {
		def.Rf = n.nums[1]
	} else {
		def.B = def.A
	}
	return nil
}

func lowerWKTUnit(def *Definition, n *wktNode) error {
	if len(n.strs) == 0 {
		return nil
	}
	name := strings.ToLower(n.strs[0])
	if name == "degree" || name == "degrees" || name == "radian" || name == "grad" {
		return nil // angular unit of a geographic CS
	}
	if key, ok := wktUnitNames[name]; ok {
		def.Units = key
		def.ToMeter = unitDefs[key].ToMeter
		return nil
	}
	if u, ok := unitDefs[name]; ok {
		def.Units = name
		def.ToMeter = u.ToMeter
		return nil
	}
	if len(n.nums) > 0 {
		def.ToMeter = n.nums[0]
		return nil
	}
	return errors.Wrapf(ErrUnsupported, "unit %q", n.strs[0])
}

// lowerWKTAxis accumulates axis directions into the three-char code.
func lowerWKTAxis(def *Definition, n *wktNode) {
	dir := ""
	if len(n.words) > 0 {
		dir = strings.ToLower(n.words[0])
	} else if len(n.strs) > 1 {
		dir = strings.ToLower(n.strs[1])
	} else if len(n.strs) == 1 && strings.Contains(n.strs[0], "(") {
		// WKT2 abbreviates as e.g. "(E)"; the direction is a bare word arg.
		return
	}
	var c byte
	switch dir {
	case "east":
		c = 'e'
	case "west":
		c = 'w'
	case "north":
		c = 'n'
	case "south":
		c = 's'
	case "up":
		c = 'u'
	case "down":
		c = 'd'
	default:
		return
	}
	if !def.axisSeen {
		def.Axis = ""
		def.axisSeen = true
	}
	if len(def.Axis) < 3 {
		def.Axis += string(c)
	}
}

// lowerWKTAbridged extracts towgs84 parameters from a BOUNDCRS abridged
// transformation.
func lowerWKTAbridged(def *Definition, n *wktNode) error {
	towgs := make([]float64, 7)
	seen := 0
	for _, c := range n.childs("PARAMETER") {
		if len(c.strs) == 0 || len(c.nums) == 0 {
			continue
		}
		idx := -1
		switch normalizeMethodName(c.strs[0]) {
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
			towgs[idx] = c.nums[0]
			seen++
		}
	}
	if seen > 0 {
		if towgs[3] == 0 && towgs[4] == 0 && towgs[5] == 0 && towgs[6] == 0 {
			def.DatumParams = towgs[:3]
		} else {
			// The abridged scale difference is (multiplier-1)*1e6 == ppm.
			def.DatumParams = towgs
		}
	}
	return nil
}

/* Name cleanup, carried from the reference WKT1 consumers. */

func cleanWKTDatumCode(name string, def *Definition) string {
	code := strings.ToLower(strings.TrimSpace(name))
	code = strings.ReplaceAll(code, " ", "_")
	if strings.HasPrefix(code, "d_") {
		code = code[2:]
	}
	switch {
	case code == "new_zealand_geodetic_datum_1949" || code == "new_zealand_1949":
		code = "nzgd49"
	case code == "wgs_1984" || code == "wgs_84" || code == "world_geodetic_system_1984" ||
		code == "world_geodetic_system_1984_ensemble":
		code = "wgs84"
	case code == "european_terrestrial_reference_system_1989" || code == "etrs_1989" ||
		code == "etrs89":
		// ETRS89 is WGS84-equivalent at this library's accuracy.
		code = "wgs84"
	case strings.Contains(code, "osgb_1936") || strings.Contains(code, "osgb36"):
		code = "osgb36"
	case code == "north_american_datum_1983" || code == "nad_1983":
		code = "nad83"
	case code == "north_american_datum_1927" || code == "nad_1927":
		code = "nad27"
	case strings.Contains(code, "belge"):
		code = "rnb72"
	}
	code = strings.TrimSuffix(code, "_ferro")
	code = strings.TrimSuffix(code, "_jakarta")
	if _, ok := datumDefs[code]; !ok {
		// Unknown datum names keep the raw code; derivation will ignore it
		// and fall back to the spheroid parameters.
		return code
	}
	return code
}

func cleanWKTEllipsoidName(name string) string {
	e := strings.TrimSpace(name)
	e = strings.ReplaceAll(e, "_19", "")
	e = strings.ReplaceAll(e, "clarke_18", "clrk")
	e = strings.ReplaceAll(e, "Clarke_18", "clrk")
	if len(e) >= 13 && strings.EqualFold(e[:13], "international") {
		e = "intl"
	}
	if strings.EqualFold(e, "WGS_1984") || strings.EqualFold(e, "WGS 84") {
		e = "WGS84"
	}
	if strings.EqualFold(e, "GRS_1980") || strings.EqualFold(e, "GRS 1980") {
		e = "GRS80"
	}
	return e
}
