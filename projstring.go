package proj

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* PROJ-string parsing.                                                                           */
/*                                                                                                */
/* A PROJ string is whitespace-separated "+key" and "+key=value" tokens. Unknown keys are         */
/* silently ignored, matching the reference behaviour. Angle values accept signed decimal         */
/* degrees, the d/r unit suffixes, and flexible deg-min-sec with an optional NSEW compass         */
/* suffix, e.g. 45d30'15"N or 3°37′12″W.                                                          */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

var dmsSeparators = regexp.MustCompile(`[^0-9.\-]+`)

// parseProjString lowers a "+proj=..." string to a Definition.
func parseProjString(s string) (*Definition, error) {
	def := NewDefinition()

	for _, tok := range strings.Fields(s) {
		if !strings.HasPrefix(tok, "+") {
			return nil, errors.Wrapf(ErrBadSyntax, "token %q", tok)
		}
		key, val := tok[1:], ""
		if i := strings.IndexByte(key, '='); i >= 0 {
			key, val = key[:i], key[i+1:]
		}
		if err := applyProjParam(def, key, val); err != nil {
			return nil, err
		}
	}
	if def.ProjName == "" {
		return nil, errors.Wrap(ErrBadSyntax, "missing +proj")
	}
	return def, nil
}

func applyProjParam(def *Definition, key, val string) error {
	var err error
	switch key {
	case "proj":
		def.ProjName = val
	case "title":
		def.Title = val
	case "ellps":
		def.EllpsName = val
	case "datum":
		def.DatumCode = strings.ToLower(val)
	case "a":
		def.A, err = parseProjFloat(key, val)
	case "b":
		def.B, err = parseProjFloat(key, val)
	case "rf":
		def.Rf, err = parseProjFloat(key, val)
	case "R":
		def.A, err = parseProjFloat(key, val)
		def.B = def.A
	case "lat_0":
		def.Lat0, err = parseProjAngle(key, val)
	case "lat_1":
		def.Lat1, err = parseProjAngle(key, val)
	case "lat_2":
		def.Lat2, err = parseProjAngle(key, val)
	case "lat_ts":
		def.LatTS, err = parseProjAngle(key, val)
	case "lon_0", "long_0":
		def.Long0, err = parseProjAngle(key, val)
	case "lon_1":
		def.Long1, err = parseProjAngle(key, val)
	case "lon_2":
		def.Long2, err = parseProjAngle(key, val)
	case "lonc", "lon_c":
		def.LongC, err = parseProjAngle(key, val)
	case "alpha":
		def.Alpha, err = parseProjAngle(key, val)
	case "gamma":
		def.Gamma, err = parseProjAngle(key, val)
	case "k", "k_0":
		def.K0, err = parseProjFloat(key, val)
	case "x_0":
		def.X0, err = parseProjFloat(key, val)
	case "y_0":
		def.Y0, err = parseProjFloat(key, val)
	case "units":
		def.Units = val
	case "to_meter":
		def.ToMeter, err = parseProjFloat(key, val)
	case "vto_meter":
		def.VToMeter, err = parseProjFloat(key, val)
	case "pm":
		def.FromGreenwich, err = parsePrimeMeridian(val)
	case "axis":
		if len(val) != 3 || !validAxis(val) {
			return errors.Wrapf(ErrBadSyntax, "axis %q", val)
		}
		def.Axis = val
	case "zone":
		z, zerr := strconv.Atoi(val)
		if zerr != nil {
			return errors.Wrapf(ErrBadSyntax, "zone %q", val)
		}
		def.Zone = z
	case "south":
		def.UTMSouth = true
	case "towgs84":
		def.DatumParams, err = parseTowgs84(val)
	case "nadgrids":
		def.NADGrids = val
	case "no_defs":
		def.NoDefs = true
	case "over":
		def.Over = true
	case "approx":
		def.Approx = true
	case "R_A":
		def.RA = true
	case "no_uoff", "no_off":
		def.NoOff = true
	case "no_rot":
		def.NoRot = true
	default:
		// Unrecognised +keys are ignored.
	}
	return err
}

func validAxis(axis string) bool {
	for i := 0; i < 3; i++ {
		switch axis[i] {
		case 'e', 'w', 'n', 's', 'u', 'd':
		default:
			return false
		}
	}
	return true
}

func parseProjFloat(key, val string) (float64, error) {
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrBadSyntax, "%s=%q", key, val)
	}
	return f, nil
}

func parseTowgs84(val string) ([]float64, error) {
	parts := strings.Split(val, ",")
	if len(parts) != 3 && len(parts) != 7 {
		return nil, errors.Wrapf(ErrBadSyntax, "towgs84=%q wants 3 or 7 values", val)
	}
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrapf(ErrBadSyntax, "towgs84 value %q", p)
		}
		out[i] = f
	}
	return out, nil
}

func parsePrimeMeridian(val string) (float64, error) {
	if deg, ok := primeMeridianDefs[strings.ToLower(val)]; ok {
		return deg * deg2rad, nil
	}
	deg, err := parseDMS(val)
	if err != nil {
		return 0, errors.Wrapf(ErrBadSyntax, "pm=%q", val)
	}
	return deg * deg2rad, nil
}

// parseProjAngle converts a PROJ angle value to radians. A trailing r marks
// radians, a trailing d plain degrees; anything else runs through the DMS
// parser.
func parseProjAngle(key, val string) (float64, error) {
	if val == "" {
		return 0, errors.Wrapf(ErrBadSyntax, "%s wants a value", key)
	}
	switch val[len(val)-1] {
	case 'r', 'R':
		f, err := strconv.ParseFloat(val[:len(val)-1], 64)
		if err != nil {
			return 0, errors.Wrapf(ErrBadSyntax, "%s=%q", key, val)
		}
		return f, nil
	}
	deg, err := parseDMS(val)
	if err != nil {
		return 0, errors.Wrapf(ErrBadSyntax, "%s=%q", key, val)
	}
	return deg * deg2rad, nil
}

/**
 * Parses a string representing degrees/minutes/seconds into numeric degrees.
 *
 * This is very flexible on formats, allowing signed decimal degrees, or
 * deg-min-sec optionally suffixed by compass direction (NSEW); a variety of
 * separators are accepted. Examples -3.62, '3 37 12W', '3°37′12″W', '45d30'.
 */
func parseDMS(s string) (float64, error) {
	orig := s
	s = strings.TrimSpace(s)

	// Signed decimal degrees pass straight through.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	if len(s) == 0 {
		return 0, errors.Wrapf(ErrBadSyntax, "degree value %q", orig)
	}

	negative := s[0] == '-'
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 0, errors.Wrapf(ErrBadSyntax, "degree value %q", orig)
	}

	switch s[len(s)-1] {
	case 'S', 'W':
		negative = !negative
		s = s[:len(s)-1]
	case 'N', 'E':
		s = s[:len(s)-1]
	case 'd', 'D':
		s = s[:len(s)-1]
	}
	s = strings.TrimSpace(s)

	parts := dmsSeparators.Split(s, -1)
	if len(parts) == 0 || parts[0] == "" {
		return 0, errors.Wrapf(ErrBadSyntax, "degree value %q", orig)
	}
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	multiplier := 1.0
	sum := 0.0
	for i := range parts {
		f, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return 0, errors.Wrapf(ErrBadSyntax, "degree value %q", orig)
		}
		sum += f * multiplier
		multiplier /= 60.0
	}
	if negative {
		sum = -sum
	}
	return sum, nil
}
