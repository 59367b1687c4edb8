package proj

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Definition-string dispatch.                                                                    */
/*                                                                                                */
/* Accepted forms, detected in order: EPSG:<n>, "+proj=..." PROJ strings, PROJJSON documents,     */
/* WKT1/WKT2 records, and a couple of short aliases.                                              */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

var aliasDefs = map[string]string{
	"WGS84":       "+proj=longlat +datum=WGS84 +no_defs",
	"GOOGLE":      "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs",
	"EPSG:900913": "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs",
}

// ParseDefinition parses a CRS description into its raw Definition without
// deriving constants or initializing a projection.
func ParseDefinition(s string) (*Definition, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, errors.Wrap(ErrBadSyntax, "empty definition")
	}

	if alias, ok := aliasDefs[strings.ToUpper(trimmed)]; ok {
		trimmed = alias
	}

	if code, ok := epsgCode(trimmed); ok {
		resolved, err := resolveEPSG(code)
		if err != nil {
			return nil, err
		}
		def, err := ParseDefinition(resolved)
		if err != nil {
			return nil, err
		}
		def.SRSCode = "EPSG:" + strconv.Itoa(code)
		return def, nil
	}

	switch {
	case strings.HasPrefix(trimmed, "+"):
		return parseProjString(trimmed)
	case isPROJJSON(trimmed):
		return parsePROJJSON(trimmed)
	case isWKT(trimmed):
		return parseWKT(trimmed)
	}
	return nil, errors.Wrapf(ErrUnsupported, "definition %q", truncate(trimmed, 40))
}

// Parse parses, derives and initializes a CRS description, memoizing the
// result in the process-wide cache under the verbatim string.
func Parse(s string) (*ProjectionParams, error) {
	if ps, ok := defaultCache.get(s); ok {
		return ps, nil
	}
	def, err := ParseDefinition(s)
	if err != nil {
		return nil, err
	}
	ps, err := Derive(def)
	if err != nil {
		return nil, err
	}
	defaultCache.put(s, ps)
	return ps, nil
}

// epsgCode matches "EPSG:<digits>", case-insensitively.
func epsgCode(s string) (int, bool) {
	if len(s) < 6 || !strings.EqualFold(s[:5], "EPSG:") {
		return 0, false
	}
	code, err := strconv.Atoi(s[5:])
	if err != nil || code <= 0 {
		return 0, false
	}
	return code, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
