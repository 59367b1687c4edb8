package proj

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* EPSG code resolution.                                                                          */
/*                                                                                                */
/* A small built-in table answers the common codes without any I/O. Anything else goes to the     */
/* pluggable resolver (typically an HTTP client against an EPSG catalog, outside the core);       */
/* its answers are memoized for the life of the process.                                          */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// An EPSGResolver fetches a definition string (PROJ or WKT) for an EPSG
// code. Implementations return ErrUnknownEPSG (wrapped) when the catalog has
// no such code and ErrNetworkUnavailable when it cannot be reached.
type EPSGResolver interface {
	Fetch(code int) (string, error)
}

var epsgResolverMu sync.RWMutex
var epsgResolver EPSGResolver

// SetEPSGResolver installs the process-wide fallback resolver. Intended for
// start-up configuration only.
func SetEPSGResolver(r EPSGResolver) {
	epsgResolverMu.Lock()
	defer epsgResolverMu.Unlock()
	epsgResolver = r
}

func currentEPSGResolver() EPSGResolver {
	epsgResolverMu.RLock()
	defer epsgResolverMu.RUnlock()
	return epsgResolver
}

var epsgDefs = map[int]string{
	4326:   "+proj=longlat +datum=WGS84 +no_defs",
	4269:   "+proj=longlat +datum=NAD83 +no_defs",
	4267:   "+proj=longlat +datum=NAD27 +no_defs",
	4258:   "+proj=longlat +ellps=GRS80 +towgs84=0,0,0 +no_defs",
	4230:   "+proj=longlat +ellps=intl +no_defs",
	3857:   "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs",
	900913: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs",
	3395:   "+proj=merc +lon_0=0 +k=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs",
	2154:   "+proj=lcc +lat_1=49 +lat_2=44 +lat_0=46.5 +lon_0=3 +x_0=700000 +y_0=6600000 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	27700:  "+proj=tmerc +lat_0=49 +lon_0=-2 +k=0.9996012717 +x_0=400000 +y_0=-100000 +datum=OSGB36 +units=m +no_defs",
	25832:  "+proj=utm +zone=32 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
}

// epsgLookup answers a code from the built-in table, including the two UTM
// ranges 32601-32660 (north) and 32701-32760 (south).
func epsgLookup(code int) (string, bool) {
	if s, ok := epsgDefs[code]; ok {
		return s, true
	}
	if code >= 32601 && code <= 32660 {
		return fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", code-32600), true
	}
	if code >= 32701 && code <= 32760 {
		return fmt.Sprintf("+proj=utm +zone=%d +south +datum=WGS84 +units=m +no_defs", code-32700), true
	}
	return "", false
}

var epsgRemoteCache sync.Map // code -> string

// resolveEPSG returns the definition string for a code: built-in table
// first, then the memoized remote resolver.
func resolveEPSG(code int) (string, error) {
	if s, ok := epsgLookup(code); ok {
		return s, nil
	}
	if s, ok := epsgRemoteCache.Load(code); ok {
		return s.(string), nil
	}
	r := currentEPSGResolver()
	if r == nil {
		return "", errors.Wrapf(ErrEPSGUnresolved, "EPSG:%d not in built-in table and no resolver configured", code)
	}
	s, err := r.Fetch(code)
	if err != nil {
		if errors.Is(err, ErrNetworkUnavailable) {
			return "", err
		}
		return "", errors.Wrapf(ErrEPSGUnresolved, "EPSG:%d: %v", code, err)
	}
	epsgRemoteCache.Store(code, s)
	return s, nil
}
