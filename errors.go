package proj

import (
	"github.com/pkg/errors"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Error kinds surfaced at the API boundary.                                                      */
/*                                                                                                */
/* Each failure site wraps one of these sentinels with the offending token or coordinate so       */
/* that callers can test the kind with errors.Is while still seeing the diagnostic text.          */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

var (
	// ErrUnsupported is returned when a definition names a projection or
	// construct this library does not implement.
	ErrUnsupported = errors.New("unsupported definition")

	// ErrBadSyntax is returned when a definition string cannot be parsed.
	// Numeric range violations surface as ErrBadSyntax too.
	ErrBadSyntax = errors.New("malformed definition")

	// ErrUnknownEPSG is the error an EPSGResolver reports when its catalog
	// has no such code. The parser surfaces that case as ErrEPSGUnresolved.
	ErrUnknownEPSG = errors.New("unknown EPSG code")

	// ErrNetworkUnavailable is returned when the remote EPSG resolver could
	// not be reached.
	ErrNetworkUnavailable = errors.New("EPSG resolver unavailable")

	// ErrInvalidCoordinate is returned when a NaN or infinite coordinate is
	// presented at the pipeline entry.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrOutOfDomain is returned when a point lies outside a projection's
	// valid domain, or when an iterative routine fails to converge.
	ErrOutOfDomain = errors.New("coordinate outside projection domain")

	// ErrUninitializedProjection indicates Forward/Inverse was called on a
	// projection whose Init has not run. This is a programmer error.
	ErrUninitializedProjection = errors.New("projection not initialized")

	// ErrGridMissing is returned when a mandatory datum shift grid cannot be
	// obtained from the grid provider.
	ErrGridMissing = errors.New("datum shift grid missing")

	// ErrEPSGUnresolved is returned when the built-in table misses and either
	// no resolver is configured or the resolver fails with anything other
	// than ErrNetworkUnavailable (for instance ErrUnknownEPSG).
	ErrEPSGUnresolved = errors.New("EPSG code unresolved")
)

// notConverged wraps ErrOutOfDomain with the name of the iteration that
// exhausted its cap.
func notConverged(routine string) error {
	return errors.Wrapf(ErrOutOfDomain, "%s did not converge", routine)
}
