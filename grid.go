package proj

import (
	"math"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Grid-based datum shifts.                                                                       */
/*                                                                                                */
/* A grid file is a forest of subgrids, each a rectangular lattice of (Δλ, Δφ) shifts in seconds  */
/* of arc. Lookup tries subgrids in file order. Following the NTv2 convention the grids store     */
/* longitudes with the sign reversed (west positive); the evaluator negates λ on entry and exit.  */
/*                                                                                                */
/* The binary NTv2/GeoTIFF formats are parsed by external collaborators; the core sees grids      */
/* through the GridProvider interface only.                                                       */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// A Subgrid is one lattice of datum shifts. LLLam/LLPhi is the lower-left
// corner and DelLam/DelPhi the cell size, all in radians with west-positive
// longitude. CvsLam/CvsPhi hold the shifts in seconds of arc, row-major from
// the lower-left corner, each NLam*NPhi long.
type Subgrid struct {
	LLLam, LLPhi   float64
	DelLam, DelPhi float64
	NLam, NPhi     int
	CvsLam, CvsPhi []float64
}

// contains tests the closed-open cell coverage of the subgrid.
func (sg *Subgrid) contains(lam, phi float64) bool {
	return lam >= sg.LLLam && lam < sg.LLLam+float64(sg.NLam-1)*sg.DelLam &&
		phi >= sg.LLPhi && phi < sg.LLPhi+float64(sg.NPhi-1)*sg.DelPhi
}

// interpolate returns the bilinear shift (in radians) at the west-positive
// point (lam, phi). NaN results mean the point fell outside the lattice.
func (sg *Subgrid) interpolate(lam, phi float64) (dlam, dphi float64) {
	tLam := (lam - sg.LLLam) / sg.DelLam
	tPhi := (phi - sg.LLPhi) / sg.DelPhi
	i := int(math.Floor(tLam))
	j := int(math.Floor(tPhi))
	if i < 0 || j < 0 || i >= sg.NLam-1 || j >= sg.NPhi-1 {
		return math.NaN(), math.NaN()
	}
	s := tLam - float64(i)
	t := tPhi - float64(j)

	idx := func(ii, jj int) int { return jj*sg.NLam + ii }
	f00l, f00p := sg.CvsLam[idx(i, j)], sg.CvsPhi[idx(i, j)]
	f10l, f10p := sg.CvsLam[idx(i+1, j)], sg.CvsPhi[idx(i+1, j)]
	f01l, f01p := sg.CvsLam[idx(i, j+1)], sg.CvsPhi[idx(i, j+1)]
	f11l, f11p := sg.CvsLam[idx(i+1, j+1)], sg.CvsPhi[idx(i+1, j+1)]

	m00 := (1 - s) * (1 - t)
	m10 := s * (1 - t)
	m01 := (1 - s) * t
	m11 := s * t

	dlam = (m00*f00l + m10*f10l + m01*f01l + m11*f11l) * secToRad
	dphi = (m00*f00p + m10*f10p + m01*f01p + m11*f11p) * secToRad
	return dlam, dphi
}

// A Grid is an ordered forest of subgrids from one shift file.
type Grid struct {
	Name     string
	Subgrids []*Subgrid
}

// A GridProvider hands out loaded shift grids by name. Implementations are
// typically backed by NTv2 or GeoTIFF readers; Get must return ErrGridMissing
// (possibly wrapped) for unknown names.
type GridProvider interface {
	Get(name string) (*Grid, error)
}

// GridStore is an in-memory GridProvider, safe for concurrent use. External
// loaders register parsed grids here.
type GridStore struct {
	mu    sync.RWMutex
	grids map[string]*Grid
}

// NewGridStore returns an empty store.
func NewGridStore() *GridStore {
	return &GridStore{grids: make(map[string]*Grid)}
}

// Register makes a loaded grid available under name.
func (s *GridStore) Register(name string, g *Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grids[name] = g
}

// Get implements GridProvider.
func (s *GridStore) Get(name string) (*Grid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g, ok := s.grids[name]; ok {
		return g, nil
	}
	return nil, errors.Wrapf(ErrGridMissing, "grid %q not loaded", name)
}

// DefaultGridStore is the process-wide store consulted by datum transforms
// unless SetGridProvider installs a different provider.
var DefaultGridStore = NewGridStore()

var gridProvider GridProvider = DefaultGridStore
var gridProviderMu sync.RWMutex

// SetGridProvider replaces the process-wide grid provider. Intended for
// start-up configuration only.
func SetGridProvider(gp GridProvider) {
	gridProviderMu.Lock()
	defer gridProviderMu.Unlock()
	gridProvider = gp
}

func currentGridProvider() GridProvider {
	gridProviderMu.RLock()
	defer gridProviderMu.RUnlock()
	return gridProvider
}

// A gridRef is one entry of a +nadgrids list: a grid name plus its
// optionality. The "@null" grid matches everywhere with a zero shift.
type gridRef struct {
	name     string
	optional bool
}

func (g gridRef) isNull() bool {
	return g.name == "null"
}

// parseGridRefs splits a +nadgrids value into its ordered references.
func parseGridRefs(list string) []gridRef {
	var refs []gridRef
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ref := gridRef{name: name}
		if strings.HasPrefix(name, "@") {
			ref.optional = true
			ref.name = name[1:]
		}
		refs = append(refs, ref)
	}
	return refs
}

func gridRefsEqual(a, b []gridRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// applyGridShift shifts a geodetic point (radians) through the first grid
// in refs that covers it. Forward means source-datum -> WGS84; inverse means
// WGS84 -> grid datum.
func applyGridShift(refs []gridRef, inverse bool, λ, φ float64) (float64, float64, error) {
	gp := currentGridProvider()
	for _, ref := range refs {
		if ref.isNull() {
			return λ, φ, nil
		}
		grid, err := gp.Get(ref.name)
		if err != nil {
			if ref.optional {
				continue
			}
			return math.NaN(), math.NaN(), errors.Wrapf(ErrGridMissing, "mandatory grid %q", ref.name)
		}
		// Internal representation is west-positive.
		x, y := -λ, φ
		for _, sg := range grid.Subgrids {
			if !sg.contains(x, y) {
				continue
			}
			if inverse {
				ox, oy, err := inverseSubgridShift(sg, x, y)
				if err != nil {
					return math.NaN(), math.NaN(), err
				}
				return -ox, oy, nil
			}
			dlam, dphi := sg.interpolate(x, y)
			if math.IsNaN(dlam) {
				break
			}
			return -(x + dlam), y + dphi, nil
		}
	}
	// No grid covered the point: pass it through unchanged.
	return λ, φ, nil
}

// inverseSubgridShift undoes the forward shift by fixed-point iteration:
// start from the shifted point and re-apply forward deltas negated until the
// guess stops moving (1e-12 rad, 10 rounds).
func inverseSubgridShift(sg *Subgrid, x, y float64) (float64, float64, error) {
	const (
		tol     = 1e-12
		maxiter = 10
	)
	gx, gy := x, y
	for i := 0; i < maxiter; i++ {
		dlam, dphi := sg.interpolate(gx, gy)
		if math.IsNaN(dlam) {
			return math.NaN(), math.NaN(), errors.Wrap(ErrOutOfDomain, "point left grid during inverse shift")
		}
		nx := x - dlam
		ny := y - dphi
		if math.Abs(nx-gx) < tol && math.Abs(ny-gy) < tol {
			return nx, ny, nil
		}
		gx, gy = nx, ny
	}
	return math.NaN(), math.NaN(), notConverged("inverse grid shift")
}
