package proj

import "strings"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Projection registry.                                                                           */
/*                                                                                                */
/* Maps projection names to factories producing fresh, uninitialized projection objects. Names    */
/* are case-insensitive; a secondary key normalises '-', '(', ')' and whitespace to '_' so that   */
/* WKT method spellings resolve too.                                                              */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

type registryEntry struct {
	names   []string
	factory func() projection
}

var registryEntries = []registryEntry{
	{[]string{"longlat", "latlong", "latlon", "lonlat", "identity", "Geographic"}, func() projection { return &longlatProjection{} }},
	{[]string{"merc", "Mercator", "Mercator_1SP", "Popular Visualisation Pseudo Mercator"}, func() projection { return &mercProjection{} }},
	{[]string{"tmerc", "Transverse_Mercator", "Transverse Mercator", "Gauss Kruger"}, func() projection { return &tmercProjection{} }},
	{[]string{"etmerc", "Extended_Transverse_Mercator"}, func() projection { return &tmercProjection{forceExact: true} }},
	{[]string{"utm", "Universal Transverse Mercator System"}, func() projection { return &tmercProjection{} }},
	{[]string{"eqc", "Equirectangular", "Equidistant_Cylindrical", "Plate_Carree"}, func() projection { return &eqcProjection{} }},
	{[]string{"mill", "Miller_Cylindrical"}, func() projection { return &millProjection{} }},
	{[]string{"cea", "Cylindrical_Equal_Area", "Lambert Cylindrical Equal Area"}, func() projection { return &ceaProjection{} }},
	{[]string{"sinu", "Sinusoidal"}, func() projection { return &sinuProjection{} }},
	{[]string{"moll", "Mollweide"}, func() projection { return &mollProjection{} }},
	{[]string{"robin", "Robinson"}, func() projection { return &robinProjection{} }},
	{[]string{"eqearth", "Equal_Earth", "Equal Earth"}, func() projection { return &eqearthProjection{} }},
	{[]string{"lcc", "Lambert_Conformal_Conic", "Lambert_Conformal_Conic_1SP", "Lambert_Conformal_Conic_2SP"}, func() projection { return &lccProjection{} }},
	{[]string{"aea", "Albers_Equal_Area", "Albers_Conic_Equal_Area", "Albers"}, func() projection { return &aeaProjection{} }},
	{[]string{"eqdc", "Equidistant_Conic"}, func() projection { return &eqdcProjection{} }},
	{[]string{"stere", "Stereographic", "Polar_Stereographic", "Oblique_Stereographic"}, func() projection { return &stereProjection{} }},
	{[]string{"laea", "Lambert_Azimuthal_Equal_Area"}, func() projection { return &laeaProjection{} }},
	{[]string{"aeqd", "Azimuthal_Equidistant"}, func() projection { return &aeqdProjection{} }},
	{[]string{"gnom", "Gnomonic"}, func() projection { return &gnomProjection{} }},
	{[]string{"ortho", "Orthographic"}, func() projection { return &orthoProjection{} }},
	{[]string{"vandg", "Van_der_Grinten", "VanDerGrinten"}, func() projection { return &vandgProjection{} }},
	{[]string{"omerc", "Hotine_Oblique_Mercator", "Oblique_Mercator"}, func() projection { return &omercProjection{} }},
	{[]string{"cass", "Cassini", "Cassini_Soldner", "Cassini-Soldner"}, func() projection { return &cassProjection{} }},
}

var projectionRegistry = buildRegistry()

func buildRegistry() map[string]func() projection {
	m := make(map[string]func() projection)
	for _, e := range registryEntries {
		for _, name := range e.names {
			m[strings.ToLower(name)] = e.factory
			m[normalizeMethodName(name)] = e.factory
		}
	}
	return m
}

// lookupProjection resolves a projection name, trying the exact lower-case
// name first and the normalised spelling second.
func lookupProjection(name string) (func() projection, bool) {
	if f, ok := projectionRegistry[strings.ToLower(name)]; ok {
		return f, true
	}
	f, ok := projectionRegistry[normalizeMethodName(name)]
	return f, ok
}

// baseProjection carries the bound parameter record and the
// initialization-state guard shared by every projection.
type baseProjection struct {
	p *ProjectionParams
}

func (b *baseProjection) bind(p *ProjectionParams) {
	b.p = p
}

func (b *baseProjection) ready() error {
	if b.p == nil {
		return ErrUninitializedProjection
	}
	return nil
}
