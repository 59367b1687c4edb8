package proj

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Registries of ellipsoids, datums, linear units and prime meridians.                            */
/*                                                                                                */
/* These tables are read-only after start-up. Datum transform parameters follow the towgs84       */
/* convention: translations in metres, rotations in arcseconds, scale in ppm (normalised to       */
/* radians and a unit multiplier at derivation time, not here).                                   */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// An Ellipsoid is a reference ellipsoid. Rf is the inverse flattening; a zero
// Rf with B set denotes an ellipsoid defined by its two semi-axes (B alone is
// authoritative for sphericity: a == b means a sphere).
type Ellipsoid struct {
	Name string
	A    float64
	B    float64
	Rf   float64
}

var ellipsoidDefs = map[string]Ellipsoid{
	"MERIT":     {Name: "MERIT 1983", A: 6378137.0, Rf: 298.257},
	"SGS85":     {Name: "Soviet Geodetic System 85", A: 6378136.0, Rf: 298.257},
	"GRS80":     {Name: "GRS 1980(IUGG, 1980)", A: 6378137.0, Rf: 298.257222101},
	"IAU76":     {Name: "IAU 1976", A: 6378140.0, Rf: 298.257},
	"airy":      {Name: "Airy 1830", A: 6377563.396, B: 6356256.910},
	"APL4.9":    {Name: "Appl. Physics. 1965", A: 6378137.0, Rf: 298.25},
	"NWL9D":     {Name: "Naval Weapons Lab., 1965", A: 6378145.0, Rf: 298.25},
	"mod_airy":  {Name: "Modified Airy", A: 6377340.189, B: 6356034.446},
	"andrae":    {Name: "Andrae 1876 (Den., Iclnd.)", A: 6377104.43, Rf: 300.0},
	"aust_SA":   {Name: "Australian Natl & S. Amer. 1969", A: 6378160.0, Rf: 298.25},
	"GRS67":     {Name: "GRS 67(IUGG 1967)", A: 6378160.0, Rf: 298.2471674270},
	"bessel":    {Name: "Bessel 1841", A: 6377397.155, Rf: 299.1528128},
	"bess_nam":  {Name: "Bessel 1841 (Namibia)", A: 6377483.865, Rf: 299.1528128},
	"clrk66":    {Name: "Clarke 1866", A: 6378206.4, B: 6356583.8},
	"clrk80":    {Name: "Clarke 1880 mod.", A: 6378249.145, Rf: 293.4663},
	"clrk80ign": {Name: "Clarke 1880 (IGN)", A: 6378249.2, Rf: 293.4660212936269},
	"CPM":       {Name: "Comm. des Poids et Mesures 1799", A: 6375738.7, Rf: 334.29},
	"delmbr":    {Name: "Delambre 1810 (Belgium)", A: 6376428.0, Rf: 311.5},
	"engelis":   {Name: "Engelis 1985", A: 6378136.05, Rf: 298.2566},
	"evrst30":   {Name: "Everest 1830", A: 6377276.345, Rf: 300.8017},
	"evrst48":   {Name: "Everest 1948", A: 6377304.063, Rf: 300.8017},
	"evrst56":   {Name: "Everest 1956", A: 6377301.243, Rf: 300.8017},
	"evrst69":   {Name: "Everest 1969", A: 6377295.664, Rf: 300.8017},
	"evrstSS":   {Name: "Everest (Sabah & Sarawak)", A: 6377298.556, Rf: 300.8017},
	"fschr60":   {Name: "Fischer (Mercury Datum) 1960", A: 6378166.0, Rf: 298.3},
	"fschr60m":  {Name: "Modified Fischer 1960", A: 6378155.0, Rf: 298.3},
	"fschr68":   {Name: "Fischer 1968", A: 6378150.0, Rf: 298.3},
	"helmert":   {Name: "Helmert 1906", A: 6378200.0, Rf: 298.3},
	"hough":     {Name: "Hough", A: 6378270.0, Rf: 297.0},
	"intl":      {Name: "International 1909 (Hayford)", A: 6378388.0, Rf: 297.0},
	"krass":     {Name: "Krassovsky, 1942", A: 6378245.0, Rf: 298.3},
	"kaula":     {Name: "Kaula 1961", A: 6378163.0, Rf: 298.24},
	"lerch":     {Name: "Lerch 1979", A: 6378139.0, Rf: 298.257},
	"mprts":     {Name: "Maupertius 1738", A: 6397300.0, Rf: 191.0},
	"new_intl":  {Name: "New International 1967", A: 6378157.5, B: 6356772.2},
	"plessis":   {Name: "Plessis 1817 (France)", A: 6376523.0, B: 6355863.0},
	"SEasia":    {Name: "Southeast Asia", A: 6378155.0, B: 6356773.3205},
	"walbeck":   {Name: "Walbeck", A: 6376896.0, B: 6355834.8467},
	"WGS60":     {Name: "WGS 60", A: 6378165.0, Rf: 298.3},
	"WGS66":     {Name: "WGS 66", A: 6378145.0, Rf: 298.25},
	"WGS72":     {Name: "WGS 72", A: 6378135.0, Rf: 298.26},
	"WGS84":     {Name: "WGS 84", A: 6378137.0, Rf: 298.257223563},
	"sphere":    {Name: "Normal Sphere (r=6370997)", A: 6370997.0, B: 6370997.0},
}

type datumDef struct {
	towgs84   []float64
	nadgrids  string
	ellipse   string
	datumName string
}

var datumDefs = map[string]datumDef{
	"wgs84": {towgs84: []float64{0, 0, 0}, ellipse: "WGS84",
		datumName: "WGS84"},
	"ch1903": {towgs84: []float64{674.374, 15.056, 405.346}, ellipse: "bessel",
		datumName: "swiss"},
	"ggrs87": {towgs84: []float64{-199.87, 74.79, 246.62}, ellipse: "GRS80",
		datumName: "Greek_Geodetic_Reference_System_1987"},
	"nad83": {towgs84: []float64{0, 0, 0}, ellipse: "GRS80",
		datumName: "North_American_Datum_1983"},
	"nad27": {nadgrids: "@conus,@alaska,@ntv2_0.gsb,@ntv1_can.dat", ellipse: "clrk66",
		datumName: "North_American_Datum_1927"},
	"potsdam": {towgs84: []float64{598.1, 73.7, 418.2, 0.202, 0.045, -2.455, 6.7}, ellipse: "bessel",
		datumName: "Potsdam Rauenberg 1950 DHDN"},
	"carthage": {towgs84: []float64{-263.0, 6.0, 431.0}, ellipse: "clrk80ign",
		datumName: "Carthage 1934 Tunisia"},
	"hermannskogel": {towgs84: []float64{577.326, 90.129, 463.919, 5.137, 1.474, 5.297, 2.4232}, ellipse: "bessel",
		datumName: "Hermannskogel"},
	"militargeographische_institut": {towgs84: []float64{577.326, 90.129, 463.919, 5.137, 1.474, 5.297, 2.4232}, ellipse: "bessel",
		datumName: "Militar-Geographische Institut"},
	"osni52": {towgs84: []float64{482.530, -130.596, 564.557, -1.042, -0.214, -0.631, 8.15}, ellipse: "airy",
		datumName: "Irish National"},
	"ire65": {towgs84: []float64{482.530, -130.596, 564.557, -1.042, -0.214, -0.631, 8.15}, ellipse: "mod_airy",
		datumName: "Ireland 1965"},
	"rassadiran": {towgs84: []float64{-133.63, -157.5, -158.62}, ellipse: "intl",
		datumName: "Rassadiran"},
	"nzgd49": {towgs84: []float64{59.47, -5.04, 187.44, 0.47, -0.1, 1.024, -4.5993}, ellipse: "intl",
		datumName: "New Zealand Geodetic Datum 1949"},
	"osgb36": {towgs84: []float64{446.448, -125.157, 542.060, 0.1502, 0.2470, 0.8421, -20.4894}, ellipse: "airy",
		datumName: "Airy 1830"},
	"s_jtsk": {towgs84: []float64{589, 76, 480}, ellipse: "bessel",
		datumName: "S-JTSK (Ferro)"},
	"beduaram": {towgs84: []float64{-106, -87, 188}, ellipse: "clrk80",
		datumName: "Beduaram"},
	"gunung_segara": {towgs84: []float64{-403, 684, 41}, ellipse: "bessel",
		datumName: "Gunung Segara Jakarta"},
	"rnb72": {towgs84: []float64{106.869, -52.2978, 103.724, -0.33657, 0.456955, -1.84218, 1}, ellipse: "intl",
		datumName: "Reseau National Belge 1972"},
}

// A Unit is a linear unit convertible to metres.
type Unit struct {
	Name    string
	ToMeter float64
}

var unitDefs = map[string]Unit{
	"km":     {Name: "Kilometer", ToMeter: 1000},
	"m":      {Name: "Meter", ToMeter: 1.0},
	"dm":     {Name: "Decimeter", ToMeter: 0.1},
	"cm":     {Name: "Centimeter", ToMeter: 0.01},
	"mm":     {Name: "Millimeter", ToMeter: 0.001},
	"kmi":    {Name: "International Nautical Mile", ToMeter: 1852.0},
	"in":     {Name: "International Inch", ToMeter: 0.0254},
	"ft":     {Name: "International Foot", ToMeter: 0.3048},
	"yd":     {Name: "International Yard", ToMeter: 0.9144},
	"mi":     {Name: "International Statute Mile", ToMeter: 1609.344},
	"fath":   {Name: "International Fathom", ToMeter: 1.8288},
	"ch":     {Name: "International Chain", ToMeter: 20.1168},
	"link":   {Name: "International Link", ToMeter: 0.201168},
	"us-in":  {Name: "U.S. Surveyor's Inch", ToMeter: 0.0254000508},
	"us-ft":  {Name: "U.S. Surveyor's Foot", ToMeter: 0.304800609601219},
	"us-yd":  {Name: "U.S. Surveyor's Yard", ToMeter: 0.914401828803658},
	"us-ch":  {Name: "U.S. Surveyor's Chain", ToMeter: 20.11684023368047},
	"us-mi":  {Name: "U.S. Surveyor's Statute Mile", ToMeter: 1609.347218694437},
	"ind-yd": {Name: "Indian Yard", ToMeter: 0.91439523},
	"ind-ft": {Name: "Indian Foot", ToMeter: 0.30479841},
	"ind-ch": {Name: "Indian Chain", ToMeter: 20.11669506},
}

// WKT unit spellings that the lowering step maps onto unitDefs keys.
var wktUnitNames = map[string]string{
	"meter":                "m",
	"metre":                "m",
	"kilometre":            "km",
	"kilometer":            "km",
	"foot":                 "ft",
	"foot_us":              "us-ft",
	"us survey foot":       "us-ft",
	"u.s. foot":            "us-ft",
	"international_feet":   "ft",
	"nautical mile (international)": "kmi",
}

// Prime meridian offsets from Greenwich, in degrees (east positive).
var primeMeridianDefs = map[string]float64{
	"greenwich": 0.0,
	"lisbon":    -9.131906111111,
	"paris":     2.337229166667,
	"bogota":    -74.080916666667,
	"madrid":    -3.687938888889,
	"rome":      12.452333333333,
	"bern":      7.439583333333,
	"jakarta":   106.807719444444,
	"ferro":     -17.666666666667,
	"brussels":  4.367975,
	"stockholm": 18.058277777778,
	"athens":    23.7163375,
	"oslo":      10.722916666667,
}
