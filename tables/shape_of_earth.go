package tables

// ShapeOfTheEarth is WMO Code Table 3.2: the reference system a grid's
// coordinates are measured against.
type ShapeOfTheEarth int64

const (
	EarthSphericalRadius6367470   ShapeOfTheEarth = 0
	EarthSphericalRadiusSpecified ShapeOfTheEarth = 1
	EarthOblateIAU                ShapeOfTheEarth = 2
	EarthOblateSpecifiedKm        ShapeOfTheEarth = 3
	EarthOblateIAGGRS80           ShapeOfTheEarth = 4
	EarthWGS84                    ShapeOfTheEarth = 5
	EarthSphericalRadius6371229   ShapeOfTheEarth = 6
	EarthOblateSpecifiedM         ShapeOfTheEarth = 7
	EarthSphericalRadius6371200   ShapeOfTheEarth = 8
	EarthOSGB1936                 ShapeOfTheEarth = 9
)

// ShapeOfTheEarthTable is the closed round-trippable form of WMO Code
// Table 3.2; this package has no other listing of that table.
var ShapeOfTheEarthTable = NewEnumTable(
	"shapeOfTheEarth",
	map[ShapeOfTheEarth]string{
		EarthSphericalRadius6367470:   "sphericalRadius6367470",
		EarthSphericalRadiusSpecified: "sphericalRadiusSpecified",
		EarthOblateIAU:                "oblateIAU1965",
		EarthOblateSpecifiedKm:        "oblateSpecifiedKm",
		EarthOblateIAGGRS80:           "oblateIAG-GRS80",
		EarthWGS84:                    "wgs84",
		EarthSphericalRadius6371229:   "sphericalRadius6371229",
		EarthOblateSpecifiedM:         "oblateSpecifiedM",
		EarthSphericalRadius6371200:   "sphericalRadius6371200",
		EarthOSGB1936:                 "osgb1936",
	},
)
