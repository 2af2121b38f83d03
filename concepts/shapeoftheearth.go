package concepts

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/deduce"
	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

func shapeOfTheEarthApplies(stage registry.Stage, section registry.Section, variant int) bool {
	return stage == registry.StagePreset && section == registry.Section3
}

// shapeOfTheEarthMatcher disables the concept for spectral representations
// (mars["truncation"] present): those fields have no physical Earth shape
// to report (spec §4.3, "shapeOfTheEarth").
func shapeOfTheEarthMatcher(mars, opt dict.Dict) int {
	if mars.Has("truncation") {
		return registry.MissingVariant
	}
	return 0
}

func shapeOfTheEarthOp(stage registry.Stage, section registry.Section, variant int, d registry.Dicts, out dict.Writable) error {
	if !shapeOfTheEarthApplies(stage, section, variant) {
		return errors.New("shapeOfTheEarth concept invoked outside its applicability domain")
	}
	shape, err := deduce.ResolveShapeOfTheEarth(d.Mars, d.Par, d.Geo, d.Opt)
	if err != nil {
		return errors.Wrap(err, "shapeOfTheEarth")
	}
	return out.SetOrThrow("shapeOfTheEarth", dict.Int(int64(shape)))
}

// ShapeOfTheEarthDescriptor is the registry descriptor for the
// "shapeOfTheEarth" concept.
var ShapeOfTheEarthDescriptor = registry.Descriptor{
	Name:        "shapeOfTheEarth",
	NumVariants: 1,
	VariantName: func(v int) string { return "default" },
	Applies:     shapeOfTheEarthApplies,
	Op:          shapeOfTheEarthOp,
	Matcher:     shapeOfTheEarthMatcher,
}
