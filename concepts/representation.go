package concepts

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
	"github.com/wxmet/mars2grib/sections"
)

// GridType enumerates the variants of the "representation" concept: the
// horizontal grid family a field's values are reported on (spec §4.3,
// "representation").
type GridType int

const (
	GridRegularLL GridType = iota
	GridRegularGG
	GridReducedGG
	GridSphericalHarmonics
	GridHEALPix
)

func gridTypeVariantName(v int) string {
	switch GridType(v) {
	case GridRegularLL:
		return "regular_ll"
	case GridRegularGG:
		return "regular_gg"
	case GridReducedGG:
		return "reduced_gg"
	case GridSphericalHarmonics:
		return "sh"
	case GridHEALPix:
		return "healpix"
	default:
		return "unknown"
	}
}

var gridDefinitionTemplateByVariant = map[GridType]int64{
	GridRegularLL:          0,
	GridRegularGG:          40,
	GridReducedGG:          40,
	GridSphericalHarmonics: 50,
	GridHEALPix:            150,
}

func representationApplies(stage registry.Stage, section registry.Section, variant int) bool {
	if section == registry.Section5 {
		return stage == registry.StageAllocate
	}
	if section != registry.Section3 {
		return false
	}
	return stage == registry.StageAllocate || stage == registry.StagePreset
}

// representationMatcher sees only mars: it selects spherical harmonics when
// mars has a truncation, else regular lat/lon. The geo-dependent grid
// families are resolved by gridTypeFromGeo inside the concept's op.
func representationMatcher(mars, opt dict.Dict) int {
	if mars.Has("truncation") {
		return int(GridSphericalHarmonics)
	}
	return int(GridRegularLL)
}

// gridTypeFromGeo derives the grid family from mars/geo structural hints:
// spherical-harmonics truncation, a HEALPix nside, a reduced Gaussian PL
// array, a plain Gaussian N, else regular lat/lon. Registry.Matcher has no
// geo parameter, so the concept's op calls this directly instead of
// going through the matcher.
func gridTypeFromGeo(mars, geo dict.Dict) GridType {
	if mars.Has("truncation") {
		return GridSphericalHarmonics
	}
	if geo.Has("nside") {
		return GridHEALPix
	}
	if geo.Has("pl") {
		return GridReducedGG
	}
	if geo.Has("N") {
		return GridRegularGG
	}
	return GridRegularLL
}

func representationOp(stage registry.Stage, section registry.Section, variant int, d registry.Dicts, out dict.Writable) error {
	if !representationApplies(stage, section, variant) {
		return errors.New("representation concept invoked outside its applicability domain")
	}

	gridType := gridTypeFromGeo(d.Mars, d.Geo)

	if section == registry.Section5 {
		// Template 50 (spherical harmonics) already seeded
		// dataRepresentationTemplateNumber=51 as part of its Section 3
		// placeholder writes; every other grid family defaults to simple
		// packing (template 0).
		if gridType == GridSphericalHarmonics {
			return nil
		}
		return sections.InitializeSection5(out, 0)
	}

	if stage == registry.StageAllocate {
		gdt := gridDefinitionTemplateByVariant[gridType]
		if err := sections.InitializeSection3(out, gdt); err != nil {
			return errors.Wrap(err, "representation: grid definition template")
		}
		return out.SetOrThrow("gridType", dict.String(gridTypeVariantName(int(gridType))))
	}

	// A request that carries no geometry at all (geo is an empty
	// dictionary) only wants the template number from Allocate; there is
	// nothing further to write at Preset.
	switch gridType {
	case GridSphericalHarmonics:
		if !d.Geo.Has("J") {
			return nil
		}
		return writeGeoInts(d.Geo, out, "J", "K", "M")
	case GridHEALPix:
		if !d.Geo.Has("nside") {
			return nil
		}
		if err := writeGeoInts(d.Geo, out, "nside"); err != nil {
			return err
		}
		if err := writeGeoString(d.Geo, out, "orderingConvention"); err != nil {
			return err
		}
		return writeGeoFloats(d.Geo, out, "longitudeOfFirstGridPointInDegrees")
	case GridReducedGG:
		if !d.Geo.Has("N") {
			return nil
		}
		if err := writeGeoInts(d.Geo, out, "N"); err != nil {
			return err
		}
		pl, err := d.Geo.GetIntVector("pl")
		if err != nil {
			return errors.Wrap(err, "representation: geo[\"pl\"]")
		}
		return out.SetOrThrow("pl", dict.IntVector(pl))
	default:
		if !d.Geo.Has("Ni") {
			return nil
		}
		if err := writeGeoInts(d.Geo, out, "Ni", "Nj"); err != nil {
			return err
		}
		return writeGeoFloats(d.Geo, out,
			"latitudeOfFirstGridPointInDegrees", "longitudeOfFirstGridPointInDegrees",
			"latitudeOfLastGridPointInDegrees", "longitudeOfLastGridPointInDegrees",
			"iDirectionIncrementInDegrees", "jDirectionIncrementInDegrees")
	}
}

func writeGeoInts(geo dict.Dict, out dict.Writable, keys ...string) error {
	for _, k := range keys {
		v, err := geo.GetInt(k)
		if err != nil {
			return errors.Wrapf(err, "representation: geo[%q]", k)
		}
		if err := out.SetOrThrow(k, dict.Int(v)); err != nil {
			return err
		}
	}
	return nil
}

func writeGeoFloats(geo dict.Dict, out dict.Writable, keys ...string) error {
	for _, k := range keys {
		v, err := geo.GetFloat(k)
		if err != nil {
			return errors.Wrapf(err, "representation: geo[%q]", k)
		}
		if err := out.SetOrThrow(k, dict.Float(v)); err != nil {
			return err
		}
	}
	return nil
}

func writeGeoString(geo dict.Dict, out dict.Writable, key string) error {
	v, err := geo.GetString(key)
	if err != nil {
		return errors.Wrapf(err, "representation: geo[%q]", key)
	}
	return out.SetOrThrow(key, dict.String(v))
}

// RepresentationDescriptor is the registry descriptor for the
// "representation" concept.
var RepresentationDescriptor = registry.Descriptor{
	Name:        "representation",
	NumVariants: 1,
	VariantName: func(v int) string { return "default" },
	Applies:     representationApplies,
	Op:          representationOp,
	Matcher:     representationMatcher,
}
