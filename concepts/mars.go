package concepts

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/deduce"
	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
	"github.com/wxmet/mars2grib/sections"
)

// marsApplies restricts the "mars" concept to Section 2: Allocate enables
// the Local Use Section and picks its local definition number, Preset
// writes the classification keys once that structural check has passed
// (spec §4.3, "mars").
func marsApplies(stage registry.Stage, section registry.Section, variant int) bool {
	if section != registry.Section2 {
		return false
	}
	return stage == registry.StageAllocate || stage == registry.StagePreset
}

func marsVariantName(v int) string {
	if v == 1 {
		return "raw"
	}
	return "highLevel"
}

// marsMatcher disables the concept for requests that carry no MARS
// classification at all, and otherwise picks the "raw" variant when
// opt["rawMarsKeys"] is set, else the high-level variant.
func marsMatcher(mars, opt dict.Dict) int {
	if !mars.Has("class") {
		return registry.MissingVariant
	}
	if v, ok := opt.Get("rawMarsKeys"); ok {
		if b, ok := v.AsInt(); ok && b != 0 {
			return 1
		}
	}
	return 0
}

func marsOp(stage registry.Stage, section registry.Section, variant int, d registry.Dicts, out dict.Writable) error {
	if !marsApplies(stage, section, variant) {
		return errors.New("mars concept invoked outside its applicability domain")
	}

	if stage == registry.StageAllocate {
		templateNumber, err := productTemplateNumber(d.Mars)
		if err != nil {
			return errors.Wrap(err, "mars: local use section template selection")
		}
		return sections.InitializeSection2(out, templateNumber)
	}

	if !out.Has("setLocalDefinition") {
		return errors.New("mars: Local Use Section not yet initialized (setLocalDefinition missing)")
	}

	expver, err := deduce.ResolveExpver(d.Mars, d.Par, d.Opt)
	if err != nil {
		return errors.Wrap(err, "mars: expver")
	}
	if err := out.SetOrThrow("expver", dict.String(expver)); err != nil {
		return err
	}

	class, err := deduce.ResolveClass(d.Mars, d.Par, d.Opt)
	if err != nil {
		return errors.Wrap(err, "mars: class")
	}
	typ, err := deduce.ResolveType(d.Mars, d.Par, d.Opt)
	if err != nil {
		return errors.Wrap(err, "mars: type")
	}
	stream, err := deduce.ResolveStream(d.Mars, d.Par, d.Opt)
	if err != nil {
		return errors.Wrap(err, "mars: stream")
	}

	keys := [3]string{"class", "type", "stream"}
	if variant == 1 {
		keys = [3]string{"marsClass", "marsType", "marsStream"}
	}
	if err := out.SetOrThrow(keys[0], dict.String(class)); err != nil {
		return err
	}
	if err := out.SetOrThrow(keys[1], dict.String(typ)); err != nil {
		return err
	}
	return out.SetOrThrow(keys[2], dict.String(stream))
}

// MarsDescriptor is the registry descriptor for the "mars" concept.
var MarsDescriptor = registry.Descriptor{
	Name:        "mars",
	NumVariants: 2,
	VariantName: marsVariantName,
	Applies:     marsApplies,
	Op:          marsOp,
	Matcher:     marsMatcher,
}
