package concepts

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/deduce"
	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
	"github.com/wxmet/mars2grib/sections"
)

// productApplies governs the "product" concept: it selects and seeds the
// Section 4 product definition template at Allocate, then writes
// paramId from mars["param"] at Preset/Runtime, whenever that key is
// present (spec §4.3, "param").
func productApplies(stage registry.Stage, section registry.Section, variant int) bool {
	return section == registry.Section4
}

// productTemplateNumber picks productDefinitionTemplateNumber for this
// encode: mars["paramId"] selects the template directly when present and
// it names a known template (spec §8 scenario 2); otherwise template 0
// (spec §8 scenario 1). A paramId that is simply a MARS parameter code —
// not a template selector, e.g. a soil-field or statistically-processed
// parameter — falls through to the default rather than erroring, since
// resolving the real productDefinitionTemplateNumber from a parameter
// code is a rule-engine concern outside this concept's scope.
func productTemplateNumber(mars dict.Dict) (int64, error) {
	if v, ok := mars.Get("paramId"); ok {
		n, ok := v.AsInt()
		if !ok {
			return 0, errors.New(`mars["paramId"] present but not an integer`)
		}
		if sections.IsKnownProductDefinitionTemplate(n) {
			return n, nil
		}
	}
	return 0, nil
}

func productOp(stage registry.Stage, section registry.Section, variant int, d registry.Dicts, out dict.Writable) error {
	if !productApplies(stage, section, variant) {
		return errors.New("product concept invoked outside its applicability domain")
	}

	switch stage {
	case registry.StageAllocate:
		templateNumber, err := productTemplateNumber(d.Mars)
		if err != nil {
			return errors.Wrap(err, "product: template selection")
		}
		return sections.InitializeSection4(out, templateNumber)

	case registry.StagePreset, registry.StageRuntime:
		if !d.Mars.Has("param") {
			return nil
		}
		paramID, err := deduce.ResolveParamId(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "product: paramId")
		}
		return out.SetOrThrow("paramId", dict.Int(paramID))
	}
	return nil
}

func productVariantName(v int) string { return "default" }

// ProductDescriptor is the registry descriptor for the "product" concept.
// It has a single variant: the concept is always active, since every
// encode needs a Section 4 template.
var ProductDescriptor = registry.Descriptor{
	Name:        "product",
	NumVariants: 1,
	VariantName: productVariantName,
	Applies:     productApplies,
	Op:          productOp,
	Matcher:     func(mars, opt dict.Dict) int { return 0 },
}
