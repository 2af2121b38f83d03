package concepts

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/deduce"
	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

// LevelType enumerates the variants of the "level" concept: the vertical
// coordinate system under which a field's data values are reported (spec
// §4.3, "level").
type LevelType int

const (
	LevelHybrid LevelType = iota
	LevelIsobaricInHpa
	LevelIsobaricInPa
	LevelHeightAboveGroundAt2M
	LevelHeightAboveGroundAt10M
	LevelHeightAboveGround
	LevelHeightAboveSeaAt2M
	LevelHeightAboveSeaAt10M
	LevelHeightAboveSea
	LevelIsothermal
	LevelPotentialVorticity
	LevelSeaIceLayer
	LevelSnowLayer
	LevelSoilLayer
	LevelSoil
	LevelTheta
	numLevelTypes
)

var levelTypeNames = [numLevelTypes]string{
	LevelHybrid:                 "hybrid",
	LevelIsobaricInHpa:          "isobaricInhPa",
	LevelIsobaricInPa:           "isobaricInPa",
	LevelHeightAboveGroundAt2M:  "heightAboveGround",
	LevelHeightAboveGroundAt10M: "heightAboveGround",
	LevelHeightAboveGround:      "heightAboveGround",
	LevelHeightAboveSeaAt2M:     "heightAboveSea",
	LevelHeightAboveSeaAt10M:    "heightAboveSea",
	LevelHeightAboveSea:         "heightAboveSea",
	LevelIsothermal:             "isothermal",
	LevelPotentialVorticity:     "potentialVorticity",
	LevelSeaIceLayer:            "seaIceLayer",
	LevelSnowLayer:              "snowLayer",
	LevelSoilLayer:              "soilLayer",
	LevelSoil:                   "soil",
	LevelTheta:                  "theta",
}

func levelVariantName(v int) string {
	if v < 0 || v >= int(numLevelTypes) {
		return "unknown"
	}
	return levelTypeNames[v]
}

// levelNeedsPV is true only for hybrid levels, which carry a PV
// (vertical-coordinate) array allocated during Allocate.
func levelNeedsPV(variant int) bool { return LevelType(variant) == LevelHybrid }

// levelHasNumericLevel mirrors needLevel() in the original design: most
// variants write a numeric "level" key; soilLayer/soil instead write
// scaled first/second fixed surface values (see levelOp below), and are
// therefore excluded here.
func levelHasNumericLevel(variant int) bool {
	switch LevelType(variant) {
	case LevelHeightAboveGroundAt10M, LevelHeightAboveGroundAt2M, LevelHeightAboveGround,
		LevelHeightAboveSeaAt10M, LevelHeightAboveSeaAt2M, LevelHeightAboveSea,
		LevelHybrid, LevelIsobaricInHpa, LevelIsobaricInPa, LevelIsothermal,
		LevelPotentialVorticity, LevelSeaIceLayer, LevelSnowLayer, LevelTheta:
		return true
	default:
		return false
	}
}

func levelApplies(stage registry.Stage, section registry.Section, variant int) bool {
	if section != registry.Section4 {
		return false
	}
	if levelNeedsPV(variant) {
		return true
	}
	return stage != registry.StageAllocate
}

// soilLayerParamIDs names the paramIds encoded as a soil-layer interval
// (typeOfLevel=soilLayer, first/second fixed surface bracket the layer).
// Everything else under levtype=sol is treated as a single soil point.
var soilLayerParamIDs = map[int64]bool{
	260367: true,
}

// levelMatcher selects the active level variant from mars["levtype"]
// (and, for soil fields, mars["paramId"]). Surface fields and requests
// with no levtype at all disable the level concept entirely.
func levelMatcher(mars, opt dict.Dict) int {
	levtype, err := mars.GetString("levtype")
	if err != nil {
		return registry.MissingVariant
	}
	switch levtype {
	case "pl":
		return int(LevelIsobaricInHpa)
	case "ml":
		return int(LevelHybrid)
	case "pt":
		return int(LevelTheta)
	case "pv":
		return int(LevelPotentialVorticity)
	case "sol":
		if paramID, ok := mars.Get("paramId"); ok {
			if n, ok := paramID.AsInt(); ok && soilLayerParamIDs[n] {
				return int(LevelSoilLayer)
			}
		}
		return int(LevelSoil)
	case "hl":
		return int(LevelHeightAboveGround)
	default:
		return registry.MissingVariant
	}
}

func levelOp(stage registry.Stage, section registry.Section, variant int, d registry.Dicts, out dict.Writable) error {
	if !levelApplies(stage, section, variant) {
		return errors.New("level concept invoked outside its applicability domain")
	}

	lv := LevelType(variant)

	if stage == registry.StageAllocate && levelNeedsPV(variant) {
		pv, err := deduce.ResolvePVArray(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "level: pv array")
		}
		if err := out.SetOrThrow("PVPresent", dict.Int(1)); err != nil {
			return err
		}
		if err := out.SetOrThrow("pv", dict.FloatVector(pv)); err != nil {
			return err
		}
	}

	if stage != registry.StagePreset && stage != registry.StageRuntime {
		return nil
	}

	switch lv {
	case LevelHeightAboveGroundAt2M:
		return setLevelTypeAndValue(out, "heightAboveGround", 2)
	case LevelHeightAboveGroundAt10M:
		return setLevelTypeAndValue(out, "heightAboveGround", 10)
	case LevelHeightAboveSeaAt2M:
		return setLevelTypeAndValue(out, "heightAboveSea", 2)
	case LevelHeightAboveSeaAt10M:
		return setLevelTypeAndValue(out, "heightAboveSea", 10)
	case LevelIsobaricInHpa:
		levelVal, err := deduce.ResolveLevel(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "level: isobaricInhPa")
		}
		return setLevelTypeAndValue(out, "isobaricInhPa", levelVal/100)
	case LevelSoilLayer:
		levelVal, err := deduce.ResolveLevel(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "level: soilLayer")
		}
		if err := out.SetOrThrow("typeOfLevel", dict.String("soilLayer")); err != nil {
			return err
		}
		if err := out.SetOrThrow("scaledValueOfFirstFixedSurface", dict.Int(levelVal-1)); err != nil {
			return err
		}
		return out.SetOrThrow("scaledValueOfSecondFixedSurface", dict.Int(levelVal))
	case LevelSoil:
		levelVal, err := deduce.ResolveLevel(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "level: soil")
		}
		if err := out.SetOrThrow("typeOfLevel", dict.String("soil")); err != nil {
			return err
		}
		return out.SetOrThrow("scaledValueOfFirstFixedSurface", dict.Int(levelVal))
	default:
		if err := out.SetOrThrow("typeOfLevel", dict.String(levelTypeNames[lv])); err != nil {
			return err
		}
		if levelHasNumericLevel(variant) {
			levelVal, err := deduce.ResolveLevel(d.Mars, d.Par, d.Opt)
			if err != nil {
				return errors.Wrapf(err, "level: %s", levelTypeNames[lv])
			}
			return out.SetOrThrow("level", dict.Int(levelVal))
		}
		return nil
	}
}

func setLevelTypeAndValue(out dict.Writable, typeOfLevel string, level int64) error {
	if err := out.SetOrThrow("typeOfLevel", dict.String(typeOfLevel)); err != nil {
		return err
	}
	return out.SetOrThrow("level", dict.Int(level))
}

// LevelDescriptor is the registry descriptor for the "level" concept.
var LevelDescriptor = registry.Descriptor{
	Name:        "level",
	NumVariants: int(numLevelTypes),
	VariantName: levelVariantName,
	Applies:     levelApplies,
	Op:          levelOp,
	Matcher:     levelMatcher,
}
