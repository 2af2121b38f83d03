package concepts

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

// StatisticsType enumerates the variants of the "statistics" concept: how
// a field's values were derived over its validity interval (spec §4.3 /
// §8 scenarios 5-7).
type StatisticsType int

const (
	StatisticsInstantaneous StatisticsType = iota
	StatisticsAccumulation
	StatisticsAverage24h
	numStatisticsTypes
)

func statisticsVariantName(v int) string {
	switch StatisticsType(v) {
	case StatisticsInstantaneous:
		return "instantaneous"
	case StatisticsAccumulation:
		return "accumulation"
	case StatisticsAverage24h:
		return "average24h"
	default:
		return "unknown"
	}
}

func statisticsApplies(stage registry.Stage, section registry.Section, variant int) bool {
	return stage == registry.StagePreset && section == registry.Section4
}

// accumulationParamIDs is the stat-param rule list: paramIds whose values
// represent an accumulation over the validity period.
var accumulationParamIDs = map[int64]bool{8: true}

// average24hParamIDs is the stat-param rule list for 24-hour averages.
var average24hParamIDs = map[int64]bool{51: true}

// statisticsMatcher disables the concept only when mars["paramId"] is
// absent or not an integer. paramIds in the accumulation and 24-hour
// average lists get their own variants; every other paramId is treated as
// instantaneous and given an explicit variant (rather than MissingVariant) so that a prior
// typeOfStatisticalProcessing can be actively cleared by a rule-engine
// pass; the concept op itself writes nothing for them.
func statisticsMatcher(mars, opt dict.Dict) int {
	v, ok := mars.Get("paramId")
	if !ok {
		return registry.MissingVariant
	}
	paramID, ok := v.AsInt()
	if !ok {
		return registry.MissingVariant
	}
	switch {
	case accumulationParamIDs[paramID]:
		return int(StatisticsAccumulation)
	case average24hParamIDs[paramID]:
		return int(StatisticsAverage24h)
	default:
		return int(StatisticsInstantaneous)
	}
}

func statisticsOp(stage registry.Stage, section registry.Section, variant int, d registry.Dicts, out dict.Writable) error {
	if !statisticsApplies(stage, section, variant) {
		return errors.New("statistics concept invoked outside its applicability domain")
	}

	switch StatisticsType(variant) {
	case StatisticsInstantaneous:
		return nil
	case StatisticsAccumulation:
		return out.SetOrThrow("typeOfStatisticalProcessing", dict.Int(1))
	case StatisticsAverage24h:
		if err := out.SetOrThrow("typeOfStatisticalProcessing", dict.Int(2)); err != nil {
			return err
		}
		if err := out.SetOrThrow("lengthOfTimeRange", dict.Int(24)); err != nil {
			return err
		}
		return out.SetOrThrow("indicatorOfUnitForTimeRange", dict.Int(1))
	default:
		return errors.Errorf("statistics: unknown variant %d", variant)
	}
}

// StatisticsDescriptor is the registry descriptor for the "statistics"
// concept.
var StatisticsDescriptor = registry.Descriptor{
	Name:        "statistics",
	NumVariants: int(numStatisticsTypes),
	VariantName: statisticsVariantName,
	Applies:     statisticsApplies,
	Op:          statisticsOp,
	Matcher:     statisticsMatcher,
}
