package concepts

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/deduce"
	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

var satellitePDTs = map[int64]bool{32: true, 33: true}

func satelliteApplies(stage registry.Stage, section registry.Section, variant int) bool {
	switch {
	case section == registry.Section2 && stage == registry.StagePreset:
		return true
	case section == registry.Section4 && stage == registry.StageAllocate:
		return true
	case section == registry.Section4 && stage == registry.StagePreset:
		return true
	default:
		return false
	}
}

// satelliteMatcher activates the concept whenever the request carries a
// satellite identifier; channel and instrument information are expected
// to accompany it.
func satelliteMatcher(mars, opt dict.Dict) int {
	if mars.Has("ident") {
		return 0
	}
	return registry.MissingVariant
}

func satelliteOp(stage registry.Stage, section registry.Section, variant int, d registry.Dicts, out dict.Writable) error {
	if !satelliteApplies(stage, section, variant) {
		return errors.New("satellite concept invoked outside its applicability domain")
	}

	switch {
	case section == registry.Section2:
		localDefNum, err := out.GetInt("localDefinitionNumber")
		if err != nil {
			return errors.Wrap(err, "satellite: Local Use Section not yet initialized")
		}
		if localDefNum != 14 {
			return errors.Errorf("satellite: channel requires localDefinitionNumber=14, got %d", localDefNum)
		}
		channel, err := deduce.ResolveChannel(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "satellite: channel")
		}
		return out.SetOrThrow("channel", dict.Int(channel))

	case section == registry.Section4 && stage == registry.StageAllocate:
		return out.SetOrThrow("numberOfContributingSpectralBands", dict.Int(1))

	case section == registry.Section4 && stage == registry.StagePreset:
		pdt, err := out.GetInt("productDefinitionTemplateNumber")
		if err != nil {
			return errors.Wrap(err, "satellite: productDefinitionTemplateNumber not yet set")
		}
		if !satellitePDTs[pdt] {
			return nil
		}

		series, err := deduce.ResolveSatelliteSeries(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "satellite: series")
		}
		if err := out.SetOrThrow("satelliteSeries", dict.Int(series)); err != nil {
			return err
		}
		number, err := deduce.ResolveSatelliteNumber(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "satellite: number")
		}
		if err := out.SetOrThrow("satelliteNumber", dict.Int(number)); err != nil {
			return err
		}
		instrument, err := deduce.ResolveInstrumentType(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "satellite: instrument")
		}
		if err := out.SetOrThrow("instrumentType", dict.Int(instrument)); err != nil {
			return err
		}
		scaleFactor, err := deduce.ResolveScaleFactorOfCentralWaveNumber(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "satellite: scaleFactorOfCentralWaveNumber")
		}
		if err := out.SetOrThrow("scaleFactorOfCentralWaveNumber", dict.Int(scaleFactor)); err != nil {
			return err
		}
		scaledValue, err := deduce.ResolveScaledValueOfCentralWaveNumber(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "satellite: scaledValueOfCentralWaveNumber")
		}
		return out.SetOrThrow("scaledValueOfCentralWaveNumber", dict.Int(scaledValue))

	default:
		return nil
	}
}

// SatelliteDescriptor is the registry descriptor for the "satellite"
// concept.
var SatelliteDescriptor = registry.Descriptor{
	Name:        "satellite",
	NumVariants: 1,
	VariantName: func(v int) string { return "default" },
	Applies:     satelliteApplies,
	Op:          satelliteOp,
	Matcher:     satelliteMatcher,
}
