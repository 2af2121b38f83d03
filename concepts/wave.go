package concepts

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/deduce"
	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

// WaveVariant enumerates the variants of the "wave" concept: spectral
// wave fields (direction/frequency grids) versus directional/period wave
// fields (spec §4.3, "wave").
type WaveVariant int

const (
	WaveSpectra WaveVariant = iota
	WavePeriod
)

func waveVariantName(v int) string {
	if WaveVariant(v) == WavePeriod {
		return "period"
	}
	return "spectra"
}

func waveApplies(stage registry.Stage, section registry.Section, variant int) bool {
	if section != registry.Section4 {
		return false
	}
	switch WaveVariant(variant) {
	case WaveSpectra:
		return stage == registry.StageAllocate || stage == registry.StageRuntime
	case WavePeriod:
		return stage == registry.StagePreset
	default:
		return false
	}
}

// waveMatcher selects Spectra when the request carries a wave direction
// grid seed, Period when it carries period bounds, else disables the
// concept.
func waveMatcher(mars, opt dict.Dict) int {
	if mars.Has("waveDirections") || mars.Has("numberOfWaveDirections") {
		return int(WaveSpectra)
	}
	if mars.Has("periodItMin") || mars.Has("periodItMax") {
		return int(WavePeriod)
	}
	return registry.MissingVariant
}

func waveOp(stage registry.Stage, section registry.Section, variant int, d registry.Dicts, out dict.Writable) error {
	if !waveApplies(stage, section, variant) {
		return errors.New("wave concept invoked outside its applicability domain")
	}

	switch WaveVariant(variant) {
	case WaveSpectra:
		return waveSpectraOp(stage, d, out)
	case WavePeriod:
		return wavePeriodOp(d, out)
	default:
		return errors.Errorf("wave: unknown variant %d", variant)
	}
}

func waveSpectraOp(stage registry.Stage, d registry.Dicts, out dict.Writable) error {
	if stage == registry.StageAllocate {
		dirGrid, err := deduce.ResolveWaveDirectionGrid(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "wave: direction grid")
		}
		if err := out.SetOrThrow("numberOfDirections", dict.Int(dirGrid.NumDirections)); err != nil {
			return err
		}
		if err := out.SetOrThrow("scaleFactorOfDirections", dict.Int(dirGrid.ScaleFactor)); err != nil {
			return err
		}
		if err := out.SetOrThrow("scaledDirections", dict.IntVector(dirGrid.ScaledValues)); err != nil {
			return err
		}

		freqGrid, err := deduce.ResolveWaveFrequencyGrid(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "wave: frequency grid")
		}
		if err := out.SetOrThrow("numberOfFrequencies", dict.Int(freqGrid.NumFrequencies)); err != nil {
			return err
		}
		if err := out.SetOrThrow("scaleFactorOfFrequencies", dict.Int(freqGrid.ScaleFactor)); err != nil {
			return err
		}
		return out.SetOrThrow("scaledFrequencies", dict.IntVector(freqGrid.ScaledValues))
	}

	// StageRuntime: the per-message direction/frequency bin indices.
	dirNum, err := deduce.ResolveWaveDirectionNumber(d.Mars, d.Par, d.Opt)
	if err != nil {
		return errors.Wrap(err, "wave: direction number")
	}
	if err := out.SetOrThrow("waveDirectionNumber", dict.Int(dirNum)); err != nil {
		return err
	}
	freqNum, err := deduce.ResolveWaveFrequencyNumber(d.Mars, d.Par, d.Opt)
	if err != nil {
		return errors.Wrap(err, "wave: frequency number")
	}
	return out.SetOrThrow("waveFrequencyNumber", dict.Int(freqNum))
}

// wavePeriodOp writes one of the four GRIB type-of-interval encodings
// depending on which of the period bounds (iTmin/iTmax) is present: both,
// only the minimum, only the maximum, or neither (spec §4.3, "wave").
func wavePeriodOp(d registry.Dicts, out dict.Writable) error {
	itMin, hasMin, err := deduce.ResolvePeriodItMin(d.Mars, d.Par, d.Opt)
	if err != nil {
		return errors.Wrap(err, "wave: period minimum")
	}
	itMax, hasMax, err := deduce.ResolvePeriodItMax(d.Mars, d.Par, d.Opt)
	if err != nil {
		return errors.Wrap(err, "wave: period maximum")
	}

	switch {
	case hasMin && hasMax:
		if err := out.SetOrThrow("typeOfTimeIncrement", dict.Int(2)); err != nil {
			return err
		}
		if err := out.SetOrThrow("lengthOfTimeRange", dict.Int(itMax-itMin)); err != nil {
			return err
		}
	case hasMin:
		if err := out.SetOrThrow("typeOfTimeIncrement", dict.Int(3)); err != nil {
			return err
		}
		if err := out.SetOrThrow("lengthOfTimeRange", dict.Int(itMin)); err != nil {
			return err
		}
	case hasMax:
		if err := out.SetOrThrow("typeOfTimeIncrement", dict.Int(4)); err != nil {
			return err
		}
		if err := out.SetOrThrow("lengthOfTimeRange", dict.Int(itMax)); err != nil {
			return err
		}
	default:
		return out.SetOrThrow("typeOfTimeIncrement", dict.Int(1))
	}
	return nil
}

// WaveDescriptor is the registry descriptor for the "wave" concept.
var WaveDescriptor = registry.Descriptor{
	Name:        "wave",
	NumVariants: 2,
	VariantName: waveVariantName,
	Applies:     waveApplies,
	Op:          waveOp,
	Matcher:     waveMatcher,
}
