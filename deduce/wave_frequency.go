package deduce

import (
	"math"

	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
	"go.uber.org/zap"
)

// WaveFrequencyGrid is the scaled-integer representation of a discretized
// wave frequency grid (spec §4.4, "Wave frequency grid").
type WaveFrequencyGrid struct {
	NumFrequencies int64
	ScaleFactor    int64
	ScaledValues   []int64
}

// computeGeometricWaveFrequencies builds a geometrically spaced frequency
// grid centered on a reference frequency at a 1-based index, following the
// same discretization as ECMWF ECWAM's MFR routine (mfr.F90): frequencies
// below the reference are divided by the ratio, frequencies above are
// multiplied by it.
func computeGeometricWaveFrequencies(n, refIndex1Based int64, refFrequency, ratio float64) ([]float64, error) {
	if refIndex1Based <= 0 || refIndex1Based > n {
		return nil, errors.Errorf("indexOfReferenceWaveFrequency %d out of range [1,%d]", refIndex1Based, n)
	}
	out := make([]float64, n)
	ref := refIndex1Based - 1
	out[ref] = refFrequency
	for i := ref; i > 0; i-- {
		out[i-1] = out[i] / ratio
	}
	for i := ref + 1; i < n; i++ {
		out[i] = out[i-1] * ratio
	}
	return out, nil
}

func scaleWaveFrequencies(hz []float64, scaleFactor int64) WaveFrequencyGrid {
	scaled := make([]int64, len(hz))
	factor := math.Pow(10.0, float64(scaleFactor))
	for i, f := range hz {
		scaled[i] = int64(math.Round(f * factor))
	}
	return WaveFrequencyGrid{
		NumFrequencies: int64(len(hz)),
		ScaleFactor:    scaleFactor,
		ScaledValues:   scaled,
	}
}

// ResolveWaveFrequencyGrid resolves the scaled wave frequency grid, either
// by taking par["waveFrequencies"] (Hz) verbatim or by reconstructing a
// geometrically spaced grid from par["numberOfWaveFrequencies"],
// par["indexOfReferenceWaveFrequency"], par["referenceWaveFrequency"], and
// par["waveFrequencySpacingRatio"]. The explicit vector takes precedence
// when both are present. The scale factor defaults to 6 when
// par["scaleFactorOfWaveFrequencies"] is absent.
func ResolveWaveFrequencyGrid(mars, par, opt dict.Dict) (WaveFrequencyGrid, error) {
	scaleFactor := int64(6)
	if v, ok := par.Get("scaleFactorOfWaveFrequencies"); ok {
		sf, ok := v.AsInt()
		if !ok {
			return WaveFrequencyGrid{}, wrap("waveFrequencyGrid", errors.New(`par["scaleFactorOfWaveFrequencies"] present but not an integer`))
		}
		scaleFactor = sf
	}

	canReconstruct := par.Has("numberOfWaveFrequencies") && par.Has("indexOfReferenceWaveFrequency") &&
		par.Has("referenceWaveFrequency") && par.Has("waveFrequencySpacingRatio")

	var freqInHz []float64
	var source string

	switch {
	case par.Has("waveFrequencies"):
		v, _ := par.Get("waveFrequencies")
		fv, ok := v.AsFloatVector()
		if !ok {
			return WaveFrequencyGrid{}, wrap("waveFrequencyGrid", errors.New(`par["waveFrequencies"] present but not a float vector`))
		}
		freqInHz = fv
		source = "par.waveFrequencies"

	case canReconstruct:
		n, err := par.GetInt("numberOfWaveFrequencies")
		if err != nil {
			return WaveFrequencyGrid{}, wrap("waveFrequencyGrid", errors.Wrap(err, `par["numberOfWaveFrequencies"]`))
		}
		idx, err := par.GetInt("indexOfReferenceWaveFrequency")
		if err != nil {
			return WaveFrequencyGrid{}, wrap("waveFrequencyGrid", errors.Wrap(err, `par["indexOfReferenceWaveFrequency"]`))
		}
		ref, err := par.GetFloat("referenceWaveFrequency")
		if err != nil {
			return WaveFrequencyGrid{}, wrap("waveFrequencyGrid", errors.Wrap(err, `par["referenceWaveFrequency"]`))
		}
		ratio, err := par.GetFloat("waveFrequencySpacingRatio")
		if err != nil {
			return WaveFrequencyGrid{}, wrap("waveFrequencyGrid", errors.Wrap(err, `par["waveFrequencySpacingRatio"]`))
		}
		grid, err := computeGeometricWaveFrequencies(n, idx, ref, ratio)
		if err != nil {
			return WaveFrequencyGrid{}, wrap("waveFrequencyGrid", err)
		}
		freqInHz = grid
		source = "reconstructed from par geometric-spacing keys"

	default:
		return WaveFrequencyGrid{}, wrap("waveFrequencyGrid", errors.New(
			`neither par["waveFrequencies"] nor the full geometric-spacing key set is present`))
	}

	out := scaleWaveFrequencies(freqInHz, scaleFactor)
	resolve("waveFrequencyGrid", zap.Int64("numFrequencies", out.NumFrequencies), zap.String("source", source))
	return out, nil
}
