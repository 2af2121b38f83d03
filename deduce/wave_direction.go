package deduce

import (
	"math"

	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
	"go.uber.org/zap"
)

// WaveDirectionGrid is the scaled-integer representation of a discretized
// wave direction grid, as produced for GRIB wave-spectra encoding (spec
// §4.4, "Wave direction grid").
type WaveDirectionGrid struct {
	NumDirections  int64
	ScaleFactor    int64
	ScaledValues   []int64
}

// computeEquallySpacedWaveDirections discretizes [0, 2*pi) into n equally
// spaced directions, each offset by half the spacing so no direction sits
// exactly on zero. This mirrors the midpoint discretization used by
// ECMWF's ECWAM wave model (mfredir.F90): theta_k = k*delta + delta/2.
func computeEquallySpacedWaveDirections(n int64) []float64 {
	out := make([]float64, n)
	delta := 2 * math.Pi / float64(n)
	for k := int64(0); k < n; k++ {
		out[k] = float64(k)*delta + 0.5*delta
	}
	return out
}

func scaleWaveDirections(radians []float64, scaleFactor int64) WaveDirectionGrid {
	scaled := make([]int64, len(radians))
	factor := math.Pow(10.0, float64(scaleFactor))
	for i, r := range radians {
		scaled[i] = int64(math.Round(r * factor))
	}
	return WaveDirectionGrid{
		NumDirections: int64(len(radians)),
		ScaleFactor:   scaleFactor,
		ScaledValues:  scaled,
	}
}

// ResolveWaveDirectionGrid resolves the scaled wave direction grid, either
// by taking par["waveDirections"] (radians) verbatim or by reconstructing
// an equally spaced grid from par["numberOfWaveDirections"]. The scale
// factor defaults to 2 when par["scaleFactorOfWaveDirections"] is absent.
func ResolveWaveDirectionGrid(mars, par, opt dict.Dict) (WaveDirectionGrid, error) {
	scaleFactor := int64(2)
	if v, ok := par.Get("scaleFactorOfWaveDirections"); ok {
		sf, ok := v.AsInt()
		if !ok {
			return WaveDirectionGrid{}, wrap("waveDirectionGrid", errors.New(`par["scaleFactorOfWaveDirections"] present but not an integer`))
		}
		scaleFactor = sf
	}

	var directionsInRadians []float64
	var source string

	switch {
	case par.Has("waveDirections"):
		v, ok := par.Get("waveDirections")
		if !ok {
			return WaveDirectionGrid{}, wrap("waveDirectionGrid", errors.New(`par["waveDirections"] vanished between Has and Get`))
		}
		fv, ok := v.AsFloatVector()
		if !ok {
			return WaveDirectionGrid{}, wrap("waveDirectionGrid", errors.New(`par["waveDirections"] present but not a float vector`))
		}
		directionsInRadians = fv
		source = "par.waveDirections"

	case par.Has("numberOfWaveDirections"):
		n, err := par.GetInt("numberOfWaveDirections")
		if err != nil {
			return WaveDirectionGrid{}, wrap("waveDirectionGrid", errors.Wrap(err, `par["numberOfWaveDirections"]`))
		}
		if n <= 0 {
			return WaveDirectionGrid{}, wrap("waveDirectionGrid", errors.Errorf("numberOfWaveDirections must be positive, got %d", n))
		}
		directionsInRadians = computeEquallySpacedWaveDirections(n)
		source = "reconstructed from par.numberOfWaveDirections"

	default:
		return WaveDirectionGrid{}, wrap("waveDirectionGrid", errors.New(`neither par["waveDirections"] nor par["numberOfWaveDirections"] present`))
	}

	out := scaleWaveDirections(directionsInRadians, scaleFactor)
	resolve("waveDirectionGrid", zap.Int64("numDirections", out.NumDirections), zap.String("source", source))
	return out, nil
}
