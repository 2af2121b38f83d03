package deduce

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/tables"
	"go.uber.org/zap"
)

func resolveMarsString(mars dict.Dict, name, key string) (string, error) {
	v, err := mars.GetString(key)
	if err != nil {
		return "", wrap(name, errors.Wrapf(err, "mars[%q]", key))
	}
	resolve(name, zap.String(key, v))
	return v, nil
}

func resolveMarsInt(mars dict.Dict, name, key string) (int64, error) {
	v, err := mars.GetInt(key)
	if err != nil {
		return 0, wrap(name, errors.Wrapf(err, "mars[%q]", key))
	}
	resolve(name, zap.Int64(key, v))
	return v, nil
}

// ResolveClass returns mars["class"], the MARS data class.
func ResolveClass(mars, par, opt dict.Dict) (string, error) { return resolveMarsString(mars, "class", "class") }

// ResolveType returns mars["type"], the MARS data type.
func ResolveType(mars, par, opt dict.Dict) (string, error) { return resolveMarsString(mars, "type", "type") }

// ResolveStream returns mars["stream"], the MARS stream.
func ResolveStream(mars, par, opt dict.Dict) (string, error) { return resolveMarsString(mars, "stream", "stream") }

// ResolveExpver returns mars["expver"], the experiment version.
func ResolveExpver(mars, par, opt dict.Dict) (string, error) { return resolveMarsString(mars, "expver", "expver") }

// ResolveParamId returns mars["param"], the MARS parameter code.
func ResolveParamId(mars, par, opt dict.Dict) (int64, error) { return resolveMarsInt(mars, "paramId", "param") }

// ResolveMarsDirection returns mars["direction"], used by directional wave
// and ocean-current encoding.
func ResolveMarsDirection(mars, par, opt dict.Dict) (int64, error) {
	return resolveMarsInt(mars, "marsDirection", "direction")
}

// ResolveMarsFrequency returns mars["frequency"], used by spectral wave
// encoding.
func ResolveMarsFrequency(mars, par, opt dict.Dict) (int64, error) {
	return resolveMarsInt(mars, "marsFrequency", "frequency")
}

// ResolveWaveDirectionNumber returns mars["direction"] as the 1-based
// directional-bin index for spectral wave encoding.
func ResolveWaveDirectionNumber(mars, par, opt dict.Dict) (int64, error) {
	return resolveMarsInt(mars, "waveDirectionNumber", "direction")
}

// ResolveWaveFrequencyNumber returns mars["frequency"] as the 1-based
// frequency-bin index for spectral wave encoding.
func ResolveWaveFrequencyNumber(mars, par, opt dict.Dict) (int64, error) {
	return resolveMarsInt(mars, "waveFrequencyNumber", "frequency")
}

// ResolveSatelliteNumber returns mars["ident"], the satellite identifier.
func ResolveSatelliteNumber(mars, par, opt dict.Dict) (int64, error) {
	return resolveMarsInt(mars, "satelliteNumber", "ident")
}

// ResolveChannel returns mars["channel"], the instrument channel number.
func ResolveChannel(mars, par, opt dict.Dict) (int64, error) {
	return resolveMarsInt(mars, "channel", "channel")
}

// ResolveInstrumentType returns mars["instrument"], the instrument type
// code.
func ResolveInstrumentType(mars, par, opt dict.Dict) (int64, error) {
	return resolveMarsInt(mars, "instrumentType", "instrument")
}

func resolveParInt(par dict.Dict, name, key string) (int64, error) {
	v, err := par.GetInt(key)
	if err != nil {
		return 0, wrap(name, errors.Wrapf(err, "par[%q]", key))
	}
	resolve(name, zap.Int64(key, v))
	return v, nil
}

// ResolveSatelliteSeries returns par["satelliteSeries"].
func ResolveSatelliteSeries(mars, par, opt dict.Dict) (int64, error) {
	return resolveParInt(par, "satelliteSeries", "satelliteSeries")
}

// ResolveScaleFactorOfCentralWaveNumber returns
// par["scaleFactorOfCentralWaveNumber"].
func ResolveScaleFactorOfCentralWaveNumber(mars, par, opt dict.Dict) (int64, error) {
	return resolveParInt(par, "scaleFactorOfCentralWaveNumber", "scaleFactorOfCentralWaveNumber")
}

// ResolveScaledValueOfCentralWaveNumber returns
// par["scaledValueOfCentralWaveNumber"].
func ResolveScaledValueOfCentralWaveNumber(mars, par, opt dict.Dict) (int64, error) {
	return resolveParInt(par, "scaledValueOfCentralWaveNumber", "scaledValueOfCentralWaveNumber")
}

// ResolvePeriodItMax returns par["iTmax"] and whether it was present: the
// statistical-processing period end is optional, like the period start
// returned by ResolvePeriodItMin (spec §4.4, "Period bounds").
func ResolvePeriodItMax(mars, par, opt dict.Dict) (int64, bool, error) {
	v, ok := par.Get("iTmax")
	if !ok {
		resolve("periodItMax", zap.Bool("present", false))
		return 0, false, nil
	}
	n, ok2 := v.AsInt()
	if !ok2 {
		return 0, false, wrap("periodItMax", errors.New(`par["iTmax"] present but not an integer`))
	}
	resolve("periodItMax", zap.Int64("iTmax", n))
	return n, true, nil
}

// ResolvePeriodItMin returns par["iTmin"] and whether it was present, the
// statistical-processing period start.
func ResolvePeriodItMin(mars, par, opt dict.Dict) (int64, bool, error) {
	v, ok := par.Get("iTmin")
	if !ok {
		resolve("periodItMin", zap.Bool("present", false))
		return 0, false, nil
	}
	n, ok2 := v.AsInt()
	if !ok2 {
		return 0, false, wrap("periodItMin", errors.New(`par["iTmin"] present but not an integer`))
	}
	resolve("periodItMin", zap.Int64("iTmin", n))
	return n, true, nil
}

// ResolveShapeOfTheEarth always returns tables.EarthSphericalRadius6371229:
// no input dictionary carries enough information to choose a local or
// ellipsoidal reference system yet. A future deduction should validate
// consistency between local-table version and centre/subCentre before
// picking anything else.
func ResolveShapeOfTheEarth(mars, par, geo, opt dict.Dict) (tables.ShapeOfTheEarth, error) {
	shape := tables.EarthSphericalRadius6371229
	if _, err := tables.ShapeOfTheEarthTable.EnumToName(shape); err != nil {
		return 0, wrap("shapeOfTheEarth", err)
	}
	resolve("shapeOfTheEarth", zap.Int64("shapeOfTheEarth", tables.ShapeOfTheEarthTable.Long(shape)))
	return shape, nil
}

// allowedReferenceValueRanges is the midpoint table used by
// ResolveAllowedReferenceValue, keyed by MARS parameter code.
var allowedReferenceValueRanges = map[int64][2]float64{
	3: {170.0, 1200.0}, 10: {0.0, 300.0}, 31: {-0.00001, 1.001}, 33: {10.0, 1000.0},
	34: {160.0, 320.0}, 43: {0.0, 10.0}, 49: {0.0, 100.0}, 54: {100.0, 108000.0},
	59: {0.0, 40000.0}, 60: {-1.0, 1.0}, 121: {160.0, 380.0}, 122: {150.0, 330.0},
	129: {-13000.0, 3500000.0}, 130: {140.0, 400.0}, 131: {-250.0, 250.0}, 132: {-250.0, 250.0},
	133: {-0.1, 0.1}, 134: {43000.0, 115000.0}, 135: {-30.0, 30.0}, 136: {-50.0, 220.0},
	151: {85000.0, 125000.0}, 156: {-1300.0, 35000.0}, 157: {0.0, 180.0}, 164: {0.0, 1.0},
	165: {-150.0, 150.0}, 166: {-100.0, 100.0}, 167: {160.0, 370.0}, 168: {25.0, 350.0},
	172: {0.0, 1.0}, 173: {0.0, 10.0}, 186: {0.0, 1.0}, 187: {0.0, 1.0}, 188: {0.0, 1.0},
	207: {0.0, 300.0}, 235: {120.0, 380.0}, 246: {-0.001, 1e6}, 247: {-0.001, 0.01},
	3031: {0.0, 360.1}, 3062: {-0.05, 130.0}, 3066: {0.0, 5.0}, 3073: {0.0, 100.0},
	3074: {0.0, 100.0}, 3075: {0.0, 100.0}, 140230: {-1.0, 360.5},
	151131: {-3.5, 3.5}, 151132: {-3.5, 3.5}, 151145: {-4.0, 4.0},
	228001: {-60000.0, 1000.0}, 228002: {-1300.0, 8888.0}, 228004: {160.0, 370.0},
	228005: {0.0, 300.0}, 228006: {0.0, 1.0}, 228141: {-1e-10, 15000.0},
	260057: {-3.0, 150.0}, 260259: {-10.0, 5.0}, 260260: {0.0, 360.1},
	262101: {160.0, 320.0}, 262140: {-3.5, 3.5}, 262501: {173.0, 1000.0},
	263101: {160.0, 320.0}, 263140: {-3.5, 3.5}, 263501: {173.0, 1000.0},
}

// ResolveAllowedReferenceValue returns the midpoint of a known physical
// range for mars["param"], or 0.0 when the parameter is not in the table.
// Used to seed a placeholder referenceValue before the real data is
// available for statistics-based scaling (spec §4.4, "Allowed reference
// value").
func ResolveAllowedReferenceValue(mars, par, opt dict.Dict) (float64, error) {
	paramVal, err := mars.GetInt("param")
	if err != nil {
		return 0, wrap("allowedReferenceValue", errors.Wrap(err, `mars["param"]`))
	}

	ret := 0.0
	if rng, ok := allowedReferenceValueRanges[paramVal]; ok {
		ret = 0.5 * (rng[0] + rng[1])
	}

	resolve("allowedReferenceValue", zap.Float64("allowedReferenceValue", ret))
	return ret, nil
}
