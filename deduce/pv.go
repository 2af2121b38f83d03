package deduce

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
	"go.uber.org/zap"
)

var errUnsupportedFloatLayout = errors.New("unsupported floating-point representation (non IEEE754 double?)")

// pvTableVectors is a demonstration PV coefficient table, keyed by logical
// size. Real deployments are expected to supply a much larger generated
// table; see the teaching note carried over from the original source
// (spec §4.4).
var pvTableVectors = map[int64][][8]byte{
	1: {
		{0x40, 0x24, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // 10.0
	},
	3: {
		{0x40, 0x24, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // 10.0
		{0x40, 0x34, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // 20.0
		{0x40, 0x3E, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // 30.0
	},
}

// lookupPVArrayFromSize resolves a demonstration PV coefficient array from
// its logical size, decoding the big-endian table data with the host's
// detected endianness (spec §4.4).
func lookupPVArrayFromSize(pvArraySize int64) ([]float64, error) {
	entries, ok := pvTableVectors[pvArraySize]
	if !ok {
		return nil, errors.Errorf("no PV array found for size %d; supported sizes are {1,3} only for debug reasons", pvArraySize)
	}

	hostLE, err := hostIsLittleEndianOrErr()
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(entries))
	for i, raw := range entries {
		out[i] = decodeBigEndianDouble(raw, hostLE)
	}
	return out, nil
}

// ResolvePVArray implements the PV array deduction of spec §4.4: if
// par["pv"] is present it is returned verbatim; else if par["pvSize"] is
// present, the byte-exact demonstration table is looked up and decoded;
// absent both, the deduction fails.
func ResolvePVArray(mars, par, opt dict.Dict) ([]float64, error) {
	if pv, ok := par.Get("pv"); ok {
		if v, ok := pv.AsFloatVector(); ok {
			resolve("pv", zap.Int("size", len(v)), zap.String("source", "par.pv"))
			return v, nil
		}
		return nil, wrap("pvArray", errors.New(`par["pv"] present but not a float vector`))
	}

	if size, ok := par.Get("pvSize"); ok {
		n, ok := size.AsInt()
		if !ok {
			return nil, wrap("pvArray", errors.New(`par["pvSize"] present but not an integer`))
		}
		pv, err := lookupPVArrayFromSize(n)
		if err != nil {
			return nil, wrap("pvArray", err)
		}
		resolve("pv", zap.Int("size", len(pv)), zap.String("source", "par.pvSize table lookup"))
		return pv, nil
	}

	return nil, wrap("pvArray", errors.New(`neither par["pv"] nor par["pvSize"] present`))
}
