package deduce

import (
	"math"
	"sync"
	"unsafe"
)

// sentinelBE is the big-endian IEEE-754 encoding of 1.23456789, used to
// detect host endianness exactly as the original system does (spec §4.4,
// "PV array"): decode the known bytes both ways and see which matches.
var sentinelBE = [8]byte{0x3F, 0xF3, 0xC0, 0xCA, 0x42, 0x83, 0xDE, 0x1B}

const sentinelValue = 1.23456789

var (
	hostLittleEndianOnce sync.Once
	hostLittleEndian     bool
	hostEndianErr        error
)

func reversed8(b [8]byte) [8]byte {
	var r [8]byte
	for i := range b {
		r[i] = b[len(b)-1-i]
	}
	return r
}

// nativeBitsOf reinterprets the 8 bytes directly as the host's native
// uint64 layout — the Go analogue of the original's raw memcpy-based
// decode. This is the one place host memory layout matters; every other
// decode/encode in this package goes through hostIsLittleEndianOrErr and
// this function, never a bare cast.
func nativeBitsOf(b [8]byte) uint64 {
	return *(*uint64)(unsafe.Pointer(&b))
}

func nativeBytesOf(bits uint64) [8]byte {
	return *(*[8]byte)(unsafe.Pointer(&bits))
}

// hostIsLittleEndianOrErr detects the host's float64 byte order once
// (call-once semantics per spec §5 and §9) by reinterpreting the known
// big-endian sentinel bytes as the host's native layout and checking which
// orientation reproduces the sentinel value. Hosts whose double layout is
// neither of the two standard byte orders (non-IEEE754) report an error.
func hostIsLittleEndianOrErr() (bool, error) {
	hostLittleEndianOnce.Do(func() {
		if math.Float64frombits(nativeBitsOf(sentinelBE)) == sentinelValue {
			hostLittleEndian = false // host native layout already matches big-endian bytes
			return
		}
		if math.Float64frombits(nativeBitsOf(reversed8(sentinelBE))) == sentinelValue {
			hostLittleEndian = true
			return
		}
		hostEndianErr = wrap("hostEndianness", errUnsupportedFloatLayout)
	})
	return hostLittleEndian, hostEndianErr
}

// decodeBigEndianDouble decodes an 8-byte big-endian IEEE-754 value into a
// native float64, reversing it first when the host is little-endian so
// that nativeBitsOf sees the bytes in the host's own layout.
func decodeBigEndianDouble(b [8]byte, hostLE bool) float64 {
	if !hostLE {
		return math.Float64frombits(nativeBitsOf(b))
	}
	return math.Float64frombits(nativeBitsOf(reversed8(b)))
}

// encodeBigEndianDouble is the inverse of decodeBigEndianDouble, used by
// the endianness round-trip property test (spec §8).
func encodeBigEndianDouble(v float64, hostLE bool) [8]byte {
	native := nativeBytesOf(math.Float64bits(v))
	if !hostLE {
		return native
	}
	return reversed8(native)
}
