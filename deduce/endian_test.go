package deduce

import "testing"

func TestHostIsLittleEndianOrErrIsStable(t *testing.T) {
	first, err := hostIsLittleEndianOrErr()
	if err != nil {
		t.Fatalf("hostIsLittleEndianOrErr: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := hostIsLittleEndianOrErr()
		if err != nil {
			t.Fatalf("hostIsLittleEndianOrErr: %v", err)
		}
		if got != first {
			t.Fatalf("hostIsLittleEndianOrErr is not stable across calls: %v vs %v", first, got)
		}
	}
}

func TestEncodeDecodeBigEndianDoubleRoundTrip(t *testing.T) {
	hostLE, err := hostIsLittleEndianOrErr()
	if err != nil {
		t.Fatalf("hostIsLittleEndianOrErr: %v", err)
	}

	values := []float64{0, 1, -1, 1.23456789, 3.14159265358979, -273.15, 1e300, -1e-300}
	for _, v := range values {
		encoded := encodeBigEndianDouble(v, hostLE)
		decoded := decodeBigEndianDouble(encoded, hostLE)
		if decoded != v {
			t.Errorf("round trip of %v produced %v", v, decoded)
		}
	}
}

func TestDecodeBigEndianDoubleMatchesSentinel(t *testing.T) {
	hostLE, err := hostIsLittleEndianOrErr()
	if err != nil {
		t.Fatalf("hostIsLittleEndianOrErr: %v", err)
	}
	if got := decodeBigEndianDouble(sentinelBE, hostLE); got != sentinelValue {
		t.Errorf("decodeBigEndianDouble(sentinelBE) = %v, want %v", got, sentinelValue)
	}
}
