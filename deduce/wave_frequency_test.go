package deduce

import (
	"math"
	"testing"

	"github.com/wxmet/mars2grib/dict"
)

func TestComputeGeometricWaveFrequenciesRatioAndReference(t *testing.T) {
	const n = 5
	const refIndex = 3 // 1-based
	const refFreq = 0.1
	const ratio = 1.1

	freqs, err := computeGeometricWaveFrequencies(n, refIndex, refFreq, ratio)
	if err != nil {
		t.Fatalf("computeGeometricWaveFrequencies: %v", err)
	}
	if len(freqs) != n {
		t.Fatalf("len(freqs) = %d, want %d", len(freqs), n)
	}

	const eps = 1e-12
	if math.Abs(freqs[refIndex-1]-refFreq) > eps {
		t.Errorf("freqs[%d] = %v, want reference frequency %v", refIndex-1, freqs[refIndex-1], refFreq)
	}
	for i := 1; i < n; i++ {
		got := freqs[i] / freqs[i-1]
		if math.Abs(got-ratio) > eps {
			t.Errorf("freqs[%d]/freqs[%d] = %v, want ratio %v", i, i-1, got, ratio)
		}
	}
}

func TestComputeGeometricWaveFrequenciesRejectsOutOfRangeIndex(t *testing.T) {
	if _, err := computeGeometricWaveFrequencies(5, 0, 0.1, 1.1); err == nil {
		t.Fatal("expected an error for a reference index of 0 (must be 1-based)")
	}
	if _, err := computeGeometricWaveFrequencies(5, 6, 0.1, 1.1); err == nil {
		t.Fatal("expected an error for a reference index beyond n")
	}
}

func TestResolveWaveFrequencyGridVerbatim(t *testing.T) {
	par := dict.NewMapDict(map[string]dict.Value{
		"waveFrequencies": dict.FloatVector([]float64{0.1, 0.2, 0.3}),
	})
	got, err := ResolveWaveFrequencyGrid(dict.NewMapDict(nil), par, dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("ResolveWaveFrequencyGrid: %v", err)
	}
	if got.NumFrequencies != 3 {
		t.Errorf("NumFrequencies = %d, want 3", got.NumFrequencies)
	}
	if got.ScaleFactor != 6 {
		t.Errorf("ScaleFactor = %d, want default 6", got.ScaleFactor)
	}
}

func TestResolveWaveFrequencyGridReconstructed(t *testing.T) {
	par := dict.NewMapDict(map[string]dict.Value{
		"numberOfWaveFrequencies":       dict.Int(5),
		"indexOfReferenceWaveFrequency": dict.Int(1),
		"referenceWaveFrequency":        dict.Float(0.0345),
		"waveFrequencySpacingRatio":     dict.Float(1.1),
	})
	got, err := ResolveWaveFrequencyGrid(dict.NewMapDict(nil), par, dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("ResolveWaveFrequencyGrid: %v", err)
	}
	if got.NumFrequencies != 5 {
		t.Errorf("NumFrequencies = %d, want 5", got.NumFrequencies)
	}
}

func TestResolveWaveFrequencyGridVerbatimTakesPrecedence(t *testing.T) {
	par := dict.NewMapDict(map[string]dict.Value{
		"waveFrequencies":               dict.FloatVector([]float64{1, 2}),
		"numberOfWaveFrequencies":       dict.Int(5),
		"indexOfReferenceWaveFrequency": dict.Int(1),
		"referenceWaveFrequency":        dict.Float(0.0345),
		"waveFrequencySpacingRatio":     dict.Float(1.1),
	})
	got, err := ResolveWaveFrequencyGrid(dict.NewMapDict(nil), par, dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("ResolveWaveFrequencyGrid: %v", err)
	}
	if got.NumFrequencies != 2 {
		t.Errorf("NumFrequencies = %d, want 2 (verbatim vector should take precedence)", got.NumFrequencies)
	}
}

func TestResolveWaveFrequencyGridNeitherPresentFails(t *testing.T) {
	if _, err := ResolveWaveFrequencyGrid(dict.NewMapDict(nil), dict.NewMapDict(nil), dict.NewMapDict(nil)); err == nil {
		t.Fatal("expected an error when neither source is present")
	}
}
