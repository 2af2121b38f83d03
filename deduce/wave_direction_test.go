package deduce

import (
	"math"
	"testing"

	"github.com/wxmet/mars2grib/dict"
)

func TestComputeEquallySpacedWaveDirectionsSpacingAndMidpoint(t *testing.T) {
	const n = 8
	dirs := computeEquallySpacedWaveDirections(n)
	if len(dirs) != n {
		t.Fatalf("len(dirs) = %d, want %d", len(dirs), n)
	}

	delta := 2 * math.Pi / n
	const eps = 1e-9

	if dirs[0] <= 0 {
		t.Errorf("first direction %v should be strictly positive (offset by half-delta)", dirs[0])
	}
	if math.Abs(dirs[0]-0.5*delta) > eps {
		t.Errorf("first direction = %v, want half-delta = %v", dirs[0], 0.5*delta)
	}
	if dirs[n-1] >= 2*math.Pi {
		t.Errorf("last direction %v should be strictly below 2*pi", dirs[n-1])
	}
	for k := 1; k < n; k++ {
		if math.Abs((dirs[k]-dirs[k-1])-delta) > eps {
			t.Errorf("spacing between direction %d and %d = %v, want %v", k-1, k, dirs[k]-dirs[k-1], delta)
		}
	}
}

func TestResolveWaveDirectionGridVerbatim(t *testing.T) {
	par := dict.NewMapDict(map[string]dict.Value{
		"waveDirections": dict.FloatVector([]float64{0.1, 0.2, 0.3}),
	})
	got, err := ResolveWaveDirectionGrid(dict.NewMapDict(nil), par, dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("ResolveWaveDirectionGrid: %v", err)
	}
	if got.NumDirections != 3 {
		t.Errorf("NumDirections = %d, want 3", got.NumDirections)
	}
	if got.ScaleFactor != 2 {
		t.Errorf("ScaleFactor = %d, want default 2", got.ScaleFactor)
	}
}

func TestResolveWaveDirectionGridReconstructed(t *testing.T) {
	par := dict.NewMapDict(map[string]dict.Value{
		"numberOfWaveDirections": dict.Int(4),
	})
	got, err := ResolveWaveDirectionGrid(dict.NewMapDict(nil), par, dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("ResolveWaveDirectionGrid: %v", err)
	}
	if got.NumDirections != 4 {
		t.Errorf("NumDirections = %d, want 4", got.NumDirections)
	}
	if len(got.ScaledValues) != 4 {
		t.Errorf("len(ScaledValues) = %d, want 4", len(got.ScaledValues))
	}
}

func TestResolveWaveDirectionGridNeitherPresentFails(t *testing.T) {
	if _, err := ResolveWaveDirectionGrid(dict.NewMapDict(nil), dict.NewMapDict(nil), dict.NewMapDict(nil)); err == nil {
		t.Fatal("expected an error when neither waveDirections nor numberOfWaveDirections is present")
	}
}

func TestResolveWaveDirectionGridRejectsNonPositiveCount(t *testing.T) {
	par := dict.NewMapDict(map[string]dict.Value{"numberOfWaveDirections": dict.Int(0)})
	if _, err := ResolveWaveDirectionGrid(dict.NewMapDict(nil), par, dict.NewMapDict(nil)); err == nil {
		t.Fatal("expected an error for numberOfWaveDirections = 0")
	}
}
