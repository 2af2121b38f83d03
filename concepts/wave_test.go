package concepts

import (
	"testing"

	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

func TestWaveMatcherSpectraVsPeriod(t *testing.T) {
	spectra := md(map[string]dict.Value{"numberOfWaveDirections": dict.Int(24)})
	if got := waveMatcher(spectra, empty()); got != int(WaveSpectra) {
		t.Errorf("waveMatcher(spectra) = %d, want %d", got, WaveSpectra)
	}

	period := md(map[string]dict.Value{"periodItMin": dict.Int(6)})
	if got := waveMatcher(period, empty()); got != int(WavePeriod) {
		t.Errorf("waveMatcher(period) = %d, want %d", got, WavePeriod)
	}

	if got := waveMatcher(empty(), empty()); got != registry.MissingVariant {
		t.Errorf("waveMatcher(neither) = %d, want MissingVariant", got)
	}
}

func TestWavePeriodOpBothBounds(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	d := registry.Dicts{
		Mars: empty(), Geo: empty(),
		Par: md(map[string]dict.Value{"iTmin": dict.Int(6), "iTmax": dict.Int(12)}),
		Opt: empty(),
	}
	if err := wavePeriodOp(d, out); err != nil {
		t.Fatalf("wavePeriodOp: %v", err)
	}
	inc, err := out.GetInt("typeOfTimeIncrement")
	if err != nil || inc != 2 {
		t.Errorf("typeOfTimeIncrement = (%d, %v), want (2, nil)", inc, err)
	}
	length, err := out.GetInt("lengthOfTimeRange")
	if err != nil || length != 6 {
		t.Errorf("lengthOfTimeRange = (%d, %v), want (6, nil)", length, err)
	}
}

func TestWavePeriodOpNeitherBound(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	d := registry.Dicts{Mars: empty(), Geo: empty(), Par: empty(), Opt: empty()}
	if err := wavePeriodOp(d, out); err != nil {
		t.Fatalf("wavePeriodOp: %v", err)
	}
	inc, err := out.GetInt("typeOfTimeIncrement")
	if err != nil || inc != 1 {
		t.Errorf("typeOfTimeIncrement = (%d, %v), want (1, nil)", inc, err)
	}
}

func TestWaveSpectraOpAllocateFailsWithoutFrequencySource(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	d := registry.Dicts{
		Mars: empty(), Geo: empty(),
		Par: md(map[string]dict.Value{"numberOfWaveDirections": dict.Int(4)}),
		Opt: empty(),
	}
	err := waveSpectraOp(registry.StageAllocate, d, out)
	if err == nil {
		t.Fatal("expected an error: frequency grid has no source in this par dict")
	}
}
