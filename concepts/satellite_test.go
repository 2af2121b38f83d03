package concepts

import (
	"testing"

	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

func TestSatelliteMatcher(t *testing.T) {
	if got := satelliteMatcher(empty(), empty()); got != registry.MissingVariant {
		t.Errorf("satelliteMatcher(no ident) = %d, want MissingVariant", got)
	}
	mars := md(map[string]dict.Value{"ident": dict.Int(4)})
	if got := satelliteMatcher(mars, empty()); got != 0 {
		t.Errorf("satelliteMatcher(ident present) = %d, want 0", got)
	}
}

func TestSatelliteOpChannelRequiresLocalDefinition14(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	if err := out.SetOrThrow("localDefinitionNumber", dict.Int(1)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	mars := md(map[string]dict.Value{"ident": dict.Int(4), "channel": dict.Int(7)})
	d := registry.Dicts{Mars: mars, Geo: empty(), Par: empty(), Opt: empty()}
	if err := satelliteOp(registry.StagePreset, registry.Section2, 0, d, out); err == nil {
		t.Fatal("expected an error: localDefinitionNumber != 14")
	}
}

func TestSatelliteOpChannelWrite(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	if err := out.SetOrThrow("localDefinitionNumber", dict.Int(14)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	mars := md(map[string]dict.Value{"ident": dict.Int(4), "channel": dict.Int(7)})
	d := registry.Dicts{Mars: mars, Geo: empty(), Par: empty(), Opt: empty()}
	if err := satelliteOp(registry.StagePreset, registry.Section2, 0, d, out); err != nil {
		t.Fatalf("satelliteOp: %v", err)
	}
	got, err := out.GetInt("channel")
	if err != nil || got != 7 {
		t.Errorf("channel = (%d, %v), want (7, nil)", got, err)
	}
}

func TestSatelliteOpPresetSkipsUnlessSatellitePDT(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	if err := out.SetOrThrow("productDefinitionTemplateNumber", dict.Int(0)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	d := registry.Dicts{Mars: empty(), Geo: empty(), Par: empty(), Opt: empty()}
	if err := satelliteOp(registry.StagePreset, registry.Section4, 0, d, out); err != nil {
		t.Fatalf("satelliteOp: %v", err)
	}
	if out.Has("satelliteSeries") {
		t.Error("satelliteSeries should only be written for PDT in {32,33}")
	}
}
