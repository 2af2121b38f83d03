package concepts

import (
	"testing"

	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

func md(values map[string]dict.Value) *dict.MapDict { return dict.NewMapDict(values) }
func empty() *dict.MapDict                          { return dict.NewMapDict(nil) }

func TestLevelMatcherSoilLayerVsSoil(t *testing.T) {
	layer := md(map[string]dict.Value{"levtype": dict.String("sol"), "paramId": dict.Int(260367)})
	if got := levelMatcher(layer, empty()); got != int(LevelSoilLayer) {
		t.Errorf("levelMatcher(soilLayer paramId) = %d, want %d", got, LevelSoilLayer)
	}

	point := md(map[string]dict.Value{"levtype": dict.String("sol"), "paramId": dict.Int(260644)})
	if got := levelMatcher(point, empty()); got != int(LevelSoil) {
		t.Errorf("levelMatcher(soil point paramId) = %d, want %d", got, LevelSoil)
	}
}

func TestLevelMatcherNoLevtypeDisables(t *testing.T) {
	if got := levelMatcher(empty(), empty()); got != registry.MissingVariant {
		t.Errorf("levelMatcher(no levtype) = %d, want MissingVariant", got)
	}
}

func TestLevelMatcherIsobaric(t *testing.T) {
	mars := md(map[string]dict.Value{"levtype": dict.String("pl")})
	if got := levelMatcher(mars, empty()); got != int(LevelIsobaricInHpa) {
		t.Errorf("levelMatcher(pl) = %d, want %d", got, LevelIsobaricInHpa)
	}
}

func TestLevelOpSoilLayerBracketsLevel(t *testing.T) {
	d := registry.Dicts{
		Mars: md(map[string]dict.Value{"levtype": dict.String("sol"), "paramId": dict.Int(260367), "level": dict.Int(4)}),
		Geo:  empty(), Par: empty(), Opt: empty(),
	}
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	if err := levelOp(registry.StagePreset, registry.Section4, int(LevelSoilLayer), d, out); err != nil {
		t.Fatalf("levelOp: %v", err)
	}
	typeOfLevel, err := out.GetString("typeOfLevel")
	if err != nil || typeOfLevel != "soilLayer" {
		t.Errorf("typeOfLevel = (%q, %v), want (soilLayer, nil)", typeOfLevel, err)
	}
	first, err := out.GetInt("scaledValueOfFirstFixedSurface")
	if err != nil || first != 3 {
		t.Errorf("scaledValueOfFirstFixedSurface = (%d, %v), want (3, nil)", first, err)
	}
	second, err := out.GetInt("scaledValueOfSecondFixedSurface")
	if err != nil || second != 4 {
		t.Errorf("scaledValueOfSecondFixedSurface = (%d, %v), want (4, nil)", second, err)
	}
}

func TestLevelOpSoilPointHasNoSecondSurface(t *testing.T) {
	d := registry.Dicts{
		Mars: md(map[string]dict.Value{"levtype": dict.String("sol"), "paramId": dict.Int(260644), "level": dict.Int(4)}),
		Geo:  empty(), Par: empty(), Opt: empty(),
	}
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	if err := levelOp(registry.StagePreset, registry.Section4, int(LevelSoil), d, out); err != nil {
		t.Fatalf("levelOp: %v", err)
	}
	if out.Has("scaledValueOfSecondFixedSurface") {
		t.Error("soil (point) levelling should not write scaledValueOfSecondFixedSurface")
	}
}

func TestLevelOpOutsideApplicabilityDomainRejectsWithoutTouchingOut(t *testing.T) {
	d := registry.Dicts{Mars: empty(), Geo: empty(), Par: empty(), Opt: empty()}
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	err := registry.CallApplicable(LevelDescriptor, registry.StageAllocate, registry.Section4, int(LevelIsobaricInHpa), d, out)
	if err == nil {
		t.Fatal("expected an error: isobaric levels don't apply at Allocate")
	}
	mem := out.Handle().(*dict.InMemoryHandle)
	if len(mem.Snapshot()) != 0 {
		t.Errorf("out was mutated despite rejection: %v", mem.Snapshot())
	}
}
