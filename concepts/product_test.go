package concepts

import (
	"testing"

	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

func TestProductTemplateNumberDefaultsToZero(t *testing.T) {
	got, err := productTemplateNumber(empty())
	if err != nil || got != 0 {
		t.Errorf("productTemplateNumber(empty) = (%d, %v), want (0, nil)", got, err)
	}
}

func TestProductTemplateNumberKnownTemplateSelected(t *testing.T) {
	mars := md(map[string]dict.Value{"paramId": dict.Int(8)})
	got, err := productTemplateNumber(mars)
	if err != nil || got != 8 {
		t.Errorf("productTemplateNumber(paramId=8) = (%d, %v), want (8, nil)", got, err)
	}
}

func TestProductTemplateNumberUnknownParamIdFallsBackToZero(t *testing.T) {
	mars := md(map[string]dict.Value{"paramId": dict.Int(260367)})
	got, err := productTemplateNumber(mars)
	if err != nil || got != 0 {
		t.Errorf("productTemplateNumber(paramId=260367) = (%d, %v), want (0, nil)", got, err)
	}
}

func TestProductOpAllocateWritesTemplate(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	mars := md(map[string]dict.Value{"paramId": dict.Int(8)})
	d := registry.Dicts{Mars: mars, Geo: empty(), Par: empty(), Opt: empty()}
	if err := productOp(registry.StageAllocate, registry.Section4, 0, d, out); err != nil {
		t.Fatalf("productOp: %v", err)
	}
	got, err := out.GetInt("productDefinitionTemplateNumber")
	if err != nil || got != 8 {
		t.Errorf("productDefinitionTemplateNumber = (%d, %v), want (8, nil)", got, err)
	}
}

func TestProductOpPresetSkipsWithoutParam(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	d := registry.Dicts{Mars: empty(), Geo: empty(), Par: empty(), Opt: empty()}
	if err := productOp(registry.StagePreset, registry.Section4, 0, d, out); err != nil {
		t.Fatalf("productOp: %v", err)
	}
	if out.Has("paramId") {
		t.Error("paramId should not be written without mars[\"param\"]")
	}
}

func TestProductOpPresetWritesParamId(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	mars := md(map[string]dict.Value{"param": dict.Int(130)})
	d := registry.Dicts{Mars: mars, Geo: empty(), Par: empty(), Opt: empty()}
	if err := productOp(registry.StagePreset, registry.Section4, 0, d, out); err != nil {
		t.Fatalf("productOp: %v", err)
	}
	got, err := out.GetInt("paramId")
	if err != nil || got != 130 {
		t.Errorf("paramId = (%d, %v), want (130, nil)", got, err)
	}
}
