package concepts

import (
	"testing"

	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

func TestGridTypeFromGeo(t *testing.T) {
	cases := []struct {
		name string
		mars *dict.MapDict
		geo  *dict.MapDict
		want GridType
	}{
		{"truncation", md(map[string]dict.Value{"truncation": dict.Int(639)}), empty(), GridSphericalHarmonics},
		{"nside", empty(), md(map[string]dict.Value{"nside": dict.Int(1024)}), GridHEALPix},
		{"pl", empty(), md(map[string]dict.Value{"pl": dict.IntVector([]int64{1, 2, 3})}), GridReducedGG},
		{"N", empty(), md(map[string]dict.Value{"N": dict.Int(640)}), GridRegularGG},
		{"none", empty(), empty(), GridRegularLL},
	}
	for _, c := range cases {
		if got := gridTypeFromGeo(c.mars, c.geo); got != c.want {
			t.Errorf("%s: gridTypeFromGeo = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestRepresentationOpAllocateRegularLL(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	d := registry.Dicts{Mars: empty(), Geo: empty(), Par: empty(), Opt: empty()}
	if err := representationOp(registry.StageAllocate, registry.Section3, 0, d, out); err != nil {
		t.Fatalf("representationOp: %v", err)
	}
	gdt, err := out.GetInt("gridDefinitionTemplateNumber")
	if err != nil || gdt != 0 {
		t.Errorf("gridDefinitionTemplateNumber = (%d, %v), want (0, nil)", gdt, err)
	}
}

func TestRepresentationOpPresetSkipsWhenGeoEmpty(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	d := registry.Dicts{Mars: empty(), Geo: empty(), Par: empty(), Opt: empty()}
	if err := representationOp(registry.StagePreset, registry.Section3, 0, d, out); err != nil {
		t.Fatalf("representationOp: %v", err)
	}
	mem := out.Handle().(*dict.InMemoryHandle)
	if len(mem.Snapshot()) != 0 {
		t.Errorf("expected no geometry keys with an empty geo dict, got %v", mem.Snapshot())
	}
}

func TestRepresentationOpPresetRegularLLWritesGeometry(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	geo := md(map[string]dict.Value{
		"Ni": dict.Int(360), "Nj": dict.Int(181),
		"latitudeOfFirstGridPointInDegrees":  dict.Float(90),
		"longitudeOfFirstGridPointInDegrees": dict.Float(0),
		"latitudeOfLastGridPointInDegrees":   dict.Float(-90),
		"longitudeOfLastGridPointInDegrees":  dict.Float(359),
		"iDirectionIncrementInDegrees":       dict.Float(1),
		"jDirectionIncrementInDegrees":       dict.Float(1),
	})
	d := registry.Dicts{Mars: empty(), Geo: geo, Par: empty(), Opt: empty()}
	if err := representationOp(registry.StagePreset, registry.Section3, 0, d, out); err != nil {
		t.Fatalf("representationOp: %v", err)
	}
	ni, err := out.GetInt("Ni")
	if err != nil || ni != 360 {
		t.Errorf("Ni = (%d, %v), want (360, nil)", ni, err)
	}
}

func TestRepresentationOpSection5DefaultsSimplePacking(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	d := registry.Dicts{Mars: empty(), Geo: empty(), Par: empty(), Opt: empty()}
	if err := representationOp(registry.StageAllocate, registry.Section5, 0, d, out); err != nil {
		t.Fatalf("representationOp: %v", err)
	}
	drt, err := out.GetInt("dataRepresentationTemplateNumber")
	if err != nil || drt != 0 {
		t.Errorf("dataRepresentationTemplateNumber = (%d, %v), want (0, nil)", drt, err)
	}
}

func TestRepresentationOpSection5SkipsForSphericalHarmonics(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	mars := md(map[string]dict.Value{"truncation": dict.Int(639)})
	d := registry.Dicts{Mars: mars, Geo: empty(), Par: empty(), Opt: empty()}
	if err := representationOp(registry.StageAllocate, registry.Section3, 0, d, out); err != nil {
		t.Fatalf("representationOp section3: %v", err)
	}
	if err := representationOp(registry.StageAllocate, registry.Section5, 0, d, out); err != nil {
		t.Fatalf("representationOp section5: %v", err)
	}
	drt, err := out.GetInt("dataRepresentationTemplateNumber")
	if err != nil || drt != 51 {
		t.Errorf("dataRepresentationTemplateNumber = (%d, %v), want (51, nil) from the Section 3 placeholder", drt, err)
	}
}
