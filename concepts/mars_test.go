package concepts

import (
	"testing"

	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

func TestMarsMatcherNoClassDisables(t *testing.T) {
	if got := marsMatcher(empty(), empty()); got != registry.MissingVariant {
		t.Errorf("marsMatcher(no class) = %d, want MissingVariant", got)
	}
}

func TestMarsMatcherRawVsHighLevel(t *testing.T) {
	mars := md(map[string]dict.Value{"class": dict.String("od")})
	if got := marsMatcher(mars, empty()); got != 0 {
		t.Errorf("marsMatcher(default) = %d, want 0 (highLevel)", got)
	}

	rawOpt := md(map[string]dict.Value{"rawMarsKeys": dict.Int(1)})
	if got := marsMatcher(mars, rawOpt); got != 1 {
		t.Errorf("marsMatcher(rawMarsKeys=1) = %d, want 1 (raw)", got)
	}
}

func TestMarsOpAllocateInitializesLocalUseSection(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	d := registry.Dicts{Mars: empty(), Geo: empty(), Par: empty(), Opt: empty()}
	if err := marsOp(registry.StageAllocate, registry.Section2, 0, d, out); err != nil {
		t.Fatalf("marsOp: %v", err)
	}
	if !out.Has("setLocalDefinition") {
		t.Error("Allocate should have initialized setLocalDefinition")
	}
}

func TestMarsOpPresetRequiresLocalUseSection(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	d := registry.Dicts{
		Mars: md(map[string]dict.Value{
			"class": dict.String("od"), "type": dict.String("fc"),
			"stream": dict.String("oper"), "expver": dict.String("0001"),
		}),
		Geo: empty(), Par: empty(), Opt: empty(),
	}
	if err := marsOp(registry.StagePreset, registry.Section2, 0, d, out); err == nil {
		t.Fatal("expected an error: Local Use Section not yet initialized")
	}
}

func TestMarsOpPresetHighLevelVsRaw(t *testing.T) {
	mars := md(map[string]dict.Value{
		"class": dict.String("od"), "type": dict.String("fc"),
		"stream": dict.String("oper"), "expver": dict.String("0001"),
	})
	d := registry.Dicts{Mars: mars, Geo: empty(), Par: empty(), Opt: empty()}

	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	if err := out.SetOrThrow("setLocalDefinition", dict.Int(1)); err != nil {
		t.Fatalf("seed setLocalDefinition: %v", err)
	}
	if err := marsOp(registry.StagePreset, registry.Section2, 0, d, out); err != nil {
		t.Fatalf("marsOp: %v", err)
	}
	class, err := out.GetString("class")
	if err != nil || class != "od" {
		t.Errorf("class = (%q, %v), want (od, nil)", class, err)
	}

	rawOut := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	if err := rawOut.SetOrThrow("setLocalDefinition", dict.Int(1)); err != nil {
		t.Fatalf("seed setLocalDefinition: %v", err)
	}
	if err := marsOp(registry.StagePreset, registry.Section2, 1, d, rawOut); err != nil {
		t.Fatalf("marsOp: %v", err)
	}
	marsClass, err := rawOut.GetString("marsClass")
	if err != nil || marsClass != "od" {
		t.Errorf("marsClass = (%q, %v), want (od, nil)", marsClass, err)
	}
	if rawOut.Has("class") {
		t.Error("raw variant should write marsClass, not class")
	}
}
