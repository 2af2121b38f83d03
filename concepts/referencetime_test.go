package concepts

import (
	"testing"

	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

func TestReferenceTimeMatcherNoDateDisables(t *testing.T) {
	if got := referenceTimeMatcher(empty(), empty()); got != registry.MissingVariant {
		t.Errorf("referenceTimeMatcher(no date) = %d, want MissingVariant", got)
	}
}

func TestReferenceTimeMatcherStandardVsReforecast(t *testing.T) {
	mars := md(map[string]dict.Value{"date": dict.Int(20260731)})
	if got := referenceTimeMatcher(mars, empty()); got != int(ReferenceTimeStandard) {
		t.Errorf("referenceTimeMatcher(date only) = %d, want standard", got)
	}

	reforecast := md(map[string]dict.Value{"date": dict.Int(20260731), "hdate": dict.Int(20250731)})
	if got := referenceTimeMatcher(reforecast, empty()); got != int(ReferenceTimeReforecast) {
		t.Errorf("referenceTimeMatcher(date+hdate) = %d, want reforecast", got)
	}
}

func TestReferenceTimeOpSection1WritesDateTime(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	mars := md(map[string]dict.Value{"date": dict.Int(20260731), "time": dict.Int(123045)})
	d := registry.Dicts{Mars: mars, Geo: empty(), Par: empty(), Opt: empty()}
	if err := referenceTimeOp(registry.StagePreset, registry.Section1, int(ReferenceTimeStandard), d, out); err != nil {
		t.Fatalf("referenceTimeOp: %v", err)
	}
	year, err := out.GetInt("year")
	if err != nil || year != 2026 {
		t.Errorf("year = (%d, %v), want (2026, nil)", year, err)
	}
	hour, err := out.GetInt("hour")
	if err != nil || hour != 12 {
		t.Errorf("hour = (%d, %v), want (12, nil)", hour, err)
	}
	second, err := out.GetInt("second")
	if err != nil || second != 45 {
		t.Errorf("second = (%d, %v), want (45, nil)", second, err)
	}
}

func TestReferenceTimeOpSection4RequiresReforecastPDT(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	if err := out.SetOrThrow("productDefinitionTemplateNumber", dict.Int(0)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	mars := md(map[string]dict.Value{
		"date": dict.Int(20260731), "hdate": dict.Int(20250731), "htime": dict.Int(0),
	})
	d := registry.Dicts{Mars: mars, Geo: empty(), Par: empty(), Opt: empty()}
	if err := referenceTimeOp(registry.StagePreset, registry.Section4, int(ReferenceTimeReforecast), d, out); err == nil {
		t.Fatal("expected an error: productDefinitionTemplateNumber not in {60,61}")
	}
}

func TestReferenceTimeOpSection4WritesModelVersionDate(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	if err := out.SetOrThrow("productDefinitionTemplateNumber", dict.Int(60)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	mars := md(map[string]dict.Value{
		"date": dict.Int(20260731), "hdate": dict.Int(20250731), "htime": dict.Int(1800),
	})
	d := registry.Dicts{Mars: mars, Geo: empty(), Par: empty(), Opt: empty()}
	if err := referenceTimeOp(registry.StagePreset, registry.Section4, int(ReferenceTimeReforecast), d, out); err != nil {
		t.Fatalf("referenceTimeOp: %v", err)
	}
	year, err := out.GetInt("yearOfModelVersion")
	if err != nil || year != 2025 {
		t.Errorf("yearOfModelVersion = (%d, %v), want (2025, nil)", year, err)
	}
	hour, err := out.GetInt("hourOfModelVersion")
	if err != nil || hour != 0 {
		t.Errorf("hourOfModelVersion = (%d, %v), want (0, nil)", hour, err)
	}
}

func TestReferenceTimeOpOutsideApplicabilityDomainRejectsWithoutTouchingOut(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	mars := md(map[string]dict.Value{"date": dict.Int(20260731)})
	d := registry.Dicts{Mars: mars, Geo: empty(), Par: empty(), Opt: empty()}
	if err := registry.CallApplicable(ReferenceTimeDescriptor, registry.StageAllocate, registry.Section1, int(ReferenceTimeStandard), d, out); err == nil {
		t.Fatal("expected an error: referenceTime has no Allocate-stage behavior")
	}
	mem := out.Handle().(*dict.InMemoryHandle)
	if len(mem.Snapshot()) != 0 {
		t.Errorf("out should remain untouched, got %v", mem.Snapshot())
	}
}

func TestDateTimeOverlayOverridesDateAndTime(t *testing.T) {
	base := md(map[string]dict.Value{"date": dict.Int(1), "param": dict.Int(130)})
	overlay := stubMarsWithDateTime(base, 20250731, 1800)

	date, err := overlay.GetInt("date")
	if err != nil || date != 20250731 {
		t.Errorf("overlay date = (%d, %v), want (20250731, nil)", date, err)
	}
	clock, err := overlay.GetInt("time")
	if err != nil || clock != 1800 {
		t.Errorf("overlay time = (%d, %v), want (1800, nil)", clock, err)
	}
	param, err := overlay.GetInt("param")
	if err != nil || param != 130 {
		t.Errorf("overlay param (delegated) = (%d, %v), want (130, nil)", param, err)
	}
	if !overlay.Has("date") || !overlay.Has("param") {
		t.Error("overlay should report both overridden and delegated keys as present")
	}
}
