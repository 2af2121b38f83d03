package deduce

import (
	"testing"

	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/tables"
)

func TestResolveClassTypeStreamExpver(t *testing.T) {
	mars := dict.NewMapDict(map[string]dict.Value{
		"class":  dict.String("od"),
		"type":   dict.String("fc"),
		"stream": dict.String("oper"),
		"expver": dict.String("0001"),
	})
	par := dict.NewMapDict(nil)
	opt := dict.NewMapDict(nil)

	if got, err := ResolveClass(mars, par, opt); err != nil || got != "od" {
		t.Errorf("ResolveClass = (%q, %v), want (od, nil)", got, err)
	}
	if got, err := ResolveType(mars, par, opt); err != nil || got != "fc" {
		t.Errorf("ResolveType = (%q, %v), want (fc, nil)", got, err)
	}
	if got, err := ResolveStream(mars, par, opt); err != nil || got != "oper" {
		t.Errorf("ResolveStream = (%q, %v), want (oper, nil)", got, err)
	}
	if got, err := ResolveExpver(mars, par, opt); err != nil || got != "0001" {
		t.Errorf("ResolveExpver = (%q, %v), want (0001, nil)", got, err)
	}
}

func TestResolveClassMissingFails(t *testing.T) {
	if _, err := ResolveClass(dict.NewMapDict(nil), dict.NewMapDict(nil), dict.NewMapDict(nil)); err == nil {
		t.Fatal("expected an error when mars[\"class\"] is absent")
	}
}

func TestResolveParamId(t *testing.T) {
	mars := dict.NewMapDict(map[string]dict.Value{"param": dict.Int(130)})
	got, err := ResolveParamId(mars, dict.NewMapDict(nil), dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("ResolveParamId: %v", err)
	}
	if got != 130 {
		t.Errorf("ResolveParamId = %d, want 130", got)
	}
}

func TestResolvePeriodItMinMaxOptional(t *testing.T) {
	_, present, err := ResolvePeriodItMin(dict.NewMapDict(nil), dict.NewMapDict(nil), dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("ResolvePeriodItMin: %v", err)
	}
	if present {
		t.Error("expected present = false when iTmin is absent")
	}

	par := dict.NewMapDict(map[string]dict.Value{"iTmin": dict.Int(6)})
	v, present, err := ResolvePeriodItMin(dict.NewMapDict(nil), par, dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("ResolvePeriodItMin: %v", err)
	}
	if !present || v != 6 {
		t.Errorf("ResolvePeriodItMin = (%d, %v), want (6, true)", v, present)
	}
}

func TestResolveShapeOfTheEarthAlwaysSpherical(t *testing.T) {
	got, err := ResolveShapeOfTheEarth(dict.NewMapDict(nil), dict.NewMapDict(nil), dict.NewMapDict(nil), dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("ResolveShapeOfTheEarth: %v", err)
	}
	if got != tables.EarthSphericalRadius6371229 {
		t.Errorf("ResolveShapeOfTheEarth = %d, want %d", got, tables.EarthSphericalRadius6371229)
	}
}

func TestResolveAllowedReferenceValueKnownAndUnknownParam(t *testing.T) {
	known := dict.NewMapDict(map[string]dict.Value{"param": dict.Int(130)})
	got, err := ResolveAllowedReferenceValue(known, dict.NewMapDict(nil), dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("ResolveAllowedReferenceValue: %v", err)
	}
	if want := 0.5 * (140.0 + 400.0); got != want {
		t.Errorf("ResolveAllowedReferenceValue(130) = %v, want %v", got, want)
	}

	unknown := dict.NewMapDict(map[string]dict.Value{"param": dict.Int(999999)})
	got, err = ResolveAllowedReferenceValue(unknown, dict.NewMapDict(nil), dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("ResolveAllowedReferenceValue: %v", err)
	}
	if got != 0.0 {
		t.Errorf("ResolveAllowedReferenceValue(unknown) = %v, want 0.0", got)
	}
}
