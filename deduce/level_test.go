package deduce

import (
	"testing"

	"github.com/wxmet/mars2grib/dict"
)

func TestResolveLevel(t *testing.T) {
	mars := dict.NewMapDict(map[string]dict.Value{"level": dict.Int(850)})
	got, err := ResolveLevel(mars, dict.NewMapDict(nil), dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("ResolveLevel: %v", err)
	}
	if got != 850 {
		t.Errorf("ResolveLevel = %d, want 850", got)
	}
}

func TestResolveLevelMissingFails(t *testing.T) {
	if _, err := ResolveLevel(dict.NewMapDict(nil), dict.NewMapDict(nil), dict.NewMapDict(nil)); err == nil {
		t.Fatal("expected an error when mars[\"level\"] is absent")
	}
}
