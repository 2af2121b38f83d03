package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wxmet/mars2grib/dict"
)

func boolOnlySection4(stage Stage, section Section, variant int) bool {
	return section == Section4 && stage != StageAllocate
}

func TestDispatchInvokesApplicableCellsOnly(t *testing.T) {
	var calls []string
	desc := Descriptor{
		Name:        "demo",
		NumVariants: 1,
		VariantName: func(int) string { return "Only" },
		Applies:     boolOnlySection4,
		Op: func(stage Stage, section Section, variant int, d Dicts, out dict.Writable) error {
			calls = append(calls, stage.String()+"/"+section.String())
			return out.SetOrThrow("touched", dict.Int(1))
		},
		Matcher: func(mars, opt dict.Dict) int { return 0 },
	}

	r, err := NewRegistry(desc)
	require.NoError(t, err)

	d := Dicts{Mars: dict.NewMapDict(nil), Geo: dict.NewMapDict(nil), Par: dict.NewMapDict(nil), Opt: dict.NewMapDict(nil)}
	variants := r.ActiveVariants(d)

	out := dict.NewMapDict(nil)
	for s := Stage(0); s < NumStages; s++ {
		for k := Section(0); k < NumSections; k++ {
			require.NoError(t, r.Dispatch(s, k, d, variants, out))
		}
	}

	require.Equal(t, []string{"Preset/ProductDefinition", "Runtime/ProductDefinition"}, calls)
}

func TestMatcherMissingDisablesConcept(t *testing.T) {
	desc := Descriptor{
		Name:        "demo",
		NumVariants: 1,
		VariantName: func(int) string { return "Only" },
		Applies:     func(Stage, Section, int) bool { return true },
		Op: func(stage Stage, section Section, variant int, d Dicts, out dict.Writable) error {
			return out.SetOrThrow("touched", dict.Int(1))
		},
		Matcher: func(mars, opt dict.Dict) int { return MissingVariant },
	}

	r, err := NewRegistry(desc)
	require.NoError(t, err)

	d := Dicts{Mars: dict.NewMapDict(nil), Geo: dict.NewMapDict(nil), Par: dict.NewMapDict(nil), Opt: dict.NewMapDict(nil)}
	variants := r.ActiveVariants(d)

	out := dict.NewMapDict(nil)
	require.NoError(t, r.Dispatch(StagePreset, Section4, d, variants, out))
	require.False(t, out.Has("touched"))
}

func TestCallApplicableRejectsOutsideDomainWithoutTouchingOut(t *testing.T) {
	desc := Descriptor{
		Name:        "demo",
		NumVariants: 1,
		VariantName: func(int) string { return "Only" },
		Applies:     boolOnlySection4,
		Op: func(stage Stage, section Section, variant int, d Dicts, out dict.Writable) error {
			return out.SetOrThrow("touched", dict.Int(1))
		},
		Matcher: func(mars, opt dict.Dict) int { return 0 },
	}

	d := Dicts{Mars: dict.NewMapDict(nil), Geo: dict.NewMapDict(nil), Par: dict.NewMapDict(nil), Opt: dict.NewMapDict(nil)}
	out := dict.NewMapDict(nil)

	err := CallApplicable(desc, StageAllocate, Section4, 0, d, out)
	require.Error(t, err)
	var ce *ConceptError
	require.ErrorAs(t, err, &ce)
	require.False(t, out.Has("touched"))
}

func TestDuplicateConceptNameRejected(t *testing.T) {
	desc := Descriptor{
		Name:        "demo",
		NumVariants: 1,
		VariantName: func(int) string { return "Only" },
		Applies:     func(Stage, Section, int) bool { return false },
		Op:          func(Stage, Section, int, Dicts, dict.Writable) error { return nil },
		Matcher:     func(mars, opt dict.Dict) int { return 0 },
	}
	_, err := NewRegistry(desc, desc)
	require.Error(t, err)
}
