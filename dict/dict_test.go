package dict

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMapDictGetSet(t *testing.T) {
	d := NewMapDict(nil)
	require.NoError(t, d.SetOrThrow("paramId", Int(8)))

	v, ok := d.Get("paramId")
	require.True(t, ok)
	i, ok := v.AsInt()
	require.True(t, ok)
	require.Equal(t, int64(8), i)

	got, err := d.GetInt("paramId")
	require.NoError(t, err)
	require.Equal(t, int64(8), got)
}

func TestMapDictMissingKey(t *testing.T) {
	d := NewMapDict(nil)
	_, err := d.GetInt("nope")
	require.Error(t, err)
	var ek *ErrKind
	require.ErrorAs(t, err, &ek)
	require.Equal(t, KindMissing, ek.Got)
}

func TestMapDictTypeMismatch(t *testing.T) {
	d := NewMapDict(map[string]Value{"level": String("sol")})
	_, err := d.GetInt("level")
	require.Error(t, err)
	var ek *ErrKind
	require.ErrorAs(t, err, &ek)
	require.Equal(t, KindString, ek.Got)
}

func TestMapDictSetMissingSurvivesRoundTrip(t *testing.T) {
	d := NewMapDict(nil)
	require.NoError(t, d.SetMissing("level"))
	v, ok := d.Get("level")
	require.True(t, ok)
	require.True(t, v.IsMissing())
}

func TestHandleDictCloneIsIndependent(t *testing.T) {
	sampler := NewInMemorySampler()
	sampler.RegisterSample("GRIB2", map[string]Value{"edition": Int(2)})

	hd, err := FromSample(sampler, "GRIB2")
	require.NoError(t, err)
	require.NoError(t, hd.SetOrThrow("paramId", Int(8)))

	cloned, err := hd.Clone()
	require.NoError(t, err)
	require.NoError(t, cloned.SetOrThrow("level", Int(500)))

	// Source handle is unaffected by writes on the clone.
	require.False(t, hd.Has("level"))
	require.True(t, cloned.Has("level"))

	got, err := cloned.GetInt("paramId")
	require.NoError(t, err)
	require.Equal(t, int64(8), got)
}

func TestInMemoryHandleSnapshotDiff(t *testing.T) {
	h := NewInMemoryHandle()
	require.NoError(t, h.SetInt("productDefinitionTemplateNumber", 0))

	want := map[string]Value{"productDefinitionTemplateNumber": Int(0)}
	if diff := cmp.Diff(want, h.Snapshot(), cmp.AllowUnexported(Value{})); diff != "" {
		t.Fatalf("unexpected diff (-want +got):\n%s", diff)
	}
}
