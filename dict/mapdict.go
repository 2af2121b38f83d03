package dict

// MapDict is a pure in-memory dictionary backed by a Go map. It is used for
// the four read-only input dictionaries (mars, geo, par, opt) and for the
// mutable working dictionary the rule engine operates on (spec §4.1).
//
// SetMissing on a MapDict simply stores the missing sentinel; unlike the
// backend-adapter implementation it never needs to be "ignored".
type MapDict struct {
	values map[string]Value
}

var (
	_ Dict     = (*MapDict)(nil)
	_ Writable = (*MapDict)(nil)
)

// NewMapDict builds a MapDict from an initial set of key/value pairs. A nil
// or empty map produces an empty dictionary.
func NewMapDict(values map[string]Value) *MapDict {
	m := make(map[string]Value, len(values))
	for k, v := range values {
		m[k] = v
	}
	return &MapDict{values: m}
}

// Has reports whether key is present (even if its value is the missing
// sentinel — presence and missing-ness are distinct).
func (d *MapDict) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Get returns the raw Value for key.
func (d *MapDict) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *MapDict) GetInt(key string) (int64, error) {
	return GetOrThrow(d, key, Value.AsInt)
}

func (d *MapDict) GetFloat(key string) (float64, error) {
	return GetOrThrow(d, key, Value.AsFloat)
}

func (d *MapDict) GetString(key string) (string, error) {
	return GetOrThrow(d, key, Value.AsString)
}

func (d *MapDict) GetIntVector(key string) ([]int64, error) {
	return GetOrThrow(d, key, Value.AsIntVector)
}

func (d *MapDict) GetFloatVector(key string) ([]float64, error) {
	return GetOrThrow(d, key, Value.AsFloatVector)
}

// SetOrThrow writes key unconditionally; a MapDict never rejects a write
// (type mismatches are only meaningful for the backend-adapter dictionary).
func (d *MapDict) SetOrThrow(key string, v Value) error {
	d.values[key] = v
	return nil
}

// SetMissing marks key as explicitly present but missing.
func (d *MapDict) SetMissing(key string) error {
	d.values[key] = Missing()
	return nil
}

// Delete removes key entirely, as distinct from setting it missing. Used by
// the rule engine's "null-or-missing removes keys" semantics (spec §8,
// scenario 5).
func (d *MapDict) Delete(key string) {
	delete(d.values, key)
}

// Keys returns the set of keys currently present, in no particular order.
func (d *MapDict) Keys() []string {
	keys := make([]string, 0, len(d.values))
	for k := range d.values {
		keys = append(keys, k)
	}
	return keys
}

// Clone returns an independent copy of the dictionary. MapDict values are
// immutable once constructed, so this is a shallow copy of the map.
func (d *MapDict) Clone() *MapDict {
	return NewMapDict(d.values)
}

// Snapshot returns a read-only view suitable for use as the rule engine's
// "initial" dictionary (the pre-rule-engine state).
func (d *MapDict) Snapshot() Dict {
	return d.Clone()
}
