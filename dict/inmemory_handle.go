package dict

// InMemoryHandle is a pure-Go Handle implementation used by tests and by
// callers that run the encoder without a linked GRIB codec. It has no
// notion of templates or structural validity: every set succeeds, and
// Clone deep-copies the stored values, which is sufficient to exercise the
// "clone forces deferred writes to materialise" contract (spec §4.1) since
// this implementation never defers writes in the first place.
type InMemoryHandle struct {
	values map[string]Value
}

var _ Handle = (*InMemoryHandle)(nil)

// NewInMemoryHandle returns an empty handle, as if freshly allocated with
// no sample applied.
func NewInMemoryHandle() *InMemoryHandle {
	return &InMemoryHandle{values: make(map[string]Value)}
}

// InMemorySampler vends InMemoryHandle values seeded from named samples. A
// sample is just a set of pre-populated keys (e.g. the structural defaults
// a "GRIB2" template would carry); samples are registered by name so tests
// can define the handful the encoder actually reaches for (spec §6).
type InMemorySampler struct {
	samples map[string]map[string]Value
}

var _ Sampler = (*InMemorySampler)(nil)

func NewInMemorySampler() *InMemorySampler {
	return &InMemorySampler{samples: make(map[string]map[string]Value)}
}

// RegisterSample associates a sample name with its seed values.
func (s *InMemorySampler) RegisterSample(name string, seed map[string]Value) {
	s.samples[name] = seed
}

func (s *InMemorySampler) FromSample(name string) (Handle, error) {
	h := NewInMemoryHandle()
	for k, v := range s.samples[name] {
		h.values[k] = v
	}
	return h, nil
}

func (h *InMemoryHandle) Has(key string) bool {
	_, ok := h.values[key]
	return ok
}

func (h *InMemoryHandle) SetInt(key string, v int64) error      { h.values[key] = Int(v); return nil }
func (h *InMemoryHandle) SetFloat(key string, v float64) error  { h.values[key] = Float(v); return nil }
func (h *InMemoryHandle) SetString(key string, v string) error  { h.values[key] = String(v); return nil }
func (h *InMemoryHandle) SetIntVector(key string, v []int64) error {
	h.values[key] = IntVector(v)
	return nil
}
func (h *InMemoryHandle) SetFloatVector(key string, v []float64) error {
	h.values[key] = FloatVector(v)
	return nil
}
func (h *InMemoryHandle) SetMissing(key string) error {
	h.values[key] = Missing()
	return nil
}

func (h *InMemoryHandle) GetInt(key string) (int64, bool, error) {
	v, ok := h.values[key]
	if !ok {
		return 0, false, nil
	}
	i, ok := v.AsInt()
	return i, ok, nil
}

func (h *InMemoryHandle) GetFloat(key string) (float64, bool, error) {
	v, ok := h.values[key]
	if !ok {
		return 0, false, nil
	}
	f, ok := v.AsFloat()
	return f, ok, nil
}

func (h *InMemoryHandle) GetString(key string) (string, bool, error) {
	v, ok := h.values[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.AsString()
	return s, ok, nil
}

func (h *InMemoryHandle) GetIntVector(key string) ([]int64, bool, error) {
	v, ok := h.values[key]
	if !ok {
		return nil, false, nil
	}
	iv, ok := v.AsIntVector()
	return iv, ok, nil
}

func (h *InMemoryHandle) GetFloatVector(key string) ([]float64, bool, error) {
	v, ok := h.values[key]
	if !ok {
		return nil, false, nil
	}
	fv, ok := v.AsFloatVector()
	return fv, ok, nil
}

// Clone deep-copies the handle's current state into an independent handle.
func (h *InMemoryHandle) Clone() (Handle, error) {
	clone := NewInMemoryHandle()
	for k, v := range h.values {
		clone.values[k] = v
	}
	return clone, nil
}

// Snapshot returns the handle's current keys as a plain map, chiefly for
// test assertions and diffing (spec §8's "no spurious keys in out diff").
func (h *InMemoryHandle) Snapshot() map[string]Value {
	out := make(map[string]Value, len(h.values))
	for k, v := range h.values {
		out[k] = v
	}
	return out
}
