package dict

import "github.com/pkg/errors"

// HandleDict adapts a Handle backend to the Dict/Writable/Cloner
// interfaces. It is the output dictionary implementation (spec §4.1): all
// type mismatches are translated into a uniform ErrKind rather than
// guessed at — the adapter never attempts coercion (e.g. reading an int
// key as a float silently).
type HandleDict struct {
	handle  Handle
	sampler Sampler
}

var (
	_ Dict     = (*HandleDict)(nil)
	_ Writable = (*HandleDict)(nil)
	_ Cloner   = (*HandleDict)(nil)
)

// NewHandleDict wraps an existing handle. sampler may be nil if Clone's
// caller never needs FromSample again (Clone itself only needs
// handle.Clone, not the sampler).
func NewHandleDict(h Handle, sampler Sampler) *HandleDict {
	return &HandleDict{handle: h, sampler: sampler}
}

// FromSample constructs a new output dictionary seeded from a named GRIB
// template, per spec §4.1/§6.
func FromSample(sampler Sampler, name string) (*HandleDict, error) {
	h, err := sampler.FromSample(name)
	if err != nil {
		return nil, errors.Wrapf(err, "dict: from_sample %q", name)
	}
	return NewHandleDict(h, sampler), nil
}

func (d *HandleDict) Has(key string) bool { return d.handle.Has(key) }

func (d *HandleDict) Get(key string) (Value, bool) {
	if v, ok, _ := d.handle.GetInt(key); ok {
		return Int(v), true
	}
	if v, ok, _ := d.handle.GetFloat(key); ok {
		return Float(v), true
	}
	if v, ok, _ := d.handle.GetString(key); ok {
		return String(v), true
	}
	if v, ok, _ := d.handle.GetIntVector(key); ok {
		return IntVector(v), true
	}
	if v, ok, _ := d.handle.GetFloatVector(key); ok {
		return FloatVector(v), true
	}
	return Value{}, false
}

func (d *HandleDict) GetInt(key string) (int64, error) {
	v, ok, err := d.handle.GetInt(key)
	if err != nil {
		return 0, errors.WithStack(&ErrKind{Key: key, Wanted: KindInt, Backend: true, Message: err.Error()})
	}
	if !ok {
		return 0, errors.WithStack(&ErrKind{Key: key, Wanted: KindInt, Got: d.probeKind(key)})
	}
	return v, nil
}

func (d *HandleDict) GetFloat(key string) (float64, error) {
	v, ok, err := d.handle.GetFloat(key)
	if err != nil {
		return 0, errors.WithStack(&ErrKind{Key: key, Wanted: KindFloat, Backend: true, Message: err.Error()})
	}
	if !ok {
		return 0, errors.WithStack(&ErrKind{Key: key, Wanted: KindFloat, Got: d.probeKind(key)})
	}
	return v, nil
}

func (d *HandleDict) GetString(key string) (string, error) {
	v, ok, err := d.handle.GetString(key)
	if err != nil {
		return "", errors.WithStack(&ErrKind{Key: key, Wanted: KindString, Backend: true, Message: err.Error()})
	}
	if !ok {
		return "", errors.WithStack(&ErrKind{Key: key, Wanted: KindString, Got: d.probeKind(key)})
	}
	return v, nil
}

func (d *HandleDict) GetIntVector(key string) ([]int64, error) {
	v, ok, err := d.handle.GetIntVector(key)
	if err != nil {
		return nil, errors.WithStack(&ErrKind{Key: key, Wanted: KindIntVector, Backend: true, Message: err.Error()})
	}
	if !ok {
		return nil, errors.WithStack(&ErrKind{Key: key, Wanted: KindIntVector, Got: d.probeKind(key)})
	}
	return v, nil
}

func (d *HandleDict) GetFloatVector(key string) ([]float64, error) {
	v, ok, err := d.handle.GetFloatVector(key)
	if err != nil {
		return nil, errors.WithStack(&ErrKind{Key: key, Wanted: KindFloatVector, Backend: true, Message: err.Error()})
	}
	if !ok {
		return nil, errors.WithStack(&ErrKind{Key: key, Wanted: KindFloatVector, Got: d.probeKind(key)})
	}
	return v, nil
}

// probeKind best-efforts a Kind for an error message without guessing a
// coercion: it just checks presence under the other accessor kinds.
func (d *HandleDict) probeKind(key string) Kind {
	if v, ok := d.Get(key); ok {
		return v.Kind()
	}
	return KindMissing
}

// SetOrThrow writes v to the backend, wrapping any backend rejection in
// ErrKind.
func (d *HandleDict) SetOrThrow(key string, v Value) error {
	var err error
	switch v.Kind() {
	case KindInt:
		i, _ := v.AsInt()
		err = d.handle.SetInt(key, i)
	case KindFloat:
		f, _ := v.AsFloat()
		err = d.handle.SetFloat(key, f)
	case KindString:
		s, _ := v.AsString()
		err = d.handle.SetString(key, s)
	case KindIntVector:
		iv, _ := v.AsIntVector()
		err = d.handle.SetIntVector(key, iv)
	case KindFloatVector:
		fv, _ := v.AsFloatVector()
		err = d.handle.SetFloatVector(key, fv)
	case KindMissing:
		err = d.handle.SetMissing(key)
	}
	if err != nil {
		return errors.WithStack(&ErrKind{Key: key, Wanted: v.Kind(), Backend: true, Message: err.Error()})
	}
	return nil
}

// SetMissing marks key as explicitly missing in the backend.
func (d *HandleDict) SetMissing(key string) error {
	if err := d.handle.SetMissing(key); err != nil {
		return errors.WithStack(&ErrKind{Key: key, Backend: true, Message: err.Error()})
	}
	return nil
}

// Clone produces an independent output dictionary, forcing any deferred
// backend writes to materialise (spec §4.1, §5's stage-boundary "total
// flush").
func (d *HandleDict) Clone() (Writable, error) {
	cloned, err := d.handle.Clone()
	if err != nil {
		return nil, errors.Wrap(err, "dict: clone")
	}
	return NewHandleDict(cloned, d.sampler), nil
}

// Handle exposes the underlying backend handle for callers that need to
// serialise the final output (outside the encoder core's concern, spec §1).
func (d *HandleDict) Handle() Handle { return d.handle }
