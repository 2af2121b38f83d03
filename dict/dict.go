// Package dict provides the uniform typed key/value dictionary abstraction
// that the mars2grib encoder uses for its input and output collections
// (mars, geo, par, opt, the working dictionary, and the GRIB output handle).
//
// Keys are short ASCII strings. Values are one of a small closed set of
// types: int64, float64, string, a "missing" sentinel, []int64 or
// []float64. Two implementations exist: MapDict (a plain in-memory map,
// used for mars/geo/par/opt and the working dictionary) and HandleDict (an
// adapter around a mutable GRIB handle backend, used for the output
// dictionary).
package dict

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies the dynamic type carried by a Value.
type Kind int

const (
	KindMissing Kind = iota
	KindInt
	KindFloat
	KindString
	KindIntVector
	KindFloatVector
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindIntVector:
		return "[]int"
	case KindFloatVector:
		return "[]float"
	default:
		return "unknown"
	}
}

// Value is the closed set of scalar/vector types a dictionary may hold.
// The zero Value is the "missing" sentinel.
type Value struct {
	kind   Kind
	i      int64
	f      float64
	s      string
	ivec   []int64
	fvec   []float64
}

// Missing returns the missing-value sentinel.
func Missing() Value { return Value{kind: KindMissing} }

func Int(v int64) Value      { return Value{kind: KindInt, i: v} }
func Float(v float64) Value  { return Value{kind: KindFloat, f: v} }
func String(v string) Value  { return Value{kind: KindString, s: v} }
func IntVector(v []int64) Value {
	return Value{kind: KindIntVector, ivec: append([]int64(nil), v...)}
}
func FloatVector(v []float64) Value {
	return Value{kind: KindFloatVector, fvec: append([]float64(nil), v...)}
}

// Kind reports the dynamic type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is the missing sentinel.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// AsInt returns the value as an int64, and whether the kind matched.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the value as a float64, and whether the kind matched.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// AsString returns the value as a string, and whether the kind matched.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsIntVector returns the value as an []int64, and whether the kind matched.
func (v Value) AsIntVector() ([]int64, bool) {
	if v.kind != KindIntVector {
		return nil, false
	}
	return v.ivec, true
}

// AsFloatVector returns the value as an []float64, and whether the kind matched.
func (v Value) AsFloatVector() ([]float64, bool) {
	if v.kind != KindFloatVector {
		return nil, false
	}
	return v.fvec, true
}

func (v Value) String() string {
	switch v.kind {
	case KindMissing:
		return "<missing>"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return v.s
	case KindIntVector:
		return fmt.Sprintf("%v", v.ivec)
	case KindFloatVector:
		return fmt.Sprintf("%v", v.fvec)
	default:
		return "<unknown>"
	}
}

// ErrKind is the typed dictionary error for a missing key or a type
// mismatch against the requested accessor, per spec §7 ("Dictionary
// error — missing key, wrong type, or backend rejection on set").
type ErrKind struct {
	Key      string
	Wanted   Kind
	Got      Kind
	Backend  bool // true if the backend rejected a Set, rather than a local type mismatch
	Message  string
}

func (e *ErrKind) Error() string {
	if e.Backend {
		return fmt.Sprintf("dict: backend rejected set of key %q (wanted %s): %s", e.Key, e.Wanted, e.Message)
	}
	if e.Got == KindMissing {
		return fmt.Sprintf("dict: key %q not present (wanted %s)", e.Key, e.Wanted)
	}
	return fmt.Sprintf("dict: key %q has type %s, wanted %s", e.Key, e.Got, e.Wanted)
}

// Dict is the uniform read accessor shared by every dictionary
// implementation (mars, geo, par, opt, working, and output).
type Dict interface {
	Has(key string) bool
	Get(key string) (Value, bool)
	GetInt(key string) (int64, error)
	GetFloat(key string) (float64, error)
	GetString(key string) (string, error)
	GetIntVector(key string) ([]int64, error)
	GetFloatVector(key string) ([]float64, error)
}

// GetOrThrow fetches key and converts it with conv, or returns a wrapped
// ErrKind when the key is missing or conv rejects its value.
func GetOrThrow[T any](d Dict, key string, conv func(Value) (T, bool)) (T, error) {
	var zero T
	v, ok := d.Get(key)
	if !ok {
		return zero, errors.WithStack(&ErrKind{Key: key, Got: KindMissing})
	}
	t, ok := conv(v)
	if !ok {
		return zero, errors.WithStack(&ErrKind{Key: key, Got: v.Kind()})
	}
	return t, nil
}

// Writable is implemented by dictionaries that accept writes: the
// per-encode working dictionary and the output dictionary adapter.
type Writable interface {
	Dict
	SetOrThrow(key string, v Value) error
	SetMissing(key string) error
}

// Cloner is implemented by the output dictionary: clone forces any
// deferred backend writes to materialise and returns an independent handle
// (spec §4.1).
type Cloner interface {
	Clone() (Writable, error)
}
