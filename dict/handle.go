package dict

// Handle is the contract the encoder requires from a GRIB backend (ecCodes
// in the original system): an opaque mutable key/value store supporting
// set/get of scalars and vectors, cloning, and sample-based construction
// (spec §1, "GRIB handle backend" and §4.1).
//
// The encoder core never assumes anything about Handle beyond this
// interface; a production backend wraps a C library handle, while
// InMemoryHandle (below) is a pure-Go implementation used for tests and for
// callers that don't link a real GRIB codec.
type Handle interface {
	// SetInt writes an integer-valued key. An error return signals the
	// backend rejected the write (wrong template state, unknown key, …).
	SetInt(key string, v int64) error
	SetFloat(key string, v float64) error
	SetString(key string, v string) error
	SetIntVector(key string, v []int64) error
	SetFloatVector(key string, v []float64) error
	SetMissing(key string) error

	// GetInt and friends read back a previously-set (or sample-seeded)
	// value. ok is false if the key has never been written.
	GetInt(key string) (int64, bool, error)
	GetFloat(key string) (float64, bool, error)
	GetString(key string) (string, bool, error)
	GetIntVector(key string) ([]int64, bool, error)
	GetFloatVector(key string) ([]float64, bool, error)
	Has(key string) bool

	// Clone produces an independent handle with all pending writes
	// materialised; the source handle remains valid and unaffected.
	Clone() (Handle, error)
}

// Sampler constructs a fresh Handle seeded from a named GRIB template (e.g.
// "GRIB2"), per spec §4.1's from_sample contract and §6's required sample
// corpus.
type Sampler interface {
	FromSample(name string) (Handle, error)
}
