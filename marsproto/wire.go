package marsproto

import (
	"encoding/binary"
	"io"
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
)

// Wire framing is length-prefixed big-endian, matching the original
// eckit::Stream convention of a fixed-width count followed by that many
// bytes (ClientTask.cc's `s << request_`/`s << host_` calls).

func writeUint64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return errors.WithStack(err)
}

func readUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func writeInt32(w io.Writer, v int32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	_, err := w.Write(b[:])
	return errors.WithStack(err)
}

func readInt32(r io.Reader) (int32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, errors.WithStack(err)
	}
	return int32(binary.BigEndian.Uint32(b[:])), nil
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return errors.WithStack(err)
}

func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, errors.WithStack(err)
	}
	return b[0], nil
}

func writeString(w io.Writer, s string) error {
	if err := writeInt32(w, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return errors.WithStack(err)
}

func readString(r io.Reader) (string, error) {
	n, err := readInt32(r)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", errors.Errorf("marsproto: negative string length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", errors.WithStack(err)
	}
	return string(buf), nil
}

// writeDict serialises a dict.Dict as a count followed by key/scalar pairs.
// Only scalar kinds (int, float, string) are transmitted: the vector kinds
// never appear in a MARS request or environment (spec §4.7's descriptor is
// request/environment/host/port/nonce/data-handle, none of which carry
// gridded data).
func writeDict(w io.Writer, d dict.Dict) error {
	md, ok := d.(*dict.MapDict)
	if !ok {
		return errors.Errorf("marsproto: writeDict: unsupported dictionary implementation %T", d)
	}
	keys := md.Keys()
	sort.Strings(keys)

	if err := writeInt32(w, int32(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		v, _ := md.Get(k)
		if err := writeString(w, k); err != nil {
			return err
		}
		if err := writeValue(w, v); err != nil {
			return err
		}
	}
	return nil
}

func readDict(r io.Reader) (*dict.MapDict, error) {
	n, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	values := make(map[string]dict.Value, n)
	for i := int32(0); i < n; i++ {
		k, err := readString(r)
		if err != nil {
			return nil, err
		}
		v, err := readValue(r)
		if err != nil {
			return nil, err
		}
		values[k] = v
	}
	return dict.NewMapDict(values), nil
}

const (
	wireKindInt byte = iota
	wireKindFloat
	wireKindString
	wireKindMissing
)

func writeValue(w io.Writer, v dict.Value) error {
	switch v.Kind() {
	case dict.KindInt:
		n, _ := v.AsInt()
		if err := writeByte(w, wireKindInt); err != nil {
			return err
		}
		return writeUint64(w, uint64(n))
	case dict.KindFloat:
		f, _ := v.AsFloat()
		if err := writeByte(w, wireKindFloat); err != nil {
			return err
		}
		return writeUint64(w, math.Float64bits(f))
	case dict.KindString:
		s, _ := v.AsString()
		if err := writeByte(w, wireKindString); err != nil {
			return err
		}
		return writeString(w, s)
	default:
		return writeByte(w, wireKindMissing)
	}
}

func readValue(r io.Reader) (dict.Value, error) {
	kind, err := readByte(r)
	if err != nil {
		return dict.Value{}, err
	}
	switch kind {
	case wireKindInt:
		n, err := readUint64(r)
		if err != nil {
			return dict.Value{}, err
		}
		return dict.Int(int64(n)), nil
	case wireKindFloat:
		bits, err := readUint64(r)
		if err != nil {
			return dict.Value{}, err
		}
		return dict.Float(math.Float64frombits(bits)), nil
	case wireKindString:
		s, err := readString(r)
		if err != nil {
			return dict.Value{}, err
		}
		return dict.String(s), nil
	case wireKindMissing:
		return dict.Missing(), nil
	default:
		return dict.Value{}, errors.Errorf("marsproto: unknown wire value kind %d", kind)
	}
}
