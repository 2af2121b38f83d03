package encoder

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
)

// Error is the top-level encode failure of spec §7: it carries the
// JSON-serialised snapshot of the four input dictionaries and the encoder
// configuration alongside the underlying cause, so a caller can reproduce
// the failing encode from the log line alone.
type Error struct {
	Mars, Geo, Par, Opt json.RawMessage
	Cause               error
}

func (e *Error) Error() string {
	return "encode failed: " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(mars, geo, par, opt dict.Dict, cause error) error {
	return &Error{
		Mars:  dumpDict(mars),
		Geo:   dumpDict(geo),
		Par:   dumpDict(par),
		Opt:   dumpDict(opt),
		Cause: cause,
	}
}

// dumpDict best-effort serialises a dictionary's keys to JSON for error
// diagnostics. Dictionaries that don't expose key enumeration (the
// backend-adapter output dictionary) are reported by kind only; only the
// four read-only input dictionaries are ever passed here, and in practice
// these are always *dict.MapDict.
func dumpDict(d dict.Dict) json.RawMessage {
	md, ok := d.(*dict.MapDict)
	if !ok {
		raw, _ := json.Marshal(map[string]string{"kind": "unknown dictionary implementation"})
		return raw
	}
	snapshot := make(map[string]interface{}, len(md.Keys()))
	for _, k := range md.Keys() {
		v, _ := md.Get(k)
		switch v.Kind() {
		case dict.KindInt:
			n, _ := v.AsInt()
			snapshot[k] = n
		case dict.KindFloat:
			f, _ := v.AsFloat()
			snapshot[k] = f
		case dict.KindString:
			s, _ := v.AsString()
			snapshot[k] = s
		case dict.KindIntVector:
			iv, _ := v.AsIntVector()
			snapshot[k] = iv
		case dict.KindFloatVector:
			fv, _ := v.AsFloatVector()
			snapshot[k] = fv
		default:
			snapshot[k] = nil
		}
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return json.RawMessage(`{"error":"failed to serialise dictionary"}`)
	}
	return raw
}

var errNilRegistry = errors.New("encoder: nil registry")
