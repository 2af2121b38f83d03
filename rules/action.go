package rules

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
)

// Action is one compiled node of a rule tree: a mapping dispatch, a write,
// or an immediate failure (spec §4.6).
type Action interface {
	apply(trace *LogTrace, initial dict.Dict, work dict.Writable, out dict.Writable) error
}

type keyValue struct {
	key   string
	value dict.Value
}

func parseKeyValues(raw map[string]interface{}, path string) ([]keyValue, error) {
	if raw == nil {
		return nil, nil
	}
	pairs := make([]keyValue, 0, len(raw))
	for k, v := range raw {
		val, err := scalarToValue(v)
		if err != nil {
			return nil, errors.Wrapf(err, "rules: %s: key %q", path, k)
		}
		pairs = append(pairs, keyValue{key: k, value: val})
	}
	return pairs, nil
}

// scalarToValue narrows a YAML-decoded interface{} to the narrowest
// dict.Value representation (spec §4.6: "type inference picks the
// narrowest representation").
func scalarToValue(v interface{}) (dict.Value, error) {
	switch t := v.(type) {
	case int:
		return dict.Int(int64(t)), nil
	case int64:
		return dict.Int(t), nil
	case uint64:
		return dict.Int(int64(t)), nil
	case float64:
		return dict.Float(t), nil
	case string:
		return dict.String(t), nil
	default:
		return dict.Value{}, errors.Errorf("unsupported scalar type %T; only integers, doubles, and strings may be written", v)
	}
}

// ---- mapping ----

type mappingAction struct {
	useInitialDict    bool
	nullIsDefault     bool
	notFoundIsDefault bool
	lookupKey         string
	defaultAction     Action // nil if absent
	mappedActions     map[string]Action
	path              string
}

func (a *mappingAction) apply(trace *LogTrace, initial dict.Dict, work dict.Writable, out dict.Writable) error {
	source := "work"
	src := dict.Dict(work)
	if a.useInitialDict {
		source = "initial"
		src = initial
	}

	v, ok := src.Get(a.lookupKey)
	if !ok {
		if a.notFoundIsDefault && a.defaultAction != nil {
			trace.record(fmt.Sprintf("%s: key %q not found in %s dict, taking default", a.path, a.lookupKey, source))
			return a.defaultAction.apply(trace, initial, work, out)
		}
		trace.record(fmt.Sprintf("%s: key %q not found in %s dict", a.path, a.lookupKey, source))
		return errors.Errorf("rules: key %q is not available in %s dictionary", a.lookupKey, source)
	}

	if v.IsMissing() {
		if !a.nullIsDefault {
			trace.record(fmt.Sprintf("%s: key %q is null and null-is-default is false", a.path, a.lookupKey))
			return errors.Errorf("rules: value for key %q is null and cannot be mapped", a.lookupKey)
		}
		if a.defaultAction == nil {
			trace.record(fmt.Sprintf("%s: key %q is null but no default action is given", a.path, a.lookupKey))
			return errors.Errorf("rules: value for key %q is null but no default action is given", a.lookupKey)
		}
		trace.record(fmt.Sprintf("%s: key %q is null, taking default", a.path, a.lookupKey))
		return a.defaultAction.apply(trace, initial, work, out)
	}

	valStr := v.String()
	trace.record(fmt.Sprintf("%s: {%s: %s}", a.path, a.lookupKey, valStr))

	next, ok := a.mappedActions[valStr]
	if !ok {
		if a.defaultAction == nil {
			return errors.Errorf("rules: value %q for key %q is not mapped and no default action is given", valStr, a.lookupKey)
		}
		trace.record(fmt.Sprintf("%s: value %q unmapped, taking default", a.path, valStr))
		return a.defaultAction.apply(trace, initial, work, out)
	}
	return next.apply(trace, initial, work, out)
}

// ---- failure ----

type failureAction struct {
	reason string
	path   string
}

func (a *failureAction) apply(trace *LogTrace, initial dict.Dict, work dict.Writable, out dict.Writable) error {
	trace.record(fmt.Sprintf("%s: fail: %s", a.path, a.reason))
	return errors.New(a.reason)
}

// ---- write ----

type writeAction struct {
	all, out, work []keyValue
	path           string
}

func (a *writeAction) apply(trace *LogTrace, initial dict.Dict, work dict.Writable, out dict.Writable) error {
	trace.record(a.path + ": write")
	if err := writeInto(a.all, work); err != nil {
		return err
	}
	if err := writeInto(a.all, out); err != nil {
		return err
	}
	if err := writeInto(a.out, out); err != nil {
		return err
	}
	if err := writeInto(a.work, work); err != nil {
		return err
	}
	return nil
}

func writeInto(pairs []keyValue, dest dict.Writable) error {
	for _, kv := range pairs {
		if err := dest.SetOrThrow(kv.key, kv.value); err != nil {
			return errors.Wrapf(err, "rules: writing key %q", kv.key)
		}
	}
	return nil
}
