// Package rules implements the YAML-declared rule engine of spec §4.6:
// a small tree-shaped language for mapping a MARS request's fields onto
// output keys before the concept registry runs. A rule document is parsed
// once into an immutable Action tree and thereafter evaluated against the
// per-encode initial/work/out dictionaries, producing a LogTrace that can
// reproduce exactly which branch was taken.
package rules

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// rawRule mirrors the closed YAML schema of spec §6 ("Rule files"): keys
// key, dict, value-map, default, null-is-default, not-found-is-default,
// write, write-out, write-work, fail. Any other key is a decode error —
// enforced by decoding with KnownFields(true), not by this struct alone.
type rawRule struct {
	Key               *string             `yaml:"key"`
	Dict              *string             `yaml:"dict"`
	ValueMap          map[string]rawRule  `yaml:"value-map"`
	Default           *rawRule            `yaml:"default"`
	NullIsDefault     *bool               `yaml:"null-is-default"`
	NotFoundIsDefault *bool               `yaml:"not-found-is-default"`
	Write             map[string]interface{} `yaml:"write"`
	WriteOut          map[string]interface{} `yaml:"write-out"`
	WriteWork         map[string]interface{} `yaml:"write-work"`
	Fail              *string             `yaml:"fail"`
}

// Parse reads one YAML rule document and compiles it into an Action tree.
// source is used only to annotate error messages (typically a file path).
func Parse(r io.Reader, source string) (Action, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw rawRule
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrapf(err, "rules: decode %s", source)
	}
	return build(&raw, source)
}

// ParseBytes is a convenience wrapper around Parse for in-memory documents.
func ParseBytes(data []byte, source string) (Action, error) {
	return Parse(bytes.NewReader(data), source)
}

func build(raw *rawRule, path string) (Action, error) {
	if raw.Key != nil {
		return buildMapping(raw, path)
	}
	if raw.Write != nil || raw.WriteOut != nil || raw.WriteWork != nil {
		return buildWrite(raw, path)
	}
	if raw.Fail != nil {
		return &failureAction{reason: *raw.Fail, path: path}, nil
	}
	return nil, errors.Errorf("rules: %s: node has none of key/write*/fail", path)
}

func buildMapping(raw *rawRule, path string) (Action, error) {
	if raw.ValueMap == nil {
		return nil, errors.Errorf(`rules: %s: node with "key" requires "value-map"`, path)
	}

	useInitial := raw.Dict != nil && *raw.Dict == "initial"
	nullIsDefault := true
	if raw.NullIsDefault != nil {
		nullIsDefault = *raw.NullIsDefault
	}
	notFoundIsDefault := true
	if raw.NotFoundIsDefault != nil {
		notFoundIsDefault = *raw.NotFoundIsDefault
	}

	var defaultAction Action
	if raw.Default != nil {
		a, err := build(raw.Default, path+".default")
		if err != nil {
			return nil, err
		}
		defaultAction = a
	}

	mapped := make(map[string]Action, len(raw.ValueMap))
	for val, sub := range raw.ValueMap {
		sub := sub
		a, err := build(&sub, path+".value-map["+val+"]")
		if err != nil {
			return nil, err
		}
		mapped[val] = a
	}

	return &mappingAction{
		useInitialDict:    useInitial,
		nullIsDefault:     nullIsDefault,
		notFoundIsDefault: notFoundIsDefault,
		lookupKey:         *raw.Key,
		defaultAction:     defaultAction,
		mappedActions:     mapped,
		path:              path,
	}, nil
}

func buildWrite(raw *rawRule, path string) (Action, error) {
	all, err := parseKeyValues(raw.Write, path+".write")
	if err != nil {
		return nil, err
	}
	out, err := parseKeyValues(raw.WriteOut, path+".write-out")
	if err != nil {
		return nil, err
	}
	work, err := parseKeyValues(raw.WriteWork, path+".write-work")
	if err != nil {
		return nil, err
	}
	return &writeAction{all: all, out: out, work: work, path: path}, nil
}
