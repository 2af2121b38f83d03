package rules_test

import (
	"strings"
	"testing"

	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/rules"
)

const classMappingYAML = `
key: class
value-map:
  od:
    write:
      marsClass: od
  rd:
    write:
      marsClass: rd
default:
  fail: "unsupported class"
`

func TestParseAndExecuteMapping(t *testing.T) {
	action, err := rules.ParseBytes([]byte(classMappingYAML), "classMappingYAML")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	initial := dict.NewMapDict(map[string]dict.Value{"class": dict.String("od")})
	work := dict.NewMapDict(map[string]dict.Value{"class": dict.String("od")})
	out := dict.NewMapDict(nil)

	if _, err := rules.Execute(action, initial, work, out); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got, err := out.GetString("marsClass")
	if err != nil || got != "od" {
		t.Errorf("marsClass = (%q, %v), want (od, nil)", got, err)
	}
}

func TestParseAndExecuteMappingFallsThroughToDefaultFailure(t *testing.T) {
	action, err := rules.ParseBytes([]byte(classMappingYAML), "classMappingYAML")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	initial := dict.NewMapDict(map[string]dict.Value{"class": dict.String("xx")})
	work := dict.NewMapDict(map[string]dict.Value{"class": dict.String("xx")})
	out := dict.NewMapDict(nil)

	_, err = rules.Execute(action, initial, work, out)
	if err == nil {
		t.Fatal("expected an error: class xx is unmapped")
	}
	if !strings.Contains(err.Error(), "unsupported class") {
		t.Errorf("error = %v, want it to mention the fail reason", err)
	}
}

func TestParseRejectsUnknownKey(t *testing.T) {
	const badYAML = `
key: class
value-map:
  od:
    write:
      marsClass: od
bogus-key: true
`
	if _, err := rules.ParseBytes([]byte(badYAML), "badYAML"); err == nil {
		t.Fatal("expected a decode error for an unknown schema key")
	}
}

func TestParseRejectsMappingWithoutValueMap(t *testing.T) {
	const badYAML = `
key: class
`
	if _, err := rules.ParseBytes([]byte(badYAML), "badYAML"); err == nil {
		t.Fatal(`expected an error: "key" without "value-map"`)
	}
}

func TestParseRejectsEmptyNode(t *testing.T) {
	const badYAML = `
dict: work
`
	if _, err := rules.ParseBytes([]byte(badYAML), "badYAML"); err == nil {
		t.Fatal("expected an error: node has none of key/write*/fail")
	}
}
