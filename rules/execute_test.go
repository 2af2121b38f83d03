package rules_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/rules"
)

const nullDefaultYAML = `
key: stream
null-is-default: true
value-map:
  oper:
    write-out:
      streamCode: 1
default:
  write-out:
    streamCode: 0
`

func TestExecuteNullIsDefaultDispatchesToDefault(t *testing.T) {
	action, err := rules.ParseBytes([]byte(nullDefaultYAML), "nullDefaultYAML")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	initial := dict.NewMapDict(nil)
	work := dict.NewMapDict(map[string]dict.Value{"stream": dict.Missing()})
	out := dict.NewMapDict(nil)

	if _, err := rules.Execute(action, initial, work, out); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got, err := out.GetInt("streamCode")
	if err != nil || got != 0 {
		t.Errorf("streamCode = (%d, %v), want (0, nil)", got, err)
	}
}

const notFoundYAML = `
key: stream
not-found-is-default: false
value-map:
  oper:
    write-out:
      streamCode: 1
default:
  fail: "unreachable"
`

func TestExecuteNotFoundIsDefaultFalseFailsOnMissingKey(t *testing.T) {
	action, err := rules.ParseBytes([]byte(notFoundYAML), "notFoundYAML")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	initial := dict.NewMapDict(nil)
	work := dict.NewMapDict(nil)
	out := dict.NewMapDict(nil)

	if _, err := rules.Execute(action, initial, work, out); err == nil {
		t.Fatal("expected an error: stream is absent and not-found-is-default is false")
	}
}

const writeAllYAML = `
key: class
value-map:
  od:
    write:
      expverCode: 1
`

func TestExecuteWriteSetsBothWorkAndOut(t *testing.T) {
	action, err := rules.ParseBytes([]byte(writeAllYAML), "writeAllYAML")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	initial := dict.NewMapDict(map[string]dict.Value{"class": dict.String("od")})
	work := dict.NewMapDict(map[string]dict.Value{"class": dict.String("od")})
	out := dict.NewMapDict(nil)

	if _, err := rules.Execute(action, initial, work, out); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got, err := work.GetInt("expverCode"); err != nil || got != 1 {
		t.Errorf("work[expverCode] = (%d, %v), want (1, nil)", got, err)
	}
	if got, err := out.GetInt("expverCode"); err != nil || got != 1 {
		t.Errorf("out[expverCode] = (%d, %v), want (1, nil)", got, err)
	}
}

const initialDictYAML = `
key: class
dict: initial
value-map:
  od:
    write-work:
      seenClass: od
`

func TestExecuteReadsFromInitialDictWhenConfigured(t *testing.T) {
	action, err := rules.ParseBytes([]byte(initialDictYAML), "initialDictYAML")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	initial := dict.NewMapDict(map[string]dict.Value{"class": dict.String("od")})
	work := dict.NewMapDict(map[string]dict.Value{"class": dict.String("rd")})
	out := dict.NewMapDict(nil)

	if _, err := rules.Execute(action, initial, work, out); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got, err := work.GetString("seenClass")
	if err != nil || got != "od" {
		t.Errorf("seenClass = (%q, %v), want (od, nil) from the initial dict, not work", got, err)
	}
}

func TestExecuteDeterministicTraceAcrossRuns(t *testing.T) {
	action, err := rules.ParseBytes([]byte(classMappingYAML), "classMappingYAML")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	initial := dict.NewMapDict(map[string]dict.Value{"class": dict.String("od")})

	trace1, err := rules.Execute(action, initial, dict.NewMapDict(map[string]dict.Value{"class": dict.String("od")}), dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("Execute (1): %v", err)
	}
	trace2, err := rules.Execute(action, initial, dict.NewMapDict(map[string]dict.Value{"class": dict.String("od")}), dict.NewMapDict(nil))
	if err != nil {
		t.Fatalf("Execute (2): %v", err)
	}
	if strings.Join(trace1.Lines(), "|") != strings.Join(trace2.Lines(), "|") {
		t.Errorf("trace mismatch across identical runs:\n%v\n%v", trace1.Lines(), trace2.Lines())
	}
}

func TestExecuteFailureAttachesTrace(t *testing.T) {
	action, err := rules.ParseBytes([]byte(classMappingYAML), "classMappingYAML")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	initial := dict.NewMapDict(map[string]dict.Value{"class": dict.String("xx")})
	_, err = rules.Execute(action, initial, dict.NewMapDict(map[string]dict.Value{"class": dict.String("xx")}), dict.NewMapDict(nil))
	if err == nil {
		t.Fatal("expected an error")
	}
	var ruleErr *rules.Error
	if !errors.As(err, &ruleErr) {
		t.Fatalf("error = %v, want *rules.Error", err)
	}
	if len(ruleErr.Trace.Lines()) == 0 {
		t.Error("expected a non-empty trace attached to the error")
	}
}
