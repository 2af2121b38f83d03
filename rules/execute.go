package rules

import "github.com/wxmet/mars2grib/dict"

// Execute runs a compiled rule tree once. initial is the read-only
// pre-rule-engine snapshot; work is the mutable scratch dictionary that
// Mapping nodes read from by default and that Write nodes may update
// alongside out. Execute returns the trace of the branch it took whether
// or not it succeeds, so a caller can log it on either outcome.
func Execute(action Action, initial dict.Dict, work dict.Writable, out dict.Writable) (*LogTrace, error) {
	trace := &LogTrace{}
	if err := action.apply(trace, initial, work, out); err != nil {
		return trace, &Error{Trace: trace, Cause: err}
	}
	return trace, nil
}
