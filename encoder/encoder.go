// Package encoder implements the top-level orchestrator of spec §4.2's
// dispatch algorithm: it walks stages × sections, invoking every
// applicable concept against an output dictionary seeded from a named
// GRIB sample, cloning the output at each stage boundary, and returning
// the fully-populated result.
package encoder

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
	"github.com/wxmet/mars2grib/rules"
)

// Encoder runs the concept-dispatch pipeline against a compiled registry.
type Encoder struct {
	registry *registry.Registry
	sampler  dict.Sampler
	cfg      Config
}

// New builds an Encoder bound to a concept registry and a GRIB-handle
// sampler (spec §6, "Required GRIB-sample corpus").
func New(reg *registry.Registry, sampler dict.Sampler, opts ...EncodeOption) (*Encoder, error) {
	if reg == nil {
		return nil, errNilRegistry
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Encoder{registry: reg, sampler: sampler, cfg: cfg}, nil
}

// Convert runs one encode: mars, geo, par, opt are read-only for the
// duration of the call (spec §3, "Lifecycle"); the returned dictionary is
// independently owned by the caller.
func (e *Encoder) Convert(mars, geo, par, opt dict.Dict) (dict.Writable, error) {
	out, err := dict.FromSample(e.sampler, e.cfg.sampleName)
	if err != nil {
		return nil, newError(mars, geo, par, opt, errors.Wrap(err, "encoder: seed output from sample"))
	}

	if e.cfg.preprocessor != nil {
		work := seedWorkDict(mars)
		if _, err := rules.Execute(e.cfg.preprocessor, mars, work, out); err != nil {
			return nil, newError(mars, geo, par, opt, errors.Wrap(err, "encoder: rule-engine preprocessing"))
		}
	}

	d := registry.Dicts{Mars: mars, Geo: geo, Par: par, Opt: opt}
	variants := e.registry.ActiveVariants(d)

	current := dict.Writable(out)
	for stage := registry.Stage(0); stage < registry.NumStages; stage++ {
		for section := registry.Section(0); section < registry.NumSections; section++ {
			if err := e.registry.Dispatch(stage, section, d, variants, current); err != nil {
				return nil, newError(mars, geo, par, opt, err)
			}
		}

		cloner, ok := current.(dict.Cloner)
		if !ok {
			return nil, newError(mars, geo, par, opt, errors.New("encoder: output dictionary does not support Clone"))
		}
		cloned, err := cloner.Clone()
		if err != nil {
			return nil, newError(mars, geo, par, opt, errors.Wrap(err, "encoder: clone output at stage boundary"))
		}
		current = cloned
	}

	return current, nil
}

// seedWorkDict builds the rule engine's mutable scratch dictionary as a
// copy of mars, matching the collaborator's "workdict{initial}" seeding.
// mars is always a *dict.MapDict in practice (the four input dictionaries
// never come from the backend adapter); an unrecognised implementation
// seeds an empty scratch dictionary instead of failing the encode.
func seedWorkDict(mars dict.Dict) *dict.MapDict {
	md, ok := mars.(*dict.MapDict)
	if !ok {
		return dict.NewMapDict(nil)
	}
	return md.Clone()
}

// Request bundles the four input dictionaries for a single encode, for
// use with ConvertMany.
type Request struct {
	Mars, Geo, Par, Opt dict.Dict
}

// Result pairs a Request's position with its encode outcome.
type Result struct {
	Index int
	Out   dict.Writable
	Err   error
}

// ConvertMany runs Convert over a batch of independent requests, fanned
// out across Config.workers goroutines (spec §5: concurrent invocations
// on disjoint inputs are safe; each individual encode stays single
// threaded and synchronous). A per-request failure is reported in that
// request's Result, not propagated as a batch-wide error; one encode
// failing never stops the others.
func (e *Encoder) ConvertMany(requests []Request) []Result {
	results := make([]Result, len(requests))
	if len(requests) == 0 {
		return results
	}

	workers := e.cfg.workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(requests) {
		workers = len(requests)
	}

	var eg errgroup.Group
	eg.SetLimit(workers)

	for i := range requests {
		i := i
		eg.Go(func() error {
			out, err := e.Convert(requests[i].Mars, requests[i].Geo, requests[i].Par, requests[i].Opt)
			results[i] = Result{Index: i, Out: out, Err: err}
			return nil
		})
	}
	_ = eg.Wait()

	return results
}
