// Package registry implements the concept dispatch table described in
// spec §4.2: a compile/startup-time association of (concept variant,
// stage, section) to callback, plus the per-concept matcher that picks the
// active variant from the input dictionaries for a given encode.
//
// The original system materialises this table via C++ template
// metaprogramming (spec §9, "compile-time concept registry"). Go has no
// equivalent facility, so the registry is built once, at startup, as a
// plain slice-backed table (design note (a) in spec §9) and is immutable
// thereafter — safe to share across concurrently-running encodes (spec §5).
package registry

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
)

// Stage is one of the three coarse temporal phases of an encode.
type Stage int

const (
	StageAllocate Stage = iota
	StagePreset
	StageRuntime
	NumStages = 3
)

func (s Stage) String() string {
	switch s {
	case StageAllocate:
		return "Allocate"
	case StagePreset:
		return "Preset"
	case StageRuntime:
		return "Runtime"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Section is one of the six GRIB2 message sections, 0 (Indicator) through
// 5 (Data Representation).
type Section int

const (
	Section0 Section = iota
	Section1
	Section2
	Section3
	Section4
	Section5
	NumSections = 6
)

func (s Section) String() string {
	names := [NumSections]string{"Indicator", "Identification", "LocalUse", "GridDefinition", "ProductDefinition", "DataRepresentation"}
	if int(s) < 0 || int(s) >= NumSections {
		return fmt.Sprintf("Section(%d)", int(s))
	}
	return names[s]
}

// MissingVariant is the matcher sentinel meaning "this concept does not
// apply to the current encode" (spec §4.2).
const MissingVariant = -1

// Dicts bundles the four read-only input dictionaries passed to every
// concept operation, deduction, and matcher.
type Dicts struct {
	Mars dict.Dict
	Geo  dict.Dict
	Par  dict.Dict
	Opt  dict.Dict
}

// Op is a concept callback: it runs the encoding logic for one
// (stage, section, variant) cell against the bundled input dictionaries
// and the mutable output dictionary.
type Op func(stage Stage, section Section, variant int, d Dicts, out dict.Writable) error

// Matcher selects the active variant ordinal for a concept given only the
// mars and opt dictionaries. It must be pure and deterministic (spec
// §4.2). Returning MissingVariant disables the concept for this encode.
type Matcher func(mars, opt dict.Dict) int

// Applies is the compile-time-evaluable (here: call-time, since Go has no
// constexpr) applicability predicate for a concept variant.
type Applies func(stage Stage, section Section, variant int) bool

// Descriptor declares one concept: its name, the number of variants it
// has, how to name a variant, its applicability predicate, its operation,
// and its matcher.
type Descriptor struct {
	Name        string
	NumVariants int
	VariantName func(variant int) string
	Applies     Applies
	Op          Op
	Matcher     Matcher
}

// table is the materialised [variant][stage][section] callback grid for a
// single concept, built once from a Descriptor.
type table struct {
	desc  Descriptor
	cells [][NumStages][NumSections]Op // indexed [variant]
}

func buildTable(desc Descriptor) table {
	t := table{desc: desc, cells: make([][NumStages][NumSections]Op, desc.NumVariants)}
	for variant := 0; variant < desc.NumVariants; variant++ {
		for s := Stage(0); s < NumStages; s++ {
			for k := Section(0); k < NumSections; k++ {
				if desc.Applies(s, k, variant) {
					t.cells[variant][s][k] = desc.Op
				}
			}
		}
	}
	return t
}

// Registry holds the compiled dispatch tables for every registered
// concept. It is built once and is safe for concurrent reads thereafter
// (spec §5).
type Registry struct {
	tables []table // registration order is dispatch order within a cell
}

// NewRegistry compiles a Registry from an ordered list of concept
// descriptors. Registration order is preserved and determines the stable
// invocation order within a single (stage, section) cell (spec §4.2).
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{}
	seen := make(map[string]bool, len(descriptors))
	for _, desc := range descriptors {
		if desc.Name == "" {
			return nil, errors.New("registry: concept descriptor with empty name")
		}
		if seen[desc.Name] {
			return nil, errors.Errorf("registry: duplicate concept name %q", desc.Name)
		}
		seen[desc.Name] = true
		if desc.Matcher == nil {
			return nil, errors.Errorf("registry: concept %q has no matcher", desc.Name)
		}
		if desc.Applies == nil || desc.Op == nil {
			return nil, errors.Errorf("registry: concept %q missing Applies/Op", desc.Name)
		}
		r.tables = append(r.tables, buildTable(desc))
	}
	return r, nil
}

// ConceptError is the typed error reported when a concept invocation
// fails, carrying (concept, variant, stage, section) per spec §7.
type ConceptError struct {
	Concept string
	Variant string
	Stage   Stage
	Section Section
	Cause   error
}

func (e *ConceptError) Error() string {
	return fmt.Sprintf("concept %q variant %q at stage=%s section=%s: %v", e.Concept, e.Variant, e.Stage, e.Section, e.Cause)
}

func (e *ConceptError) Unwrap() error { return e.Cause }

// activeVariants resolves, once per Dispatch call, the variant each
// concept matcher selects for this encode. A concept with MissingVariant
// is skipped entirely for every stage/section.
func (r *Registry) activeVariants(d Dicts) []int {
	variants := make([]int, len(r.tables))
	for i, t := range r.tables {
		variants[i] = t.desc.Matcher(d.Mars, d.Opt)
	}
	return variants
}

// Dispatch walks stage × section × concept, invoking every applicable
// callback in registration order, per the algorithm in spec §4.2. out is
// mutated in place within a stage; the caller is expected to Clone it at
// stage boundaries (Encoder.Convert does this — Dispatch itself only runs
// the callbacks for the stage/section grid, it does not manage cloning,
// since cloning is a property of the output dictionary, not the registry).
func (r *Registry) Dispatch(stage Stage, section Section, d Dicts, variants []int, out dict.Writable) error {
	for i, t := range r.tables {
		variant := variants[i]
		if variant == MissingVariant {
			continue
		}
		if variant < 0 || variant >= len(t.cells) {
			return errors.Errorf("registry: concept %q matcher returned out-of-range variant %d", t.desc.Name, variant)
		}
		cb := t.cells[variant][stage][section]
		if cb == nil {
			continue
		}
		if err := cb(stage, section, variant, d, out); err != nil {
			return &ConceptError{
				Concept: t.desc.Name,
				Variant: t.desc.VariantName(variant),
				Stage:   stage,
				Section: section,
				Cause:   err,
			}
		}
	}
	return nil
}

// ActiveVariants is the exported form of activeVariants, used by the
// encoder orchestrator to resolve variants once at the start of an encode
// and reuse them across every stage/section cell.
func (r *Registry) ActiveVariants(d Dicts) []int {
	return r.activeVariants(d)
}

// ConceptNames returns the names of every registered concept, in
// registration order — chiefly for diagnostics and tests.
func (r *Registry) ConceptNames() []string {
	names := make([]string, len(r.tables))
	for i, t := range r.tables {
		names[i] = t.desc.Name
	}
	return names
}

// CallApplicable invokes a single concept's Op directly, bypassing
// Dispatch's applicability check — used by tests to assert the "op
// invoked outside its applicability domain throws without touching out"
// property (spec §8). Production code should never call this; use
// Dispatch.
func CallApplicable(desc Descriptor, stage Stage, section Section, variant int, d Dicts, out dict.Writable) error {
	if !desc.Applies(stage, section, variant) {
		return &ConceptError{
			Concept: desc.Name,
			Variant: desc.VariantName(variant),
			Stage:   stage,
			Section: section,
			Cause:   errors.New("concept invoked outside its applicability domain"),
		}
	}
	return desc.Op(stage, section, variant, d, out)
}
