package concepts

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/deduce"
	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

// ReferenceTimeVariant enumerates the variants of the "referenceTime"
// concept: a standard forecast reference time, or a reforecast (hindcast)
// that additionally carries the model-version date (spec §4.3,
// "referenceTime").
type ReferenceTimeVariant int

const (
	ReferenceTimeStandard ReferenceTimeVariant = iota
	ReferenceTimeReforecast
)

func referenceTimeVariantName(v int) string {
	if ReferenceTimeVariant(v) == ReferenceTimeReforecast {
		return "reforecast"
	}
	return "standard"
}

func referenceTimeApplies(stage registry.Stage, section registry.Section, variant int) bool {
	if stage != registry.StagePreset {
		return false
	}
	if section == registry.Section1 {
		return true
	}
	if section == registry.Section4 {
		return ReferenceTimeVariant(variant) == ReferenceTimeReforecast
	}
	return false
}

// referenceTimeMatcher disables the concept for requests that carry no
// date/time at all, and otherwise selects the reforecast variant when the
// request carries an hdate (model-version date), else standard.
func referenceTimeMatcher(mars, opt dict.Dict) int {
	if !mars.Has("date") {
		return registry.MissingVariant
	}
	if mars.Has("hdate") {
		return int(ReferenceTimeReforecast)
	}
	return int(ReferenceTimeStandard)
}

var reforecastProductDefinitionTemplates = map[int64]bool{60: true, 61: true}

func referenceTimeOp(stage registry.Stage, section registry.Section, variant int, d registry.Dicts, out dict.Writable) error {
	if !referenceTimeApplies(stage, section, variant) {
		return errors.New("referenceTime concept invoked outside its applicability domain")
	}

	if section == registry.Section1 {
		rdt, err := deduce.ResolveReferenceDateTime(d.Mars, d.Par, d.Opt)
		if err != nil {
			return errors.Wrap(err, "referenceTime")
		}
		if err := out.SetOrThrow("significanceOfReferenceTime", dict.Int(1)); err != nil {
			return err
		}
		if err := out.SetOrThrow("year", dict.Int(int64(rdt.Year))); err != nil {
			return err
		}
		if err := out.SetOrThrow("month", dict.Int(int64(rdt.Month))); err != nil {
			return err
		}
		if err := out.SetOrThrow("day", dict.Int(int64(rdt.Day))); err != nil {
			return err
		}
		if err := out.SetOrThrow("hour", dict.Int(int64(rdt.Hour))); err != nil {
			return err
		}
		if err := out.SetOrThrow("minute", dict.Int(int64(rdt.Minute))); err != nil {
			return err
		}
		return out.SetOrThrow("second", dict.Int(int64(rdt.Second)))
	}

	// section == Section4, variant == Reforecast
	pdt, err := out.GetInt("productDefinitionTemplateNumber")
	if err != nil {
		return errors.Wrap(err, "referenceTime: reforecast requires productDefinitionTemplateNumber to already be set")
	}
	if !reforecastProductDefinitionTemplates[pdt] {
		return errors.Errorf("referenceTime: reforecast model-version date requires productDefinitionTemplateNumber in {60,61}, got %d", pdt)
	}

	hdate, err := d.Mars.GetInt("hdate")
	if err != nil {
		return errors.Wrap(err, "referenceTime: mars[\"hdate\"]")
	}
	htime, ok := d.Mars.Get("htime")
	htimeVal := int64(0)
	if ok {
		if v, ok := htime.AsInt(); ok {
			htimeVal = v
		}
	}
	rdt, err := deduce.ResolveReferenceDateTime(stubMarsWithDateTime(d.Mars, hdate, htimeVal), d.Par, d.Opt)
	if err != nil {
		return errors.Wrap(err, "referenceTime: model version date")
	}

	if err := out.SetOrThrow("yearOfModelVersion", dict.Int(int64(rdt.Year))); err != nil {
		return err
	}
	if err := out.SetOrThrow("monthOfModelVersion", dict.Int(int64(rdt.Month))); err != nil {
		return err
	}
	if err := out.SetOrThrow("dayOfModelVersion", dict.Int(int64(rdt.Day))); err != nil {
		return err
	}
	if err := out.SetOrThrow("hourOfModelVersion", dict.Int(int64(rdt.Hour))); err != nil {
		return err
	}
	if err := out.SetOrThrow("minuteOfModelVersion", dict.Int(int64(rdt.Minute))); err != nil {
		return err
	}
	return out.SetOrThrow("secondOfModelVersion", dict.Int(int64(rdt.Second)))
}

// stubMarsWithDateTime overlays date/time onto a read view of mars so the
// referenceDateTime deduction, which always reads "date"/"time", can be
// reused verbatim for the model-version date (hdate/htime).
func stubMarsWithDateTime(mars dict.Dict, date, clock int64) dict.Dict {
	return &dateTimeOverlay{base: mars, date: date, clock: clock}
}

type dateTimeOverlay struct {
	base  dict.Dict
	date  int64
	clock int64
}

func (o *dateTimeOverlay) Has(key string) bool {
	if key == "date" || key == "time" {
		return true
	}
	return o.base.Has(key)
}

func (o *dateTimeOverlay) Get(key string) (dict.Value, bool) {
	switch key {
	case "date":
		return dict.Int(o.date), true
	case "time":
		return dict.Int(o.clock), true
	default:
		return o.base.Get(key)
	}
}

func (o *dateTimeOverlay) GetInt(key string) (int64, error) {
	switch key {
	case "date":
		return o.date, nil
	case "time":
		return o.clock, nil
	default:
		return o.base.GetInt(key)
	}
}

func (o *dateTimeOverlay) GetFloat(key string) (float64, error)       { return o.base.GetFloat(key) }
func (o *dateTimeOverlay) GetString(key string) (string, error)       { return o.base.GetString(key) }
func (o *dateTimeOverlay) GetIntVector(key string) ([]int64, error)   { return o.base.GetIntVector(key) }
func (o *dateTimeOverlay) GetFloatVector(key string) ([]float64, error) {
	return o.base.GetFloatVector(key)
}

// ReferenceTimeDescriptor is the registry descriptor for the
// "referenceTime" concept.
var ReferenceTimeDescriptor = registry.Descriptor{
	Name:        "referenceTime",
	NumVariants: 2,
	VariantName: referenceTimeVariantName,
	Applies:     referenceTimeApplies,
	Op:          referenceTimeOp,
	Matcher:     referenceTimeMatcher,
}
