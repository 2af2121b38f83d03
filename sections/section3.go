package sections

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
)

var knownGridDefinitionTemplates = map[int64]bool{0: true, 40: true, 50: true, 101: true, 150: true}

// InitializeSection3 writes gridDefinitionTemplateNumber for the chosen
// template. Template 50 (spherical harmonics) additionally seeds a set of
// placeholder keys the backend requires before it will accept further
// writes to the section — carried over verbatim from the original system,
// which notes this is likely a backend workaround (spec §9).
func InitializeSection3(out dict.Writable, templateNumber int64) error {
	if !knownGridDefinitionTemplates[templateNumber] {
		return errors.Errorf("sections: no Section 3 initializer registered for template number %d", templateNumber)
	}
	if err := out.SetOrThrow("gridDefinitionTemplateNumber", dict.Int(templateNumber)); err != nil {
		return err
	}

	if templateNumber != 50 {
		return nil
	}

	if err := out.SetOrThrow("numberOfDataPoints", dict.Int(0)); err != nil {
		return err
	}
	if err := out.SetOrThrow("numberOfValues", dict.Int(0)); err != nil {
		return err
	}
	if err := out.SetOrThrow("values", dict.FloatVector([]float64{1, 2, 3, 4, 5, 6})); err != nil {
		return err
	}
	if err := out.SetOrThrow("bitsPerValue", dict.Int(0)); err != nil {
		return err
	}
	if err := out.SetOrThrow("J", dict.Int(0)); err != nil {
		return err
	}
	if err := out.SetOrThrow("K", dict.Int(0)); err != nil {
		return err
	}
	if err := out.SetOrThrow("M", dict.Int(0)); err != nil {
		return err
	}
	if err := out.SetOrThrow("spectralType", dict.Int(0)); err != nil {
		return err
	}
	if err := out.SetOrThrow("spectralMode", dict.Int(0)); err != nil {
		return err
	}
	return out.SetOrThrow("dataRepresentationTemplateNumber", dict.Int(51))
}
