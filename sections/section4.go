// Package sections implements the per-section initializer tables of spec
// §4.5: given a template number chosen by a concept during Allocate, seed
// the structural keys that template requires so that later concepts can
// write their own keys without worrying about section bootstrapping.
package sections

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
)

// knownProductDefinitionTemplates is the concrete set of product
// definition templates the sample corpus is required to support (spec
// §6).
var knownProductDefinitionTemplates = map[int64]bool{
	0: true, 1: true, 2: true, 3: true, 4: true, 5: true, 8: true, 11: true,
	12: true, 15: true, 24: true, 32: true, 33: true, 36: true, 40: true,
	41: true, 42: true, 43: true, 45: true, 46: true, 48: true, 49: true,
	50: true, 60: true, 61: true, 76: true, 77: true, 78: true, 79: true,
	85: true, 99: true, 100: true, 101: true, 103: true, 104: true,
	142: true, 143: true, 150: true,
	1000: true, 1001: true, 1002: true, 1004: true,
}

// IsKnownProductDefinitionTemplate reports whether n names one of the
// supported product definition templates, without attempting to
// initialize anything.
func IsKnownProductDefinitionTemplate(n int64) bool {
	return knownProductDefinitionTemplates[n]
}

// InitializeSection4 writes the structural productDefinitionTemplateNumber
// key for the chosen template. Unknown template numbers are rejected
// immediately (spec §4.5, "Unknown (section, template) yields a null
// lookup and an immediate error").
func InitializeSection4(out dict.Writable, templateNumber int64) error {
	if !knownProductDefinitionTemplates[templateNumber] {
		return errors.Errorf("sections: no Section 4 initializer registered for template number %d", templateNumber)
	}
	return out.SetOrThrow("productDefinitionTemplateNumber", dict.Int(templateNumber))
}
