package sections

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
)

var knownDataRepresentationTemplates = map[int64]bool{0: true, 42: true, 51: true}

// InitializeSection5 writes dataRepresentationTemplateNumber for the
// chosen packing template.
func InitializeSection5(out dict.Writable, templateNumber int64) error {
	if !knownDataRepresentationTemplates[templateNumber] {
		return errors.Errorf("sections: no Section 5 initializer registered for template number %d", templateNumber)
	}
	return out.SetOrThrow("dataRepresentationTemplateNumber", dict.Int(templateNumber))
}
