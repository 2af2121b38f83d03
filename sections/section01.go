package sections

import "github.com/wxmet/mars2grib/dict"

// InitializeSection0 and InitializeSection1 are no-ops: Sections 0
// (Indicator) and 1 (Identification) carry no template-dependent
// structural keys, but the initializer slots exist for uniformity with
// the other sections (spec §4.5).
func InitializeSection0(out dict.Writable, templateNumber int64) error { return nil }

func InitializeSection1(out dict.Writable, templateNumber int64) error { return nil }
