// Package concepts implements the individual GRIB2 encoding concepts of
// spec §4.3: self-contained units that each own a slice of the output
// dictionary and are composed by the registry into a full encode.
package concepts

import "github.com/wxmet/mars2grib/registry"

// All returns every concept descriptor in the stable registration order
// the encoder dispatches them in (spec §4.2, "Ordering").
func All() []registry.Descriptor {
	return []registry.Descriptor{
		ProductDescriptor,
		MarsDescriptor,
		ReferenceTimeDescriptor,
		RepresentationDescriptor,
		LevelDescriptor,
		StatisticsDescriptor,
		WaveDescriptor,
		SatelliteDescriptor,
		ShapeOfTheEarthDescriptor,
	}
}
