package sections

import (
	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/tables"
)

// InitializeSection2 enables Section 2 (Local Use) and selects its local
// definition number. Virtual template numbers 1001/1002 fold in
// additional DestinE metadata instead of writing the template number
// verbatim as the local definition number (spec §4.5).
func InitializeSection2(out dict.Writable, templateNumber int64) error {
	if err := out.SetOrThrow("setLocalDefinition", dict.Int(1)); err != nil {
		return err
	}

	switch templateNumber {
	case 1001:
		if err := out.SetOrThrow("localDefinitionNumber", dict.Int(1)); err != nil {
			return err
		}
		if err := out.SetOrThrow("productionStatusOfProcessedData", dict.Int(tables.ProductionStatusDestinE)); err != nil {
			return err
		}
		return out.SetOrThrow("dataset", dict.String("climate-dt"))
	case 1002:
		if err := out.SetOrThrow("localDefinitionNumber", dict.Int(1)); err != nil {
			return err
		}
		if err := out.SetOrThrow("productionStatusOfProcessedData", dict.Int(tables.ProductionStatusDestinE)); err != nil {
			return err
		}
		return out.SetOrThrow("dataset", dict.String("extremes-dt"))
	default:
		return out.SetOrThrow("localDefinitionNumber", dict.Int(templateNumber))
	}
}
