package deduce

import (
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
	"go.uber.org/zap"
)

// ResolveLevel returns the numeric "level" value from mars["level"],
// required by every level-type variant that carries a numeric level
// (spec §4.3, "level" concept).
func ResolveLevel(mars, par, opt dict.Dict) (int64, error) {
	v, err := mars.GetInt("level")
	if err != nil {
		return 0, wrap("level", errors.Wrap(err, `mars["level"]`))
	}
	resolve("level", zap.Int64("level", v))
	return v, nil
}
