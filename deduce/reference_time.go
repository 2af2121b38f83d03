package deduce

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
	"go.uber.org/zap"
)

// ReferenceDateTime is the canonical, validated decomposition of a MARS
// date/time pair (spec §4.4, "Reference date/time").
type ReferenceDateTime struct {
	Year, Month, Day       int
	Hour, Minute, Second   int
}

// ResolveReferenceDateTime parses mars["date"] as YYYYMMDD and
// mars["time"] as HHMMSS and validates the result as a real calendar date
// and time of day.
func ResolveReferenceDateTime(mars, par, opt dict.Dict) (ReferenceDateTime, error) {
	marsDate, err := mars.GetInt("date")
	if err != nil {
		return ReferenceDateTime{}, wrap("referenceDateTime", errors.Wrap(err, `mars["date"]`))
	}
	marsTime, err := mars.GetInt("time")
	if err != nil {
		return ReferenceDateTime{}, wrap("referenceDateTime", errors.Wrap(err, `mars["time"]`))
	}

	rdt, err := convertYYYYMMDDAndHHMMSS(marsDate, marsTime)
	if err != nil {
		return ReferenceDateTime{}, wrap("referenceDateTime", err)
	}

	resolve("date,time", zap.Int64("date", marsDate), zap.Int64("time", marsTime))
	return rdt, nil
}

func convertYYYYMMDDAndHHMMSS(date, clock int64) (ReferenceDateTime, error) {
	if date < 0 {
		return ReferenceDateTime{}, errors.Errorf("invalid date %d: negative", date)
	}
	year := int(date / 10000)
	month := int((date / 100) % 100)
	day := int(date % 100)

	if month < 1 || month > 12 {
		return ReferenceDateTime{}, errors.Errorf("invalid date %d: month %d out of range", date, month)
	}
	if day < 1 || day > daysInMonth(year, month) {
		return ReferenceDateTime{}, errors.Errorf("invalid date %d: day %d out of range for month %d", date, day, month)
	}

	if clock < 0 || clock > 235960 {
		return ReferenceDateTime{}, errors.Errorf("invalid time %d: out of range", clock)
	}
	hour := int(clock / 10000)
	minute := int((clock / 100) % 100)
	second := int(clock % 100)
	if hour > 23 || minute > 59 || second > 59 {
		return ReferenceDateTime{}, errors.Errorf("invalid time %d: hour/minute/second out of range", clock)
	}

	return ReferenceDateTime{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}, nil
}

func daysInMonth(year, month int) int {
	leap := (year%4 == 0 && year%100 != 0) || year%400 == 0
	days := [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if month == 2 && leap {
		return 29
	}
	return days[month-1]
}

func (r ReferenceDateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", r.Year, r.Month, r.Day, r.Hour, r.Minute, r.Second)
}
