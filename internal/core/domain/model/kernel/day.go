package kernel

import (
	"time"

	"dispatch/internal/pkg/errs"
)

// dayLayout is the canonical textual form of a calendar day.
const dayLayout = "2006-01-02"

// ErrDayIsNotConstructed is returned when validating a zero-value Day.
var ErrDayIsNotConstructed = errs.NewValueIsRequiredError(
	"day must be created via DayFromTime or DayFromString")

// Day is a value object representing a local calendar day. It is the time
// component of the earnings record key: all rewards confirmed between local
// midnight and the next one accumulate under the same Day.
//
// Day is immutable; the zero value is invalid.
type Day struct {
	year  int
	month time.Month
	day   int
}

// DayFromTime truncates a point in time to its local calendar day.
func DayFromTime(t time.Time) Day {
	y, m, d := t.Local().Date()
	return Day{year: y, month: m, day: d}
}

// Today returns the current local calendar day.
func Today() Day {
	return DayFromTime(time.Now())
}

// DayFromString parses a "YYYY-MM-DD" string into a Day.
func DayFromString(s string) (Day, error) {
	t, err := time.ParseInLocation(dayLayout, s, time.Local)
	if err != nil {
		return Day{}, errs.NewValueIsInvalidErrorWithCause("day", err)
	}
	return DayFromTime(t), nil
}

// Validate checks that the Day holds an actual date.
func (d Day) Validate() error {
	if d.year == 0 {
		return ErrDayIsNotConstructed
	}
	return nil
}

// String returns the canonical "YYYY-MM-DD" form, used as the persistence key.
func (d Day) String() string {
	return d.Start().Format(dayLayout)
}

// Start returns local midnight at the beginning of the day.
func (d Day) Start() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.Local)
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	return d.Start().Before(other.Start())
}

// IsEqual reports whether two days are the same calendar day.
func (d Day) IsEqual(other Day) bool {
	return d == other
}

// AddDays returns the day shifted by the given number of days.
// Negative values shift into the past; used for retention cutoffs.
func (d Day) AddDays(days int) Day {
	return DayFromTime(d.Start().AddDate(0, 0, days))
}
