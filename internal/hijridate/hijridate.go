package hijridate

import (
	"fmt"
	"time"

	hijri "github.com/hablullah/go-hijri"
	"github.com/username/masjid-clock/pkg/dateutil"
)

// monthNames maps Hijri month numbers 1-12 to their canonical names.
var monthNames = [12]string{
	"Muharram", "Safar", "Rabi Al-Awwal", "Rabi Al-Thani",
	"Jamada Al-Awwal", "Jamada Al-Thani", "Rajab", "Shaban",
	"Ramadan", "Shawwal", "Dhul-Qadah", "Dhul-Hijjah",
}

// Date is a resolved Hijri calendar date.
type Date struct {
	Day       int
	Month     int
	MonthName string
	Year      int
}

// String formats the date as "DD MonthName YYYY".
func (d Date) String() string {
	return fmt.Sprintf("%02d %s %d", d.Day, d.MonthName, d.Year)
}

// Resolve converts the instant's civil date to a Hijri date using the
// Umm al-Qura calendar.
//
// The Hijri day begins at Maghrib: when maghribClock parses and now is at
// or after it on the same civil date, the civil date advances by one day
// before conversion. An empty or unparseable maghribClock skips the
// advance. offsetDays is the operator's manual correction, applied after
// the boundary check and before conversion.
func Resolve(now time.Time, maghribClock string, offsetDays int) (Date, error) {
	day := dateutil.StartOfDay(now)

	if clock, err := dateutil.ParseClock(maghribClock); err == nil {
		if !now.Before(dateutil.At(now, clock)) {
			day = day.AddDate(0, 0, 1)
		}
	}

	day = day.AddDate(0, 0, offsetDays)

	converted, err := hijri.CreateUmmAlQuraDate(day)
	if err != nil {
		return Date{}, fmt.Errorf("failed to convert %s to hijri: %w",
			day.Format(dateutil.DateLayout), err)
	}

	d := Date{
		Day:   int(converted.Day),
		Month: int(converted.Month),
		Year:  int(converted.Year),
	}
	if d.Month >= 1 && d.Month <= 12 {
		d.MonthName = monthNames[d.Month-1]
	}

	return d, nil
}
