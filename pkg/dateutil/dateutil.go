package dateutil

import "time"

// DateLayout is the civil date key format used by the timetable source.
const DateLayout = "2006-01-02"

// Clock24Layout is the 24-hour format used by raw timetable cells.
const Clock24Layout = "15:04"

// Clock12Layout is the 12-hour display format times are normalized to.
const Clock12Layout = "03:04 PM"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}

// Tomorrow returns tomorrow's date (start of day)
func Tomorrow() time.Time {
	return StartOfDay(time.Now().AddDate(0, 0, 1))
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// ParseClock parses a 12-hour "HH:MM AM/PM" clock string.
// The returned value carries only the hour and minute; combine it with a
// date via At before comparing it against a real instant.
func ParseClock(clock string) (time.Time, error) {
	return time.Parse(Clock12Layout, clock)
}

// At combines a clock-of-day value with the date of the given instant,
// producing a full instant in that instant's location.
func At(date time.Time, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, date.Location())
}

// Normalize24 converts a 24-hour "HH:MM" string to 12-hour "HH:MM AM/PM"
// display form. An empty or unparseable value yields "".
func Normalize24(clock string) string {
	if clock == "" {
		return ""
	}
	t, err := time.Parse(Clock24Layout, clock)
	if err != nil {
		return ""
	}
	return t.Format(Clock12Layout)
}
