package schedule

import (
	"time"

	"github.com/username/masjid-clock/internal/timetable"
)

// Prayer identifies a daily prayer event in the timetable.
type Prayer string

const (
	Fajr    Prayer = "Fajr"
	Dhuhr   Prayer = "Dhuhr"
	Asr     Prayer = "Asr"
	Maghrib Prayer = "Maghrib"
	Isha    Prayer = "Isha"
	Jummah  Prayer = "Jummah"

	// Sunrise is display-only: it is never a countdown candidate and
	// never triggers a signal.
	Sunrise Prayer = "Sunrise"
)

// CongregationDay is the weekday on which Jummah replaces Dhuhr.
const CongregationDay = time.Friday

// iqamahSuffix matches the timetable's congregation column naming.
const iqamahSuffix = "_Iqamah"

// adhanOrder is the canonical candidate order for a regular day.
var adhanOrder = [5]Prayer{Fajr, Dhuhr, Asr, Maghrib, Isha}

// trackedPrayers is the full signal key space across all weekdays.
var trackedPrayers = [6]Prayer{Fajr, Dhuhr, Asr, Maghrib, Isha, Jummah}

// IqamahKey returns the timetable key of a prayer's congregation time.
func (p Prayer) IqamahKey() string {
	return string(p) + iqamahSuffix
}

// DayOrder returns the ordered candidate list for the given weekday,
// with Jummah substituted for Dhuhr on the congregation day.
func DayOrder(weekday time.Weekday) [5]Prayer {
	order := adhanOrder
	if weekday == CongregationDay {
		order[1] = Jummah
	}
	return order
}

// applicable reports whether a prayer is scheduled at all on the given
// weekday: Jummah only on the congregation day, Dhuhr on every other day.
func applicable(p Prayer, weekday time.Weekday) bool {
	switch p {
	case Jummah:
		return weekday == CongregationDay
	case Dhuhr:
		return weekday != CongregationDay
	default:
		return true
	}
}

// eventTimes returns the adhan and iqamah time strings for a prayer.
// Sources publish the Friday congregation slot under either the Jummah or
// the Dhuhr column, so Jummah falls back to the Dhuhr slot when its own
// cells are empty.
func eventTimes(day timetable.Day, p Prayer) (adhan, iqamah string) {
	adhan = day.Time(string(p))
	iqamah = day.Time(p.IqamahKey())

	if p == Jummah {
		if adhan == "" {
			adhan = day.Time(string(Dhuhr))
		}
		if iqamah == "" {
			iqamah = day.Time(Dhuhr.IqamahKey())
		}
	}

	return adhan, iqamah
}
