package schedule

import (
	"time"

	"github.com/username/masjid-clock/internal/timetable"
	"github.com/username/masjid-clock/pkg/dateutil"
)

// SignalWindow is how long after an event instant a signal may still fire.
// The driving loop must poll at least this often or windows can be missed.
const SignalWindow = time.Second

// Latches records, per event key, whether the signal for the current
// occurrence has already fired. Keys absent from the map are unlatched.
type Latches map[string]bool

// NewLatches returns an empty latch set: every tracked key unlatched.
func NewLatches() Latches {
	return make(Latches)
}

// Tick evaluates every tracked event key against now and returns the keys
// whose signal should fire on this tick, updating latches in place.
//
// A key fires at most once per occurrence: the latch is set on firing and
// cleared only once now has passed the event instant by SignalWindow, which
// rearms the key for the next day's occurrence.
func Tick(now time.Time, today timetable.Day, latches Latches) []string {
	if today == nil {
		return nil
	}

	var fired []string
	weekday := now.Weekday()

	for _, prayer := range trackedPrayers {
		if !applicable(prayer, weekday) {
			continue
		}

		adhan, iqamah := eventTimes(today, prayer)

		if fireAt(adhan, string(prayer), now, latches) {
			fired = append(fired, string(prayer))
		}
		// An iqamah identical to its adhan is the same instant; firing
		// both would double the signal.
		if iqamah != "" && iqamah != adhan {
			if fireAt(iqamah, prayer.IqamahKey(), now, latches) {
				fired = append(fired, prayer.IqamahKey())
			}
		}
	}

	return fired
}

// fireAt decides whether the signal for a single key fires at now, and
// maintains the key's latch. Absent or unparseable clocks never fire.
func fireAt(clockStr, key string, now time.Time, latches Latches) bool {
	if clockStr == "" {
		return false
	}
	clock, err := dateutil.ParseClock(clockStr)
	if err != nil {
		return false
	}

	at := dateutil.At(now, clock)

	switch {
	case !now.Before(at) && now.Before(at.Add(SignalWindow)):
		if latches[key] {
			return false
		}
		latches[key] = true
		return true

	case !now.Before(at.Add(SignalWindow)):
		latches[key] = false
	}

	return false
}
