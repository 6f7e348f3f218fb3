package schedule

import (
	"fmt"
	"time"

	"github.com/username/masjid-clock/internal/timetable"
	"github.com/username/masjid-clock/pkg/dateutil"
)

// countdownBias is added to the remaining duration after truncation to
// whole seconds, so the displayed countdown never shows a stale zero at
// the moment of transition. Display compensation, not a timing guarantee.
const countdownBias = time.Second

// Result describes the nearest upcoming event and the time remaining
// until it. Recomputed every tick, never persisted.
type Result struct {
	Event  Prayer
	Iqamah bool

	Hours   int
	Minutes int
	Seconds int
}

// Label returns the display name of the awaited event.
func (r *Result) Label() string {
	if r.Iqamah {
		return "Iqamah"
	}
	return string(r.Event)
}

// Countdown returns the remaining time as "HH:MM:SS".
func (r *Result) Countdown() string {
	return fmt.Sprintf("%02d:%02d:%02d", r.Hours, r.Minutes, r.Seconds)
}

// NextEvent finds the nearest upcoming adhan or iqamah after now.
//
// Candidates are today's prayers in canonical order, Jummah substituted on
// the congregation day, each contributing its adhan time and, when
// textually distinct, its iqamah time. When all of today's events have
// passed, tomorrow's Fajr is the only cross-day fallback. Returns nil when
// there is no event data at all. Unparseable individual times are skipped.
func NextEvent(now time.Time, today, tomorrow timetable.Day) *Result {
	if today == nil {
		return nil
	}

	type candidate struct {
		clock  string
		iqamah bool
	}

	var (
		next    Prayer
		iqamah  bool
		minDiff time.Duration
		found   bool
	)

	for _, prayer := range DayOrder(now.Weekday()) {
		adhan, iqamahStr := eventTimes(today, prayer)

		candidates := []candidate{}
		if adhan != "" {
			candidates = append(candidates, candidate{adhan, false})
		}
		// Identical strings are the same occurrence at the source's
		// minute granularity; suppress the duplicate candidate.
		if iqamahStr != "" && iqamahStr != adhan {
			candidates = append(candidates, candidate{iqamahStr, true})
		}

		for _, c := range candidates {
			clock, err := dateutil.ParseClock(c.clock)
			if err != nil {
				continue
			}
			at := dateutil.At(now, clock)
			if !at.After(now) {
				continue
			}
			diff := at.Sub(now)
			if !found || diff < minDiff {
				found = true
				minDiff = diff
				next = prayer
				iqamah = c.iqamah
			}
		}
	}

	if !found {
		clock, err := dateutil.ParseClock(tomorrow.Time(string(Fajr)))
		if err != nil {
			return nil
		}
		next = Fajr
		iqamah = false
		minDiff = dateutil.At(now.AddDate(0, 0, 1), clock).Sub(now)
	}

	total := int(minDiff/time.Second) + int(countdownBias/time.Second)

	return &Result{
		Event:   next,
		Iqamah:  iqamah,
		Hours:   total / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}
