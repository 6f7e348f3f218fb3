package schedule

import (
	"testing"
	"time"

	"github.com/username/masjid-clock/internal/timetable"
)

func TestTickFiresOncePerOccurrence(t *testing.T) {
	today := timetable.Day{"Fajr": "05:30 AM"}
	latches := NewLatches()
	eventAt := at(wednesday, 5, 30, 0)

	// Exactly at the event instant: fires.
	fired := Tick(eventAt, today, latches)
	if len(fired) != 1 || fired[0] != "Fajr" {
		t.Fatalf("Tick(at event) fired %v, want [Fajr]", fired)
	}

	// 0.5s later, still inside the window: latched, no refire.
	fired = Tick(eventAt.Add(500*time.Millisecond), today, latches)
	if len(fired) != 0 {
		t.Fatalf("Tick(+0.5s) fired %v, want none", fired)
	}

	// 2s later, past the window: rearms for the next occurrence.
	fired = Tick(eventAt.Add(2*time.Second), today, latches)
	if len(fired) != 0 {
		t.Fatalf("Tick(+2s) fired %v, want none", fired)
	}
	if latches["Fajr"] {
		t.Error("latch still set after the rearm window")
	}

	// Same clock the next day: fires again.
	fired = Tick(eventAt.AddDate(0, 0, 1), today, latches)
	if len(fired) != 1 || fired[0] != "Fajr" {
		t.Fatalf("Tick(next day) fired %v, want [Fajr]", fired)
	}
}

func TestTickBeforeEventLeavesLatchUntouched(t *testing.T) {
	today := timetable.Day{"Fajr": "05:30 AM"}
	latches := NewLatches()

	fired := Tick(at(wednesday, 5, 29, 59), today, latches)
	if len(fired) != 0 {
		t.Fatalf("Tick(before event) fired %v, want none", fired)
	}
	if latches["Fajr"] {
		t.Error("latch set before the event instant")
	}
}

func TestTickIqamahKeyFiresSeparately(t *testing.T) {
	today := timetable.Day{
		"Asr":        "03:30 PM",
		"Asr_Iqamah": "03:45 PM",
	}
	latches := NewLatches()

	fired := Tick(at(wednesday, 15, 30, 0), today, latches)
	if len(fired) != 1 || fired[0] != "Asr" {
		t.Fatalf("adhan tick fired %v, want [Asr]", fired)
	}

	fired = Tick(at(wednesday, 15, 45, 0), today, latches)
	if len(fired) != 1 || fired[0] != "Asr_Iqamah" {
		t.Fatalf("iqamah tick fired %v, want [Asr_Iqamah]", fired)
	}
}

func TestTickIdenticalIqamahFiresOnce(t *testing.T) {
	today := timetable.Day{
		"Maghrib":        "05:05 PM",
		"Maghrib_Iqamah": "05:05 PM",
	}
	latches := NewLatches()

	fired := Tick(at(wednesday, 17, 5, 0), today, latches)
	if len(fired) != 1 || fired[0] != "Maghrib" {
		t.Fatalf("Tick() fired %v, want [Maghrib] only", fired)
	}
}

func TestTickWeekdaySubstitution(t *testing.T) {
	today := timetable.Day{
		"Dhuhr":  "01:00 PM",
		"Jummah": "01:00 PM",
	}

	// Friday: the Dhuhr key must not fire, Jummah does.
	fired := Tick(at(friday, 13, 0, 0), today, NewLatches())
	if len(fired) != 1 || fired[0] != "Jummah" {
		t.Fatalf("Friday tick fired %v, want [Jummah]", fired)
	}

	// Wednesday: the Jummah key must not fire, Dhuhr does.
	fired = Tick(at(wednesday, 13, 0, 0), today, NewLatches())
	if len(fired) != 1 || fired[0] != "Dhuhr" {
		t.Fatalf("Wednesday tick fired %v, want [Dhuhr]", fired)
	}
}

func TestTickFridayJummahFallsBackToDhuhrSlot(t *testing.T) {
	// Congregation time published only under the Dhuhr column.
	today := timetable.Day{"Dhuhr": "01:30 PM"}

	fired := Tick(at(friday, 13, 30, 0), today, NewLatches())
	if len(fired) != 1 || fired[0] != "Jummah" {
		t.Fatalf("Friday tick fired %v, want [Jummah] via Dhuhr slot", fired)
	}
}

func TestTickNoDataAndBadTimes(t *testing.T) {
	if fired := Tick(at(wednesday, 13, 0, 0), nil, NewLatches()); fired != nil {
		t.Errorf("Tick(no data) fired %v, want none", fired)
	}

	today := timetable.Day{"Dhuhr": "lunchtime"}
	if fired := Tick(at(wednesday, 13, 0, 0), today, NewLatches()); len(fired) != 0 {
		t.Errorf("Tick(bad time) fired %v, want none", fired)
	}
}

func TestTickSunriseNeverFires(t *testing.T) {
	today := timetable.Day{"Sunrise": "07:15 AM"}

	fired := Tick(at(wednesday, 7, 15, 0), today, NewLatches())
	if len(fired) != 0 {
		t.Errorf("Tick() fired %v for Sunrise, want none", fired)
	}
}

func TestTickMultipleKeysIndependent(t *testing.T) {
	today := timetable.Day{
		"Fajr":    "05:30 AM",
		"Maghrib": "05:30 PM",
	}
	latches := NewLatches()

	fired := Tick(at(wednesday, 5, 30, 0), today, latches)
	if len(fired) != 1 || fired[0] != "Fajr" {
		t.Fatalf("morning tick fired %v, want [Fajr]", fired)
	}
	if latches["Maghrib"] {
		t.Error("Maghrib latched by the morning tick")
	}

	fired = Tick(at(wednesday, 17, 30, 0), today, latches)
	if len(fired) != 1 || fired[0] != "Maghrib" {
		t.Fatalf("evening tick fired %v, want [Maghrib]", fired)
	}
}
