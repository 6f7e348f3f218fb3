package dateutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestIsSameDay(t *testing.T) {
	tests := []struct {
		name  string
		date1 time.Time
		date2 time.Time
		want  bool
	}{
		{
			"Same date different time",
			time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC),
			true,
		},
		{
			"Different date",
			time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC),
			false,
		},
		{
			"Midnight boundary",
			time.Date(2025, 1, 15, 23, 59, 59, 0, time.UTC),
			time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsSameDay(tt.date1, tt.date2)

			if result != tt.want {
				t.Errorf("IsSameDay(%v, %v) = %v, want %v",
					tt.date1, tt.date2, result, tt.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHour int
		wantMin  int
		wantErr  bool
	}{
		{"Morning", "05:30 AM", 5, 30, false},
		{"Afternoon", "01:00 PM", 13, 0, false},
		{"Noon", "12:00 PM", 12, 0, false},
		{"Midnight", "12:00 AM", 0, 0, false},
		{"Empty", "", 0, 0, true},
		{"24-hour form rejected", "17:30", 0, 0, true},
		{"Garbage", "half past five", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseClock(tt.input)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if !tt.wantErr && (result.Hour() != tt.wantHour || result.Minute() != tt.wantMin) {
				t.Errorf("ParseClock(%q) = %02d:%02d, want %02d:%02d",
					tt.input, result.Hour(), result.Minute(), tt.wantHour, tt.wantMin)
			}
		})
	}
}

func TestAt(t *testing.T) {
	date := time.Date(2025, 1, 15, 4, 0, 0, 0, time.UTC)
	clock, err := ParseClock("05:30 AM")
	if err != nil {
		t.Fatalf("ParseClock() error = %v", err)
	}

	result := At(date, clock)
	expected := time.Date(2025, 1, 15, 5, 30, 0, 0, time.UTC)

	if !result.Equal(expected) {
		t.Errorf("At(%v, 05:30 AM) = %v, want %v", date, result, expected)
	}
}

func TestNormalize24(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Morning", "05:30", "05:30 AM"},
		{"Afternoon", "13:00", "01:00 PM"},
		{"Noon", "12:00", "12:00 PM"},
		{"Midnight", "00:15", "12:15 AM"},
		{"Empty passes through as absent", "", ""},
		{"Unparseable becomes absent", "25:99", ""},
		{"Already 12-hour becomes absent", "05:30 AM", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize24(tt.input)

			if result != tt.want {
				t.Errorf("Normalize24(%q) = %q, want %q", tt.input, result, tt.want)
			}
		})
	}
}
