package timetable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/username/masjid-clock/pkg/dateutil"
	"go.uber.org/zap"
)

// dateColumn is the header name of the civil date key column.
const dateColumn = "Date"

// Day maps an event name (e.g. "Fajr", "Dhuhr_Iqamah") to its time of day
// in normalized 12-hour "HH:MM AM/PM" form. An empty value means the event
// is not observed that day.
type Day map[string]string

// Time returns the normalized time string for the named event, or "" when
// the event is absent.
func (d Day) Time(name string) string {
	if d == nil {
		return ""
	}
	return d[name]
}

// Store holds the loaded prayer timetable, keyed by civil date.
// The mapping is replaced wholesale on Load, never merged, so a caller
// always observes rows from a single source generation.
type Store struct {
	path   string
	logger *zap.Logger

	mu      sync.RWMutex
	days    map[string]Day
	columns []string
}

// New creates a timetable store backed by the given CSV file.
// The store is empty until Load is called.
func New(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
		days:   make(map[string]Day),
	}
}

// Load reads the timetable CSV and atomically replaces the store contents.
// A missing or unreadable source leaves the store empty and returns the
// error for the caller to surface; the store itself stays usable in its
// degraded "no data" state.
func (s *Store) Load() error {
	days, columns, err := readFile(s.path, s.logger)
	if err != nil {
		s.replace(make(map[string]Day), nil)
		return err
	}

	s.replace(days, columns)

	s.logger.Info("Timetable loaded",
		zap.String("file", s.path),
		zap.Int("days", len(days)),
		zap.Int("event_columns", len(columns)))

	return nil
}

func (s *Store) replace(days map[string]Day, columns []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days = days
	s.columns = columns
}

// ForDate returns the day's events for the given civil date.
// The second result is false when the source has no row for that date.
func (s *Store) ForDate(date time.Time) (Day, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day, ok := s.days[date.Format(dateutil.DateLayout)]
	return day, ok
}

// Columns returns the event column names in source order.
func (s *Store) Columns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Len returns the number of loaded dates.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.days)
}

// Path returns the source file path.
func (s *Store) Path() string {
	return s.path
}

func readFile(path string, logger *zap.Logger) (map[string]Day, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open timetable file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read timetable header: %w", err)
	}

	dateIdx := -1
	columns := []string{}
	for i, name := range header {
		if name == dateColumn {
			dateIdx = i
			continue
		}
		columns = append(columns, name)
	}
	if dateIdx < 0 {
		return nil, nil, fmt.Errorf("timetable header has no %q column", dateColumn)
	}

	days := make(map[string]Day)
	line := 1

	for {
		record, err := reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn("Skipping malformed timetable row",
				zap.Int("line", line),
				zap.Error(err))
			continue
		}

		if dateIdx >= len(record) {
			logger.Warn("Skipping row without date cell", zap.Int("line", line))
			continue
		}

		dateStr := record[dateIdx]
		if _, err := time.Parse(dateutil.DateLayout, dateStr); err != nil {
			logger.Warn("Skipping row with invalid date",
				zap.Int("line", line),
				zap.String("date", dateStr))
			continue
		}

		day := make(Day, len(columns))
		for i, name := range header {
			if i == dateIdx {
				continue
			}
			raw := ""
			if i < len(record) {
				raw = record[i]
			}
			// Bad cells degrade to "absent", never fail the row.
			day[name] = dateutil.Normalize24(raw)
		}

		days[dateStr] = day
	}

	return days, columns, nil
}
