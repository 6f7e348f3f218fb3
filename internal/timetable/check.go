package timetable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/username/masjid-clock/pkg/dateutil"
)

// Problem describes a single defect found in a timetable source file.
type Problem struct {
	Line   int
	Column string
	Value  string
	Reason string
}

func (p Problem) String() string {
	if p.Column == "" {
		return fmt.Sprintf("line %d: %s", p.Line, p.Reason)
	}
	return fmt.Sprintf("line %d, column %s: %s (value %q)", p.Line, p.Column, p.Reason, p.Value)
}

// Check validates a timetable CSV without loading it, reporting every
// field the loader would silently degrade. A well-formed file yields an
// empty slice. Only an unreadable file or header is an error.
func Check(path string) ([]Problem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open timetable file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read timetable header: %w", err)
	}

	dateIdx := -1
	for i, name := range header {
		if name == dateColumn {
			dateIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("timetable header has no %q column", dateColumn)
	}

	problems := []Problem{}
	seen := make(map[string]int)
	line := 1

	for {
		record, err := reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			problems = append(problems, Problem{Line: line, Reason: err.Error()})
			continue
		}

		if dateIdx >= len(record) {
			problems = append(problems, Problem{Line: line, Reason: "row has no date cell"})
			continue
		}

		dateStr := record[dateIdx]
		if _, err := time.Parse(dateutil.DateLayout, dateStr); err != nil {
			problems = append(problems, Problem{
				Line:   line,
				Column: dateColumn,
				Value:  dateStr,
				Reason: "invalid date, row would be skipped",
			})
			continue
		}

		if prev, dup := seen[dateStr]; dup {
			problems = append(problems, Problem{
				Line:   line,
				Column: dateColumn,
				Value:  dateStr,
				Reason: fmt.Sprintf("duplicate date, overrides line %d", prev),
			})
		}
		seen[dateStr] = line

		for i, name := range header {
			if i == dateIdx || i >= len(record) {
				continue
			}
			raw := record[i]
			if raw == "" {
				continue
			}
			if _, err := time.Parse(dateutil.Clock24Layout, raw); err != nil {
				problems = append(problems, Problem{
					Line:   line,
					Column: name,
					Value:  raw,
					Reason: "not a 24-hour HH:MM time, would load as absent",
				})
			}
		}
	}

	return problems, nil
}
