package main

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var errEndBeforeStart = errors.New("start date must be before or equal to end date")

// Date layouts are tried in order and the first full match wins. The order
// makes values like 03/04/2026 ambiguous (valid as both MM/DD and DD/MM);
// the MM/DD reading wins on purpose, matching how the input has always been
// produced.
var dateLayouts = []string{
	"01/02/2006", // MM/DD/YYYY
	"2006-01-02", // YYYY-MM-DD
	"02/01/2006", // DD/MM/YYYY
	"01-02-2006", // MM-DD-YYYY
}

var timeLayouts = []string{
	"3:04 PM",    // 12-hour with meridiem
	"15:04:05",   // 24-hour with seconds
	"15:04",      // 24-hour
	"3:04:05 PM", // 12-hour with seconds
}

type DurationUnit int

const (
	UnitDays DurationUnit = iota
	UnitHours
)

// TimeOffRecord is one spreadsheet row, normalized. Construction never
// fails: absent or malformed optional fields fall back to defaults, and an
// unparseable date leaves StartDate zero so the row is reported and skipped
// later instead of aborting the run.
type TimeOffRecord struct {
	RowIndex int

	Name     string
	Status   string
	Reason   string
	Policy   string
	Duration float64
	Unit     DurationUnit

	// StartDate is the zero time when the date column was absent or failed
	// to parse under every layout.
	StartDate time.Time

	// StartTime is the offset from midnight. HasStartTime false means the
	// request is all-day.
	StartTime    time.Duration
	HasStartTime bool
}

func normalizeRecord(row map[string]string, rowIndex int) TimeOffRecord {
	rec := TimeOffRecord{
		RowIndex: rowIndex,
		Name:     row[columnName],
		Status:   strings.TrimSpace(row[columnStatus]),
		Reason:   row[columnReason],
		Policy:   row[columnPolicy],
	}
	if rec.Name == "" {
		rec.Name = "Unknown"
	}
	if rec.Reason == "" {
		rec.Reason = "Time Off"
	}

	rec.Duration = parseDuration(row[columnDuration])
	if strings.ToUpper(strings.TrimSpace(row[columnDaysHours])) == hoursIndicator {
		rec.Unit = UnitHours
	}

	rec.StartDate = parseDate(row[columnDate])
	rec.StartTime, rec.HasStartTime = parseClockTime(row[columnStartTime])

	return rec
}

// parseDuration normalizes the raw duration cell to a positive number.
// Absent, non-numeric, zero or negative values all become 1.
func parseDuration(raw string) float64 {
	d, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || d <= 0 {
		return 1
	}
	return d
}

func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseClockTime(raw string) (time.Duration, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}

func (r TimeOffRecord) IsApproved() bool {
	return r.Status == statusApproved
}

func (r TimeOffRecord) IsValid() bool {
	return !r.StartDate.IsZero()
}

// IsPartialDay reports whether the request covers less than a full day.
func (r TimeOffRecord) IsPartialDay() bool {
	if r.Unit == UnitHours {
		return r.Duration < 24
	}
	return r.Duration < 1
}

// NumDays is the number of consecutive calendar dates the request spans.
func (r TimeOffRecord) NumDays() int {
	if r.Unit == UnitHours && r.Duration >= 1 {
		n := int(r.Duration / 24)
		if n < 1 {
			return 1
		}
		return n
	}
	if r.Duration >= 1 {
		return int(r.Duration)
	}
	return 1
}

func (r TimeOffRecord) inDateRange(dr *DateRange) bool {
	if dr == nil || r.StartDate.IsZero() {
		return true
	}
	return !r.StartDate.Before(dr.Start) && !r.StartDate.After(dr.End)
}

// DateRange is an inclusive filter over record start dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// parseDateRange validates a MM-DD-YYYY pair. End before start is an error.
func parseDateRange(startStr, endStr string) (*DateRange, error) {
	const layout = "01-02-2006"
	start, err := time.Parse(layout, startStr)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(layout, endStr)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, errEndBeforeStart
	}
	return &DateRange{Start: start, End: end}, nil
}

// filterRecords keeps approved records with a parseable date inside the
// optional range. Rows dropped for an unparseable date are reported by row
// number; unapproved and out-of-range rows are dropped silently.
func filterRecords(records []TimeOffRecord, dr *DateRange) []TimeOffRecord {
	var filtered []TimeOffRecord
	for _, rec := range records {
		if !rec.IsApproved() {
			continue
		}
		if !rec.IsValid() {
			printVerbosely(0, "Skipping row %d: invalid date format\n", rec.RowIndex)
			continue
		}
		if !rec.inDateRange(dr) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// recordSpan returns the earliest and latest start dates across approved,
// valid records. Both are zero when no record qualifies.
func recordSpan(records []TimeOffRecord) (earliest, latest time.Time) {
	for _, rec := range records {
		if !rec.IsApproved() || !rec.IsValid() {
			continue
		}
		if earliest.IsZero() || rec.StartDate.Before(earliest) {
			earliest = rec.StartDate
		}
		if latest.IsZero() || rec.StartDate.After(latest) {
			latest = rec.StartDate
		}
	}
	return earliest, latest
}

// calendarName suffixes the base name with the month-year span of the
// record set, e.g. "Employee Time Off: Mar 2026 - Apr 2026".
func calendarName(baseName string, earliest, latest time.Time) string {
	if !earliest.IsZero() && !latest.IsZero() {
		return baseName + ": " + earliest.Format("Jan 2006") + " - " + latest.Format("Jan 2006")
	}
	return baseName
}
